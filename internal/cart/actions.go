package cart

import (
	"fmt"
	"time"
)

// Action is a cart state transition. Implementations are value types and are
// applied through Reduce.
type Action interface {
	apply(s State, now time.Time) State
	// TouchesItems reports whether the action can change Items and therefore
	// needs to be persisted.
	TouchesItems() bool
}

// Reduce returns the state after applying a. The input state is never
// modified.
func Reduce(s State, a Action, now time.Time) State {
	return a.apply(s.Clone(), now)
}

// LineItemID builds the row id for a product/size pair added at now.
func LineItemID(productID, size string, now time.Time) string {
	return fmt.Sprintf("%s-%s-%d", productID, size, now.UnixMilli())
}

type AddItem struct {
	Item NewItem
}

func (a AddItem) apply(s State, now time.Time) State {
	s.IsOpen = true
	for i := range s.Items {
		if s.Items[i].ProductID == a.Item.ProductID && s.Items[i].Size == a.Item.Size {
			s.Items[i].Quantity = clampQuantity(s.Items[i].Quantity + a.Item.Quantity)
			return s
		}
	}
	s.Items = append(s.Items, LineItem{
		ID:        LineItemID(a.Item.ProductID, a.Item.Size, now),
		ProductID: a.Item.ProductID,
		Name:      a.Item.Name,
		Price:     a.Item.Price,
		Image:     a.Item.Image,
		Size:      a.Item.Size,
		Category:  a.Item.Category,
		Quantity:  clampQuantity(a.Item.Quantity),
	})
	return s
}

func (AddItem) TouchesItems() bool { return true }

type RemoveItem struct {
	ID string
}

func (a RemoveItem) apply(s State, _ time.Time) State {
	kept := s.Items[:0]
	for _, it := range s.Items {
		if it.ID != a.ID {
			kept = append(kept, it)
		}
	}
	s.Items = kept
	return s
}

func (RemoveItem) TouchesItems() bool { return true }

// SetQuantity clamps Quantity into [MinQuantity, MaxQuantity]. Unknown ids are
// ignored.
type SetQuantity struct {
	ID       string
	Quantity int
}

func (a SetQuantity) apply(s State, _ time.Time) State {
	for i := range s.Items {
		if s.Items[i].ID == a.ID {
			s.Items[i].Quantity = clampQuantity(a.Quantity)
			break
		}
	}
	return s
}

func (SetQuantity) TouchesItems() bool { return true }

type Clear struct{}

func (Clear) apply(s State, _ time.Time) State {
	s.Items = []LineItem{}
	s.Discount = nil
	return s
}

func (Clear) TouchesItems() bool { return true }

type ToggleOpen struct{}

func (ToggleOpen) apply(s State, _ time.Time) State {
	s.IsOpen = !s.IsOpen
	return s
}

func (ToggleOpen) TouchesItems() bool { return false }

type Open struct{}

func (Open) apply(s State, _ time.Time) State {
	s.IsOpen = true
	return s
}

func (Open) TouchesItems() bool { return false }

type Close struct{}

func (Close) apply(s State, _ time.Time) State {
	s.IsOpen = false
	return s
}

func (Close) TouchesItems() bool { return false }

// ApplyDiscount replaces any existing discount. The code is not checked here;
// callers resolve it through DiscountCodes first.
type ApplyDiscount struct {
	Discount Discount
}

func (a ApplyDiscount) apply(s State, _ time.Time) State {
	d := a.Discount
	d.Percentage = clampPercentage(d.Percentage)
	s.Discount = &d
	return s
}

func (ApplyDiscount) TouchesItems() bool { return false }

type RemoveDiscount struct{}

func (RemoveDiscount) apply(s State, _ time.Time) State {
	s.Discount = nil
	return s
}

func (RemoveDiscount) TouchesItems() bool { return false }
