package cart_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/cucumber/godog"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/cart"
)

type cartTestContext struct {
	storage *cart.MemoryStorage
	store   *cart.Store
	codes   cart.DiscountCodes
	pricing cart.Pricing
}

const featureSession = "feature-session"

func (c *cartTestContext) reset() {
	c.storage = cart.NewMemoryStorage()
	c.store = cart.NewStore(cart.WithCommitter(
		cart.PersistItems(c.storage, cart.StorageKey(featureSession), zap.NewNop()),
	))
	c.codes = cart.DefaultDiscountCodes()
	c.pricing = cart.DefaultPricing()
}

func (c *cartTestContext) anEmptyCart() error {
	if !c.store.Snapshot().IsEmpty() {
		return fmt.Errorf("expected empty cart")
	}
	return nil
}

func (c *cartTestContext) iAddProduct(productID, size, price string, qty int) error {
	p, err := decimal.NewFromString(price)
	if err != nil {
		return err
	}
	c.store.Dispatch(context.Background(), cart.AddItem{Item: cart.NewItem{
		ProductID: productID,
		Name:      productID,
		Price:     p,
		Size:      size,
		Quantity:  qty,
	}})
	return nil
}

func (c *cartTestContext) iApplyDiscountCode(code string) error {
	d, ok := c.codes.Lookup(code)
	if !ok {
		return nil
	}
	c.store.Dispatch(context.Background(), cart.ApplyDiscount{Discount: d})
	return nil
}

func (c *cartTestContext) iClearTheCart() error {
	c.store.Dispatch(context.Background(), cart.Clear{})
	return nil
}

func (c *cartTestContext) theCartHasRows(n int) error {
	if got := len(c.store.Snapshot().Items); got != n {
		return fmt.Errorf("expected %d rows, got %d", n, got)
	}
	return nil
}

func (c *cartTestContext) rowHasQuantity(row, qty int) error {
	items := c.store.Snapshot().Items
	if row < 1 || row > len(items) {
		return fmt.Errorf("no row %d", row)
	}
	if got := items[row-1].Quantity; got != qty {
		return fmt.Errorf("expected quantity %d, got %d", qty, got)
	}
	return nil
}

func (c *cartTestContext) theStoredCartHasRows(n int) error {
	items, err := c.storage.Load(context.Background(), cart.StorageKey(featureSession))
	if err != nil {
		return err
	}
	if len(items) != n {
		return fmt.Errorf("expected %d stored rows, got %d", n, len(items))
	}
	return nil
}

func expectAmount(name, want string, got decimal.Decimal) error {
	w, err := decimal.NewFromString(want)
	if err != nil {
		return err
	}
	if !w.Equal(got) {
		return fmt.Errorf("expected %s %s, got %s", name, want, got)
	}
	return nil
}

func (c *cartTestContext) theSubtotalIs(amount string) error {
	return expectAmount("subtotal", amount, c.store.Snapshot().Subtotal())
}

func (c *cartTestContext) theTotalIs(amount string) error {
	return expectAmount("total", amount, c.store.Snapshot().Total())
}

func (c *cartTestContext) freeShippingIsAway(amount string) error {
	return expectAmount("free shipping remainder", amount, c.pricing.FreeShippingRemaining(c.store.Snapshot()))
}

func (c *cartTestContext) shippingCosts(amount string) error {
	return expectAmount("shipping", amount, c.pricing.ShippingCost(c.store.Snapshot()))
}

func (c *cartTestContext) noDiscountIsApplied() error {
	if d := c.store.Snapshot().Discount; d != nil {
		return fmt.Errorf("expected no discount, got %s", d.Code)
	}
	return nil
}

func InitializeScenario(ctx *godog.ScenarioContext) {
	tc := &cartTestContext{}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		tc.reset()
		return ctx, nil
	})

	// Given steps
	ctx.Step(`^an empty cart$`, tc.anEmptyCart)

	// When steps
	ctx.Step(`^I add product "([^"]*)" size "([^"]*)" priced "([^"]*)" with quantity (\d+)$`, tc.iAddProduct)
	ctx.Step(`^I apply discount code "([^"]*)"$`, tc.iApplyDiscountCode)
	ctx.Step(`^I clear the cart$`, tc.iClearTheCart)

	// Then steps
	ctx.Step(`^the cart has (\d+) rows?$`, tc.theCartHasRows)
	ctx.Step(`^row (\d+) has quantity (\d+)$`, tc.rowHasQuantity)
	ctx.Step(`^the stored cart has (\d+) rows?$`, tc.theStoredCartHasRows)
	ctx.Step(`^the subtotal is "([^"]*)"$`, tc.theSubtotalIs)
	ctx.Step(`^the total is "([^"]*)"$`, tc.theTotalIs)
	ctx.Step(`^free shipping is "([^"]*)" away$`, tc.freeShippingIsAway)
	ctx.Step(`^shipping costs "([^"]*)"$`, tc.shippingCosts)
	ctx.Step(`^no discount is applied$`, tc.noDiscountIsApplied)
}

func TestFeatures(t *testing.T) {
	suite := godog.TestSuite{
		ScenarioInitializer: InitializeScenario,
		Options: &godog.Options{
			Format:   "pretty",
			Paths:    []string{"features/cart.feature"},
			TestingT: t,
		},
	}

	if suite.Run() != 0 {
		t.Fatal("non-zero status returned, failed to run feature tests")
	}
}
