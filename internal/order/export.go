package order

import (
	"fmt"
	"io"
	"strings"

	"github.com/tealeg/xlsx"
)

const XLSXContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

var exportHeaders = []string{
	"Order ID", "Date", "Customer", "Email", "Phone", "Shipping Address", "Status", "Items",
	"Subtotal", "Discount Code", "Discount", "Shipping", "Tax", "Total",
}

// WriteXLSX writes orders as a single-sheet workbook.
func WriteXLSX(w io.Writer, orders []Order) error {
	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Orders")
	if err != nil {
		return fmt.Errorf("add sheet: %w", err)
	}

	headerRow := sheet.AddRow()
	for _, h := range exportHeaders {
		headerRow.AddCell().SetValue(h)
	}

	for _, o := range orders {
		row := sheet.AddRow()
		row.AddCell().SetValue(o.ID)
		row.AddCell().SetValue(o.CreatedAt.Format("2006-01-02 15:04:05"))
		row.AddCell().SetValue(o.FullName())
		row.AddCell().SetValue(o.Email)
		row.AddCell().SetValue(o.Phone)
		row.AddCell().SetValue(formatAddress(o.Shipping))
		row.AddCell().SetValue(string(o.Status))
		row.AddCell().SetValue(formatItems(o.Items))
		row.AddCell().SetValue(o.Subtotal.StringFixed(2))
		row.AddCell().SetValue(o.DiscountCode)
		row.AddCell().SetValue(o.DiscountAmount.StringFixed(2))
		row.AddCell().SetValue(o.ShippingCost.StringFixed(2))
		row.AddCell().SetValue(o.Tax.StringFixed(2))
		row.AddCell().SetValue(o.Total.StringFixed(2))
	}

	if err := file.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func formatAddress(s Shipping) string {
	line := s.Address
	if s.Apartment != "" {
		line += ", " + s.Apartment
	}
	return fmt.Sprintf("%s, %s, %s %s", line, s.City, s.State, s.ZipCode)
}

func formatItems(items []Item) string {
	parts := make([]string, 0, len(items))
	for _, it := range items {
		parts = append(parts, fmt.Sprintf("%s (%s) x%d", it.ProductName, it.Size, it.Quantity))
	}
	return strings.Join(parts, "; ")
}
