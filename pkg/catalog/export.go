package catalog

import (
	"context"
	"fmt"
	"io"

	"github.com/tealeg/xlsx"
)

const ExportContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

var exportHeaders = []string{
	"ID", "Name", "Description", "Price", "OriginalPrice", "Image",
	"Category", "CategoryID", "Brand", "Rating", "Stock", "CreatedAt",
}

// ExportProducts writes every product as a single-sheet xlsx workbook.
func (s *Service) ExportProducts(ctx context.Context, w io.Writer) error {
	products, err := s.store.AllProducts(ctx)
	if err != nil {
		return err
	}

	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Products")
	if err != nil {
		return fmt.Errorf("failed to create sheet: %w", err)
	}

	header := sheet.AddRow()
	for _, h := range exportHeaders {
		header.AddCell().SetString(h)
	}

	for _, p := range products {
		v := NewProductView(p)
		row := sheet.AddRow()
		row.AddCell().SetInt(int(v.ID))
		row.AddCell().SetString(v.Name)
		row.AddCell().SetString(deref(v.Description))
		row.AddCell().SetFloat(v.Price)
		if v.OriginalPrice != nil {
			row.AddCell().SetFloat(*v.OriginalPrice)
		} else {
			row.AddCell()
		}
		row.AddCell().SetString(deref(v.Image))
		row.AddCell().SetString(deref(v.Category))
		if v.CategoryID != nil {
			row.AddCell().SetInt(int(*v.CategoryID))
		} else {
			row.AddCell()
		}
		row.AddCell().SetString(v.Brand)
		row.AddCell().SetFloat(v.Rating)
		row.AddCell().SetInt(v.Stock)
		row.AddCell().SetString(v.CreatedAt.Format("2006-01-02 15:04:05"))
	}

	if err := file.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
