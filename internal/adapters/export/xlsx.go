package export

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/molivares/tiendasim/internal/domain"
)

// Planillas de exportación: comprobante de una orden y dump del catálogo.
// Generan el workbook en memoria; servirlo o guardarlo es del llamador.

func OrderXLSX(o *domain.Order) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)

	rows := [][]any{
		{"Orden", o.ID.String()},
		{"Cliente", o.Name},
		{"Email", o.Email},
		{"Dirección", o.Address + ", " + o.City},
		{"Pago", string(o.PaymentMethod)},
		{},
		{"Producto", "Cantidad", "Precio unit.", "Importe"},
	}
	for _, it := range o.Items {
		rows = append(rows, []any{it.Title, it.Qty, it.UnitPrice, float64(it.Qty) * it.UnitPrice})
	}
	rows = append(rows,
		[]any{},
		[]any{"Subtotal", o.Subtotal},
		[]any{"Descuento", -o.Discount},
		[]any{"Envío", o.ShippingCost},
		[]any{"Total", o.Total},
	)
	if err := writeRows(f, sheet, rows); err != nil {
		return nil, err
	}
	return flush(f)
}

func CatalogXLSX(cat domain.Catalog) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)

	rows := [][]any{{"ID", "Título", "Categoría", "Precio", "Stock"}}
	for _, p := range cat.Products {
		rows = append(rows, []any{p.ID, p.Title, cat.CategoryName(p.Category), p.Price, p.Stock})
	}
	if err := writeRows(f, sheet, rows); err != nil {
		return nil, err
	}
	return flush(f)
}

func writeRows(f *excelize.File, sheet string, rows [][]any) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("fila %d: %w", i+1, err)
		}
	}
	return nil
}

func flush(f *excelize.File) ([]byte, error) {
	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
