package export

import (
	"fmt"
	"os"
	"path/filepath"

	"sharent/internal/models"

	"github.com/xuri/excelize/v2"
)

const sheetName = "Bookings"

// WriteBookingsReport writes the current booking schedule to an XLSX
// file: one row per booking with its item and lifecycle status. The
// bookings are expected pre-sorted (newest end first).
func WriteBookingsReport(path string, items []*models.Item, bookings []*models.Booking) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create report directory: %w", err)
	}

	itemNames := make(map[int64]string, len(items))
	for _, item := range items {
		itemNames[item.ID] = item.Name
	}

	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(sheetName)
	if err != nil {
		return fmt.Errorf("create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		return fmt.Errorf("create header style: %w", err)
	}

	headers := []string{"ID", "Item", "Booker", "Start", "End", "Status"}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheetName, cell, header)
	}
	_ = f.SetCellStyle(sheetName, "A1", "F1", headerStyle)

	for row, b := range bookings {
		name := itemNames[b.ItemID]
		if name == "" {
			name = fmt.Sprintf("item %d", b.ItemID)
		}
		values := []any{
			b.ID,
			name,
			b.BookerID,
			b.Start.Format("2006-01-02 15:04"),
			b.End.Format("2006-01-02 15:04"),
			string(b.Status),
		}
		for col, value := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			_ = f.SetCellValue(sheetName, cell, value)
		}
	}

	_ = f.SetColWidth(sheetName, "B", "B", 30)
	_ = f.SetColWidth(sheetName, "D", "E", 20)

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save report: %w", err)
	}
	return nil
}
