package export

import (
	"context"
	"fmt"
	"time"

	"shareit/internal/domain"

	"github.com/xuri/excelize/v2"
)

const sheetName = "Bookings"

var headers = []string{"ID", "Item ID", "Booker ID", "Start", "End", "Status", "Created At"}

// Exporter строит xlsx-отчет по бронированиям за период.
type Exporter struct {
	repo domain.Repository
}

func NewExporter(repo domain.Repository) *Exporter {
	return &Exporter{repo: repo}
}

// BookingsReport собирает бронирования, начинающиеся в [start, end], в одну
// книгу. Закрытие файла остается за вызывающим.
func (e *Exporter) BookingsReport(ctx context.Context, start, end time.Time) (*excelize.File, error) {
	bookings, err := e.repo.GetBookingsByDateRange(ctx, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to load bookings for export: %w", err)
	}

	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return nil, fmt.Errorf("failed to rename sheet: %w", err)
	}

	for col, header := range headers {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(sheetName, cell, header); err != nil {
			return nil, fmt.Errorf("failed to write header: %w", err)
		}
	}

	for row, b := range bookings {
		values := []any{
			b.ID,
			b.ItemID,
			b.BookerID,
			b.Start.Format(time.RFC3339),
			b.End.Format(time.RFC3339),
			string(b.Status),
			b.CreatedAt.Format(time.RFC3339),
		}
		for col, v := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row+2)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(sheetName, cell, v); err != nil {
				return nil, fmt.Errorf("failed to write booking row: %w", err)
			}
		}
	}

	return f, nil
}
