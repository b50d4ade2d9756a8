// Package export renders admin reports.
package export

import (
	"fmt"
	"io"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/iliyamo/storefront-api/internal/model"
)

const reservationsSheet = "Reservations"

var reservationHeader = []any{
	"ID", "Customer", "Email", "Phone", "Date", "Time", "Party size", "Status", "Special requests", "Created at",
}

// XLSXContentType is the media type of WriteReservations output.
const XLSXContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// WriteReservations writes one row per reservation to w as an xlsx workbook.
func WriteReservations(w io.Writer, items []model.Reservation) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", reservationsSheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}
	sw, err := f.NewStreamWriter(reservationsSheet)
	if err != nil {
		return fmt.Errorf("stream writer: %w", err)
	}
	if err := sw.SetColWidth(1, 10, 18); err != nil {
		return err
	}
	if err := sw.SetRow("A1", reservationHeader); err != nil {
		return err
	}
	for i, r := range items {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := []any{
			r.ID, r.CustomerName, r.Email, r.Phone, r.Date, r.Time,
			r.PartySize, r.Status, r.SpecialRequests, r.CreatedAt.UTC().Format(time.RFC3339),
		}
		if err := sw.SetRow(cell, row); err != nil {
			return err
		}
	}
	if err := sw.Flush(); err != nil {
		return fmt.Errorf("flush sheet: %w", err)
	}
	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

// ReservationsFilename names an export taken at now.
func ReservationsFilename(now time.Time) string {
	return "reservations-" + now.UTC().Format("20060102-150405") + ".xlsx"
}
