package stakeservice

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"
)

var exportHeaders = []string{"Número", "Status", "Reservante", "Telefone", "Valor Pago (R$)"}

// ExportWorkbook builds an xlsx workbook for a tournament's stakes, one sheet
// per bird type, for the admin export button.
func (s *StakeServiceImpl) ExportWorkbook(ctx context.Context, tournamentID uuid.UUID) (*excelize.File, error) {
	ctx, span := s.tracer.Start(ctx, "stake.export_workbook")
	defer span.End()

	rows, err := s.StakeDB.ListForExport(ctx, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("failed to load export rows: %w", err)
	}

	f := excelize.NewFile()

	currentSheet := ""
	rowIndex := 0
	for _, row := range rows {
		if row.BirdTypeName != currentSheet {
			currentSheet = row.BirdTypeName
			if _, err := f.NewSheet(currentSheet); err != nil {
				return nil, fmt.Errorf("failed to create sheet %q: %w", currentSheet, err)
			}
			for col, header := range exportHeaders {
				cell, err := excelize.CoordinatesToCellName(col+1, 1)
				if err != nil {
					return nil, fmt.Errorf("failed to compute header cell: %w", err)
				}
				if err := f.SetCellValue(currentSheet, cell, header); err != nil {
					return nil, fmt.Errorf("failed to write header: %w", err)
				}
			}
			rowIndex = 2
		}

		values := []interface{}{
			row.Number,
			string(row.Status),
			row.ReservantName,
			row.ReservantPhone,
			FormatAmount(row.AmountPaidCents),
		}
		for col, value := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, rowIndex)
			if err != nil {
				return nil, fmt.Errorf("failed to compute cell: %w", err)
			}
			if err := f.SetCellValue(currentSheet, cell, value); err != nil {
				return nil, fmt.Errorf("failed to write cell: %w", err)
			}
		}
		rowIndex++
	}

	// Drop the default sheet when we produced at least one of our own.
	if currentSheet != "" {
		if err := f.DeleteSheet("Sheet1"); err != nil {
			return nil, fmt.Errorf("failed to delete default sheet: %w", err)
		}
	}

	return f, nil
}
