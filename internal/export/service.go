package export

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	"github.com/valvetrack/valve-docs/internal/repository"
)

// Service is a tiny façade over repositories that produces XLSX bytes for
// valve history exports.
type Service struct {
	valvesRepo repository.ValveRepository
	docsRepo   repository.DocumentRepository
	logger     *slog.Logger
}

func NewService(valves repository.ValveRepository, docs repository.DocumentRepository, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{valvesRepo: valves, docsRepo: docs, logger: logger}
}

// ExportValveHistoryXLSX returns an XLSX workbook (as bytes) with the
// document history of one valve: the "hoja de vida" a client downloads.
func (s *Service) ExportValveHistoryXLSX(ctx context.Context, valveID uuid.UUID) ([]byte, error) {
	start := time.Now()

	valve, err := s.valvesRepo.GetByID(ctx, valveID)
	if err != nil {
		return nil, fmt.Errorf("load valve: %w", err)
	}
	docs, err := s.docsRepo.ListByValve(ctx, valveID)
	if err != nil {
		return nil, fmt.Errorf("query documents: %w", err)
	}

	f := excelize.NewFile()
	const sheet = "Historial"
	if index, _ := f.GetSheetIndex(sheet); index == -1 {
		if _, err := f.NewSheet(sheet); err != nil {
			return nil, err
		}
	}
	activeIndex, _ := f.GetSheetIndex(sheet)
	f.SetActiveSheet(activeIndex)
	if defIdx, _ := f.GetSheetIndex("Sheet1"); defIdx != -1 {
		_ = f.DeleteSheet("Sheet1")
	}

	write := func(col, row int, v any) {
		cell, _ := excelize.CoordinatesToCellName(col, row)
		_ = f.SetCellValue(sheet, cell, v)
	}

	// Valve header block.
	write(1, 1, "Número de Serie")
	write(2, 1, valve.SerialNumber)
	write(1, 2, "Marca / Modelo")
	write(2, 2, fmt.Sprintf("%s %s", valve.Brand, valve.Model))
	write(1, 3, "Última Calibración")
	write(2, 3, formatDate(valve.LastCalibrationDate))
	write(1, 4, "Último Servicio")
	write(2, 4, formatDate(valve.LastServiceDate))

	headers := []string{
		"Fecha",
		"Tipo de Documento",
		"Número de Documento",
		"Archivo",
		"Vencimiento",
		"Revisión Manual",
	}
	headerRow := 6
	for i, h := range headers {
		write(i+1, headerRow, h)
	}

	row := headerRow + 1
	for _, d := range docs {
		write(1, row, formatDatePtrOrEmpty(d.DocumentDate))
		write(2, row, string(d.DocumentType))
		write(3, row, d.DocumentNumber)
		write(4, row, d.OriginalFilename)
		write(5, row, formatDatePtrOrEmpty(d.ExpiryDate))
		if d.NeedsReview {
			write(6, row, "sí")
		} else {
			write(6, row, "no")
		}
		row++
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}

	s.logger.Info("export.ok",
		"valve_id", valveID, "documents", len(docs), "duration", time.Since(start))
	return buf.Bytes(), nil
}

func formatDate(t *time.Time) string {
	if t == nil {
		return "-"
	}
	return t.Format("2006-01-02")
}

func formatDatePtrOrEmpty(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("2006-01-02")
}
