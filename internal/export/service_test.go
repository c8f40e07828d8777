package export

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	"github.com/valvetrack/valve-docs/constants"
	"github.com/valvetrack/valve-docs/internal/common"
	"github.com/valvetrack/valve-docs/internal/entity"
	"github.com/valvetrack/valve-docs/internal/repository/repotest"
)

func TestExportValveHistoryXLSX(t *testing.T) {
	ctx := context.Background()
	valves := repotest.NewValveStore()
	docs := repotest.NewDocumentStore()

	cal := time.Date(2026, time.February, 16, 0, 0, 0, 0, time.UTC)
	valve, err := valves.Create(ctx, &entity.Valve{
		SerialNumber:        "SN-12345-A",
		Brand:               "Crosby",
		Model:               "JOS-E",
		LastCalibrationDate: &cal,
	})
	if err != nil {
		t.Fatal(err)
	}
	doc := &entity.Document{
		ValveID:        &valve.ID,
		DocumentType:   constants.DocTypeCalibration,
		DocumentNumber: "CERT-2026-001",
		DocumentDate:   &cal,
	}
	if _, err := docs.Insert(ctx, doc); err != nil {
		t.Fatal(err)
	}

	data, err := NewService(valves, docs, nil).ExportValveHistoryXLSX(ctx, valve.ID)
	if err != nil {
		t.Fatalf("export: %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("workbook does not open: %v", err)
	}
	defer f.Close()

	serial, err := f.GetCellValue("Historial", "B1")
	if err != nil {
		t.Fatal(err)
	}
	if serial != "SN-12345-A" {
		t.Errorf("B1 = %q, want the serial number", serial)
	}
	number, err := f.GetCellValue("Historial", "C7")
	if err != nil {
		t.Fatal(err)
	}
	if number != "CERT-2026-001" {
		t.Errorf("C7 = %q, want the document number", number)
	}
}

func TestExportUnknownValve(t *testing.T) {
	svc := NewService(repotest.NewValveStore(), repotest.NewDocumentStore(), nil)
	_, err := svc.ExportValveHistoryXLSX(context.Background(), uuid.New())
	if !errors.Is(err, common.ErrNotFound) {
		t.Fatalf("err = %v, want not-found", err)
	}
}
