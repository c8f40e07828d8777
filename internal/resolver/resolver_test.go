package resolver

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/valvetrack/valve-docs/constants"
	"github.com/valvetrack/valve-docs/internal/entity"
	"github.com/valvetrack/valve-docs/internal/repository/repotest"
)

func TestResolveCreatesThenMatches(t *testing.T) {
	ctx := context.Background()
	store := repotest.NewValveStore()
	res := NewResolver(store, nil)

	v1, created, err := res.Resolve(ctx, "SN-12345-A", "", ExtractionContext{Brand: "Spirax"})
	if err != nil {
		t.Fatalf("first resolve: %v", err)
	}
	if !created {
		t.Fatal("first resolve of an unseen serial must create")
	}
	if v1.SerialNumber != "SN-12345-A" || v1.Brand != "Spirax" {
		t.Errorf("created valve = %+v", v1)
	}

	v2, created, err := res.Resolve(ctx, "SN-12345-A", "", ExtractionContext{})
	if err != nil {
		t.Fatalf("second resolve: %v", err)
	}
	if created {
		t.Fatal("second resolve must match, not create")
	}
	if v2.ID != v1.ID {
		t.Errorf("matched %s, want %s", v2.ID, v1.ID)
	}
}

func TestResolveSerialIsCaseSensitive(t *testing.T) {
	ctx := context.Background()
	store := repotest.NewValveStore()
	res := NewResolver(store, nil)

	v1, _, err := res.Resolve(ctx, "SN-ABC", "", ExtractionContext{})
	if err != nil {
		t.Fatal(err)
	}
	v2, created, err := res.Resolve(ctx, "sn-abc", "", ExtractionContext{})
	if err != nil {
		t.Fatal(err)
	}
	if !created || v2.ID == v1.ID {
		t.Error("differently-cased serial must create a separate record")
	}
}

func TestResolveByModelCaseInsensitive(t *testing.T) {
	ctx := context.Background()
	store := repotest.NewValveStore()
	if _, err := store.Create(ctx, &entity.Valve{SerialNumber: "SN-1", Model: "Crosby-JOS"}); err != nil {
		t.Fatal(err)
	}
	res := NewResolver(store, nil)

	v, created, err := res.Resolve(ctx, "", "crosby-jos", ExtractionContext{})
	if err != nil {
		t.Fatal(err)
	}
	if created {
		t.Fatal("model lookup should have matched the seeded valve")
	}
	if v.SerialNumber != "SN-1" {
		t.Errorf("matched %+v", v)
	}
}

func TestResolveSerialOutranksModel(t *testing.T) {
	ctx := context.Background()
	store := repotest.NewValveStore()
	bySerial, _ := store.Create(ctx, &entity.Valve{SerialNumber: "SN-9", Model: "M-1"})
	if _, err := store.Create(ctx, &entity.Valve{SerialNumber: "SN-other", Model: "M-2"}); err != nil {
		t.Fatal(err)
	}
	res := NewResolver(store, nil)

	v, _, err := res.Resolve(ctx, "SN-9", "M-2", ExtractionContext{})
	if err != nil {
		t.Fatal(err)
	}
	if v.ID != bySerial.ID {
		t.Error("serial match must win over model match")
	}
}

func TestResolveModelOnlyCreatesWithModelAsSerial(t *testing.T) {
	ctx := context.Background()
	res := NewResolver(repotest.NewValveStore(), nil)

	v, created, err := res.Resolve(ctx, "", "MOD-XYZ", ExtractionContext{})
	if err != nil {
		t.Fatal(err)
	}
	if !created || v.SerialNumber != "MOD-XYZ" || v.Model != "MOD-XYZ" {
		t.Errorf("created = %v, valve = %+v", created, v)
	}
}

func TestResolveNoIdentifiers(t *testing.T) {
	res := NewResolver(repotest.NewValveStore(), nil)
	v, created, err := res.Resolve(context.Background(), "  ", "", ExtractionContext{})
	if err != nil {
		t.Fatal(err)
	}
	if v != nil || created {
		t.Errorf("no identifiers must resolve to nothing, got %+v created=%v", v, created)
	}
}

func TestStampServiceHistory(t *testing.T) {
	ctx := context.Background()
	store := repotest.NewValveStore()
	res := NewResolver(store, nil)
	v, _, err := res.Resolve(ctx, "SN-5", "", ExtractionContext{})
	if err != nil {
		t.Fatal(err)
	}

	calDate := time.Date(2026, time.February, 16, 0, 0, 0, 0, time.UTC)
	if err := res.StampServiceHistory(ctx, v, constants.DocTypeCalibration, &calDate, true); err != nil {
		t.Fatal(err)
	}
	got, _ := store.GetByID(ctx, v.ID)
	if got.LastCalibrationDate == nil || !got.LastCalibrationDate.Equal(calDate) {
		t.Errorf("LastCalibrationDate = %v, want %v", got.LastCalibrationDate, calDate)
	}
	if got.LastServiceDate != nil {
		t.Error("calibration stamp must not touch the service date")
	}

	svcDate := time.Date(2026, time.March, 3, 0, 0, 0, 0, time.UTC)
	if err := res.StampServiceHistory(ctx, v, constants.DocTypeMaintenance, &svcDate, true); err != nil {
		t.Fatal(err)
	}
	got, _ = store.GetByID(ctx, v.ID)
	if got.LastServiceDate == nil || !got.LastServiceDate.Equal(svcDate) {
		t.Errorf("LastServiceDate = %v, want %v", got.LastServiceDate, svcDate)
	}
}

func TestStampServiceHistorySkips(t *testing.T) {
	ctx := context.Background()
	store := repotest.NewValveStore()
	res := NewResolver(store, nil)
	v, _, _ := res.Resolve(ctx, "SN-6", "", ExtractionContext{})
	date := time.Now().UTC()

	// Failed extraction.
	if err := res.StampServiceHistory(ctx, v, constants.DocTypeCalibration, &date, false); err != nil {
		t.Fatal(err)
	}
	// No normalized date.
	if err := res.StampServiceHistory(ctx, v, constants.DocTypeCalibration, nil, true); err != nil {
		t.Fatal(err)
	}
	// Unknown type.
	if err := res.StampServiceHistory(ctx, v, constants.DocTypeUnknown, &date, true); err != nil {
		t.Fatal(err)
	}

	got, _ := store.GetByID(ctx, v.ID)
	if got.LastCalibrationDate != nil || got.LastServiceDate != nil {
		t.Errorf("no stamp expected, got %+v", got)
	}
}

func TestResolveSeedsOrganization(t *testing.T) {
	ctx := context.Background()
	store := repotest.NewValveStore()
	res := NewResolver(store, nil)
	org := uuid.New()

	v, _, err := res.Resolve(ctx, "SN-7", "", ExtractionContext{OrganizationID: &org, Model: "M-3", Size: "1\""})
	if err != nil {
		t.Fatal(err)
	}
	if v.OrganizationID == nil || *v.OrganizationID != org {
		t.Error("organization not seeded")
	}
	if v.Model != "M-3" || v.Size != "1\"" {
		t.Errorf("context not seeded: %+v", v)
	}
}
