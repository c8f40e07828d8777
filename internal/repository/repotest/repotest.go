// Package repotest provides in-memory repository implementations for tests.
// They honor the same contracts as the SQL-backed repositories: not-found is
// common.ErrNotFound, serial lookups are exact, model lookups are
// case-insensitive oldest-first, and duplicate serials are rejected.
package repotest

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/valvetrack/valve-docs/internal/common"
	"github.com/valvetrack/valve-docs/internal/entity"
)

type ValveStore struct {
	mu     sync.Mutex
	valves []*entity.Valve
}

func NewValveStore() *ValveStore { return &ValveStore{} }

func (s *ValveStore) GetByID(_ context.Context, id uuid.UUID) (*entity.Valve, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, v := range s.valves {
		if v.ID == id {
			return v, nil
		}
	}
	return nil, common.ErrNotFound
}

func (s *ValveStore) GetBySerial(_ context.Context, serial string) (*entity.Valve, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, v := range s.valves {
		if v.SerialNumber == serial {
			return v, nil
		}
	}
	return nil, common.ErrNotFound
}

func (s *ValveStore) FindByModel(_ context.Context, model string) (*entity.Valve, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, v := range s.valves {
		if strings.EqualFold(v.Model, model) {
			return v, nil
		}
	}
	return nil, common.ErrNotFound
}

func (s *ValveStore) Create(_ context.Context, v *entity.Valve) (*entity.Valve, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.valves {
		if existing.SerialNumber == v.SerialNumber {
			return nil, fmt.Errorf("duplicate serial %q", v.SerialNumber)
		}
	}
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	now := time.Now().UTC()
	v.CreatedAt = now
	v.UpdatedAt = now
	s.valves = append(s.valves, v)
	return v, nil
}

func (s *ValveStore) List(_ context.Context) ([]*entity.Valve, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*entity.Valve, len(s.valves))
	copy(out, s.valves)
	return out, nil
}

func (s *ValveStore) StampCalibration(ctx context.Context, id uuid.UUID, date time.Time) error {
	v, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	v.LastCalibrationDate = &date
	v.UpdatedAt = time.Now().UTC()
	return nil
}

func (s *ValveStore) StampService(ctx context.Context, id uuid.UUID, date time.Time) error {
	v, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	v.LastServiceDate = &date
	v.UpdatedAt = time.Now().UTC()
	return nil
}

type DocumentStore struct {
	mu   sync.Mutex
	docs []*entity.Document
}

func NewDocumentStore() *DocumentStore { return &DocumentStore{} }

func (s *DocumentStore) Insert(_ context.Context, d *entity.Document) (*entity.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	if d.UploadedAt.IsZero() {
		d.UploadedAt = time.Now().UTC()
	}
	s.docs = append(s.docs, d)
	return d, nil
}

func (s *DocumentStore) GetByID(_ context.Context, id uuid.UUID) (*entity.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, d := range s.docs {
		if d.ID == id {
			return d, nil
		}
	}
	return nil, common.ErrNotFound
}

func (s *DocumentStore) SetValveID(_ context.Context, docID, valveID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, d := range s.docs {
		if d.ID == docID {
			id := valveID
			d.ValveID = &id
			return nil
		}
	}
	return common.ErrNotFound
}

// Count reports how many documents were inserted, linked or not.
func (s *DocumentStore) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.docs)
}

func (s *DocumentStore) ListByValve(_ context.Context, valveID uuid.UUID) ([]*entity.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*entity.Document
	for _, d := range s.docs {
		if d.ValveID != nil && *d.ValveID == valveID {
			out = append(out, d)
		}
	}
	return out, nil
}
