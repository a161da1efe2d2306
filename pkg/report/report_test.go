package report

import (
	"context"
	"testing"
	"time"

	"github.com/kisan-depin/dmrv/pkg/geo"
	"github.com/kisan-depin/dmrv/pkg/verify"
)

func sampleReport(createdAt time.Time) *Report {
	r := New(
		geo.Coordinate{Lat: 28.6139, Lon: 77.2090},
		verify.Result{Status: verify.Violation, Confidence: 0.9, ModelVersion: verify.ModelVersion},
		Artifacts{Satellite: "output/satellite_28.6139_77.2090.png"},
	)
	r.CreatedAt = createdAt
	return r
}

func TestNew(t *testing.T) {
	a := sampleReport(time.Now())
	b := sampleReport(time.Now())

	if a.ID == "" || b.ID == "" {
		t.Fatal("reports should get IDs")
	}
	if a.ID == b.ID {
		t.Error("reports should get unique IDs")
	}
}

func TestMemoryStoreCRUD(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	defer s.Close()

	r := sampleReport(time.Now())
	if err := s.Put(ctx, r); err != nil {
		t.Fatalf("Put error: %v", err)
	}

	got, err := s.Get(ctx, r.ID)
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if got == nil {
		t.Fatal("stored report should be retrievable")
	}
	if got.Result.Status != verify.Violation {
		t.Errorf("status = %v", got.Result.Status)
	}

	// Missing report returns nil, nil.
	missing, err := s.Get(ctx, "nope")
	if err != nil || missing != nil {
		t.Errorf("Get(missing) = %v, %v; want nil, nil", missing, err)
	}

	if err := s.Delete(ctx, r.ID); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
	if got, _ := s.Get(ctx, r.ID); got != nil {
		t.Error("deleted report should be gone")
	}

	// Deleting again is not an error.
	if err := s.Delete(ctx, r.ID); err != nil {
		t.Errorf("Delete(missing) error: %v", err)
	}
}

func TestMemoryStoreListOrder(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	defer s.Close()

	base := time.Date(2025, 11, 1, 0, 0, 0, 0, time.UTC)
	var ids []string
	for i := 0; i < 3; i++ {
		r := sampleReport(base.Add(time.Duration(i) * time.Hour))
		ids = append(ids, r.ID)
		if err := s.Put(ctx, r); err != nil {
			t.Fatalf("Put error: %v", err)
		}
	}

	out, err := s.List(ctx, 0)
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if len(out) != 3 {
		t.Fatalf("List returned %d reports", len(out))
	}
	if out[0].ID != ids[2] || out[2].ID != ids[0] {
		t.Error("List should return newest first")
	}

	limited, err := s.List(ctx, 2)
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if len(limited) != 2 {
		t.Errorf("List(2) returned %d reports", len(limited))
	}
}

func TestFileStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	s, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore error: %v", err)
	}
	defer s.Close()

	r := sampleReport(time.Now().UTC().Truncate(time.Second))
	if err := s.Put(ctx, r); err != nil {
		t.Fatalf("Put error: %v", err)
	}

	got, err := s.Get(ctx, r.ID)
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if got == nil {
		t.Fatal("stored report should be retrievable")
	}
	if got.Location != r.Location {
		t.Errorf("location = %+v, want %+v", got.Location, r.Location)
	}
	if got.Artifacts.Satellite != r.Artifacts.Satellite {
		t.Errorf("artifacts = %+v", got.Artifacts)
	}

	list, err := s.List(ctx, 0)
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if len(list) != 1 {
		t.Errorf("List returned %d reports", len(list))
	}

	if err := s.Delete(ctx, r.ID); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
	if got, _ := s.Get(ctx, r.ID); got != nil {
		t.Error("deleted report should be gone")
	}
}
