package core_test

import (
	"context"
	"errors"
	"testing"

	"conversion-engine/internal/core"
)

type failingPackagingRepo struct{ err error }

func (f *failingPackagingRepo) GetByID(context.Context, string) (*core.PackagingRecord, error) {
	return nil, f.err
}

type failingProductRepo struct{ err error }

func (f *failingProductRepo) GetByCode(context.Context, string) (*core.ProductRecord, error) {
	return nil, f.err
}

func TestPackagingResolver_RepositoryErrorIsWrapped(t *testing.T) {
	repoErr := errors.New("connection reset")
	resolver := core.NewPackagingResolver(&failingPackagingRepo{err: repoErr})

	_, err := resolver.Resolve(context.Background(), "DRUM-200")
	if !errors.Is(err, repoErr) {
		t.Fatalf("expected wrapped repository error, got %v", err)
	}
	var notFound *core.PackagingNotFoundError
	if errors.As(err, &notFound) {
		t.Error("a repository failure must not be reported as not-found")
	}
}

func TestPackagingResolver_SnapshotCapturesMasterValues(t *testing.T) {
	repo := &fakePackagingRepo{records: map[string]core.PackagingRecord{
		"DRUM-200": {PackagingTypeID: "DRUM-200", Name: "Steel Drum 200L", CapacityLiters: d("200"), NetWeightKgDefault: d("158"), IsActive: true},
	}}
	resolver := core.NewPackagingResolver(repo)

	snap, err := resolver.Resolve(context.Background(), "DRUM-200")
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if !snap.CapacityLiters.Equal(d("200")) || !snap.NetWeightKgDefault.Equal(d("158")) {
		t.Errorf("snapshot did not capture master values: %+v", snap)
	}
	if snap.CapturedAt.IsZero() {
		t.Error("snapshot must record when it was captured")
	}
}

func TestDensityResolver_RepositoryErrorIsWrapped(t *testing.T) {
	repoErr := errors.New("connection reset")
	resolver := core.NewDensityResolver(&failingProductRepo{err: repoErr})

	_, err := resolver.Resolve(context.Background(), "LUBE-1", nil, nil)
	if !errors.Is(err, repoErr) {
		t.Fatalf("expected wrapped repository error, got %v", err)
	}
}

func TestDensityResolver_FrozenSkipsRepository(t *testing.T) {
	// A frozen density must be reused as-is; the product master is not
	// consulted at all, even if it would fail.
	resolver := core.NewDensityResolver(&failingProductRepo{err: errors.New("must not be called")})

	frozen := &core.DensityInfo{DensityKgPerLiter: d("0.81"), Source: core.DensityFromProductMaster}
	info, err := resolver.Resolve(context.Background(), "LUBE-1", nil, frozen)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if !info.DensityKgPerLiter.Equal(d("0.81")) {
		t.Errorf("frozen density altered: got %s, want 0.81", info.DensityKgPerLiter)
	}
	if info.Source != core.DensityFrozen {
		t.Errorf("source = %s, want FROZEN", info.Source)
	}
}

func TestDensityResolver_UnknownProduct(t *testing.T) {
	resolver := core.NewDensityResolver(&fakeProductRepo{records: map[string]core.ProductRecord{}})

	_, err := resolver.Resolve(context.Background(), "NOPE", nil, nil)
	var missing *core.MissingDensityError
	if !errors.As(err, &missing) {
		t.Fatalf("expected MissingDensityError, got %v", err)
	}
}
