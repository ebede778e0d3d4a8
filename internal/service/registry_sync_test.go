package service

import (
	"context"
	"errors"
	"testing"

	"github.com/PShah260898/PRS-FinSight/internal/amfi"
)

type stubFetcher struct {
	schemes []amfi.Scheme
	err     error
}

func (f *stubFetcher) Fetch(context.Context) ([]amfi.Scheme, error) {
	return f.schemes, f.err
}

func TestRegistrySync_Upserts(t *testing.T) {
	repo := newStubRepo()
	svc := &RegistrySyncService{
		Repo: repo,
		Client: &stubFetcher{schemes: []amfi.Scheme{
			{Code: 100, Name: "Fund A", AMC: "House A", NAV: dec("10.5"), Date: "27-Aug-2026"},
			{Code: 200, Name: "Fund B", AMC: "House B", NAV: dec("99.1"), Date: "27-Aug-2026"},
			{Code: 300, Name: "Fund C", AMC: "House B", NAV: dec("12"), Date: "27-Aug-2026"},
		}},
		BatchSize: 2,
	}

	if err := svc.Sync(context.Background()); err != nil {
		t.Fatalf("sync: %v", err)
	}
	if len(repo.fundSchemes) != 3 {
		t.Fatalf("schemes=%d want 3", len(repo.fundSchemes))
	}
	if repo.fundSchemes[0].SchemeCode != 100 || repo.fundSchemes[0].SchemeName != "Fund A" {
		t.Fatalf("first scheme mapped wrong: %+v", repo.fundSchemes[0])
	}
	if repo.fundSchemes[0].LastSeenAt.IsZero() {
		t.Fatalf("last_seen_at not stamped")
	}

	state, ok := repo.syncStates["fund_registry"]
	if !ok {
		t.Fatalf("sync state not recorded")
	}
	if state.LastCount != 3 || state.LastError != "" {
		t.Fatalf("state=%+v want count 3 and no error", state)
	}
}

func TestRegistrySync_FetchFailureRecorded(t *testing.T) {
	repo := newStubRepo()
	svc := &RegistrySyncService{
		Repo:   repo,
		Client: &stubFetcher{err: errors.New("upstream down")},
	}

	if err := svc.Sync(context.Background()); err == nil {
		t.Fatalf("expected error")
	}
	state, ok := repo.syncStates["fund_registry"]
	if !ok {
		t.Fatalf("sync state not recorded on failure")
	}
	if state.LastError == "" {
		t.Fatalf("last_error empty, want upstream failure recorded")
	}
	if len(repo.fundSchemes) != 0 {
		t.Fatalf("schemes written despite fetch failure")
	}
}
