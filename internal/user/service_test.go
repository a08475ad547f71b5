package user

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/fkhayef/popbarter/internal/database"
	"github.com/fkhayef/popbarter/internal/popcap"
	"github.com/fkhayef/popbarter/pkg/apperr"
)

func newTestService(t *testing.T, repo Repository) *Service {
	t.Helper()
	catalog, err := popcap.DefaultCatalog()
	if err != nil {
		t.Fatalf("load catalog: %v", err)
	}
	return NewService(repo, catalog, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func repositories(t *testing.T) map[string]Repository {
	t.Helper()
	db, err := database.NewSQLiteConnection(":memory:")
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return map[string]Repository{
		"sqlite": NewRepository(db),
		"memory": NewMemoryRepository(),
	}
}

func TestSelectPresetRecordsDerivedCap(t *testing.T) {
	for name, repo := range repositories(t) {
		t.Run(name, func(t *testing.T) {
			svc := newTestService(t, repo)
			ctx := context.Background()

			p, err := svc.SelectPreset(ctx, "maria", "Coffee Cart (Singapore)")
			if err != nil {
				t.Fatalf("SelectPreset: %v", err)
			}
			if p.PopTokenCap != 810 || p.CapSource != CapSourcePreset {
				t.Errorf("unexpected profile: %+v", p)
			}

			got, err := svc.Get(ctx, "maria")
			if err != nil {
				t.Fatalf("Get: %v", err)
			}
			if got.PresetName != "Coffee Cart (Singapore)" || got.PopTokenCap != 810 {
				t.Errorf("stored profile = %+v", got)
			}
		})
	}
}

func TestRecordCapOverwrites(t *testing.T) {
	for name, repo := range repositories(t) {
		t.Run(name, func(t *testing.T) {
			svc := newTestService(t, repo)
			ctx := context.Background()

			if _, err := svc.SelectPreset(ctx, "tito", "TikTok Live Seller (Singapore)"); err != nil {
				t.Fatalf("SelectPreset: %v", err)
			}
			p, err := svc.RecordCap(ctx, "tito", CapSourceBrankas, "", 840)
			if err != nil {
				t.Fatalf("RecordCap: %v", err)
			}
			if p.PopTokenCap != 840 || p.CapSource != CapSourceBrankas || p.PresetName != "" {
				t.Errorf("unexpected profile: %+v", p)
			}
		})
	}
}

func TestSelectPresetUnknown(t *testing.T) {
	svc := newTestService(t, NewMemoryRepository())

	_, err := svc.SelectPreset(context.Background(), "maria", "Lemonade Stand")
	if !errors.Is(err, ErrUnknownPreset) {
		t.Fatalf("expected ErrUnknownPreset, got %v", err)
	}
}

func TestGetUnknownProfile(t *testing.T) {
	svc := newTestService(t, NewMemoryRepository())

	_, err := svc.Get(context.Background(), "ghost")
	if !errors.Is(err, ErrProfileNotFound) {
		t.Fatalf("expected ErrProfileNotFound, got %v", err)
	}
	if !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("code = %s, want %s", apperr.CodeOf(err), apperr.CodeNotFound)
	}
}

func TestResolveCapPrecedence(t *testing.T) {
	svc := newTestService(t, NewMemoryRepository())
	ctx := context.Background()
	if _, err := svc.RecordCap(ctx, "maria", CapSourceFinverse, "", 500); err != nil {
		t.Fatalf("RecordCap: %v", err)
	}

	tests := []struct {
		name     string
		username string
		preset   string
		claimed  int64
		want     int64
	}{
		{"profile beats preset and claim", "maria", "Coffee Cart (Singapore)", 9999, 500},
		{"preset beats claim", "stranger", "Coffee Cart (Singapore)", 9999, 810},
		{"claim accepted as last resort", "stranger", "Lemonade Stand", 42, 42},
		{"no username or preset", "", "", 7, 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := svc.ResolveCap(ctx, tt.username, tt.preset, tt.claimed)
			if err != nil {
				t.Fatalf("ResolveCap: %v", err)
			}
			if got != tt.want {
				t.Errorf("cap = %d, want %d", got, tt.want)
			}
		})
	}

	if _, err := svc.ResolveCap(ctx, "stranger", "", -1); !errors.Is(err, ErrNegativeCap) {
		t.Errorf("negative claim: expected ErrNegativeCap, got %v", err)
	}
}
