package barter

import (
	"context"
	"testing"
	"time"

	"github.com/fkhayef/popbarter/internal/database"
)

func newSQLRepo(t *testing.T) *SQLRepository {
	t.Helper()
	db, err := database.NewSQLiteConnection(":memory:")
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return NewRepository(db)
}

func sampleBarter(id, username string) *Barter {
	at := time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC)
	return &Barter{
		ID:                  id,
		Username:            username,
		FromUser:            username,
		ToUser:              "bob",
		YourPreset:          "Maria's Coffee Cart",
		OtherPreset:         "Tito's Sari-Sari Store",
		YourTokensGiven:     40,
		OtherTokensReceived: 35,
		YourCap:             100,
		OtherCap:            80,
		Date:                "2025-03-14",
		ExpenseEstimate:     1000,
		CreatedAt:           at,
		UpdatedAt:           at,
	}
}

// Both implementations must agree on the conditional-update contract.
func repositories(t *testing.T) map[string]Repository {
	return map[string]Repository{
		"sqlite": newSQLRepo(t),
		"memory": NewMemoryRepository(),
	}
}

func TestRepositoryCreateAndList(t *testing.T) {
	for name, repo := range repositories(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			for _, id := range []string{"b1", "b2", "b3"} {
				if _, err := repo.Create(ctx, sampleBarter(id, "alice")); err != nil {
					t.Fatalf("Create %s: %v", id, err)
				}
			}
			if _, err := repo.Create(ctx, sampleBarter("other", "zoe")); err != nil {
				t.Fatalf("Create other: %v", err)
			}

			got, err := repo.ListByUsername(ctx, "alice")
			if err != nil {
				t.Fatalf("ListByUsername: %v", err)
			}
			if len(got) != 3 {
				t.Fatalf("got %d barters, want 3", len(got))
			}
			for i, id := range []string{"b1", "b2", "b3"} {
				if got[i].ID != id {
					t.Errorf("got[%d].ID = %s, want %s", i, got[i].ID, id)
				}
			}
			if !got[0].CreatedAt.Equal(sampleBarter("b1", "alice").CreatedAt) {
				t.Errorf("createdAt = %v", got[0].CreatedAt)
			}
		})
	}
}

func TestRepositoryGetByIDScopedToOwner(t *testing.T) {
	for name, repo := range repositories(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			if _, err := repo.Create(ctx, sampleBarter("b1", "alice")); err != nil {
				t.Fatalf("Create: %v", err)
			}

			b, err := repo.GetByID(ctx, "alice", "b1")
			if err != nil || b == nil {
				t.Fatalf("GetByID = %v, %v", b, err)
			}
			b, err = repo.GetByID(ctx, "mallory", "b1")
			if err != nil || b != nil {
				t.Fatalf("foreign lookup = %v, %v; want nil, nil", b, err)
			}
		})
	}
}

func TestRepositoryProgressionTransitions(t *testing.T) {
	for name, repo := range repositories(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			at := time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC)
			if _, err := repo.Create(ctx, sampleBarter("b1", "alice")); err != nil {
				t.Fatalf("Create: %v", err)
			}

			b, err := repo.Approve(ctx, "alice", "b1", at)
			if err != nil || b != nil {
				t.Fatalf("approve on idle = %v, %v; want nil, nil", b, err)
			}

			b, err = repo.RecordProgress(ctx, "alice", "b1", 0, 800, NoteBadDay, at)
			if err != nil || b == nil {
				t.Fatalf("RecordProgress = %v, %v", b, err)
			}
			if !b.ProgressPending || b.ExpenseEstimate != 800 || b.Revision != 1 || b.LastProgressNote != NoteBadDay {
				t.Errorf("unexpected barter after progress: %+v", b)
			}

			stale, err := repo.RecordProgress(ctx, "alice", "b1", 1, 640, NoteBadDay, at)
			if err != nil || stale != nil {
				t.Fatalf("progress while pending = %v, %v; want nil, nil", stale, err)
			}

			b, err = repo.Approve(ctx, "alice", "b1", at)
			if err != nil || b == nil {
				t.Fatalf("Approve = %v, %v", b, err)
			}
			if b.ProgressPending || !b.Approved || b.Revision != 2 || b.ExpenseEstimate != 800 {
				t.Errorf("unexpected barter after approve: %+v", b)
			}

			stale, err = repo.RecordProgress(ctx, "alice", "b1", 1, 640, NoteBadDay, at)
			if err != nil || stale != nil {
				t.Fatalf("progress at old revision = %v, %v; want nil, nil", stale, err)
			}
		})
	}
}

func TestSQLRepositoryRejectsTokensAboveCap(t *testing.T) {
	repo := newSQLRepo(t)
	b := sampleBarter("b1", "alice")
	b.YourTokensGiven = b.YourCap + 1

	if _, err := repo.Create(context.Background(), b); err == nil {
		t.Fatal("expected check constraint violation")
	}
}
