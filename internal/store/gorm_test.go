package store

import (
	"context"
	"testing"
	"time"

	"github.com/ahmetcoskunkizilkaya/trafficwatch/internal/database"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"gorm.io/gorm"
)

func startPostgres(t *testing.T) *gorm.DB {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping postgres integration test in short mode")
	}
	testcontainers.SkipIfProviderIsNotHealthy(t)

	ctx := context.Background()
	ctr, err := postgres.Run(ctx, "postgres:16-alpine",
		postgres.WithDatabase("trafficwatch"),
		postgres.WithUsername("postgres"),
		postgres.WithPassword("postgres"),
		postgres.BasicWaitStrategies(),
	)
	testcontainers.CleanupContainer(t, ctr)
	if err != nil {
		t.Fatalf("start postgres: %v", err)
	}

	dsn, err := ctr.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("connection string: %v", err)
	}
	db, err := database.Open(dsn)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func TestGormStore(t *testing.T) {
	db := startPostgres(t)

	runReportStoreContract(t, func(t *testing.T) ReportStore {
		if err := db.Exec("TRUNCATE report_votes, reports").Error; err != nil {
			t.Fatalf("truncate: %v", err)
		}
		return NewGormStore(db)
	})
}

func TestGormSnapshotStore(t *testing.T) {
	db := startPostgres(t)
	s := NewGormSnapshotStore(db)
	ctx := context.Background()

	first := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	if err := s.SaveSnapshot(ctx, "Mumbai", []byte(`{"v":1}`), first); err != nil {
		t.Fatalf("SaveSnapshot: %v", err)
	}
	if err := s.SaveSnapshot(ctx, "Mumbai", []byte(`{"v":2}`), first.Add(time.Minute)); err != nil {
		t.Fatalf("SaveSnapshot overwrite: %v", err)
	}

	snaps, err := s.LoadSnapshots(ctx)
	if err != nil {
		t.Fatalf("LoadSnapshots: %v", err)
	}
	if len(snaps) != 1 {
		t.Fatalf("got %d snapshots, want 1", len(snaps))
	}
	if !snaps[0].FetchedAt.Equal(first.Add(time.Minute)) {
		t.Errorf("FetchedAt = %v", snaps[0].FetchedAt)
	}
}
