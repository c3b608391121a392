//go:build integration

package postgres

import (
	"context"
	"database/sql"
	"testing"

	"github.com/medievail/skirmish/internal/testutil"
)

var testDB *sql.DB

func setup(t *testing.T) *BattleRepo {
	t.Helper()
	if testDB == nil {
		testDB = testutil.SetupDB(t)
	}
	testutil.CleanupDB(t, testDB)
	return NewBattleRepo(testDB)
}

func sampleRecord() BattleRecord {
	return BattleRecord{
		GeneralA: "DAFT", GeneralB: "BRAINDEAD",
		ScenarioName: "classic", Seed: 1, Ticks: 120, Winner: "A",
		TeamASurvivors: 8, TeamBSurvivors: 0,
		TeamACasualties: 2, TeamBCasualties: 10,
	}
}

func TestCreateAssignsID(t *testing.T) {
	repo := setup(t)
	id, err := repo.Create(context.Background(), sampleRecord())
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if id == "" {
		t.Fatal("expected a non-empty id")
	}
}

func TestFindByIDRoundTrip(t *testing.T) {
	repo := setup(t)
	ctx := context.Background()
	want := sampleRecord()
	id, err := repo.Create(ctx, want)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	got, err := repo.FindByID(ctx, id)
	if err != nil {
		t.Fatalf("find by id: %v", err)
	}
	if got == nil {
		t.Fatal("expected a record, got nil")
	}
	if got.GeneralA != want.GeneralA || got.Winner != want.Winner || got.Ticks != want.Ticks {
		t.Fatalf("round-tripped record = %+v, want matching %+v", got, want)
	}
}

func TestFindByIDMissingReturnsNil(t *testing.T) {
	repo := setup(t)
	got, err := repo.FindByID(context.Background(), "00000000-0000-0000-0000-000000000000")
	if err != nil {
		t.Fatalf("find by id: %v", err)
	}
	if got != nil {
		t.Fatal("expected nil for a missing record")
	}
}

func TestListRecentOrdersMostRecentFirst(t *testing.T) {
	repo := setup(t)
	ctx := context.Background()

	firstID, _ := repo.Create(ctx, sampleRecord())
	secondRecord := sampleRecord()
	secondRecord.ScenarioName = "offensive"
	secondID, _ := repo.Create(ctx, secondRecord)

	battles, err := repo.ListRecent(ctx, 10)
	if err != nil {
		t.Fatalf("list recent: %v", err)
	}
	if len(battles) != 2 {
		t.Fatalf("got %d battles, want 2", len(battles))
	}
	if battles[0].ID != secondID || battles[1].ID != firstID {
		t.Fatal("ListRecent should order most-recently-created first")
	}
}

func TestListRecentRespectsLimit(t *testing.T) {
	repo := setup(t)
	ctx := context.Background()
	for i := 0; i < 3; i++ {
		if _, err := repo.Create(ctx, sampleRecord()); err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	battles, err := repo.ListRecent(ctx, 2)
	if err != nil {
		t.Fatalf("list recent: %v", err)
	}
	if len(battles) != 2 {
		t.Fatalf("got %d battles, want 2 (respecting the limit)", len(battles))
	}
}
