package sqlite_test

import (
	"context"
	"strings"
	"testing"

	dbfs "github.com/garnizeh/skilltrack/db"
	"github.com/garnizeh/skilltrack/internal/db"
	"github.com/garnizeh/skilltrack/internal/repository/sqlite"
	"github.com/garnizeh/skilltrack/pkg/models"
)

func setupRepo(t *testing.T) (*sqlite.SQLiteRepo, func()) {
	t.Helper()
	ctx := context.Background()
	// named per-test memory db so every pooled connection sees the same data
	name := strings.ReplaceAll(t.Name(), "/", "_")
	d, err := db.New(ctx, "file:"+name+"?mode=memory&cache=shared", nil)
	if err != nil {
		t.Fatalf("db.New: %v", err)
	}
	if err := db.Migrate(ctx, d, dbfs.Migrations, dbfs.SeedFiles); err != nil {
		d.Close()
		t.Fatalf("migrate: %v", err)
	}

	return sqlite.New(d, nil), func() { d.Close() }
}

func TestUserCRUD(t *testing.T) {
	repo, cleanup := setupRepo(t)
	defer cleanup()
	ctx := context.Background()

	id, err := repo.CreateUser(ctx, &models.User{Name: "Alice", Email: "alice@example.com", Role: "user", PasswordHash: "x"})
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	if id == "" {
		t.Fatalf("expected generated user id")
	}

	u, err := repo.GetByID(ctx, id)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if u == nil || u.Email != "alice@example.com" {
		t.Fatalf("unexpected user: %+v", u)
	}

	byEmail, err := repo.GetByEmail(ctx, "alice@example.com")
	if err != nil {
		t.Fatalf("GetByEmail: %v", err)
	}
	if byEmail == nil || byEmail.ID != id {
		t.Fatalf("unexpected user by email: %+v", byEmail)
	}

	u.Role = "admin"
	if err := repo.UpdateUser(ctx, u); err != nil {
		t.Fatalf("UpdateUser: %v", err)
	}
	updated, err := repo.GetByID(ctx, id)
	if err != nil {
		t.Fatalf("GetByID after update: %v", err)
	}
	if updated.Role != "admin" {
		t.Fatalf("expected role admin, got %q", updated.Role)
	}

	users, err := repo.ListUsers(ctx)
	if err != nil {
		t.Fatalf("ListUsers: %v", err)
	}
	if len(users) != 1 {
		t.Fatalf("expected 1 user, got %d", len(users))
	}
	if users[0].PasswordHash != "" {
		t.Fatalf("ListUsers must not expose password hashes")
	}

	if err := repo.DeleteUser(ctx, id); err != nil {
		t.Fatalf("DeleteUser: %v", err)
	}
	gone, err := repo.GetByID(ctx, id)
	if err != nil {
		t.Fatalf("GetByID after delete: %v", err)
	}
	if gone != nil {
		t.Fatalf("expected user to be gone, got %+v", gone)
	}
}

func TestGetByID_Missing(t *testing.T) {
	repo, cleanup := setupRepo(t)
	defer cleanup()

	u, err := repo.GetByID(context.Background(), "nope")
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if u != nil {
		t.Fatalf("expected nil for missing user, got %+v", u)
	}
}

func TestEntryRoundTrip(t *testing.T) {
	repo, cleanup := setupRepo(t)
	defer cleanup()
	ctx := context.Background()

	project := "migrate tooling"
	e := models.Entry{
		UserID:       "u1",
		Skills:       models.StringList{"Go"},
		HoursSpent:   2.5,
		StartDate:    "2025-03-01",
		EndDate:      "2025-03-02",
		PracticeType: models.StringList{models.PracticeTypeProject},
		ProjectName:  &project,
		Result:       models.StringList{"Completed"},
		Notes:        "ported the migration runner",
	}

	id, err := repo.CreateEntry(ctx, &e)
	if err != nil {
		t.Fatalf("CreateEntry: %v", err)
	}

	all, err := repo.ListEntries(ctx)
	if err != nil {
		t.Fatalf("ListEntries: %v", err)
	}
	if len(all) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(all))
	}

	got := all[0]
	if got.ID != id {
		t.Fatalf("expected id %q, got %q", id, got.ID)
	}
	if len(got.Skills) != 1 || got.Skills[0] != "Go" {
		t.Fatalf("unexpected skills: %v", got.Skills)
	}
	if float64(got.HoursSpent) != 2.5 {
		t.Fatalf("unexpected hours: %v", got.HoursSpent)
	}
	if got.ProjectName == nil || *got.ProjectName != project {
		t.Fatalf("unexpected project name: %v", got.ProjectName)
	}
	if got.OtherPracticeType != nil {
		t.Fatalf("expected nil otherPracticeType, got %v", *got.OtherPracticeType)
	}
	if got.Created == 0 {
		t.Fatalf("expected created timestamp to be set")
	}
}

func TestListEntries_StableOrder(t *testing.T) {
	repo, cleanup := setupRepo(t)
	defer cleanup()
	ctx := context.Background()

	// identical created timestamps force the id tie-break
	for i, skill := range []string{"Go", "Rust", "SQL"} {
		e := models.Entry{
			ID:         string(rune('a' + i)),
			UserID:     "u1",
			Skills:     models.StringList{skill},
			HoursSpent: 1,
			Created:    42,
		}
		if _, err := repo.CreateEntry(ctx, &e); err != nil {
			t.Fatalf("CreateEntry %d: %v", i, err)
		}
	}

	first, err := repo.ListEntries(ctx)
	if err != nil {
		t.Fatalf("ListEntries: %v", err)
	}
	second, err := repo.ListEntries(ctx)
	if err != nil {
		t.Fatalf("ListEntries again: %v", err)
	}
	if len(first) != 3 || len(second) != 3 {
		t.Fatalf("expected 3 entries, got %d and %d", len(first), len(second))
	}
	for i := range first {
		if first[i].ID != second[i].ID {
			t.Fatalf("unstable order at %d: %q vs %q", i, first[i].ID, second[i].ID)
		}
	}
}

func TestListByUser_Pagination(t *testing.T) {
	repo, cleanup := setupRepo(t)
	defer cleanup()
	ctx := context.Background()

	for i := range 5 {
		e := models.Entry{
			UserID:     "u1",
			Skills:     models.StringList{"Go"},
			HoursSpent: 1,
			Created:    int64(i + 1),
		}
		if _, err := repo.CreateEntry(ctx, &e); err != nil {
			t.Fatalf("CreateEntry %d: %v", i, err)
		}
	}
	if _, err := repo.CreateEntry(ctx, &models.Entry{UserID: "u2", HoursSpent: 1, Created: 10}); err != nil {
		t.Fatalf("CreateEntry other user: %v", err)
	}

	page, err := repo.ListByUser(ctx, "u1", 2, 2)
	if err != nil {
		t.Fatalf("ListByUser: %v", err)
	}
	if len(page) != 2 {
		t.Fatalf("expected 2 entries on page, got %d", len(page))
	}

	total, err := repo.CountByUser(ctx, "u1")
	if err != nil {
		t.Fatalf("CountByUser: %v", err)
	}
	if total != 5 {
		t.Fatalf("expected 5 entries for u1, got %d", total)
	}
}

func TestOptionCRUD(t *testing.T) {
	repo, cleanup := setupRepo(t)
	defer cleanup()
	ctx := context.Background()

	id, err := repo.CreateOption(ctx, &models.Option{Type: models.OptionTypeSkill, Value: "Go"})
	if err != nil {
		t.Fatalf("CreateOption: %v", err)
	}

	o, err := repo.GetOption(ctx, id)
	if err != nil {
		t.Fatalf("GetOption: %v", err)
	}
	if o == nil || o.Value != "Go" {
		t.Fatalf("unexpected option: %+v", o)
	}

	o.Value = "Golang"
	if err := repo.UpdateOption(ctx, o); err != nil {
		t.Fatalf("UpdateOption: %v", err)
	}

	opts, err := repo.ListOptions(ctx)
	if err != nil {
		t.Fatalf("ListOptions: %v", err)
	}
	// the seed already populates practiceType and result options
	var found bool
	for _, opt := range opts {
		if opt.ID == id && opt.Value == "Golang" {
			found = true
		}
	}
	if !found {
		t.Fatalf("updated option not found in list")
	}

	if err := repo.DeleteOption(ctx, id); err != nil {
		t.Fatalf("DeleteOption: %v", err)
	}
	gone, err := repo.GetOption(ctx, id)
	if err != nil {
		t.Fatalf("GetOption after delete: %v", err)
	}
	if gone != nil {
		t.Fatalf("expected option to be gone, got %+v", gone)
	}
}

func TestResetLifecycle(t *testing.T) {
	repo, cleanup := setupRepo(t)
	defer cleanup()
	ctx := context.Background()

	id, err := repo.CreateReset(ctx, &models.PasswordReset{
		UserID:   "u1",
		CodeHash: "hash",
		Expires:  2000,
	})
	if err != nil {
		t.Fatalf("CreateReset: %v", err)
	}

	active, err := repo.GetActiveReset(ctx, "u1", 1000)
	if err != nil {
		t.Fatalf("GetActiveReset: %v", err)
	}
	if active == nil || active.ID != id {
		t.Fatalf("expected active reset %d, got %+v", id, active)
	}

	// expired lookups come back empty
	expired, err := repo.GetActiveReset(ctx, "u1", 3000)
	if err != nil {
		t.Fatalf("GetActiveReset expired: %v", err)
	}
	if expired != nil {
		t.Fatalf("expected no active reset past expiry, got %+v", expired)
	}

	if err := repo.ConsumeReset(ctx, id); err != nil {
		t.Fatalf("ConsumeReset: %v", err)
	}
	used, err := repo.GetActiveReset(ctx, "u1", 1000)
	if err != nil {
		t.Fatalf("GetActiveReset after consume: %v", err)
	}
	if used != nil {
		t.Fatalf("expected consumed reset to be inactive, got %+v", used)
	}
}
