package stores

import (
	"fmt"
	"testing"

	"github.com/servihub/reports-api/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestStore(t *testing.T) *ReportStore {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open database: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.Report{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return NewReportStore(db)
}

func seedUsers(t *testing.T, db *gorm.DB) []models.User {
	t.Helper()
	users := []models.User{
		{Email: "admin@servihub.com", Role: models.RoleAdmin},
		{Email: "user1@servihub.com", Role: models.RoleUser},
	}
	if err := db.Create(&users).Error; err != nil {
		t.Fatalf("seed users: %v", err)
	}
	return users
}

func TestResolveSetsResolverAndTimestamp(t *testing.T) {
	store := newTestStore(t)
	users := seedUsers(t, store.DB)

	report := models.Report{Type: models.ReportTypeReview, TargetID: 101, Reason: "Spam content", SubmittedBy: &users[1].ID}
	if err := store.Create(&report); err != nil {
		t.Fatalf("create: %v", err)
	}

	resolved, err := store.Resolve(report.ID, users[0].ID)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if resolved.ResolvedAt == nil {
		t.Fatal("expected resolved_at to be set")
	}
	if resolved.ResolvedBy == nil || *resolved.ResolvedBy != users[0].ID {
		t.Fatalf("expected resolved_by %d, got %v", users[0].ID, resolved.ResolvedBy)
	}
	if resolved.ResolvedAt.Before(resolved.CreatedAt) {
		t.Fatalf("resolved_at %v before created_at %v", resolved.ResolvedAt, resolved.CreatedAt)
	}
	if resolved.Resolver == nil || resolved.Resolver.Email != "admin@servihub.com" {
		t.Fatalf("expected eager-loaded resolver, got %+v", resolved.Resolver)
	}
}

func TestResolveRejectsSecondResolution(t *testing.T) {
	store := newTestStore(t)
	users := seedUsers(t, store.DB)

	report := models.Report{Type: models.ReportTypeUser, TargetID: 7, Reason: "Impersonation"}
	if err := store.Create(&report); err != nil {
		t.Fatalf("create: %v", err)
	}

	first, err := store.Resolve(report.ID, users[0].ID)
	if err != nil {
		t.Fatalf("first resolve: %v", err)
	}

	if _, err := store.Resolve(report.ID, users[1].ID); err != ErrAlreadyResolved {
		t.Fatalf("expected ErrAlreadyResolved, got %v", err)
	}

	// first resolution is preserved
	reloaded, err := store.FindByID(report.ID)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if *reloaded.ResolvedBy != users[0].ID {
		t.Fatalf("resolver overwritten: %d", *reloaded.ResolvedBy)
	}
	if !reloaded.ResolvedAt.Equal(*first.ResolvedAt) {
		t.Fatalf("resolved_at overwritten: %v vs %v", reloaded.ResolvedAt, first.ResolvedAt)
	}
}

func TestResolveMissingReport(t *testing.T) {
	store := newTestStore(t)
	users := seedUsers(t, store.DB)

	if _, err := store.Resolve(9999, users[0].ID); err != ErrReportNotFound {
		t.Fatalf("expected ErrReportNotFound, got %v", err)
	}
}

func TestCountAndListAgreeUnderFilters(t *testing.T) {
	store := newTestStore(t)
	users := seedUsers(t, store.DB)

	for i := 0; i < 6; i++ {
		report := models.Report{
			Type:     models.ReportTypeReview,
			TargetID: int64(100 + i),
			Reason:   fmt.Sprintf("reason %d", i),
		}
		if i%2 == 0 {
			report.Type = models.ReportTypeBusiness
		}
		if err := store.Create(&report); err != nil {
			t.Fatalf("create: %v", err)
		}
		if i < 2 {
			if _, err := store.Resolve(report.ID, users[0].ID); err != nil {
				t.Fatalf("resolve: %v", err)
			}
		}
	}

	cases := []struct {
		filter ReportFilter
		want   int64
	}{
		{ReportFilter{Status: StatusAll, Type: "all"}, 6},
		{ReportFilter{Status: StatusResolved, Type: "all"}, 2},
		{ReportFilter{Status: StatusUnresolved, Type: "all"}, 4},
		{ReportFilter{Status: StatusAll, Type: models.ReportTypeReview}, 3},
		{ReportFilter{Status: StatusUnresolved, Type: models.ReportTypeBusiness}, 1},
		{ReportFilter{Status: StatusAll, Type: models.ReportTypeService}, 0},
	}

	for _, tc := range cases {
		total, err := store.Count(tc.filter)
		if err != nil {
			t.Fatalf("count %+v: %v", tc.filter, err)
		}
		if total != tc.want {
			t.Fatalf("count %+v: want %d, got %d", tc.filter, tc.want, total)
		}

		reports, err := store.List(tc.filter, "created_at", "desc", 0, 100)
		if err != nil {
			t.Fatalf("list %+v: %v", tc.filter, err)
		}
		if int64(len(reports)) != tc.want {
			t.Fatalf("list %+v: want %d rows, got %d", tc.filter, tc.want, len(reports))
		}
		for _, report := range reports {
			switch tc.filter.Status {
			case StatusResolved:
				if report.ResolvedAt == nil {
					t.Fatalf("resolved filter returned unresolved report %d", report.ID)
				}
			case StatusUnresolved:
				if report.ResolvedAt != nil {
					t.Fatalf("unresolved filter returned resolved report %d", report.ID)
				}
			}
			if tc.filter.Type != "all" && report.Type != tc.filter.Type {
				t.Fatalf("type filter %q returned report of type %q", tc.filter.Type, report.Type)
			}
		}
	}
}

func TestListPaginationWindow(t *testing.T) {
	store := newTestStore(t)
	seedUsers(t, store.DB)

	for i := 0; i < 15; i++ {
		report := models.Report{Type: models.ReportTypeOther, TargetID: int64(i + 1), Reason: "r"}
		if err := store.Create(&report); err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	filter := ReportFilter{Status: StatusAll, Type: "all"}

	pageTwo, err := store.List(filter, "id", "asc", 10, 10)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(pageTwo) != 5 {
		t.Fatalf("expected 5 rows on page 2, got %d", len(pageTwo))
	}

	pageThree, err := store.List(filter, "id", "asc", 20, 10)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(pageThree) != 0 {
		t.Fatalf("expected empty page 3, got %d rows", len(pageThree))
	}
}
