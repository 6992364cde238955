package services

import (
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/campusforge/matchengine-backend/internal/platform/logger"
	"github.com/campusforge/matchengine-backend/internal/repos"
	"github.com/campusforge/matchengine-backend/internal/types"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	err = gdb.AutoMigrate(
		&types.StudentProfile{},
		&types.StudentSkill{},
		&types.AvailabilityEntry{},
		&types.Engagement{},
		&types.Company{},
		&types.Rating{},
		&types.Listing{},
		&types.ListingSkill{},
		&types.AcademicCalendarEntry{},
		&types.SportSeason{},
		&types.MatchScore{},
		&types.RecomputeQueueItem{},
		&types.MatchEngineConfig{},
	)
	if err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return gdb
}

type testEnv struct {
	db       *gorm.DB
	students repos.StudentRepo
	listings repos.ListingRepo
	calendar repos.CalendarRepo
	scores   repos.MatchScoreRepo
	queue    repos.RecomputeQueueRepo
	configs  repos.EngineConfigRepo

	config         ConfigService
	engine         EngineService
	ranking        RankingService
	invalidation   InvalidationService
	worker         WorkerService
	attractiveness AttractivenessService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gdb := newTestDB(t)
	log := logger.NewNop()

	env := &testEnv{
		db:       gdb,
		students: repos.NewStudentRepo(gdb, log),
		listings: repos.NewListingRepo(gdb, log),
		calendar: repos.NewCalendarRepo(gdb, log),
		scores:   repos.NewMatchScoreRepo(gdb, log),
		queue:    repos.NewRecomputeQueueRepo(gdb, log),
		configs:  repos.NewEngineConfigRepo(gdb, log),
	}
	env.config = NewConfigService(env.configs, log)
	env.engine = NewEngineService(gdb, env.students, env.listings, env.calendar, env.scores, env.queue, env.config, log)
	env.ranking = NewRankingService(gdb, env.scores, env.config, log)
	env.invalidation = NewInvalidationService(gdb, env.scores, env.queue, nil, log)
	env.worker = NewWorkerService(gdb, env.queue, env.engine, log)
	env.attractiveness = NewAttractivenessService(gdb, env.students, env.listings, env.config, log)
	return env
}

func testDay(s string) time.Time {
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return d
}

func testDayPtr(s string) *time.Time {
	d := testDay(s)
	return &d
}

// seedStudent creates a profile with a couple of solid engineering skills.
func seedStudent(t *testing.T, gdb *gorm.DB, tenantID uuid.UUID) *types.StudentProfile {
	t.Helper()
	student := &types.StudentProfile{
		ID:          uuid.New(),
		TenantID:    tenantID,
		DisplayName: "Test Student",
	}
	if err := gdb.Create(student).Error; err != nil {
		t.Fatalf("seed student: %v", err)
	}
	skills := []types.StudentSkill{
		{ID: uuid.New(), StudentID: student.ID, Name: "go", Category: "engineering", Proficiency: 4},
		{ID: uuid.New(), StudentID: student.ID, Name: "sql", Category: "engineering", Proficiency: 3},
	}
	if err := gdb.Create(&skills).Error; err != nil {
		t.Fatalf("seed skills: %v", err)
	}
	student.Skills = skills
	return student
}

// seedListing creates a company plus a tenant-visible listing requiring the
// seeded student's skills over a fall window.
func seedListing(t *testing.T, gdb *gorm.DB, tenantID uuid.UUID) *types.Listing {
	t.Helper()
	company := &types.Company{
		ID:          uuid.New(),
		OwnerUserID: uuid.New(),
		Name:        "Test Co",
		Reputation:  4,
	}
	if err := gdb.Create(company).Error; err != nil {
		t.Fatalf("seed company: %v", err)
	}
	listing := &types.Listing{
		ID:           uuid.New(),
		TenantID:     tenantID,
		CompanyID:    company.ID,
		Title:        "Backend Internship",
		Visibility:   types.VisibilityTenant,
		WindowStart:  testDayPtr("2026-10-01"),
		WindowEnd:    testDayPtr("2026-12-01"),
		HoursPerWeek: 15,
		Difficulty:   4,
		CapacityMax:  2,
	}
	if err := gdb.Create(listing).Error; err != nil {
		t.Fatalf("seed listing: %v", err)
	}
	listingSkills := []types.ListingSkill{
		{ID: uuid.New(), ListingID: listing.ID, Name: "go", Category: "engineering", Tier: types.SkillTierRequired, MinProficiency: 3},
		{ID: uuid.New(), ListingID: listing.ID, Name: "sql", Category: "engineering", Tier: types.SkillTierPreferred, MinProficiency: 2},
	}
	if err := gdb.Create(&listingSkills).Error; err != nil {
		t.Fatalf("seed listing skills: %v", err)
	}
	listing.RequiredSkills = listingSkills
	listing.Company = company
	return listing
}
