package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"

	"github.com/campusforge/matchengine-backend/internal/clients/redis"
	"github.com/campusforge/matchengine-backend/internal/db"
	"github.com/campusforge/matchengine-backend/internal/platform/envutil"
	"github.com/campusforge/matchengine-backend/internal/platform/logger"
	"github.com/campusforge/matchengine-backend/internal/repos"
	"github.com/campusforge/matchengine-backend/internal/services"
	"github.com/campusforge/matchengine-backend/internal/types"
)

type idList []string

func (l *idList) String() string { return strings.Join(*l, ",") }
func (l *idList) Set(v string) error {
	v = strings.TrimSpace(v)
	if v != "" {
		*l = append(*l, v)
	}
	return nil
}

func main() {
	var students idList
	var global bool
	var drain int
	var migrate bool
	flag.Var(&students, "student", "student id to invalidate and requeue (repeatable)")
	flag.BoolVar(&global, "global", false, "stale every cached score and enqueue at max priority")
	flag.IntVar(&drain, "drain", 0, "drain up to N queue items after invalidation")
	flag.BoolVar(&migrate, "migrate", false, "run schema auto migration before anything else")
	flag.Parse()

	log, err := logger.New(envutil.String("LOG_MODE", "dev"))
	if err != nil {
		fmt.Printf("init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	pg, err := db.NewPostgresService(log)
	if err != nil {
		log.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	if migrate {
		if err := pg.AutoMigrateAll(); err != nil {
			log.Error("Migration failed", "error", err)
			os.Exit(1)
		}
	}

	gdb := pg.DB()
	scoreRepo := repos.NewMatchScoreRepo(gdb, log)
	queueRepo := repos.NewRecomputeQueueRepo(gdb, log)
	studentRepo := repos.NewStudentRepo(gdb, log)
	listingRepo := repos.NewListingRepo(gdb, log)
	calendarRepo := repos.NewCalendarRepo(gdb, log)
	configRepo := repos.NewEngineConfigRepo(gdb, log)

	bus, err := redis.NewInvalidationBus(log)
	if err != nil {
		log.Warn("Invalidation bus unavailable, continuing without it", "error", err)
	}
	if bus != nil {
		defer bus.Close()
	}

	configSvc := services.NewConfigService(configRepo, log)
	engineSvc := services.NewEngineService(gdb, studentRepo, listingRepo, calendarRepo, scoreRepo, queueRepo, configSvc, log)
	invalidationSvc := services.NewInvalidationService(gdb, scoreRepo, queueRepo, bus, log)
	workerSvc := services.NewWorkerService(gdb, queueRepo, engineSvc, log)

	ctx := context.Background()

	if global {
		result, err := invalidationSvc.InvalidateAll(ctx)
		if err != nil {
			log.Error("Global invalidation failed", "error", err)
			os.Exit(1)
		}
		fmt.Printf("global invalidation: staled=%d queued=%d\n", result.Staled, result.Queued)
	}

	for _, raw := range students {
		id, err := uuid.Parse(raw)
		if err != nil || id == uuid.Nil {
			fmt.Printf("skipping invalid student id %q\n", raw)
			continue
		}
		result, err := invalidationSvc.InvalidateStudentScores(ctx, id, types.ReasonAdminGlobal)
		if err != nil {
			log.Error("Student invalidation failed", "student_id", id, "error", err)
			continue
		}
		fmt.Printf("student %s: staled=%d queued=%d\n", id, result.Staled, result.Queued)
	}

	if drain > 0 {
		result, err := workerSvc.Drain(ctx, drain)
		if err != nil {
			log.Error("Drain failed", "error", err)
			os.Exit(1)
		}
		fmt.Printf("drain: processed=%d failed=%d remaining=%d\n", result.Processed, result.Failed, result.Remaining)
	}
}
