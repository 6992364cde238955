package services

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/campusforge/matchengine-backend/internal/repos"
	"github.com/campusforge/matchengine-backend/internal/types"
)

func TestDrainRecomputesAndRetiresItems(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	tenantID := uuid.New()
	student := seedStudent(t, env.db, tenantID)
	listingA := seedListing(t, env.db, tenantID)
	listingB := seedListing(t, env.db, tenantID)

	for _, id := range []uuid.UUID{listingA.ID, listingB.ID} {
		if _, err := env.engine.ComputeMatch(ctx, student.ID, id, ComputeOpts{}); err != nil {
			t.Fatalf("ComputeMatch: %v", err)
		}
	}
	if _, err := env.invalidation.InvalidateStudentScores(ctx, student.ID, types.ReasonScheduleChange); err != nil {
		t.Fatalf("InvalidateStudentScores: %v", err)
	}

	result, err := env.worker.Drain(ctx, 10)
	if err != nil {
		t.Fatalf("Drain: %v", err)
	}
	if result.Processed != 2 || result.Failed != 0 || result.Remaining != 0 {
		t.Fatalf("result = %+v, want 2 processed, 0 failed, 0 remaining", result)
	}

	for _, id := range []uuid.UUID{listingA.ID, listingB.ID} {
		row, err := env.scores.Get(ctx, nil, student.ID, id)
		if err != nil {
			t.Fatalf("Get: %v", err)
		}
		if row.Stale {
			t.Fatalf("row for listing %s still stale after drain", id)
		}
	}

	// Items are retired as history, not deleted.
	var total int64
	if err := env.db.Model(&types.RecomputeQueueItem{}).Count(&total).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	if total != 2 {
		t.Fatalf("queue rows = %d, want 2 processed history rows", total)
	}
}

func TestDrainHonorsPriorityAndBatchSize(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	tenantID := uuid.New()
	student := seedStudent(t, env.db, tenantID)
	listingLow := seedListing(t, env.db, tenantID)
	listingHigh := seedListing(t, env.db, tenantID)

	if _, err := env.queue.Enqueue(ctx, nil,
		[]repos.ScorePair{{StudentID: student.ID, ListingID: listingLow.ID}},
		types.ReasonRatingChange, types.ReasonPriority(types.ReasonRatingChange)); err != nil {
		t.Fatalf("Enqueue low: %v", err)
	}
	if _, err := env.queue.Enqueue(ctx, nil,
		[]repos.ScorePair{{StudentID: student.ID, ListingID: listingHigh.ID}},
		types.ReasonConfigChange, types.ReasonPriority(types.ReasonConfigChange)); err != nil {
		t.Fatalf("Enqueue high: %v", err)
	}

	result, err := env.worker.Drain(ctx, 1)
	if err != nil {
		t.Fatalf("Drain: %v", err)
	}
	if result.Processed != 1 || result.Remaining != 1 {
		t.Fatalf("result = %+v, want 1 processed and 1 remaining", result)
	}

	// The higher-priority pair went first.
	if row, err := env.scores.Get(ctx, nil, student.ID, listingHigh.ID); err != nil || row == nil {
		t.Fatalf("high-priority pair not recomputed (row=%v, err=%v)", row, err)
	}
	if row, err := env.scores.Get(ctx, nil, student.ID, listingLow.ID); err != nil {
		t.Fatalf("Get: %v", err)
	} else if row != nil {
		t.Fatal("low-priority pair recomputed before its turn")
	}
}

func TestDrainIsolatesFailures(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	tenantID := uuid.New()
	student := seedStudent(t, env.db, tenantID)
	listing := seedListing(t, env.db, tenantID)

	// One item points at a listing that no longer exists.
	if _, err := env.queue.Enqueue(ctx, nil,
		[]repos.ScorePair{{StudentID: student.ID, ListingID: uuid.New()}},
		types.ReasonListingChange, types.ReasonPriority(types.ReasonListingChange)); err != nil {
		t.Fatalf("Enqueue broken: %v", err)
	}
	if _, err := env.queue.Enqueue(ctx, nil,
		[]repos.ScorePair{{StudentID: student.ID, ListingID: listing.ID}},
		types.ReasonRatingChange, types.ReasonPriority(types.ReasonRatingChange)); err != nil {
		t.Fatalf("Enqueue valid: %v", err)
	}

	result, err := env.worker.Drain(ctx, 10)
	if err != nil {
		t.Fatalf("Drain: %v", err)
	}
	if result.Processed != 1 || result.Failed != 1 {
		t.Fatalf("result = %+v, want 1 processed and 1 failed", result)
	}
	if result.Remaining != 1 {
		t.Fatalf("remaining = %d, failed item should stay queued for retry", result.Remaining)
	}

	if row, err := env.scores.Get(ctx, nil, student.ID, listing.ID); err != nil || row == nil {
		t.Fatalf("valid pair not recomputed (row=%v, err=%v)", row, err)
	}
}

func TestDrainEmptyQueue(t *testing.T) {
	env := newTestEnv(t)

	result, err := env.worker.Drain(context.Background(), 10)
	if err != nil {
		t.Fatalf("Drain: %v", err)
	}
	if result.Processed != 0 || result.Failed != 0 || result.Remaining != 0 {
		t.Fatalf("result = %+v, want all zero", result)
	}
}
