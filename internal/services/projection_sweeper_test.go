package service

import (
	"context"
	"testing"
	"time"

	"github.com/honeynil/course-purchase-service/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedCompleted(t *testing.T, env *testEnv, buyerID string) *models.PurchaseRecord {
	t.Helper()
	rec, err := env.ledger.Create(context.Background(), &models.PurchaseRecord{
		BuyerID:           buyerID,
		CourseID:          testCourse,
		ExternalReference: "direct_" + buyerID,
		Amount:            testPrice,
		Status:            models.StatusCompleted,
	})
	require.NoError(t, err)
	return rec
}

func TestProjectionSweeper_SweepOnce(t *testing.T) {
	ctx := context.Background()

	t.Run("projects unprojected purchases", func(t *testing.T) {
		env := newTestEnv(t)
		seedCompleted(t, env, "B1")
		seedCompleted(t, env, "B2")
		sweeper := NewProjectionSweeper(env.ledger, env.projector, env.redis, time.Minute, 10, time.Second)

		n, err := sweeper.SweepOnce(ctx)
		require.NoError(t, err)
		assert.Equal(t, 2, n)
		assert.True(t, env.catalog.enrolled("B1", testCourse))
		assert.True(t, env.catalog.enrolled("B2", testCourse))
		assert.False(t, env.mr.Exists(sweepLockKey))

		n, err = sweeper.SweepOnce(ctx)
		require.NoError(t, err)
		assert.Zero(t, n)
	})

	t.Run("failed projection is retried next sweep", func(t *testing.T) {
		env := newTestEnv(t)
		seedCompleted(t, env, "B1")
		sweeper := NewProjectionSweeper(env.ledger, env.projector, env.redis, time.Minute, 10, time.Second)

		env.catalog.setUserErr(assert.AnError)
		n, err := sweeper.SweepOnce(ctx)
		require.NoError(t, err)
		assert.Zero(t, n)

		env.catalog.setUserErr(nil)
		n, err = sweeper.SweepOnce(ctx)
		require.NoError(t, err)
		assert.Equal(t, 1, n)
	})

	t.Run("respects batch size", func(t *testing.T) {
		env := newTestEnv(t)
		seedCompleted(t, env, "B1")
		seedCompleted(t, env, "B2")
		seedCompleted(t, env, "B3")
		sweeper := NewProjectionSweeper(env.ledger, env.projector, env.redis, time.Minute, 2, time.Second)

		n, err := sweeper.SweepOnce(ctx)
		require.NoError(t, err)
		assert.Equal(t, 2, n)
	})

	t.Run("skips when another sweeper holds the lock", func(t *testing.T) {
		env := newTestEnv(t)
		seedCompleted(t, env, "B1")
		require.NoError(t, env.mr.Set(sweepLockKey, "locked"))
		sweeper := NewProjectionSweeper(env.ledger, env.projector, env.redis, time.Minute, 10, time.Second)

		n, err := sweeper.SweepOnce(ctx)
		require.NoError(t, err)
		assert.Zero(t, n)
		assert.Zero(t, env.catalog.enrollments())
	})
}

func TestProjectionSweeper_FailingEntriesDoNotStarveBatch(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	// the course is gone, so this entry can never be projected
	_, err := env.ledger.Create(ctx, &models.PurchaseRecord{
		BuyerID:           "B9",
		CourseID:          "GONE",
		ExternalReference: "direct_gone",
		Amount:            testPrice,
		Status:            models.StatusCompleted,
	})
	require.NoError(t, err)
	seedCompleted(t, env, testBuyer)
	sweeper := NewProjectionSweeper(env.ledger, env.projector, env.redis, time.Minute, 1, time.Second)

	n, err := sweeper.SweepOnce(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.False(t, env.catalog.enrolled(testBuyer, testCourse))

	n, err = sweeper.SweepOnce(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.True(t, env.catalog.enrolled(testBuyer, testCourse))

	pending, err := env.ledger.ListUnprojected(ctx, 10)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, "GONE", pending[0].CourseID)
}

type lockTakeoverProjector struct {
	EnrollmentProjector
	takeover func()
}

func (p *lockTakeoverProjector) Project(ctx context.Context, rec *models.PurchaseRecord) error {
	p.takeover()
	return p.EnrollmentProjector.Project(ctx, rec)
}

func TestProjectionSweeper_KeepsLockTakenByAnotherRun(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	seedCompleted(t, env, testBuyer)

	// the lock expires mid-run and another replica acquires it
	projector := &lockTakeoverProjector{
		EnrollmentProjector: env.projector,
		takeover: func() {
			env.mr.Del(sweepLockKey)
			require.NoError(t, env.mr.Set(sweepLockKey, "other-replica"))
		},
	}
	sweeper := NewProjectionSweeper(env.ledger, projector, env.redis, time.Minute, 10, time.Second)

	n, err := sweeper.SweepOnce(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	held, err := env.mr.Get(sweepLockKey)
	require.NoError(t, err)
	assert.Equal(t, "other-replica", held)
}

func TestProjectionSweeper_RunStopsOnCancel(t *testing.T) {
	env := newTestEnv(t)
	seedCompleted(t, env, "B1")
	sweeper := NewProjectionSweeper(env.ledger, env.projector, env.redis, 5*time.Millisecond, 10, time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		sweeper.Run(ctx)
		close(done)
	}()

	assert.Eventually(t, func() bool {
		return env.catalog.enrolled("B1", testCourse)
	}, time.Second, 5*time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("sweeper did not stop")
	}
}
