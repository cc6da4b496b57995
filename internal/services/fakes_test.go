package service

import (
	"context"
	"sort"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/honeynil/course-purchase-service/internal/infrastructure/gateway"
	"github.com/honeynil/course-purchase-service/internal/infrastructure/redis"
	"github.com/honeynil/course-purchase-service/internal/models"
	pkgerrors "github.com/honeynil/course-purchase-service/pkg/errors"
	"github.com/stretchr/testify/require"
	"github.com/stripe/stripe-go/v82/webhook"
)

// fakeLedger enforces the same uniqueness and transition rules as the
// Postgres ledger.
type fakeLedger struct {
	mu          sync.Mutex
	nextID      int64
	records     map[int64]*models.PurchaseRecord
	createCalls int
	// lastFailure orders failed projection attempts; zero means never tried
	lastFailure map[int64]int
	failureSeq  int
}

func newFakeLedger() *fakeLedger {
	return &fakeLedger{
		records:     make(map[int64]*models.PurchaseRecord),
		lastFailure: make(map[int64]int),
	}
}

func (l *fakeLedger) Create(ctx context.Context, p *models.PurchaseRecord) (*models.PurchaseRecord, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.createCalls++
	for _, r := range l.records {
		if r.BuyerID == p.BuyerID && r.CourseID == p.CourseID && r.Status != models.StatusFailed {
			return nil, pkgerrors.ErrDuplicatePurchase
		}
		if p.ExternalReference != "" && r.ExternalReference == p.ExternalReference {
			return nil, pkgerrors.ErrDuplicatePurchase
		}
	}
	l.nextID++
	rec := *p
	rec.ID = l.nextID
	rec.CreatedAt = time.Now().UTC()
	rec.UpdatedAt = rec.CreatedAt
	l.records[rec.ID] = &rec
	out := rec
	return &out, nil
}

func (l *fakeLedger) find(match func(r *models.PurchaseRecord) bool) (*models.PurchaseRecord, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, r := range l.records {
		if match(r) {
			out := *r
			return &out, nil
		}
	}
	return nil, pkgerrors.ErrPurchaseNotFound
}

func (l *fakeLedger) FindByID(ctx context.Context, id int64) (*models.PurchaseRecord, error) {
	return l.find(func(r *models.PurchaseRecord) bool { return r.ID == id })
}

func (l *fakeLedger) FindByBuyerAndCourse(ctx context.Context, buyerID, courseID string) (*models.PurchaseRecord, error) {
	return l.find(func(r *models.PurchaseRecord) bool {
		return r.BuyerID == buyerID && r.CourseID == courseID && r.Status != models.StatusFailed
	})
}

func (l *fakeLedger) FindByExternalReference(ctx context.Context, ref string) (*models.PurchaseRecord, error) {
	return l.find(func(r *models.PurchaseRecord) bool { return r.ExternalReference == ref })
}

func (l *fakeLedger) MarkCompleted(ctx context.Context, id int64, finalAmount int64) (*models.PurchaseRecord, bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	r, ok := l.records[id]
	if !ok {
		return nil, false, pkgerrors.ErrPurchaseNotFound
	}
	switch r.Status {
	case models.StatusCompleted:
		out := *r
		return &out, false, nil
	case models.StatusFailed:
		return nil, false, pkgerrors.ErrInvalidStatusTransition
	}
	r.Status = models.StatusCompleted
	if finalAmount > 0 {
		r.Amount = finalAmount
	}
	r.UpdatedAt = time.Now().UTC()
	out := *r
	return &out, true, nil
}

func (l *fakeLedger) MarkProjected(ctx context.Context, id int64) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	r, ok := l.records[id]
	if !ok {
		return pkgerrors.ErrPurchaseNotFound
	}
	now := time.Now().UTC()
	r.ProjectedAt = &now
	return nil
}

func (l *fakeLedger) MarkProjectionFailed(ctx context.Context, id int64) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	r, ok := l.records[id]
	if !ok {
		return pkgerrors.ErrPurchaseNotFound
	}
	if r.ProjectedAt == nil {
		l.failureSeq++
		l.lastFailure[id] = l.failureSeq
	}
	return nil
}

func (l *fakeLedger) ListUnprojected(ctx context.Context, limit int) ([]models.PurchaseRecord, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := []models.PurchaseRecord{}
	for _, r := range l.records {
		if r.Status == models.StatusCompleted && r.ProjectedAt == nil {
			out = append(out, *r)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		fi, fj := l.lastFailure[out[i].ID], l.lastFailure[out[j].ID]
		if fi != fj {
			return fi < fj
		}
		return out[i].ID < out[j].ID
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (l *fakeLedger) listCompleted(match func(r *models.PurchaseRecord) bool) []models.PurchaseWithCourse {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := []models.PurchaseWithCourse{}
	for _, r := range l.records {
		if r.Status == models.StatusCompleted && match(r) {
			out = append(out, models.PurchaseWithCourse{PurchaseRecord: *r, Course: models.CourseSummary{ID: r.CourseID}})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out
}

func (l *fakeLedger) ListCompleted(ctx context.Context) ([]models.PurchaseWithCourse, error) {
	return l.listCompleted(func(*models.PurchaseRecord) bool { return true }), nil
}

func (l *fakeLedger) ListCompletedByBuyer(ctx context.Context, buyerID string) ([]models.PurchaseWithCourse, error) {
	return l.listCompleted(func(r *models.PurchaseRecord) bool { return r.BuyerID == buyerID }), nil
}

func (l *fakeLedger) count() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.records)
}

func (l *fakeLedger) only(t *testing.T) models.PurchaseRecord {
	t.Helper()
	l.mu.Lock()
	defer l.mu.Unlock()
	require.Len(t, l.records, 1)
	for _, r := range l.records {
		return *r
	}
	return models.PurchaseRecord{}
}

// fakeCatalog backs the course, lecture and user stores.
type fakeCatalog struct {
	mu          sync.Mutex
	courses     map[string]*models.Course
	userCourses map[string][]string
	userErr     error
	enrollCalls int
}

func newFakeCatalog(courses ...*models.Course) *fakeCatalog {
	c := &fakeCatalog{
		courses:     make(map[string]*models.Course),
		userCourses: make(map[string][]string),
	}
	for _, course := range courses {
		c.courses[course.ID] = course
	}
	return c
}

func (c *fakeCatalog) GetByID(ctx context.Context, id string) (*models.Course, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	course, ok := c.courses[id]
	if !ok {
		return nil, pkgerrors.ErrCourseNotFound
	}
	out := *course
	out.EnrolledBuyerIDs = append([]string{}, course.EnrolledBuyerIDs...)
	out.Lectures = append([]models.Lecture{}, course.Lectures...)
	return &out, nil
}

func (c *fakeCatalog) AddEnrolledBuyer(ctx context.Context, courseID, buyerID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	course, ok := c.courses[courseID]
	if !ok {
		return pkgerrors.ErrCourseNotFound
	}
	for _, id := range course.EnrolledBuyerIDs {
		if id == buyerID {
			return nil
		}
	}
	course.EnrolledBuyerIDs = append(course.EnrolledBuyerIDs, buyerID)
	return nil
}

func (c *fakeCatalog) UnlockPreviews(ctx context.Context, lectureIDs []string) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	var n int64
	for _, course := range c.courses {
		for i := range course.Lectures {
			for _, id := range lectureIDs {
				if course.Lectures[i].ID == id && !course.Lectures[i].IsPreviewFree {
					course.Lectures[i].IsPreviewFree = true
					n++
				}
			}
		}
	}
	return n, nil
}

func (c *fakeCatalog) AddEnrolledCourse(ctx context.Context, userID, courseID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.enrollCalls++
	if err := ctx.Err(); err != nil {
		return err
	}
	if c.userErr != nil {
		return c.userErr
	}
	for _, id := range c.userCourses[userID] {
		if id == courseID {
			return nil
		}
	}
	c.userCourses[userID] = append(c.userCourses[userID], courseID)
	return nil
}

func (c *fakeCatalog) setUserErr(err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.userErr = err
}

func (c *fakeCatalog) enrolled(buyerID, courseID string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	userHas := false
	for _, id := range c.userCourses[buyerID] {
		userHas = userHas || id == courseID
	}
	courseHas := false
	if course, ok := c.courses[courseID]; ok {
		for _, id := range course.EnrolledBuyerIDs {
			courseHas = courseHas || id == buyerID
		}
	}
	return userHas && courseHas
}

func (c *fakeCatalog) enrollments() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.enrollCalls
}

const (
	testBuyer  = "B1"
	testCourse = "C1"
	testPrice  = int64(999)
	testSecret = "whsec_test"
)

var testRetry = RetryConfig{MaxAttempts: 3, BaseDelay: time.Millisecond, MaxDelay: 2 * time.Millisecond}

func testCourseFixture() *models.Course {
	return &models.Course{
		ID:          testCourse,
		Title:       "Go in Practice",
		Price:       testPrice,
		IsPublished: true,
		Lectures: []models.Lecture{
			{ID: "L1", CourseID: testCourse, Title: "Intro", Position: 0, IsPreviewFree: true},
			{ID: "L2", CourseID: testCourse, Title: "Goroutines", Position: 1},
			{ID: "L3", CourseID: testCourse, Title: "Channels", Position: 2},
		},
	}
}

type testEnv struct {
	ledger     *fakeLedger
	catalog    *fakeCatalog
	mr         *miniredis.Miniredis
	redis      *redis.Client
	gateway    *gateway.StripeGateway
	projector  *enrollmentProjector
	purchases  *purchaseService
	reconciler *webhookReconciler
	queries    *queryService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	mr := miniredis.RunT(t)
	client, err := redis.NewClient(context.Background(), mr.Addr())
	require.NoError(t, err)
	t.Cleanup(func() { client.Close() })

	env := &testEnv{
		ledger:  newFakeLedger(),
		catalog: newFakeCatalog(testCourseFixture()),
		mr:      mr,
		redis:   client,
	}
	env.gateway = gateway.NewStripeGateway(testSecret, 5*time.Minute)
	env.projector = NewEnrollmentProjector(env.catalog, env.catalog, env.catalog, env.ledger, client, time.Second, testRetry)
	finalizer := NewPurchaseFinalizer(nil, "purchases", env.projector, testRetry, time.Second)
	env.purchases = NewPurchaseService(env.ledger, env.catalog, client, finalizer, time.Minute, time.Second)
	env.reconciler = NewWebhookReconciler(env.gateway, env.ledger, finalizer, time.Second)
	env.queries = NewQueryService(env.ledger, env.catalog, client, time.Minute, time.Second)
	return env
}

func (e *testEnv) signedEvent(eventID, eventType, sessionID string, amount int64) ([]byte, string) {
	payload := []byte(`{"id":"` + eventID + `","type":"` + eventType + `","data":{"object":{"id":"` + sessionID + `","amount_total":` +
		strconv.FormatInt(amount, 10) + `,"currency":"usd"}}}`)
	return payload, signHeader(payload)
}

func signHeader(payload []byte) string {
	return webhook.GenerateTestSignedPayload(&webhook.UnsignedPayload{
		Payload: payload,
		Secret:  testSecret,
	}).Header
}
