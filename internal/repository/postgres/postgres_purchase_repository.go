package repository

import (
	"context"
	"database/sql"
	stderrors "errors"
	"fmt"
	"log/slog"

	"github.com/honeynil/course-purchase-service/internal/models"
	pkgerrors "github.com/honeynil/course-purchase-service/pkg/errors"
	"go.opentelemetry.io/otel/attribute"
)

const purchaseTracer = "purchase-repository"

const purchaseColumns = `id, buyer_id, course_id, external_reference, amount, status, projected_at, created_at, updated_at`

const purchaseWithCourseColumns = `p.id, p.buyer_id, p.course_id, p.external_reference, p.amount, p.status, p.projected_at, p.created_at, p.updated_at,
	c.id, c.title, c.price, c.thumbnail`

type PostgresPurchaseRepository struct {
	db *sql.DB
}

func NewPostgresPurchaseRepository(db *sql.DB) *PostgresPurchaseRepository {
	return &PostgresPurchaseRepository{db: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPurchase(row rowScanner, extra ...any) (*models.PurchaseRecord, error) {
	var (
		p           models.PurchaseRecord
		ref         sql.NullString
		projectedAt sql.NullTime
	)
	dest := append([]any{&p.ID, &p.BuyerID, &p.CourseID, &ref, &p.Amount, &p.Status, &projectedAt, &p.CreatedAt, &p.UpdatedAt}, extra...)
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	p.ExternalReference = ref.String
	if projectedAt.Valid {
		t := projectedAt.Time
		p.ProjectedAt = &t
	}
	return &p, nil
}

// Create inserts a ledger entry. The partial unique index on
// (buyer_id, course_id) makes the insert a no-op when a live purchase
// already exists, which is reported as ErrDuplicatePurchase.
func (r *PostgresPurchaseRepository) Create(ctx context.Context, p *models.PurchaseRecord) (_ *models.PurchaseRecord, err error) {
	if p == nil {
		err = pkgerrors.ErrNilPurchase
		slog.Error("failed to create purchase", "method", "Create", "error", err)
		return nil, err
	}

	ctx, _, done := observe(ctx, purchaseTracer, "CreatePurchase",
		attribute.String("buyer_id", p.BuyerID),
		attribute.String("course_id", p.CourseID),
		attribute.String("status", string(p.Status)),
		attribute.Int64("amount", p.Amount),
	)
	defer done(&err)

	if p.BuyerID == "" || p.CourseID == "" {
		err = fmt.Errorf("buyer and course are required: %w", pkgerrors.ErrInvalidInput)
		slog.Error("invalid purchase", "method", "Create", "error", err)
		return nil, err
	}
	if !p.Status.Valid() {
		err = pkgerrors.ErrInvalidPurchaseStatus
		slog.Error("invalid purchase status", "method", "Create", "status", p.Status, "error", err)
		return nil, err
	}
	if p.Amount < 0 {
		err = fmt.Errorf("amount must not be negative: %w", pkgerrors.ErrInvalidInput)
		slog.Error("invalid purchase amount", "method", "Create", "amount", p.Amount, "error", err)
		return nil, err
	}

	query := `
		INSERT INTO course_purchases (buyer_id, course_id, external_reference, amount, status)
		VALUES ($1, $2, NULLIF($3, ''), $4, $5)
		ON CONFLICT (buyer_id, course_id) WHERE status <> 'failed' DO NOTHING
		RETURNING id, created_at, updated_at`

	created := *p
	err = r.db.QueryRowContext(ctx, query, p.BuyerID, p.CourseID, p.ExternalReference, p.Amount, p.Status).
		Scan(&created.ID, &created.CreatedAt, &created.UpdatedAt)
	switch {
	case stderrors.Is(err, sql.ErrNoRows):
		err = pkgerrors.ErrDuplicatePurchase
		slog.Warn("live purchase already exists", "method", "Create", "buyer_id", p.BuyerID, "course_id", p.CourseID)
		return nil, err
	case isUniqueViolation(err):
		err = fmt.Errorf("external reference %q already used: %w", p.ExternalReference, pkgerrors.ErrDuplicatePurchase)
		slog.Warn("duplicate external reference", "method", "Create", "external_reference", p.ExternalReference)
		return nil, err
	case err != nil:
		slog.Error("failed to create purchase", "method", "Create", "buyer_id", p.BuyerID, "course_id", p.CourseID, "error", err)
		err = storeErr("failed to create purchase", err)
		return nil, err
	}

	slog.Info("purchase created", "method", "Create", "id", created.ID, "buyer_id", created.BuyerID, "course_id", created.CourseID, "status", created.Status)
	return &created, nil
}

func (r *PostgresPurchaseRepository) FindByID(ctx context.Context, id int64) (_ *models.PurchaseRecord, err error) {
	ctx, _, done := observe(ctx, purchaseTracer, "FindPurchaseByID", attribute.Int64("purchase_id", id))
	defer done(&err)

	p, err := r.findOne(ctx, `SELECT `+purchaseColumns+` FROM course_purchases WHERE id = $1`, id)
	if err != nil && !stderrors.Is(err, pkgerrors.ErrPurchaseNotFound) {
		slog.Error("failed to get purchase by id", "method", "FindByID", "purchase_id", id, "error", err)
	}
	return p, err
}

func (r *PostgresPurchaseRepository) FindByBuyerAndCourse(ctx context.Context, buyerID, courseID string) (_ *models.PurchaseRecord, err error) {
	ctx, _, done := observe(ctx, purchaseTracer, "FindPurchaseByBuyerAndCourse",
		attribute.String("buyer_id", buyerID),
		attribute.String("course_id", courseID),
	)
	defer done(&err)

	query := `SELECT ` + purchaseColumns + `
		FROM course_purchases
		WHERE buyer_id = $1 AND course_id = $2 AND status <> 'failed'
		ORDER BY created_at DESC
		LIMIT 1`
	p, err := r.findOne(ctx, query, buyerID, courseID)
	if err != nil && !stderrors.Is(err, pkgerrors.ErrPurchaseNotFound) {
		slog.Error("failed to get purchase", "method", "FindByBuyerAndCourse", "buyer_id", buyerID, "course_id", courseID, "error", err)
	}
	return p, err
}

func (r *PostgresPurchaseRepository) FindByExternalReference(ctx context.Context, ref string) (_ *models.PurchaseRecord, err error) {
	ctx, _, done := observe(ctx, purchaseTracer, "FindPurchaseByExternalReference", attribute.String("external_reference", ref))
	defer done(&err)

	if ref == "" {
		return nil, pkgerrors.ErrPurchaseNotFound
	}
	p, err := r.findOne(ctx, `SELECT `+purchaseColumns+` FROM course_purchases WHERE external_reference = $1`, ref)
	if err != nil && !stderrors.Is(err, pkgerrors.ErrPurchaseNotFound) {
		slog.Error("failed to get purchase by reference", "method", "FindByExternalReference", "external_reference", ref, "error", err)
	}
	return p, err
}

// MarkCompleted moves a pending purchase to completed. The update is
// conditional on the pending status, so concurrent deliveries of the same
// gateway event produce one transition; every other caller gets the stored
// record back with changed=false.
func (r *PostgresPurchaseRepository) MarkCompleted(ctx context.Context, id int64, finalAmount int64) (_ *models.PurchaseRecord, changed bool, err error) {
	ctx, _, done := observe(ctx, purchaseTracer, "MarkPurchaseCompleted",
		attribute.Int64("purchase_id", id),
		attribute.Int64("final_amount", finalAmount),
	)
	defer done(&err)

	query := `
		UPDATE course_purchases
		SET status = 'completed',
			amount = CASE WHEN $2::bigint > 0 THEN $2::bigint ELSE amount END,
			updated_at = NOW()
		WHERE id = $1 AND status = 'pending'
		RETURNING ` + purchaseColumns

	p, err := scanPurchase(r.db.QueryRowContext(ctx, query, id, finalAmount))
	if err == nil {
		slog.Info("purchase completed", "method", "MarkCompleted", "purchase_id", id, "amount", p.Amount)
		return p, true, nil
	}
	if !stderrors.Is(err, sql.ErrNoRows) {
		slog.Error("failed to complete purchase", "method", "MarkCompleted", "purchase_id", id, "error", err)
		err = storeErr("failed to complete purchase", err)
		return nil, false, err
	}

	current, err := r.findOne(ctx, `SELECT `+purchaseColumns+` FROM course_purchases WHERE id = $1`, id)
	if err != nil {
		return nil, false, err
	}
	switch current.Status {
	case models.StatusCompleted:
		slog.Info("purchase already completed", "method", "MarkCompleted", "purchase_id", id)
		return current, false, nil
	default:
		err = fmt.Errorf("purchase %d is %s: %w", id, current.Status, pkgerrors.ErrInvalidStatusTransition)
		slog.Error("cannot complete purchase", "method", "MarkCompleted", "purchase_id", id, "status", current.Status)
		return nil, false, err
	}
}

func (r *PostgresPurchaseRepository) MarkProjected(ctx context.Context, id int64) (err error) {
	ctx, _, done := observe(ctx, purchaseTracer, "MarkPurchaseProjected", attribute.Int64("purchase_id", id))
	defer done(&err)

	query := `UPDATE course_purchases SET projected_at = NOW() WHERE id = $1 AND status = 'completed' AND projected_at IS NULL`
	if _, err = r.db.ExecContext(ctx, query, id); err != nil {
		slog.Error("failed to mark purchase projected", "method", "MarkProjected", "purchase_id", id, "error", err)
		err = storeErr("failed to mark purchase projected", err)
		return err
	}
	return nil
}

func (r *PostgresPurchaseRepository) MarkProjectionFailed(ctx context.Context, id int64) (err error) {
	ctx, _, done := observe(ctx, purchaseTracer, "MarkPurchaseProjectionFailed", attribute.Int64("purchase_id", id))
	defer done(&err)

	query := `
		UPDATE course_purchases
		SET projection_attempts = projection_attempts + 1,
			last_projection_at = NOW()
		WHERE id = $1 AND projected_at IS NULL`
	if _, err = r.db.ExecContext(ctx, query, id); err != nil {
		slog.Error("failed to record projection failure", "method", "MarkProjectionFailed", "purchase_id", id, "error", err)
		err = storeErr("failed to record projection failure", err)
		return err
	}
	return nil
}

// ListUnprojected returns entries never tried first, then the ones whose
// last attempt is oldest, so entries that keep failing cannot hold the batch.
func (r *PostgresPurchaseRepository) ListUnprojected(ctx context.Context, limit int) (_ []models.PurchaseRecord, err error) {
	ctx, _, done := observe(ctx, purchaseTracer, "ListUnprojectedPurchases", attribute.Int("limit", limit))
	defer done(&err)

	if limit <= 0 {
		limit = 100
	}
	query := `SELECT ` + purchaseColumns + `
		FROM course_purchases
		WHERE status = 'completed' AND projected_at IS NULL
		ORDER BY last_projection_at ASC NULLS FIRST, updated_at ASC
		LIMIT $1`
	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		slog.Error("failed to list unprojected purchases", "method", "ListUnprojected", "error", err)
		err = storeErr("failed to list unprojected purchases", err)
		return nil, err
	}
	defer rows.Close()

	var out []models.PurchaseRecord
	for rows.Next() {
		p, scanErr := scanPurchase(rows)
		if scanErr != nil {
			err = fmt.Errorf("failed to scan purchase: %w", scanErr)
			return nil, err
		}
		out = append(out, *p)
	}
	if err = rows.Err(); err != nil {
		err = storeErr("failed to iterate purchases", err)
		return nil, err
	}
	return out, nil
}

func (r *PostgresPurchaseRepository) ListCompleted(ctx context.Context) (_ []models.PurchaseWithCourse, err error) {
	ctx, _, done := observe(ctx, purchaseTracer, "ListCompletedPurchases")
	defer done(&err)

	query := `SELECT ` + purchaseWithCourseColumns + `
		FROM course_purchases p
		JOIN courses c ON c.id = p.course_id
		WHERE p.status = 'completed'
		ORDER BY p.created_at DESC`
	out, err := r.listWithCourse(ctx, query)
	if err != nil {
		slog.Error("failed to list completed purchases", "method", "ListCompleted", "error", err)
		return nil, err
	}
	slog.Info("completed purchases retrieved", "method", "ListCompleted", "count", len(out))
	return out, nil
}

func (r *PostgresPurchaseRepository) ListCompletedByBuyer(ctx context.Context, buyerID string) (_ []models.PurchaseWithCourse, err error) {
	ctx, _, done := observe(ctx, purchaseTracer, "ListCompletedPurchasesByBuyer", attribute.String("buyer_id", buyerID))
	defer done(&err)

	query := `SELECT ` + purchaseWithCourseColumns + `
		FROM course_purchases p
		JOIN courses c ON c.id = p.course_id
		WHERE p.status = 'completed' AND p.buyer_id = $1
		ORDER BY p.created_at DESC`
	out, err := r.listWithCourse(ctx, query, buyerID)
	if err != nil {
		slog.Error("failed to list buyer purchases", "method", "ListCompletedByBuyer", "buyer_id", buyerID, "error", err)
		return nil, err
	}
	return out, nil
}

func (r *PostgresPurchaseRepository) findOne(ctx context.Context, query string, args ...any) (*models.PurchaseRecord, error) {
	p, err := scanPurchase(r.db.QueryRowContext(ctx, query, args...))
	if stderrors.Is(err, sql.ErrNoRows) {
		return nil, pkgerrors.ErrPurchaseNotFound
	}
	if err != nil {
		return nil, storeErr("failed to get purchase", err)
	}
	return p, nil
}

func (r *PostgresPurchaseRepository) listWithCourse(ctx context.Context, query string, args ...any) ([]models.PurchaseWithCourse, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, storeErr("failed to list purchases", err)
	}
	defer rows.Close()

	out := []models.PurchaseWithCourse{}
	for rows.Next() {
		var c models.CourseSummary
		p, err := scanPurchase(rows, &c.ID, &c.Title, &c.Price, &c.Thumbnail)
		if err != nil {
			return nil, fmt.Errorf("failed to scan purchase: %w", err)
		}
		out = append(out, models.PurchaseWithCourse{PurchaseRecord: *p, Course: c})
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr("failed to iterate purchases", err)
	}
	return out, nil
}
