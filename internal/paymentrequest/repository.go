package paymentrequest

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Repository handles payment request persistence
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new payment request repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

const requestColumns = `
	pr.id, pr.payer_id, pr.payee_id, pr.amount, pr.currency_code, pr.description,
	pr.status, pr.note, pr.payment_method, pr.bill_id,
	pr.created_at, pr.updated_at, pr.completed_at,
	payer.username, payee.username
`

const requestJoins = `
	FROM payment_requests pr
	JOIN users payer ON pr.payer_id = payer.id
	JOIN users payee ON pr.payee_id = payee.id
`

func scanRequest(row interface{ Scan(...any) error }) (*PaymentRequest, error) {
	pr := &PaymentRequest{}
	var rawStatus string
	err := row.Scan(
		&pr.ID,
		&pr.PayerID,
		&pr.PayeeID,
		&pr.Amount,
		&pr.CurrencyCode,
		&pr.Description,
		&rawStatus,
		&pr.Note,
		&pr.PaymentMethod,
		&pr.BillID,
		&pr.CreatedAt,
		&pr.UpdatedAt,
		&pr.CompletedAt,
		&pr.PayerUsername,
		&pr.PayeeUsername,
	)
	if err != nil {
		return nil, err
	}

	// Rows written before the SENT rename may still carry PENDING.
	status, err := ParseStatus(rawStatus)
	if err != nil {
		return nil, err
	}
	pr.Status = status
	return pr, nil
}

// Create inserts a new payment request in the SENT state
func (r *Repository) Create(ctx context.Context, payerID, payeeID int64, amount decimal.Decimal, currencyCode string, description *string, billID *int64) (*PaymentRequest, error) {
	query := `
		WITH inserted AS (
			INSERT INTO payment_requests (payer_id, payee_id, amount, currency_code, description, status, bill_id)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			RETURNING *
		)
		SELECT ` + requestColumns + `
		FROM inserted pr
		JOIN users payer ON pr.payer_id = payer.id
		JOIN users payee ON pr.payee_id = payee.id
	`

	pr, err := scanRequest(r.db.QueryRowContext(ctx, query,
		payerID, payeeID, amount, currencyCode, description, StatusSent, billID))
	if err != nil {
		return nil, fmt.Errorf("failed to create payment request: %w", err)
	}
	return pr, nil
}

// GetByID retrieves a payment request by its ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*PaymentRequest, error) {
	query := `SELECT ` + requestColumns + requestJoins + ` WHERE pr.id = $1`

	pr, err := scanRequest(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get payment request: %w", err)
	}
	return pr, nil
}

// ListByUserID retrieves payment requests where the user is payer or payee
func (r *Repository) ListByUserID(ctx context.Context, userID int64, limit, offset int) ([]*PaymentRequest, int, error) {
	countQuery := `
		SELECT COUNT(*)
		FROM payment_requests
		WHERE payer_id = $1 OR payee_id = $1
	`

	var total int
	if err := r.db.QueryRowContext(ctx, countQuery, userID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count payment requests: %w", err)
	}

	query := `SELECT ` + requestColumns + requestJoins + `
		WHERE pr.payer_id = $1 OR pr.payee_id = $1
		ORDER BY pr.created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.QueryContext(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list payment requests: %w", err)
	}
	defer rows.Close()

	var requests []*PaymentRequest
	for rows.Next() {
		pr, err := scanRequest(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan payment request: %w", err)
		}
		requests = append(requests, pr)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to list payment requests: %w", err)
	}

	return requests, total, nil
}

// ExistsForBill reports whether any payment request references the bill.
func (r *Repository) ExistsForBill(ctx context.Context, billID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM payment_requests WHERE bill_id = $1)`, billID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check payment requests for bill: %w", err)
	}
	return exists, nil
}

// TransitionStatus atomically moves a request from one status to another.
// The WHERE clause compares against the expected current status, so when two
// parties race, exactly one update matches and the loser gets (nil, nil).
// PENDING is matched alongside SENT for rows predating the rename.
func (r *Repository) TransitionStatus(ctx context.Context, id int64, from, to Status, completedAt *time.Time) (*PaymentRequest, error) {
	query := `
		WITH updated AS (
			UPDATE payment_requests
			SET status = $3,
			    completed_at = COALESCE($4, completed_at),
			    updated_at = NOW()
			WHERE id = $1
			  AND (status = $2 OR ($2 = 'SENT' AND status = 'PENDING'))
			RETURNING *
		)
		SELECT ` + requestColumns + `
		FROM updated pr
		JOIN users payer ON pr.payer_id = payer.id
		JOIN users payee ON pr.payee_id = payee.id
	`

	pr, err := scanRequest(r.db.QueryRowContext(ctx, query, id, from, to, completedAt))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to transition payment request: %w", err)
	}
	return pr, nil
}

// UpdateDetails updates non-status fields without touching status
func (r *Repository) UpdateDetails(ctx context.Context, id int64, note, paymentMethod *string) (*PaymentRequest, error) {
	query := `
		WITH updated AS (
			UPDATE payment_requests
			SET note = COALESCE($2, note),
			    payment_method = COALESCE($3, payment_method),
			    updated_at = NOW()
			WHERE id = $1
			RETURNING *
		)
		SELECT ` + requestColumns + `
		FROM updated pr
		JOIN users payer ON pr.payer_id = payer.id
		JOIN users payee ON pr.payee_id = payee.id
	`

	pr, err := scanRequest(r.db.QueryRowContext(ctx, query, id, note, paymentMethod))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to update payment request: %w", err)
	}
	return pr, nil
}
