package bill

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/sayantan-2/splitbill/internal/bill/split"
)

// Repository handles bill data persistence
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new bill repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a bill and its items in a single transaction. The split
// strategy of each item is stored as JSONB so the exact variant survives
// round-tripping.
func (r *Repository) Create(ctx context.Context, creatorID int64, req *CreateBillRequest, items []*Item) (*Bill, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	billQuery := `
		INSERT INTO bills (group_id, creator_id, title, currency_code, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, group_id, creator_id, title, currency_code, status, created_at
	`

	bill := &Bill{}
	err = tx.QueryRowContext(ctx, billQuery, req.GroupID, creatorID, req.Title, req.CurrencyCode, StatusDraft).Scan(
		&bill.ID,
		&bill.GroupID,
		&bill.CreatorID,
		&bill.Title,
		&bill.CurrencyCode,
		&bill.Status,
		&bill.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create bill: %w", err)
	}

	itemQuery := `
		INSERT INTO bill_items (bill_id, name, unit_price, quantity, total_price, discount_percentage, tax_percentage, split)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`

	for _, item := range items {
		splitJSON, err := json.Marshal(item.Split)
		if err != nil {
			return nil, fmt.Errorf("failed to encode split: %w", err)
		}

		err = tx.QueryRowContext(ctx, itemQuery,
			bill.ID,
			item.Name,
			item.UnitPrice,
			item.Quantity,
			item.TotalPrice,
			item.DiscountPercentage,
			item.TaxPercentage,
			splitJSON,
		).Scan(&item.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to create bill item: %w", err)
		}
		item.BillID = bill.ID
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	bill.Items = items
	return bill, nil
}

// GetByID retrieves a bill with its items, or nil when absent
func (r *Repository) GetByID(ctx context.Context, id int64) (*Bill, error) {
	query := `
		SELECT b.id, b.group_id, b.creator_id, b.title, b.currency_code, b.status, b.created_at, u.username
		FROM bills b
		JOIN users u ON b.creator_id = u.id
		WHERE b.id = $1
	`

	bill := &Bill{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&bill.ID,
		&bill.GroupID,
		&bill.CreatorID,
		&bill.Title,
		&bill.CurrencyCode,
		&bill.Status,
		&bill.CreatedAt,
		&bill.CreatorUsername,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get bill: %w", err)
	}

	items, err := r.getItems(ctx, id)
	if err != nil {
		return nil, err
	}
	bill.Items = items

	return bill, nil
}

func (r *Repository) getItems(ctx context.Context, billID int64) ([]*Item, error) {
	query := `
		SELECT id, bill_id, name, unit_price, quantity, total_price, discount_percentage, tax_percentage, split
		FROM bill_items
		WHERE bill_id = $1
		ORDER BY id
	`

	rows, err := r.db.QueryContext(ctx, query, billID)
	if err != nil {
		return nil, fmt.Errorf("failed to get bill items: %w", err)
	}
	defer rows.Close()

	var items []*Item
	for rows.Next() {
		item := &Item{}
		var splitJSON []byte
		err := rows.Scan(
			&item.ID,
			&item.BillID,
			&item.Name,
			&item.UnitPrice,
			&item.Quantity,
			&item.TotalPrice,
			&item.DiscountPercentage,
			&item.TaxPercentage,
			&splitJSON,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan bill item: %w", err)
		}

		var spec split.Spec
		if err := json.Unmarshal(splitJSON, &spec); err != nil {
			return nil, fmt.Errorf("failed to decode split: %w", err)
		}
		item.Split = spec

		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to get bill items: %w", err)
	}

	return items, nil
}

// ListByGroupID retrieves bills belonging to a group, newest first
func (r *Repository) ListByGroupID(ctx context.Context, groupID int64, limit, offset int) ([]*Bill, int, error) {
	countQuery := `SELECT COUNT(*) FROM bills WHERE group_id = $1`

	var total int
	if err := r.db.QueryRowContext(ctx, countQuery, groupID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count bills: %w", err)
	}

	query := `
		SELECT b.id, b.group_id, b.creator_id, b.title, b.currency_code, b.status, b.created_at, u.username
		FROM bills b
		JOIN users u ON b.creator_id = u.id
		WHERE b.group_id = $1
		ORDER BY b.created_at DESC
		LIMIT $2 OFFSET $3
	`

	bills, err := r.listBills(ctx, query, groupID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	return bills, total, nil
}

// ListByCreatorID retrieves bills created by a user, newest first
func (r *Repository) ListByCreatorID(ctx context.Context, creatorID int64, limit, offset int) ([]*Bill, int, error) {
	countQuery := `SELECT COUNT(*) FROM bills WHERE creator_id = $1`

	var total int
	if err := r.db.QueryRowContext(ctx, countQuery, creatorID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count bills: %w", err)
	}

	query := `
		SELECT b.id, b.group_id, b.creator_id, b.title, b.currency_code, b.status, b.created_at, u.username
		FROM bills b
		JOIN users u ON b.creator_id = u.id
		WHERE b.creator_id = $1
		ORDER BY b.created_at DESC
		LIMIT $2 OFFSET $3
	`

	bills, err := r.listBills(ctx, query, creatorID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	return bills, total, nil
}

func (r *Repository) listBills(ctx context.Context, query string, args ...any) ([]*Bill, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list bills: %w", err)
	}
	defer rows.Close()

	var bills []*Bill
	for rows.Next() {
		bill := &Bill{}
		err := rows.Scan(
			&bill.ID,
			&bill.GroupID,
			&bill.CreatorID,
			&bill.Title,
			&bill.CurrencyCode,
			&bill.Status,
			&bill.CreatedAt,
			&bill.CreatorUsername,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan bill: %w", err)
		}
		bills = append(bills, bill)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list bills: %w", err)
	}

	return bills, nil
}

// FinalizeIfDraft flips a bill from DRAFT to FINALIZED only if it is still a
// draft. Returns false when another finalization won the race.
func (r *Repository) FinalizeIfDraft(ctx context.Context, id int64) (bool, error) {
	query := `
		UPDATE bills
		SET status = $2
		WHERE id = $1 AND status = $3
	`

	result, err := r.db.ExecContext(ctx, query, id, StatusFinalized, StatusDraft)
	if err != nil {
		return false, fmt.Errorf("failed to finalize bill: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to finalize bill: %w", err)
	}
	return affected == 1, nil
}

// Delete removes a bill; items cascade at the schema level
func (r *Repository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM bills WHERE id = $1`

	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("failed to delete bill: %w", err)
	}
	return nil
}
