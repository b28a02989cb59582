// repository/rental/rentalRepository.go
package rentalrepo

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"equiprental/model"
)

// Sentinel errors for the transactional commands. The service layer maps
// them onto the user-facing taxonomy.
var (
	ErrNoStock       = errors.New("not enough available stock")
	ErrItemNotFound  = errors.New("item not found")
	ErrNotActive     = errors.New("rental not active")
	ErrNotOwner      = errors.New("rental held by someone else")
	ErrQtyExceeds    = errors.New("return exceeds outstanding quantity")
	ErrStaleRevision = errors.New("rental changed since it was read")
	ErrStockDrift    = errors.New("item counters out of sync with ledger")
)

// View is one ledger row joined with its item and holder, as served to the
// my-rentals, manager and broken-history screens.
type View struct {
	RentalID     int64     `json:"rental_id"`
	ItemID       int64     `json:"item_id"`
	ItemName     string    `json:"item_name"`
	ItemImageURL *string   `json:"item_image_url,omitempty"`
	HolderID     int64     `json:"holder_id"`
	HolderName   string    `json:"holder_name"`
	HolderEmail  string    `json:"holder_email"`
	Qty          int64     `json:"qty"`
	DueDate      time.Time `json:"due_date"`
	Status       string    `json:"status"`
	BrokenLog    int64     `json:"broken_log"`
	ProofURL     *string   `json:"proof_url,omitempty"`
	Revision     int64     `json:"revision"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// ReturnParams drives ProcessReturn. ReturnAll takes the full outstanding
// quantity (the manager's forced return); BrokenAll marks all of it lost.
// HolderID 0 skips the ownership check, Revision 0 skips the optimistic
// concurrency check.
type ReturnParams struct {
	RentalID  int64
	ReturnQty int64
	BrokenQty int64
	ReturnAll bool
	BrokenAll bool
	Proof     string
	HolderID  int64
	Revision  int64
}

type Repo interface {
	// CreateCheckout reserves qty units of the item and opens a ledger record,
	// as one transaction. The availability check and the counter increment are
	// a single guarded UPDATE, so concurrent checkouts cannot jointly overdraw.
	CreateCheckout(ctx context.Context, userID, itemID, qty int64, due time.Time) (int64, error)

	// ProcessReturn shrinks the record, accrues its broken log, closes it at
	// zero and moves the item counters, as one transaction.
	ProcessReturn(ctx context.Context, p ReturnParams) error

	ListActiveByUser(ctx context.Context, userID int64) ([]View, error)
	ListActive(ctx context.Context) ([]View, error)
	ListBrokenHistory(ctx context.Context) ([]View, error)
}

type repo struct{ db *sql.DB }

func New(db *sql.DB) Repo { return &repo{db: db} }

func (r *repo) CreateCheckout(ctx context.Context, userID, itemID, qty int64, due time.Time) (id int64, err error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	// Check-then-increment as one statement: the guard re-evaluates against
	// the committed counters, never a client-cached snapshot.
	const reserve = `
		UPDATE inventory_items
		SET rented_qty = rented_qty + $2, updated_at = now()
		WHERE id = $1
		AND total_qty - rented_qty - broken_qty >= $2`
	res, err := tx.ExecContext(ctx, reserve, itemID, qty)
	if err != nil {
		return 0, err
	}
	if aff, _ := res.RowsAffected(); aff == 0 {
		var one int
		scanErr := tx.QueryRowContext(ctx, `SELECT 1 FROM inventory_items WHERE id = $1`, itemID).Scan(&one)
		if errors.Is(scanErr, sql.ErrNoRows) {
			err = ErrItemNotFound
		} else if scanErr != nil {
			err = scanErr
		} else {
			err = ErrNoStock
		}
		return 0, err
	}

	const insert = `
		INSERT INTO rentals (user_id, item_id, current_rented_qty, due_date, status)
		VALUES ($1, $2, $3, $4, 'active')
		RETURNING id`
	if err = tx.QueryRowContext(ctx, insert, userID, itemID, qty, due).Scan(&id); err != nil {
		return 0, err
	}

	if err = tx.Commit(); err != nil {
		return 0, err
	}
	return id, nil
}

func (r *repo) ProcessReturn(ctx context.Context, p ReturnParams) (err error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	var rec model.Rental
	err = tx.QueryRowContext(ctx, `
		SELECT id, user_id, item_id, current_rented_qty, status, revision
		FROM rentals
		WHERE id = $1
		FOR UPDATE`,
		p.RentalID,
	).Scan(&rec.ID, &rec.UserID, &rec.ItemID, &rec.CurrentRentedQty, &rec.Status, &rec.Revision)
	if err != nil {
		return err
	}

	if rec.Status != model.RentalActive {
		return ErrNotActive
	}
	if p.HolderID != 0 && rec.UserID != p.HolderID {
		return ErrNotOwner
	}
	if p.Revision != 0 && rec.Revision != p.Revision {
		return ErrStaleRevision
	}

	returnQty := p.ReturnQty
	if p.ReturnAll {
		returnQty = rec.CurrentRentedQty
	}
	brokenQty := p.BrokenQty
	if p.BrokenAll {
		brokenQty = returnQty
	}
	if returnQty > rec.CurrentRentedQty {
		return ErrQtyExceeds
	}

	const apply = `
		UPDATE rentals
		SET current_rented_qty = current_rented_qty - $2,
			broken_log = broken_log + $3,
			return_proof_url = $4,
			status = CASE WHEN current_rented_qty - $2 = 0 THEN 'returned' ELSE status END,
			revision = revision + 1,
			updated_at = now()
		WHERE id = $1`
	if _, err = tx.ExecContext(ctx, apply, rec.ID, returnQty, brokenQty, p.Proof); err != nil {
		return err
	}

	// The full returnQty leaves the rented pool; brokenQty moves to the broken
	// pool and never re-enters availability (total_qty untouched, availability
	// is derived). The guard catches ledger/counter drift.
	const release = `
		UPDATE inventory_items
		SET rented_qty = rented_qty - $2,
			broken_qty = broken_qty + $3,
			updated_at = now()
		WHERE id = $1
		AND rented_qty >= $2`
	res, err := tx.ExecContext(ctx, release, rec.ItemID, returnQty, brokenQty)
	if err != nil {
		return err
	}
	if aff, _ := res.RowsAffected(); aff == 0 {
		err = ErrStockDrift
		return err
	}

	return tx.Commit()
}

const viewCols = `
	r.id, r.item_id, i.name, i.image_url,
	r.user_id, p.full_name, p.email,
	r.current_rented_qty, r.due_date, r.status, r.broken_log,
	r.return_proof_url, r.revision, r.created_at, r.updated_at`

const viewJoins = `
	FROM rentals r
	JOIN inventory_items i ON i.id = r.item_id
	JOIN profiles p ON p.id = r.user_id`

func (r *repo) ListActiveByUser(ctx context.Context, userID int64) ([]View, error) {
	q := `SELECT ` + viewCols + viewJoins + `
	WHERE r.user_id = $1 AND r.status = 'active'
	ORDER BY r.created_at DESC, r.id DESC`
	return r.queryViews(ctx, q, userID)
}

func (r *repo) ListActive(ctx context.Context) ([]View, error) {
	q := `SELECT ` + viewCols + viewJoins + `
	WHERE r.status = 'active'
	ORDER BY r.due_date ASC, r.id ASC`
	return r.queryViews(ctx, q)
}

func (r *repo) ListBrokenHistory(ctx context.Context) ([]View, error) {
	q := `SELECT ` + viewCols + viewJoins + `
	WHERE r.broken_log > 0
	ORDER BY r.updated_at DESC, r.id DESC`
	return r.queryViews(ctx, q)
}

func (r *repo) queryViews(ctx context.Context, q string, args ...any) ([]View, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []View
	for rows.Next() {
		var v View
		if err := rows.Scan(
			&v.RentalID, &v.ItemID, &v.ItemName, &v.ItemImageURL,
			&v.HolderID, &v.HolderName, &v.HolderEmail,
			&v.Qty, &v.DueDate, &v.Status, &v.BrokenLog,
			&v.ProofURL, &v.Revision, &v.CreatedAt, &v.UpdatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}
