// repository/item/itemRepository.go
package itemrepo

import (
	"context"
	"database/sql"
	"errors"

	"equiprental/model"
)

var (
	// ErrStockConflict: total_qty would drop below rented+broken.
	ErrStockConflict = errors.New("total below units in circulation")
	// ErrHasActiveRentals: item still referenced by an active rental.
	ErrHasActiveRentals = errors.New("item has active rentals")
)

type UpdatePatch struct {
	Name     string
	Category string
	ImageURL *string
	TotalQty int64
}

type Repo interface {
	Create(ctx context.Context, name, category string, imageURL *string, totalQty int64) (int64, error)
	Get(ctx context.Context, id int64) (*model.InventoryItem, error)
	Update(ctx context.Context, id int64, p UpdatePatch) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, f model.ItemFilter) ([]model.InventoryItem, error)
}

type repo struct{ db *sql.DB }

func New(db *sql.DB) Repo { return &repo{db: db} }

const itemCols = `
	id, name, category, image_url, total_qty, rented_qty, broken_qty,
	total_qty - rented_qty - broken_qty AS available_qty, created_at, updated_at`

func (r *repo) Create(ctx context.Context, name, category string, imageURL *string, totalQty int64) (int64, error) {
	const q = `
		INSERT INTO inventory_items (name, category, image_url, total_qty)
		VALUES ($1,$2,$3,$4)
		RETURNING id`
	var id int64
	if err := r.db.QueryRowContext(ctx, q, name, category, imageURL, totalQty).Scan(&id); err != nil {
		return 0, err
	}
	return id, nil
}

func (r *repo) Get(ctx context.Context, id int64) (*model.InventoryItem, error) {
	q := `SELECT ` + itemCols + ` FROM inventory_items WHERE id = $1`
	var it model.InventoryItem
	err := r.db.QueryRowContext(ctx, q, id).Scan(
		&it.ID, &it.Name, &it.Category, &it.ImageURL,
		&it.TotalQty, &it.RentedQty, &it.BrokenQty, &it.AvailableQty,
		&it.CreatedAt, &it.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &it, nil
}

// Update is one guarded statement: it refuses to shrink total_qty below the
// units currently out (rented + broken), so in-use stock cannot be edited
// away under a holder.
func (r *repo) Update(ctx context.Context, id int64, p UpdatePatch) error {
	const q = `
		UPDATE inventory_items
		SET name = $2, category = $3, image_url = $4, total_qty = $5, updated_at = now()
		WHERE id = $1
		AND rented_qty + broken_qty <= $5`
	res, err := r.db.ExecContext(ctx, q, id, p.Name, p.Category, p.ImageURL, p.TotalQty)
	if err != nil {
		return err
	}
	if aff, _ := res.RowsAffected(); aff == 0 {
		exists, err := r.exists(ctx, id)
		if err != nil {
			return err
		}
		if !exists {
			return sql.ErrNoRows
		}
		return ErrStockConflict
	}
	return nil
}

func (r *repo) Delete(ctx context.Context, id int64) error {
	const q = `
		DELETE FROM inventory_items
		WHERE id = $1
		AND NOT EXISTS (
			SELECT 1 FROM rentals
			WHERE item_id = $1 AND status = 'active'
		)`
	res, err := r.db.ExecContext(ctx, q, id)
	if err != nil {
		return err
	}
	if aff, _ := res.RowsAffected(); aff == 0 {
		exists, err := r.exists(ctx, id)
		if err != nil {
			return err
		}
		if !exists {
			return sql.ErrNoRows
		}
		return ErrHasActiveRentals
	}
	return nil
}

func (r *repo) exists(ctx context.Context, id int64) (bool, error) {
	var one int
	err := r.db.QueryRowContext(ctx, `SELECT 1 FROM inventory_items WHERE id = $1`, id).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// List combines an exact category match (empty = all) with a case-insensitive
// substring name search, AND semantics. Ties break on id for a stable order.
func (r *repo) List(ctx context.Context, f model.ItemFilter) ([]model.InventoryItem, error) {
	q := `SELECT ` + itemCols + `
	FROM inventory_items
	WHERE ($1 = '' OR category = $1)
	AND ($2 = '' OR name ILIKE '%' || $2 || '%')`

	switch f.SortBy {
	case model.SortByAvailable:
		q += ` ORDER BY available_qty DESC, id ASC`
	case model.SortByRecent:
		q += ` ORDER BY created_at DESC, id DESC`
	default:
		q += ` ORDER BY name ASC, id ASC`
	}

	rows, err := r.db.QueryContext(ctx, q, f.Category, f.Search)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.InventoryItem
	for rows.Next() {
		var it model.InventoryItem
		if err := rows.Scan(
			&it.ID, &it.Name, &it.Category, &it.ImageURL,
			&it.TotalQty, &it.RentedQty, &it.BrokenQty, &it.AvailableQty,
			&it.CreatedAt, &it.UpdatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, it)
	}
	return out, rows.Err()
}
