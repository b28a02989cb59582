// repository/category/categoryRepository.go
package categoryrepo

import (
	"context"
	"database/sql"

	"equiprental/model"
)

type Repo interface {
	List(ctx context.Context) ([]model.Category, error)
	Insert(ctx context.Context, name string) (int64, error)
	// RenameCascade renames the category row and rewrites every item carrying
	// the old name, in one transaction. Returns false on a no-op rename.
	RenameCascade(ctx context.Context, id int64, newName string) (bool, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

type repo struct{ db *sql.DB }

func New(db *sql.DB) Repo { return &repo{db: db} }

func (r *repo) List(ctx context.Context) ([]model.Category, error) {
	const q = `SELECT id, name, created_at FROM categories ORDER BY id ASC`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Category
	for rows.Next() {
		var c model.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *repo) Insert(ctx context.Context, name string) (int64, error) {
	const q = `INSERT INTO categories (name) VALUES ($1) RETURNING id`
	var id int64
	if err := r.db.QueryRowContext(ctx, q, name).Scan(&id); err != nil {
		return 0, err
	}
	return id, nil
}

func (r *repo) RenameCascade(ctx context.Context, id int64, newName string) (changed bool, err error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return false, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	var oldName string
	err = tx.QueryRowContext(ctx,
		`SELECT name FROM categories WHERE id = $1 FOR UPDATE`, id,
	).Scan(&oldName)
	if err != nil {
		return false, err
	}
	if oldName == newName {
		_ = tx.Rollback()
		return false, nil
	}

	if _, err = tx.ExecContext(ctx,
		`UPDATE categories SET name = $2 WHERE id = $1`, id, newName,
	); err != nil {
		return false, err
	}
	if _, err = tx.ExecContext(ctx,
		`UPDATE inventory_items SET category = $2, updated_at = now() WHERE category = $1`,
		oldName, newName,
	); err != nil {
		return false, err
	}
	if err = tx.Commit(); err != nil {
		return false, err
	}
	return true, nil
}

// Delete never cascades: items keep the stale category string.
func (r *repo) Delete(ctx context.Context, id int64) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	aff, _ := res.RowsAffected()
	return aff > 0, nil
}
