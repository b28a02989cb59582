// repository/favorite/favoriteRepository.go
package favoriterepo

import (
	"context"
	"database/sql"

	"equiprental/model"
)

type Repo interface {
	// ListByUser returns favorites oldest-first; the head is next to evict.
	ListByUser(ctx context.Context, userID int64) ([]model.FavoriteCategory, error)
	Insert(ctx context.Context, userID int64, categoryName string) error
	Delete(ctx context.Context, userID int64, categoryName string) (bool, error)
}

type repo struct{ db *sql.DB }

func New(db *sql.DB) Repo { return &repo{db: db} }

func (r *repo) ListByUser(ctx context.Context, userID int64) ([]model.FavoriteCategory, error) {
	const q = `
		SELECT user_id, category_name, created_at
		FROM category_favorites
		WHERE user_id = $1
		ORDER BY created_at ASC, category_name ASC`
	rows, err := r.db.QueryContext(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.FavoriteCategory
	for rows.Next() {
		var f model.FavoriteCategory
		if err := rows.Scan(&f.UserID, &f.CategoryName, &f.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, rows.Err()
}

func (r *repo) Insert(ctx context.Context, userID int64, categoryName string) error {
	const q = `
		INSERT INTO category_favorites (user_id, category_name)
		VALUES ($1, $2)
		ON CONFLICT DO NOTHING`
	_, err := r.db.ExecContext(ctx, q, userID, categoryName)
	return err
}

func (r *repo) Delete(ctx context.Context, userID int64, categoryName string) (bool, error) {
	const q = `
		DELETE FROM category_favorites
		WHERE user_id = $1 AND category_name = $2`
	res, err := r.db.ExecContext(ctx, q, userID, categoryName)
	if err != nil {
		return false, err
	}
	aff, _ := res.RowsAffected()
	return aff > 0, nil
}
