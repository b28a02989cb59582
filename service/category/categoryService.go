package categorysvc

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"

	"equiprental/model"
	"equiprental/util/apperr"
)

const (
	CodeBadInput  = "BAD_INPUT"
	CodeDuplicate = "DUPLICATE_NAME"
	CodeNotFound  = "CATEGORY_NOT_FOUND"
)

type Repo interface {
	List(ctx context.Context) ([]model.Category, error)
	Insert(ctx context.Context, name string) (int64, error)
	RenameCascade(ctx context.Context, id int64, newName string) (bool, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

type Service interface {
	List(ctx context.Context) ([]model.Category, error)
	Add(ctx context.Context, name string) (int64, error)
	// Rename retags every item carrying the old name in the same transaction.
	// Renaming to the current name is a no-op.
	Rename(ctx context.Context, id int64, newName string) error
	// Remove never cascades: items keep the stale category string and simply
	// stop matching any registry entry.
	Remove(ctx context.Context, id int64) error
}

type service struct{ r Repo }

func New(r Repo) Service { return &service{r: r} }

func (s *service) List(ctx context.Context) ([]model.Category, error) {
	return s.r.List(ctx)
}

func (s *service) Add(ctx context.Context, name string) (int64, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return 0, apperr.New(apperr.KindValidation, CodeBadInput, "category name is required")
	}
	id, err := s.r.Insert(ctx, name)
	if isUniqueViolation(err) {
		return 0, apperr.New(apperr.KindConflict, CodeDuplicate, "category name already exists")
	}
	return id, err
}

func (s *service) Rename(ctx context.Context, id int64, newName string) error {
	newName = strings.TrimSpace(newName)
	if newName == "" {
		return apperr.New(apperr.KindValidation, CodeBadInput, "category name is required")
	}
	_, err := s.r.RenameCascade(ctx, id, newName)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return apperr.New(apperr.KindNotFound, CodeNotFound, "category not found")
	case isUniqueViolation(err):
		return apperr.New(apperr.KindConflict, CodeDuplicate, "category name already exists")
	}
	return err
}

func (s *service) Remove(ctx context.Context, id int64) error {
	ok, err := s.r.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return apperr.New(apperr.KindNotFound, CodeNotFound, "category not found")
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation
}
