package categorysvc_test

import (
	"context"
	"database/sql"
	"testing"

	"equiprental/model"
	categorysvc "equiprental/service/category"
	"equiprental/util/apperr"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"
)

type repoMock struct {
	listFn   func(ctx context.Context) ([]model.Category, error)
	insertFn func(ctx context.Context, name string) (int64, error)
	renameFn func(ctx context.Context, id int64, newName string) (bool, error)
	deleteFn func(ctx context.Context, id int64) (bool, error)
}

var _ categorysvc.Repo = (*repoMock)(nil)

func (m *repoMock) List(ctx context.Context) ([]model.Category, error) {
	if m.listFn == nil {
		return nil, nil
	}
	return m.listFn(ctx)
}

func (m *repoMock) Insert(ctx context.Context, name string) (int64, error) {
	if m.insertFn == nil {
		return 1, nil
	}
	return m.insertFn(ctx, name)
}

func (m *repoMock) RenameCascade(ctx context.Context, id int64, newName string) (bool, error) {
	if m.renameFn == nil {
		return true, nil
	}
	return m.renameFn(ctx, id, newName)
}

func (m *repoMock) Delete(ctx context.Context, id int64) (bool, error) {
	if m.deleteFn == nil {
		return true, nil
	}
	return m.deleteFn(ctx, id)
}

func uniqueViolation() error {
	return &pgconn.PgError{Code: pgerrcode.UniqueViolation}
}

func TestAdd_Validation(t *testing.T) {
	svc := categorysvc.New(&repoMock{})
	_, err := svc.Add(context.Background(), "   ")
	require.Equal(t, categorysvc.CodeBadInput, apperr.CodeOf(err))
}

func TestAdd_Duplicate(t *testing.T) {
	m := &repoMock{
		insertFn: func(ctx context.Context, name string) (int64, error) { return 0, uniqueViolation() },
	}
	svc := categorysvc.New(m)
	_, err := svc.Add(context.Background(), "camera")
	require.Equal(t, categorysvc.CodeDuplicate, apperr.CodeOf(err))
	require.Equal(t, apperr.KindConflict, apperr.KindOf(err))
}

func TestAdd_Trims(t *testing.T) {
	m := &repoMock{
		insertFn: func(ctx context.Context, name string) (int64, error) {
			require.Equal(t, "camera", name)
			return 5, nil
		},
	}
	svc := categorysvc.New(m)
	id, err := svc.Add(context.Background(), "  camera  ")
	require.NoError(t, err)
	require.Equal(t, int64(5), id)
}

func TestRename_NotFound(t *testing.T) {
	m := &repoMock{
		renameFn: func(ctx context.Context, id int64, newName string) (bool, error) {
			return false, sql.ErrNoRows
		},
	}
	svc := categorysvc.New(m)
	err := svc.Rename(context.Background(), 99, "new")
	require.Equal(t, categorysvc.CodeNotFound, apperr.CodeOf(err))
}

func TestRename_Duplicate(t *testing.T) {
	m := &repoMock{
		renameFn: func(ctx context.Context, id int64, newName string) (bool, error) {
			return false, uniqueViolation()
		},
	}
	svc := categorysvc.New(m)
	err := svc.Rename(context.Background(), 1, "taken")
	require.Equal(t, categorysvc.CodeDuplicate, apperr.CodeOf(err))
}

func TestRemove_NotFound(t *testing.T) {
	m := &repoMock{
		deleteFn: func(ctx context.Context, id int64) (bool, error) { return false, nil },
	}
	svc := categorysvc.New(m)
	err := svc.Remove(context.Background(), 99)
	require.Equal(t, categorysvc.CodeNotFound, apperr.CodeOf(err))
}
