package favoritesvc_test

import (
	"context"
	"testing"
	"time"

	"equiprental/model"
	favoritesvc "equiprental/service/favorite"
	"equiprental/util/apperr"

	"github.com/stretchr/testify/require"
)

// fakeRepo keeps pins in insertion order, same as the real oldest-first query.
type fakeRepo struct {
	pins []model.FavoriteCategory
}

var _ favoritesvc.Repo = (*fakeRepo)(nil)

func (f *fakeRepo) ListByUser(ctx context.Context, userID int64) ([]model.FavoriteCategory, error) {
	out := make([]model.FavoriteCategory, len(f.pins))
	copy(out, f.pins)
	return out, nil
}

func (f *fakeRepo) Insert(ctx context.Context, userID int64, categoryName string) error {
	for _, p := range f.pins {
		if p.CategoryName == categoryName {
			return nil
		}
	}
	f.pins = append(f.pins, model.FavoriteCategory{
		UserID:       userID,
		CategoryName: categoryName,
		CreatedAt:    time.Now(),
	})
	return nil
}

func (f *fakeRepo) Delete(ctx context.Context, userID int64, categoryName string) (bool, error) {
	for i, p := range f.pins {
		if p.CategoryName == categoryName {
			f.pins = append(f.pins[:i], f.pins[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func names(rows []model.FavoriteCategory) []string {
	out := make([]string, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.CategoryName)
	}
	return out
}

func TestToggle_BadInput(t *testing.T) {
	svc := favoritesvc.New(&fakeRepo{})
	_, err := svc.Toggle(context.Background(), 1, "   ")
	require.Equal(t, favoritesvc.CodeBadInput, apperr.CodeOf(err))
}

func TestToggle_PinAndUnpin(t *testing.T) {
	svc := favoritesvc.New(&fakeRepo{})
	ctx := context.Background()

	rows, err := svc.Toggle(ctx, 1, "camera")
	require.NoError(t, err)
	require.Equal(t, []string{"camera"}, names(rows))

	rows, err = svc.Toggle(ctx, 1, "camera")
	require.NoError(t, err)
	require.Empty(t, rows)
}

func TestToggle_EvictsOldestAtBound(t *testing.T) {
	svc := favoritesvc.New(&fakeRepo{})
	ctx := context.Background()

	_, err := svc.Toggle(ctx, 1, "camera")
	require.NoError(t, err)
	_, err = svc.Toggle(ctx, 1, "audio")
	require.NoError(t, err)

	// Third pin pushes out "camera", the oldest.
	rows, err := svc.Toggle(ctx, 1, "lighting")
	require.NoError(t, err)
	require.Len(t, rows, model.MaxFavorites)
	require.Equal(t, []string{"audio", "lighting"}, names(rows))

	// And the next one pushes out "audio".
	rows, err = svc.Toggle(ctx, 1, "tripods")
	require.NoError(t, err)
	require.Equal(t, []string{"lighting", "tripods"}, names(rows))
}

func TestToggle_UnpinBelowBoundThenPin(t *testing.T) {
	svc := favoritesvc.New(&fakeRepo{})
	ctx := context.Background()

	_, err := svc.Toggle(ctx, 1, "camera")
	require.NoError(t, err)
	_, err = svc.Toggle(ctx, 1, "audio")
	require.NoError(t, err)

	// Unpin one, then a new pin must not evict anything.
	_, err = svc.Toggle(ctx, 1, "camera")
	require.NoError(t, err)
	rows, err := svc.Toggle(ctx, 1, "lighting")
	require.NoError(t, err)
	require.Equal(t, []string{"audio", "lighting"}, names(rows))
}
