package itemsvc_test

import (
	"context"
	"database/sql"
	"testing"

	"equiprental/model"
	itemrepo "equiprental/repository/item"
	itemsvc "equiprental/service/item"
	"equiprental/util/apperr"

	"github.com/stretchr/testify/require"
)

type repoMock struct {
	createFn func(ctx context.Context, name, category string, imageURL *string, totalQty int64) (int64, error)
	getFn    func(ctx context.Context, id int64) (*model.InventoryItem, error)
	updateFn func(ctx context.Context, id int64, p itemrepo.UpdatePatch) error
	deleteFn func(ctx context.Context, id int64) error
	listFn   func(ctx context.Context, f model.ItemFilter) ([]model.InventoryItem, error)
}

var _ itemsvc.Repo = (*repoMock)(nil)

func (m *repoMock) Create(ctx context.Context, name, category string, imageURL *string, totalQty int64) (int64, error) {
	if m.createFn == nil {
		return 1, nil
	}
	return m.createFn(ctx, name, category, imageURL, totalQty)
}

func (m *repoMock) Get(ctx context.Context, id int64) (*model.InventoryItem, error) {
	if m.getFn == nil {
		return &model.InventoryItem{ID: id}, nil
	}
	return m.getFn(ctx, id)
}

func (m *repoMock) Update(ctx context.Context, id int64, p itemrepo.UpdatePatch) error {
	if m.updateFn == nil {
		return nil
	}
	return m.updateFn(ctx, id, p)
}

func (m *repoMock) Delete(ctx context.Context, id int64) error {
	if m.deleteFn == nil {
		return nil
	}
	return m.deleteFn(ctx, id)
}

func (m *repoMock) List(ctx context.Context, f model.ItemFilter) ([]model.InventoryItem, error) {
	if m.listFn == nil {
		return nil, nil
	}
	return m.listFn(ctx, f)
}

func TestCreate_Validation(t *testing.T) {
	svc := itemsvc.New(&repoMock{})
	ctx := context.Background()

	_, err := svc.Create(ctx, itemsvc.CreateReq{Name: "", Category: "cam", TotalQty: 1})
	require.Equal(t, itemsvc.CodeBadInput, apperr.CodeOf(err))

	_, err = svc.Create(ctx, itemsvc.CreateReq{Name: "tripod", Category: "  ", TotalQty: 1})
	require.Equal(t, itemsvc.CodeBadInput, apperr.CodeOf(err))

	_, err = svc.Create(ctx, itemsvc.CreateReq{Name: "tripod", Category: "cam", TotalQty: 0})
	require.Equal(t, itemsvc.CodeBadInput, apperr.CodeOf(err))
}

func TestCreate_TrimsInput(t *testing.T) {
	m := &repoMock{
		createFn: func(ctx context.Context, name, category string, imageURL *string, totalQty int64) (int64, error) {
			require.Equal(t, "Tripod", name)
			require.Equal(t, "camera", category)
			return 11, nil
		},
	}
	svc := itemsvc.New(m)
	id, err := svc.Create(context.Background(), itemsvc.CreateReq{
		Name: "  Tripod ", Category: " camera ", TotalQty: 4,
	})
	require.NoError(t, err)
	require.Equal(t, int64(11), id)
}

func TestGet_NotFound(t *testing.T) {
	m := &repoMock{
		getFn: func(ctx context.Context, id int64) (*model.InventoryItem, error) {
			return nil, sql.ErrNoRows
		},
	}
	svc := itemsvc.New(m)
	_, err := svc.Get(context.Background(), 9)
	require.Equal(t, itemsvc.CodeNotFound, apperr.CodeOf(err))
	require.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

func TestUpdate_StockConflict(t *testing.T) {
	m := &repoMock{
		updateFn: func(ctx context.Context, id int64, p itemrepo.UpdatePatch) error {
			return itemrepo.ErrStockConflict
		},
	}
	svc := itemsvc.New(m)
	err := svc.Update(context.Background(), 3, itemrepo.UpdatePatch{Name: "n", Category: "c", TotalQty: 1})
	require.Equal(t, itemsvc.CodeStockInUse, apperr.CodeOf(err))
	require.Equal(t, apperr.KindConflict, apperr.KindOf(err))
}

func TestDelete_BlockedByActiveRentals(t *testing.T) {
	m := &repoMock{
		deleteFn: func(ctx context.Context, id int64) error { return itemrepo.ErrHasActiveRentals },
	}
	svc := itemsvc.New(m)
	err := svc.Delete(context.Background(), 3)
	require.Equal(t, itemsvc.CodeHasRentals, apperr.CodeOf(err))
	require.Equal(t, apperr.KindConflict, apperr.KindOf(err))
}

func TestList_NormalizesFilter(t *testing.T) {
	var got model.ItemFilter
	m := &repoMock{
		listFn: func(ctx context.Context, f model.ItemFilter) ([]model.InventoryItem, error) {
			got = f
			return nil, nil
		},
	}
	svc := itemsvc.New(m)

	_, err := svc.List(context.Background(), model.ItemFilter{
		Category: model.CategoryAll,
		Search:   "  mic ",
		SortBy:   "bogus",
	})
	require.NoError(t, err)
	require.Empty(t, got.Category)
	require.Equal(t, "mic", got.Search)
	require.Equal(t, model.SortByName, got.SortBy)

	_, err = svc.List(context.Background(), model.ItemFilter{Category: "camera", SortBy: model.SortByAvailable})
	require.NoError(t, err)
	require.Equal(t, "camera", got.Category)
	require.Equal(t, model.SortByAvailable, got.SortBy)
}
