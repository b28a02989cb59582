package itemsvc

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"equiprental/model"
	itemrepo "equiprental/repository/item"
	"equiprental/util/apperr"
)

const (
	CodeBadInput   = "BAD_INPUT"
	CodeNotFound   = "ITEM_NOT_FOUND"
	CodeStockInUse = "STOCK_IN_USE"
	CodeHasRentals = "HAS_ACTIVE_RENTALS"
)

type CreateReq struct {
	Name     string
	Category string
	ImageURL *string
	TotalQty int64
}

type Repo interface {
	Create(ctx context.Context, name, category string, imageURL *string, totalQty int64) (int64, error)
	Get(ctx context.Context, id int64) (*model.InventoryItem, error)
	Update(ctx context.Context, id int64, p itemrepo.UpdatePatch) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, f model.ItemFilter) ([]model.InventoryItem, error)
}

type Service interface {
	Create(ctx context.Context, req CreateReq) (int64, error)
	Get(ctx context.Context, id int64) (*model.InventoryItem, error)
	Update(ctx context.Context, id int64, p itemrepo.UpdatePatch) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, f model.ItemFilter) ([]model.InventoryItem, error)
}

type service struct{ r Repo }

func New(r Repo) Service { return &service{r: r} }

func (s *service) Create(ctx context.Context, req CreateReq) (int64, error) {
	if strings.TrimSpace(req.Name) == "" || strings.TrimSpace(req.Category) == "" || req.TotalQty < 1 {
		return 0, apperr.New(apperr.KindValidation, CodeBadInput, "name, category and a quantity of at least 1 are required")
	}
	return s.r.Create(ctx, strings.TrimSpace(req.Name), strings.TrimSpace(req.Category), req.ImageURL, req.TotalQty)
}

func (s *service) Get(ctx context.Context, id int64) (*model.InventoryItem, error) {
	it, err := s.r.Get(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.New(apperr.KindNotFound, CodeNotFound, "item not found")
	}
	return it, err
}

func (s *service) Update(ctx context.Context, id int64, p itemrepo.UpdatePatch) error {
	if strings.TrimSpace(p.Name) == "" || strings.TrimSpace(p.Category) == "" || p.TotalQty < 1 {
		return apperr.New(apperr.KindValidation, CodeBadInput, "name, category and a quantity of at least 1 are required")
	}
	err := s.r.Update(ctx, id, p)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return apperr.New(apperr.KindNotFound, CodeNotFound, "item not found")
	case errors.Is(err, itemrepo.ErrStockConflict):
		return apperr.New(apperr.KindConflict, CodeStockInUse, "total cannot drop below units currently rented or broken")
	}
	return err
}

func (s *service) Delete(ctx context.Context, id int64) error {
	err := s.r.Delete(ctx, id)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return apperr.New(apperr.KindNotFound, CodeNotFound, "item not found")
	case errors.Is(err, itemrepo.ErrHasActiveRentals):
		return apperr.New(apperr.KindConflict, CodeHasRentals, "item has active rentals")
	}
	return err
}

// List normalizes the filter: the "all" sentinel (or blank) disables category
// filtering, unknown sort keys fall back to name order.
func (s *service) List(ctx context.Context, f model.ItemFilter) ([]model.InventoryItem, error) {
	if f.Category == model.CategoryAll {
		f.Category = ""
	}
	switch f.SortBy {
	case model.SortByName, model.SortByRecent, model.SortByAvailable:
	default:
		f.SortBy = model.SortByName
	}
	f.Search = strings.TrimSpace(f.Search)
	return s.r.List(ctx, f)
}
