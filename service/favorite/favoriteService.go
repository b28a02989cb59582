package favoritesvc

import (
	"context"
	"strings"

	"equiprental/model"
	"equiprental/util/apperr"
)

const CodeBadInput = "BAD_INPUT"

type Repo interface {
	ListByUser(ctx context.Context, userID int64) ([]model.FavoriteCategory, error)
	Insert(ctx context.Context, userID int64, categoryName string) error
	Delete(ctx context.Context, userID int64, categoryName string) (bool, error)
}

type Service interface {
	List(ctx context.Context, userID int64) ([]model.FavoriteCategory, error)
	// Toggle removes the category when pinned, otherwise pins it. At the bound
	// of two the oldest pin is evicted first, strict FIFO.
	Toggle(ctx context.Context, userID int64, categoryName string) ([]model.FavoriteCategory, error)
}

type service struct{ r Repo }

func New(r Repo) Service { return &service{r: r} }

func (s *service) List(ctx context.Context, userID int64) ([]model.FavoriteCategory, error) {
	return s.r.ListByUser(ctx, userID)
}

func (s *service) Toggle(ctx context.Context, userID int64, categoryName string) ([]model.FavoriteCategory, error) {
	categoryName = strings.TrimSpace(categoryName)
	if categoryName == "" {
		return nil, apperr.New(apperr.KindValidation, CodeBadInput, "category name is required")
	}

	current, err := s.r.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	for _, f := range current {
		if f.CategoryName == categoryName {
			if _, err := s.r.Delete(ctx, userID, categoryName); err != nil {
				return nil, err
			}
			return s.r.ListByUser(ctx, userID)
		}
	}

	// ListByUser returns oldest-first, so current[0] is the eviction victim.
	if len(current) >= model.MaxFavorites {
		if _, err := s.r.Delete(ctx, userID, current[0].CategoryName); err != nil {
			return nil, err
		}
	}
	if err := s.r.Insert(ctx, userID, categoryName); err != nil {
		return nil, err
	}
	return s.r.ListByUser(ctx, userID)
}
