// Package approvalsvc handles the signup queue: accounts land in the waiting
// role and a manager promotes them to teacher or manager.
package approvalsvc

import (
	"context"

	"equiprental/model"
	userrepo "equiprental/repository/user"
	"equiprental/util/apperr"
)

const (
	CodeBadRole  = "BAD_ROLE"
	CodeNotFound = "USER_NOT_FOUND"
)

type Service interface {
	ListWaiting(ctx context.Context) ([]model.User, error)
	Approve(ctx context.Context, userID int64, role model.Role) error
}

type service struct{ ur userrepo.Repo }

func New(ur userrepo.Repo) Service { return &service{ur: ur} }

func (s *service) ListWaiting(ctx context.Context) ([]model.User, error) {
	return s.ur.ListByRole(ctx, model.RoleWaiting)
}

func (s *service) Approve(ctx context.Context, userID int64, role model.Role) error {
	if role != model.RoleTeacher && role != model.RoleManager {
		return apperr.New(apperr.KindValidation, CodeBadRole, "approval role must be teacher or manager")
	}
	ok, err := s.ur.UpdateRole(ctx, userID, role)
	if err != nil {
		return err
	}
	if !ok {
		return apperr.New(apperr.KindNotFound, CodeNotFound, "user not found")
	}
	return nil
}
