package authsvc

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"

	"equiprental/model"
	userrepo "equiprental/repository/user"
	"equiprental/util/apperr"
	"equiprental/util/hash"
	jwtutil "equiprental/util/jwt"
)

const (
	CodeEmailTaken   = "EMAIL_TAKEN"
	CodeBadInput     = "BAD_INPUT"
	CodeInvalidCreds = "INVALID_CREDENTIALS"
	CodePending      = "PENDING_APPROVAL"
)

const tokenTTLHours = 24

type Service interface {
	// Register creates a profile in the waiting role. The account is unusable
	// until a manager approves it.
	Register(ctx context.Context, req model.RegisterReq) (*model.User, error)
	// Login verifies credentials and issues a token. Waiting accounts are
	// refused with a pending-approval error.
	Login(ctx context.Context, req model.LoginReq) (*model.User, string, error)
}

type service struct {
	ur     userrepo.Repo
	secret string
}

func New(ur userrepo.Repo, secret string) Service { return &service{ur: ur, secret: secret} }

func (s *service) Register(ctx context.Context, req model.RegisterReq) (*model.User, error) {
	fullName := strings.TrimSpace(req.FullName)
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if fullName == "" || email == "" || len(req.Password) < 6 {
		return nil, apperr.New(apperr.KindValidation, CodeBadInput, "name, email and a password of 6+ characters are required")
	}

	hashed, err := hash.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	u := &model.User{
		FullName:     fullName,
		Email:        email,
		PasswordHash: hashed,
		Role:         model.RoleWaiting,
	}
	if err := s.ur.Create(ctx, u); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return nil, apperr.New(apperr.KindConflict, CodeEmailTaken, "email already registered")
		}
		return nil, err
	}
	return u, nil
}

func (s *service) Login(ctx context.Context, req model.LoginReq) (*model.User, string, error) {
	email := strings.TrimSpace(req.Email)
	if email == "" || req.Password == "" {
		return nil, "", apperr.New(apperr.KindValidation, CodeBadInput, "email and password are required")
	}

	u, err := s.ur.ByEmail(ctx, email)
	if errors.Is(err, sql.ErrNoRows) || u == nil {
		return nil, "", apperr.New(apperr.KindForbidden, CodeInvalidCreds, "invalid email or password")
	}
	if err != nil {
		return nil, "", err
	}
	if !hash.Check(u.PasswordHash, req.Password) {
		return nil, "", apperr.New(apperr.KindForbidden, CodeInvalidCreds, "invalid email or password")
	}
	if u.Role == model.RoleWaiting {
		return nil, "", apperr.New(apperr.KindForbidden, CodePending, "account awaiting manager approval")
	}

	token, err := jwtutil.Issue(s.secret, u.ID, string(u.Role), tokenTTLHours)
	if err != nil {
		return nil, "", err
	}
	return u, token, nil
}
