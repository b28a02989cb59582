package authsvc_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"equiprental/model"
	authsvc "equiprental/service/auth"
	"equiprental/util/apperr"
	"equiprental/util/hash"
	jwtutil "equiprental/util/jwt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"
)

type mockRepo struct {
	createFn     func(ctx context.Context, u *model.User) error
	byEmailFn    func(ctx context.Context, email string) (*model.User, error)
	byIDFn       func(ctx context.Context, id int64) (*model.User, error)
	listByRoleFn func(ctx context.Context, role model.Role) ([]model.User, error)
	updateRoleFn func(ctx context.Context, id int64, role model.Role) (bool, error)
}

func (m *mockRepo) Create(ctx context.Context, u *model.User) error {
	if m.createFn == nil {
		u.ID = 1
		return nil
	}
	return m.createFn(ctx, u)
}

func (m *mockRepo) ByEmail(ctx context.Context, email string) (*model.User, error) {
	if m.byEmailFn == nil {
		return nil, sql.ErrNoRows
	}
	return m.byEmailFn(ctx, email)
}

func (m *mockRepo) ByID(ctx context.Context, id int64) (*model.User, error) {
	if m.byIDFn == nil {
		return nil, sql.ErrNoRows
	}
	return m.byIDFn(ctx, id)
}

func (m *mockRepo) ListByRole(ctx context.Context, role model.Role) ([]model.User, error) {
	if m.listByRoleFn == nil {
		return nil, nil
	}
	return m.listByRoleFn(ctx, role)
}

func (m *mockRepo) UpdateRole(ctx context.Context, id int64, role model.Role) (bool, error) {
	if m.updateRoleFn == nil {
		return true, nil
	}
	return m.updateRoleFn(ctx, id, role)
}

func mustHash(t *testing.T, plain string) string {
	t.Helper()
	h, err := hash.HashPassword(plain)
	require.NoError(t, err)
	return h
}

func TestRegister_Success(t *testing.T) {
	m := &mockRepo{
		createFn: func(ctx context.Context, u *model.User) error {
			u.ID = 42
			return nil
		},
	}
	svc := authsvc.New(m, "test-secret")

	u, err := svc.Register(context.Background(), model.RegisterReq{
		FullName: "Ana Lim",
		Email:    "ANA@Example.COM",
		Password: "supersecret",
	})
	require.NoError(t, err)
	require.Equal(t, int64(42), u.ID)
	require.Equal(t, "ana@example.com", u.Email)
	require.Equal(t, model.RoleWaiting, u.Role)
	require.NotEmpty(t, u.PasswordHash)
	require.NotEqual(t, "supersecret", u.PasswordHash)
}

func TestRegister_BadInput(t *testing.T) {
	svc := authsvc.New(&mockRepo{}, "test-secret")
	_, err := svc.Register(context.Background(), model.RegisterReq{
		FullName: " ",
		Email:    "a@b.c",
		Password: "123",
	})
	require.Equal(t, authsvc.CodeBadInput, apperr.CodeOf(err))
}

func TestRegister_EmailTaken(t *testing.T) {
	m := &mockRepo{
		createFn: func(ctx context.Context, u *model.User) error {
			return &pgconn.PgError{Code: pgerrcode.UniqueViolation}
		},
	}
	svc := authsvc.New(m, "test-secret")
	_, err := svc.Register(context.Background(), model.RegisterReq{
		FullName: "Ana", Email: "taken@example.com", Password: "123456",
	})
	require.Equal(t, authsvc.CodeEmailTaken, apperr.CodeOf(err))
	require.Equal(t, apperr.KindConflict, apperr.KindOf(err))
}

func TestLogin_Success(t *testing.T) {
	pw := "supersecret"
	hashed := mustHash(t, pw)

	m := &mockRepo{
		byEmailFn: func(ctx context.Context, email string) (*model.User, error) {
			return &model.User{ID: 7, Email: "ana@example.com", PasswordHash: hashed, Role: model.RoleTeacher}, nil
		},
	}
	svc := authsvc.New(m, "test-secret")

	u, tok, err := svc.Login(context.Background(), model.LoginReq{Email: "ana@example.com", Password: pw})
	require.NoError(t, err)
	require.Equal(t, int64(7), u.ID)
	require.NotEmpty(t, tok)

	// The token carries the identity the middleware will read back.
	claims, err := jwtutil.ParseAuth("Bearer "+tok, "test-secret")
	require.NoError(t, err)
	require.Equal(t, float64(7), claims["sub"])
	require.Equal(t, string(model.RoleTeacher), claims["role"])
}

func TestLogin_UnknownEmail(t *testing.T) {
	svc := authsvc.New(&mockRepo{}, "test-secret")
	_, _, err := svc.Login(context.Background(), model.LoginReq{Email: "missing@example.com", Password: "x"})
	require.Equal(t, authsvc.CodeInvalidCreds, apperr.CodeOf(err))
	require.Equal(t, apperr.KindForbidden, apperr.KindOf(err))
}

func TestLogin_WrongPassword(t *testing.T) {
	hashed := mustHash(t, "right")
	m := &mockRepo{
		byEmailFn: func(ctx context.Context, email string) (*model.User, error) {
			return &model.User{ID: 7, PasswordHash: hashed, Role: model.RoleTeacher}, nil
		},
	}
	svc := authsvc.New(m, "test-secret")
	_, _, err := svc.Login(context.Background(), model.LoginReq{Email: "a@b.c", Password: "wrong"})
	require.Equal(t, authsvc.CodeInvalidCreds, apperr.CodeOf(err))
}

func TestLogin_WaitingBlocked(t *testing.T) {
	pw := "supersecret"
	hashed := mustHash(t, pw)
	m := &mockRepo{
		byEmailFn: func(ctx context.Context, email string) (*model.User, error) {
			return &model.User{ID: 3, PasswordHash: hashed, Role: model.RoleWaiting}, nil
		},
	}
	svc := authsvc.New(m, "test-secret")
	_, _, err := svc.Login(context.Background(), model.LoginReq{Email: "a@b.c", Password: pw})
	require.Equal(t, authsvc.CodePending, apperr.CodeOf(err))
	require.Equal(t, apperr.KindForbidden, apperr.KindOf(err))
}

func TestLogin_RepoErrorPassesThrough(t *testing.T) {
	boom := errors.New("db down")
	m := &mockRepo{
		byEmailFn: func(ctx context.Context, email string) (*model.User, error) { return nil, boom },
	}
	svc := authsvc.New(m, "test-secret")
	_, _, err := svc.Login(context.Background(), model.LoginReq{Email: "a@b.c", Password: "x"})
	require.ErrorIs(t, err, boom)
}
