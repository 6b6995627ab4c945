package service

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kculture-backend/internal/domains/user"
	"kculture-backend/pkg/jwt"
)

type fakeRepo struct {
	users  map[int64]*user.User
	nextID int64
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{users: map[int64]*user.User{}}
}

func (f *fakeRepo) GetByID(_ context.Context, id int64) (*user.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, nil
	}
	return u, nil
}

func (f *fakeRepo) GetByEmail(_ context.Context, email string) (*user.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (f *fakeRepo) Create(_ context.Context, email, passwordHash, fullName string) (*user.User, error) {
	if existing, _ := f.GetByEmail(context.Background(), email); existing != nil {
		return nil, &pgconn.PgError{Code: "23505"}
	}
	f.nextID++
	u := &user.User{
		ID:           f.nextID,
		Email:        email,
		PasswordHash: passwordHash,
		FullName:     fullName,
		Role:         user.RoleUser,
		IsActive:     true,
	}
	f.users[u.ID] = u
	return u, nil
}

func (f *fakeRepo) UpdateRole(_ context.Context, id int64, role user.Role) (*user.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, nil
	}
	u.Role = role
	return u, nil
}

func (f *fakeRepo) SetActive(_ context.Context, id int64, active bool) (*user.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, nil
	}
	u.IsActive = active
	return u, nil
}

func (f *fakeRepo) TouchLastLogin(_ context.Context, id int64) error {
	now := time.Now()
	f.users[id].LastLogin = &now
	return nil
}

func newAuthService(repo Repository) *AuthService {
	manager := jwt.NewManager("test-secret", time.Hour, 24*time.Hour)
	return NewAuthService(repo, manager, time.Hour)
}

func TestRegister(t *testing.T) {
	t.Run("email case is preserved as submitted", func(t *testing.T) {
		repo := newFakeRepo()
		svc := newAuthService(repo)

		account, err := svc.Register(context.Background(), &user.RegisterRequest{
			Email:    "Fan.Club@Example.com",
			Password: "secretpw1",
			FullName: "Kim Jiwon",
		})
		require.NoError(t, err)
		assert.Equal(t, "Fan.Club@Example.com", account.Email)
		assert.Equal(t, user.RoleUser, account.Role)
		assert.True(t, account.IsActive)
		assert.False(t, account.IsVerified)
		assert.NotEqual(t, "secretpw1", account.PasswordHash)
	})

	t.Run("duplicate email maps to taken", func(t *testing.T) {
		repo := newFakeRepo()
		svc := newAuthService(repo)

		_, err := svc.Register(context.Background(), &user.RegisterRequest{
			Email: "fan@example.com", Password: "secretpw1", FullName: "Kim Jiwon",
		})
		require.NoError(t, err)

		_, err = svc.Register(context.Background(), &user.RegisterRequest{
			Email: "fan@example.com", Password: "secretpw1", FullName: "Other Fan",
		})
		assert.ErrorIs(t, err, user.ErrEmailTaken)
	})

	t.Run("weak password rejected before persistence", func(t *testing.T) {
		repo := newFakeRepo()
		svc := newAuthService(repo)

		_, err := svc.Register(context.Background(), &user.RegisterRequest{
			Email: "fan@example.com", Password: "short", FullName: "Kim Jiwon",
		})
		assert.Error(t, err)
		assert.Empty(t, repo.users)
	})
}

func TestLogin(t *testing.T) {
	repo := newFakeRepo()
	svc := newAuthService(repo)

	account, err := svc.Register(context.Background(), &user.RegisterRequest{
		Email: "fan@example.com", Password: "secretpw1", FullName: "Kim Jiwon",
	})
	require.NoError(t, err)

	t.Run("valid credentials issue tokens and stamp last login", func(t *testing.T) {
		tokens, err := svc.Login(context.Background(), &user.LoginRequest{
			Email: "fan@example.com", Password: "secretpw1",
		})
		require.NoError(t, err)
		assert.NotEmpty(t, tokens.AccessToken)
		assert.NotEmpty(t, tokens.RefreshToken)
		assert.NotNil(t, repo.users[account.ID].LastLogin)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := svc.Login(context.Background(), &user.LoginRequest{
			Email: "fan@example.com", Password: "wrongpass1",
		})
		assert.ErrorIs(t, err, user.ErrInvalidCredentials)
	})

	t.Run("unknown email", func(t *testing.T) {
		_, err := svc.Login(context.Background(), &user.LoginRequest{
			Email: "ghost@example.com", Password: "secretpw1",
		})
		assert.ErrorIs(t, err, user.ErrInvalidCredentials)
	})

	t.Run("deactivated account is rejected with the right password", func(t *testing.T) {
		_, err := svc.Deactivate(context.Background(), account.ID)
		require.NoError(t, err)

		_, err = svc.Login(context.Background(), &user.LoginRequest{
			Email: "fan@example.com", Password: "secretpw1",
		})
		assert.ErrorIs(t, err, user.ErrAccountInactive)
	})
}

func TestRefresh(t *testing.T) {
	repo := newFakeRepo()
	svc := newAuthService(repo)

	_, err := svc.Register(context.Background(), &user.RegisterRequest{
		Email: "fan@example.com", Password: "secretpw1", FullName: "Kim Jiwon",
	})
	require.NoError(t, err)

	tokens, err := svc.Login(context.Background(), &user.LoginRequest{
		Email: "fan@example.com", Password: "secretpw1",
	})
	require.NoError(t, err)

	t.Run("refresh token yields a new pair", func(t *testing.T) {
		refreshed, err := svc.Refresh(context.Background(), &user.RefreshRequest{
			RefreshToken: tokens.RefreshToken,
		})
		require.NoError(t, err)
		assert.NotEmpty(t, refreshed.AccessToken)
	})

	t.Run("access token is not accepted as refresh", func(t *testing.T) {
		_, err := svc.Refresh(context.Background(), &user.RefreshRequest{
			RefreshToken: tokens.AccessToken,
		})
		assert.ErrorIs(t, err, user.ErrInvalidCredentials)
	})
}

func TestRoleAdministration(t *testing.T) {
	repo := newFakeRepo()
	svc := newAuthService(repo)

	admin, err := svc.Register(context.Background(), &user.RegisterRequest{
		Email: "admin@example.com", Password: "secretpw1", FullName: "Site Admin",
	})
	require.NoError(t, err)
	_, err = svc.Promote(context.Background(), admin.ID)
	require.NoError(t, err)

	member, err := svc.Register(context.Background(), &user.RegisterRequest{
		Email: "fan@example.com", Password: "secretpw1", FullName: "Kim Jiwon",
	})
	require.NoError(t, err)

	t.Run("promote grants admin", func(t *testing.T) {
		promoted, err := svc.Promote(context.Background(), member.ID)
		require.NoError(t, err)
		assert.Equal(t, user.RoleAdmin, promoted.Role)
	})

	t.Run("promoting an admin again is an error", func(t *testing.T) {
		_, err := svc.Promote(context.Background(), member.ID)
		assert.ErrorIs(t, err, user.ErrAlreadyAdmin)
	})

	t.Run("self-demotion is rejected", func(t *testing.T) {
		_, err := svc.Demote(context.Background(), admin.ID, admin.ID)
		assert.ErrorIs(t, err, user.ErrSelfDemotion)
	})

	t.Run("demoting another admin works", func(t *testing.T) {
		demoted, err := svc.Demote(context.Background(), admin.ID, member.ID)
		require.NoError(t, err)
		assert.Equal(t, user.RoleUser, demoted.Role)
	})

	t.Run("demoting a regular user is an error", func(t *testing.T) {
		_, err := svc.Demote(context.Background(), admin.ID, member.ID)
		assert.ErrorIs(t, err, user.ErrNotAdmin)
	})
}
