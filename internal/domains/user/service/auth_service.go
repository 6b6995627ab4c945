package service

import (
	"context"
	"time"

	"golang.org/x/crypto/bcrypt"

	"kculture-backend/internal/domains/user"
	"kculture-backend/internal/shared/query"
	"kculture-backend/pkg/jwt"
)

// bcryptCost trades hash time against brute-force resistance; 12 keeps a
// login under ~300ms on current hardware.
const bcryptCost = 12

// Repository is the persistence contract the service depends on.
type Repository interface {
	GetByID(ctx context.Context, id int64) (*user.User, error)
	GetByEmail(ctx context.Context, email string) (*user.User, error)
	Create(ctx context.Context, email, passwordHash, fullName string) (*user.User, error)
	UpdateRole(ctx context.Context, id int64, role user.Role) (*user.User, error)
	SetActive(ctx context.Context, id int64, active bool) (*user.User, error)
	TouchLastLogin(ctx context.Context, id int64) error
}

// AuthService owns registration, login and role administration.
type AuthService struct {
	repo         Repository
	jwtManager   *jwt.Manager
	accessExpiry time.Duration
}

func NewAuthService(repo Repository, jwtManager *jwt.Manager, accessExpiry time.Duration) *AuthService {
	return &AuthService{repo: repo, jwtManager: jwtManager, accessExpiry: accessExpiry}
}

// Register creates an account. The email is persisted exactly as submitted;
// duplicates are detected by the unique constraint, not pre-checked.
func (s *AuthService) Register(ctx context.Context, req *user.RegisterRequest) (*user.User, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
	if err != nil {
		return nil, err
	}

	created, err := s.repo.Create(ctx, req.Email, string(hash), req.FullName)
	if err != nil {
		if query.IsUniqueViolation(err) {
			return nil, user.ErrEmailTaken
		}
		return nil, err
	}
	return created, nil
}

// Login verifies credentials and issues an access/refresh token pair.
// Deactivated accounts are rejected even with the right password.
func (s *AuthService) Login(ctx context.Context, req *user.LoginRequest) (*user.TokenResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	account, err := s.repo.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, user.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(req.Password)); err != nil {
		return nil, user.ErrInvalidCredentials
	}

	if !account.IsActive {
		return nil, user.ErrAccountInactive
	}

	if err := s.repo.TouchLastLogin(ctx, account.ID); err != nil {
		return nil, err
	}

	return s.issueTokens(account)
}

// Refresh exchanges a valid refresh token for a new token pair.
func (s *AuthService) Refresh(ctx context.Context, req *user.RefreshRequest) (*user.TokenResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	claims, err := s.jwtManager.ValidateRefreshToken(req.RefreshToken)
	if err != nil {
		return nil, user.ErrInvalidCredentials
	}

	account, err := s.repo.GetByID(ctx, claims.UserID)
	if err != nil {
		return nil, err
	}
	if account == nil || !account.IsActive {
		return nil, user.ErrInvalidCredentials
	}

	return s.issueTokens(account)
}

// Me returns the authenticated user's profile.
func (s *AuthService) Me(ctx context.Context, id int64) (*user.User, error) {
	account, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, user.ErrUserNotFound
	}
	return account, nil
}

// Promote grants the admin role.
func (s *AuthService) Promote(ctx context.Context, targetID int64) (*user.User, error) {
	target, err := s.repo.GetByID(ctx, targetID)
	if err != nil {
		return nil, err
	}
	if target == nil {
		return nil, user.ErrUserNotFound
	}
	if target.Role == user.RoleAdmin {
		return nil, user.ErrAlreadyAdmin
	}

	return s.repo.UpdateRole(ctx, targetID, user.RoleAdmin)
}

// Demote removes the admin role. Admins cannot demote themselves so the
// system can never lose its last admin by accident.
func (s *AuthService) Demote(ctx context.Context, actorID, targetID int64) (*user.User, error) {
	if actorID == targetID {
		return nil, user.ErrSelfDemotion
	}

	target, err := s.repo.GetByID(ctx, targetID)
	if err != nil {
		return nil, err
	}
	if target == nil {
		return nil, user.ErrUserNotFound
	}
	if target.Role != user.RoleAdmin {
		return nil, user.ErrNotAdmin
	}

	return s.repo.UpdateRole(ctx, targetID, user.RoleUser)
}

// Deactivate disables an account; its tokens stop working at refresh time.
func (s *AuthService) Deactivate(ctx context.Context, targetID int64) (*user.User, error) {
	target, err := s.repo.SetActive(ctx, targetID, false)
	if err != nil {
		return nil, err
	}
	if target == nil {
		return nil, user.ErrUserNotFound
	}
	return target, nil
}

func (s *AuthService) issueTokens(account *user.User) (*user.TokenResponse, error) {
	access, err := s.jwtManager.GenerateAccessToken(account.ID, account.Email, account.Role.String())
	if err != nil {
		return nil, err
	}
	refresh, err := s.jwtManager.GenerateRefreshToken(account.ID)
	if err != nil {
		return nil, err
	}

	return &user.TokenResponse{
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresAt:    time.Now().Add(s.accessExpiry),
		User:         account,
	}, nil
}
