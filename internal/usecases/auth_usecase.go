package usecases

import (
	"context"
	"errors"
	"time"

	"site-weaver.backend/internal/domain/entities"
	domainerrors "site-weaver.backend/internal/domain/errors"
	"site-weaver.backend/internal/domain/repositories"
	"site-weaver.backend/pkg/crypto"
	"site-weaver.backend/pkg/jwt"
	"site-weaver.backend/pkg/utils"
)

// AuthUsecase handles dashboard user registration and login. This is the
// session path for humans; external integrations authenticate with API keys.
type AuthUsecase struct {
	userRepo   repositories.UserRepository
	jwtService *jwt.JWTService
}

// NewAuthUsecase creates a new auth usecase
func NewAuthUsecase(userRepo repositories.UserRepository, jwtService *jwt.JWTService) *AuthUsecase {
	return &AuthUsecase{
		userRepo:   userRepo,
		jwtService: jwtService,
	}
}

// AuthResponse is returned on successful register or login.
type AuthResponse struct {
	User   *entities.User `json:"user"`
	Tokens *jwt.TokenPair `json:"tokens"`
}

// Register creates a dashboard user and issues a token pair.
func (u *AuthUsecase) Register(ctx context.Context, input *entities.RegisterInput) (*AuthResponse, error) {
	if _, err := u.userRepo.GetByEmail(ctx, input.Email); err == nil {
		return nil, domainerrors.Conflict("email is already registered")
	} else if !errors.Is(err, domainerrors.ErrNotFound) {
		return nil, domainerrors.InternalError(err)
	}

	hash, err := crypto.HashPassword(input.Password)
	if err != nil {
		return nil, domainerrors.InternalError(err)
	}

	now := time.Now()
	user := &entities.User{
		ID:           utils.GenerateUUIDv7(),
		Email:        input.Email,
		Name:         input.Name,
		PasswordHash: hash,
		Role:         entities.UserRoleUser,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := u.userRepo.Create(ctx, user); err != nil {
		return nil, domainerrors.InternalError(err)
	}

	tokens, err := u.jwtService.GenerateTokenPair(user.ID, user.Email, string(user.Role))
	if err != nil {
		return nil, domainerrors.InternalError(err)
	}

	return &AuthResponse{User: user, Tokens: tokens}, nil
}

// Login verifies credentials and issues a token pair. Wrong email and wrong
// password produce the same error.
func (u *AuthUsecase) Login(ctx context.Context, input *entities.LoginInput) (*AuthResponse, error) {
	user, err := u.userRepo.GetByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.Unauthorized("invalid email or password")
		}
		return nil, domainerrors.InternalError(err)
	}

	if !crypto.CheckPassword(input.Password, user.PasswordHash) {
		return nil, domainerrors.Unauthorized("invalid email or password")
	}

	tokens, err := u.jwtService.GenerateTokenPair(user.ID, user.Email, string(user.Role))
	if err != nil {
		return nil, domainerrors.InternalError(err)
	}

	return &AuthResponse{User: user, Tokens: tokens}, nil
}

// RefreshToken validates a refresh token and issues a fresh pair.
func (u *AuthUsecase) RefreshToken(ctx context.Context, refreshToken string) (*jwt.TokenPair, error) {
	claims, err := u.jwtService.ValidateToken(refreshToken)
	if err != nil {
		return nil, domainerrors.Unauthorized("invalid or expired refresh token")
	}

	user, err := u.userRepo.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.Unauthorized("invalid or expired refresh token")
		}
		return nil, domainerrors.InternalError(err)
	}

	tokens, err := u.jwtService.GenerateTokenPair(user.ID, user.Email, string(user.Role))
	if err != nil {
		return nil, domainerrors.InternalError(err)
	}
	return tokens, nil
}
