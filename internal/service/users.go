package service

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/brewcrew/cafe-backend/internal/hash"
	"github.com/brewcrew/cafe-backend/internal/logging"
	"github.com/brewcrew/cafe-backend/internal/models"
	"github.com/brewcrew/cafe-backend/internal/repo"
	"github.com/brewcrew/cafe-backend/internal/tokens"
	"github.com/brewcrew/cafe-backend/internal/transport"
)

type UserService struct {
	Repo      *repo.GormRepo
	JWTSecret []byte
}

type AuthResult struct {
	User   *models.User
	Token  string
	Claims *tokens.AccessClaims
}

func (s *UserService) ListUsers(ctx context.Context) ([]models.User, error) {
	return s.Repo.GetUsers(ctx)
}

func (s *UserService) Signup(ctx context.Context, req transport.SignupRequest) (*AuthResult, error) {
	l := logging.FromContext(ctx).With("svc", "users.signup")

	req.Email = strings.TrimSpace(req.Email)
	if req.Email == "" || req.Password == "" {
		return nil, ErrValidation
	}

	if _, err := s.Repo.GetUserByEmail(ctx, req.Email); err == nil {
		return nil, ErrDuplicateEmail
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	pwHash, err := hash.HashPassword(req.Password)
	if err != nil {
		l.Error("signup_error", "reason", "cannot hash the password", "error", err)
		return nil, err
	}

	user := models.User{
		Email:        req.Email,
		PasswordHash: pwHash,
		Name:         req.Name,
		Birthday:     req.Birthday,
	}
	if err := s.Repo.CreateUser(ctx, &user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateEmail
		}
		return nil, err
	}

	return s.issue(&user)
}

func (s *UserService) Login(ctx context.Context, req transport.LoginRequest) (*AuthResult, error) {
	user, err := s.Repo.GetUserByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEmailNotFound
		}
		return nil, err
	}

	if !hash.CheckPassword(user.PasswordHash, req.Password) {
		return nil, ErrWrongPassword
	}

	return s.issue(user)
}

// UpdateProfile is self-service only; the id comes from the verified token.
// A fresh token is returned so changed claims take effect immediately.
func (s *UserService) UpdateProfile(ctx context.Context, userID uint, req transport.PatchProfileRequest) (*AuthResult, error) {
	user, err := s.Repo.GetUser(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if req.Email != nil && !strings.EqualFold(*req.Email, user.Email) {
		if other, err := s.Repo.GetUserByEmail(ctx, *req.Email); err == nil && other.ID != user.ID {
			return nil, ErrDuplicateEmail
		} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		user.Email = strings.TrimSpace(*req.Email)
	}
	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.Birthday != nil {
		user.Birthday = *req.Birthday
	}
	if req.Password != nil {
		pwHash, err := hash.HashPassword(*req.Password)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = pwHash
	}

	if err := s.Repo.SaveUser(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateEmail
		}
		return nil, err
	}

	return s.issue(user)
}

func (s *UserService) DeleteProfile(ctx context.Context, userID uint) (*models.User, error) {
	user, err := s.Repo.GetUser(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	if err := s.Repo.DeleteUser(ctx, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func (s *UserService) issue(user *models.User) (*AuthResult, error) {
	token, claims, err := tokens.SignAccessToken(user, s.JWTSecret)
	if err != nil {
		return nil, err
	}
	return &AuthResult{User: user, Token: token, Claims: claims}, nil
}
