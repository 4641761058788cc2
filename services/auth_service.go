package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"bayka/models"
	"bayka/repositories"
	"bayka/utils"
)

type userStore interface {
	Create(ctx context.Context, user *models.User) error
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	UpdatePassword(ctx context.Context, id int, hashedPassword string) error
}

type AuthService struct {
	userRepo  userStore
	jwtSecret []byte
	jwtExpiry time.Duration
}

func NewAuthService(userRepo userStore, jwtSecret []byte, jwtExpiry time.Duration) *AuthService {
	return &AuthService{userRepo: userRepo, jwtSecret: jwtSecret, jwtExpiry: jwtExpiry}
}

func (s *AuthService) Login(ctx context.Context, req models.LoginRequest) (*models.LoginResponse, error) {
	user, err := s.userRepo.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	valid, err := utils.VerifyPassword(user.Password, req.Password)
	if err != nil || !valid {
		return nil, ErrInvalidCredentials
	}
	if utils.NeedsRehash(user.Password) {
		s.rehash(ctx, user, req.Password)
	}

	token, err := utils.GenerateToken(s.jwtSecret, s.jwtExpiry, user.ID, user.Email, user.Role)
	if err != nil {
		return nil, err
	}

	return &models.LoginResponse{
		Token:     token,
		ExpiresIn: int64(s.jwtExpiry.Seconds()),
		User:      *user,
	}, nil
}

// EnsureAdmin creates the admin account, or resets its password when the
// configured one no longer matches.
func (s *AuthService) EnsureAdmin(ctx context.Context, email, password string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		log.Println("ADMIN_EMAIL/ADMIN_PASSWORD not set, skipping admin bootstrap")
		return nil
	}
	if err := utils.ValidatePassword(password); err != nil {
		return fmt.Errorf("ADMIN_PASSWORD: %w", err)
	}

	existing, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil && !errors.Is(err, repositories.ErrNotFound) {
		return err
	}

	if existing != nil {
		if !existing.IsAdmin() {
			return fmt.Errorf("%w: %s is registered with role %q", ErrDuplicate, email, existing.Role)
		}
		if ok, _ := utils.VerifyPassword(existing.Password, password); ok {
			return nil
		}
		hashed, err := utils.HashPassword(password)
		if err != nil {
			return err
		}
		log.Printf("Admin password for %s updated from environment", email)
		return s.userRepo.UpdatePassword(ctx, existing.ID, hashed)
	}

	hashed, err := utils.HashPassword(password)
	if err != nil {
		return err
	}
	if err := s.userRepo.Create(ctx, &models.User{Email: email, Password: hashed, Role: models.RoleAdmin}); err != nil {
		return err
	}
	log.Printf("Admin account %s created", email)
	return nil
}

func (s *AuthService) rehash(ctx context.Context, user *models.User, password string) {
	hashed, err := utils.HashPassword(password)
	if err != nil {
		log.Printf("Rehash for user %d failed: %v", user.ID, err)
		return
	}
	if err := s.userRepo.UpdatePassword(ctx, user.ID, hashed); err != nil {
		log.Printf("Rehash for user %d failed: %v", user.ID, err)
		return
	}
	user.Password = hashed
}
