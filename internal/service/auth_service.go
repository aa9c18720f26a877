package service

import (
	"context"
	"errors"
	"strings"

	"trading_platform/internal/domain"
	"trading_platform/internal/repository"

	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrAccountBlocked     = errors.New("account is blocked")
)

// AuthService registers and authenticates users. The referral back-link is
// established at registration and never changes afterwards.
type AuthService struct {
	userRepo *repository.UserRepository
}

func NewAuthService(db *pgxpool.Pool) *AuthService {
	return &AuthService{userRepo: repository.NewUserRepository(db)}
}

// Register creates a user, hashing the password and resolving an optional
// referral code into an immutable referrer link.
func (s *AuthService) Register(ctx context.Context, email, username, password, referralCode string) (*domain.User, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || len(password) < 8 {
		return nil, "", ErrInvalidCredentials
	}

	existing, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, "", err
	}
	if existing != nil {
		return nil, "", ErrEmailTaken
	}

	var referrerID *int64
	if referralCode != "" {
		referrer, err := s.userRepo.GetByReferralCode(ctx, referralCode)
		if err != nil {
			return nil, "", err
		}
		// an unknown code is ignored rather than failing registration
		if referrer != nil {
			referrerID = &referrer.ID
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", err
	}

	user := &domain.User{
		Email:        email,
		Username:     username,
		PasswordHash: string(hash),
		ReferrerID:   referrerID,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, "", err
	}

	token, err := GenerateJWT(user.ID)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// Login verifies credentials and issues a JWT. Blocked accounts cannot log in.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.User, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, "", err
	}
	if user == nil {
		return nil, "", ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, "", ErrInvalidCredentials
	}
	if user.IsBlocked {
		return nil, "", ErrAccountBlocked
	}

	token, err := GenerateJWT(user.ID)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}
