package services

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/keralakitchen/kitchen-backend/internal/apperr"
	"github.com/keralakitchen/kitchen-backend/internal/config"
	"github.com/keralakitchen/kitchen-backend/internal/dto"
	"github.com/keralakitchen/kitchen-backend/internal/models"
	"github.com/keralakitchen/kitchen-backend/internal/rules"
	"github.com/keralakitchen/kitchen-backend/internal/store"
	"github.com/keralakitchen/kitchen-backend/internal/validation"
)

var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidToken       = errors.New("invalid or expired refresh token")
)

type AuthService struct {
	db     *gorm.DB
	cfg    *config.Config
	users  *store.Repository[models.User]
	tokens *store.Repository[models.RefreshToken]
	now    func() time.Time
}

func NewAuthService(db *gorm.DB, cfg *config.Config) *AuthService {
	return &AuthService{
		db:     db,
		cfg:    cfg,
		users:  store.New[models.User](db, "user"),
		tokens: store.New[models.RefreshToken](db, "refresh token"),
		now:    time.Now,
	}
}

func (s *AuthService) Register(req *dto.RegisterRequest) (*dto.AuthResponse, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}
	email := normalizeEmail(req.Email)

	if _, err := s.users.First(map[string]any{"email": email}); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, apperr.ErrNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := models.User{
		Name:                  strings.TrimSpace(req.Name),
		Phone:                 strings.TrimSpace(req.Phone),
		Email:                 email,
		Password:              string(hash),
		Role:                  models.RoleUser,
		Address:               strings.TrimSpace(req.Address),
		Status:                models.RegistrationPending,
		PlanType:              models.PlanMonthly,
		PaymentStatus:         models.PaymentUnpaid,
		TimePreference:        req.TimePreference,
		EstimatedDeliveryTime: rules.DefaultDeliveryTime(req.TimePreference),
		JoinedDate:            s.now().UTC(),
	}
	if req.Location != nil {
		user.Location = models.Location{Lat: req.Location.Lat, Lng: req.Location.Lng}
	}

	if err := s.users.Insert(&user); err != nil {
		return nil, err
	}
	slog.Info("user registered", "user_id", user.ID.String(), "time_preference", user.TimePreference)

	return s.generateTokenPair(&user)
}

// Login accepts any registration status; pending and rejected users still
// see their dashboard state.
func (s *AuthService) Login(req *dto.LoginRequest) (*dto.AuthResponse, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}
	user, err := s.users.First(map[string]any{"email": normalizeEmail(req.Email)})
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return s.generateTokenPair(user)
}

// Refresh rotates a refresh token: the presented one is revoked and a new pair issued.
func (s *AuthService) Refresh(req *dto.RefreshRequest) (*dto.AuthResponse, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}

	stored, err := s.tokens.First(map[string]any{"token_hash": hashToken(req.RefreshToken), "revoked": false})
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, err
	}

	if _, err := s.tokens.Update(stored.ID, map[string]any{"revoked": true}); err != nil {
		return nil, err
	}
	if s.now().After(stored.ExpiresAt) {
		return nil, ErrInvalidToken
	}

	user, err := s.users.ByID(stored.UserID)
	if err != nil {
		return nil, err
	}

	return s.generateTokenPair(user)
}

func (s *AuthService) Logout(req *dto.LogoutRequest) error {
	if err := validation.Struct(req); err != nil {
		return err
	}
	return s.db.Model(&models.RefreshToken{}).
		Where("token_hash = ?", hashToken(req.RefreshToken)).
		Update("revoked", true).Error
}

// SeedAdmin creates the kitchen admin account, or promotes an existing
// account with that email. It does nothing when email is empty.
func (s *AuthService) SeedAdmin(email, password string) error {
	email = normalizeEmail(email)
	if email == "" {
		return nil
	}

	existing, err := s.users.First(map[string]any{"email": email})
	switch {
	case err == nil:
		if existing.IsAdmin() {
			return nil
		}
		_, err = s.users.Update(existing.ID, map[string]any{"role": models.RoleAdmin})
		if err == nil {
			slog.Info("existing user promoted to admin", "user_id", existing.ID.String())
		}
		return err
	case !errors.Is(err, apperr.ErrNotFound):
		return err
	}

	if len(password) < 6 {
		return apperr.NewValidationError("ADMIN_PASSWORD", "must be at least 6 characters")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	admin := models.User{
		Name:                  "Kitchen Admin",
		Email:                 email,
		Password:              string(hash),
		Role:                  models.RoleAdmin,
		Status:                models.RegistrationApproved,
		PlanType:              models.PlanMonthly,
		PaymentStatus:         models.PaymentPaid,
		TimePreference:        models.PreferAfternoon,
		EstimatedDeliveryTime: rules.AfternoonDeliveryTime,
		JoinedDate:            s.now().UTC(),
	}
	if err := s.users.Insert(&admin); err != nil {
		return err
	}
	slog.Info("admin account seeded", "user_id", admin.ID.String())
	return nil
}

func (s *AuthService) generateTokenPair(user *models.User) (*dto.AuthResponse, error) {
	accessToken, err := s.generateAccessToken(user)
	if err != nil {
		return nil, err
	}

	refreshToken, err := s.generateRefreshToken(user)
	if err != nil {
		return nil, err
	}

	return &dto.AuthResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User: dto.UserResponse{
			ID:     user.ID,
			Name:   user.Name,
			Email:  user.Email,
			Role:   user.Role,
			Status: user.Status,
		},
	}, nil
}

func (s *AuthService) generateAccessToken(user *models.User) (string, error) {
	now := s.now()
	claims := jwt.MapClaims{
		"sub":   user.ID.String(),
		"email": user.Email,
		"role":  string(user.Role),
		"iat":   now.Unix(),
		"exp":   now.Add(s.cfg.JWTAccessExpiry).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWTSecret))
}

func (s *AuthService) generateRefreshToken(user *models.User) (string, error) {
	rawBytes := make([]byte, 32)
	if _, err := rand.Read(rawBytes); err != nil {
		return "", fmt.Errorf("failed to generate random bytes: %w", err)
	}

	rawToken := base64.URLEncoding.EncodeToString(rawBytes)

	record := models.RefreshToken{
		UserID:    user.ID,
		TokenHash: hashToken(rawToken),
		ExpiresAt: s.now().Add(s.cfg.JWTRefreshExpiry),
	}
	if err := s.tokens.Insert(&record); err != nil {
		return "", fmt.Errorf("failed to store refresh token: %w", err)
	}

	return rawToken, nil
}

func hashToken(token string) string {
	h := sha256.Sum256([]byte(token))
	return fmt.Sprintf("%x", h)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
