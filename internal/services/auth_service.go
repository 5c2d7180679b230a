package services

import (
	"errors"
	"fmt"
	"time"

	"artisanhub/internal/apperr"
	"artisanhub/internal/models"
	"artisanhub/internal/repositories"

	"github.com/dgrijalva/jwt-go"
	"golang.org/x/crypto/bcrypt"
)

// AuthService handles credential verification and token issuance.
type AuthService struct {
	userRepo      repositories.UserRepository
	audit         *AuditService
	jwtSecret     []byte
	tokenDuration time.Duration
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo repositories.UserRepository, audit *AuditService, jwtSecret string) *AuthService {
	return &AuthService{
		userRepo:      userRepo,
		audit:         audit,
		jwtSecret:     []byte(jwtSecret),
		tokenDuration: 7 * 24 * time.Hour, // tokens are valid for 7 days
	}
}

// Register hashes the password with a fresh salt and stores the user.
func (s *AuthService) Register(user *models.User) error {
	hashed, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	user.Password = string(hashed)
	if user.IsActive == 0 {
		user.IsActive = 1
	}
	if err := s.userRepo.Create(user); err != nil {
		return fmt.Errorf("failed to register user: %w", err)
	}
	return nil
}

// Login verifies the credentials and issues a signed token. Failed lookups
// and password mismatches each append an audit record carrying the attempted
// username (never the password) and the request's network metadata.
func (s *AuthService) Login(username, password string, meta models.LogEvent) (*models.User, string, error) {
	user, err := s.userRepo.GetByUsername(username)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			meta.ActionType = "AUTH_FAILED"
			meta.Message = fmt.Sprintf("พยายามเข้าสู่ระบบแต่ไม่พบ Username: %s", username)
			s.audit.Record(meta)
			return nil, "", apperr.ErrUserNotFound
		}
		return nil, "", err
	}

	if user.IsActive == 0 {
		return nil, "", apperr.ErrAccountSuspended
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		meta.ActionType = "LOGIN_FAILED"
		meta.Message = fmt.Sprintf("ผู้ใช้ %s กรอกรหัสผ่านไม่ถูกต้อง", username)
		s.audit.Record(meta)
		return nil, "", apperr.ErrWrongPassword
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id":  user.UserID,
		"username": user.Username,
		"name":     user.Fname + " " + user.Lname,
		"role":     user.Role,
		"iat":      time.Now().Unix(),
		"exp":      time.Now().Add(s.tokenDuration).Unix(),
	})

	signed, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return nil, "", fmt.Errorf("failed to generate token: %w", err)
	}
	return user, signed, nil
}

// ValidateToken parses and verifies a token and returns the embedded
// identity. Malformed, badly signed and expired tokens all fail.
func (s *AuthService) ValidateToken(tokenString string) (*models.Identity, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}

	identity := &models.Identity{}
	if v, ok := claims["user_id"].(float64); ok {
		identity.UserID = uint(v)
	}
	if v, ok := claims["username"].(string); ok {
		identity.Username = v
	}
	if v, ok := claims["name"].(string); ok {
		identity.Name = v
	}
	if v, ok := claims["role"].(string); ok {
		identity.Role = v
	}
	return identity, nil
}

// Me fetches the current user's profile.
func (s *AuthService) Me(id uint) (*models.User, error) {
	return s.userRepo.GetByID(id)
}

// ListUsers returns the back-office user listing without password hashes.
func (s *AuthService) ListUsers(search string) ([]models.UserSummary, error) {
	return s.userRepo.List(search)
}

// DeleteUser removes an account; the schema nulls out references in
// dependent records.
func (s *AuthService) DeleteUser(id uint) error {
	return s.userRepo.Delete(id)
}
