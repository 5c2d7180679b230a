package services_test

import (
	"fmt"
	"testing"
	"time"

	"artisanhub/internal/apperr"
	"artisanhub/internal/models"
	"artisanhub/internal/services"

	"github.com/dgrijalva/jwt-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
)

// MockUserRepository is a mock implementation of repositories.UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(user *models.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByUsername(username string) (*models.User, error) {
	args := m.Called(username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByID(id uint) (*models.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) List(search string) ([]models.UserSummary, error) {
	args := m.Called(search)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.UserSummary), args.Error(1)
}

func (m *MockUserRepository) Delete(id uint) error {
	args := m.Called(id)
	return args.Error(0)
}

const testJWTSecret = "test_jwt_secret"

// newAuthServiceForTest wires a fresh auth service with the given mocks; the
// audit log repository is returned so expectations can be set on it.
func newAuthServiceForTest(userRepo *MockUserRepository, logRepo *MockLogRepository) *services.AuthService {
	audit := services.NewAuditService(logRepo, nil)
	return services.NewAuthService(userRepo, audit, testJWTSecret)
}

func TestAuthService_Register(t *testing.T) {
	mockRepo := new(MockUserRepository)
	authService := newAuthServiceForTest(mockRepo, new(MockLogRepository))

	var stored *models.User
	mockRepo.On("Create", mock.AnythingOfType("*models.User")).
		Run(func(args mock.Arguments) {
			stored = args.Get(0).(*models.User)
		}).Return(nil).Once()

	user := &models.User{
		Username: "somchai",
		Password: "password123",
		Fname:    "สมชาย",
		Lname:    "ใจดี",
		Role:     models.RoleEditor,
	}
	err := authService.Register(user)
	assert.NoError(t, err)
	mockRepo.AssertExpectations(t)

	// The password is stored as a bcrypt hash, never in the clear, and the
	// account is active by default.
	assert.NotEqual(t, "password123", stored.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.Password), []byte("password123")))
	assert.Equal(t, 1, stored.IsActive)
}

func TestAuthService_LoginSuccess(t *testing.T) {
	mockRepo := new(MockUserRepository)
	authService := newAuthServiceForTest(mockRepo, new(MockLogRepository))

	hashed, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	user := &models.User{
		UserID:   42,
		Username: "somchai",
		Password: string(hashed),
		Fname:    "สมชาย",
		Lname:    "ใจดี",
		Role:     models.RoleSuperAdmin,
		IsActive: 1,
	}
	mockRepo.On("GetByUsername", "somchai").Return(user, nil).Once()

	loggedIn, token, err := authService.Login("somchai", "password123", models.LogEvent{})
	assert.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, user.UserID, loggedIn.UserID)
	mockRepo.AssertExpectations(t)

	parsed, err := jwt.Parse(token, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(testJWTSecret), nil
	})
	assert.NoError(t, err)
	claims, ok := parsed.Claims.(jwt.MapClaims)
	assert.True(t, ok)
	assert.Equal(t, float64(42), claims["user_id"])
	assert.Equal(t, "somchai", claims["username"])
	assert.Equal(t, "สมชาย ใจดี", claims["name"])
	assert.Equal(t, models.RoleSuperAdmin, claims["role"])

	// The token expires roughly seven days out.
	exp := int64(claims["exp"].(float64))
	assert.InDelta(t, time.Now().Add(7*24*time.Hour).Unix(), exp, 60)
}

func TestAuthService_LoginUnknownUser(t *testing.T) {
	mockRepo := new(MockUserRepository)
	mockLogRepo := new(MockLogRepository)
	authService := newAuthServiceForTest(mockRepo, mockLogRepo)

	mockRepo.On("GetByUsername", "ghost").Return(nil, apperr.ErrNotFound).Once()

	var captured *models.AuditLog
	mockLogRepo.On("AppendAudit", mock.AnythingOfType("*models.AuditLog")).
		Run(func(args mock.Arguments) {
			captured = args.Get(0).(*models.AuditLog)
		}).Return(nil).Once()

	_, _, err := authService.Login("ghost", "whatever", models.LogEvent{IP: "10.0.0.1"})
	assert.ErrorIs(t, err, apperr.ErrUserNotFound)
	mockRepo.AssertExpectations(t)
	mockLogRepo.AssertExpectations(t)

	// The attempt lands in the audit log with the attempted username but
	// never the password.
	assert.Equal(t, "AUTH_FAILED", captured.LogData.ActionType)
	assert.Contains(t, captured.LogData.Message, "ghost")
	assert.NotContains(t, captured.LogData.Message, "whatever")
	assert.Equal(t, "10.0.0.1", captured.LogData.IP)
}

func TestAuthService_LoginWrongPassword(t *testing.T) {
	mockRepo := new(MockUserRepository)
	mockLogRepo := new(MockLogRepository)
	authService := newAuthServiceForTest(mockRepo, mockLogRepo)

	hashed, _ := bcrypt.GenerateFromPassword([]byte("correct"), bcrypt.DefaultCost)
	user := &models.User{UserID: 1, Username: "somchai", Password: string(hashed), IsActive: 1}
	mockRepo.On("GetByUsername", "somchai").Return(user, nil).Once()

	var captured *models.AuditLog
	mockLogRepo.On("AppendAudit", mock.AnythingOfType("*models.AuditLog")).
		Run(func(args mock.Arguments) {
			captured = args.Get(0).(*models.AuditLog)
		}).Return(nil).Once()

	_, _, err := authService.Login("somchai", "wrong", models.LogEvent{})
	assert.ErrorIs(t, err, apperr.ErrWrongPassword)
	assert.Equal(t, "LOGIN_FAILED", captured.LogData.ActionType)
	assert.Contains(t, captured.LogData.Message, "somchai")
	mockRepo.AssertExpectations(t)
	mockLogRepo.AssertExpectations(t)
}

func TestAuthService_LoginSuspendedAccount(t *testing.T) {
	mockRepo := new(MockUserRepository)
	authService := newAuthServiceForTest(mockRepo, new(MockLogRepository))

	hashed, _ := bcrypt.GenerateFromPassword([]byte("correct"), bcrypt.DefaultCost)
	user := &models.User{UserID: 1, Username: "somchai", Password: string(hashed), IsActive: 0}
	mockRepo.On("GetByUsername", "somchai").Return(user, nil).Once()

	// A suspended account is rejected even with the right password.
	_, _, err := authService.Login("somchai", "correct", models.LogEvent{})
	assert.ErrorIs(t, err, apperr.ErrAccountSuspended)
	mockRepo.AssertExpectations(t)
}

func TestAuthService_ValidateToken(t *testing.T) {
	authService := newAuthServiceForTest(new(MockUserRepository), new(MockLogRepository))

	makeToken := func(exp time.Time, secret string) string {
		token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
			"user_id":  float64(7),
			"username": "somchai",
			"name":     "สมชาย ใจดี",
			"role":     models.RoleEditor,
			"exp":      exp.Unix(),
		})
		signed, _ := token.SignedString([]byte(secret))
		return signed
	}

	// Valid token round-trips into an identity.
	identity, err := authService.ValidateToken(makeToken(time.Now().Add(time.Hour), testJWTSecret))
	assert.NoError(t, err)
	assert.Equal(t, uint(7), identity.UserID)
	assert.Equal(t, "somchai", identity.Username)
	assert.Equal(t, "สมชาย ใจดี", identity.Name)
	assert.Equal(t, models.RoleEditor, identity.Role)

	// Expired token.
	_, err = authService.ValidateToken(makeToken(time.Now().Add(-time.Hour), testJWTSecret))
	assert.Error(t, err)

	// Token signed with a different secret.
	_, err = authService.ValidateToken(makeToken(time.Now().Add(time.Hour), "other_secret"))
	assert.Error(t, err)

	// Garbage input.
	_, err = authService.ValidateToken("invalid.token.string")
	assert.Error(t, err)
}
