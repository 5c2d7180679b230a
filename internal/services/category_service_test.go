package services_test

import (
	"testing"

	"artisanhub/internal/apperr"
	"artisanhub/internal/models"
	"artisanhub/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockCategoryRepository is a mock implementation of
// repositories.CategoryRepository.
type MockCategoryRepository struct {
	mock.Mock
}

func (m *MockCategoryRepository) ListWithCounts() ([]models.CategoryWithCount, error) {
	args := m.Called()
	return args.Get(0).([]models.CategoryWithCount), args.Error(1)
}

func (m *MockCategoryRepository) ListOptions() ([]models.CategoryWithCount, error) {
	args := m.Called()
	return args.Get(0).([]models.CategoryWithCount), args.Error(1)
}

func (m *MockCategoryRepository) GetByID(id uint) (*models.Category, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Category), args.Error(1)
}

func (m *MockCategoryRepository) Create(category *models.Category) error {
	args := m.Called(category)
	return args.Error(0)
}

func (m *MockCategoryRepository) Update(category *models.Category) error {
	args := m.Called(category)
	return args.Error(0)
}

func (m *MockCategoryRepository) Delete(id uint) error {
	args := m.Called(id)
	return args.Error(0)
}

func (m *MockCategoryRepository) LatestActivity() (*models.ActivityRow, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ActivityRow), args.Error(1)
}

func TestCategoryService_DeleteBlockedByArtisans(t *testing.T) {
	repo := new(MockCategoryRepository)
	logRepo := new(MockLogRepository)
	service := services.NewCategoryService(repo, services.NewAuditService(logRepo, nil))

	repo.On("Delete", uint(3)).Return(apperr.ErrForeignKey)

	err := service.Delete(3, models.LogEvent{IP: "127.0.0.1"})

	assert.ErrorIs(t, err, apperr.ErrForeignKey)
	logRepo.AssertNotCalled(t, "AppendAudit", mock.Anything)
	repo.AssertExpectations(t)
}

func TestCategoryService_DeleteAuditsSuccess(t *testing.T) {
	repo := new(MockCategoryRepository)
	logRepo := new(MockLogRepository)
	service := services.NewCategoryService(repo, services.NewAuditService(logRepo, nil))

	repo.On("Delete", uint(7)).Return(nil)
	var recorded *models.AuditLog
	logRepo.On("AppendAudit", mock.AnythingOfType("*models.AuditLog")).
		Run(func(args mock.Arguments) {
			recorded = args.Get(0).(*models.AuditLog)
		}).
		Return(nil)

	err := service.Delete(7, models.LogEvent{IP: "127.0.0.1"})

	assert.NoError(t, err)
	if assert.NotNil(t, recorded) {
		assert.Equal(t, "CATEGORY_DELETE", recorded.LogData.ActionType)
		assert.Contains(t, recorded.LogData.Message, "7")
	}
	repo.AssertExpectations(t)
}

func TestCategoryService_CreateStampsActor(t *testing.T) {
	repo := new(MockCategoryRepository)
	service := services.NewCategoryService(repo, services.NewAuditService(permissiveLogRepo(), nil))

	var created *models.Category
	repo.On("Create", mock.AnythingOfType("*models.Category")).
		Run(func(args mock.Arguments) {
			created = args.Get(0).(*models.Category)
		}).
		Return(nil)

	category := models.Category{CategoryName: "เครื่องจักสาน"}
	err := service.Create(&category, models.Identity{UserID: 5}, models.LogEvent{})

	assert.NoError(t, err)
	if assert.NotNil(t, created) && assert.NotNil(t, created.UpdatedBy) {
		assert.Equal(t, uint(5), *created.UpdatedBy)
	}
	repo.AssertExpectations(t)
}
