package services_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"artisanhub/internal/apperr"
	"artisanhub/internal/models"
	"artisanhub/internal/services"
	"artisanhub/pkg/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockArtisanRepository is a mock implementation of
// repositories.ArtisanRepository.
type MockArtisanRepository struct {
	mock.Mock
}

func (m *MockArtisanRepository) ListPublished(search, category, province string) ([]models.ArtisanSummary, error) {
	args := m.Called(search, category, province)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ArtisanSummary), args.Error(1)
}

func (m *MockArtisanRepository) AdminList(search string) ([]models.ArtisanAdminRow, error) {
	args := m.Called(search)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ArtisanAdminRow), args.Error(1)
}

func (m *MockArtisanRepository) GetByID(id uint) (*models.Artisan, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Artisan), args.Error(1)
}

func (m *MockArtisanRepository) GetDetail(id uint) (*models.ArtisanDetail, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ArtisanDetail), args.Error(1)
}

func (m *MockArtisanRepository) ProfileRows(id uint) ([]models.ArtisanProfileRow, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ArtisanProfileRow), args.Error(1)
}

func (m *MockArtisanRepository) Create(artisan *models.Artisan, ref models.CategoryRef) error {
	args := m.Called(artisan, ref)
	return args.Error(0)
}

func (m *MockArtisanRepository) Update(artisan *models.Artisan) error {
	args := m.Called(artisan)
	return args.Error(0)
}

func (m *MockArtisanRepository) Delete(id uint) error {
	args := m.Called(id)
	return args.Error(0)
}

func (m *MockArtisanRepository) Stats() (*models.ArtisanStats, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ArtisanStats), args.Error(1)
}

func (m *MockArtisanRepository) TopProvinces(limit int) ([]models.ProvinceCount, error) {
	args := m.Called(limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ProvinceCount), args.Error(1)
}

func (m *MockArtisanRepository) Search(q string) ([]models.SearchRow, error) {
	args := m.Called(q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.SearchRow), args.Error(1)
}

func (m *MockArtisanRepository) LatestActivity() (*models.ActivityRow, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ActivityRow), args.Error(1)
}

func newArtisanServiceForTest(t *testing.T, repo *MockArtisanRepository) (*services.ArtisanService, string) {
	t.Helper()
	dir := t.TempDir()
	store := storage.New(dir, "http://localhost:4000")
	audit := services.NewAuditService(permissiveLogRepo(), nil)
	return services.NewArtisanService(repo, store, audit), dir
}

// permissiveLogRepo accepts any append so tests that do not inspect the audit
// trail stay quiet.
func permissiveLogRepo() *MockLogRepository {
	logRepo := new(MockLogRepository)
	logRepo.On("AppendAudit", mock.Anything).Return(nil).Maybe()
	return logRepo
}

func TestArtisanService_CreateDefaultsAndStamps(t *testing.T) {
	mockRepo := new(MockArtisanRepository)
	artisanService, _ := newArtisanServiceForTest(t, mockRepo)

	var created *models.Artisan
	var ref models.CategoryRef
	mockRepo.On("Create", mock.AnythingOfType("*models.Artisan"), mock.AnythingOfType("models.CategoryRef")).
		Run(func(args mock.Arguments) {
			created = args.Get(0).(*models.Artisan)
			ref = args.Get(1).(models.CategoryRef)
		}).Return(nil).Once()

	artisan := &models.Artisan{Fname: "บุญมี", Lname: "ศรีสุข"}
	err := artisanService.Create(artisan, models.CategoryRef{Name: "จักสาน"}, models.Identity{UserID: 9})
	assert.NoError(t, err)
	mockRepo.AssertExpectations(t)

	// A new record without an explicit status starts as a draft, stamped
	// with the creating user.
	assert.Equal(t, models.StatusDraft, created.Status)
	assert.NotNil(t, created.CreatedBy)
	assert.Equal(t, uint(9), *created.CreatedBy)
	assert.Equal(t, "จักสาน", ref.Name)
}

func TestArtisanService_CreateKeepsExplicitStatus(t *testing.T) {
	mockRepo := new(MockArtisanRepository)
	artisanService, _ := newArtisanServiceForTest(t, mockRepo)

	mockRepo.On("Create", mock.Anything, mock.Anything).Return(nil).Once()

	artisan := &models.Artisan{Fname: "บุญมี", Status: models.StatusPublished}
	err := artisanService.Create(artisan, models.CategoryRef{ID: 1}, models.Identity{})
	assert.NoError(t, err)
	assert.Equal(t, models.StatusPublished, artisan.Status)
	assert.Nil(t, artisan.CreatedBy)
}

func TestArtisanService_CreateUnknownCategory(t *testing.T) {
	mockRepo := new(MockArtisanRepository)
	artisanService, _ := newArtisanServiceForTest(t, mockRepo)

	wantErr := apperr.CategoryNotFound("ไม่มีอยู่จริง")
	mockRepo.On("Create", mock.Anything, mock.Anything).Return(wantErr).Once()

	err := artisanService.Create(&models.Artisan{Fname: "x"}, models.CategoryRef{Name: "ไม่มีอยู่จริง"}, models.Identity{})
	assert.Error(t, err)
	assert.True(t, apperr.IsCategoryNotFound(err))
	assert.Contains(t, err.Error(), "ไม่มีอยู่จริง")
}

func TestArtisanService_UpdateRemovesReplacedImage(t *testing.T) {
	mockRepo := new(MockArtisanRepository)
	artisanService, dir := newArtisanServiceForTest(t, mockRepo)

	// Simulate a previously stored profile image on disk.
	oldFile := filepath.Join(dir, "old-profile.png")
	assert.NoError(t, os.WriteFile(oldFile, []byte("png"), 0o644))
	oldRef := "/uploads/old-profile.png"

	existing := &models.Artisan{ArtisanID: 5, Fname: "บุญมี", ProfileImg: &oldRef, Status: models.StatusPublished}
	mockRepo.On("GetByID", uint(5)).Return(existing, nil).Twice()

	var updated *models.Artisan
	mockRepo.On("Update", mock.AnythingOfType("*models.Artisan")).
		Run(func(args mock.Arguments) {
			updated = args.Get(0).(*models.Artisan)
		}).Return(nil).Once()

	newRef := "/uploads/new-profile.png"
	_, err := artisanService.Update(
		&models.Artisan{ArtisanID: 5, Fname: "บุญมี", Lname: "ศรีสุข", CategoryID: 1, ProfileImg: &newRef},
		models.Identity{UserID: 3},
		models.LogEvent{},
	)
	assert.NoError(t, err)
	mockRepo.AssertExpectations(t)

	// The replaced file is gone and the editor is stamped.
	_, statErr := os.Stat(oldFile)
	assert.True(t, os.IsNotExist(statErr))
	assert.NotNil(t, updated.UpdatedBy)
	assert.Equal(t, uint(3), *updated.UpdatedBy)
}

func TestArtisanService_UpdateClearedImageDeletesFile(t *testing.T) {
	mockRepo := new(MockArtisanRepository)
	artisanService, dir := newArtisanServiceForTest(t, mockRepo)

	oldFile := filepath.Join(dir, "cleared.png")
	assert.NoError(t, os.WriteFile(oldFile, []byte("png"), 0o644))
	oldRef := "/uploads/cleared.png"

	existing := &models.Artisan{ArtisanID: 6, Fname: "บุญมี", ProfileImg: &oldRef}
	mockRepo.On("GetByID", uint(6)).Return(existing, nil).Twice()
	mockRepo.On("Update", mock.Anything).Return(nil).Once()

	// Explicitly clearing the image removes the stored file too.
	_, err := artisanService.Update(
		&models.Artisan{ArtisanID: 6, Fname: "บุญมี", Lname: "ศรีสุข", CategoryID: 1, ProfileImg: nil},
		models.Identity{},
		models.LogEvent{},
	)
	assert.NoError(t, err)

	_, statErr := os.Stat(oldFile)
	assert.True(t, os.IsNotExist(statErr))
}

func TestArtisanService_UpdateMissingArtisan(t *testing.T) {
	mockRepo := new(MockArtisanRepository)
	artisanService, _ := newArtisanServiceForTest(t, mockRepo)

	mockRepo.On("GetByID", uint(99)).Return(nil, apperr.ErrNotFound).Once()

	_, err := artisanService.Update(&models.Artisan{ArtisanID: 99}, models.Identity{}, models.LogEvent{})
	assert.ErrorIs(t, err, apperr.ErrNotFound)
	mockRepo.AssertNotCalled(t, "Update", mock.Anything)
}

func TestThaiAge(t *testing.T) {
	assert.Equal(t, "เมื่อสักครู่", services.ThaiAge(30*time.Second))
	assert.Equal(t, "5 นาทีที่แล้ว", services.ThaiAge(5*time.Minute))
	assert.Equal(t, "3 ชั่วโมงที่แล้ว", services.ThaiAge(3*time.Hour))
	assert.Equal(t, "2 วันที่แล้ว", services.ThaiAge(49*time.Hour))
}
