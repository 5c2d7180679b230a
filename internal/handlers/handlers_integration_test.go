package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"artisanhub/internal/handlers"
	"artisanhub/internal/middleware"
	"artisanhub/internal/models"
	"artisanhub/internal/repositories"
	"artisanhub/internal/services"
	"artisanhub/pkg/storage"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupApp wires a Fiber app against an in-memory SQLite database with the
// full handler stack. Each call gets its own database.
func setupApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()

	dsn := fmt.Sprintf("file:handlers_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	assert.NoError(t, err)

	err = db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Artisan{},
		&models.GalleryImage{},
		&models.Award{},
		&models.Product{},
		&models.AuditLog{},
		&models.VisitLog{},
	)
	assert.NoError(t, err)

	store := storage.New(t.TempDir(), "http://localhost:4000")

	userRepo := repositories.NewGORMUserRepository(db)
	categoryRepo := repositories.NewGORMCategoryRepository(db)
	artisanRepo := repositories.NewGORMArtisanRepository(db)
	galleryRepo := repositories.NewGORMGalleryRepository(db)
	awardRepo := repositories.NewGORMAwardRepository(db)
	productRepo := repositories.NewGORMProductRepository(db)
	logRepo := repositories.NewGORMLogRepository(db)

	auditService := services.NewAuditService(logRepo, nil)
	authService := services.NewAuthService(userRepo, auditService, "test_jwt_secret")
	artisanService := services.NewArtisanService(artisanRepo, store, auditService)
	categoryService := services.NewCategoryService(categoryRepo, auditService)
	galleryService := services.NewGalleryService(galleryRepo, store, auditService)
	awardService := services.NewAwardService(awardRepo, store)
	productService := services.NewProductService(productRepo)

	app := fiber.New()
	auth := middleware.AuthRequired(authService)

	handlers.NewAuthHandler(authService, store).RegisterRoutes(app, auth)
	handlers.NewAdminHandler(artisanService, authService, store).RegisterRoutes(app, auth)
	handlers.NewArtisanHandler(artisanService, categoryService).RegisterRoutes(app, auth)
	handlers.NewCategoryHandler(categoryService).RegisterRoutes(app, auth)
	handlers.NewGalleryHandler(galleryService, store).RegisterRoutes(app, auth)
	handlers.NewAwardHandler(awardService, store).RegisterRoutes(app, auth)
	handlers.NewProductHandler(productService, categoryService).RegisterRoutes(app, auth)
	handlers.NewSearchHandler(artisanService).RegisterRoutes(app)
	handlers.NewLogHandler(auditService).RegisterRoutes(app, auth)
	handlers.NewActivityHandler(artisanService, categoryService).RegisterRoutes(app, auth)

	// Seed the admin account used by the protected-route tests.
	err = authService.Register(&models.User{
		Username: "admin",
		Password: "password123",
		Fname:    "แอดมิน",
		Lname:    "ระบบ",
		Role:     models.RoleSuperAdmin,
	})
	assert.NoError(t, err)

	return app, db
}

// TestMain suppresses operational logging for cleaner test output.
func TestMain(m *testing.M) {
	log.SetOutput(io.Discard)
	code := m.Run()
	os.Exit(code)
}

func jsonRequest(method, target string, body interface{}) *http.Request {
	var reader io.Reader
	if body != nil {
		raw, _ := json.Marshal(body)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return req
}

func decodeBody(t *testing.T, resp *http.Response) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	resp.Body.Close()
	return out
}

// loginAs logs in via the HTTP endpoint and returns the issued token.
func loginAs(t *testing.T, app *fiber.App, username, password string) string {
	t.Helper()
	req := jsonRequest(http.MethodPost, "/auth/login", map[string]string{
		"username": username,
		"password": password,
	})
	resp, err := app.Test(req, -1)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	// The token is delivered both in the body and as an http-only cookie.
	var cookieSet bool
	for _, c := range resp.Cookies() {
		if c.Name == "token" && c.Value != "" {
			cookieSet = true
			assert.True(t, c.HttpOnly)
		}
	}
	assert.True(t, cookieSet)

	body := decodeBody(t, resp)
	token, _ := body["token"].(string)
	assert.NotEmpty(t, token)
	return token
}

func TestLoginFlow(t *testing.T) {
	app, _ := setupApp(t)

	// Wrong password is a 400 with the Thai message, not a server error.
	req := jsonRequest(http.MethodPost, "/auth/login", map[string]string{
		"username": "admin",
		"password": "wrong",
	})
	resp, err := app.Test(req, -1)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "รหัสผ่านผิด", decodeBody(t, resp)["message"])

	// Unknown username.
	req = jsonRequest(http.MethodPost, "/auth/login", map[string]string{
		"username": "ghost",
		"password": "whatever",
	})
	resp, err = app.Test(req, -1)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "ไม่พบผู้ใช้", decodeBody(t, resp)["message"])

	// Missing fields never reach the service.
	req = jsonRequest(http.MethodPost, "/auth/login", map[string]string{"username": "admin"})
	resp, err = app.Test(req, -1)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()

	token := loginAs(t, app, "admin", "password123")

	// The bearer token works on protected routes.
	req = httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err = app.Test(req, -1)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	me := decodeBody(t, resp)
	assert.Equal(t, "แอดมิน", me["fname"])
	assert.Equal(t, "แอดมิน", me["role_name"])

	// The cookie works too.
	req = httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	req.AddCookie(&http.Cookie{Name: "token", Value: token})
	resp, err = app.Test(req, -1)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	// Legacy cookie name is still accepted.
	req = httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	req.AddCookie(&http.Cookie{Name: "access_token", Value: token})
	resp, err = app.Test(req, -1)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	// No token at all.
	req = httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	resp, err = app.Test(req, -1)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()

	// Garbage token is rejected and the cookies are cleared.
	req = httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	req.AddCookie(&http.Cookie{Name: "token", Value: "garbage"})
	resp, err = app.Test(req, -1)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp.Body.Close()
}

func TestArtisanCreateUnknownCategoryRollsBack(t *testing.T) {
	app, db := setupApp(t)
	token := loginAs(t, app, "admin", "password123")

	req := jsonRequest(http.MethodPost, "/admin/artisan/add", map[string]interface{}{
		"fname":         "บุญมี",
		"lname":         "ศรีสุข",
		"category_name": "ไม่มีอยู่จริง",
	})
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req, -1)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, "Server Error", body["message"])
	assert.Contains(t, body["error"], "ไม่พบหมวดหมู่: ไม่มีอยู่จริง")

	// The transaction rolled back: no artisan row was inserted.
	var count int64
	assert.NoError(t, db.Model(&models.Artisan{}).Count(&count).Error)
	assert.Equal(t, int64(0), count)
}

func TestArtisanLifecycle(t *testing.T) {
	app, _ := setupApp(t)
	token := loginAs(t, app, "admin", "password123")

	authed := func(req *http.Request) *http.Request {
		req.Header.Set("Authorization", "Bearer "+token)
		return req
	}

	// Create a category first.
	resp, err := app.Test(authed(jsonRequest(http.MethodPost, "/category/add", map[string]string{
		"category_name": "จักสาน",
		"description":   "งานจักสานไม้ไผ่",
	})), -1)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	// Create an artisan by category name; without a status it starts as a
	// draft.
	resp, err = app.Test(authed(jsonRequest(http.MethodPost, "/admin/artisan/add", map[string]interface{}{
		"fname":         "บุญมี",
		"lname":         "ศรีสุข",
		"province":      "เชียงใหม่",
		"category_name": "จักสาน",
	})), -1)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	created := decodeBody(t, resp)
	data := created["data"].(map[string]interface{})
	assert.Equal(t, "ฉบับร่าง", data["status"])
	artisanID := int(data["artisan_id"].(float64))
	assert.NotZero(t, artisanID)

	// Drafts are invisible on the public listing.
	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/artisan/", nil), -1)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var public []models.ArtisanSummary
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&public))
	resp.Body.Close()
	assert.Empty(t, public)

	// But present in the back-office listing.
	resp, err = app.Test(authed(httptest.NewRequest(http.MethodGet, "/admin/artisans-data", nil)), -1)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var adminRows []models.ArtisanAdminRow
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&adminRows))
	resp.Body.Close()
	assert.Len(t, adminRows, 1)

	// Update without the required fields is rejected before any mutation.
	resp, err = app.Test(authed(jsonRequest(http.MethodPut, fmt.Sprintf("/admin/artisan/%d", artisanID), map[string]interface{}{
		"fname": "",
	})), -1)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "กรุณากรอกข้อมูลที่จำเป็นให้ครบถ้วน", decodeBody(t, resp)["message"])

	// Publish the artisan.
	resp, err = app.Test(authed(jsonRequest(http.MethodPut, fmt.Sprintf("/admin/artisan/%d", artisanID), map[string]interface{}{
		"fname":       "บุญมี",
		"lname":       "ศรีสุข",
		"province":    "เชียงใหม่",
		"category_id": 1,
		"status":      "เผยแพร่",
	})), -1)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	// Now it shows up publicly, and the category filter matches.
	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/artisan/?category=จักสาน", nil), -1)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	public = nil
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&public))
	resp.Body.Close()
	assert.Len(t, public, 1)
	assert.Equal(t, "บุญมี", public[0].Fname)

	// The "all" filter value behaves like no filter.
	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/artisan/?category=ทั้งหมด&province=ทั้งหมด", nil), -1)
	assert.NoError(t, err)
	public = nil
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&public))
	resp.Body.Close()
	assert.Len(t, public, 1)

	// Updating a nonexistent id is a 404 with the Thai message.
	resp, err = app.Test(authed(jsonRequest(http.MethodPut, "/admin/artisan/9999", map[string]interface{}{
		"fname":       "x",
		"lname":       "y",
		"category_id": 1,
	})), -1)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "ไม่พบข้อมูลปราชญ์ที่ต้องการแก้ไข", decodeBody(t, resp)["message"])

	// Delete, then delete again: the second attempt is a clean 404.
	resp, err = app.Test(authed(httptest.NewRequest(http.MethodDelete, fmt.Sprintf("/admin/artisans-data/%d", artisanID), nil)), -1)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp, err = app.Test(authed(httptest.NewRequest(http.MethodDelete, fmt.Sprintf("/admin/artisans-data/%d", artisanID), nil)), -1)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}

func TestVisitLogAndExports(t *testing.T) {
	app, _ := setupApp(t)

	// The visit beacon is public and always answers 204.
	req := jsonRequest(http.MethodPost, "/log-visit", map[string]string{
		"path":     "/artisan/profile/1",
		"referrer": "https://example.com",
		"lang":     "th-TH",
	})
	req.Header.Set("User-Agent", "integration-test")
	resp, err := app.Test(req, -1)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp.Body.Close()

	token := loginAs(t, app, "admin", "password123")

	// The listing shows the recorded visit.
	req = httptest.NewRequest(http.MethodGet, "/visit-logs", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err = app.Test(req, -1)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var visits []models.VisitLog
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&visits))
	resp.Body.Close()
	assert.Len(t, visits, 1)
	assert.Equal(t, "/artisan/profile/1", visits[0].LogData.Path)
	assert.Equal(t, "integration-test", visits[0].LogData.UserAgent)

	// The CSV export is delivered as an attachment with a BOM prefix.
	req = httptest.NewRequest(http.MethodGet, "/export-visit-logs", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err = app.Test(req, -1)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/csv")
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "attachment")

	raw, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.NoError(t, err)
	body := string(raw)
	assert.True(t, strings.HasPrefix(body, "\uFEFF"))
	assert.Contains(t, body, "visit_time,ip,path,method,user_agent,referrer,lang")
	assert.Contains(t, body, "/artisan/profile/1")

	// Failed logins land in the audit log and its export.
	badReq := jsonRequest(http.MethodPost, "/auth/login", map[string]string{
		"username": "admin",
		"password": "wrong",
	})
	resp, err = app.Test(badReq, -1)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()

	req = httptest.NewRequest(http.MethodGet, "/logs", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err = app.Test(req, -1)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var audits []models.AuditLog
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&audits))
	resp.Body.Close()
	assert.NotEmpty(t, audits)

	var foundLoginFailure bool
	for _, entry := range audits {
		if entry.LogData.ActionType == "LOGIN_FAILED" {
			foundLoginFailure = true
			assert.Contains(t, entry.LogData.Message, "admin")
		}
	}
	assert.True(t, foundLoginFailure)
}

func TestSearchAndProducts(t *testing.T) {
	app, db := setupApp(t)
	token := loginAs(t, app, "admin", "password123")

	// Seed directly through the ORM: one category, one published artisan.
	category := models.Category{CategoryName: "ทอผ้า"}
	assert.NoError(t, db.Create(&category).Error)
	artisan := models.Artisan{
		Fname:      "คำปัน",
		Lname:      "แสงทอง",
		Province:   "ลำพูน",
		CategoryID: category.CategoryID,
		Status:     models.StatusPublished,
	}
	assert.NoError(t, db.Create(&artisan).Error)

	// Blank query short-circuits to an empty list.
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/search?q=", nil), -1)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var rows []models.SearchRow
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&rows))
	resp.Body.Close()
	assert.Empty(t, rows)

	// Matching by category name.
	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/search?q=ทอผ้า", nil), -1)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	rows = nil
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&rows))
	resp.Body.Close()
	assert.Len(t, rows, 1)
	assert.Equal(t, "คำปัน", rows[0].Fname)

	// Product create defaults the image, and the listing joins the artisan.
	req := jsonRequest(http.MethodPost, "/product/product/add", map[string]interface{}{
		"artisan_id":   artisan.ArtisanID,
		"product_name": "ผ้าทอมือ",
		"price_range":  "500-1500 บาท",
	})
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err = app.Test(req, -1)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	created := decodeBody(t, resp)
	productData := created["data"].(map[string]interface{})
	assert.Equal(t, "default_product.jpg", productData["product_img"])

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/product/products?search=ผ้าทอ", nil), -1)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var products []models.ProductRow
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&products))
	resp.Body.Close()
	assert.Len(t, products, 1)
	assert.Equal(t, "คำปัน", products[0].Fname)
}

func TestDeleteMissingMediaReturnsNotFound(t *testing.T) {
	app, _ := setupApp(t)
	token := loginAs(t, app, "admin", "password123")

	authed := func(req *http.Request) *http.Request {
		req.Header.Set("Authorization", "Bearer "+token)
		return req
	}

	// Deleting media that never existed is a 404, not a server error, and
	// stays a 404 on repeat requests.
	for i := 0; i < 2; i++ {
		resp, err := app.Test(authed(httptest.NewRequest(http.MethodDelete, "/gallery/9999", nil)), -1)
		assert.NoError(t, err)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		assert.Equal(t, "ไม่พบรูปภาพ", decodeBody(t, resp)["message"])
	}

	resp, err := app.Test(authed(httptest.NewRequest(http.MethodDelete, "/award/delete-award/9999", nil)), -1)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "ไม่พบรางวัลที่ต้องการลบ", decodeBody(t, resp)["message"])
}
