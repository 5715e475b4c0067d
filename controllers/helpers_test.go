package controllers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/servihub/reports-api/models"
	"github.com/servihub/reports-api/routes"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type testEnv struct {
	router *gin.Engine
	db     *gorm.DB
	admin  models.User
	user   models.User
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("CLOUDFLARE_ACCOUNT_ID", "test-account")
	t.Setenv("CLOUDFLARE_ACCESS_KEY_ID", "test-key")
	t.Setenv("CLOUDFLARE_SECRET_ACCESS_KEY", "test-secret-key")
	t.Setenv("CLOUDFLARE_BUCKET_NAME", "test-bucket")
	t.Setenv("CLOUDFLARE_PUBLIC_URL", "https://files.test")
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open database: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.Report{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	name := func(s string) *string { return &s }
	users := []models.User{
		{Email: "admin@servihub.com", Role: models.RoleAdmin, Name: name("Admin User")},
		{Email: "user1@servihub.com", Role: models.RoleUser, Name: name("User One")},
	}
	if err := db.Create(&users).Error; err != nil {
		t.Fatalf("seed users: %v", err)
	}

	r := gin.New()
	routes.SetupRoutes(r, db, nil)

	return &testEnv{router: r, db: db, admin: users[0], user: users[1]}
}

func (e *testEnv) do(t *testing.T, method, path string, body interface{}, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	for _, cookie := range cookies {
		req.AddCookie(cookie)
	}

	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

// login performs a real login and returns the issued session cookie.
func (e *testEnv) login(t *testing.T, email string) *http.Cookie {
	t.Helper()
	w := e.do(t, http.MethodPost, "/login", map[string]string{"email": email})
	for _, cookie := range w.Result().Cookies() {
		if cookie.Name == "auth-token" && cookie.Value != "" {
			return cookie
		}
	}
	t.Fatalf("login for %s did not set a session cookie (status %d)", email, w.Code)
	return nil
}

func decodeJSON(t *testing.T, w *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	if err := json.Unmarshal(w.Body.Bytes(), out); err != nil {
		t.Fatalf("decode response %q: %v", w.Body.String(), err)
	}
}

// Wire shapes, decoded strictly so string-typed ids are enforced.
type wireUser struct {
	ID    string  `json:"id"`
	Email string  `json:"email"`
	Name  *string `json:"name"`
	Role  string  `json:"role"`
}

type wireReport struct {
	ID          string    `json:"id"`
	Type        string    `json:"type"`
	TargetID    string    `json:"target_id"`
	Reason      string    `json:"reason"`
	Description *string   `json:"description"`
	SubmittedBy *string   `json:"submitted_by"`
	ResolvedBy  *string   `json:"resolved_by"`
	ResolvedAt  *string   `json:"resolved_at"`
	CreatedAt   string    `json:"created_at"`
	Submitter   *wireUser `json:"submitter"`
	Resolver    *wireUser `json:"resolver"`
}

type wireEnvelope struct {
	Data       []wireReport `json:"data"`
	Pagination struct {
		Total      int64 `json:"total"`
		Page       int   `json:"page"`
		Limit      int   `json:"limit"`
		TotalPages int   `json:"totalPages"`
	} `json:"pagination"`
}
