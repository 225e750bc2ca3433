package handlers

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/brewcrew/cafe-backend/internal/models"
	"github.com/brewcrew/cafe-backend/internal/repo"
	"github.com/brewcrew/cafe-backend/internal/service"
)

var testJWTSecret = []byte("test-jwt-secret")

type testEnv struct {
	T    *testing.T
	E    *echo.Echo
	DB   *gorm.DB
	Menu *MenuHandler
	User *UserHandler
	Fav  *FavouriteHandler
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect to in-memory db: %v", err)
	}
	if err := db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Item{},
		&models.Order{},
		&models.OrderItem{},
		&models.Favourite{},
	); err != nil {
		t.Fatalf("failed to migrate tables: %v", err)
	}

	gormRepo := &repo.GormRepo{DB: db}

	return &testEnv{
		T:    t,
		E:    echo.New(),
		DB:   db,
		Menu: &MenuHandler{Svc: &service.MenuService{Repo: gormRepo}},
		User: &UserHandler{Svc: &service.UserService{Repo: gormRepo, JWTSecret: testJWTSecret}},
		Fav:  &FavouriteHandler{Svc: &service.FavouriteService{Repo: gormRepo}},
	}
}

func (env *testEnv) doJSONRequest(method, path string, body interface{}) (*httptest.ResponseRecorder, echo.Context) {
	var buf bytes.Buffer
	if body != nil {
		require.NoError(env.T, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := env.E.NewContext(req, rec)
	return rec, c
}

func requireHTTPError(t *testing.T, err error, code int, message string) {
	t.Helper()

	he, ok := err.(*echo.HTTPError)
	require.True(t, ok, "expected HTTPError, got %v", err)
	require.Equal(t, code, he.Code)
	require.Equal(t, message, he.Message)
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}
