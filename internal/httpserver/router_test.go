package httpserver

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/brewcrew/cafe-backend/internal/handlers"
	authmw "github.com/brewcrew/cafe-backend/internal/middleware/auth"
	"github.com/brewcrew/cafe-backend/internal/models"
	"github.com/brewcrew/cafe-backend/internal/repo"
	"github.com/brewcrew/cafe-backend/internal/service"
	"github.com/brewcrew/cafe-backend/internal/tokens"
)

var testSecret = []byte("test-jwt-secret")

func newTestServer(t *testing.T) (*echo.Echo, *gorm.DB) {
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

	e := echo.New()
	e.HTTPErrorHandler = ErrorHandler()
	Register(e, &Deps{
		MenuHandler:      &handlers.MenuHandler{Svc: &service.MenuService{Repo: gormRepo}},
		UserHandler:      &handlers.UserHandler{Svc: &service.UserService{Repo: gormRepo, JWTSecret: testSecret}},
		OrderHandler:     &handlers.OrderHandler{Svc: &service.OrderService{Repo: gormRepo}},
		FavouriteHandler: &handlers.FavouriteHandler{Svc: &service.FavouriteService{Repo: gormRepo}},
		Auth:             authmw.New(gormRepo, testSecret),
	})
	return e, db
}

func serve(e *echo.Echo, method, path, token string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func bodyOf(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func signToken(t *testing.T, db *gorm.DB, admin bool) string {
	t.Helper()

	user := models.User{Email: "user@example.com", PasswordHash: "x", Name: "User", Admin: admin}
	if admin {
		user.Email = "admin@example.com"
	}
	require.NoError(t, db.Create(&user).Error)

	token, _, err := tokens.SignAccessToken(&user, testSecret)
	require.NoError(t, err)
	return token
}

func TestUnknownRouteEnvelope(t *testing.T) {
	e, _ := newTestServer(t)

	rec := serve(e, http.MethodGet, "/nope", "", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "404 Page not found", bodyOf(t, rec)["message"])
}

func TestAdminRoute_NoToken(t *testing.T) {
	e, _ := newTestServer(t)

	rec := serve(e, http.MethodPost, "/menu/create/category", "", map[string]string{"name": "Coffee"})
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Authentication token is required", bodyOf(t, rec)["message"])
}

func TestAdminRoute_NonAdminToken(t *testing.T) {
	e, db := newTestServer(t)
	token := signToken(t, db, false)

	rec := serve(e, http.MethodPost, "/menu/create/category", token, map[string]string{"name": "Coffee"})
	require.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "Access denied! must be an admin.", bodyOf(t, rec)["message"])
}

func TestAdminRoute_AdminToken(t *testing.T) {
	e, db := newTestServer(t)
	token := signToken(t, db, true)

	rec := serve(e, http.MethodPost, "/menu/create/category", token, map[string]string{"name": "Coffee"})
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "Category Coffee created successfully.", bodyOf(t, rec)["message"])
}

func TestPublicMenuRoute(t *testing.T) {
	e, db := newTestServer(t)

	category := models.Category{Name: "Coffee"}
	require.NoError(t, db.Create(&category).Error)
	require.NoError(t, db.Create(&models.Item{Name: "Espresso", CategoryID: category.ID, Price: 2}).Error)

	rec := serve(e, http.MethodGet, "/menu", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, bodyOf(t, rec)["result"], 1)
}

// Static /menu/categories must not be swallowed by the /menu/:id parameter route.
func TestMenuRoutePrecedence(t *testing.T) {
	e, _ := newTestServer(t)

	rec := serve(e, http.MethodGet, "/menu/categories", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, bodyOf(t, rec), "result")
}

func TestOrdersRoute_RequiresAuth(t *testing.T) {
	e, _ := newTestServer(t)

	rec := serve(e, http.MethodGet, "/orders", "", nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Authentication token is required", bodyOf(t, rec)["message"])
}

func TestFavouritesFlow(t *testing.T) {
	e, db := newTestServer(t)
	token := signToken(t, db, false)

	category := models.Category{Name: "Coffee"}
	require.NoError(t, db.Create(&category).Error)
	item := models.Item{Name: "Espresso", CategoryID: category.ID, Price: 2}
	require.NoError(t, db.Create(&item).Error)

	rec := serve(e, http.MethodPost, "/favourites/1", token, nil)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "Item added to favourites.", bodyOf(t, rec)["message"])

	rec = serve(e, http.MethodGet, "/favourites", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, bodyOf(t, rec)["result"], 1)

	rec = serve(e, http.MethodDelete, "/favourites/1", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = serve(e, http.MethodDelete, "/favourites/1", token, nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "This item is not in your favourites.", bodyOf(t, rec)["message"])
}

func TestHealthEndpoints(t *testing.T) {
	e, _ := newTestServer(t)

	require.Equal(t, http.StatusOK, serve(e, http.MethodGet, "/health/live", "", nil).Code)
	require.Equal(t, http.StatusOK, serve(e, http.MethodGet, "/health/ready", "", nil).Code)
}
