package handlers

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/OryemaStephen/alx-project-nexus-api/internal/auth"
	"github.com/OryemaStephen/alx-project-nexus-api/internal/models"
	"github.com/OryemaStephen/alx-project-nexus-api/internal/repositories"
	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newAuthTestServer(t *testing.T) (*echo.Echo, *gorm.DB, *auth.Manager) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}))

	log := logrus.New()
	log.SetOutput(io.Discard)

	tokens := auth.NewManager("test-secret", time.Hour, 24*time.Hour)
	handler := NewAuthHandler(repositories.NewPostgresUserRepository(db), tokens, log)

	e := echo.New()
	handler.RegisterAuthRoutes(e)
	return e, db, tokens
}

func createAuthUser(t *testing.T, db *gorm.DB, username, password string) *models.User {
	t.Helper()
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	user := &models.User{
		Username: username,
		Email:    username + "@example.com",
		Password: string(hashed),
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func postJSON(e *echo.Echo, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestLoginSuccess(t *testing.T) {
	e, db, _ := newAuthTestServer(t)
	createAuthUser(t, db, "alice", "s3cret")

	rec := postJSON(e, "/api/login", `{"username": "alice", "password": "s3cret"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "Login successful", decodeBody(t, rec)["message"])
}

func TestLoginWrongPassword(t *testing.T) {
	e, db, _ := newAuthTestServer(t)
	createAuthUser(t, db, "alice", "s3cret")

	rec := postJSON(e, "/api/login", `{"username": "alice", "password": "wrong"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, "Invalid username or password", decodeBody(t, rec)["error"])
}

func TestLoginUnknownUser(t *testing.T) {
	e, _, _ := newAuthTestServer(t)

	rec := postJSON(e, "/api/login", `{"username": "ghost", "password": "whatever"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, "Invalid username or password", decodeBody(t, rec)["error"])
}

func TestLoginMissingFields(t *testing.T) {
	e, _, _ := newAuthTestServer(t)

	rec := postJSON(e, "/api/login", `{"username": "alice"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	body := decodeBody(t, rec)
	require.Equal(t, "This field is required.", body["password"])
	require.NotContains(t, body, "username")
}

func TestTokenObtain(t *testing.T) {
	e, db, tokens := newAuthTestServer(t)
	user := createAuthUser(t, db, "alice", "s3cret")

	rec := postJSON(e, "/api/token", `{"username": "alice", "password": "wrong"}`)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.Equal(t, "Invalid credentials", decodeBody(t, rec)["error"])

	rec = postJSON(e, "/api/token", `{"username": "alice", "password": "s3cret"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	require.Equal(t, "alice", body["username"])
	require.Equal(t, "alice@example.com", body["email"])
	require.EqualValues(t, user.ID, body["user_id"])

	claims, err := tokens.Verify(body["access"].(string))
	require.NoError(t, err)
	require.Equal(t, user.ID, claims.UserID)

	refreshClaims, err := tokens.VerifyRefresh(body["refresh"].(string))
	require.NoError(t, err)
	require.Equal(t, user.ID, refreshClaims.UserID)
}

func TestTokenRefresh(t *testing.T) {
	e, db, tokens := newAuthTestServer(t)
	user := createAuthUser(t, db, "alice", "s3cret")

	_, refresh, err := tokens.GeneratePair(user)
	require.NoError(t, err)

	rec := postJSON(e, "/api/token/refresh", fmt.Sprintf(`{"refresh": %q}`, refresh))
	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)

	claims, err := tokens.Verify(body["access"].(string))
	require.NoError(t, err)
	require.Equal(t, "alice", claims.Username)
}

func TestTokenRefreshRejectsAccessToken(t *testing.T) {
	e, db, tokens := newAuthTestServer(t)
	user := createAuthUser(t, db, "alice", "s3cret")

	access, _, err := tokens.GeneratePair(user)
	require.NoError(t, err)

	rec := postJSON(e, "/api/token/refresh", fmt.Sprintf(`{"refresh": %q}`, access))
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.Equal(t, "Token is invalid or expired", decodeBody(t, rec)["error"])
}

func TestTokenRefreshGarbage(t *testing.T) {
	e, _, _ := newAuthTestServer(t)

	rec := postJSON(e, "/api/token/refresh", `{"refresh": "garbage"}`)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.Equal(t, "Token is invalid or expired", decodeBody(t, rec)["error"])
}
