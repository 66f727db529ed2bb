package middleware

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/OryemaStephen/alx-project-nexus-api/internal/auth"
	"github.com/OryemaStephen/alx-project-nexus-api/internal/graph"
	"github.com/OryemaStephen/alx-project-nexus-api/internal/models"
	"github.com/OryemaStephen/alx-project-nexus-api/internal/repositories"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTokenAuth(t *testing.T) (*echo.Echo, *models.User, *auth.Manager, *string) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}))

	user := &models.User{Username: "alice", Email: "alice@example.com", Password: "x"}
	require.NoError(t, db.Create(user).Error)

	tokens := auth.NewManager("test-secret", time.Hour, 24*time.Hour)
	users := repositories.NewPostgresUserRepository(db)

	// The handler reports the resolved identity, or "" for anonymous
	var seen string
	e := echo.New()
	e.GET("/whoami", func(c echo.Context) error {
		seen = ""
		if u := graph.CurrentUser(c.Request().Context()); u != nil {
			seen = u.Username
		}
		return c.NoContent(http.StatusOK)
	}, TokenAuth(users, tokens))

	return e, user, tokens, &seen
}

func whoami(e *echo.Echo, authorization string) {
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	e.ServeHTTP(httptest.NewRecorder(), req)
}

func TestTokenAuthResolvesUser(t *testing.T) {
	e, user, tokens, seen := setupTokenAuth(t)

	access, err := tokens.GenerateAccess(user)
	require.NoError(t, err)

	whoami(e, "Bearer "+access)
	require.Equal(t, "alice", *seen)
}

func TestTokenAuthAnonymousPassesThrough(t *testing.T) {
	e, _, _, seen := setupTokenAuth(t)

	whoami(e, "")
	require.Empty(t, *seen)

	whoami(e, "Bearer not-a-token")
	require.Empty(t, *seen)

	whoami(e, "NotBearer stuff")
	require.Empty(t, *seen)
}

func TestTokenAuthRejectsRefreshToken(t *testing.T) {
	e, user, tokens, seen := setupTokenAuth(t)

	_, refresh, err := tokens.GeneratePair(user)
	require.NoError(t, err)

	whoami(e, "Bearer "+refresh)
	require.Empty(t, *seen)
}
