package handlers

import (
	"net/http"
	"strings"

	"github.com/OryemaStephen/alx-project-nexus-api/internal/auth"
	"github.com/OryemaStephen/alx-project-nexus-api/internal/models"
	"github.com/OryemaStephen/alx-project-nexus-api/internal/repositories"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

// AuthHandler handles the REST authentication endpoints
type AuthHandler struct {
	userRepository repositories.UserRepository
	tokens         *auth.Manager
	log            *logrus.Logger
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(userRepo repositories.UserRepository, tokens *auth.Manager, log *logrus.Logger) *AuthHandler {
	return &AuthHandler{
		userRepository: userRepo,
		tokens:         tokens,
		log:            log,
	}
}

// RegisterAuthRoutes registers the REST auth routes
func (h *AuthHandler) RegisterAuthRoutes(e *echo.Echo) {
	e.POST("/api/login", h.Login)
	e.POST("/api/token", h.TokenObtain)
	e.POST("/api/token/refresh", h.TokenRefresh)
}

// fieldErrors maps validation failures to a field -> message response body
func fieldErrors(err error) map[string]string {
	out := map[string]string{}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		out["error"] = err.Error()
		return out
	}
	for _, fe := range verrs {
		out[strings.ToLower(fe.Field())] = "This field is required."
	}
	return out
}

func (h *AuthHandler) checkCredentials(username, password string) (*models.User, bool) {
	user, err := h.userRepository.GetUserByUsername(username)
	if err != nil {
		return nil, false
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, false
	}
	return user, true
}

// Login authenticates credentials for non-GraphQL clients. Validation
// failures come back as field errors; bad credentials as a single error
// message, both with 400.
func (h *AuthHandler) Login(c echo.Context) error {
	var req models.LoginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request payload"})
	}

	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, fieldErrors(err))
	}

	user, ok := h.checkCredentials(req.Username, req.Password)
	if !ok {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid username or password"})
	}

	h.log.WithField("username", user.Username).Info("Session login")
	return c.JSON(http.StatusOK, map[string]string{"message": "Login successful"})
}

// TokenObtain authenticates credentials and returns an access/refresh
// pair plus basic account fields
func (h *AuthHandler) TokenObtain(c echo.Context) error {
	var req models.LoginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request payload"})
	}

	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, fieldErrors(err))
	}

	user, ok := h.checkCredentials(req.Username, req.Password)
	if !ok {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Invalid credentials"})
	}

	access, refresh, err := h.tokens.GeneratePair(user)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to generate token")
	}

	return c.JSON(http.StatusOK, echo.Map{
		"access":   access,
		"refresh":  refresh,
		"user_id":  user.ID,
		"username": user.Username,
		"email":    user.Email,
	})
}

// TokenRefresh exchanges a refresh token for a new access token
func (h *AuthHandler) TokenRefresh(c echo.Context) error {
	var req models.RefreshRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request payload"})
	}

	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, fieldErrors(err))
	}

	claims, err := h.tokens.VerifyRefresh(req.Refresh)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Token is invalid or expired"})
	}

	user, err := h.userRepository.GetUserByID(claims.UserID)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Token is invalid or expired"})
	}

	access, err := h.tokens.GenerateAccess(user)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to generate token")
	}

	return c.JSON(http.StatusOK, echo.Map{"access": access})
}
