package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"os"

	"github.com/PeuAlmeidaDev/mindforge-backend/internal/config"
	"github.com/PeuAlmeidaDev/mindforge-backend/internal/constants"
	"github.com/PeuAlmeidaDev/mindforge-backend/internal/engine"
	"github.com/PeuAlmeidaDev/mindforge-backend/internal/game"
	"github.com/PeuAlmeidaDev/mindforge-backend/internal/service"
	"github.com/PeuAlmeidaDev/mindforge-backend/internal/storage"
	"github.com/gin-gonic/gin"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

// AuthHandler groups the account endpoints: registration, password login,
// Google sign-in and logout.
type AuthHandler struct {
	repo     storage.Repository
	rolls    engine.Roller
	defaults config.NewUserDefaults
}

func NewAuthHandler(repo storage.Repository, rolls engine.Roller, defaults config.NewUserDefaults) *AuthHandler {
	return &AuthHandler{repo: repo, rolls: rolls, defaults: defaults}
}

type RegisterPayload struct {
	Email       string `json:"email"`
	Name        string `json:"name"`
	Password    string `json:"password"`
	InterestIDs []uint `json:"interest_ids"`
}

// Register creates an account and opens a session for it right away.
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}

	u, err := service.Register(h.repo, h.defaults, service.RegisterRequest{
		Email:       req.Email,
		Name:        req.Name,
		Password:    req.Password,
		InterestIDs: req.InterestIDs,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmailTaken):
			c.JSON(http.StatusConflict, gin.H{constants.JSONKeyError: constants.ErrEmailAlreadyRegistered})
		case errors.Is(err, service.ErrInvalidEmail),
			errors.Is(err, service.ErrEmptyName),
			errors.Is(err, service.ErrWeakPassword),
			errors.Is(err, service.ErrNoInterests),
			errors.Is(err, service.ErrUnknownInterest):
			c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedCreateUser})
		}
		return
	}

	h.respondWithSession(c, http.StatusCreated, u)
}

type LoginPayload struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login authenticates a password account and opens a session.
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}

	u, err := service.Login(h.repo, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{constants.JSONKeyError: constants.ErrInvalidCredentials})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedCreateSession})
		return
	}

	h.respondWithSession(c, http.StatusOK, u)
}

type GoogleOAuthCallbackRequest struct {
	Code string `json:"code"`
}

// GoogleOAuthCallback exchanges a Google authorization code for a profile,
// resolves it to an account (creating one on first sign-in) and opens a
// session.
func (h *AuthHandler) GoogleOAuthCallback(c *gin.Context) {
	var req GoogleOAuthCallbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}

	googleClientID := os.Getenv(constants.EnvGoogleClientID)
	googleClientSecret := os.Getenv(constants.EnvGoogleClientSecret)
	if googleClientID == "" || googleClientSecret == "" {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrMissingGoogleEnv})
		return
	}

	conf := &oauth2.Config{
		ClientID:     googleClientID,
		ClientSecret: googleClientSecret,
		RedirectURL:  constants.GoogleOAuthRedirect,
		Scopes:       constants.GoogleUserInfoScopes,
		Endpoint:     google.Endpoint,
	}

	token, err := conf.Exchange(context.Background(), req.Code)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{constants.JSONKeyError: constants.ErrFailedExchangeToken, constants.JSONKeyDetails: err.Error()})
		return
	}

	client := conf.Client(context.Background(), token)
	resp, err := client.Get(constants.GoogleUserInfoURL)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedGetUserInfo, constants.JSONKeyDetails: err.Error()})
		return
	}
	defer resp.Body.Close()

	userData, err := io.ReadAll(resp.Body)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedGetUserInfo})
		return
	}

	// Parse minimal fields from user info
	var payload map[string]any
	_ = json.Unmarshal(userData, &payload)
	email, _ := payload["email"].(string)
	name, _ := payload["name"].(string)
	if email == "" {
		c.JSON(http.StatusUnauthorized, gin.H{constants.JSONKeyError: constants.ErrNoEmailInGoogleProfile})
		return
	}

	u, err := service.GoogleLogin(h.repo, h.rolls, h.defaults, email, name)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedCreateUser})
		return
	}

	h.respondWithSession(c, http.StatusOK, u)
}

// Logout clears the session cookie. Bearer clients just drop the token.
func (h *AuthHandler) Logout(c *gin.Context) {
	clearSessionCookie(c)
	c.JSON(http.StatusOK, gin.H{constants.JSONKeyMessage: "Logged out"})
}

// respondWithSession mints a session token, sets the cookie and returns the
// token alongside the profile so non-browser clients can use bearer auth.
func (h *AuthHandler) respondWithSession(c *gin.Context, status int, u *game.User) {
	sess, err := createSessionToken(u, sessionTTL)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedCreateSession})
		return
	}
	setSessionCookie(c, sess, sessionTTL)

	profile, err := MarshalIntoSnakeTimestamps(u)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedFetchProfile})
		return
	}
	c.JSON(status, gin.H{"token": sess, "user": profile})
}
