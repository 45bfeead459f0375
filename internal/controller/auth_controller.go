package controller

import (
	"net/http"

	userApp "github.com/cassiomorais/corebank/internal/application/user"
	"github.com/cassiomorais/corebank/internal/infrastructure/config"
	"github.com/cassiomorais/corebank/internal/middleware"
	"github.com/rs/zerolog/log"
)

// AuthController handles signup and login.
type AuthController struct {
	registerUC *userApp.RegisterUseCase
	authUC     *userApp.AuthenticateUseCase
	authCfg    config.AuthConfig
}

func NewAuthController(registerUC *userApp.RegisterUseCase, authUC *userApp.AuthenticateUseCase, authCfg config.AuthConfig) *AuthController {
	return &AuthController{
		registerUC: registerUC,
		authUC:     authUC,
		authCfg:    authCfg,
	}
}

// Register handles POST /api/v1/auth/register
func (c *AuthController) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := decodeAndValidate(r, &req); err != nil {
		writeError(w, err)
		return
	}

	result, err := c.registerUC.Execute(r.Context(), userApp.RegisterRequest{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	token, err := middleware.IssueToken(c.authCfg.JWTSecret, result.User.ID, c.authCfg.JWTExpiry)
	if err != nil {
		log.Error().Err(err).Msg("Failed to issue token at signup")
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, TokenResponse{
		Token: token,
		User:  FromUser(result.User),
	})
}

// Login handles POST /api/v1/auth/login
func (c *AuthController) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := decodeAndValidate(r, &req); err != nil {
		writeError(w, err)
		return
	}

	u, err := c.authUC.Execute(r.Context(), req.Email, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}

	token, err := middleware.IssueToken(c.authCfg.JWTSecret, u.ID, c.authCfg.JWTExpiry)
	if err != nil {
		log.Error().Err(err).Msg("Failed to issue token at login")
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, TokenResponse{
		Token: token,
		User:  FromUser(u),
	})
}
