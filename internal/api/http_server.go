package api

import (
	"time"

	"userhub/internal/auth"
	"userhub/internal/config"
	"userhub/internal/model"
	"userhub/internal/service"
)

// HTTPHandler holds the dependencies shared by all HTTP handlers.
type HTTPHandler struct {
	cfg         config.Config
	repo        model.Repository
	authManager *auth.Manager
	users       *service.UserService
}

// NewHTTPHandler creates the HTTP handler and its collaborators.
func NewHTTPHandler(cfg config.Config, repo model.Repository) (*HTTPHandler, error) {
	expiry := time.Duration(cfg.JWTExpirationMinutes) * time.Minute
	authManager, err := auth.NewManager(cfg.JWTSecret, cfg.JWTIssuer, expiry)
	if err != nil {
		return nil, err
	}

	return &HTTPHandler{
		cfg:         cfg,
		repo:        repo,
		authManager: authManager,
		users:       service.NewUserService(repo, authManager),
	}, nil
}
