package usecase

import (
	"errors"

	authdomain "taskbot/internal/auth/domain"
	authdto "taskbot/internal/auth/dto"
)

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrInvalidToken       = errors.New("invalid token")
)

// AuthUsecase guards the dashboard with the fixed admin credentials
type AuthUsecase interface {
	// Login exchanges the admin credentials for an access token
	Login(req *authdto.LoginRequest) (*authdto.TokenResponse, error)

	// CheckCredentials verifies a username/password pair (HTTP Basic auth)
	CheckCredentials(username, password string) bool

	// ValidateToken parses an access token issued by Login
	ValidateToken(token string) (*authdomain.Admin, error)
}
