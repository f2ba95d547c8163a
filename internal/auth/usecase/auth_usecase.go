package usecase

import (
	"crypto/subtle"
	"fmt"
	"time"

	authdomain "taskbot/internal/auth/domain"
	authdto "taskbot/internal/auth/dto"
	"taskbot/pkg/config"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// authUsecase implements AuthUsecase interface
type authUsecase struct {
	username     string
	passwordHash []byte
	secret       []byte
	accessExpiry time.Duration
}

// NewAuthUsecase hashes the configured dashboard password so the plain text is
// not kept in memory.
func NewAuthUsecase(cfg *config.Config) (AuthUsecase, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.DashboardPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash dashboard password: %w", err)
	}
	return &authUsecase{
		username:     cfg.DashboardUser,
		passwordHash: hash,
		secret:       []byte(cfg.JWTSecret),
		accessExpiry: cfg.JWTAccessExpiry,
	}, nil
}

func (u *authUsecase) Login(req *authdto.LoginRequest) (*authdto.TokenResponse, error) {
	if !u.CheckCredentials(req.Username, req.Password) {
		return nil, ErrInvalidCredentials
	}

	token, err := u.generateAccessToken(req.Username)
	if err != nil {
		return nil, err
	}

	return &authdto.TokenResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   int64(u.accessExpiry.Seconds()),
	}, nil
}

func (u *authUsecase) CheckCredentials(username, password string) bool {
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(u.username)) == 1
	passOK := bcrypt.CompareHashAndPassword(u.passwordHash, []byte(password)) == nil
	return userOK && passOK
}

func (u *authUsecase) ValidateToken(tokenString string) (*authdomain.Admin, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		return u.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))

	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidToken
	}

	subject, ok := claims["sub"].(string)
	if !ok || subject != u.username {
		return nil, ErrInvalidToken
	}

	return &authdomain.Admin{Username: subject}, nil
}

func (u *authUsecase) generateAccessToken(username string) (string, error) {
	claims := jwt.MapClaims{
		"sub": username,
		"jti": uuid.New().String(),
		"exp": time.Now().Add(u.accessExpiry).Unix(),
		"iat": time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(u.secret)
}
