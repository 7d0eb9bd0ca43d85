package service

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"go-recipe-box/internal/model"
	"go-recipe-box/internal/repository"
	"go-recipe-box/pkg/apierror"
)

const bcryptCost = 10

type AuthService struct {
	users     *repository.UserRepository
	jwtSecret []byte
	tokenTTL  time.Duration
}

func NewAuthService(jwtSecret string, tokenTTL time.Duration, users *repository.UserRepository) (*AuthService, error) {
	if strings.TrimSpace(jwtSecret) == "" {
		return nil, apierror.New("CONFIG_ERROR", "jwt secret is required", "", http.StatusInternalServerError)
	}
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}

	return &AuthService{
		users:     users,
		jwtSecret: []byte(jwtSecret),
		tokenTTL:  tokenTTL,
	}, nil
}

// Register creates a new user. The username must not already exist;
// the comparison is a case-sensitive exact match.
func (s *AuthService) Register(ctx context.Context, username string, password string) error {
	if username == "" || password == "" {
		return apierror.New("BAD_REQUEST", "username and password are required", "", http.StatusBadRequest)
	}

	exists, err := s.users.ExistsByUsername(ctx, username)
	if err != nil {
		return err
	}
	if exists {
		return apierror.New("ALREADY_EXISTS", "Username already exists", username, http.StatusConflict)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return err
	}

	// The unique index still backstops the exists check if two
	// registrations race; the repository reports that as a conflict.
	if _, err := s.users.Create(ctx, username, string(hash)); err != nil {
		return err
	}
	return nil
}

// Login verifies credentials and issues a signed token. Unknown
// username and wrong password return the same error so the endpoint
// cannot be used to enumerate accounts.
func (s *AuthService) Login(ctx context.Context, username string, password string) (model.LoginResult, error) {
	if username == "" || password == "" {
		return model.LoginResult{}, apierror.New("BAD_REQUEST", "username and password are required", "", http.StatusBadRequest)
	}

	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		// Only an absent user reads as bad credentials; a store
		// failure stays a store failure and surfaces as 500.
		var apiErr *apierror.APIError
		if errors.As(err, &apiErr) && apiErr.HTTPStatus == http.StatusNotFound {
			return model.LoginResult{}, invalidCredentials()
		}
		return model.LoginResult{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return model.LoginResult{}, invalidCredentials()
	}

	token, err := s.issueToken(user)
	if err != nil {
		return model.LoginResult{}, err
	}

	return model.LoginResult{Token: token, UserID: user.ID}, nil
}

// ValidateToken checks signature and expiry and returns the identity
// claims. Any failure reads as the same invalid-token error.
func (s *AuthService) ValidateToken(tokenString string) (*model.AuthClaims, error) {
	parsed, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, apierror.New("FORBIDDEN", "Invalid or expired token", "", http.StatusForbidden)
		}
		return s.jwtSecret, nil
	})
	if err != nil || !parsed.Valid {
		return nil, apierror.New("FORBIDDEN", "Invalid or expired token", "", http.StatusForbidden)
	}

	claimsMap, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return nil, apierror.New("FORBIDDEN", "Invalid or expired token", "", http.StatusForbidden)
	}

	// JSON numbers decode as float64.
	rawUserID, ok := claimsMap["userId"].(float64)
	if !ok {
		return nil, apierror.New("FORBIDDEN", "Invalid or expired token", "", http.StatusForbidden)
	}

	claims := &model.AuthClaims{UserID: int64(rawUserID)}
	claims.Username, _ = claimsMap["username"].(string)
	return claims, nil
}

func (s *AuthService) issueToken(user model.User) (string, error) {
	now := time.Now().UTC()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"userId":   user.ID,
		"username": user.Username,
		"iat":      now.Unix(),
		"exp":      now.Add(s.tokenTTL).Unix(),
	})
	return token.SignedString(s.jwtSecret)
}

func invalidCredentials() *apierror.APIError {
	return apierror.New("UNAUTHORIZED", "Invalid credentials", "", http.StatusUnauthorized)
}
