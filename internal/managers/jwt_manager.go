package managers

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"server-match/internal/schemas"
	"server-match/internal/utils"
)

// defaultTokenLifetime is the validity window applied when TOKEN_LIFETIME
// is not configured.
const defaultTokenLifetime = 24 * time.Hour

// minSecretLength enforces at least 256 bits of signing key entropy.
const minSecretLength = 32

var errInvalidToken = errors.New("invalid token")

// JWTMgr issues and validates the bearer tokens that prove authentication.
type JWTMgr interface {
	Generate(userID int64, displayName string) (string, error)
	Validate(tokenString string) (*schemas.Principal, error)
	Middleware() gin.HandlerFunc
}

// JWTManager signs identity claims with a process-wide symmetric key, loaded
// once at startup. Rotating the key means constructing a new manager; tokens
// signed under the previous key then fail validation.
type JWTManager struct {
	secret   []byte
	lifetime time.Duration
}

// identityClaims is the exact claim set of a credential token: subject id,
// display name, issued-at and expiry.
type identityClaims struct {
	jwt.RegisteredClaims
	Name string `json:"name"`
}

// NewJWTManager loads the signing key from JWT_SECRET and the validity
// window from TOKEN_LIFETIME. A missing or weak key is a configuration
// error and aborts initialization.
func NewJWTManager() (JWTMgr, error) {
	secret := os.Getenv("JWT_SECRET")
	if len(secret) < minSecretLength {
		return nil, fmt.Errorf("JWT_SECRET must be set and at least %d bytes long", minSecretLength)
	}

	lifetime := defaultTokenLifetime
	if raw := os.Getenv("TOKEN_LIFETIME"); raw != "" {
		parsed, err := time.ParseDuration(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid TOKEN_LIFETIME: %w", err)
		}
		lifetime = parsed
	}

	return NewJWTManagerWithSecret([]byte(secret), lifetime), nil
}

// NewJWTManagerWithSecret constructs a manager for an explicit key and
// validity window. Used by tests and by key rotation.
func NewJWTManagerWithSecret(secret []byte, lifetime time.Duration) JWTMgr {
	return &JWTManager{secret: secret, lifetime: lifetime}
}

// Generate signs a token carrying the user's stable id and display name,
// valid from now until now plus the configured lifetime.
func (jm *JWTManager) Generate(userID int64, displayName string) (string, error) {
	now := time.Now()
	claims := identityClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(userID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(jm.lifetime)),
		},
		Name: displayName,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS512, claims)
	return token.SignedString(jm.secret)
}

// Validate checks signature, expiry and the presence of both identity claims
// and reconstructs the principal. Every failure collapses into a single
// error; callers must not reveal which check failed.
func (jm *JWTManager) Validate(tokenString string) (*schemas.Principal, error) {
	claims := &identityClaims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return jm.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS512.Alg()}), jwt.WithExpirationRequired())
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, errInvalidToken
	}

	if claims.Subject == "" || claims.Name == "" {
		return nil, errInvalidToken
	}
	userID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil {
		return nil, errInvalidToken
	}

	return &schemas.Principal{UserID: userID, DisplayName: claims.Name}, nil
}

// Middleware guards a route group with bearer authentication. On success the
// principal is stored in the request context; on any failure the request is
// aborted with the uniform Unauthorized error.
func (jm *JWTManager) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			utils.WriteAndLogError(c, schemas.Unauthorized, http.StatusUnauthorized, errInvalidToken)
			return
		}

		principal, err := jm.Validate(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			utils.WriteAndLogError(c, schemas.Unauthorized, http.StatusUnauthorized, err)
			return
		}

		c.Set(utils.ClaimsKey.String(), principal)
		c.Next()
	}
}
