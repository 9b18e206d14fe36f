package jwt

import (
	"errors"
	"sync"
	"time"

	"github.com/Jevon1999/api-presensi/internal/domain/user"
	"github.com/go-chi/jwtauth/v5"
	"github.com/lestrrat-go/jwx/v2/jwt"
)

const (
	TokenTypeAccess = "access"
	TokenTypeSSE    = "sse"

	sseTokenTTL = 5 * time.Minute
)

var ErrWrongTokenType = errors.New("unexpected token type")

type Service interface {
	GenerateAccessToken(u user.User) (token string, expiresAt int64, err error)
	GenerateSSEToken(userID string) (token string, expiresIn int, err error)
	ValidateSSEToken(tokenString string) (userID string, err error)
	JWTAuth() *jwtauth.JWTAuth
	RevokeToken(token string)
	IsTokenRevoked(token string) bool
}

type JWTService struct {
	accessTokenTTL time.Duration
	tokenAuth      *jwtauth.JWTAuth

	mu sync.RWMutex
	// revoked maps a token to its expiry, so entries can be dropped once
	// the token would have been rejected anyway.
	revoked map[string]int64
}

// NewJWTService builds an HS256 signer. accessTokenTTL is a Go duration
// string such as "24h".
func NewJWTService(secretKey string, accessTokenTTL string) (Service, error) {
	ttl, err := time.ParseDuration(accessTokenTTL)
	if err != nil {
		return nil, err
	}
	return &JWTService{
		accessTokenTTL: ttl,
		tokenAuth:      jwtauth.New("HS256", []byte(secretKey), nil, jwt.WithAcceptableSkew(30*time.Second)),
		revoked:        make(map[string]int64),
	}, nil
}

func (j *JWTService) JWTAuth() *jwtauth.JWTAuth {
	return j.tokenAuth
}

func (j *JWTService) GenerateAccessToken(u user.User) (token string, expiresAt int64, err error) {
	expiresAt = time.Now().Add(j.accessTokenTTL).Unix()

	_, tokenString, err := j.tokenAuth.Encode(map[string]interface{}{
		"user_id":  u.ID,
		"email":    u.Email,
		"role":     string(u.Role),
		"is_admin": u.IsAdmin(),
		"type":     TokenTypeAccess,
		"exp":      expiresAt,
	})
	return tokenString, expiresAt, err
}

// GenerateSSEToken issues a short-lived token that EventSource clients pass
// as a query parameter, since browsers cannot set headers on it.
func (j *JWTService) GenerateSSEToken(userID string) (token string, expiresIn int, err error) {
	_, tokenString, err := j.tokenAuth.Encode(map[string]interface{}{
		"user_id": userID,
		"type":    TokenTypeSSE,
		"exp":     time.Now().Add(sseTokenTTL).Unix(),
	})
	if err != nil {
		return "", 0, err
	}
	return tokenString, int(sseTokenTTL.Seconds()), nil
}

func (j *JWTService) ValidateSSEToken(tokenString string) (string, error) {
	token, err := jwtauth.VerifyToken(j.tokenAuth, tokenString)
	if err != nil {
		return "", err
	}

	if tokenType, ok := token.Get("type"); !ok || tokenType != TokenTypeSSE {
		return "", ErrWrongTokenType
	}

	raw, ok := token.Get("user_id")
	if !ok {
		return "", jwt.ErrInvalidJWT()
	}
	userID, ok := raw.(string)
	if !ok || userID == "" {
		return "", jwt.ErrInvalidJWT()
	}
	return userID, nil
}

func (j *JWTService) RevokeToken(token string) {
	expiresAt := time.Now().Add(j.accessTokenTTL).Unix()
	if parsed, err := j.tokenAuth.Decode(token); err == nil && !parsed.Expiration().IsZero() {
		expiresAt = parsed.Expiration().Unix()
	}

	j.mu.Lock()
	defer j.mu.Unlock()
	j.revoked[token] = expiresAt

	now := time.Now().Unix()
	for t, exp := range j.revoked {
		if exp < now {
			delete(j.revoked, t)
		}
	}
}

func (j *JWTService) IsTokenRevoked(token string) bool {
	j.mu.RLock()
	defer j.mu.RUnlock()
	_, revoked := j.revoked[token]
	return revoked
}
