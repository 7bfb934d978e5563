package helpers

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultSessionTTL is the validity window of a session token and cookie.
const DefaultSessionTTL = 7 * 24 * time.Hour

// SessionManager signs and verifies session tokens.
type SessionManager struct {
	Secret []byte
	TTL    time.Duration
	now    func() time.Time
}

func NewSessionManager(secret string, ttl time.Duration) *SessionManager {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return &SessionManager{Secret: []byte(secret), TTL: ttl, now: time.Now}
}

// SessionClaims is the identity copied into the token at issuance.
type SessionClaims struct {
	UserID   int64  `json:"id"`
	Name     string `json:"name"`
	Username string `json:"username"`
	Email    string `json:"email"`
	jwt.RegisteredClaims
}

// Issue signs the claim set with an expiry of TTL from now.
func (m *SessionManager) Issue(userID int64, name, username, email string) (string, time.Time, error) {
	now := m.now()
	exp := now.Add(m.TTL)
	claims := &SessionClaims{
		UserID:   userID,
		Name:     name,
		Username: username,
		Email:    email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(exp),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	s, err := t.SignedString(m.Secret)
	return s, exp, err
}

// Verify returns the claims of a valid, unexpired token and nil for
// anything else.
func (m *SessionManager) Verify(tokenStr string) *SessionClaims {
	if tokenStr == "" {
		return nil
	}
	claims := &SessionClaims{}
	tkn, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return m.Secret, nil
	}, jwt.WithTimeFunc(m.now), jwt.WithExpirationRequired())
	if err != nil || !tkn.Valid {
		return nil
	}
	return claims
}
