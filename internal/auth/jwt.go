package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenManager issues and parses HS256 access/refresh token pairs. The two
// token kinds use separate secrets so a leaked refresh secret cannot mint
// access tokens.
type TokenManager struct {
	accessSecret  []byte
	refreshSecret []byte
	issuer        string
	accessTTL     time.Duration
	refreshTTL    time.Duration
}

func NewTokenManager(accessSecret, refreshSecret, issuer string, accessTTL, refreshTTL time.Duration) *TokenManager {
	return &TokenManager{
		accessSecret:  []byte(accessSecret),
		refreshSecret: []byte(refreshSecret),
		issuer:        issuer,
		accessTTL:     accessTTL,
		refreshTTL:    refreshTTL,
	}
}

type Claims struct {
	UserID string `json:"uid"`
	Type   string `json:"typ"` // "access" | "refresh"
	jwt.RegisteredClaims
}

func (tm *TokenManager) GeneratePair(userID string) (access, refresh string, accessExp time.Time, err error) {
	now := time.Now()
	mk := func(typ string, ttl time.Duration, secret []byte) (string, time.Time, error) {
		exp := now.Add(ttl)
		claims := Claims{
			UserID: userID,
			Type:   typ,
			RegisteredClaims: jwt.RegisteredClaims{
				Issuer:    tm.issuer,
				IssuedAt:  jwt.NewNumericDate(now),
				ExpiresAt: jwt.NewNumericDate(exp),
			},
		}
		s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
		return s, exp, err
	}

	access, accessExp, err = mk("access", tm.accessTTL, tm.accessSecret)
	if err != nil {
		return "", "", time.Time{}, err
	}
	refresh, _, err = mk("refresh", tm.refreshTTL, tm.refreshSecret)
	if err != nil {
		return "", "", time.Time{}, err
	}
	return access, refresh, accessExp, nil
}

// ParseAny tries the access secret first, then refresh; the second return
// reports which kind matched.
func (tm *TokenManager) ParseAny(tokenStr string) (*Claims, bool, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (any, error) {
		return tm.accessSecret, nil
	})
	if err == nil && claims.Type == "access" {
		return claims, false, nil
	}

	claims = &Claims{}
	_, err = jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (any, error) {
		return tm.refreshSecret, nil
	})
	if err == nil && claims.Type == "refresh" {
		return claims, true, nil
	}
	return nil, false, errors.New("invalid token")
}
