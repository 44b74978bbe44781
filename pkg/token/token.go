// Package token issues and parses the HS256 JWTs handed to users and admins.
package token

import (
	"errors"
	"time"

	"petcare/config"
	"petcare/pkg/metrics"

	"github.com/golang-jwt/jwt/v5"
)

// Kind tells which account table the subject id belongs to.
type Kind string

const (
	KindUser  Kind = "user"
	KindAdmin Kind = "admin"
)

const (
	SubjectAccess  = "access"
	SubjectRefresh = "refresh"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrWrongSubject = errors.New("wrong token type")
)

// Claims 令牌声明
type Claims struct {
	AccountID string `json:"account_id"`
	Kind      Kind   `json:"kind"`
	jwt.RegisteredClaims
}

// Pair is what login and refresh return.
type Pair struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	ExpiresAt    time.Time `json:"expires_at"`
}

type Manager struct {
	secret     []byte
	issuer     string
	accessTTL  time.Duration
	refreshTTL time.Duration
	now        func() time.Time
}

func NewManager(cfg config.JWTConfig) *Manager {
	access := cfg.AccessTTL
	if access <= 0 {
		access = 2 * time.Hour
	}
	refresh := cfg.RefreshTTL
	if refresh <= 0 {
		refresh = 7 * 24 * time.Hour
	}
	return &Manager{
		secret:     []byte(cfg.Secret),
		issuer:     cfg.Issuer,
		accessTTL:  access,
		refreshTTL: refresh,
		now:        time.Now,
	}
}

func (m *Manager) sign(kind Kind, id, subject string, ttl time.Duration) (string, time.Time, error) {
	now := m.now()
	exp := now.Add(ttl)
	claims := &Claims{
		AccountID: id,
		Kind:      kind,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    m.issuer,
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	return signed, exp, err
}

// Issue 生成 access + refresh 令牌对
func (m *Manager) Issue(kind Kind, id string) (*Pair, error) {
	access, exp, err := m.sign(kind, id, SubjectAccess, m.accessTTL)
	if err != nil {
		return nil, err
	}
	refresh, _, err := m.sign(kind, id, SubjectRefresh, m.refreshTTL)
	if err != nil {
		return nil, err
	}
	metrics.TokensIssued.WithLabelValues(string(kind)).Inc()
	return &Pair{AccessToken: access, RefreshToken: refresh, ExpiresAt: exp}, nil
}

// Parse validates signature, expiry and issuer.
func (m *Manager) Parse(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid signing method")
		}
		return m.secret, nil
	}, jwt.WithIssuer(m.issuer), jwt.WithTimeFunc(m.now))
	if err != nil {
		return nil, errors.Join(ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.AccountID == "" {
		return nil, ErrInvalidToken
	}
	if claims.Kind != KindUser && claims.Kind != KindAdmin {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// ParseAccess parses a token that must be an access token of kind.
func (m *Manager) ParseAccess(tokenString string, kind Kind) (*Claims, error) {
	claims, err := m.Parse(tokenString)
	if err != nil {
		return nil, err
	}
	if claims.Subject != SubjectAccess || claims.Kind != kind {
		return nil, ErrWrongSubject
	}
	return claims, nil
}

// Refresh exchanges a refresh token for a new pair of the same kind.
func (m *Manager) Refresh(refreshToken string) (*Claims, *Pair, error) {
	claims, err := m.Parse(refreshToken)
	if err != nil {
		return nil, nil, err
	}
	if claims.Subject != SubjectRefresh {
		return nil, nil, ErrWrongSubject
	}
	pair, err := m.Issue(claims.Kind, claims.AccountID)
	if err != nil {
		return nil, nil, err
	}
	return claims, pair, nil
}
