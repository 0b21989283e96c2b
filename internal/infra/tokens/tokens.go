package tokens

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"rental-app/config"
	"rental-app/internal/domain/access"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

type Kind string

const (
	KindAccess  Kind = "access"
	KindRefresh Kind = "refresh"
)

var (
	ErrInvalid   = errors.New("invalid or expired token")
	ErrWrongKind = errors.New("unexpected token type")
)

type Claims struct {
	UserID uint        `json:"user_id"`
	Email  string      `json:"email"`
	Role   access.Role `json:"role"`
	Type   Kind        `json:"type"`
	jwt.RegisteredClaims
}

// Subject is the identity a token is issued for.
type Subject struct {
	UserID uint
	Email  string
	Role   access.Role
}

type Issuer struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
	now        func() time.Time
}

func NewIssuer(secret string, accessTTL, refreshTTL time.Duration) *Issuer {
	return &Issuer{
		secret:     []byte(secret),
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
		now:        time.Now,
	}
}

// FromConfig builds the issuer from the loaded environment.
func FromConfig() *Issuer {
	return NewIssuer(config.JWT_SECRET, config.ACCESS_TOKEN_TTL, config.REFRESH_TOKEN_TTL)
}

func (i *Issuer) AccessTTL() time.Duration { return i.accessTTL }

// Issue signs a token of the given kind. Every token carries a random jti, so two
// tokens for the same subject issued within the same second still differ.
func (i *Issuer) Issue(kind Kind, s Subject) (string, time.Time, error) {
	if len(i.secret) == 0 {
		return "", time.Time{}, errors.New("JWT secret not configured")
	}
	ttl := i.accessTTL
	if kind == KindRefresh {
		ttl = i.refreshTTL
	}
	now := i.now()
	exp := now.Add(ttl)

	claims := Claims{
		UserID: s.UserID,
		Email:  s.Email,
		Role:   s.Role,
		Type:   kind,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(uint64(s.UserID), 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
			ID:        uuid.NewString(),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign %s token: %w", kind, err)
	}
	return signed, exp, nil
}

// Parse validates signature, expiry and the token type.
func (i *Issuer) Parse(raw string, want Kind) (*Claims, error) {
	var claims Claims
	token, err := jwt.ParseWithClaims(raw, &claims, func(*jwt.Token) (any, error) {
		return i.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(i.now),
	)
	if err != nil || !token.Valid {
		return nil, ErrInvalid
	}
	if claims.Type != want {
		return nil, ErrWrongKind
	}
	return &claims, nil
}
