package token

import (
	"errors"
	"strconv"
	"time"

	"agricredit-backend/pkg/clock"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

const issuerName = "agricredit"

type Kind string

const (
	Access  Kind = "access"
	Refresh Kind = "refresh"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrWrongKind    = errors.New("wrong token kind")
)

type Claims struct {
	UserID   uint64 `json:"user_id"`
	Username string `json:"username"`
	Role     string `json:"role"`
	Kind     Kind   `json:"kind"`
	jwt.RegisteredClaims
}

// Pair is what a successful OTP verification hands back to the client.
type Pair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int64  `json:"expires_in"`
}

type Issuer struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
	clock      clock.Clock
}

func NewIssuer(secret string, accessTTL, refreshTTL time.Duration, c clock.Clock) *Issuer {
	if c == nil {
		c = clock.System()
	}
	return &Issuer{secret: []byte(secret), accessTTL: accessTTL, refreshTTL: refreshTTL, clock: c}
}

func (i *Issuer) sign(userID uint64, username, role string, kind Kind, ttl time.Duration) (string, error) {
	now := i.clock.Now()
	claims := Claims{
		UserID:   userID,
		Username: username,
		Role:     role,
		Kind:     kind,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    issuerName,
			Subject:   strconv.FormatUint(userID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
}

func (i *Issuer) IssueAccess(userID uint64, username, role string) (string, error) {
	return i.sign(userID, username, role, Access, i.accessTTL)
}

func (i *Issuer) IssuePair(userID uint64, username, role string) (Pair, error) {
	access, err := i.IssueAccess(userID, username, role)
	if err != nil {
		return Pair{}, err
	}
	refresh, err := i.sign(userID, username, role, Refresh, i.refreshTTL)
	if err != nil {
		return Pair{}, err
	}
	return Pair{
		AccessToken:  access,
		RefreshToken: refresh,
		TokenType:    "Bearer",
		ExpiresIn:    i.AccessTTLSeconds(),
	}, nil
}

func (i *Issuer) AccessTTLSeconds() int64 { return int64(i.accessTTL / time.Second) }

// Parse verifies signature, expiry and that the token is of the wanted kind.
func (i *Issuer) Parse(raw string, want Kind) (*Claims, error) {
	tok, err := jwt.ParseWithClaims(raw, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return i.secret, nil
	})
	if err != nil {
		return nil, errors.Join(ErrInvalidToken, err)
	}
	claims, ok := tok.Claims.(*Claims)
	if !ok || !tok.Valid {
		return nil, ErrInvalidToken
	}
	if claims.Kind != want {
		return nil, ErrWrongKind
	}
	return claims, nil
}
