package utils

import (
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/yeremiapane/jobportal-app/models"
)

const tokenIssuer = "JobPortal"

// CustomClaims carries the permission snapshot taken when the token was
// issued. Authorization trusts this snapshot until the token expires, so a
// role edited afterwards only takes effect on the next login.
type CustomClaims struct {
	UserID      uint                    `json:"user_id"`
	Username    string                  `json:"username"`
	Role        string                  `json:"role"`
	Permissions models.PermissionMatrix `json:"permissions"`
	jwt.RegisteredClaims
}

type TokenIssuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenIssuer(secret string, ttl time.Duration) *TokenIssuer {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &TokenIssuer{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// Issue signs a token for user with a copy of role's current permissions.
func (t *TokenIssuer) Issue(user models.User, role models.Role) (string, error) {
	now := t.now()
	claims := &CustomClaims{
		UserID:      user.ID,
		Username:    user.Username,
		Role:        role.Name,
		Permissions: role.Matrix().Clone(),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(uint64(user.ID), 10),
			ExpiresAt: jwt.NewNumericDate(now.Add(t.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    tokenIssuer,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(t.secret)
	if err != nil {
		return "", err
	}
	return signed, nil
}

func (t *TokenIssuer) Parse(tokenString string) (*CustomClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &CustomClaims{}, func(token *jwt.Token) (interface{}, error) {
		return t.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(tokenIssuer),
		jwt.WithTimeFunc(t.now),
	)
	if err != nil || !token.Valid {
		return nil, errors.New("invalid or expired token")
	}

	claims, ok := token.Claims.(*CustomClaims)
	if !ok || claims.UserID == 0 {
		return nil, errors.New("invalid token claims")
	}
	return claims, nil
}
