package tokens

import (
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/brewcrew/cafe-backend/internal/models"
)

const AccessTokenTTL = 24 * time.Hour

// AccessClaims carries the admin flag only as a hint for clients. Authorization
// decisions re-read the user row, see internal/middleware/auth.
type AccessClaims struct {
	Admin bool `json:"admin"`
	jwt.RegisteredClaims
}

func SignAccessToken(user *models.User, secret []byte) (string, *AccessClaims, error) {
	exp := time.Now().Add(AccessTokenTTL)
	claims := AccessClaims{
		Admin: user.Admin,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(uint64(user.ID), 10),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString(secret)
	if err != nil {
		return "", nil, err
	}
	return signed, &claims, nil
}

func AccessClaimsFromToken(tokenStr string, secret []byte) (*AccessClaims, error) {
	var claims AccessClaims
	tkn, err := jwt.ParseWithClaims(tokenStr, &claims, func(t *jwt.Token) (any, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, errors.New("unexpected sign method")
		}
		return secret, nil
	})
	if err != nil || !tkn.Valid {
		if err == nil {
			err = errors.New("invalid token")
		}
		return nil, err
	}
	return &claims, nil
}

func (c *AccessClaims) UserID() (uint, error) {
	id, err := strconv.ParseUint(c.Subject, 10, 64)
	if err != nil {
		return 0, errors.New("token has no valid subject")
	}
	return uint(id), nil
}
