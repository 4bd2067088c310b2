package session

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"hrms/internal/domain/auth"
	"hrms/internal/platform/crypto"
)

type principalClaims struct {
	auth.Principal
	jwt.RegisteredClaims
}

// Codec signs the principal slot and seals the credential slot.
type Codec struct {
	secret []byte
	sealer *crypto.Sealer
	ttl    time.Duration
	now    func() time.Time
}

func NewCodec(secret string, sealer *crypto.Sealer, ttl time.Duration) *Codec {
	return &Codec{secret: []byte(secret), sealer: sealer, ttl: ttl, now: time.Now}
}

func (c *Codec) EncodePrincipal(p auth.Principal) (string, error) {
	now := c.now()
	claims := principalClaims{
		Principal: p,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   p.Email,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(c.secret)
}

func (c *Codec) DecodePrincipal(raw string) (auth.Principal, error) {
	token, err := jwt.ParseWithClaims(raw, &principalClaims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return c.secret, nil
	}, jwt.WithTimeFunc(c.now))
	if err != nil {
		return auth.Principal{}, err
	}
	claims, ok := token.Claims.(*principalClaims)
	if !ok || !token.Valid {
		return auth.Principal{}, errors.New("invalid token")
	}
	return claims.Principal, nil
}

func (c *Codec) SealCredential(token string) (string, error) {
	return c.sealer.Seal(token)
}

func (c *Codec) OpenCredential(sealed string) (string, error) {
	return c.sealer.Open(sealed)
}
