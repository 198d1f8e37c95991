package token

import (
	"time"

	"notetaking-be/internal/config"
	"notetaking-be/internal/entity"

	"github.com/golang-jwt/jwt/v5"
)

// Provider issues signed access tokens. It is stateless aside from the
// configured signing secret.
type Provider struct {
	secret     []byte
	issuer     string
	audience   string
	expiration time.Duration
}

func NewProvider(cfg config.JwtConfig) *Provider {
	return &Provider{
		secret:     []byte(cfg.Secret),
		issuer:     cfg.Issuer,
		audience:   cfg.Audience,
		expiration: time.Duration(cfg.ExpirationMinutes) * time.Minute,
	}
}

// Create signs an HS256 token carrying the user's identity. The duplicate
// userId claim exists so middleware can extract the acting user without
// touching registered-claim parsing.
func (p *Provider) Create(user *entity.User) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":      user.Id.String(),
		"email":    user.Email,
		"fullName": user.FullName,
		"userId":   user.Id.String(),
		"iss":      p.issuer,
		"aud":      p.audience,
		"iat":      now.Unix(),
		"exp":      now.Add(p.expiration).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(p.secret)
}
