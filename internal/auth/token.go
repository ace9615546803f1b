package auth

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const issuer = "painel-comissoes"

// Claims do access token (inclui RBAC simples: IsAdmin)
type Claims struct {
	UserID  uint `json:"userId"`
	IsAdmin bool `json:"isAdmin"`
	jwt.RegisteredClaims
}

// Emissor assina e valida access tokens HS256.
type Emissor struct {
	segredo   []byte
	AccessTTL time.Duration
	agora     func() time.Time
}

func NovoEmissor(segredo string, accessTTL time.Duration) *Emissor {
	if accessTTL <= 0 {
		accessTTL = 15 * time.Minute
	}
	return &Emissor{segredo: []byte(segredo), AccessTTL: accessTTL, agora: time.Now}
}

// GerarAccessToken gera um JWT com iss, sub, iat, nbf, exp e jti.
func (e *Emissor) GerarAccessToken(userID uint, isAdmin bool) (string, error) {
	if len(e.segredo) == 0 {
		return "", errors.New("segredo JWT não configurado")
	}
	now := e.agora()
	claims := &Claims{
		UserID:  userID,
		IsAdmin: isAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   strconv.FormatUint(uint64(userID), 10),
			ExpiresAt: jwt.NewNumericDate(now.Add(e.AccessTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now.Add(-1 * time.Minute)),
			ID:        uuid.NewString(),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(e.segredo)
}

// Validar confere assinatura, emissor e validade e retorna as claims.
func (e *Emissor) Validar(tokenStr string) (*Claims, error) {
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(e.agora),
	)
	tok, err := parser.ParseWithClaims(tokenStr, &Claims{}, func(*jwt.Token) (interface{}, error) {
		return e.segredo, nil
	})
	if err != nil {
		return nil, fmt.Errorf("token inválido ou expirado: %w", err)
	}
	c, ok := tok.Claims.(*Claims)
	if !ok || !tok.Valid {
		return nil, errors.New("claims inválidas")
	}
	return c, nil
}
