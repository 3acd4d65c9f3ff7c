package backend

import (
	"fmt"

	"github.com/golang-jwt/jwt/v5"

	"github.com/ericfisherdev/sessionpanel/internal/domain/model"
	"github.com/ericfisherdev/sessionpanel/internal/domain/port/driven"
)

var _ driven.TokenInspector = JWTInspector{}

// JWTInspector reads the subject and expiry of a JWT access token without
// verifying its signature. The result is for display only.
type JWTInspector struct{}

// Inspect decodes the claims of token. Opaque (non-JWT) tokens return an error.
func (JWTInspector) Inspect(token string) (model.TokenInfo, error) {
	claims := jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return model.TokenInfo{}, fmt.Errorf("decoding access token claims: %w", err)
	}

	info := model.TokenInfo{Subject: claims.Subject}
	if claims.ExpiresAt != nil {
		info.ExpiresAt = claims.ExpiresAt.Time
	}
	return info, nil
}
