package jwttoken

import (
	authmw "vkyc/pkg/platform/middleware/auth"
)

// MiddlewareAdapter exposes JWTService through the auth middleware's
// TokenValidator interface.
type MiddlewareAdapter struct {
	service *JWTService
}

func NewMiddlewareAdapter(service *JWTService) *MiddlewareAdapter {
	return &MiddlewareAdapter{service: service}
}

func (a *MiddlewareAdapter) ValidateToken(tokenString string) (*authmw.AgentClaims, error) {
	claims, err := a.service.ValidateToken(tokenString)
	if err != nil {
		return nil, err
	}
	return &authmw.AgentClaims{AgentID: claims.AgentID, Name: claims.Name}, nil
}
