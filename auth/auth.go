// Copyright 2025 The NeuroCluster Authors
// SPDX-License-Identifier: Apache-2.0

// Package auth holds the credential model used by the API client: API keys
// sent via the X-API-Key header and bearer JWTs issued by the platform.
package auth

import (
	"fmt"
	"net/http"
	"time"

	"github.com/lestrrat-go/jwx/v3/jwt"
)

// CredentialType identifies how a credential authenticates requests.
type CredentialType string

const (
	CredentialTypeNone   CredentialType = "none"
	CredentialTypeAPIKey CredentialType = "api_key"
	CredentialTypeBearer CredentialType = "bearer"
	CredentialTypeJWT    CredentialType = "jwt"
)

// Credentials is a single authentication credential.
type Credentials struct {
	Type        CredentialType `json:"type"`
	APIKey      string         `json:"api_key,omitempty"`
	AccessToken string         `json:"access_token,omitempty"`
	ExpiresAt   *time.Time     `json:"expires_at,omitempty"`
}

// NewAPIKey returns API-key credentials. Platform keys have no intrinsic
// expiry.
func NewAPIKey(key string) *Credentials {
	return &Credentials{Type: CredentialTypeAPIKey, APIKey: key}
}

// NewBearer returns bearer-token credentials with an optional expiry.
func NewBearer(token string, expiresAt *time.Time) *Credentials {
	return &Credentials{Type: CredentialTypeBearer, AccessToken: token, ExpiresAt: expiresAt}
}

// ParseJWT builds credentials from a platform-issued JWT, extracting the
// expiry from the token's exp claim. The signature is not verified; the
// server does that.
func ParseJWT(tokenString string) (*Credentials, error) {
	token, err := jwt.Parse([]byte(tokenString), jwt.WithValidate(false), jwt.WithVerify(false))
	if err != nil {
		return nil, fmt.Errorf("parse JWT: %w", err)
	}
	creds := &Credentials{
		Type:        CredentialTypeJWT,
		AccessToken: tokenString,
	}
	if exp, ok := token.Expiration(); ok && !exp.IsZero() {
		creds.ExpiresAt = &exp
	}
	return creds, nil
}

// IsExpired reports whether the credential's expiry has passed.
func (c *Credentials) IsExpired() bool {
	if c.ExpiresAt == nil {
		return false
	}
	return time.Now().After(*c.ExpiresAt)
}

// IsValid reports whether the credential can authenticate a request.
func (c *Credentials) IsValid() bool {
	if c.Type == CredentialTypeNone {
		return true
	}
	if c.IsExpired() {
		return false
	}
	switch c.Type {
	case CredentialTypeAPIKey:
		return c.APIKey != ""
	case CredentialTypeBearer, CredentialTypeJWT:
		return c.AccessToken != ""
	default:
		return false
	}
}

// Apply sets the authentication headers for a request. API keys use the
// X-API-Key header; bearer and JWT credentials use Authorization.
func (c *Credentials) Apply(h http.Header) error {
	if !c.IsValid() {
		return fmt.Errorf("credentials of type %s are not valid", c.Type)
	}
	switch c.Type {
	case CredentialTypeNone:
	case CredentialTypeAPIKey:
		h.Set("X-API-Key", c.APIKey)
	case CredentialTypeBearer, CredentialTypeJWT:
		h.Set("Authorization", "Bearer "+c.AccessToken)
	default:
		return fmt.Errorf("unsupported credential type %s", c.Type)
	}
	return nil
}
