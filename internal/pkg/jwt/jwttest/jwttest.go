// Package jwttest builds token services backed by throwaway RSA keys.
package jwttest

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"testing"
	"time"

	"github.com/AiDinaAgustin/microservice-payroll/internal/pkg/jwt"
)

// NewService returns a service whose access tokens live for accessExp.
func NewService(t testing.TB, accessExp time.Duration) *jwt.JWTService {
	t.Helper()

	key, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatalf("generate rsa key: %v", err)
	}
	privatePEM := pem.EncodeToMemory(&pem.Block{
		Type:  "RSA PRIVATE KEY",
		Bytes: x509.MarshalPKCS1PrivateKey(key),
	})

	svc, err := jwt.NewJWTService(privatePEM, nil, accessExp, 24*time.Hour)
	if err != nil {
		t.Fatalf("new jwt service: %v", err)
	}
	return svc
}
