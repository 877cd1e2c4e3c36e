package authclient

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestVerifyToken_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, VerifyTokenPath, r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":200,"message":"Token is valid","data":{"uid":"u1","tenant_id":"t1","role_id":"r1","exp":1900000000}}`))
	}))
	defer srv.Close()

	c := New(srv.URL+"/", time.Second, discardLogger())
	id, err := c.VerifyToken(context.Background(), "Bearer tok")
	require.NoError(t, err)
	assert.Equal(t, "u1", id.UserID)
	assert.Equal(t, "t1", id.TenantID)
	assert.Equal(t, "r1", id.RoleID)
}

func TestVerifyToken_RejectionCarriesUpstreamBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"status":401,"message":"Token has expired"}`))
	}))
	defer srv.Close()

	c := New(srv.URL, time.Second, discardLogger())
	_, err := c.VerifyToken(context.Background(), "Bearer tok")

	var rejected *RejectedError
	require.True(t, errors.As(err, &rejected))
	assert.Equal(t, http.StatusUnauthorized, rejected.StatusCode)
	assert.JSONEq(t, `{"status":401,"message":"Token has expired"}`, string(rejected.Body))
}

func TestVerifyToken_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	c := New(url, time.Second, discardLogger())
	_, err := c.VerifyToken(context.Background(), "Bearer tok")
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestCheckPermission_Timeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
	}))
	defer srv.Close()
	defer close(release)

	c := New(srv.URL, 50*time.Millisecond, discardLogger())
	err := c.CheckPermission(context.Background(), "Bearer tok", "/v1/employees", http.MethodGet)
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestCheckPermission_SendsEndpointAndMethod(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, CheckPermissionPath, r.URL.Path)
		var body checkPermissionRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		if body.Endpoint == "/v1/employees/:id" && body.Method == http.MethodDelete {
			w.WriteHeader(http.StatusForbidden)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := New(srv.URL, time.Second, discardLogger())
	require.NoError(t, c.CheckPermission(context.Background(), "Bearer tok", "/v1/employees", http.MethodGet))

	err := c.CheckPermission(context.Background(), "Bearer tok", "/v1/employees/:id", http.MethodDelete)
	var rejected *RejectedError
	require.True(t, errors.As(err, &rejected))
	assert.Equal(t, http.StatusForbidden, rejected.StatusCode)
}
