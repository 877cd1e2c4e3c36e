// Package authclient calls the auth service's verify-token and check-permission endpoints.
package authclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/AiDinaAgustin/microservice-payroll/internal/pkg/requestctx"
)

const (
	VerifyTokenPath     = "/v1/auth/verify-token"
	CheckPermissionPath = "/v1/auth/check-permission"

	// upstream bodies larger than this are not forwarded
	maxBodySize = 1 << 20
)

// ErrUnavailable is returned when the auth service could not be reached or answered garbage.
var ErrUnavailable = errors.New("auth service unavailable")

// RejectedError carries a non-2xx answer of the auth service.
type RejectedError struct {
	StatusCode  int
	ContentType string
	Body        []byte
}

func (e *RejectedError) Error() string {
	return fmt.Sprintf("auth service rejected request with status %d", e.StatusCode)
}

type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// New returns a client with a bounded per-call timeout. No retries are made.
func New(baseURL string, timeout time.Duration, logger *slog.Logger) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

type envelope struct {
	Status  int             `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type verifyData struct {
	UserID    string `json:"uid"`
	TenantID  string `json:"tenant_id"`
	RoleID    string `json:"role_id"`
	ExpiresAt int64  `json:"exp"`
}

// VerifyToken forwards the Authorization header value to the auth service.
func (c *Client) VerifyToken(ctx context.Context, authorization string) (requestctx.Identity, error) {
	body, err := c.post(ctx, VerifyTokenPath, authorization, nil)
	if err != nil {
		return requestctx.Identity{}, err
	}

	var env envelope
	var data verifyData
	if err := json.Unmarshal(body, &env); err != nil {
		return requestctx.Identity{}, fmt.Errorf("%w: decode verify-token response: %v", ErrUnavailable, err)
	}
	if err := json.Unmarshal(env.Data, &data); err != nil || data.UserID == "" {
		return requestctx.Identity{}, fmt.Errorf("%w: verify-token response carries no identity", ErrUnavailable)
	}

	return requestctx.Identity{
		UserID:   data.UserID,
		TenantID: data.TenantID,
		RoleID:   data.RoleID,
	}, nil
}

type checkPermissionRequest struct {
	Endpoint string `json:"endpoint"`
	Method   string `json:"method"`
}

// CheckPermission asks whether the caller's role may call method on endpoint.
func (c *Client) CheckPermission(ctx context.Context, authorization, endpoint, method string) error {
	payload, err := json.Marshal(checkPermissionRequest{Endpoint: endpoint, Method: method})
	if err != nil {
		return err
	}
	_, err = c.post(ctx, CheckPermissionPath, authorization, payload)
	return err
}

func (c *Client) post(ctx context.Context, path, authorization string, payload []byte) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	req.Header.Set("Authorization", authorization)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.WarnContext(ctx, "auth service call failed", slog.String("path", path), slog.Any("error", err))
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("%w: read response: %v", ErrUnavailable, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &RejectedError{
			StatusCode:  resp.StatusCode,
			ContentType: resp.Header.Get("Content-Type"),
			Body:        body,
		}
	}
	return body, nil
}
