package oauth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
)

func newFakeGoogle(t *testing.T, verified bool) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/token", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "the-code", r.Form.Get("code"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"access_token":"at","token_type":"Bearer","expires_in":3600}`))
	})
	mux.HandleFunc("/userinfo", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer at", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		if verified {
			_, _ = w.Write([]byte(`{"id":"g-1","email":"hr@example.com","verified_email":true}`))
			return
		}
		_, _ = w.Write([]byte(`{"id":"g-1","email":"hr@example.com","verified_email":false}`))
	})
	return httptest.NewServer(mux)
}

func newTestService(srv *httptest.Server) *googleServiceImpl {
	return &googleServiceImpl{
		config: &oauth2.Config{
			ClientID:     "client",
			ClientSecret: "secret",
			RedirectURL:  "http://localhost/callback",
			Endpoint: oauth2.Endpoint{
				AuthURL:  srv.URL + "/auth",
				TokenURL: srv.URL + "/token",
			},
		},
		userInfoURL: srv.URL + "/userinfo",
	}
}

func TestIdentify(t *testing.T) {
	srv := newFakeGoogle(t, true)
	defer srv.Close()

	profile, err := newTestService(srv).Identify(context.Background(), "the-code")
	require.NoError(t, err)
	assert.Equal(t, "hr@example.com", profile.Email)
	assert.Equal(t, "g-1", profile.GoogleID)
}

func TestIdentify_UnverifiedEmail(t *testing.T) {
	srv := newFakeGoogle(t, false)
	defer srv.Close()

	_, err := newTestService(srv).Identify(context.Background(), "the-code")
	assert.ErrorIs(t, err, ErrEmailNotVerified)
}

func TestAuthCodeURL_CarriesState(t *testing.T) {
	svc := NewGoogleService("client", "secret", "http://localhost/callback", []string{"email"})

	state, err := svc.NewState()
	require.NoError(t, err)
	require.NotEmpty(t, state)

	u, err := url.Parse(svc.AuthCodeURL(state))
	require.NoError(t, err)
	assert.Equal(t, state, u.Query().Get("state"))
	assert.Equal(t, "client", u.Query().Get("client_id"))
}
