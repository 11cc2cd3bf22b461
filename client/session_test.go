package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeAuthServer, login/refresh endpoint'lerini ve token kontrollü
// korumalı bir endpoint'i taklit eder.
type fakeAuthServer struct {
	*httptest.Server

	mu           sync.Mutex
	currentToken string
	tokenSeq     int

	refreshHits  atomic.Int64
	refreshDelay time.Duration
	refreshFails atomic.Bool
}

func newFakeAuthServer(t *testing.T) *fakeAuthServer {
	t.Helper()

	s := &fakeAuthServer{}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/auth/login", func(w http.ResponseWriter, r *http.Request) {
		http.SetCookie(w, &http.Cookie{
			Name: "refresh_token", Value: "rt-1", Path: "/api/auth", HttpOnly: true,
		})
		s.writeTokenResponse(w)
	})
	mux.HandleFunc("POST /api/auth/refresh", func(w http.ResponseWriter, r *http.Request) {
		s.refreshHits.Add(1)
		time.Sleep(s.refreshDelay)

		if s.refreshFails.Load() {
			w.WriteHeader(http.StatusForbidden)
			json.NewEncoder(w).Encode(map[string]any{"success": false, "error": "refresh token revoked or unknown"})
			return
		}
		s.writeTokenResponse(w)
	})
	mux.HandleFunc("GET /api/clients", func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		ok := r.Header.Get("Authorization") == "Bearer "+s.currentToken
		s.mu.Unlock()

		if !ok {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(map[string]any{"success": false, "error": "invalid access token"})
			return
		}
		json.NewEncoder(w).Encode(map[string]any{"success": true, "data": []any{}})
	})

	s.Server = httptest.NewServer(mux)
	t.Cleanup(s.Close)
	return s
}

// writeTokenResponse, yeni bir token üretip login/refresh yanıtı yazar.
func (s *fakeAuthServer) writeTokenResponse(w http.ResponseWriter) {
	s.mu.Lock()
	s.tokenSeq++
	s.currentToken = fmt.Sprintf("token-%d", s.tokenSeq)
	tok := s.currentToken
	s.mu.Unlock()

	json.NewEncoder(w).Encode(map[string]any{
		"success": true,
		"data": map[string]any{
			"token":      tok,
			"expires_in": 900,
			"user":       map[string]any{"id": "u1", "email": "olga@salon.ru", "role": "reception"},
		},
	})
}

func (s *fakeAuthServer) token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.currentToken
}

func newTestClient(t *testing.T, srv *fakeAuthServer) *Client {
	t.Helper()
	c, err := New(srv.URL)
	require.NoError(t, err)
	t.Cleanup(c.Close)
	return c
}

func TestLogin_StoresToken(t *testing.T) {
	srv := newFakeAuthServer(t)
	c := newTestClient(t, srv)

	assert.False(t, c.IsAuthenticated())

	user, err := c.Login(context.Background(), "olga@salon.ru", "secret123")
	require.NoError(t, err)
	assert.Equal(t, "olga@salon.ru", user.Email)
	assert.True(t, c.IsAuthenticated())
	assert.Equal(t, srv.token(), c.session.token())

	cached := c.CurrentUser()
	require.NotNil(t, cached)
	assert.Equal(t, "olga@salon.ru", cached.Email)
}

func TestLogin_InvalidCredentials(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/auth/login", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]any{"success": false, "error": "invalid email or password"})
	})
	bad := httptest.NewServer(mux)
	t.Cleanup(bad.Close)

	c, err := New(bad.URL)
	require.NoError(t, err)
	t.Cleanup(c.Close)

	_, err = c.Login(context.Background(), "olga@salon.ru", "wrong")
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
	assert.False(t, c.IsAuthenticated())
}

func TestDo_RetriesOnceAfterRefresh(t *testing.T) {
	srv := newFakeAuthServer(t)
	c := newTestClient(t, srv)

	_, err := c.Login(context.Background(), "olga@salon.ru", "secret123")
	require.NoError(t, err)

	// Token'ı server tarafında geçersiz kıl — bir sonraki istek 401 yer,
	// client refresh edip BİR kez tekrar denemeli.
	c.session.set("stale-token", 15*time.Minute)

	var out []any
	err = c.GetJSON(context.Background(), "/api/clients", &out)
	require.NoError(t, err)
	assert.Equal(t, int64(1), srv.refreshHits.Load())
	assert.Equal(t, srv.token(), c.session.token())
}

func TestDo_SessionExpiredCallback(t *testing.T) {
	srv := newFakeAuthServer(t)
	c := newTestClient(t, srv)

	_, err := c.Login(context.Background(), "olga@salon.ru", "secret123")
	require.NoError(t, err)

	var expired atomic.Bool
	c.OnSessionExpired = func() { expired.Store(true) }

	// Refresh artık reddediliyor (token revoke edilmiş gibi)
	srv.refreshFails.Store(true)
	c.session.set("stale-token", 15*time.Minute)

	err = c.GetJSON(context.Background(), "/api/clients", nil)
	require.Error(t, err)
	assert.True(t, expired.Load())
	assert.False(t, c.IsAuthenticated())
}

// Paralel refresh çağrıları singleflight ile tek HTTP isteğine iner —
// refresh token rotation'da replay riski yaratmamak için kritik.
func TestRefresh_SingleFlight(t *testing.T) {
	srv := newFakeAuthServer(t)
	srv.refreshDelay = 100 * time.Millisecond
	c := newTestClient(t, srv)

	_, err := c.Login(context.Background(), "olga@salon.ru", "secret123")
	require.NoError(t, err)
	srv.refreshHits.Store(0)

	const n = 10
	start := make(chan struct{})
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			assert.NoError(t, c.session.refresh(context.Background()))
		}()
	}
	close(start)
	wg.Wait()

	assert.Equal(t, int64(1), srv.refreshHits.Load(),
		"concurrent refreshes must collapse into a single request")
	assert.Equal(t, srv.token(), c.session.token())
}

func TestSession_NeedsRenewal(t *testing.T) {
	s := &session{stop: make(chan struct{})}

	// Token yokken yenileme tetiklenmez
	assert.False(t, s.needsRenewal())

	s.set("tok", 10*time.Minute)
	assert.False(t, s.needsRenewal())

	s.set("tok", 30*time.Second)
	assert.True(t, s.needsRenewal())

	s.clear()
	assert.False(t, s.needsRenewal())
}
