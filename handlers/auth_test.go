package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/dmarchuk/salonio/database"
	"github.com/dmarchuk/salonio/handlers"
	"github.com/dmarchuk/salonio/middleware"
	"github.com/dmarchuk/salonio/models"
	"github.com/dmarchuk/salonio/pkg/email"
	"github.com/dmarchuk/salonio/pkg/ratelimit"
	"github.com/dmarchuk/salonio/pkg/token"
	"github.com/dmarchuk/salonio/repository"
	"github.com/dmarchuk/salonio/services"
)

const (
	testEmail    = "olga@salon.ru"
	testPassword = "secret123"
)

type authServer struct {
	*httptest.Server
	userRepo repository.UserRepository
	user     *models.User
}

// newAuthServer, auth endpoint'lerini gerçek service + repository
// katmanıyla ayağa kaldırır. Sadece DB in-memory'dir — HTTP yüzeyi
// production'dakiyle aynıdır.
func newAuthServer(t *testing.T, limiter *ratelimit.LoginRateLimiter) *authServer {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	db, err := database.New(fmt.Sprintf("file:%s?mode=memory&cache=shared", name), database.Migrations())
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	codec, err := token.NewCodec("test-secret", "", 15*time.Minute, 7*24*time.Hour)
	require.NoError(t, err)

	userRepo := repository.NewSQLiteUserRepo(db.Conn)
	authSvc := services.NewAuthService(
		userRepo,
		repository.NewMemoryRefreshTokenRepo(),
		repository.NewSQLiteResetTokenRepo(db.Conn),
		codec,
		email.NewLogSender(),
	)

	hash, err := bcrypt.GenerateFromPassword([]byte(testPassword), bcrypt.MinCost)
	require.NoError(t, err)
	user := &models.User{
		Email:        testEmail,
		Name:         "Ольга",
		Role:         models.RoleReception,
		PasswordHash: string(hash),
	}
	require.NoError(t, userRepo.Create(context.Background(), user))

	authHandler := handlers.NewAuthHandler(authSvc, limiter, false)
	authMw := middleware.NewAuthMiddleware(authSvc)

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/auth/login", authHandler.Login)
	mux.HandleFunc("POST /api/auth/refresh", authHandler.Refresh)
	mux.HandleFunc("POST /api/auth/logout", authHandler.Logout)
	mux.Handle("GET /api/auth/me", authMw.Require(http.HandlerFunc(authHandler.Me)))
	mux.Handle("POST /api/auth/change-password", authMw.Require(http.HandlerFunc(authHandler.ChangePassword)))

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	return &authServer{Server: srv, userRepo: userRepo, user: user}
}

// jarClient, refresh cookie'sini tarayıcı gibi taşıyan client.
func jarClient(t *testing.T) *http.Client {
	t.Helper()
	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return &http.Client{Jar: jar}
}

func postJSON(t *testing.T, c *http.Client, url string, body any) *http.Response {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	resp, err := c.Post(url, "application/json", bytes.NewReader(raw))
	require.NoError(t, err)
	return resp
}

func decodeData(t *testing.T, resp *http.Response, out any) {
	t.Helper()
	defer resp.Body.Close()

	var env struct {
		Success bool            `json:"success"`
		Data    json.RawMessage `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	require.True(t, env.Success)
	require.NoError(t, json.Unmarshal(env.Data, out))
}

type loginData struct {
	Token     string      `json:"token"`
	ExpiresIn int64       `json:"expires_in"`
	User      models.User `json:"user"`
}

func login(t *testing.T, c *http.Client, baseURL string) loginData {
	t.Helper()
	resp := postJSON(t, c, baseURL+"/api/auth/login", map[string]string{
		"email": testEmail, "password": testPassword,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var data loginData
	decodeData(t, resp, &data)
	return data
}

func refreshCookie(resp *http.Response) *http.Cookie {
	for _, c := range resp.Cookies() {
		if c.Name == "refresh_token" {
			return c
		}
	}
	return nil
}

func TestLogin_SetsRefreshCookie(t *testing.T) {
	srv := newAuthServer(t, nil)

	resp := postJSON(t, http.DefaultClient, srv.URL+"/api/auth/login", map[string]string{
		"email": testEmail, "password": testPassword,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	cookie := refreshCookie(resp)
	require.NotNil(t, cookie, "login must set refresh_token cookie")
	assert.True(t, cookie.HttpOnly)
	assert.Equal(t, "/api/auth", cookie.Path)
	assert.Equal(t, http.SameSiteStrictMode, cookie.SameSite)
	assert.NotEmpty(t, cookie.Value)
	assert.Greater(t, cookie.MaxAge, 0)

	var data loginData
	decodeData(t, resp, &data)
	assert.NotEmpty(t, data.Token)
	assert.Equal(t, int64(900), data.ExpiresIn)
	assert.Equal(t, testEmail, data.User.Email)
}

func TestLogin_InvalidCredentials(t *testing.T) {
	srv := newAuthServer(t, nil)

	resp := postJSON(t, http.DefaultClient, srv.URL+"/api/auth/login", map[string]string{
		"email": testEmail, "password": "wrong-pass",
	})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Nil(t, refreshCookie(resp))
}

func TestLogin_RateLimit(t *testing.T) {
	limiter := ratelimit.NewLoginRateLimiter(3, time.Minute)
	t.Cleanup(limiter.Close)
	srv := newAuthServer(t, limiter)

	bad := map[string]string{"email": testEmail, "password": "wrong-pass"}
	for i := 0; i < 3; i++ {
		resp := postJSON(t, http.DefaultClient, srv.URL+"/api/auth/login", bad)
		resp.Body.Close()
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	}

	resp := postJSON(t, http.DefaultClient, srv.URL+"/api/auth/login", bad)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get("Retry-After"))
}

func TestRefresh_WithoutCookie(t *testing.T) {
	srv := newAuthServer(t, nil)

	resp := postJSON(t, http.DefaultClient, srv.URL+"/api/auth/refresh", nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestRefresh_RotatesToken(t *testing.T) {
	srv := newAuthServer(t, nil)
	c := jarClient(t)

	loginResp := postJSON(t, c, srv.URL+"/api/auth/login", map[string]string{
		"email": testEmail, "password": testPassword,
	})
	require.Equal(t, http.StatusOK, loginResp.StatusCode)
	oldCookie := refreshCookie(loginResp)
	require.NotNil(t, oldCookie)
	loginResp.Body.Close()

	// Jar'daki cookie ile refresh → yeni access token + yeni cookie
	resp := postJSON(t, c, srv.URL+"/api/auth/refresh", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	newCookie := refreshCookie(resp)
	require.NotNil(t, newCookie)
	assert.NotEqual(t, oldCookie.Value, newCookie.Value)

	var data loginData
	decodeData(t, resp, &data)
	assert.NotEmpty(t, data.Token)

	// Rotate edilmiş ESKİ cookie'nin replay'i reddedilir
	req, err := http.NewRequest(http.MethodPost, srv.URL+"/api/auth/refresh", nil)
	require.NoError(t, err)
	req.AddCookie(&http.Cookie{Name: "refresh_token", Value: oldCookie.Value})

	replayResp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer replayResp.Body.Close()
	assert.Equal(t, http.StatusForbidden, replayResp.StatusCode)

	// Reddedilen istekte cookie temizlenir
	cleared := refreshCookie(replayResp)
	require.NotNil(t, cleared)
	assert.Empty(t, cleared.Value)
	assert.Negative(t, cleared.MaxAge)
}

func TestRefresh_SuccessiveRotations(t *testing.T) {
	srv := newAuthServer(t, nil)
	c := jarClient(t)

	// Tam oturum yaşam döngüsü: login → iki ardışık refresh, her biri
	// yeni cookie üretir; zincirdeki ESKİ cookie'ler kullanılamaz olur.
	loginResp := postJSON(t, c, srv.URL+"/api/auth/login", map[string]string{
		"email": testEmail, "password": testPassword,
	})
	require.Equal(t, http.StatusOK, loginResp.StatusCode)
	cookie0 := refreshCookie(loginResp)
	require.NotNil(t, cookie0)
	loginResp.Body.Close()

	resp1 := postJSON(t, c, srv.URL+"/api/auth/refresh", nil)
	require.Equal(t, http.StatusOK, resp1.StatusCode)
	cookie1 := refreshCookie(resp1)
	require.NotNil(t, cookie1)
	var data1 loginData
	decodeData(t, resp1, &data1)
	assert.NotEmpty(t, data1.Token)

	// İkinci refresh, jar'daki rotate edilmiş cookie ile — yine başarılı
	resp2 := postJSON(t, c, srv.URL+"/api/auth/refresh", nil)
	require.Equal(t, http.StatusOK, resp2.StatusCode)
	cookie2 := refreshCookie(resp2)
	require.NotNil(t, cookie2)
	var data2 loginData
	decodeData(t, resp2, &data2)
	assert.NotEmpty(t, data2.Token)

	// Her rotation yeni bir refresh token üretmiştir
	assert.NotEqual(t, cookie0.Value, cookie1.Value)
	assert.NotEqual(t, cookie1.Value, cookie2.Value)

	// Zincirdeki tüm eski cookie'ler replay'de reddedilir
	for _, stale := range []*http.Cookie{cookie0, cookie1} {
		req, err := http.NewRequest(http.MethodPost, srv.URL+"/api/auth/refresh", nil)
		require.NoError(t, err)
		req.AddCookie(&http.Cookie{Name: "refresh_token", Value: stale.Value})

		replayResp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		replayResp.Body.Close()
		assert.Equal(t, http.StatusForbidden, replayResp.StatusCode)
	}

	// Güncel access token korunan endpoint'te çalışır
	req, err := http.NewRequest(http.MethodGet, srv.URL+"/api/auth/me", nil)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+data2.Token)
	meResp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer meResp.Body.Close()
	assert.Equal(t, http.StatusOK, meResp.StatusCode)
}

func TestLogout(t *testing.T) {
	srv := newAuthServer(t, nil)
	c := jarClient(t)

	login(t, c, srv.URL)

	resp := postJSON(t, c, srv.URL+"/api/auth/logout", nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	cleared := refreshCookie(resp)
	require.NotNil(t, cleared)
	assert.Negative(t, cleared.MaxAge)

	// Logout sonrası refresh artık çalışmaz (jar cookie'yi sildi → 401)
	refreshResp := postJSON(t, c, srv.URL+"/api/auth/refresh", nil)
	defer refreshResp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, refreshResp.StatusCode)
}

func TestLogout_WithoutCookie(t *testing.T) {
	srv := newAuthServer(t, nil)

	resp := postJSON(t, http.DefaultClient, srv.URL+"/api/auth/logout", nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
}

func TestMe(t *testing.T) {
	srv := newAuthServer(t, nil)
	c := jarClient(t)
	data := login(t, c, srv.URL)

	req, err := http.NewRequest(http.MethodGet, srv.URL+"/api/auth/me", nil)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+data.Token)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var user models.User
	decodeData(t, resp, &user)
	assert.Equal(t, testEmail, user.Email)
}

func TestMe_AuthFailures(t *testing.T) {
	srv := newAuthServer(t, nil)

	// Header yok → 401
	resp, err := http.Get(srv.URL + "/api/auth/me")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	// Geçersiz token → 403
	req, err := http.NewRequest(http.MethodGet, srv.URL+"/api/auth/me", nil)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer garbage")
	resp, err = http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestMe_DeletedUser(t *testing.T) {
	srv := newAuthServer(t, nil)
	c := jarClient(t)
	data := login(t, c, srv.URL)

	require.NoError(t, srv.userRepo.Delete(context.Background(), srv.user.ID))

	// Access token imza olarak hâlâ geçerli — ama kullanıcı yok: 404.
	// Client bunu oturum kapatma sinyali olarak yorumlar.
	req, err := http.NewRequest(http.MethodGet, srv.URL+"/api/auth/me", nil)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+data.Token)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestChangePassword_RevokesSessions(t *testing.T) {
	srv := newAuthServer(t, nil)
	c := jarClient(t)
	data := login(t, c, srv.URL)

	req, err := http.NewRequest(http.MethodPost, srv.URL+"/api/auth/change-password",
		bytes.NewReader([]byte(`{"current_password":"secret123","new_password":"newsecret456"}`)))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+data.Token)

	resp, err := c.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	// Eski refresh cookie artık geçersiz — jar temizlendiği için 401,
	// cookie elde tutulsaydı da revoke edildiği için 403 olurdu.
	refreshResp := postJSON(t, c, srv.URL+"/api/auth/refresh", nil)
	defer refreshResp.Body.Close()
	assert.True(t,
		refreshResp.StatusCode == http.StatusUnauthorized || refreshResp.StatusCode == http.StatusForbidden,
		"got %d", refreshResp.StatusCode)
}
