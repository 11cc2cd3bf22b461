// Package client, salonio API'si için Go client'ı sağlar.
//
// Oturum yönetimi tamamen client içinde saklıdır:
//   - Access token bellekte tutulur, her isteğe Authorization header
//     olarak eklenir
//   - Refresh token'a hiç dokunulmaz — HttpOnly cookie olarak cookie
//     jar'da yaşar, /api/auth isteklerinde otomatik gönderilir
//   - Token süresi dolmadan önce arka planda yenilenir (proaktif)
//   - 401/403 yanıtlarında bir kez refresh + retry denenir (reaktif)
//
// Birden fazla goroutine aynı client'ı paylaşabilir.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"time"

	"github.com/dmarchuk/salonio/models"
)

// apiEnvelope, server'ın standart response zarfı.
type apiEnvelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data,omitempty"`
	Error   string          `json:"error,omitempty"`
}

// loginResponse, login/refresh yanıtının data kısmı.
type loginResponse struct {
	Token     string      `json:"token"`
	ExpiresIn int64       `json:"expires_in"`
	User      models.User `json:"user"`
}

// APIError, server'dan dönen hata yanıtı.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error (%d): %s", e.StatusCode, e.Message)
}

// Client, oturum yöneten API client'ı.
type Client struct {
	baseURL string
	httpc   *http.Client
	session *session

	// OnSessionExpired, refresh artık mümkün olmadığında çağrılır
	// (refresh token süresi doldu veya revoke edildi). UI bu callback
	// ile login ekranına yönlendirir. nil olabilir.
	OnSessionExpired func()
}

// New, yeni bir Client oluşturur.
//
// Cookie jar burada kurulur — refresh cookie'si jar'da yaşar,
// kod hiçbir yerde cookie değerine erişmez.
func New(baseURL string) (*Client, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create cookie jar: %w", err)
	}

	c := &Client{
		baseURL: baseURL,
		httpc: &http.Client{
			Jar:     jar,
			Timeout: 30 * time.Second,
		},
	}
	c.session = newSession(c)
	return c, nil
}

// Login, email + şifre ile oturum açar.
// Başarıda access token bellekte saklanır, refresh cookie jar'a düşer
// ve proaktif yenileme başlar.
func (c *Client) Login(ctx context.Context, email, password string) (*models.User, error) {
	body, err := json.Marshal(map[string]string{"email": email, "password": password})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/auth/login", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("login request failed: %w", err)
	}
	defer resp.Body.Close()

	var env apiEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, fmt.Errorf("failed to decode login response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &APIError{StatusCode: resp.StatusCode, Message: env.Error}
	}

	var lr loginResponse
	if err := json.Unmarshal(env.Data, &lr); err != nil {
		return nil, fmt.Errorf("failed to decode login data: %w", err)
	}

	c.session.set(lr.Token, time.Duration(lr.ExpiresIn)*time.Second)
	c.session.setUser(&lr.User)
	return &lr.User, nil
}

// CurrentUser, oturumdaki kullanıcıyı döner (login/refresh yanıtından
// cache'lenir). Oturum yoksa nil.
func (c *Client) CurrentUser() *models.User {
	return c.session.currentUser()
}

// Logout, server'daki refresh token'ı iptal eder ve local state'i temizler.
// Server hatası olsa bile local state temizlenir — logout asla "başarısız" olmaz.
func (c *Client) Logout(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/auth/logout", nil)
	if err != nil {
		return err
	}

	resp, err := c.httpc.Do(req)
	if err == nil {
		resp.Body.Close()
	}

	c.session.clear()
	return nil
}

// IsAuthenticated, geçerli bir access token olup olmadığını döner.
func (c *Client) IsAuthenticated() bool {
	return c.session.token() != ""
}

// Close, arka plan yenileme goroutine'ini durdurur.
func (c *Client) Close() {
	c.session.close()
}

// Do, authenticated bir API isteği yapar.
//
// 401/403 yanıtında:
// 1. Refresh denenir (single-flight — paralel istekler tek refresh paylaşır)
// 2. Başarılıysa istek yeni token'la BİR KEZ tekrarlanır
// 3. Refresh başarısızsa oturum kapatılır ve OnSessionExpired tetiklenir
//
// Retry için body'si olan isteklerde req.GetBody kullanılır —
// bytes.Reader ile kurulan isteklerde otomatik gelir.
func (c *Client) Do(req *http.Request) (*http.Response, error) {
	req.Header.Set("Authorization", "Bearer "+c.session.token())

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusUnauthorized && resp.StatusCode != http.StatusForbidden {
		return resp, nil
	}

	// Token reddedildi — refresh dene.
	resp.Body.Close()

	if err := c.session.refresh(req.Context()); err != nil {
		c.session.clear()
		if c.OnSessionExpired != nil {
			c.OnSessionExpired()
		}
		return nil, fmt.Errorf("session expired: %w", err)
	}

	// Body'yi yeniden kurup isteği tekrarla.
	retry := req.Clone(req.Context())
	if req.GetBody != nil {
		body, err := req.GetBody()
		if err != nil {
			return nil, fmt.Errorf("failed to rewind request body: %w", err)
		}
		retry.Body = body
	}
	retry.Header.Set("Authorization", "Bearer "+c.session.token())

	return c.httpc.Do(retry)
}

// GetJSON, GET isteği yapar ve data kısmını out'a decode eder.
func (c *Client) GetJSON(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	return c.doJSON(req, out)
}

// PostJSON, POST isteği yapar ve data kısmını out'a decode eder.
// out nil olabilir (204 beklenen endpoint'ler).
func (c *Client) PostJSON(ctx context.Context, path string, in, out any) error {
	body, err := json.Marshal(in)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	return c.doJSON(req, out)
}

func (c *Client) doJSON(req *http.Request, out any) error {
	resp, err := c.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNoContent {
		return nil
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	var env apiEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	if resp.StatusCode >= 400 {
		return &APIError{StatusCode: resp.StatusCode, Message: env.Error}
	}

	if out != nil && env.Data != nil {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return fmt.Errorf("failed to decode response data: %w", err)
		}
	}
	return nil
}
