package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/dmarchuk/salonio/models"
)

const (
	// renewCheckInterval, proaktif yenileme kontrolü aralığı.
	renewCheckInterval = 30 * time.Second

	// renewMargin, token bitimine bu kadar süre kala yenileme tetiklenir.
	// Check aralığından büyük olmalı ki bitim asla kaçmasın.
	renewMargin = 45 * time.Second
)

// session, access token'ın tek sahibi.
//
// Refresh tek noktadan geçer: singleflight.Group paralel refresh
// denemelerini teke indirir — 5 istek aynı anda 401 yese bile server'a
// tek refresh gider, eski refresh token bir kez rotate edilir.
// Bu olmadan ikinci istek rotate edilmiş token'ı replay eder ve
// 403 yer.
type session struct {
	client *Client

	mu        sync.RWMutex
	token_    string
	user      *models.User
	expiresAt time.Time

	refreshGroup singleflight.Group

	stopOnce sync.Once
	stop     chan struct{}
}

func newSession(c *Client) *session {
	s := &session{
		client: c,
		stop:   make(chan struct{}),
	}
	go s.renewLoop()
	return s
}

func (s *session) token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token_
}

func (s *session) set(token string, ttl time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token_ = token
	s.expiresAt = time.Now().Add(ttl)
}

func (s *session) setUser(u *models.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = u
}

func (s *session) currentUser() *models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user
}

func (s *session) clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token_ = ""
	s.user = nil
	s.expiresAt = time.Time{}
}

func (s *session) close() {
	s.stopOnce.Do(func() { close(s.stop) })
}

// needsRenewal, token'ın yenilenme eşiğine girip girmediğini döner.
func (s *session) needsRenewal() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.token_ == "" {
		return false
	}
	return time.Until(s.expiresAt) < renewMargin
}

// renewLoop, token bitiminden önce arka planda yeniler.
// Böylece istekler normalde hiç 401 görmez — reaktif refresh
// sadece yarış durumları ve server-side revoke için kalır.
func (s *session) renewLoop() {
	ticker := time.NewTicker(renewCheckInterval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stop:
			return
		case <-ticker.C:
			if !s.needsRenewal() {
				continue
			}
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			if err := s.refresh(ctx); err != nil {
				// Proaktif yenileme başarısız — token'a dokunma,
				// reaktif yol (Do içindeki 401 handling) oturumu
				// sonlandıracak.
				cancel()
				continue
			}
			cancel()
		}
	}
}

// refresh, refresh cookie'si ile yeni bir access token alır.
// Paralel çağrılar singleflight ile tek HTTP isteğinde birleşir.
func (s *session) refresh(ctx context.Context) error {
	_, err, _ := s.refreshGroup.Do("refresh", func() (any, error) {
		return nil, s.doRefresh(ctx)
	})
	return err
}

func (s *session) doRefresh(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.client.baseURL+"/api/auth/refresh", nil)
	if err != nil {
		return err
	}

	// Cookie jar refresh cookie'sini otomatik ekler.
	resp, err := s.client.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("refresh request failed: %w", err)
	}
	defer resp.Body.Close()

	var env apiEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return fmt.Errorf("failed to decode refresh response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return &APIError{StatusCode: resp.StatusCode, Message: env.Error}
	}

	var lr loginResponse
	if err := json.Unmarshal(env.Data, &lr); err != nil {
		return fmt.Errorf("failed to decode refresh data: %w", err)
	}

	s.set(lr.Token, time.Duration(lr.ExpiresIn)*time.Second)
	s.setUser(&lr.User)
	return nil
}
