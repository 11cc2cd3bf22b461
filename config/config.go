// Package config, uygulamanın tüm konfigürasyonunu merkezi olarak yönetir.
// Environment variable'lardan okur, development için .env dosyasını da
// destekler. Her yerde ayrı ayrı os.Getenv çağırmak yerine tek bir Config
// nesnesi wire-up sırasında taşınır.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// RefreshStore, refresh token allow-list'inin hangi store'da tutulacağını
// belirler. Varsayılan sqlite'tır — memory SADECE tek process'li,
// kalıcılık gerektirmeyen ortamlar içindir (revoke bilgisi restart'ta
// kaybolur, main.go bu modda uyarı loglar).
type RefreshStore string

const (
	RefreshStoreSQLite RefreshStore = "sqlite"
	RefreshStoreMemory RefreshStore = "memory"
)

// Config, uygulamanın tüm konfigürasyon değerlerini taşır.
// Her alt bölüm ayrı bir struct — her struct tek bir concern.
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	JWT      JWTConfig
	Session  SessionConfig
	Email    EmailConfig
	CORS     CORSConfig
}

// ServerConfig, HTTP server ayarları.
type ServerConfig struct {
	Host string
	Port int
}

// DatabaseConfig, SQLite database ayarları.
type DatabaseConfig struct {
	Path string // SQLite dosya yolu (ör: ./data/salonio.db)
}

// JWTConfig, token imzalama ayarları.
type JWTConfig struct {
	// Secret, access token imzalama anahtarı — ZORUNLU.
	// Boşsa Load error döner ve process başlamaz: imzasız auth yoktur.
	Secret string

	// RefreshSecret, refresh token'lar için ayrı anahtar — opsiyonel.
	// Boşsa Secret kullanılır. Ayrı anahtar, access ve refresh
	// imzalamanın bağımsız rotate edilebilmesini sağlar.
	RefreshSecret string

	AccessTokenExpiry  int // Dakika cinsinden (varsayılan: 15)
	RefreshTokenExpiry int // Gün cinsinden (varsayılan: 7)
}

// SessionConfig, refresh token allow-list ayarları.
type SessionConfig struct {
	Store RefreshStore

	// CookieSecure true ise refresh cookie her zaman Secure flag'i ile
	// set edilir. false olsa bile TLS üzerinden gelen istekler Secure
	// cookie alır — bu flag sadece reverse proxy arkasında TLS
	// termination yapılan deploy'lar için zorlamadır.
	CookieSecure bool
}

// EmailConfig, Resend email gönderim ayarları.
// APIKey boşsa email gönderimi devre dışı kalır (dev ortamı).
type EmailConfig struct {
	ResendAPIKey string
	FromEmail    string
	AppURL       string
}

// CORSConfig, izin verilen frontend origin'leri.
type CORSConfig struct {
	AllowedOrigins []string
}

// Load, environment variable'lardan Config oluşturur.
// .env dosyası varsa önce onu yükler; production'da dosya olmaz,
// gerçek env variable'lar kullanılır.
func Load() (*Config, error) {
	_ = godotenv.Load()

	port, err := strconv.Atoi(getEnv("SERVER_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid SERVER_PORT: %w", err)
	}

	accessExpiry, err := strconv.Atoi(getEnv("JWT_ACCESS_EXPIRY_MINUTES", "15"))
	if err != nil {
		return nil, fmt.Errorf("invalid JWT_ACCESS_EXPIRY_MINUTES: %w", err)
	}

	refreshExpiry, err := strconv.Atoi(getEnv("JWT_REFRESH_EXPIRY_DAYS", "7"))
	if err != nil {
		return nil, fmt.Errorf("invalid JWT_REFRESH_EXPIRY_DAYS: %w", err)
	}

	jwtSecret := getEnv("JWT_SECRET", "")
	if jwtSecret == "" {
		// Fatal misconfiguration — auth "doğrulamasız" moda düşemez.
		return nil, fmt.Errorf("JWT_SECRET environment variable is required")
	}

	store := RefreshStore(getEnv("SESSION_STORE", string(RefreshStoreSQLite)))
	if store != RefreshStoreSQLite && store != RefreshStoreMemory {
		return nil, fmt.Errorf("invalid SESSION_STORE: %q (must be sqlite or memory)", store)
	}

	cookieSecure, err := strconv.ParseBool(getEnv("COOKIE_SECURE", "false"))
	if err != nil {
		return nil, fmt.Errorf("invalid COOKIE_SECURE: %w", err)
	}

	origins := strings.Split(getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:3000"), ",")
	for i := range origins {
		origins[i] = strings.TrimSpace(origins[i])
	}

	cfg := &Config{
		Server: ServerConfig{
			Host: getEnv("SERVER_HOST", "0.0.0.0"),
			Port: port,
		},
		Database: DatabaseConfig{
			Path: getEnv("DATABASE_PATH", "./data/salonio.db"),
		},
		JWT: JWTConfig{
			Secret:             jwtSecret,
			RefreshSecret:      getEnv("JWT_REFRESH_SECRET", ""),
			AccessTokenExpiry:  accessExpiry,
			RefreshTokenExpiry: refreshExpiry,
		},
		Session: SessionConfig{
			Store:        store,
			CookieSecure: cookieSecure,
		},
		Email: EmailConfig{
			ResendAPIKey: getEnv("RESEND_API_KEY", ""),
			FromEmail:    getEnv("EMAIL_FROM", "noreply@salonio.app"),
			AppURL:       getEnv("APP_URL", "http://localhost:3000"),
		},
		CORS: CORSConfig{
			AllowedOrigins: origins,
		},
	}

	return cfg, nil
}

// Addr, HTTP server'ın dinleyeceği adresi döner (ör: "0.0.0.0:8080").
func (c *ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// getEnv, environment variable'ı okur, yoksa fallback döner.
func getEnv(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok {
		return val
	}
	return fallback
}
