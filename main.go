// Package main, salonio backend uygulamasının giriş noktasıdır.
//
// Bu dosyanın görevi — Dependency Injection "wire-up":
//  1. Config'i yükle
//  2. Database'i başlat (migration'lar embed'den çalışır)
//  3. Repository'leri oluştur
//  4. WebSocket Hub'ı başlat
//  5. Service'leri oluştur
//  6. Admin hesabını seed et
//  7. Handler'ları oluştur, route'ları bağla
//  8. CORS yapılandır
//  9. HTTP Server'ı başlat
// 10. Graceful shutdown
//
// Global değişken YOK — her şey bu fonksiyonda oluşturulup birbirine bağlanıyor.
package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/cors"
	"golang.org/x/crypto/bcrypt"

	"github.com/dmarchuk/salonio/config"
	"github.com/dmarchuk/salonio/database"
	"github.com/dmarchuk/salonio/models"
	"github.com/dmarchuk/salonio/repository"
	"github.com/dmarchuk/salonio/ws"
)

func main() {
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	log.Println("[main] salonio server starting...")

	// ─── 1. Config ───
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("[main] failed to load config: %v", err)
	}
	log.Printf("[main] config loaded (port=%d)", cfg.Server.Port)

	// ─── 2. Database ───
	// Migration'lar binary'ye embed edilmiştir — deploy'da ayrı
	// migration dosyası taşınmaz.
	db, err := database.New(cfg.Database.Path, database.Migrations())
	if err != nil {
		log.Fatalf("[main] failed to initialize database: %v", err)
	}
	defer db.Close()

	// ─── 3. Repository Layer ───
	if cfg.Session.Store == config.RefreshStoreMemory {
		log.Println("[main] WARNING: in-memory refresh token store active — restart logs out all users")
	}
	repos := initRepositories(db.Conn, cfg.Session.Store)

	// ─── 4. WebSocket Hub ───
	// Hub aynı zamanda EventPublisher interface'ini implement eder —
	// service'ler hub'a doğrudan bağımlı olmak yerine interface üzerinden erişir.
	hub := ws.NewHub()
	go hub.Run()

	// ─── 5. Service Layer ───
	svcs, loginLimiter, err := initServices(repos, hub, cfg)
	if err != nil {
		log.Fatalf("[main] failed to initialize services: %v", err)
	}
	// ─── 6. Admin Seed ───
	if err := seedAdmin(context.Background(), db.Conn); err != nil {
		log.Fatalf("[main] failed to seed admin account: %v", err)
	}

	// Süresi dolmuş refresh token ve reset token kayıtları periyodik
	// temizlenir. Revoke edilmiş kayıtlar audit için expiry'ye kadar tutulur.
	go tokenGC(repos)

	// ─── 7. Handlers + Routes ───
	h := initHandlers(svcs, loginLimiter, hub, cfg)

	mux := http.NewServeMux()
	initRoutes(mux, h, svcs.Auth)

	// ─── 8. CORS ───
	// AllowCredentials zorunlu — refresh cookie cross-origin
	// isteklerde ancak bu flag ile taşınır.
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   cfg.CORS.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	})

	// ─── 9. HTTP Server ───
	srv := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      corsHandler.Handler(mux),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// ─── 10. Graceful Shutdown ───
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Printf("[main] server listening on %s", cfg.Server.Addr())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("[main] server error: %v", err)
		}
	}()

	<-done
	log.Println("[main] shutting down...")

	// Önce WebSocket bağlantıları kapatılır, sonra HTTP server —
	// yeni request kabul edilmez, mevcutların bitmesi beklenir.
	hub.Shutdown()
	svcs.Stats.Close()
	loginLimiter.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("[main] forced shutdown: %v", err)
	}

	log.Println("[main] server stopped gracefully")
}

// seedAdmin, users tablosu boşsa ilk admin hesabını oluşturur.
//
// Neden SQL seed yerine Go? bcrypt hash'i migration dosyasına sabit
// yazılamaz — cost parametresi ve salt her üretimde değişir. Hesap
// idempotent şekilde burada açılır.
//
// Varsayılan: admin@salon.ru / admin123 — ilk login'den sonra şifre
// değiştirilmeli. ADMIN_EMAIL / ADMIN_PASSWORD env ile override edilir.
//
// Count + Create tek transaction'da yapılır — iki instance aynı anda
// boş tabloya bakarsa biri rollback olur, çift admin oluşmaz.
func seedAdmin(ctx context.Context, conn *sql.DB) error {
	adminEmail := os.Getenv("ADMIN_EMAIL")
	if adminEmail == "" {
		adminEmail = "admin@salon.ru"
	}
	adminPassword := os.Getenv("ADMIN_PASSWORD")
	if adminPassword == "" {
		adminPassword = "admin123"
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(adminPassword), 12)
	if err != nil {
		return err
	}

	seeded := false
	err = database.WithTx(ctx, conn, func(tx *sql.Tx) error {
		userRepo := repository.NewSQLiteUserRepo(tx)

		count, err := userRepo.Count(ctx)
		if err != nil {
			return err
		}
		if count > 0 {
			return nil
		}

		admin := &models.User{
			Email:        adminEmail,
			Name:         "Администратор",
			Role:         models.RoleAdmin,
			PasswordHash: string(hash),
		}
		if err := userRepo.Create(ctx, admin); err != nil {
			return err
		}
		seeded = true
		return nil
	})
	if err != nil {
		return err
	}

	if seeded {
		log.Printf("[main] seeded admin account: %s", adminEmail)
	}
	return nil
}

// tokenGC, süresi dolmuş refresh ve reset token kayıtlarını saatte bir siler.
func tokenGC(repos *Repositories) {
	ticker := time.NewTicker(time.Hour)
	defer ticker.Stop()

	for range ticker.C {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		if err := repos.RefreshToken.DeleteExpired(ctx); err != nil {
			log.Printf("[gc] failed to delete expired refresh tokens: %v", err)
		}
		if err := repos.ResetToken.DeleteExpired(ctx); err != nil {
			log.Printf("[gc] failed to delete expired reset tokens: %v", err)
		}
		cancel()
	}
}
