// Package main — Repository katmanı başlatma.
//
// initRepositories, tüm repository implementasyonlarını oluşturur.
// main.go'daki wire-up'ı modülerleştirmek için bu dosyaya taşındı.
package main

import (
	"database/sql"

	"github.com/dmarchuk/salonio/config"
	"github.com/dmarchuk/salonio/repository"
)

// Repositories, tüm repository instance'larını tutan container struct.
//
// Neden struct? Ayrı ayrı değişkenler yerine tek struct kullanmak:
// 1. Fonksiyon imzalarını temiz tutar
// 2. Yeni repository eklendiğinde sadece struct + initRepositories güncellenir
// 3. IDE auto-complete ile kolay erişim (repos.Client, repos.Appointment, vb.)
type Repositories struct {
	User         repository.UserRepository
	RefreshToken repository.RefreshTokenRepository
	ResetToken   repository.PasswordResetRepository
	Client       repository.ClientRepository
	Service      repository.ServiceRepository
	Appointment  repository.AppointmentRepository
	Payment      repository.PaymentRepository
	Inventory    repository.InventoryRepository
	Branch       repository.BranchRepository
}

// initRepositories, veritabanı bağlantısından tüm repository'leri oluşturur.
//
// Her NewSQLite* fonksiyonu aynı *sql.DB'yi alır — Go'nun sql.DB'si
// thread-safe connection pool'dur, paylaşılması güvenlidir.
//
// Refresh token store'u config'e göre seçilir: sqlite (varsayılan,
// restart'a dayanıklı) veya memory (tek-instance dev/test; restart
// tüm oturumları düşürür).
func initRepositories(conn *sql.DB, store config.RefreshStore) *Repositories {
	var tokenRepo repository.RefreshTokenRepository
	if store == config.RefreshStoreMemory {
		tokenRepo = repository.NewMemoryRefreshTokenRepo()
	} else {
		tokenRepo = repository.NewSQLiteRefreshTokenRepo(conn)
	}

	return &Repositories{
		User:         repository.NewSQLiteUserRepo(conn),
		RefreshToken: tokenRepo,
		ResetToken:   repository.NewSQLiteResetTokenRepo(conn),
		Client:       repository.NewSQLiteClientRepo(conn),
		Service:      repository.NewSQLiteServiceRepo(conn),
		Appointment:  repository.NewSQLiteAppointmentRepo(conn),
		Payment:      repository.NewSQLitePaymentRepo(conn),
		Inventory:    repository.NewSQLiteInventoryRepo(conn),
		Branch:       repository.NewSQLiteBranchRepo(conn),
	}
}
