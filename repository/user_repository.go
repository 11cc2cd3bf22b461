// Package repository, veritabanı erişim katmanını tanımlar.
//
// Repository Pattern: service katmanı doğrudan SQL yazmaz, interface
// üzerinden çalışır. Go'da interface implicit'tir — struct, method
// setini karşılıyorsa interface'i otomatik sağlar.
//
// Interface'in faydaları:
//  1. Test: in-memory SQLite veya mock ile DB'siz test
//  2. Esneklik: SQLite → PostgreSQL geçişi sadece yeni implementasyon
//  3. Dependency Inversion: service concrete struct'a değil interface'e bağımlı
package repository

import (
	"context"

	"github.com/dmarchuk/salonio/models"
)

// UserRepository, personel hesabı veritabanı işlemleri için interface.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetAll(ctx context.Context) ([]models.User, error)
	Update(ctx context.Context, user *models.User) error
	// UpdatePassword, kullanıcının bcrypt hash'ini günceller.
	UpdatePassword(ctx context.Context, userID string, newPasswordHash string) error
	Count(ctx context.Context) (int, error)
	Delete(ctx context.Context, id string) error
}
