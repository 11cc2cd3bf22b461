package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmarchuk/salonio/database"
	"github.com/dmarchuk/salonio/models"
)

// testDB, migration'ları uygulanmış in-memory bir SQLite açar.
//
// cache=shared zorunludur: *sql.DB bir connection pool'dur ve paylaşılmayan
// in-memory DB'de her bağlantı KENDİ boş veritabanını görür. Test adı DSN'e
// gömülür ki paralel testler birbirinin verisini görmesin.
func testDB(t *testing.T) *sql.DB {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)

	db, err := database.New(dsn, database.Migrations())
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	// Shared-cache in-memory DB'de eşzamanlı yazarlar SQLITE_LOCKED
	// üretebilir — pool'u tek bağlantıya indirip yazmaları serialize ediyoruz.
	db.Conn.SetMaxOpenConns(1)

	return db.Conn
}

// Seed migration'ının sabit kayıtları — testler referans verirken kullanır.
const (
	seededBranchID    = "b000000000000001"
	seededServiceID   = "s000000000000001" // Женская стрижка, 60 dk
	seededServiceID30 = "s000000000000002" // Мужская стрижка, 30 dk
)

func createTestUser(t *testing.T, repo UserRepository, email string, role models.Role) *models.User {
	t.Helper()

	user := &models.User{
		Email:        email,
		Name:         "Test Personel",
		Role:         role,
		PasswordHash: "$2a$12$notarealhashnotarealhashnotarealhashnotarealhash",
	}
	require.NoError(t, repo.Create(context.Background(), user))
	require.NotEmpty(t, user.ID)
	return user
}

func createTestClient(t *testing.T, repo ClientRepository, name, phone string) *models.Client {
	t.Helper()

	client := &models.Client{Name: name, Phone: phone}
	require.NoError(t, repo.Create(context.Background(), client))
	require.NotEmpty(t, client.ID)
	return client
}
