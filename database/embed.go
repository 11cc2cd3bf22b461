// Package database embed dosyası — migration SQL dosyalarını binary'ye gömer.
// Deploy edilen binary'nin yanında migration dosyalarına ihtiyaç kalmaz.
package database

import (
	"embed"
	"io/fs"
)

//go:embed migrations/*.sql
var embeddedMigrations embed.FS

// Migrations, migrations/ dizinine köklenmiş fs.FS döner.
// New'e doğrudan verilebilir — dosyalar kök seviyede görünür.
func Migrations() fs.FS {
	sub, err := fs.Sub(embeddedMigrations, "migrations")
	if err != nil {
		// go:embed pattern'i ile dizin adı derleme zamanında sabittir,
		// buraya düşmek ancak ikisinin uyumsuz değişmesiyle mümkün.
		panic(err)
	}
	return sub
}
