// Package pkg, katmanlar arasında paylaşılan küçük yardımcıları barındırır.
// Bu dosya domain-level error tanımlarını içerir.
//
// Service katmanı bu sabit error'ları döner (gerekirse fmt.Errorf ile
// sararak), handler katmanı errors.Is ile yakalayıp HTTP status'a çevirir.
// String karşılaştırması yerine referans karşılaştırması — wrap edilmiş
// error'lar da doğru eşleşir:
//
//	if errors.Is(err, pkg.ErrNotFound) { ... }
package pkg

import "errors"

// Domain-level error'lar.
// Handler katmanı bu error'ları HTTP status code'larına map'ler.
var (
	ErrNotFound      = errors.New("not found")
	ErrUnauthorized  = errors.New("unauthorized")
	ErrForbidden     = errors.New("forbidden")
	ErrAlreadyExists = errors.New("already exists")
	ErrBadRequest    = errors.New("bad request")
	ErrConflict      = errors.New("conflict")
	ErrInternal      = errors.New("internal error")
)
