package models

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

// InventoryItem, bir şubedeki sarf malzemesi stok kaydı.
// Quantity negatif olamaz — düşüm stok altına inerse 400 döner.
type InventoryItem struct {
	ID                string    `json:"id"`
	BranchID          string    `json:"branch_id"`
	Name              string    `json:"name"`
	Unit              string    `json:"unit"` // "ml", "adet", "gr" vb.
	Quantity          int       `json:"quantity"`
	LowStockThreshold int       `json:"low_stock_threshold"` // Altına inince dashboard'da uyarı
	CreatedAt         time.Time `json:"created_at"`
}

// LowStock, stokun uyarı eşiğinin altında olup olmadığını döner.
func (i *InventoryItem) LowStock() bool {
	return i.Quantity < i.LowStockThreshold
}

// CreateInventoryItemRequest, yeni stok kaydı isteği.
type CreateInventoryItemRequest struct {
	BranchID          string `json:"branch_id"`
	Name              string `json:"name"`
	Unit              string `json:"unit"`
	Quantity          int    `json:"quantity"`
	LowStockThreshold int    `json:"low_stock_threshold"`
}

// Validate, CreateInventoryItemRequest alanlarını kontrol eder.
func (r *CreateInventoryItemRequest) Validate() error {
	if r.BranchID == "" {
		return fmt.Errorf("branch_id is required")
	}

	r.Name = strings.TrimSpace(r.Name)
	nameLen := utf8.RuneCountInString(r.Name)
	if nameLen < 2 || nameLen > 100 {
		return fmt.Errorf("name must be between 2 and 100 characters")
	}

	r.Unit = strings.TrimSpace(r.Unit)
	if r.Unit == "" {
		return fmt.Errorf("unit is required")
	}

	if r.Quantity < 0 {
		return fmt.Errorf("quantity must not be negative")
	}
	if r.LowStockThreshold < 0 {
		return fmt.Errorf("low_stock_threshold must not be negative")
	}

	return nil
}

// AdjustInventoryRequest, stok düzeltme isteği (pozitif = giriş,
// negatif = düşüm).
type AdjustInventoryRequest struct {
	Delta int `json:"delta"`
}

// Validate, AdjustInventoryRequest alanlarını kontrol eder.
func (r *AdjustInventoryRequest) Validate() error {
	if r.Delta == 0 {
		return fmt.Errorf("delta must not be zero")
	}
	return nil
}
