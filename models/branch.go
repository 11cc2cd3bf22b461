package models

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

// Branch, salonun bir şubesini temsil eder.
type Branch struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Address   string    `json:"address"`
	Phone     *string   `json:"phone"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateBranchRequest, yeni şube isteği.
type CreateBranchRequest struct {
	Name    string  `json:"name"`
	Address string  `json:"address"`
	Phone   *string `json:"phone"`
}

// Validate, CreateBranchRequest alanlarını kontrol eder.
func (r *CreateBranchRequest) Validate() error {
	r.Name = strings.TrimSpace(r.Name)
	nameLen := utf8.RuneCountInString(r.Name)
	if nameLen < 2 || nameLen > 64 {
		return fmt.Errorf("name must be between 2 and 64 characters")
	}

	r.Address = strings.TrimSpace(r.Address)
	if r.Address == "" {
		return fmt.Errorf("address is required")
	}

	return nil
}

// UpdateBranchRequest, şube güncellemesi için.
type UpdateBranchRequest struct {
	Name    *string `json:"name"`
	Address *string `json:"address"`
	Phone   *string `json:"phone"`
}

// Validate, UpdateBranchRequest alanlarını kontrol eder.
func (r *UpdateBranchRequest) Validate() error {
	if r.Name != nil {
		*r.Name = strings.TrimSpace(*r.Name)
		nameLen := utf8.RuneCountInString(*r.Name)
		if nameLen < 2 || nameLen > 64 {
			return fmt.Errorf("name must be between 2 and 64 characters")
		}
	}
	if r.Address != nil {
		*r.Address = strings.TrimSpace(*r.Address)
		if *r.Address == "" {
			return fmt.Errorf("address must not be empty")
		}
	}
	return nil
}
