// Package models, uygulamanın domain modellerini tanımlar.
//
// Model, veritabanındaki bir tablonun Go karşılığıdır ve aynı zamanda
// API'den gelen/giden verilerin şeklini belirler. json tag'leri
// serialize davranışını kontrol eder — `json:"-"` olan alanlar
// (ör. PasswordHash) API yanıtlarına ASLA dahil edilmez.
package models

import (
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"
)

// Role, personel hesabının yetki seviyesi.
// Go'da enum yoktur — typed constant'lar kullanılır.
type Role string

const (
	RoleAdmin     Role = "admin"     // Salon sahibi/yönetici — tüm kaynaklara erişim
	RoleMaster    Role = "master"    // Usta — kendi randevularını görür/günceller
	RoleReception Role = "reception" // Resepsiyon — randevu/müşteri/ödeme yönetimi
)

// Valid, rolün tanınan bir değer olup olmadığını kontrol eder.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleMaster, RoleReception:
		return true
	}
	return false
}

// User, bir personel hesabını temsil eder.
// Salonio'da login yapabilen herkes personeldir — müşterilerin (Client)
// hesabı yoktur, kayıtları resepsiyon tarafından tutulur.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	Phone        *string   `json:"phone"` // *string = nullable
	Role         Role      `json:"role"`
	BranchID     *string   `json:"branch_id"`
	PasswordHash string    `json:"-"` // API yanıtlarına dahil edilmez
	CreatedAt    time.Time `json:"created_at"`
}

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// EmailRegex, email format kontrolü için paylaşılan regex'i döner.
func EmailRegex() *regexp.Regexp {
	return emailRegex
}

// CreateUserRequest, yeni personel hesabı için gelen veri.
// Password plaintext gelir — bcrypt hash'leme service katmanında yapılır.
type CreateUserRequest struct {
	Email    string  `json:"email"`
	Name     string  `json:"name"`
	Phone    *string `json:"phone"`
	Role     Role    `json:"role"`
	BranchID *string `json:"branch_id"`
	Password string  `json:"password"`
}

// Validate, CreateUserRequest alanlarını kontrol eder.
func (r *CreateUserRequest) Validate() error {
	r.Email = strings.TrimSpace(strings.ToLower(r.Email))
	if !emailRegex.MatchString(r.Email) {
		return fmt.Errorf("invalid email format")
	}

	r.Name = strings.TrimSpace(r.Name)
	nameLen := utf8.RuneCountInString(r.Name)
	if nameLen < 2 || nameLen > 64 {
		return fmt.Errorf("name must be between 2 and 64 characters")
	}

	if !r.Role.Valid() {
		return fmt.Errorf("role must be one of: admin, master, reception")
	}

	if utf8.RuneCountInString(r.Password) < 6 {
		return fmt.Errorf("password must be at least 6 characters")
	}

	return nil
}

// UpdateUserRequest, personel güncellemesi için. Pointer alanlar
// "gönderilmedi" ile "boş gönderildi" ayrımını sağlar.
type UpdateUserRequest struct {
	Name     *string `json:"name"`
	Phone    *string `json:"phone"`
	Role     *Role   `json:"role"`
	BranchID *string `json:"branch_id"`
}

// Validate, UpdateUserRequest alanlarını kontrol eder.
func (r *UpdateUserRequest) Validate() error {
	if r.Name != nil {
		*r.Name = strings.TrimSpace(*r.Name)
		nameLen := utf8.RuneCountInString(*r.Name)
		if nameLen < 2 || nameLen > 64 {
			return fmt.Errorf("name must be between 2 and 64 characters")
		}
	}
	if r.Role != nil && !r.Role.Valid() {
		return fmt.Errorf("role must be one of: admin, master, reception")
	}
	return nil
}

// LoginRequest, giriş isteği.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate, LoginRequest alanlarını kontrol eder.
func (r *LoginRequest) Validate() error {
	r.Email = strings.TrimSpace(strings.ToLower(r.Email))
	if r.Email == "" {
		return fmt.Errorf("email is required")
	}
	if r.Password == "" {
		return fmt.Errorf("password is required")
	}
	return nil
}

// ForgotPasswordRequest, şifre sıfırlama talebi.
type ForgotPasswordRequest struct {
	Email string `json:"email"`
}

// Validate, ForgotPasswordRequest alanlarını kontrol eder.
func (r *ForgotPasswordRequest) Validate() error {
	r.Email = strings.TrimSpace(strings.ToLower(r.Email))
	if !emailRegex.MatchString(r.Email) {
		return fmt.Errorf("invalid email format")
	}
	return nil
}

// ResetPasswordRequest, email'deki token ile şifre sıfırlama.
type ResetPasswordRequest struct {
	Token       string `json:"token"`
	NewPassword string `json:"new_password"`
}

// Validate, ResetPasswordRequest alanlarını kontrol eder.
func (r *ResetPasswordRequest) Validate() error {
	if strings.TrimSpace(r.Token) == "" {
		return fmt.Errorf("token is required")
	}
	if utf8.RuneCountInString(r.NewPassword) < 6 {
		return fmt.Errorf("password must be at least 6 characters")
	}
	return nil
}
