package user

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// Role determines the baseline authority of a staff account.
type Role string

const (
	RoleManager Role = "manager"
	RoleStaff   Role = "staff"
)

func (r Role) IsValid() bool {
	return r == RoleManager || r == RoleStaff
}

// User is a staff account. Passwords are stored as bcrypt hashes only.
type User struct {
	ID       string `gorm:"type:varchar(36);primaryKey" json:"id"`
	Username string `gorm:"type:varchar(255);not null;unique" json:"username"`

	PasswordHash string `gorm:"type:varchar(255);not null" json:"-"`

	Email    string `gorm:"type:varchar(255)" json:"email"`
	FullName string `gorm:"type:varchar(255)" json:"full_name"`

	Role        Role        `gorm:"type:varchar(10);not null" json:"role"`
	Permissions StringSlice `gorm:"type:json" json:"permissions"` // Use JSON column to store slice of strings

	IsActive  bool       `gorm:"type:bool;default:true" json:"is_active"`
	LastLogin *time.Time `json:"last_login,omitempty"`
	CreatedBy string     `gorm:"type:varchar(255)" json:"created_by"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// SetPassword hashes raw with bcrypt and stores the hash.
func (u *User) SetPassword(raw string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(raw), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hash)
	return nil
}

// CheckPassword compares raw against the stored hash.
func (u *User) CheckPassword(raw string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(raw)) == nil
}

// HasPermission reports whether the account may invoke the action. Managers
// hold every permission regardless of the stored set; staff hold exactly what
// was granted.
func (u *User) HasPermission(permissionID string) bool {
	if u.Role == RoleManager {
		return true
	}
	for _, p := range u.Permissions {
		if p == permissionID {
			return true
		}
	}
	return false
}

// StringSlice is a custom type to handle JSON serialization for PostgreSQL
type StringSlice []string

// Scan implements the Scanner interface for database deserialization
func (ss *StringSlice) Scan(value interface{}) error {
	if value == nil {
		*ss = nil
		return nil
	}

	bytes, ok := value.([]byte)
	if !ok {
		return errors.New("type assertion to []byte failed")
	}

	return json.Unmarshal(bytes, ss)
}

// Value implements the driver Valuer interface for database serialization
func (ss StringSlice) Value() (driver.Value, error) {
	if ss == nil {
		return nil, nil
	}
	return json.Marshal(ss)
}
