package user

import (
	"fmt"

	"restaurant-reservation/constants"
	userModel "restaurant-reservation/models/user"
	"restaurant-reservation/utils"
)

// CreateUserRequest creates a staff account. Manager-only.
type CreateUserRequest struct {
	Username    string   `json:"username" validate:"required,min=3,max=255"`
	Password    string   `json:"password" validate:"required,min=8"`
	Email       string   `json:"email" validate:"omitempty,email"`
	FullName    string   `json:"full_name" validate:"omitempty,max=255"`
	Role        string   `json:"role" validate:"required,oneof=manager staff"`
	Permissions []string `json:"permissions" validate:"omitempty"`
}

func (r CreateUserRequest) Validate() error {
	if r.Username == "" {
		return fmt.Errorf("username is required")
	}
	if len(r.Password) < 8 {
		return fmt.Errorf("password must be at least 8 characters")
	}
	if r.Email != "" && !utils.IsValidEmail(r.Email) {
		return fmt.Errorf("email address is not valid")
	}
	if !userModel.Role(r.Role).IsValid() {
		return fmt.Errorf("role must be manager or staff")
	}
	for _, p := range r.Permissions {
		if !constants.IsKnownPermission(p) {
			return fmt.Errorf("unknown permission: %s", p)
		}
	}
	return utils.ValidateStruct(r)
}

// UpdateUserRequest edits a staff account. Zero-value fields are left alone;
// IsActive uses a pointer so "deactivate" is distinguishable from "unset".
type UpdateUserRequest struct {
	Email       *string  `json:"email" validate:"omitempty,email"`
	FullName    *string  `json:"full_name" validate:"omitempty,max=255"`
	Role        *string  `json:"role" validate:"omitempty,oneof=manager staff"`
	Permissions []string `json:"permissions" validate:"omitempty"`
	Password    *string  `json:"password" validate:"omitempty,min=8"`
	IsActive    *bool    `json:"is_active"`
}

func (r UpdateUserRequest) Validate() error {
	if r.Email != nil && *r.Email != "" && !utils.IsValidEmail(*r.Email) {
		return fmt.Errorf("email address is not valid")
	}
	if r.Role != nil && !userModel.Role(*r.Role).IsValid() {
		return fmt.Errorf("role must be manager or staff")
	}
	if r.Password != nil && len(*r.Password) < 8 {
		return fmt.Errorf("password must be at least 8 characters")
	}
	for _, p := range r.Permissions {
		if !constants.IsKnownPermission(p) {
			return fmt.Errorf("unknown permission: %s", p)
		}
	}
	return nil
}
