package middleware

import (
	"testing"
	"time"

	"restaurant-reservation/constants"
	userModel "restaurant-reservation/models/user"

	"github.com/golang-jwt/jwt/v5"
)

func staffAccount() *userModel.User {
	return &userModel.User{
		ID:          "user-1",
		Username:    "kofi",
		Role:        userModel.RoleStaff,
		Permissions: userModel.StringSlice{constants.PermViewReservations},
	}
}

func TestSignAndVerifyToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	token, err := SignToken(staffAccount(), "jti-1", time.Hour)
	if err != nil {
		t.Fatalf("SignToken: %v", err)
	}

	claims, err := VerifyJWT(token)
	if err != nil {
		t.Fatalf("VerifyJWT: %v", err)
	}

	if claims["sub"] != "user-1" {
		t.Errorf("sub = %v", claims["sub"])
	}
	if claims["username"] != "kofi" {
		t.Errorf("username = %v", claims["username"])
	}
	if claims["jti"] != "jti-1" {
		t.Errorf("jti = %v", claims["jti"])
	}
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	token, err := SignToken(staffAccount(), "jti-1", time.Hour)
	if err != nil {
		t.Fatalf("SignToken: %v", err)
	}

	t.Setenv("JWT_SECRET", "different-secret")
	if _, err := VerifyJWT(token); err == nil {
		t.Error("expected verification to fail with a different secret")
	}
}

func TestVerifyRejectsExpiredToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	token, err := SignToken(staffAccount(), "jti-1", -time.Minute)
	if err != nil {
		t.Fatalf("SignToken: %v", err)
	}

	if _, err := VerifyJWT(token); err == nil {
		t.Error("expected expired token to be rejected")
	}
}

func TestSignTokenRequiresSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	if _, err := SignToken(staffAccount(), "jti-1", time.Hour); err == nil {
		t.Error("expected error without JWT_SECRET")
	}
}

func TestHasPermission(t *testing.T) {
	staffClaims := jwt.MapClaims{
		"role":        "staff",
		"permissions": []interface{}{constants.PermViewReservations},
	}

	if !hasPermission(staffClaims, []string{constants.PermViewReservations}) {
		t.Error("granted permission must pass")
	}
	if hasPermission(staffClaims, []string{constants.PermManageUsers}) {
		t.Error("ungranted permission must fail")
	}
	if !hasPermission(staffClaims, []string{constants.PermAny}) {
		t.Error("any-permission must pass for a valid token")
	}

	managerClaims := jwt.MapClaims{"role": "manager", "permissions": []interface{}{}}
	if !hasPermission(managerClaims, []string{constants.PermManageUsers}) {
		t.Error("manager must bypass the stored permission set")
	}
}
