package user

import "testing"

func TestHasPermissionManagerBypass(t *testing.T) {
	manager := User{Role: RoleManager}
	if !manager.HasPermission("manage_users") {
		t.Error("manager must hold every permission")
	}
	if !manager.HasPermission("anything_at_all") {
		t.Error("manager must hold permissions that were never granted")
	}
}

func TestHasPermissionStaff(t *testing.T) {
	staff := User{
		Role:        RoleStaff,
		Permissions: StringSlice{"view_reservations", "mark_attendance"},
	}

	if !staff.HasPermission("view_reservations") {
		t.Error("staff must hold a granted permission")
	}
	if staff.HasPermission("manage_users") {
		t.Error("staff must not hold an ungranted permission")
	}
}

func TestPasswordHashing(t *testing.T) {
	var account User
	if err := account.SetPassword("correct horse battery"); err != nil {
		t.Fatalf("SetPassword: %v", err)
	}

	if account.PasswordHash == "correct horse battery" {
		t.Fatal("password must not be stored in plaintext")
	}
	if !account.CheckPassword("correct horse battery") {
		t.Error("correct password must verify")
	}
	if account.CheckPassword("wrong") {
		t.Error("wrong password must not verify")
	}
}
