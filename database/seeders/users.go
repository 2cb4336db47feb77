package seeders

import (
	"os"

	"restaurant-reservation/logger"
	userModel "restaurant-reservation/models/user"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SeedAdminUser creates the first manager account on an empty user table.
// Credentials come from ADMIN_USERNAME / ADMIN_PASSWORD; no defaults are
// ever shipped. Without them the table stays empty and nobody can log in
// until the operator configures seeding.
func SeedAdminUser(db *gorm.DB) error {
	var count int64
	if err := db.Model(&userModel.User{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	username := os.Getenv("ADMIN_USERNAME")
	password := os.Getenv("ADMIN_PASSWORD")
	if username == "" || password == "" {
		logger.Warning("No users exist and ADMIN_USERNAME/ADMIN_PASSWORD are not set - staff login is impossible until they are configured")
		return nil
	}

	admin := userModel.User{
		ID:        uuid.NewString(),
		Username:  username,
		Email:     os.Getenv("ADMIN_EMAIL"),
		FullName:  "System Administrator",
		Role:      userModel.RoleManager,
		IsActive:  true,
		CreatedBy: "system",
	}
	if err := admin.SetPassword(password); err != nil {
		return err
	}

	if err := db.Create(&admin).Error; err != nil {
		return err
	}

	logger.Success("Seeded first-run manager account: " + username)
	return nil
}
