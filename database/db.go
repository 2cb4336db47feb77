package database

import (
	"fmt"
	"os"

	"restaurant-reservation/logger"
	notificationModel "restaurant-reservation/models/notification"
	reservationModel "restaurant-reservation/models/reservation"
	slotModel "restaurant-reservation/models/slot"
	userModel "restaurant-reservation/models/user"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

// InitDB initializes the database connection with auto migration and indexing
func InitDB() (*gorm.DB, error) {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		logger.Error("Error loading .env file", err)
	}

	// Get database configuration from environment variables
	host := os.Getenv("DB_HOST")
	port := os.Getenv("DB_PORT")
	database := os.Getenv("DB_DATABASE")
	user := os.Getenv("DB_USERNAME")
	password := os.Getenv("DB_PASSWORD")
	sslmode := os.Getenv("DB_SSLMODE") // Optional: "disable", "require", etc.

	// Set default sslmode if not provided
	if sslmode == "" {
		sslmode = "disable"
	}

	// Build PostgreSQL DSN string
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		host, port, user, password, database, sslmode)

	var err error
	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		logger.Error("Failed to connect to the database", err)
		return nil, err
	}
	logger.Success("Successfully connected to the database")

	if err := autoMigrate(); err != nil {
		logger.Error("Failed to run migrations", err)
		return nil, err
	}
	logger.Success("All migrations completed successfully")

	// Create indexes for better performance
	if err := createIndexes(); err != nil {
		logger.Error("Failed to create indexes", err)
		return nil, err
	}
	logger.Success("All indexes created successfully")

	return DB, nil
}

// autoMigrate runs auto migration for all models in dependency order
func autoMigrate() error {
	// Stage 1: Core foundation models
	stage1Models := []interface{}{
		&userModel.User{},
		&slotModel.BlockedSlot{},
	}

	for _, model := range stage1Models {
		if err := DB.AutoMigrate(model); err != nil {
			return fmt.Errorf("failed to migrate %T: %w", model, err)
		}
	}

	// Stage 2: Models with dependencies on Stage 1
	stage2Models := []interface{}{
		&reservationModel.Reservation{},
		&reservationModel.ReservationStatusEvent{},
	}

	for _, model := range stage2Models {
		if err := DB.AutoMigrate(model); err != nil {
			return fmt.Errorf("failed to migrate %T: %w", model, err)
		}
	}

	// Stage 3: Notification bookkeeping
	remainingModels := []interface{}{
		&notificationModel.DeliveryLog{},
		&notificationModel.ProviderConfig{},
	}

	for _, model := range remainingModels {
		if err := DB.AutoMigrate(model); err != nil {
			return fmt.Errorf("failed to migrate %T: %w", model, err)
		}
	}

	return nil
}

// createIndexes creates additional indexes for better performance
func createIndexes() error {
	// User indexes
	if err := DB.Exec("CREATE INDEX IF NOT EXISTS idx_users_username ON users(username)").Error; err != nil {
		return fmt.Errorf("failed to create user username index: %w", err)
	}

	// Reservation indexes
	if err := DB.Exec("CREATE INDEX IF NOT EXISTS idx_reservations_date_time ON reservations(date, time)").Error; err != nil {
		return fmt.Errorf("failed to create reservation date_time index: %w", err)
	}
	if err := DB.Exec("CREATE INDEX IF NOT EXISTS idx_reservations_status ON reservations(status)").Error; err != nil {
		return fmt.Errorf("failed to create reservation status index: %w", err)
	}
	if err := DB.Exec("CREATE INDEX IF NOT EXISTS idx_reservations_created_at ON reservations(created_at)").Error; err != nil {
		return fmt.Errorf("failed to create reservation created_at index: %w", err)
	}

	// Status event indexes
	if err := DB.Exec("CREATE INDEX IF NOT EXISTS idx_reservation_status_events_reservation_id ON reservation_status_events(reservation_id)").Error; err != nil {
		return fmt.Errorf("failed to create status event reservation_id index: %w", err)
	}

	// Delivery log indexes
	if err := DB.Exec("CREATE INDEX IF NOT EXISTS idx_delivery_logs_reservation_id ON delivery_logs(reservation_id)").Error; err != nil {
		return fmt.Errorf("failed to create delivery log reservation_id index: %w", err)
	}
	if err := DB.Exec("CREATE INDEX IF NOT EXISTS idx_delivery_logs_created_at ON delivery_logs(created_at)").Error; err != nil {
		return fmt.Errorf("failed to create delivery log created_at index: %w", err)
	}

	return nil
}

// GetDB returns the database instance
func GetDB() *gorm.DB {
	return DB
}
