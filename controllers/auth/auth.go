package auth

import (
	"errors"
	"os"
	"time"

	"restaurant-reservation/logger"
	"restaurant-reservation/middleware"
	userModel "restaurant-reservation/models/user"
	"restaurant-reservation/session"
	"restaurant-reservation/types"
	authTypes "restaurant-reservation/types/auth"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const tokenTTL = 24 * time.Hour

// AuthController handles staff authentication
type AuthController struct {
	DB       *gorm.DB
	Sessions *session.Store
}

// NewAuthController creates a new auth controller
func NewAuthController(db *gorm.DB, sessions *session.Store) *AuthController {
	return &AuthController{DB: db, Sessions: sessions}
}

// Helper function to set secure cookies based on environment
func (h *AuthController) setSecureCookie(c *fiber.Ctx, name, value string, maxAge int) {
	isProduction := os.Getenv("APP_ENV") == "production"

	c.Cookie(&fiber.Cookie{
		Name:     name,
		Value:    value,
		HTTPOnly: true,
		Secure:   isProduction, // Only secure in production (HTTPS)
		SameSite: "Strict",
		MaxAge:   maxAge,
		Path:     "/",
	})
}

// Login authenticates a staff account and issues a token.
func (h *AuthController) Login(c *fiber.Ctx) error {
	var req authTypes.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Failed to parse request body", err)
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid request body",
			Data:    nil,
		})
	}

	if err := req.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: err.Error(),
			Data:    nil,
		})
	}

	var account userModel.User
	err := h.DB.Where("username = ?", req.Username).First(&account).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusUnauthorized).JSON(types.ApiResponse{
				Status:  fiber.StatusUnauthorized,
				Message: "Invalid username or password",
				Data:    nil,
			})
		}
		logger.Error("Failed to look up user", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Database error",
			Data:    nil,
		})
	}

	// Inactive accounts cannot authenticate, same response as a bad password.
	if !account.IsActive || !account.CheckPassword(req.Password) {
		return c.Status(fiber.StatusUnauthorized).JSON(types.ApiResponse{
			Status:  fiber.StatusUnauthorized,
			Message: "Invalid username or password",
			Data:    nil,
		})
	}

	jti := uuid.NewString()
	token, err := middleware.SignToken(&account, jti, tokenTTL)
	if err != nil {
		logger.Error("Failed to sign token", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to issue token",
			Data:    nil,
		})
	}

	if err := h.Sessions.Save(c.Context(), jti, account.ID, tokenTTL); err != nil {
		logger.Error("Failed to record session", err)
	}

	now := time.Now()
	if err := h.DB.Model(&account).Update("last_login", now).Error; err != nil {
		logger.Error("Failed to update last login", err)
	}
	account.LastLogin = &now

	h.setSecureCookie(c, "access", token, int(tokenTTL.Seconds()))

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Login successful",
		Data: fiber.Map{
			"token": token,
			"user":  account,
		},
	})
}

// LogOut revokes the current session and clears the cookie.
func (h *AuthController) LogOut(c *fiber.Ctx) error {
	if claims, ok := c.Locals("user").(jwt.MapClaims); ok {
		if jti, ok := claims["jti"].(string); ok {
			if err := h.Sessions.Revoke(c.Context(), jti); err != nil {
				logger.Error("Failed to revoke session", err)
			}
		}
	}

	h.setSecureCookie(c, "access", "", -1)

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Logged out successfully",
		Data:    nil,
	})
}

// Profile returns the authenticated staff account.
func (h *AuthController) Profile(c *fiber.Ctx) error {
	claims, ok := c.Locals("user").(jwt.MapClaims)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(types.ApiResponse{
			Status:  fiber.StatusUnauthorized,
			Message: "Invalid user claims",
			Data:    nil,
		})
	}

	userID, _ := claims["sub"].(string)
	var account userModel.User
	if err := h.DB.First(&account, "id = ?", userID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(types.ApiResponse{
			Status:  fiber.StatusNotFound,
			Message: "User not found",
			Data:    nil,
		})
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Profile retrieved successfully",
		Data:    account,
	})
}
