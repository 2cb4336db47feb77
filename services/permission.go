package services

import (
	"restaurant-reservation/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

type PermissionService struct{}

func NewPermissionService() *PermissionService {
	return &PermissionService{}
}

// CheckPermission checks if the current user has a specific permission
func (ps *PermissionService) CheckPermission(c *fiber.Ctx, permission string) bool {
	return middleware.CheckPermissionInController(c, permission)
}

// GetUserInfo returns user information from JWT claims
func (ps *PermissionService) GetUserInfo(c *fiber.Ctx) (jwt.MapClaims, bool) {
	userClaims, ok := c.Locals("user").(jwt.MapClaims)
	return userClaims, ok
}

// GetUserID returns user ID from JWT claims
func (ps *PermissionService) GetUserID(c *fiber.Ctx) (string, bool) {
	userClaims, ok := ps.GetUserInfo(c)
	if !ok {
		return "", false
	}

	userID, ok := userClaims["sub"].(string)
	return userID, ok
}

// IsManager checks if the current user holds the manager role
func (ps *PermissionService) IsManager(c *fiber.Ctx) bool {
	userClaims, ok := ps.GetUserInfo(c)
	if !ok {
		return false
	}
	role, ok := userClaims["role"].(string)
	return ok && role == "manager"
}
