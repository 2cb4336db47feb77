package middleware

import (
	"fmt"
	"os"
	"strings"
	"time"

	"restaurant-reservation/constants"
	userModel "restaurant-reservation/models/user"
	"restaurant-reservation/session"
	"restaurant-reservation/types"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

var sessionStore *session.Store

// UseSessionStore wires the revocation store checked on every request.
func UseSessionStore(store *session.Store) {
	sessionStore = store
}

// SignToken issues an HS256 JWT for a staff account. The permissions claim
// is the stored grant; the manager bypass is evaluated at check time from
// the role claim, not baked into the list.
func SignToken(u *userModel.User, jti string, ttl time.Duration) (string, error) {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return "", fmt.Errorf("JWT_SECRET environment variable is not set")
	}

	claims := jwt.MapClaims{
		"sub":         u.ID,
		"username":    u.Username,
		"role":        string(u.Role),
		"permissions": []string(u.Permissions),
		"jti":         jti,
		"iat":         time.Now().Unix(),
		"exp":         time.Now().Add(ttl).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// VerifyJWT verifies a JWT token and returns its claims.
func VerifyJWT(tokenString string) (jwt.MapClaims, error) {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return nil, fmt.Errorf("JWT_SECRET environment variable is not set")
	}

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to parse JWT: %w", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid JWT token")
	}
	return claims, nil
}

func permissionSetFromClaims(claims jwt.MapClaims) map[string]bool {
	permissionSet := make(map[string]bool)

	userPermissions, ok := claims["permissions"].([]interface{})
	if !ok {
		return permissionSet
	}

	for _, p := range userPermissions {
		if perm, ok := p.(string); ok {
			permissionSet[perm] = true
		}
	}

	return permissionSet
}

func hasPermission(claims jwt.MapClaims, requiredPermissions []string) bool {
	// Managers hold every permission regardless of the stored set.
	if role, ok := claims["role"].(string); ok && role == string(userModel.RoleManager) {
		return true
	}

	// If "any" is passed, a valid token is enough.
	for _, requiredPerm := range requiredPermissions {
		if requiredPerm == constants.PermAny {
			return true
		}
	}

	permissionSet := permissionSetFromClaims(claims)
	for _, requiredPerm := range requiredPermissions {
		if permissionSet[requiredPerm] {
			return true
		}
	}
	return false
}

// IsAuthenticated is a middleware that checks for a valid JWT token carrying
// any of the required permissions, and that the session has not been revoked.
func IsAuthenticated(requiredPermissions []string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		var token string

		if authHeader != "" {
			tokenParts := strings.Split(authHeader, " ")
			if len(tokenParts) != 2 || tokenParts[0] != "Bearer" {
				return c.Status(fiber.StatusUnauthorized).JSON(types.ErrorResponse{
					Message: "Invalid authorization header format",
					Status:  fiber.StatusUnauthorized,
				})
			}
			token = tokenParts[1]
		} else {
			// Try to get token from cookie as fallback
			token = c.Cookies("access")
			if token == "" {
				return c.Status(fiber.StatusUnauthorized).JSON(types.ErrorResponse{
					Message: "Authorization token missing",
					Status:  fiber.StatusUnauthorized,
				})
			}
		}

		claims, err := VerifyJWT(token)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(types.ErrorResponse{
				Message: "Invalid or expired token",
				Status:  fiber.StatusUnauthorized,
			})
		}

		if sessionStore != nil && sessionStore.Enabled() {
			jti, _ := claims["jti"].(string)
			active, err := sessionStore.IsActive(c.Context(), jti)
			if err != nil || !active {
				return c.Status(fiber.StatusUnauthorized).JSON(types.ErrorResponse{
					Message: "Session has been revoked",
					Status:  fiber.StatusUnauthorized,
				})
			}
		}

		if !hasPermission(claims, requiredPermissions) {
			return c.Status(fiber.StatusForbidden).JSON(types.ErrorResponse{
				Message: "Insufficient permissions",
				Status:  fiber.StatusForbidden,
			})
		}

		c.Locals("user", claims)
		c.Locals("permissions", permissionSetFromClaims(claims))
		if username, ok := claims["username"].(string); ok {
			c.Locals("username", username)
		}
		return c.Next()
	}
}

// RequirePermissions is a helper that creates a middleware with specific permissions
func RequirePermissions(permissions ...string) fiber.Handler {
	return IsAuthenticated(permissions)
}

// RequireAnyPermission allows access if user has any of the specified permissions
func RequireAnyPermission(permissions ...string) fiber.Handler {
	allPerms := append(permissions, constants.PermAny)
	return IsAuthenticated(allPerms)
}

// RequireAuthentication only requires valid authentication without specific permissions
func RequireAuthentication() fiber.Handler {
	return IsAuthenticated([]string{constants.PermAny})
}

// CheckPermissionInController checks if user has a specific permission within a controller
func CheckPermissionInController(c *fiber.Ctx, requiredPermission string) bool {
	userClaims, ok := c.Locals("user").(jwt.MapClaims)
	if !ok {
		return false
	}
	return hasPermission(userClaims, []string{requiredPermission})
}

// GetUsername returns the acting staff username from context.
func GetUsername(c *fiber.Ctx) string {
	if username, ok := c.Locals("username").(string); ok {
		return username
	}
	return ""
}
