package user

import (
	"errors"

	"restaurant-reservation/apperrors"
	"restaurant-reservation/constants"
	"restaurant-reservation/logger"
	"restaurant-reservation/middleware"
	"restaurant-reservation/services"
	"restaurant-reservation/types"
	userTypes "restaurant-reservation/types/user"

	userModel "restaurant-reservation/models/user"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserController manages staff accounts. Every route is manager-only.
type UserController struct {
	DB          *gorm.DB
	Permissions *services.PermissionService
}

// NewUserController creates a new user controller
func NewUserController(db *gorm.DB) *UserController {
	return &UserController{DB: db, Permissions: services.NewPermissionService()}
}

// escalationCheck keeps account management from granting more than the
// acting user holds. Only managers may mint managers, and the system_admin
// permission can only be handed out by someone who has it.
func escalationCheck(actingIsManager, actingHasSystemAdmin bool, role userModel.Role, permissions []string) error {
	if role == userModel.RoleManager && !actingIsManager {
		return apperrors.Authorization("only managers can assign the manager role")
	}
	if actingHasSystemAdmin {
		return nil
	}
	for _, permission := range permissions {
		if permission == constants.PermSystemAdmin {
			return apperrors.Authorization("granting %s requires holding it", constants.PermSystemAdmin)
		}
	}
	return nil
}

func (h *UserController) guardEscalation(c *fiber.Ctx, role userModel.Role, permissions []string) error {
	return escalationCheck(
		h.Permissions.IsManager(c),
		h.Permissions.CheckPermission(c, constants.PermSystemAdmin),
		role,
		permissions,
	)
}

func respondError(c *fiber.Ctx, err error) error {
	status := apperrors.HTTPStatus(err)
	message := err.Error()
	if status == fiber.StatusInternalServerError {
		logger.Error("Request failed", err)
		message = "Internal server error"
	}
	return c.Status(status).JSON(types.ApiResponse{
		Status:  status,
		Message: message,
		Data:    nil,
	})
}

// List returns every staff account.
func (h *UserController) List(c *fiber.Ctx) error {
	var accounts []userModel.User
	if err := h.DB.Order("created_at ASC").Find(&accounts).Error; err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Users retrieved successfully",
		Data:    accounts,
	})
}

// Permissions returns the catalog of grantable permissions.
func (h *UserController) PermissionCatalog(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Permissions retrieved successfully",
		Data:    constants.AllPermissions,
	})
}

// Create adds a staff account. Duplicate usernames are a conflict.
func (h *UserController) Create(c *fiber.Ctx) error {
	var req userTypes.CreateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid request body",
			Data:    nil,
		})
	}
	if err := req.Validate(); err != nil {
		return respondError(c, apperrors.Validation("%s", err.Error()))
	}

	var count int64
	if err := h.DB.Model(&userModel.User{}).Where("username = ?", req.Username).Count(&count).Error; err != nil {
		return respondError(c, err)
	}
	if count > 0 {
		return respondError(c, apperrors.Conflict("username already exists"))
	}

	permissions := req.Permissions
	if userModel.Role(req.Role) == userModel.RoleStaff && len(permissions) == 0 {
		permissions = constants.DefaultStaffPermissions
	}

	if err := h.guardEscalation(c, userModel.Role(req.Role), permissions); err != nil {
		return respondError(c, err)
	}

	account := userModel.User{
		ID:          uuid.NewString(),
		Username:    req.Username,
		Email:       req.Email,
		FullName:    req.FullName,
		Role:        userModel.Role(req.Role),
		Permissions: permissions,
		IsActive:    true,
		CreatedBy:   middleware.GetUsername(c),
	}
	if err := account.SetPassword(req.Password); err != nil {
		return respondError(c, err)
	}

	if err := h.DB.Create(&account).Error; err != nil {
		return respondError(c, err)
	}

	logger.Success("User created: " + account.Username)
	return c.Status(fiber.StatusCreated).JSON(types.ApiResponse{
		Status:  fiber.StatusCreated,
		Message: "User created successfully",
		Data:    account,
	})
}

// Update edits a staff account. Only the fields present in the payload change.
func (h *UserController) Update(c *fiber.Ctx) error {
	var req userTypes.UpdateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid request body",
			Data:    nil,
		})
	}
	if err := req.Validate(); err != nil {
		return respondError(c, apperrors.Validation("%s", err.Error()))
	}

	var account userModel.User
	if err := h.DB.First(&account, "id = ?", c.Params("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return respondError(c, apperrors.NotFound("user not found"))
		}
		return respondError(c, err)
	}

	if req.Email != nil {
		account.Email = *req.Email
	}
	if req.FullName != nil {
		account.FullName = *req.FullName
	}
	if req.Role != nil {
		account.Role = userModel.Role(*req.Role)
	}
	if req.Permissions != nil {
		account.Permissions = req.Permissions
	}

	if err := h.guardEscalation(c, account.Role, account.Permissions); err != nil {
		return respondError(c, err)
	}
	if req.IsActive != nil {
		account.IsActive = *req.IsActive
	}
	if req.Password != nil {
		if err := account.SetPassword(*req.Password); err != nil {
			return respondError(c, err)
		}
	}

	if err := h.DB.Save(&account).Error; err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "User updated successfully",
		Data:    account,
	})
}

// Delete removes a staff account. An account cannot delete itself, so the
// restaurant always keeps at least one live manager session.
func (h *UserController) Delete(c *fiber.Ctx) error {
	id := c.Params("id")

	if actingID, ok := h.Permissions.GetUserID(c); ok && actingID == id {
		return respondError(c, apperrors.Conflict("you cannot delete your own account"))
	}

	result := h.DB.Delete(&userModel.User{}, "id = ?", id)
	if result.Error != nil {
		return respondError(c, result.Error)
	}
	if result.RowsAffected == 0 {
		return respondError(c, apperrors.NotFound("user not found"))
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "User deleted successfully",
		Data:    nil,
	})
}
