package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/tienda-api/internal/application/auth"
	"github.com/jhoicas/tienda-api/internal/application/dto"
	"github.com/jhoicas/tienda-api/internal/application/orders"
	"github.com/jhoicas/tienda-api/internal/domain"
)

// UserHandler maneja las operaciones de cuenta del usuario autenticado.
type UserHandler struct {
	authUC  *auth.AuthUseCase
	orderUC *orders.OrderUseCase
}

// NewUserHandler construye el handler.
func NewUserHandler(authUC *auth.AuthUseCase, orderUC *orders.OrderUseCase) *UserHandler {
	return &UserHandler{authUC: authUC, orderUC: orderUC}
}

// GetProfile godoc
// @Summary      Perfil del usuario autenticado
// @Tags         user
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.UserResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/user/profile [get]
func (h *UserHandler) GetProfile(c *fiber.Ctx) error {
	out, err := h.authUC.GetProfile(GetUserID(c))
	if err != nil {
		if err == domain.ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "usuario no encontrado"})
		}
		return internalError(c, err)
	}
	return c.JSON(out)
}

// UpdateProfile godoc
// @Summary      Actualizar perfil (patch)
// @Tags         user
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.UpdateProfileRequest  true  "Campos a actualizar"
// @Success      200   {object}  dto.UserResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/user/profile [put]
func (h *UserHandler) UpdateProfile(c *fiber.Ctx) error {
	var in dto.UpdateProfileRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.authUC.UpdateProfile(GetUserID(c), in)
	if err != nil {
		switch err {
		case domain.ErrNotFound:
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "usuario no encontrado"})
		case domain.ErrDuplicateUser:
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "USER_EXISTS", Message: "el email ya está en uso"})
		}
		return internalError(c, err)
	}
	return c.JSON(out)
}

// ChangePassword godoc
// @Summary      Cambiar contraseña
// @Tags         user
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ChangePasswordRequest  true  "currentPassword, newPassword"
// @Success      200   {object}  map[string]bool
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /api/user/change-password [put]
func (h *UserHandler) ChangePassword(c *fiber.Ctx) error {
	var in dto.ChangePasswordRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if len(in.NewPassword) > 0 && len(in.NewPassword) < 8 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "la nueva contraseña debe tener al menos 8 caracteres"})
	}
	if err := h.authUC.ChangePassword(GetUserID(c), in); err != nil {
		switch err {
		case domain.ErrMissingField:
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "currentPassword y newPassword son requeridos"})
		case domain.ErrNotFound:
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "usuario no encontrado"})
		case domain.ErrInvalidCredentials:
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_CREDENTIALS", Message: "la contraseña actual no coincide"})
		}
		return internalError(c, err)
	}
	return c.JSON(fiber.Map{"success": true})
}

// DeleteAccount godoc
// @Summary      Baja lógica de la cuenta (estado inactive)
// @Tags         user
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  map[string]bool
// @Router       /api/user/account [delete]
func (h *UserHandler) DeleteAccount(c *fiber.Ctx) error {
	if err := h.authUC.Deactivate(GetUserID(c)); err != nil {
		if err == domain.ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "usuario no encontrado"})
		}
		return internalError(c, err)
	}
	return c.JSON(fiber.Map{"success": true})
}

// ListOrders godoc
// @Summary      Historial de órdenes del usuario
// @Tags         user
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Límite"   default(20)
// @Param        offset  query  int  false  "Offset"   default(0)
// @Success      200     {object}  dto.OrderListResponse
// @Router       /api/user/orders [get]
func (h *UserHandler) ListOrders(c *fiber.Ctx) error {
	page := dto.PageRequest{
		Limit:  c.QueryInt("limit", 20),
		Offset: c.QueryInt("offset", 0),
	}
	out, err := h.orderUC.ListByUser(GetUserID(c), page)
	if err != nil {
		return internalError(c, err)
	}
	return c.JSON(out)
}
