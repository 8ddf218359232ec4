package api

import (
	"log/slog"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"dashboard-service/internal/service"
)

type AlertHandler struct {
	alertService service.AlertService
	validate     *validator.Validate
}

func NewAlertHandler(alertService service.AlertService) *AlertHandler {
	return &AlertHandler{
		alertService: alertService,
		validate:     validator.New(),
	}
}

type CreateAlertRequest struct {
	ProductID int             `json:"productId" validate:"required"`
	Threshold decimal.Decimal `json:"threshold" validate:"required"`
}

// UpdateAlertRequest carries partial updates. A nil field means the column
// keeps its current value.
type UpdateAlertRequest struct {
	Threshold *decimal.Decimal `json:"threshold"`
	IsActive  *bool            `json:"isActive"`
}

func (h *AlertHandler) ListAlerts(c *fiber.Ctx) error {
	alerts, err := h.alertService.ListAlerts(c.Context())

	if err != nil {
		slog.ErrorContext(c.UserContext(), "Error listing alerts", slog.String("error", err.Error()))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not fetch alerts"})
	}

	return c.Status(fiber.StatusOK).JSON(alerts)
}

func (h *AlertHandler) CreateAlert(c *fiber.Ctx) error {
	userID, err := GetUserIDFromClaims(c)

	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid user claims"})
	}

	var request CreateAlertRequest

	if err := c.BodyParser(&request); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}

	if err := h.validate.Struct(&request); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid input", "details": err.Error()})
	}

	alert, err := h.alertService.CreateAlert(c.Context(), request.ProductID, request.Threshold, userID)

	if err != nil {
		switch err {
		case service.ErrAlertExists:
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
		default:
			slog.ErrorContext(c.UserContext(), "Error creating alert", slog.String("error", err.Error()))
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not create alert"})
		}
	}

	return c.Status(fiber.StatusCreated).JSON(alert)
}

func (h *AlertHandler) UpdateAlert(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")

	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid alert ID"})
	}

	var request UpdateAlertRequest

	if err := c.BodyParser(&request); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}

	alert, err := h.alertService.UpdateAlert(c.Context(), id, request.Threshold, request.IsActive)

	if err != nil {
		switch err {
		case service.ErrAlertNotFound:
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
		default:
			slog.ErrorContext(c.UserContext(), "Error updating alert", slog.String("error", err.Error()))
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not update alert"})
		}
	}

	return c.Status(fiber.StatusOK).JSON(alert)
}

func (h *AlertHandler) DeleteAlert(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")

	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid alert ID"})
	}

	err = h.alertService.DeleteAlert(c.Context(), id)

	if err != nil {
		switch err {
		case service.ErrAlertNotFound:
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
		default:
			slog.ErrorContext(c.UserContext(), "Error deleting alert", slog.String("error", err.Error()))
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not delete alert"})
		}
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": "Alert deleted successfully"})
}

func (h *AlertHandler) ListProducts(c *fiber.Ctx) error {
	products, err := h.alertService.ListProducts(c.Context())

	if err != nil {
		slog.ErrorContext(c.UserContext(), "Error listing products", slog.String("error", err.Error()))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not fetch products"})
	}

	return c.Status(fiber.StatusOK).JSON(products)
}
