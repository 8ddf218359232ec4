package api

import (
	"fmt"
	"log/slog"

	"github.com/gofiber/fiber/v2"

	"dashboard-service/internal/reports"
)

// ReportHandler serves the read-only report endpoints. WMS payloads pass
// through untouched; Metabase rows are wrapped in the envelope the dashboard
// frontend expects.
type ReportHandler struct {
	wms      *reports.WMSClient
	metabase *reports.MetabaseClient
}

func NewReportHandler(wms *reports.WMSClient, metabase *reports.MetabaseClient) *ReportHandler {
	return &ReportHandler{wms: wms, metabase: metabase}
}

func (h *ReportHandler) GetDailyShipping(c *fiber.Ctx) error {
	body, err := h.wms.FetchDailyShipping(c.UserContext())

	if err != nil {
		return h.reportError(c, "daily shipping", err)
	}

	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	return c.Status(fiber.StatusOK).Send(body)
}

func (h *ReportHandler) GetB2BBulkOrders(c *fiber.Ctx) error {
	body, err := h.wms.FetchB2BBulkOrders(c.UserContext())

	if err != nil {
		return h.reportError(c, "B2B bulk orders", err)
	}

	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	return c.Status(fiber.StatusOK).Send(body)
}

func (h *ReportHandler) GetInventory(c *fiber.Ctx) error {
	rows, err := h.metabase.RunInventoryCard(c.UserContext())

	if err != nil {
		return h.reportError(c, "inventory", err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success":   true,
		"data":      rows,
		"row_count": len(rows),
	})
}

func (h *ReportHandler) reportError(c *fiber.Ctx, report string, err error) error {
	slog.ErrorContext(c.UserContext(), "Report fetch failed",
		slog.String("report", report),
		slog.String("error", err.Error()),
	)

	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error":   fmt.Sprintf("Failed to fetch %s report", report),
		"details": err.Error(),
	})
}
