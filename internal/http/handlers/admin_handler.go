package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"vrukshavalli/internal/catalog"
	"vrukshavalli/internal/domain"
	applog "vrukshavalli/internal/log"
	"vrukshavalli/internal/repos"
	"vrukshavalli/internal/services"
	"vrukshavalli/internal/validate"
)

type AdminHandler struct {
	OrderRepo *repos.OrderRepo
	Order     *services.OrderService
	Catalog   *catalog.Store
}

// GET /admin/orders
func (h *AdminHandler) Orders(c *fiber.Ctx) error {
	ords, err := h.OrderRepo.ListLatest(100)
	if err != nil {
		applog.Error(c, "admin.orders.list.fail", err, nil)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "could not load orders"})
	}
	return c.JSON(fiber.Map{"orders": ords})
}

type statusRequest struct {
	Status string `json:"status"`
}

// POST /admin/orders/:id/status
func (h *AdminHandler) UpdateOrderStatus(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "missing order id"})
	}
	var req statusRequest
	if err := c.BodyParser(&req); err != nil || req.Status == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "missing status"})
	}

	summary, err := h.Order.AdvanceStatus(id, domain.OrderStatus(req.Status))
	switch {
	case errors.Is(err, services.ErrOrderNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "order not found"})
	case errors.Is(err, services.ErrBadTransition):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "orders only move forward: pending, processing, shipped, delivered"})
	case err != nil:
		applog.Error(c, "admin.orders.update.fail", err, map[string]any{"order_id": id})
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "could not update status"})
	}

	applog.Audit(c, "admin.orders.update", map[string]any{"order_id": id, "status": req.Status})
	return c.JSON(fiber.Map{"order": summary})
}

// GET /admin/plants
func (h *AdminHandler) Plants(c *fiber.Ctx) error {
	plants := h.Catalog.List("", "name", "")
	return c.JSON(fiber.Map{"plants": plants, "count": len(plants)})
}

// POST /admin/plants
func (h *AdminHandler) CreatePlant(c *fiber.Ctx) error {
	var p domain.Plant
	if err := c.BodyParser(&p); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if err := h.Catalog.Create(p); err != nil {
		applog.Security(c, "admin.plants.create.fail", map[string]any{"error": err.Error()})
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	applog.Audit(c, "admin.plants.create", map[string]any{"plant_id": p.ID})
	return c.Status(fiber.StatusCreated).JSON(p)
}

// PUT /admin/plants/:id
func (h *AdminHandler) UpdatePlant(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "missing plant id"})
	}
	var p domain.Plant
	if err := c.BodyParser(&p); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	p.ID = id
	err := h.Catalog.Update(p)
	switch {
	case errors.Is(err, catalog.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "plant not found"})
	case err != nil:
		applog.Security(c, "admin.plants.update.fail", map[string]any{"plant_id": id, "error": err.Error()})
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	applog.Audit(c, "admin.plants.update", map[string]any{"plant_id": id})
	return c.JSON(p)
}

// DELETE /admin/plants/:id — the confirmation step lives in the client;
// this endpoint is the confirmed action.
func (h *AdminHandler) DeletePlant(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "missing plant id"})
	}
	err := h.Catalog.Delete(id)
	switch {
	case errors.Is(err, catalog.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "plant not found"})
	case err != nil:
		applog.Error(c, "admin.plants.delete.fail", err, map[string]any{"plant_id": id})
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "could not delete plant"})
	}
	applog.Audit(c, "admin.plants.delete", map[string]any{"plant_id": id})
	return c.JSON(fiber.Map{"ok": true})
}
