package handlers

import (
	"errors"

	applog "vrukshavalli/internal/log"
	"vrukshavalli/internal/services"
	"vrukshavalli/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type CartHandler struct {
	Cart    *services.CartService
	Pricing services.Calculator
}

type cartAddRequest struct {
	PlantID string `json:"plantId"`
	Qty     int    `json:"qty"`
}

func (h *CartHandler) View(c *fiber.Ctx) error {
	sid := ensureSID(c)
	return c.JSON(h.Cart.View(sid))
}

func (h *CartHandler) Add(c *fiber.Ctx) error {
	sid := ensureSID(c)
	var req cartAddRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	if _, ok := validate.ID(req.PlantID); !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "missing plantId"})
	}
	if req.Qty < 1 {
		req.Qty = 1
	}

	notice, err := h.Cart.Add(sid, req.PlantID, req.Qty)
	switch {
	case errors.Is(err, services.ErrOutOfStock):
		// Rejection, not an error: the cart is untouched and the client
		// shows the notice as a toast.
		return c.JSON(fiber.Map{"ok": false, "notice": notice})
	case errors.Is(err, services.ErrUnknownPlant):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "this plant is no longer available"})
	case err != nil:
		applog.Error(c, "cart.add.fail", err, map[string]any{"plant": req.PlantID})
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "could not update your cart"})
	}
	return c.JSON(fiber.Map{"ok": true, "notice": notice, "cart": h.Cart.View(sid)})
}

type cartQtyRequest struct {
	Qty int `json:"qty"`
}

// SetQty overwrites a line's quantity; zero removes it.
func (h *CartHandler) SetQty(c *fiber.Ctx) error {
	sid := ensureSID(c)
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "missing plant id"})
	}
	var req cartQtyRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	notice, err := h.Cart.SetQuantity(sid, id, req.Qty)
	if err != nil {
		applog.Error(c, "cart.setqty.fail", err, map[string]any{"plant": id})
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "could not update your cart"})
	}
	return c.JSON(fiber.Map{"ok": true, "notice": notice, "cart": h.Cart.View(sid)})
}

func (h *CartHandler) Remove(c *fiber.Ctx) error {
	sid := ensureSID(c)
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "missing plant id"})
	}
	notice, err := h.Cart.Remove(sid, id)
	if err != nil {
		applog.Error(c, "cart.remove.fail", err, map[string]any{"plant": id})
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "could not update your cart"})
	}
	return c.JSON(fiber.Map{"ok": true, "notice": notice, "cart": h.Cart.View(sid)})
}

func (h *CartHandler) Clear(c *fiber.Ctx) error {
	sid := ensureSID(c)
	notice, err := h.Cart.Clear(sid)
	if err != nil {
		applog.Error(c, "cart.clear.fail", err, nil)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "could not update your cart"})
	}
	return c.JSON(fiber.Map{"ok": true, "notice": notice})
}

// Quote prices the current cart without creating anything.
func (h *CartHandler) Quote(c *fiber.Ctx) error {
	sid := ensureSID(c)
	return c.JSON(h.Pricing.Quote(h.Cart.TotalPrice(sid)))
}
