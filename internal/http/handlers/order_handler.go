package handlers

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"vrukshavalli/internal/domain"
	applog "vrukshavalli/internal/log"
	"vrukshavalli/internal/repos"
	"vrukshavalli/internal/services"
	"vrukshavalli/internal/validate"
)

type OrderHandler struct {
	Order *services.OrderService
	Repo  *repos.OrderRepo
	Auth  *services.AuthService
}

// Place runs checkout for the session's cart.
func (h *OrderHandler) Place(c *fiber.Ctx) error {
	sid := ensureSID(c)

	var form services.CheckoutForm
	if err := c.BodyParser(&form); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	orderID, err := h.Order.Place(sid, form)
	var verr services.ValidationError
	switch {
	case errors.As(err, &verr):
		applog.Security(c, "validation.fail", map[string]any{"field": verr.Field})
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": verr.Error()})
	case errors.Is(err, services.ErrEmptyCart):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "add items before checkout"})
	case err != nil:
		applog.Error(c, "order.place.fail", err, map[string]any{"sid": sid})
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "could not place order, please try again"})
	}

	applog.Audit(c, "order.place", map[string]any{"order_id": orderID})
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"orderId": orderID})
}

func (h *OrderHandler) View(c *fiber.Ctx) error {
	oid, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "order not found"})
	}

	o, items, err := h.Repo.Get(oid)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "order not found"})
	}

	// Ownership: same session, same logged-in customer email, or admin.
	sid := c.Cookies("sid")
	var userEmail, userRole string
	if h.Auth != nil && sid != "" {
		if u, err := h.Auth.CurrentUser(sid); err == nil && u != nil {
			userEmail = u.Email
			userRole = u.Role
		}
	}
	owner := (sid != "" && sid == o.SessionID) ||
		(userEmail != "" && strings.EqualFold(userEmail, o.CustomerEmail))
	if !owner && userRole != "ADMIN" {
		applog.Security(c, "access.denied.order", map[string]any{"order_id": oid})
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "order not found"})
	}

	return c.JSON(fiber.Map{"order": o, "items": items})
}

// History lists the current customer's orders, newest first.
func (h *OrderHandler) History(c *fiber.Ctx) error {
	u, _ := c.Locals("user").(*domain.User)
	if u == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "login required"})
	}
	orders, err := h.Repo.ListByEmail(u.Email)
	if err != nil {
		applog.Error(c, "orders.history.fail", err, nil)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "could not load orders"})
	}
	// Pre-login orders placed under this session still belong to the user.
	if len(orders) == 0 {
		if sid := c.Cookies("sid"); sid != "" {
			if sessOrders, err := h.Repo.ListBySession(sid); err == nil && len(sessOrders) > 0 {
				orders = sessOrders
			}
		}
	}
	return c.JSON(fiber.Map{"orders": orders})
}
