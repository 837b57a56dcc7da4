package handlers

import (
	"strconv"
	"strings"

	"vrukshavalli/internal/catalog"
	"vrukshavalli/internal/domain"
	"vrukshavalli/internal/log"
	"vrukshavalli/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type PlantHandler struct {
	Catalog *catalog.Store
}

// List serves the catalog, optionally filtered by category, price range
// and availability, sorted by name, price-low, price-high or rating.
func (h *PlantHandler) List(c *fiber.Ctx) error {
	category := domain.Category(strings.TrimSpace(c.Query("category")))
	if category != "" && !category.Valid() {
		log.Security(c, "validation.fail", map[string]any{"field": "category"})
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "unknown category"})
	}
	sortBy, ok := validate.Sort(c.Query("sort"))
	if !ok {
		log.Security(c, "validation.fail", map[string]any{"field": "sort"})
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "unknown sort key"})
	}
	q := ""
	if raw := c.Query("q"); strings.TrimSpace(raw) != "" {
		var qok bool
		if q, qok = validate.Q(raw); !qok {
			log.Security(c, "validation.fail", map[string]any{"field": "q", "value": raw})
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "enter a valid keyword (letters/numbers only)"})
		}
	}
	minPrice := queryInt64(c, "minPrice", 0)
	maxPrice := queryInt64(c, "maxPrice", 0)
	inStockOnly := c.Query("inStock") == "true"

	plants := h.Catalog.List(category, sortBy, q)
	if minPrice > 0 || maxPrice > 0 || inStockOnly {
		kept := plants[:0]
		for _, p := range plants {
			if minPrice > 0 && p.Price < minPrice {
				continue
			}
			if maxPrice > 0 && p.Price > maxPrice {
				continue
			}
			if inStockOnly && !p.InStock {
				continue
			}
			kept = append(kept, p)
		}
		plants = kept
	}
	return c.JSON(fiber.Map{"plants": plants, "count": len(plants)})
}

func queryInt64(c *fiber.Ctx, key string, def int64) int64 {
	v := strings.TrimSpace(c.Query(key))
	if v == "" {
		return def
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil || n < 0 {
		return def
	}
	return n
}

func (h *PlantHandler) Detail(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		log.Security(c, "validation.fail", map[string]any{"field": "plant"})
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "this plant is no longer available"})
	}
	p, found := h.Catalog.Get(id)
	if !found {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "this plant is no longer available"})
	}
	return c.JSON(p)
}
