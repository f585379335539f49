package deliveries

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/neoKP/subcontractor-truck-management-system-sub002/internal/app/models"
	"github.com/neoKP/subcontractor-truck-management-system-sub002/internal/app/pkg"
	"github.com/neoKP/subcontractor-truck-management-system-sub002/internal/app/services"
)

type PriceMatrixHandler struct {
	priceMatrixService *services.PriceMatrixService
}

func NewPriceMatrixHandler(priceMatrixService *services.PriceMatrixService) *PriceMatrixHandler {
	return &PriceMatrixHandler{
		priceMatrixService: priceMatrixService,
	}
}

func (h *PriceMatrixHandler) RegisterRoutes(router fiber.Router) {
	group := router.Group("/price-matrix")

	group.Get("/", h.ListEntries)
	group.Get("/terms", h.LookupTerms)
}

func (h *PriceMatrixHandler) ListEntries(c *fiber.Ctx) error {
	pagination := models.PaginationRequest{}
	if page, err := strconv.Atoi(c.Query("page", "1")); err == nil {
		pagination.Page = page
	}
	if limit, err := strconv.Atoi(c.Query("limit", "10")); err == nil {
		pagination.Limit = limit
	}

	entries, err := h.priceMatrixService.GetEntries(&pagination)
	if err != nil {
		return pkg.ErrorResponse(c, err)
	}

	return pkg.SuccessResponse(c, entries)
}

func (h *PriceMatrixHandler) LookupTerms(c *fiber.Ctx) error {
	terms := h.priceMatrixService.Lookup(
		c.Query("origin"),
		c.Query("destination"),
		c.Query("truck_type"),
		c.Query("subcontractor"),
	)

	return pkg.SuccessResponse(c, terms)
}
