package deliveries

import (
	"github.com/gofiber/fiber/v2"
	"github.com/neoKP/subcontractor-truck-management-system-sub002/internal/app/errors"
	"github.com/neoKP/subcontractor-truck-management-system-sub002/internal/app/models"
	"github.com/neoKP/subcontractor-truck-management-system-sub002/internal/app/pkg"
	"github.com/neoKP/subcontractor-truck-management-system-sub002/internal/app/services"
)

type InvoiceHandler struct {
	invoiceService *services.InvoiceService
	renderer       services.DocumentRenderer
}

func NewInvoiceHandler(invoiceService *services.InvoiceService, renderer services.DocumentRenderer) *InvoiceHandler {
	return &InvoiceHandler{
		invoiceService: invoiceService,
		renderer:       renderer,
	}
}

func (h *InvoiceHandler) RegisterRoutes(router fiber.Router) {
	invoiceGroup := router.Group("/invoices")

	invoiceGroup.Post("/preview", h.Preview)
	invoiceGroup.Post("/", h.Commit)
	invoiceGroup.Get("/:docNo", h.GetInvoice)
	invoiceGroup.Get("/:docNo/render", h.RenderInvoice)
}

func (h *InvoiceHandler) Preview(c *fiber.Ctx) error {
	var req models.InvoiceBuildRequest
	if err := c.BodyParser(&req); err != nil {
		return pkg.ErrorResponse(c, err)
	}

	doc, err := h.invoiceService.Preview(&req)
	if err != nil {
		return pkg.ErrorResponse(c, err)
	}

	return pkg.SuccessResponse(c, doc)
}

func (h *InvoiceHandler) Commit(c *fiber.Ctx) error {
	var req models.InvoiceBuildRequest
	if err := c.BodyParser(&req); err != nil {
		return pkg.ErrorResponse(c, err)
	}
	if req.Actor == nil {
		return pkg.ErrorResponse(c, errors.NewBadRequestError("An acting user is required to confirm the invoice"))
	}

	actor, err := parseActor(*req.Actor)
	if err != nil {
		return pkg.ErrorResponse(c, err)
	}

	invoice, doc, err := h.invoiceService.Commit(&req, actor)
	if err != nil {
		return pkg.ErrorResponse(c, err)
	}

	return pkg.SuccessResponse(c, fiber.Map{
		"invoice":  invoice,
		"document": doc,
	})
}

func (h *InvoiceHandler) GetInvoice(c *fiber.Ctx) error {
	doc, err := h.invoiceService.GetInvoice(c.Params("docNo"))
	if err != nil {
		return pkg.ErrorResponse(c, err)
	}

	return pkg.SuccessResponse(c, doc)
}

// RenderInvoice hands the document to the injected renderer and streams the
// result back verbatim.
func (h *InvoiceHandler) RenderInvoice(c *fiber.Ctx) error {
	doc, err := h.invoiceService.GetInvoice(c.Params("docNo"))
	if err != nil {
		return pkg.ErrorResponse(c, err)
	}

	contentType, body, err := h.renderer.Render(doc)
	if err != nil {
		return pkg.ErrorResponse(c, errors.NewInternalServerError(err, "Failed to render invoice"))
	}

	c.Set(fiber.HeaderContentType, contentType)
	return c.Send(body)
}
