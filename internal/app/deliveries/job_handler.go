package deliveries

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/neoKP/subcontractor-truck-management-system-sub002/internal/app/errors"
	"github.com/neoKP/subcontractor-truck-management-system-sub002/internal/app/models"
	"github.com/neoKP/subcontractor-truck-management-system-sub002/internal/app/pkg"
	"github.com/neoKP/subcontractor-truck-management-system-sub002/internal/app/services"
)

type JobHandler struct {
	jobService        *services.JobService
	accountingService *services.AccountingService
	billingView       *services.BillingViewService
	auditService      *services.AuditService
}

func NewJobHandler(
	jobService *services.JobService,
	accountingService *services.AccountingService,
	billingView *services.BillingViewService,
	auditService *services.AuditService,
) *JobHandler {
	return &JobHandler{
		jobService:        jobService,
		accountingService: accountingService,
		billingView:       billingView,
		auditService:      auditService,
	}
}

func (h *JobHandler) RegisterRoutes(router fiber.Router) {
	jobGroup := router.Group("/jobs")

	jobGroup.Post("/", h.CreateJob)
	jobGroup.Get("/", h.ListJobs)
	jobGroup.Get("/:id", h.GetJob)
	jobGroup.Patch("/:id/cost", h.UpdateCost)
	jobGroup.Post("/:id/complete", h.CompleteJob)
	jobGroup.Post("/:id/cancel", h.CancelJob)
	jobGroup.Post("/:id/pod", h.AttachPod)
	jobGroup.Delete("/:id/pod/:podId", h.RemovePod)
	jobGroup.Post("/:id/accounting", h.AccountingTransition)
	jobGroup.Get("/:id/audit", h.GetAuditTrail)
}

func (h *JobHandler) CreateJob(c *fiber.Ctx) error {
	var req models.JobCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return pkg.ErrorResponse(c, err)
	}

	job, err := h.jobService.CreateJob(&req)
	if err != nil {
		return pkg.ErrorResponse(c, err)
	}

	return pkg.SuccessResponse(c, job)
}

// ListJobs projects the billing view. Filter and pagination state arrive as
// query parameters and map onto the explicit FilterState record.
func (h *JobHandler) ListJobs(c *fiber.Ctx) error {
	state := models.FilterState{
		Query:         c.Query("q"),
		Subcontractor: c.Query("subcontractor"),
		Bucket:        models.StatusBucket(c.Query("bucket", string(models.StatusBucketAll))),
	}

	if page, err := strconv.Atoi(c.Query("page", "1")); err == nil && page > 0 {
		state.Page = page
	} else {
		state.Page = 1
	}

	if from := c.Query("date_from"); from != "" {
		t, err := pkg.ParseServiceDate(from)
		if err != nil {
			return pkg.ErrorResponse(c, errors.NewBadRequestError("Invalid date_from"))
		}
		state.DateFrom = t
	}
	if to := c.Query("date_to"); to != "" {
		t, err := pkg.ParseServiceDate(to)
		if err != nil {
			return pkg.ErrorResponse(c, errors.NewBadRequestError("Invalid date_to"))
		}
		// Inclusive upper bound on the service day.
		end := t.Add(24*time.Hour - time.Nanosecond)
		state.DateTo = &end
	}

	view, err := h.billingView.List(state)
	if err != nil {
		return pkg.ErrorResponse(c, err)
	}

	return pkg.SuccessResponse(c, view)
}

func (h *JobHandler) GetJob(c *fiber.Ctx) error {
	job, err := h.jobService.GetJob(c.Params("id"))
	if err != nil {
		return pkg.ErrorResponse(c, err)
	}

	return pkg.SuccessResponse(c, job)
}

func (h *JobHandler) UpdateCost(c *fiber.Ctx) error {
	var req models.JobCostUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return pkg.ErrorResponse(c, err)
	}

	job, err := h.jobService.UpdateCost(c.Params("id"), &req)
	if err != nil {
		return pkg.ErrorResponse(c, err)
	}

	return pkg.SuccessResponse(c, job)
}

func (h *JobHandler) CompleteJob(c *fiber.Ctx) error {
	actor, err := h.parseStatusActor(c)
	if err != nil {
		return pkg.ErrorResponse(c, err)
	}

	job, err := h.jobService.CompleteJob(c.Params("id"), actor)
	if err != nil {
		return pkg.ErrorResponse(c, err)
	}

	return pkg.SuccessResponse(c, job)
}

func (h *JobHandler) CancelJob(c *fiber.Ctx) error {
	actor, err := h.parseStatusActor(c)
	if err != nil {
		return pkg.ErrorResponse(c, err)
	}

	job, err := h.jobService.CancelJob(c.Params("id"), actor)
	if err != nil {
		return pkg.ErrorResponse(c, err)
	}

	return pkg.SuccessResponse(c, job)
}

func (h *JobHandler) AttachPod(c *fiber.Ctx) error {
	var req models.PodAttachRequest
	if err := c.BodyParser(&req); err != nil {
		return pkg.ErrorResponse(c, err)
	}

	pod, err := h.jobService.AttachPod(c.Params("id"), &req)
	if err != nil {
		return pkg.ErrorResponse(c, err)
	}

	return pkg.SuccessResponse(c, pod)
}

func (h *JobHandler) RemovePod(c *fiber.Ctx) error {
	if err := h.jobService.RemovePod(c.Params("id"), c.Params("podId")); err != nil {
		return pkg.ErrorResponse(c, err)
	}

	return pkg.SuccessResponse(c, true)
}

// AccountingTransition runs the accounting state machine on one job. The
// reason supplied in the body satisfies the prompt protocol: an absent
// reason on REJECT or LOCK reads as a cancelled prompt.
func (h *JobHandler) AccountingTransition(c *fiber.Ctx) error {
	var req models.AccountingTransitionRequest
	if err := c.BodyParser(&req); err != nil {
		return pkg.ErrorResponse(c, err)
	}

	actor, err := parseActor(req.Actor)
	if err != nil {
		return pkg.ErrorResponse(c, err)
	}

	job, audit, err := h.accountingService.Transition(c.Params("id"), &req, actor, services.StaticReason(req.Reason))
	if err != nil {
		return pkg.ErrorResponse(c, err)
	}

	return pkg.SuccessResponse(c, fiber.Map{
		"job":   job,
		"audit": audit,
	})
}

func (h *JobHandler) GetAuditTrail(c *fiber.Ctx) error {
	pagination := models.PaginationRequest{}
	if page, err := strconv.Atoi(c.Query("page", "1")); err == nil {
		pagination.Page = page
	}
	if limit, err := strconv.Atoi(c.Query("limit", "10")); err == nil {
		pagination.Limit = limit
	}

	trail, err := h.auditService.GetJobAuditTrail(c.Params("id"), &pagination)
	if err != nil {
		return pkg.ErrorResponse(c, err)
	}

	return pkg.SuccessResponse(c, trail)
}

func (h *JobHandler) parseStatusActor(c *fiber.Ctx) (models.Actor, error) {
	var req models.JobStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return models.Actor{}, err
	}
	return parseActor(req.Actor)
}

func parseActor(req models.ActorRequest) (models.Actor, error) {
	userID, err := uuid.Parse(req.UserID)
	if err != nil {
		return models.Actor{}, errors.NewBadRequestError("Invalid user ID format")
	}
	return models.Actor{
		ID:   userID,
		Name: req.UserName,
		Role: req.UserRole,
	}, nil
}
