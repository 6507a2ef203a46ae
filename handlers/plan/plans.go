package plan

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sahilchouksey/studysavvy-api/services"
	"github.com/sahilchouksey/studysavvy-api/utils/cache"
	"github.com/sahilchouksey/studysavvy-api/utils/middleware"
	"github.com/sahilchouksey/studysavvy-api/utils/response"
	"github.com/sahilchouksey/studysavvy-api/utils/validation"
	"gorm.io/gorm"
)

// PlanHandler handles study plan requests
type PlanHandler struct {
	db              *gorm.DB
	validator       *validation.Validator
	plannerService  *services.PlannerService
	progressService *services.ProgressService
	cache           *cache.RedisCache
}

// NewPlanHandler creates a new plan handler. The cache may be nil when Redis
// is unavailable; progress summaries are then computed on every request.
func NewPlanHandler(db *gorm.DB, plannerService *services.PlannerService, progressService *services.ProgressService, redisCache *cache.RedisCache) *PlanHandler {
	return &PlanHandler{
		db:              db,
		validator:       validation.NewValidator(),
		plannerService:  plannerService,
		progressService: progressService,
		cache:           redisCache,
	}
}

// GeneratePlanRequest represents the request body for generating a plan
type GeneratePlanRequest struct {
	StartDate string `json:"start_date" validate:"required"`
	EndDate   string `json:"end_date" validate:"required"`
}

const progressCacheTTL = 5 * time.Minute

func progressCacheKey(userID uint) string {
	return fmt.Sprintf("progress:user:%d", userID)
}

func (h *PlanHandler) invalidateProgress(c *fiber.Ctx, userID uint) {
	if h.cache != nil {
		_ = h.cache.Delete(c.Context(), progressCacheKey(userID))
	}
}

// GeneratePlan handles POST /api/v1/plans/generate
func (h *PlanHandler) GeneratePlan(c *fiber.Ctx) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "Not authenticated")
	}

	var req GeneratePlanRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, err)
	}

	startDate, err := time.Parse("2006-01-02", req.StartDate)
	if err != nil {
		return response.BadRequest(c, "Invalid start date. Use YYYY-MM-DD")
	}
	endDate, err := time.Parse("2006-01-02", req.EndDate)
	if err != nil {
		return response.BadRequest(c, "Invalid end date. Use YYYY-MM-DD")
	}
	if endDate.Before(startDate) {
		return response.BadRequest(c, "End date must not be before start date")
	}

	result, err := h.plannerService.GeneratePlan(c.Context(), userID, startDate, endDate)
	if err != nil {
		return response.InternalServerError(c, "Failed to generate plan")
	}

	h.invalidateProgress(c, userID)

	return response.Created(c, result)
}

// GetCurrentPlan handles GET /api/v1/plans/current
func (h *PlanHandler) GetCurrentPlan(c *fiber.Ctx) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "Not authenticated")
	}

	plan, err := h.plannerService.CurrentPlan(c.Context(), userID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return response.NotFound(c, "No plan generated yet")
		}
		return response.InternalServerError(c, "Failed to fetch plan")
	}

	return response.Success(c, plan)
}

// GetProgress handles GET /api/v1/plans/progress
func (h *PlanHandler) GetProgress(c *fiber.Ctx) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "Not authenticated")
	}

	key := progressCacheKey(userID)

	if h.cache != nil {
		var cached services.ProgressSummary
		if err := h.cache.GetJSON(c.Context(), key, &cached); err == nil {
			return response.Success(c, cached)
		}
	}

	summary, err := h.progressService.Summary(c.Context(), userID)
	if err != nil {
		return response.InternalServerError(c, "Failed to compute progress")
	}

	if h.cache != nil {
		_ = h.cache.SetJSON(c.Context(), key, summary, progressCacheTTL)
	}

	return response.Success(c, summary)
}
