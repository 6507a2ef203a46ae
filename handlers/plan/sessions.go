package plan

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sahilchouksey/studysavvy-api/model"
	"github.com/sahilchouksey/studysavvy-api/utils/middleware"
	"github.com/sahilchouksey/studysavvy-api/utils/response"
	"gorm.io/gorm"
)

// UpdateSessionRequest represents the request body for updating a session
type UpdateSessionRequest struct {
	Completed *bool `json:"completed" validate:"required"`
}

// ListSessions handles GET /api/v1/sessions. Supports optional from/to
// date filters (YYYY-MM-DD, inclusive).
func (h *PlanHandler) ListSessions(c *fiber.Ctx) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "Not authenticated")
	}

	query := h.db.Where("user_id = ?", userID)

	if from := c.Query("from"); from != "" {
		fromDate, err := time.Parse("2006-01-02", from)
		if err != nil {
			return response.BadRequest(c, "Invalid from date. Use YYYY-MM-DD")
		}
		query = query.Where("scheduled_date >= ?", fromDate)
	}

	if to := c.Query("to"); to != "" {
		toDate, err := time.Parse("2006-01-02", to)
		if err != nil {
			return response.BadRequest(c, "Invalid to date. Use YYYY-MM-DD")
		}
		query = query.Where("scheduled_date <= ?", toDate)
	}

	var sessions []model.StudySession
	if err := query.Order("scheduled_date ASC, id ASC").
		Find(&sessions).Error; err != nil {
		return response.InternalServerError(c, "Failed to fetch sessions")
	}

	return response.Success(c, sessions)
}

// UpdateSession handles PATCH /api/v1/sessions/:uuid
func (h *PlanHandler) UpdateSession(c *fiber.Ctx) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "Not authenticated")
	}

	var req UpdateSessionRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if req.Completed == nil {
		return response.BadRequest(c, "Completed flag is required")
	}

	session, err := h.plannerService.SetSessionCompleted(c.Context(), userID, c.Params("uuid"), *req.Completed)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return response.NotFound(c, "Session not found")
		}
		return response.InternalServerError(c, "Failed to update session")
	}

	h.invalidateProgress(c, userID)

	return response.Success(c, session)
}
