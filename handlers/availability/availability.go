package availability

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/sahilchouksey/studysavvy-api/model"
	"github.com/sahilchouksey/studysavvy-api/utils/middleware"
	"github.com/sahilchouksey/studysavvy-api/utils/response"
	"github.com/sahilchouksey/studysavvy-api/utils/validation"
	"gorm.io/gorm"
)

// AvailabilityHandler handles weekly availability requests
type AvailabilityHandler struct {
	db        *gorm.DB
	validator *validation.Validator
}

// NewAvailabilityHandler creates a new availability handler
func NewAvailabilityHandler(db *gorm.DB) *AvailabilityHandler {
	return &AvailabilityHandler{
		db:        db,
		validator: validation.NewValidator(),
	}
}

// AvailabilityEntry is one weekday's declared study capacity
type AvailabilityEntry struct {
	Day   string  `json:"day" validate:"required"`
	Hours float64 `json:"hours" validate:"min=0,max=24"`
}

// ReplaceAvailabilityRequest represents the request body for PUT availability
type ReplaceAvailabilityRequest struct {
	Entries []AvailabilityEntry `json:"entries" validate:"required,dive"`
}

// GetAvailability handles GET /api/v1/availability
func (h *AvailabilityHandler) GetAvailability(c *fiber.Ctx) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "Not authenticated")
	}

	var entries []model.AvailableTime
	if err := h.db.Where("user_id = ?", userID).
		Order("id ASC").
		Find(&entries).Error; err != nil {
		return response.InternalServerError(c, "Failed to fetch availability")
	}

	return response.Success(c, entries)
}

// ReplaceAvailability handles PUT /api/v1/availability. The whole weekly
// table is replaced at once; a day absent from the request means zero hours.
func (h *AvailabilityHandler) ReplaceAvailability(c *fiber.Ctx) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "Not authenticated")
	}

	var req ReplaceAvailabilityRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, err)
	}

	seen := make(map[string]bool, len(req.Entries))
	for _, entry := range req.Entries {
		if !model.IsValidWeekday(entry.Day) {
			return response.BadRequest(c, fmt.Sprintf("Invalid weekday: %s", entry.Day))
		}
		if seen[entry.Day] {
			return response.BadRequest(c, fmt.Sprintf("Duplicate weekday: %s", entry.Day))
		}
		seen[entry.Day] = true
	}

	var saved []model.AvailableTime
	err := h.db.Transaction(func(tx *gorm.DB) error {
		// Hard delete so the unique user/day index does not trip over
		// soft-deleted rows
		if err := tx.Unscoped().
			Where("user_id = ?", userID).
			Delete(&model.AvailableTime{}).Error; err != nil {
			return err
		}

		for _, entry := range req.Entries {
			record := model.AvailableTime{
				UserID: userID,
				Day:    entry.Day,
				Hours:  entry.Hours,
			}
			if err := tx.Create(&record).Error; err != nil {
				return err
			}
			saved = append(saved, record)
		}
		return nil
	})
	if err != nil {
		return response.InternalServerError(c, "Failed to save availability")
	}

	return response.Success(c, saved)
}
