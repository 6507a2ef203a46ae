package subject

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sahilchouksey/studysavvy-api/model"
	"github.com/sahilchouksey/studysavvy-api/utils/middleware"
	"github.com/sahilchouksey/studysavvy-api/utils/response"
	"gorm.io/gorm"
)

// CreateChapterRequest represents the request body for adding a chapter
type CreateChapterRequest struct {
	Name           string  `json:"name" validate:"required,min=1,max=255"`
	Difficulty     int     `json:"difficulty" validate:"required,min=1,max=5"`
	EstimatedHours float64 `json:"estimated_hours" validate:"required,gt=0"`
}

// UpdateChapterRequest represents the request body for updating a chapter
type UpdateChapterRequest struct {
	Name           string   `json:"name" validate:"omitempty,min=1,max=255"`
	Difficulty     *int     `json:"difficulty" validate:"omitempty,min=1,max=5"`
	EstimatedHours *float64 `json:"estimated_hours" validate:"omitempty,gt=0"`
	Completed      *bool    `json:"completed"`
}

// loadOwnedSubject fetches a subject only if it belongs to the user
func (h *SubjectHandler) loadOwnedSubject(userID uint, subjectID string) (*model.Subject, error) {
	var subject model.Subject
	err := h.db.Where("user_id = ? AND id = ?", userID, subjectID).First(&subject).Error
	if err != nil {
		return nil, err
	}
	return &subject, nil
}

// ListChapters handles GET /api/v1/subjects/:subject_id/chapters
func (h *SubjectHandler) ListChapters(c *fiber.Ctx) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "Not authenticated")
	}

	subject, err := h.loadOwnedSubject(userID, c.Params("subject_id"))
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return response.NotFound(c, "Subject not found")
		}
		return response.InternalServerError(c, "Failed to fetch subject")
	}

	var chapters []model.Chapter
	if err := h.db.Where("subject_id = ?", subject.ID).
		Order("id ASC").
		Find(&chapters).Error; err != nil {
		return response.InternalServerError(c, "Failed to fetch chapters")
	}

	return response.Success(c, chapters)
}

// CreateChapter handles POST /api/v1/subjects/:subject_id/chapters
func (h *SubjectHandler) CreateChapter(c *fiber.Ctx) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "Not authenticated")
	}

	var req CreateChapterRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, err)
	}

	subject, err := h.loadOwnedSubject(userID, c.Params("subject_id"))
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return response.NotFound(c, "Subject not found")
		}
		return response.InternalServerError(c, "Failed to fetch subject")
	}

	chapter := model.Chapter{
		SubjectID:      subject.ID,
		Name:           req.Name,
		Difficulty:     req.Difficulty,
		EstimatedHours: req.EstimatedHours,
	}

	if err := h.db.Create(&chapter).Error; err != nil {
		return response.InternalServerError(c, "Failed to create chapter")
	}

	return response.Created(c, chapter)
}

// UpdateChapter handles PUT /api/v1/subjects/:subject_id/chapters/:id
func (h *SubjectHandler) UpdateChapter(c *fiber.Ctx) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "Not authenticated")
	}

	var req UpdateChapterRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, err)
	}

	subject, err := h.loadOwnedSubject(userID, c.Params("subject_id"))
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return response.NotFound(c, "Subject not found")
		}
		return response.InternalServerError(c, "Failed to fetch subject")
	}

	var chapter model.Chapter
	if err := h.db.Where("subject_id = ? AND id = ?", subject.ID, c.Params("id")).
		First(&chapter).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return response.NotFound(c, "Chapter not found")
		}
		return response.InternalServerError(c, "Failed to fetch chapter")
	}

	// Update fields
	if req.Name != "" {
		chapter.Name = req.Name
	}
	if req.Difficulty != nil {
		chapter.Difficulty = *req.Difficulty
	}
	if req.EstimatedHours != nil {
		chapter.EstimatedHours = *req.EstimatedHours
	}
	if req.Completed != nil {
		chapter.Completed = *req.Completed
	}

	if err := h.db.Save(&chapter).Error; err != nil {
		return response.InternalServerError(c, "Failed to update chapter")
	}

	return response.Success(c, chapter)
}

// DeleteChapter handles DELETE /api/v1/subjects/:subject_id/chapters/:id
func (h *SubjectHandler) DeleteChapter(c *fiber.Ctx) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "Not authenticated")
	}

	subject, err := h.loadOwnedSubject(userID, c.Params("subject_id"))
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return response.NotFound(c, "Subject not found")
		}
		return response.InternalServerError(c, "Failed to fetch subject")
	}

	var chapter model.Chapter
	if err := h.db.Where("subject_id = ? AND id = ?", subject.ID, c.Params("id")).
		First(&chapter).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return response.NotFound(c, "Chapter not found")
		}
		return response.InternalServerError(c, "Failed to fetch chapter")
	}

	if err := h.db.Delete(&chapter).Error; err != nil {
		return response.InternalServerError(c, "Failed to delete chapter")
	}

	return response.Success(c, fiber.Map{
		"message": "Chapter deleted",
	})
}
