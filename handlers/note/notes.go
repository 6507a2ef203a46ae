package note

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/sahilchouksey/studysavvy-api/model"
	"github.com/sahilchouksey/studysavvy-api/utils/middleware"
	"github.com/sahilchouksey/studysavvy-api/utils/response"
	"github.com/sahilchouksey/studysavvy-api/utils/validation"
	"gorm.io/gorm"
)

// NoteHandler handles study note requests
type NoteHandler struct {
	db        *gorm.DB
	validator *validation.Validator
}

// NewNoteHandler creates a new note handler
func NewNoteHandler(db *gorm.DB) *NoteHandler {
	return &NoteHandler{
		db:        db,
		validator: validation.NewValidator(),
	}
}

// CreateNoteRequest represents the request body for creating a note
type CreateNoteRequest struct {
	Title     string `json:"title" validate:"required,min=1,max=255"`
	Content   string `json:"content" validate:"omitempty"`
	SubjectID *uint  `json:"subject_id" validate:"omitempty"`
}

// UpdateNoteRequest represents the request body for updating a note
type UpdateNoteRequest struct {
	Title     string  `json:"title" validate:"omitempty,min=1,max=255"`
	Content   *string `json:"content"`
	SubjectID *uint   `json:"subject_id"`
}

// ListNotes handles GET /api/v1/notes
func (h *NoteHandler) ListNotes(c *fiber.Ctx) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "Not authenticated")
	}

	page, _ := strconv.Atoi(c.Query("page", "1"))
	limit, _ := strconv.Atoi(c.Query("limit", "10"))

	query := h.db.Model(&model.Note{}).Where("user_id = ?", userID)

	// Optional subject filter
	if subjectID := c.Query("subject_id"); subjectID != "" {
		query = query.Where("subject_id = ?", subjectID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return response.InternalServerError(c, "Failed to count notes")
	}

	offset := (page - 1) * limit
	pagination := response.CalculatePagination(page, limit, total)

	var notes []model.Note
	if err := query.Order("updated_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&notes).Error; err != nil {
		return response.InternalServerError(c, "Failed to fetch notes")
	}

	return response.Paginated(c, notes, pagination)
}

// GetNote handles GET /api/v1/notes/:id
func (h *NoteHandler) GetNote(c *fiber.Ctx) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "Not authenticated")
	}

	var note model.Note
	if err := h.db.Where("user_id = ? AND id = ?", userID, c.Params("id")).
		First(&note).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return response.NotFound(c, "Note not found")
		}
		return response.InternalServerError(c, "Failed to fetch note")
	}

	return response.Success(c, note)
}

// verifySubjectOwnership checks that a referenced subject belongs to the user
func (h *NoteHandler) verifySubjectOwnership(userID, subjectID uint) error {
	var subject model.Subject
	return h.db.Where("user_id = ? AND id = ?", userID, subjectID).First(&subject).Error
}

// CreateNote handles POST /api/v1/notes
func (h *NoteHandler) CreateNote(c *fiber.Ctx) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "Not authenticated")
	}

	var req CreateNoteRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, err)
	}

	if req.SubjectID != nil {
		if err := h.verifySubjectOwnership(userID, *req.SubjectID); err != nil {
			return response.BadRequest(c, "Subject not found")
		}
	}

	note := model.Note{
		UserID:    userID,
		SubjectID: req.SubjectID,
		Title:     req.Title,
		Content:   req.Content,
	}

	if err := h.db.Create(&note).Error; err != nil {
		return response.InternalServerError(c, "Failed to create note")
	}

	return response.Created(c, note)
}

// UpdateNote handles PUT /api/v1/notes/:id
func (h *NoteHandler) UpdateNote(c *fiber.Ctx) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "Not authenticated")
	}

	var req UpdateNoteRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, err)
	}

	var note model.Note
	if err := h.db.Where("user_id = ? AND id = ?", userID, c.Params("id")).
		First(&note).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return response.NotFound(c, "Note not found")
		}
		return response.InternalServerError(c, "Failed to fetch note")
	}

	// Update fields
	if req.Title != "" {
		note.Title = req.Title
	}
	if req.Content != nil {
		note.Content = *req.Content
	}
	if req.SubjectID != nil {
		if err := h.verifySubjectOwnership(userID, *req.SubjectID); err != nil {
			return response.BadRequest(c, "Subject not found")
		}
		note.SubjectID = req.SubjectID
	}

	if err := h.db.Save(&note).Error; err != nil {
		return response.InternalServerError(c, "Failed to update note")
	}

	return response.Success(c, note)
}

// DeleteNote handles DELETE /api/v1/notes/:id
func (h *NoteHandler) DeleteNote(c *fiber.Ctx) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "Not authenticated")
	}

	result := h.db.Where("user_id = ? AND id = ?", userID, c.Params("id")).
		Delete(&model.Note{})
	if result.Error != nil {
		return response.InternalServerError(c, "Failed to delete note")
	}
	if result.RowsAffected == 0 {
		return response.NotFound(c, "Note not found")
	}

	return response.Success(c, fiber.Map{
		"message": "Note deleted",
	})
}
