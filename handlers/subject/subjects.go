package subject

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sahilchouksey/studysavvy-api/model"
	"github.com/sahilchouksey/studysavvy-api/services"
	"github.com/sahilchouksey/studysavvy-api/utils/middleware"
	"github.com/sahilchouksey/studysavvy-api/utils/response"
	"github.com/sahilchouksey/studysavvy-api/utils/validation"
	"gorm.io/gorm"
)

// SubjectHandler handles subject-related requests
type SubjectHandler struct {
	db             *gorm.DB
	validator      *validation.Validator
	subjectService *services.SubjectService
}

// NewSubjectHandler creates a new subject handler
func NewSubjectHandler(db *gorm.DB, subjectService *services.SubjectService) *SubjectHandler {
	return &SubjectHandler{
		db:             db,
		validator:      validation.NewValidator(),
		subjectService: subjectService,
	}
}

// CreateSubjectRequest represents the request body for creating a subject
type CreateSubjectRequest struct {
	Name       string                  `json:"name" validate:"required,min=1,max=255"`
	Difficulty int                     `json:"difficulty" validate:"required,min=1,max=5"`
	ExamDate   string                  `json:"exam_date" validate:"omitempty"`
	Color      string                  `json:"color" validate:"omitempty,hexcolor"`
	Chapters   []services.ChapterInput `json:"chapters" validate:"omitempty,dive"`
}

// UpdateSubjectRequest represents the request body for updating a subject
type UpdateSubjectRequest struct {
	Name       string `json:"name" validate:"omitempty,min=1,max=255"`
	Difficulty *int   `json:"difficulty" validate:"omitempty,min=1,max=5"`
	ExamDate   string `json:"exam_date" validate:"omitempty"`
	Color      string `json:"color" validate:"omitempty,hexcolor"`
}

// parseExamDate accepts either a plain date or a full RFC3339 timestamp
func parseExamDate(value string) (*time.Time, error) {
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		t, err = time.Parse(time.RFC3339, value)
		if err != nil {
			return nil, err
		}
	}
	return &t, nil
}

// ListSubjects handles GET /api/v1/subjects
func (h *SubjectHandler) ListSubjects(c *fiber.Ctx) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "Not authenticated")
	}

	// Parse query parameters
	page, _ := strconv.Atoi(c.Query("page", "1"))
	limit, _ := strconv.Atoi(c.Query("limit", "10"))
	search := c.Query("search", "")

	// Build query
	query := h.db.Model(&model.Subject{}).Where("user_id = ?", userID)

	// Apply search filter
	if search != "" {
		query = query.Where("name ILIKE ?", "%"+search+"%")
	}

	// Get total count
	var total int64
	if err := query.Count(&total).Error; err != nil {
		return response.InternalServerError(c, "Failed to count subjects")
	}

	// Calculate pagination
	offset := (page - 1) * limit
	pagination := response.CalculatePagination(page, limit, total)

	// Get subjects with pagination
	var subjects []model.Subject
	if err := query.Preload("Chapters").
		Order("id ASC").
		Limit(limit).
		Offset(offset).
		Find(&subjects).Error; err != nil {
		return response.InternalServerError(c, "Failed to fetch subjects")
	}

	return response.Paginated(c, subjects, pagination)
}

// GetSubject handles GET /api/v1/subjects/:id
func (h *SubjectHandler) GetSubject(c *fiber.Ctx) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "Not authenticated")
	}
	id := c.Params("id")

	var subject model.Subject
	if err := h.db.Preload("Chapters").
		Where("user_id = ? AND id = ?", userID, id).
		First(&subject).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return response.NotFound(c, "Subject not found")
		}
		return response.InternalServerError(c, "Failed to fetch subject")
	}

	return response.Success(c, subject)
}

// CreateSubject handles POST /api/v1/subjects
func (h *SubjectHandler) CreateSubject(c *fiber.Ctx) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "Not authenticated")
	}

	// Parse and validate request
	var req CreateSubjectRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, err)
	}

	subject := model.Subject{
		UserID:     userID,
		Name:       req.Name,
		Difficulty: req.Difficulty,
		Color:      req.Color,
	}

	if req.ExamDate != "" {
		examDate, err := parseExamDate(req.ExamDate)
		if err != nil {
			return response.BadRequest(c, "Invalid exam date. Use YYYY-MM-DD")
		}
		subject.ExamDate = examDate
	}

	if err := h.subjectService.CreateSubject(c.Context(), &subject, req.Chapters); err != nil {
		return response.InternalServerError(c, "Failed to create subject")
	}

	return response.Created(c, subject)
}

// UpdateSubject handles PUT /api/v1/subjects/:id
func (h *SubjectHandler) UpdateSubject(c *fiber.Ctx) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "Not authenticated")
	}
	id := c.Params("id")

	// Parse and validate request
	var req UpdateSubjectRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, err)
	}

	// Find subject
	var subject model.Subject
	if err := h.db.Where("user_id = ? AND id = ?", userID, id).
		First(&subject).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return response.NotFound(c, "Subject not found")
		}
		return response.InternalServerError(c, "Failed to fetch subject")
	}

	// Update fields
	if req.Name != "" {
		subject.Name = req.Name
	}
	if req.Difficulty != nil {
		subject.Difficulty = *req.Difficulty
	}
	if req.Color != "" {
		subject.Color = req.Color
	}
	if req.ExamDate != "" {
		examDate, err := parseExamDate(req.ExamDate)
		if err != nil {
			return response.BadRequest(c, "Invalid exam date. Use YYYY-MM-DD")
		}
		subject.ExamDate = examDate
	}

	if err := h.db.Save(&subject).Error; err != nil {
		return response.InternalServerError(c, "Failed to update subject")
	}

	return response.Success(c, subject)
}

// DeleteSubject handles DELETE /api/v1/subjects/:id
func (h *SubjectHandler) DeleteSubject(c *fiber.Ctx) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "Not authenticated")
	}

	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid subject ID")
	}

	if err := h.subjectService.DeleteSubject(c.Context(), userID, uint(id)); err != nil {
		if err == gorm.ErrRecordNotFound {
			return response.NotFound(c, "Subject not found")
		}
		return response.InternalServerError(c, "Failed to delete subject")
	}

	return response.Success(c, fiber.Map{
		"message": "Subject deleted",
	})
}
