package todo

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sahilchouksey/studysavvy-api/model"
	"github.com/sahilchouksey/studysavvy-api/utils/middleware"
	"github.com/sahilchouksey/studysavvy-api/utils/response"
	"github.com/sahilchouksey/studysavvy-api/utils/validation"
	"gorm.io/gorm"
)

// TodoHandler handles task list requests
type TodoHandler struct {
	db        *gorm.DB
	validator *validation.Validator
}

// NewTodoHandler creates a new todo handler
func NewTodoHandler(db *gorm.DB) *TodoHandler {
	return &TodoHandler{
		db:        db,
		validator: validation.NewValidator(),
	}
}

// CreateTodoRequest represents the request body for creating a todo
type CreateTodoRequest struct {
	Name        string `json:"name" validate:"required,min=1,max=255"`
	Description string `json:"description" validate:"omitempty,max=1000"`
	Due         string `json:"due" validate:"omitempty"`
}

// UpdateTodoRequest represents the request body for updating a todo
type UpdateTodoRequest struct {
	Name        string `json:"name" validate:"omitempty,min=1,max=255"`
	Description string `json:"description" validate:"omitempty,max=1000"`
	Due         string `json:"due" validate:"omitempty"`
	Status      string `json:"status" validate:"omitempty,oneof=pending completed"`
}

// ListTodos handles GET /api/v1/todos
func (h *TodoHandler) ListTodos(c *fiber.Ctx) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "Not authenticated")
	}

	// Parse query parameters
	page, _ := strconv.Atoi(c.Query("page", "1"))
	limit, _ := strconv.Atoi(c.Query("limit", "10"))
	status := c.Query("status", "")

	query := h.db.Model(&model.Todo{}).Where("user_id = ?", userID)
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return response.InternalServerError(c, "Failed to count todos")
	}

	offset := (page - 1) * limit
	pagination := response.CalculatePagination(page, limit, total)

	var todos []model.Todo
	if err := query.Order("due ASC NULLS LAST, id ASC").
		Limit(limit).
		Offset(offset).
		Find(&todos).Error; err != nil {
		return response.InternalServerError(c, "Failed to fetch todos")
	}

	return response.Paginated(c, todos, pagination)
}

// CreateTodo handles POST /api/v1/todos
func (h *TodoHandler) CreateTodo(c *fiber.Ctx) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "Not authenticated")
	}

	var req CreateTodoRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, err)
	}

	todo := model.Todo{
		UserID:      userID,
		Name:        req.Name,
		Description: req.Description,
		Status:      "pending",
	}

	if req.Due != "" {
		due, err := time.Parse(time.RFC3339, req.Due)
		if err != nil {
			return response.BadRequest(c, "Invalid due date. Use RFC3339")
		}
		todo.Due = &due
	}

	if err := h.db.Create(&todo).Error; err != nil {
		return response.InternalServerError(c, "Failed to create todo")
	}

	return response.Created(c, todo)
}

// UpdateTodo handles PUT /api/v1/todos/:id
func (h *TodoHandler) UpdateTodo(c *fiber.Ctx) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "Not authenticated")
	}

	var req UpdateTodoRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, err)
	}

	var todo model.Todo
	if err := h.db.Where("user_id = ? AND id = ?", userID, c.Params("id")).
		First(&todo).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return response.NotFound(c, "Todo not found")
		}
		return response.InternalServerError(c, "Failed to fetch todo")
	}

	// Update fields
	if req.Name != "" {
		todo.Name = req.Name
	}
	if req.Description != "" {
		todo.Description = req.Description
	}
	if req.Status != "" {
		todo.Status = req.Status
	}
	if req.Due != "" {
		due, err := time.Parse(time.RFC3339, req.Due)
		if err != nil {
			return response.BadRequest(c, "Invalid due date. Use RFC3339")
		}
		todo.Due = &due
	}

	if err := h.db.Save(&todo).Error; err != nil {
		return response.InternalServerError(c, "Failed to update todo")
	}

	return response.Success(c, todo)
}

// DeleteTodo handles DELETE /api/v1/todos/:id
func (h *TodoHandler) DeleteTodo(c *fiber.Ctx) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "Not authenticated")
	}

	result := h.db.Where("user_id = ? AND id = ?", userID, c.Params("id")).
		Delete(&model.Todo{})
	if result.Error != nil {
		return response.InternalServerError(c, "Failed to delete todo")
	}
	if result.RowsAffected == 0 {
		return response.NotFound(c, "Todo not found")
	}

	return response.Success(c, fiber.Map{
		"message": "Todo deleted",
	})
}
