package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/classdesk/classroom-api/internal/api/metrics"
	"github.com/classdesk/classroom-api/internal/core/domain"
	"github.com/classdesk/classroom-api/internal/core/ports"
)

// AssignmentHandler handles HTTP requests for assignment operations. Role
// gating happens route-side via Authorize; ownership is enforced by the
// service.
type AssignmentHandler struct {
	service ports.AssignmentService
}

func NewAssignmentHandler(service ports.AssignmentService) *AssignmentHandler {
	return &AssignmentHandler{service: service}
}

type assignmentRequest struct {
	Title         string `json:"title" validate:"required"`
	Description   string `json:"description"`
	DueDate       string `json:"due_date" validate:"required"`
	ClassLevel    string `json:"class_level" validate:"required,oneof=eleventh twelfth"`
	AttachmentURL string `json:"attachment_url"`
}

func (r assignmentRequest) toInput() (ports.AssignmentInput, error) {
	due, err := time.Parse("2006-01-02", r.DueDate)
	if err != nil {
		return ports.AssignmentInput{}, echo.NewHTTPError(http.StatusBadRequest, "due_date must be formatted as YYYY-MM-DD")
	}
	return ports.AssignmentInput{
		Title:         r.Title,
		Description:   r.Description,
		DueDate:       due,
		ClassLevel:    domain.ClassLevel(r.ClassLevel),
		AttachmentURL: r.AttachmentURL,
	}, nil
}

// Create handles POST /api/assignments/add.
//
// @Summary      Publish a new assignment
// @Tags         assignments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      assignmentRequest  true  "Assignment details"
// @Success      200   {object}  domain.Assignment
// @Failure      400   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Router       /api/assignments/add [post]
func (h *AssignmentHandler) Create(c echo.Context) error {
	var req assignmentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	in, err := req.toInput()
	if err != nil {
		return err
	}

	a, err := h.service.Create(c.Request().Context(), ctxIdentity(c), in)
	if err != nil {
		return err
	}

	metrics.AssignmentsCreatedTotal.WithLabelValues(string(a.ClassLevel)).Inc()
	return c.JSON(http.StatusOK, a)
}

// ListMine handles GET /api/assignments/myAssignment.
//
// @Summary      List assignments created by the calling teacher
// @Tags         assignments
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.Assignment
// @Failure      403  {object}  map[string]string
// @Router       /api/assignments/myAssignment [get]
func (h *AssignmentHandler) ListMine(c echo.Context) error {
	assignments, err := h.service.ListMine(c.Request().Context(), ctxIdentity(c))
	if err != nil {
		return err
	}
	if assignments == nil {
		assignments = []*domain.Assignment{}
	}
	return c.JSON(http.StatusOK, assignments)
}

// ListAvailable handles GET /api/assignments/available.
//
// @Summary      List assignments for the calling student's class level
// @Tags         assignments
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.Assignment
// @Failure      403  {object}  map[string]string
// @Router       /api/assignments/available [get]
func (h *AssignmentHandler) ListAvailable(c echo.Context) error {
	assignments, err := h.service.ListAvailable(c.Request().Context(), ctxIdentity(c))
	if err != nil {
		return err
	}
	if assignments == nil {
		assignments = []*domain.Assignment{}
	}
	return c.JSON(http.StatusOK, assignments)
}

// Update handles PUT /api/assignments/edit/:id.
//
// @Summary      Edit an owned assignment
// @Tags         assignments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string             true  "Assignment ID"
// @Param        body  body      assignmentRequest  true  "New assignment details"
// @Success      200   {object}  domain.Assignment
// @Failure      403   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /api/assignments/edit/{id} [put]
func (h *AssignmentHandler) Update(c echo.Context) error {
	var req assignmentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	in, err := req.toInput()
	if err != nil {
		return err
	}

	a, err := h.service.Update(c.Request().Context(), ctxIdentity(c), c.Param("id"), in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, a)
}

// Delete handles DELETE /api/assignments/delete/:id.
//
// @Summary      Delete an owned assignment
// @Tags         assignments
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "Assignment ID"
// @Success      200  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /api/assignments/delete/{id} [delete]
func (h *AssignmentHandler) Delete(c echo.Context) error {
	if err := h.service.Delete(c.Request().Context(), ctxIdentity(c), c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "assignment deleted"})
}
