package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/classdesk/classroom-api/internal/api/metrics"
	"github.com/classdesk/classroom-api/internal/core/domain"
	"github.com/classdesk/classroom-api/internal/core/ports"
)

// SubmissionHandler handles HTTP requests for submission operations.
type SubmissionHandler struct {
	service ports.SubmissionService
}

func NewSubmissionHandler(service ports.SubmissionService) *SubmissionHandler {
	return &SubmissionHandler{service: service}
}

type submitRequest struct {
	AssignmentID  string `json:"assignment_id" validate:"required"`
	Text          string `json:"text"`
	AttachmentURL string `json:"attachment_url"`
}

type statusUpdateRequest struct {
	Status string `json:"status" validate:"required"`
}

// Submit handles POST /api/submissions/submit.
//
// @Summary      Submit an answer to an assignment
// @Tags         submissions
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      submitRequest  true  "Submission details"
// @Success      200   {object}  domain.Submission
// @Failure      403   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /api/submissions/submit [post]
func (h *SubmissionHandler) Submit(c echo.Context) error {
	var req submitRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	sub, err := h.service.Submit(c.Request().Context(), ctxIdentity(c), ports.SubmitInput{
		AssignmentID:  req.AssignmentID,
		Text:          req.Text,
		AttachmentURL: req.AttachmentURL,
	})
	if err != nil {
		return err
	}

	metrics.SubmissionsTotal.Inc()
	return c.JSON(http.StatusOK, sub)
}

// ListMine handles GET /api/submissions/my.
//
// @Summary      List the calling student's submissions
// @Tags         submissions
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.Submission
// @Failure      403  {object}  map[string]string
// @Router       /api/submissions/my [get]
func (h *SubmissionHandler) ListMine(c echo.Context) error {
	subs, err := h.service.ListMine(c.Request().Context(), ctxIdentity(c))
	if err != nil {
		return err
	}
	if subs == nil {
		subs = []*domain.Submission{}
	}
	return c.JSON(http.StatusOK, subs)
}

// ListForAssignment handles GET /api/submissions/assignment/:id.
//
// @Summary      List submissions against an owned assignment
// @Tags         submissions
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "Assignment ID"
// @Success      200  {array}   domain.Submission
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /api/submissions/assignment/{id} [get]
func (h *SubmissionHandler) ListForAssignment(c echo.Context) error {
	subs, err := h.service.ListForAssignment(c.Request().Context(), ctxIdentity(c), c.Param("id"))
	if err != nil {
		return err
	}
	if subs == nil {
		subs = []*domain.Submission{}
	}
	return c.JSON(http.StatusOK, subs)
}

// UpdateStatus handles PUT /api/submissions/update-status/:id.
//
// @Summary      Update a submission's status
// @Tags         submissions
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string               true  "Submission ID"
// @Param        body  body      statusUpdateRequest  true  "New status"
// @Success      200   {object}  domain.Submission
// @Failure      403   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /api/submissions/update-status/{id} [put]
func (h *SubmissionHandler) UpdateStatus(c echo.Context) error {
	var req statusUpdateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	sub, err := h.service.UpdateStatus(c.Request().Context(), ctxIdentity(c), c.Param("id"), req.Status)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, sub)
}
