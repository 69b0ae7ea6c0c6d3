package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/taskforge/rewards-api/internal/api/metrics"
	"github.com/taskforge/rewards-api/internal/core/ports"
)

// SubmissionHandler handles HTTP requests for the submission lifecycle.
type SubmissionHandler struct {
	service ports.SubmissionService
}

func NewSubmissionHandler(service ports.SubmissionService) *SubmissionHandler {
	return &SubmissionHandler{service: service}
}

// Submit handles POST /api/tasks/:id/submit (members only).
//
// @Summary      Submit or resubmit a task
// @Tags         submissions
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string             true   "Task id"
// @Param        body  body      submitTaskRequest  false  "Optional proof of completion"
// @Success      201   {object}  submissionResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /api/tasks/{id}/submit [post]
func (h *SubmissionHandler) Submit(c echo.Context) error {
	var req submitTaskRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	caller, err := ctxCaller(c)
	if err != nil {
		return err
	}

	detail, err := h.service.Submit(c.Request().Context(), ports.SubmitInput{
		TaskID:   c.Param("id"),
		Caller:   caller,
		MediaURL: req.MediaURL,
	})
	if err != nil {
		return err
	}

	kind := "new"
	if detail.Resubmitted {
		kind = "resubmit"
	}
	metrics.SubmissionsCreatedTotal.WithLabelValues(kind).Inc()

	return c.JSON(http.StatusCreated, toSubmissionResponse(detail, false))
}

// ListPending handles GET /api/tasks/submissions/pending (admin only).
//
// @Summary      List pending submissions for review
// @Tags         submissions
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   submissionResponse
// @Failure      403  {object}  errorResponse
// @Router       /api/tasks/submissions/pending [get]
func (h *SubmissionHandler) ListPending(c echo.Context) error {
	details, err := h.service.ListPending(c.Request().Context())
	if err != nil {
		return err
	}

	resp := make([]submissionResponse, 0, len(details))
	for i := range details {
		resp = append(resp, toSubmissionResponse(&details[i], true))
	}
	return c.JSON(http.StatusOK, resp)
}

// ListMine handles GET /api/tasks/submissions/mine (members only).
//
// @Summary      List the caller's own submissions
// @Tags         submissions
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   submissionResponse
// @Failure      403  {object}  errorResponse
// @Router       /api/tasks/submissions/mine [get]
func (h *SubmissionHandler) ListMine(c echo.Context) error {
	caller, err := ctxCaller(c)
	if err != nil {
		return err
	}

	details, err := h.service.ListForUser(c.Request().Context(), caller.UID)
	if err != nil {
		return err
	}

	resp := make([]submissionResponse, 0, len(details))
	for i := range details {
		resp = append(resp, toSubmissionResponse(&details[i], false))
	}
	return c.JSON(http.StatusOK, resp)
}

// Approve handles POST /api/tasks/submissions/:id/approve (admin only).
//
// @Summary      Approve a pending submission and credit its owner
// @Tags         submissions
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "Submission id"
// @Success      200  {object}  submissionResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Failure      409  {object}  errorResponse
// @Router       /api/tasks/submissions/{id}/approve [post]
func (h *SubmissionHandler) Approve(c echo.Context) error {
	detail, err := h.service.Approve(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}

	metrics.SubmissionsReviewedTotal.WithLabelValues("approved").Inc()
	metrics.PointsCreditedTotal.Add(float64(detail.Task.Points))

	return c.JSON(http.StatusOK, toSubmissionResponse(detail, true))
}

// Reject handles POST /api/tasks/submissions/:id/reject (admin only).
//
// @Summary      Reject a pending submission with a reason
// @Tags         submissions
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                   true  "Submission id"
// @Param        body  body      rejectSubmissionRequest  true  "Decline reason"
// @Success      200   {object}  submissionResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /api/tasks/submissions/{id}/reject [post]
func (h *SubmissionHandler) Reject(c echo.Context) error {
	var req rejectSubmissionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	detail, err := h.service.Reject(c.Request().Context(), c.Param("id"), req.DeclineReason)
	if err != nil {
		return err
	}

	metrics.SubmissionsReviewedTotal.WithLabelValues("rejected").Inc()

	return c.JSON(http.StatusOK, toSubmissionResponse(detail, true))
}
