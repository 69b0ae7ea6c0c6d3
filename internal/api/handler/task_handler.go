package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/taskforge/rewards-api/internal/api/metrics"
	"github.com/taskforge/rewards-api/internal/core/ports"
)

// TaskHandler handles HTTP requests for the task catalog.
type TaskHandler struct {
	service ports.TaskService
}

func NewTaskHandler(service ports.TaskService) *TaskHandler {
	return &TaskHandler{service: service}
}

// List handles GET /api/tasks.
//
// @Summary      List tasks visible to the caller
// @Tags         tasks
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   object
// @Failure      401  {object}  errorResponse
// @Router       /api/tasks [get]
func (h *TaskHandler) List(c echo.Context) error {
	caller, err := ctxCaller(c)
	if err != nil {
		return err
	}

	tasks, err := h.service.ListVisible(c.Request().Context(), caller)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, tasks)
}

// Create handles POST /api/tasks (admin only).
//
// @Summary      Create a task
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createTaskRequest  true  "Task details"
// @Success      201   {object}  object
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /api/tasks [post]
func (h *TaskHandler) Create(c echo.Context) error {
	var req createTaskRequest
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

	task, err := h.service.Create(c.Request().Context(), ports.CreateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		Points:      req.Points,
		CreatedBy:   caller.UID,
	})
	if err != nil {
		return err
	}

	metrics.TasksCreatedTotal.Inc()
	return c.JSON(http.StatusCreated, task)
}

// Delete handles DELETE /api/tasks/:id (admin only).
//
// @Summary      Delete a task, its submissions, and reverse granted credit
// @Tags         tasks
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "Task id"
// @Success      200  {object}  messageResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/tasks/{id} [delete]
func (h *TaskHandler) Delete(c echo.Context) error {
	if err := h.service.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "task deleted"})
}

// DeleteAll handles DELETE /api/tasks/all (admin only).
//
// @Summary      Delete every task and submission, reversing granted credit
// @Tags         tasks
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  messageResponse
// @Failure      403  {object}  errorResponse
// @Router       /api/tasks/all [delete]
func (h *TaskHandler) DeleteAll(c echo.Context) error {
	if err := h.service.DeleteAll(c.Request().Context()); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "all tasks and submissions deleted"})
}
