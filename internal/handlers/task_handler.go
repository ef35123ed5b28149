package handlers

import (
	"context"
	"errors"

	"github.com/arzan03/doctasks/internal/runner"
	"github.com/gofiber/fiber/v2"
)

// TaskRunner runs catalogue tasks.
type TaskRunner interface {
	Tasks() []runner.Task
	RunOne(ctx context.Context, name string) (runner.Outcome, error)
	Run(ctx context.Context, names ...string) (*runner.Report, error)
}

type TaskHandler struct {
	runner TaskRunner
}

func NewTaskHandler(r TaskRunner) *TaskHandler {
	return &TaskHandler{runner: r}
}

// ListTasks returns the task catalogue
func (h *TaskHandler) ListTasks(c *fiber.Ctx) error {
	return c.JSON(h.runner.Tasks())
}

// RunTask runs the task named in the URL
func (h *TaskHandler) RunTask(c *fiber.Ctx) error {
	outcome, err := h.runner.RunOne(c.UserContext(), c.Params("name"))
	if errors.Is(err, runner.ErrUnknownTask) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(outcome)
}

// RunAll runs the tasks listed in the body, or every task when none are listed
func (h *TaskHandler) RunAll(c *fiber.Ctx) error {
	var request struct {
		Tasks []string `json:"tasks"`
	}
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&request); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
		}
	}

	report, err := h.runner.Run(c.UserContext(), request.Tasks...)
	if errors.Is(err, runner.ErrUnknownTask) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(report)
}
