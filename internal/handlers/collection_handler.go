package handlers

import (
	"context"
	"errors"
	"time"

	"github.com/arzan03/doctasks/internal/services"
	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson"
)

// DocumentLister lists raw documents of a collection.
type DocumentLister interface {
	ListDocuments(ctx context.Context, name string, limit int64) ([]bson.M, error)
}

type CollectionHandler struct {
	lister DocumentLister
}

func NewCollectionHandler(l DocumentLister) *CollectionHandler {
	return &CollectionHandler{lister: l}
}

// ListDocuments lists the documents of users, articles or students
func (h *CollectionHandler) ListDocuments(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 100)
	if limit < 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "limit must not be negative"})
	}

	ctx, cancel := context.WithTimeout(c.UserContext(), 10*time.Second)
	defer cancel()

	docs, err := h.lister.ListDocuments(ctx, c.Params("name"), int64(limit))
	if errors.Is(err, services.ErrUnknownCollection) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch documents"})
	}
	return c.JSON(docs)
}
