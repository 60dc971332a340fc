package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"course-service/internal/usecase/category"
)

// CategoryHandler serves the read-only category resource.
type CategoryHandler struct {
	svc category.Service
	log *zap.Logger
}

// NewCategoryHandler creates a new CategoryHandler instance
func NewCategoryHandler(svc category.Service, log *zap.Logger) *CategoryHandler {
	return &CategoryHandler{svc: svc, log: log}
}

// CategoryResponse is the JSON form of a category.
type CategoryResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// ListCategories handles GET /categories
func (h *CategoryHandler) ListCategories(c *gin.Context) {
	categories, err := h.svc.ListCategories(c.Request.Context())
	if err != nil {
		writeError(c, h.log, "ListCategories", err)
		return
	}

	resp := make([]CategoryResponse, len(categories))
	for i, cat := range categories {
		resp[i] = CategoryResponse{ID: cat.ID, Name: cat.Name}
	}
	c.JSON(http.StatusOK, resp)
}

// GetCategory handles GET /categories/:id
func (h *CategoryHandler) GetCategory(c *gin.Context) {
	id, ok := parseID(c, h.log)
	if !ok {
		return
	}

	cat, err := h.svc.GetCategory(c.Request.Context(), id)
	if err != nil {
		writeError(c, h.log, "GetCategory", err)
		return
	}

	c.JSON(http.StatusOK, CategoryResponse{ID: cat.ID, Name: cat.Name})
}
