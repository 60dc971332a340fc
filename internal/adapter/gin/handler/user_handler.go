package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"course-service/internal/usecase/user"
)

// UserHandler handles HTTP requests for user operations
type UserHandler struct {
	svc user.Service
	log *zap.Logger
}

// NewUserHandler creates a new UserHandler instance
func NewUserHandler(svc user.Service, log *zap.Logger) *UserHandler {
	return &UserHandler{
		svc: svc,
		log: log,
	}
}

// CreateUserRequest represents the HTTP request body for creating a user.
// An id in the body is ignored.
type CreateUserRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

// UpdateUserRequest represents the HTTP request body for updating a user.
// Omitted or empty fields keep their stored value.
type UpdateUserRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

// UserResponse represents the HTTP response for user data
type UserResponse struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

func toUserResponse(u *user.User) UserResponse {
	return UserResponse{
		ID:    u.ID,
		Name:  u.Name,
		Email: u.Email,
		Phone: u.Phone,
	}
}

// ListUsers handles GET /users
func (h *UserHandler) ListUsers(c *gin.Context) {
	query := c.Query("query")
	h.log.Debug("ListUsers request", zap.String("query", query))

	resp, err := h.svc.ListUsers(c.Request.Context(), user.ListUsersRequest{Query: query})
	if err != nil {
		writeError(c, h.log, "ListUsers", err)
		return
	}

	users := make([]UserResponse, len(resp.Users))
	for i := range resp.Users {
		users[i] = toUserResponse(&resp.Users[i])
	}

	c.JSON(http.StatusOK, users)
}

// GetUser handles GET /users/:id
func (h *UserHandler) GetUser(c *gin.Context) {
	id, ok := parseID(c, h.log)
	if !ok {
		return
	}

	u, err := h.svc.GetUser(c.Request.Context(), user.GetUserRequest{ID: id})
	if err != nil {
		writeError(c, h.log, "GetUser", err)
		return
	}

	c.JSON(http.StatusOK, toUserResponse(u))
}

// CreateUser handles POST /users
func (h *UserHandler) CreateUser(c *gin.Context) {
	var req CreateUserRequest
	if !bindJSON(c, h.log, &req) {
		return
	}

	h.log.Info("CreateUser request", zap.String("name", req.Name), zap.String("email", req.Email))

	u, err := h.svc.CreateUser(c.Request.Context(), user.CreateUserRequest{
		Name:     req.Name,
		Email:    req.Email,
		Phone:    req.Phone,
		Password: req.Password,
	})
	if err != nil {
		writeError(c, h.log, "CreateUser", err)
		return
	}

	c.Header("Location", strings.TrimSuffix(c.Request.URL.Path, "/")+"/"+strconv.FormatInt(u.ID, 10))
	c.JSON(http.StatusCreated, toUserResponse(u))
}

// UpdateUser handles PUT /users/:id
func (h *UserHandler) UpdateUser(c *gin.Context) {
	id, ok := parseID(c, h.log)
	if !ok {
		return
	}

	var req UpdateUserRequest
	if !bindJSON(c, h.log, &req) {
		return
	}

	h.log.Info("UpdateUser request", zap.Int64("id", id), zap.String("name", req.Name), zap.String("email", req.Email))

	u, err := h.svc.UpdateUser(c.Request.Context(), user.UpdateUserRequest{
		ID:       id,
		Name:     req.Name,
		Email:    req.Email,
		Phone:    req.Phone,
		Password: req.Password,
	})
	if err != nil {
		writeError(c, h.log, "UpdateUser", err)
		return
	}

	c.JSON(http.StatusOK, toUserResponse(u))
}

// DeleteUser handles DELETE /users/:id
func (h *UserHandler) DeleteUser(c *gin.Context) {
	id, ok := parseID(c, h.log)
	if !ok {
		return
	}

	h.log.Info("DeleteUser request", zap.Int64("id", id))

	if err := h.svc.DeleteUser(c.Request.Context(), user.DeleteUserRequest{ID: id}); err != nil {
		writeError(c, h.log, "DeleteUser", err)
		return
	}

	c.Status(http.StatusNoContent)
}
