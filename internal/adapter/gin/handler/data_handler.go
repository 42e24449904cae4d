package handler

import (
	"net/http"

	"wegrowup-api/internal/usecase/user"
	"wegrowup-api/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// DataHandler handles HTTP requests for the data endpoint
type DataHandler struct {
	uc  user.Usecase
	log *zap.Logger
}

// NewDataHandler creates a new DataHandler instance
func NewDataHandler(uc user.Usecase, log *zap.Logger) *DataHandler {
	return &DataHandler{
		uc:  uc,
		log: log,
	}
}

// UserResponse represents the HTTP response for user data
type UserResponse struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// GetData handles GET /api
func (h *DataHandler) GetData(c *gin.Context) {
	ctx := c.Request.Context()

	resp := h.uc.GetData(ctx)

	logger.WithContext(ctx, h.log).Debug("Gin GetData request", zap.String("id", resp.ID))

	c.JSON(http.StatusOK, UserResponse{
		ID:       resp.ID,
		Name:     resp.Name,
		Email:    resp.Email,
		Password: resp.Password,
	})
}
