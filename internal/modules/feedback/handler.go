package feedback

import (
	"net/http"
	"strconv"

	"foodshare/internal/pkg/response"

	"github.com/gin-gonic/gin"
	logrus "github.com/sirupsen/logrus"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/users/:user_id/feedback", h.ListForUser)
}

func (h *Handler) RegisterProtectedRoutes(rg *gin.RouterGroup) {
	rg.POST("/feedback", h.Create)
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateFeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}
	req.AuthorID = c.GetInt64("user_id")

	f, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		switch err {
		case ErrValidation:
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Rating must be between 1 and 5")
		case ErrMatchNotFound:
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Match not found")
		case ErrForbidden:
			response.Error(c, http.StatusForbidden, "FORBIDDEN", "Only match participants may leave feedback")
		default:
			logrus.WithError(err).Error("feedback create failed")
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to submit feedback")
		}
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"feedback": f})
}

func (h *Handler) ListForUser(c *gin.Context) {
	userID, err := strconv.ParseInt(c.Param("user_id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid user id")
		return
	}

	feedback, err := h.service.ListForUser(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to fetch feedback")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"feedback": feedback})
}
