package match

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
	rg.GET("/users/:user_id/matches", h.ListForUser)
}

func (h *Handler) RegisterProtectedRoutes(rg *gin.RouterGroup) {
	rg.PUT("/matches/:id/status", h.UpdateStatus)
}

func (h *Handler) ListForUser(c *gin.Context) {
	userID, err := strconv.ParseInt(c.Param("user_id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid user id")
		return
	}

	matches, err := h.service.ListForUser(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to fetch matches")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"matches": matches})
}

func (h *Handler) UpdateStatus(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid match id")
		return
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	m, err := h.service.UpdateStatus(c.Request.Context(), id, c.GetInt64("user_id"), req.Status)
	if err != nil {
		switch err {
		case ErrValidation:
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Unknown match status")
		case ErrNotFound:
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Match not found")
		case ErrDonationNotFound:
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Associated donation not found")
		case ErrForbidden:
			response.Error(c, http.StatusForbidden, "FORBIDDEN", "Only match participants may update this match")
		case ErrAlreadyResolved:
			response.Error(c, http.StatusConflict, "ALREADY_RESOLVED", "Match has already been resolved")
		default:
			logrus.WithError(err).Error("match status update failed")
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to update match status")
		}
		return
	}

	response.Success(c, http.StatusOK, gin.H{"match": m})
}
