package request

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
	rg.GET("/users/:user_id/requests", h.ListForUser)
}

func (h *Handler) RegisterProtectedRoutes(rg *gin.RouterGroup) {
	rg.POST("/requests", h.Create)
	rg.PUT("/requests/:id/status", h.UpdateStatus)
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}
	req.RequesterID = c.GetInt64("user_id")

	r, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		switch err {
		case ErrNotFound:
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Donation not found")
		case ErrDonationUnavailable:
			response.Error(c, http.StatusConflict, "DONATION_UNAVAILABLE", "Donation is no longer available")
		case ErrValidation:
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "You cannot request your own donation")
		default:
			logrus.WithError(err).Error("request create failed")
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to create request")
		}
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"request": r})
}

func (h *Handler) ListForUser(c *gin.Context) {
	userID, err := strconv.ParseInt(c.Param("user_id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid user id")
		return
	}

	requests, err := h.service.ListForUser(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to fetch requests")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"requests": requests})
}

func (h *Handler) UpdateStatus(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request id")
		return
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	result, err := h.service.UpdateStatus(c.Request.Context(), id, c.GetInt64("user_id"), req.Status)
	if err != nil {
		switch err {
		case ErrValidation:
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Status must be accepted or rejected")
		case ErrNotFound:
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Request not found")
		case ErrForbidden:
			response.Error(c, http.StatusForbidden, "FORBIDDEN", "Only the donation owner may resolve this request")
		case ErrAlreadyResolved:
			response.Error(c, http.StatusConflict, "ALREADY_RESOLVED", "Request has already been resolved")
		case ErrDonationUnavailable:
			response.Error(c, http.StatusConflict, "DONATION_UNAVAILABLE", "Donation is no longer available")
		default:
			logrus.WithError(err).Error("request status update failed")
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to update request status")
		}
		return
	}

	payload := gin.H{"request": result.Request}
	if result.Match != nil {
		payload["match"] = result.Match
	}
	response.Success(c, http.StatusOK, payload)
}
