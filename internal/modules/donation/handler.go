package donation

import (
	"net/http"
	"strconv"
	"time"

	"foodshare/internal/pkg/geo"
	"foodshare/internal/pkg/response"
	"foodshare/internal/pkg/upload"
	"foodshare/internal/repository"

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
	rg.GET("/donations", h.Search)
	rg.GET("/donations/:id", h.Get)
	rg.GET("/users/:user_id/donations", h.ListByDonor)
}

func (h *Handler) RegisterProtectedRoutes(rg *gin.RouterGroup) {
	rg.POST("/donations", h.Create)
	rg.PUT("/donations/:id/status", h.UpdateStatus)
}

func (h *Handler) Search(c *gin.Context) {
	var f repository.SearchFilter

	if v := c.Query("lat"); v != "" {
		if lat, err := strconv.ParseFloat(v, 64); err == nil {
			f.Lat = &lat
		}
	}
	if v := c.Query("lng"); v != "" {
		if lng, err := strconv.ParseFloat(v, 64); err == nil {
			f.Lng = &lng
		}
	}
	if v := c.Query("distance"); v != "" {
		if d, err := strconv.ParseFloat(v, 64); err == nil {
			f.RadiusMeters = &d
		}
	}
	if v := c.Query("category_id"); v != "" {
		if id, err := strconv.ParseInt(v, 10, 64); err == nil {
			f.CategoryID = &id
		}
	}
	f.Term = c.Query("search_term")

	donations, err := h.service.Search(c.Request.Context(), f)
	if err != nil {
		logrus.WithError(err).Error("donation search failed")
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to fetch donations")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"donations": donations})
}

func (h *Handler) Get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid donation id")
		return
	}

	details, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		if err == ErrNotFound {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Donation not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to fetch donation")
		return
	}

	location, err := geo.PointGeoJSON(details.Latitude, details.Longitude)
	if err != nil {
		logrus.WithError(err).WithField("donation_id", id).Error("location encoding failed")
	}
	response.Success(c, http.StatusOK, gin.H{
		"donation": details,
		"location": location,
	})
}

func (h *Handler) ListByDonor(c *gin.Context) {
	userID, err := strconv.ParseInt(c.Param("user_id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid user id")
		return
	}

	donations, err := h.service.ListByDonor(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to fetch donations")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"donations": donations})
}

func (h *Handler) Create(c *gin.Context) {
	req, ok := h.bindCreateRequest(c)
	if !ok {
		return
	}
	req.DonorID = c.GetInt64("user_id")

	d, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		if err == ErrValidation {
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid donation payload")
			return
		}
		logrus.WithError(err).Error("donation create failed")
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to create donation")
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"donation": d})
}

func (h *Handler) UpdateStatus(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid donation id")
		return
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	d, err := h.service.UpdateStatus(c.Request.Context(), id, c.GetInt64("user_id"), req.Status)
	if err != nil {
		switch err {
		case ErrValidation:
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Unknown donation status")
		case ErrNotFound:
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Donation not found")
		case ErrForbidden:
			response.Error(c, http.StatusForbidden, "FORBIDDEN", "Only the donor may update this donation")
		case ErrInvalidTransition:
			response.Error(c, http.StatusConflict, "INVALID_TRANSITION", "Status change not allowed from the current state")
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to update donation status")
		}
		return
	}

	response.Success(c, http.StatusOK, gin.H{"donation": d})
}

// bindCreateRequest accepts either a JSON body or a multipart form with an
// optional photo_file upload. An uploaded file wins over photo_url.
func (h *Handler) bindCreateRequest(c *gin.Context) (CreateDonationRequest, bool) {
	var req CreateDonationRequest

	if c.ContentType() != "multipart/form-data" {
		if err := c.ShouldBindJSON(&req); err != nil {
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
			return req, false
		}
		return req, true
	}

	req.CategoryID, _ = strconv.ParseInt(c.PostForm("category_id"), 10, 64)
	req.Title = c.PostForm("title")
	req.Description = c.PostForm("description")
	req.Quantity = c.PostForm("quantity")
	req.PhotoURL = c.PostForm("photo_url")
	req.PickupAddress = c.PostForm("pickup_address")
	req.Latitude, _ = strconv.ParseFloat(c.PostForm("latitude"), 64)
	req.Longitude, _ = strconv.ParseFloat(c.PostForm("longitude"), 64)

	expiry, err := parseExpiry(c.PostForm("expiry_date"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid expiry_date")
		return req, false
	}
	req.ExpiryDate = expiry

	if fh, err := c.FormFile("photo_file"); err == nil && fh != nil {
		path, err := upload.SavePhoto(c, fh)
		if err != nil {
			logrus.WithError(err).Error("photo upload failed")
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to store photo")
			return req, false
		}
		req.PhotoURL = path
	}

	return req, true
}

func parseExpiry(raw string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", raw)
}
