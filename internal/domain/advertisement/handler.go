package advertisement

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"moviebox/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// GetAdsByPosition serves the active ads for a placement slot. Every ad
// in the response gets its impression counted.
func (h *Handler) GetAdsByPosition(c *gin.Context) {
	position := c.Param("position")

	ads, err := h.service.ServeByPosition(c.Request.Context(), position)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, err.Error())
		return
	}

	response.Success(c, http.StatusOK, gin.H{"ads": toResponseList(ads)})
}

// TrackClick counts a click and returns the target URL for the
// client-side redirect. redirect_url is null when the ad has no target,
// in which case the front end skips the redirect.
func (h *Handler) TrackClick(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusNotFound, ErrAdNotFound.Error())
		return
	}

	ad, err := h.service.TrackClick(c.Request.Context(), id, c.ClientIP(), c.Request.UserAgent())
	if err != nil {
		if errors.Is(err, ErrAdNotFound) {
			response.Error(c, http.StatusNotFound, err.Error())
			return
		}
		response.Error(c, http.StatusInternalServerError, err.Error())
		return
	}

	response.Success(c, http.StatusOK, gin.H{"redirect_url": ad.ClickURL})
}

// GetAllAds lists every ad for the admin panel, newest first.
func (h *Handler) GetAllAds(c *gin.Context) {
	ads, err := h.service.ListAll(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, err.Error())
		return
	}

	response.Success(c, http.StatusOK, gin.H{"ads": toResponseList(ads)})
}

func (h *Handler) CreateAd(c *gin.Context) {
	var req CreateAdRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	ad, err := h.service.Create(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, ErrInvalidDate) {
			response.Error(c, http.StatusBadRequest, err.Error())
			return
		}
		response.Error(c, http.StatusInternalServerError, err.Error())
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"message": "Advertisement created successfully",
		"ad":      toResponse(ad),
	})
}

func (h *Handler) UpdateAd(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusNotFound, ErrAdNotFound.Error())
		return
	}

	var req UpdateAdRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	ad, err := h.service.Update(c.Request.Context(), id, &req)
	if err != nil {
		switch {
		case errors.Is(err, ErrAdNotFound):
			response.Error(c, http.StatusNotFound, err.Error())
		case errors.Is(err, ErrInvalidDate):
			response.Error(c, http.StatusBadRequest, err.Error())
		default:
			response.Error(c, http.StatusInternalServerError, err.Error())
		}
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"message": "Advertisement updated successfully",
		"ad":      toResponse(ad),
	})
}

func (h *Handler) DeleteAd(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusNotFound, ErrAdNotFound.Error())
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, ErrAdNotFound) {
			response.Error(c, http.StatusNotFound, err.Error())
			return
		}
		response.Error(c, http.StatusInternalServerError, err.Error())
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "Advertisement deleted successfully"})
}

// GetAnalytics reports aggregate counters over the whole ad set.
// Read-only, no impression counting here.
func (h *Handler) GetAnalytics(c *gin.Context) {
	analytics, err := h.service.Analytics(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, err.Error())
		return
	}

	response.Success(c, http.StatusOK, gin.H{"analytics": analytics})
}
