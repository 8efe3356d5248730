package movie

import (
	"errors"
	"net/http"
	"path/filepath"
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

// ListMovies returns the catalog, newest first, narrowed by the query
// filters the front page uses.
func (h *Handler) ListMovies(c *gin.Context) {
	filter := ListFilter{
		Category: c.Query("category"),
		Genre:    c.Query("genre"),
		Language: c.Query("language"),
		Search:   c.Query("search"),
	}
	if v := c.Query("featured"); v != "" {
		featured := v == "true" || v == "1"
		filter.Featured = &featured
	}

	movies, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, err.Error())
		return
	}

	response.Success(c, http.StatusOK, gin.H{"movies": toResponseList(movies)})
}

// GetFeatured is a shortcut for the carousel on the landing page.
func (h *Handler) GetFeatured(c *gin.Context) {
	featured := true
	movies, err := h.service.List(c.Request.Context(), ListFilter{Featured: &featured})
	if err != nil {
		response.Error(c, http.StatusInternalServerError, err.Error())
		return
	}

	response.Success(c, http.StatusOK, gin.H{"movies": toResponseList(movies)})
}

func (h *Handler) GetMovie(c *gin.Context) {
	id, ok := h.movieID(c)
	if !ok {
		return
	}

	m, avg, count, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"movie": toResponseWithStats(m, avg, count)})
}

// CreateMovie accepts a multipart form: metadata fields plus a required
// "video" file and an optional "thumbnail".
func (h *Handler) CreateMovie(c *gin.Context) {
	title := c.PostForm("title")
	if title == "" {
		response.Error(c, http.StatusBadRequest, "title is required")
		return
	}

	m := &Movie{
		Title:       title,
		Description: c.PostForm("description"),
		Duration:    c.PostForm("duration"),
		Genre:       c.PostForm("genre"),
		Category:    c.PostForm("category"),
		Language:    c.PostForm("language"),
		Quality:     c.PostForm("quality"),
	}
	if v := c.PostForm("year"); v != "" {
		year, err := strconv.Atoi(v)
		if err != nil {
			response.Error(c, http.StatusBadRequest, "invalid year")
			return
		}
		m.Year = year
	}
	if v := c.PostForm("imdb_rating"); v != "" {
		rating, err := strconv.ParseFloat(v, 64)
		if err != nil {
			response.Error(c, http.StatusBadRequest, "invalid imdb_rating")
			return
		}
		m.IMDbRating = rating
	}
	m.IsFeatured = c.PostForm("is_featured") == "true"

	video, err := c.FormFile("video")
	if err != nil {
		response.Error(c, http.StatusBadRequest, ErrNoVideoFile.Error())
		return
	}
	thumbnail, _ := c.FormFile("thumbnail")

	created, err := h.service.Create(c.Request.Context(), m, video, thumbnail)
	if err != nil {
		switch {
		case errors.Is(err, ErrNoVideoFile), errors.Is(err, ErrFileTooLarge), errors.Is(err, ErrInvalidMimeType):
			response.Error(c, http.StatusBadRequest, err.Error())
		default:
			response.Error(c, http.StatusInternalServerError, err.Error())
		}
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"message": "Movie uploaded successfully",
		"movie":   toResponse(created),
	})
}

func (h *Handler) UpdateMovie(c *gin.Context) {
	id, ok := h.movieID(c)
	if !ok {
		return
	}

	var req UpdateMovieRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	m, err := h.service.Update(c.Request.Context(), id, &req)
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"message": "Movie updated successfully",
		"movie":   toResponse(m),
	})
}

func (h *Handler) DeleteMovie(c *gin.Context) {
	id, ok := h.movieID(c)
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "Movie deleted successfully"})
}

// CountView is called by the player when playback starts.
func (h *Handler) CountView(c *gin.Context) {
	id, ok := h.movieID(c)
	if !ok {
		return
	}

	if err := h.service.CountView(c.Request.Context(), id); err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, nil)
}

// CountDownload counts a download the client handles itself, without
// pulling the file through this server.
func (h *Handler) CountDownload(c *gin.Context) {
	id, ok := h.movieID(c)
	if !ok {
		return
	}

	if err := h.service.CountDownload(c.Request.Context(), id); err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, nil)
}

func (h *Handler) RateMovie(c *gin.Context) {
	id, ok := h.movieID(c)
	if !ok {
		return
	}

	var req RateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, ErrInvalidRating.Error())
		return
	}

	avg, count, err := h.service.Rate(c.Request.Context(), id, req.Rating, c.ClientIP())
	if err != nil {
		if errors.Is(err, ErrInvalidRating) {
			response.Error(c, http.StatusBadRequest, err.Error())
			return
		}
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"average_rating": avg,
		"rating_count":   count,
	})
}

// Stream serves the video file for in-browser playback.
func (h *Handler) Stream(c *gin.Context) {
	id, ok := h.movieID(c)
	if !ok {
		return
	}

	path, err := h.service.MediaPath(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.File(path)
}

// Download serves the file as an attachment and counts the download.
func (h *Handler) Download(c *gin.Context) {
	id, ok := h.movieID(c)
	if !ok {
		return
	}

	path, err := h.service.MediaPath(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err)
		return
	}

	if err := h.service.CountDownload(c.Request.Context(), id); err != nil {
		h.writeError(c, err)
		return
	}

	c.FileAttachment(path, filepath.Base(path))
}

func (h *Handler) Thumbnail(c *gin.Context) {
	id, ok := h.movieID(c)
	if !ok {
		return
	}

	path, err := h.service.ThumbnailPath(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.File(path)
}

func (h *Handler) movieID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusNotFound, ErrMovieNotFound.Error())
		return 0, false
	}
	return id, true
}

func (h *Handler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrMovieNotFound), errors.Is(err, ErrNoMediaFile):
		response.Error(c, http.StatusNotFound, err.Error())
	default:
		response.Error(c, http.StatusInternalServerError, err.Error())
	}
}
