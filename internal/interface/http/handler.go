package http

import (
	"io"
	"log/slog"
	"mime"
	"net/http"
	"path"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/linjia/ai-closet/internal/domain/auth"
	"github.com/linjia/ai-closet/internal/domain/schedule"
	"github.com/linjia/ai-closet/internal/domain/stylist"
	"github.com/linjia/ai-closet/internal/domain/wardrobe"
	"github.com/linjia/ai-closet/internal/domain/weather"
	"github.com/linjia/ai-closet/internal/domain/wishlist"
)

const maxPhotoBytes = 10 << 20 // 10 MiB

// Handler wires the HTTP transport to domain services.
type Handler struct {
	wardrobeSvc wardrobe.Service
	stylistSvc  stylist.Service
	wishlistSvc wishlist.Service
	scheduleSvc schedule.Service
	weatherSvc  weather.Service
	authSvc     auth.Service
	photos      wardrobe.PhotoStore
	logger      *slog.Logger
}

// NewHandler constructs the root HTTP handler.
func NewHandler(
	wardrobeSvc wardrobe.Service,
	stylistSvc stylist.Service,
	wishlistSvc wishlist.Service,
	scheduleSvc schedule.Service,
	weatherSvc weather.Service,
	authSvc auth.Service,
	photos wardrobe.PhotoStore,
	logger *slog.Logger,
) *Handler {
	return &Handler{
		wardrobeSvc: wardrobeSvc,
		stylistSvc:  stylistSvc,
		wishlistSvc: wishlistSvc,
		scheduleSvc: scheduleSvc,
		weatherSvc:  weatherSvc,
		authSvc:     authSvc,
		photos:      photos,
		logger:      logger.With("component", "http.handler"),
	}
}

// Healthz reports liveness.
func (h *Handler) Healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Weather returns current conditions for the coordinates in the query, or a
// greeting when no location was supplied.
func (h *Handler) Weather(c *gin.Context) {
	coords, err := parseCoordinates(c.Query("lat"), c.Query("lon"))
	if err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", err.Error(), err))
		return
	}

	report, err := h.weatherSvc.Report(c.Request.Context(), coords)
	if err != nil {
		abortWithError(c, domainError(err))
		return
	}
	c.JSON(http.StatusOK, report)
}

// Photo streams a stored photo back to the client.
func (h *Handler) Photo(c *gin.Context) {
	key := strings.TrimPrefix(c.Param("key"), "/")
	if key == "" {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", "photo key is required", nil))
		return
	}
	reader, mimeType, err := h.photos.Get(c.Request.Context(), key)
	if err != nil {
		abortWithError(c, NewHTTPError(http.StatusNotFound, "not_found", "photo not found", err))
		return
	}
	defer reader.Close()

	if mimeType == "" {
		mimeType = mime.TypeByExtension(path.Ext(key))
	}
	if mimeType == "" {
		mimeType = "application/octet-stream"
	}
	c.Header("Content-Type", mimeType)
	c.Header("Cache-Control", "public, max-age=86400")
	c.Status(http.StatusOK)
	if _, err := io.Copy(c.Writer, reader); err != nil {
		h.logger.Warn("photo streaming interrupted", "key", key, "error", err)
	}
}

func parseCoordinates(rawLat, rawLon string) (*weather.Coordinates, error) {
	if rawLat == "" && rawLon == "" {
		return nil, nil
	}
	lat, err := strconv.ParseFloat(rawLat, 64)
	if err != nil || lat < -90 || lat > 90 {
		return nil, errInvalidCoordinates
	}
	lon, err := strconv.ParseFloat(rawLon, 64)
	if err != nil || lon < -180 || lon > 180 {
		return nil, errInvalidCoordinates
	}
	return &weather.Coordinates{Lat: lat, Lon: lon}, nil
}

var errInvalidCoordinates = &HTTPError{
	Status:  http.StatusBadRequest,
	Code:    "invalid_request",
	Message: "lat and lon must both be valid coordinates",
}

// readPhoto extracts the uploaded "photo" form file.
func readPhoto(c *gin.Context) (wardrobe.Photo, *HTTPError) {
	file, err := c.FormFile("photo")
	if err != nil {
		return wardrobe.Photo{}, NewHTTPError(http.StatusBadRequest, "invalid_request", "photo file is required", err)
	}
	if file.Size > maxPhotoBytes {
		return wardrobe.Photo{}, NewHTTPError(http.StatusRequestEntityTooLarge, "invalid_request", "photo exceeds the 10MiB limit", nil)
	}
	opened, err := file.Open()
	if err != nil {
		return wardrobe.Photo{}, NewHTTPError(http.StatusBadRequest, "invalid_request", "photo could not be read", err)
	}
	defer opened.Close()
	data, err := io.ReadAll(io.LimitReader(opened, maxPhotoBytes+1))
	if err != nil {
		return wardrobe.Photo{}, NewHTTPError(http.StatusBadRequest, "invalid_request", "photo could not be read", err)
	}
	if len(data) > maxPhotoBytes {
		return wardrobe.Photo{}, NewHTTPError(http.StatusRequestEntityTooLarge, "invalid_request", "photo exceeds the 10MiB limit", nil)
	}

	mimeType := file.Header.Get("Content-Type")
	if mimeType == "" {
		mimeType = mime.TypeByExtension(path.Ext(file.Filename))
	}
	if mimeType == "" {
		mimeType = http.DetectContentType(data)
	}
	return wardrobe.Photo{
		Filename: file.Filename,
		MimeType: mimeType,
		Data:     data,
	}, nil
}
