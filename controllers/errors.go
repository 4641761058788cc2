package controllers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"bayka/cart"
	"bayka/libs"
	"bayka/middleware"
	"bayka/models"
	"bayka/services"

	"github.com/gin-gonic/gin"
)

// statusFor maps service errors onto HTTP statuses.
func statusFor(err error) int {
	switch {
	case errors.Is(err, services.ErrProductNotFound),
		errors.Is(err, services.ErrPostNotFound),
		errors.Is(err, services.ErrSessionNotFound):
		return http.StatusNotFound
	case errors.Is(err, services.ErrOutOfStock),
		errors.Is(err, services.ErrInsufficientStock),
		errors.Is(err, services.ErrDuplicate):
		return http.StatusConflict
	case errors.Is(err, services.ErrInvalidVariant),
		errors.Is(err, services.ErrInvalidProduct),
		errors.Is(err, services.ErrInvalidPost),
		errors.Is(err, services.ErrInvalidWebhook),
		errors.Is(err, services.ErrInvalidEmail),
		errors.Is(err, cart.ErrInvalidItem),
		errors.Is(err, libs.ErrImageTooLarge),
		errors.Is(err, libs.ErrImageType):
		return http.StatusBadRequest
	case errors.Is(err, services.ErrInvalidCredentials),
		errors.Is(err, libs.ErrInvalidSignature):
		return http.StatusUnauthorized
	case errors.Is(err, services.ErrCheckoutFailed):
		return http.StatusBadGateway
	case errors.Is(err, libs.ErrUploadsDisabled):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes err with its mapped status. Internal and upstream
// failures are logged in full and reach the client only as a generic error.
func respondError(c *gin.Context, message string, err error) {
	status := statusFor(err)
	detail := err.Error()
	switch status {
	case http.StatusInternalServerError:
		detail = "internal server error"
	case http.StatusBadGateway:
		detail = services.ErrCheckoutFailed.Error()
	}
	if detail != err.Error() {
		log.Printf("[%s] %s %s: %v", middleware.GetRequestID(c), c.Request.Method, c.FullPath(), err)
	}
	c.JSON(status, models.ErrorResponse{
		Success:   false,
		Message:   message,
		Error:     detail,
		RequestID: middleware.GetRequestID(c),
	})
}

func respondBadRequest(c *gin.Context, message string, err error) {
	c.JSON(http.StatusBadRequest, models.ErrorResponse{
		Success:   false,
		Message:   message,
		Error:     err.Error(),
		RequestID: middleware.GetRequestID(c),
	})
}

func parseInt64Param(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id < 1 {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Success: false,
			Message: "Invalid " + name,
		})
		return 0, false
	}
	return id, true
}

func queryInt(c *gin.Context, name string, def int) int {
	v, err := strconv.Atoi(c.Query(name))
	if err != nil {
		return def
	}
	return v
}

func productFilterFromQuery(c *gin.Context) models.ProductFilter {
	return models.ProductFilter{
		Search:     c.Query("search"),
		CategoryID: queryInt(c, "category", 0),
		Page:       queryInt(c, "page", 1),
		Limit:      queryInt(c, "limit", 0),
	}
}
