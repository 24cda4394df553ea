package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shubhshah23/emesa-digital/config"
	"github.com/shubhshah23/emesa-digital/middleware"
	"github.com/shubhshah23/emesa-digital/models"
	"github.com/shubhshah23/emesa-digital/services"
)

// orderEngine builds the negotiation engine over the current database and
// machine registry.
func orderEngine() *services.OrderService {
	return services.NewOrderService(config.GetDB(), services.GetMachineRegistry())
}

// getCurrentUser resolves the authenticated caller to a User row. On
// failure it writes the error response and returns false.
func getCurrentUser(c *gin.Context) (*models.User, bool) {
	auth0ID, err := middleware.GetUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "UNAUTHORIZED",
				"message": "Could not extract user information",
			},
		})
		return nil, false
	}

	db := config.GetDB()
	var user models.User
	if err := db.Where("auth0_id = ?", auth0ID).First(&user).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "USER_NOT_FOUND",
				"message": "User profile not found. Please create a profile first.",
			},
		})
		return nil, false
	}

	return &user, true
}

// getOrderID parses the :id URL parameter. On failure it writes the error
// response and returns false.
func getOrderID(c *gin.Context) (uint, bool) {
	orderID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_REQUEST",
				"message": "Order ID must be a positive integer",
			},
		})
		return 0, false
	}
	return uint(orderID), true
}

// handleEngineError translates a domain error from the order engine into
// the HTTP error envelope. Conflicts are 409 so polling clients know to
// re-fetch state and retry the decision, not the request.
func handleEngineError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	code := "INTERNAL_ERROR"

	switch {
	case errors.Is(err, services.ErrValidation):
		status, code = http.StatusBadRequest, "VALIDATION_ERROR"
	case errors.Is(err, services.ErrUnknownOrder):
		status, code = http.StatusNotFound, "ORDER_NOT_FOUND"
	case errors.Is(err, services.ErrUnknownMachine):
		status, code = http.StatusBadRequest, "MACHINE_NOT_FOUND"
	case errors.Is(err, services.ErrInvalidAuthor):
		status, code = http.StatusForbidden, "INVALID_AUTHOR"
	case errors.Is(err, services.ErrStateConflict):
		status, code = http.StatusConflict, "STATE_CONFLICT"
	}

	message := "An internal error occurred"
	if status != http.StatusInternalServerError {
		message = err.Error()
	}

	c.JSON(status, gin.H{
		"success": false,
		"error": gin.H{
			"code":    code,
			"message": message,
		},
	})
}
