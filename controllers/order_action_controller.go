package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shubhshah23/emesa-digital/services"
)

// ApproveOrderRequest represents the request body for approving an order at
// the requester's target price
type ApproveOrderRequest struct {
	ExpectedCompletionDate *time.Time `json:"expected_completion_date"`
	AdminNotes             string     `json:"admin_notes"`
}

// ApproveOrder handles POST /api/v1/orders/:id/approve - reviewer accepts
// the requester's target price directly
func ApproveOrder(c *gin.Context) {
	user, ok := getCurrentUser(c)
	if !ok {
		return
	}
	orderID, ok := getOrderID(c)
	if !ok {
		return
	}

	// Body is optional: an empty approval takes the defaults
	var req ApproveOrderRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "VALIDATION_ERROR",
					"message": "Invalid request data",
					"details": err.Error(),
				},
			})
			return
		}
	}

	order, err := orderEngine().ApproveAtTarget(orderID, user, services.ApproveAtTargetInput{
		ExpectedCompletionDate: req.ExpectedCompletionDate,
		AdminNotes:             req.AdminNotes,
	})
	if err != nil {
		handleEngineError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    order,
	})
}

// RejectOrderRequest represents the request body for rejecting an order
type RejectOrderRequest struct {
	RejectionReason string `json:"rejection_reason" binding:"required"`
}

// RejectOrder handles POST /api/v1/orders/:id/reject - reviewer rejects the
// order with a reason
func RejectOrder(c *gin.Context) {
	user, ok := getCurrentUser(c)
	if !ok {
		return
	}
	orderID, ok := getOrderID(c)
	if !ok {
		return
	}

	var req RejectOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Invalid request data",
				"details": err.Error(),
			},
		})
		return
	}

	order, err := orderEngine().Reject(orderID, user, req.RejectionReason)
	if err != nil {
		handleEngineError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    order,
	})
}

// ConfirmPayment handles POST /api/v1/orders/:id/confirm-payment - relays
// the payment-confirmation signal for the agreed price
func ConfirmPayment(c *gin.Context) {
	user, ok := getCurrentUser(c)
	if !ok {
		return
	}
	orderID, ok := getOrderID(c)
	if !ok {
		return
	}

	order, err := orderEngine().ConfirmPayment(orderID, user)
	if err != nil {
		handleEngineError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    order,
	})
}

// AssignMachineRequest represents the request body for assigning a machine
type AssignMachineRequest struct {
	MachineID uint `json:"machine_id" binding:"required"`
}

// AssignMachine handles POST /api/v1/orders/:id/assign-machine - records
// the machine reference for an accepted order
func AssignMachine(c *gin.Context) {
	user, ok := getCurrentUser(c)
	if !ok {
		return
	}
	orderID, ok := getOrderID(c)
	if !ok {
		return
	}

	var req AssignMachineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Invalid request data",
				"details": err.Error(),
			},
		})
		return
	}

	order, err := orderEngine().AssignMachine(orderID, user, req.MachineID)
	if err != nil {
		handleEngineError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    order,
	})
}

// StartProduction handles POST /api/v1/orders/:id/start-production - moves
// an accepted order with an assigned machine into production
func StartProduction(c *gin.Context) {
	user, ok := getCurrentUser(c)
	if !ok {
		return
	}
	orderID, ok := getOrderID(c)
	if !ok {
		return
	}

	order, err := orderEngine().StartProduction(orderID, user)
	if err != nil {
		handleEngineError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    order,
	})
}

// CompleteOrderRequest represents the request body for completing an order
type CompleteOrderRequest struct {
	ActualCost *float64 `json:"actual_cost" binding:"omitempty,gt=0"`
}

// CompleteOrder handles POST /api/v1/orders/:id/complete - marks an
// in-production order as completed
func CompleteOrder(c *gin.Context) {
	user, ok := getCurrentUser(c)
	if !ok {
		return
	}
	orderID, ok := getOrderID(c)
	if !ok {
		return
	}

	// Body is optional: the actual cost may be omitted
	var req CompleteOrderRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "VALIDATION_ERROR",
					"message": "Invalid request data",
					"details": err.Error(),
				},
			})
			return
		}
	}

	order, err := orderEngine().Complete(orderID, user, req.ActualCost)
	if err != nil {
		handleEngineError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    order,
	})
}
