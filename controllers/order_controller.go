package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shubhshah23/emesa-digital/services"
)

// CreateOrderRequest represents the request body for submitting an order
type CreateOrderRequest struct {
	ProductDescription string   `json:"product_description" binding:"required"`
	Quantity           int      `json:"quantity" binding:"required,gt=0"`
	MaterialType       string   `json:"material_type" binding:"required"`
	MaterialGrade      string   `json:"material_grade"`
	MaterialThickness  string   `json:"material_thickness"`
	SurfaceTreatment   string   `json:"surface_treatment"`
	PackingStandard    string   `json:"packing_standard"`
	TargetPrice        *float64 `json:"target_price" binding:"omitempty,gt=0"`
	StepFileS3Key      *string  `json:"step_file_s3_key"`
	DraftDesignS3Key   *string  `json:"draft_design_s3_key"`
}

// CreateOrder handles POST /api/v1/orders - submits a new order (requesters only)
func CreateOrder(c *gin.Context) {
	user, ok := getCurrentUser(c)
	if !ok {
		return
	}

	// Parse request body
	var req CreateOrderRequest
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

	order, err := orderEngine().SubmitOrder(user, services.SubmitOrderInput{
		ProductDescription: req.ProductDescription,
		Quantity:           req.Quantity,
		MaterialType:       req.MaterialType,
		MaterialGrade:      req.MaterialGrade,
		MaterialThickness:  req.MaterialThickness,
		SurfaceTreatment:   req.SurfaceTreatment,
		PackingStandard:    req.PackingStandard,
		TargetPrice:        req.TargetPrice,
		StepFileS3Key:      req.StepFileS3Key,
		DraftDesignS3Key:   req.DraftDesignS3Key,
	})
	if err != nil {
		handleEngineError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    order,
	})
}

// ListOrders handles GET /api/v1/orders - lists the caller's visible orders.
// Reviewers see every order; requesters see only their own. Dashboards poll
// this endpoint on a timer.
func ListOrders(c *gin.Context) {
	user, ok := getCurrentUser(c)
	if !ok {
		return
	}

	orders, err := orderEngine().ListOrders(user)
	if err != nil {
		handleEngineError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    orders,
	})
}

// GetOrder handles GET /api/v1/orders/:id - returns one order snapshot
func GetOrder(c *gin.Context) {
	user, ok := getCurrentUser(c)
	if !ok {
		return
	}

	orderID, ok := getOrderID(c)
	if !ok {
		return
	}

	order, err := orderEngine().GetOrder(orderID, user)
	if err != nil {
		handleEngineError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    order,
	})
}
