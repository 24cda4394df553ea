package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// SendMessageRequest represents the request body for sending a chat message
type SendMessageRequest struct {
	Text string `json:"text" binding:"required"`
}

// SendMessage handles POST /api/v1/orders/:id/messages - appends a chat
// message to the order's negotiation log
func SendMessage(c *gin.Context) {
	user, ok := getCurrentUser(c)
	if !ok {
		return
	}
	orderID, ok := getOrderID(c)
	if !ok {
		return
	}

	var req SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.PureJSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Invalid request data",
				"details": err.Error(),
			},
		})
		return
	}

	order, err := orderEngine().SendMessage(orderID, user, req.Text)
	if err != nil {
		handleEngineError(c, err)
		return
	}

	c.PureJSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    order,
	})
}

// ListMessages handles GET /api/v1/orders/:id/messages - returns the full
// negotiation log in append order. Chat panels poll this endpoint.
func ListMessages(c *gin.Context) {
	user, ok := getCurrentUser(c)
	if !ok {
		return
	}
	orderID, ok := getOrderID(c)
	if !ok {
		return
	}

	messages, err := orderEngine().ListMessages(orderID, user)
	if err != nil {
		handleEngineError(c, err)
		return
	}

	c.PureJSON(http.StatusOK, gin.H{
		"success": true,
		"data":    messages,
	})
}

// SendCounterOfferRequest represents the request body for a counter offer
type SendCounterOfferRequest struct {
	Amount float64 `json:"amount" binding:"required,gt=0"`
	Note   string  `json:"note"`
}

// SendCounterOffer handles POST /api/v1/orders/:id/counter-offer - appends
// a priced proposal and moves the order into negotiation
func SendCounterOffer(c *gin.Context) {
	user, ok := getCurrentUser(c)
	if !ok {
		return
	}
	orderID, ok := getOrderID(c)
	if !ok {
		return
	}

	var req SendCounterOfferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.PureJSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Invalid request data",
				"details": err.Error(),
			},
		})
		return
	}

	order, err := orderEngine().SendCounterOffer(orderID, user, req.Amount, req.Note)
	if err != nil {
		handleEngineError(c, err)
		return
	}

	c.PureJSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    order,
	})
}

// AcceptOffer handles POST /api/v1/orders/:id/accept-offer - commits the
// caller to the current latest counter offer. The engine re-reads the log
// inside its critical section, so a click against a stale poll resolves to
// 409 or 403 instead of a stale acceptance.
func AcceptOffer(c *gin.Context) {
	user, ok := getCurrentUser(c)
	if !ok {
		return
	}
	orderID, ok := getOrderID(c)
	if !ok {
		return
	}

	order, err := orderEngine().AcceptLatestOffer(orderID, user)
	if err != nil {
		handleEngineError(c, err)
		return
	}

	c.PureJSON(http.StatusOK, gin.H{
		"success": true,
		"data":    order,
	})
}
