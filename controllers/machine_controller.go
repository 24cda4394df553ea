package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shubhshah23/emesa-digital/services"
)

// ListMachines handles GET /api/v1/machines - lists registered machines
// with their suppliers so assignment pickers can populate. Inventory
// management itself belongs to the registry collaborator.
func ListMachines(c *gin.Context) {
	if _, ok := getCurrentUser(c); !ok {
		return
	}

	machines, err := services.GetMachineRegistry().ListMachines()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "REGISTRY_ERROR",
				"message": "Failed to list machines",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    machines,
	})
}
