package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shubhshah23/emesa-digital/services"
	"github.com/shubhshah23/emesa-digital/utils"
)

// UploadArtifact handles POST /api/v1/uploads/artifacts - uploads a design
// file (STEP model or 2D draft design) and returns its opaque storage key.
// The key is attached to an order at submission; the engine never inspects
// artifact contents.
func UploadArtifact(c *gin.Context) {
	if _, ok := getCurrentUser(c); !ok {
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_REQUEST",
				"message": "A file is required in the 'file' form field",
			},
		})
		return
	}

	artifactService := services.GetArtifactService()
	key, err := artifactService.UploadArtifact(fileHeader)
	if err != nil {
		var uploadErr *utils.FileUploadError
		if errors.As(err, &uploadErr) {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error": gin.H{
					"code":    uploadErr.Code,
					"message": uploadErr.Message,
				},
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "UPLOAD_ERROR",
				"message": "Failed to upload artifact",
			},
		})
		return
	}

	url, err := artifactService.GetArtifactURL(key)
	if err != nil {
		// The file is stored; a missing link is recoverable via a later
		// URL request, so don't fail the upload.
		url = ""
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data": gin.H{
			"key": key,
			"url": url,
		},
	})
}

// GetArtifactURL handles GET /api/v1/uploads/artifacts/url - returns a
// download URL for a previously uploaded artifact key
func GetArtifactURL(c *gin.Context) {
	if _, ok := getCurrentUser(c); !ok {
		return
	}

	key := c.Query("key")
	if key == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_REQUEST",
				"message": "Artifact key is required",
			},
		})
		return
	}

	url, err := services.GetArtifactService().GetArtifactURL(key)
	if err != nil || url == "" {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "ARTIFACT_NOT_FOUND",
				"message": "Artifact not found",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"key": key,
			"url": url,
		},
	})
}
