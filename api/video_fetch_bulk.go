package api

import (
	"net/http"

	"github.com/aamit98/Reelhub/internal/model"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// VideoFetchBulk lists videos newest first. Supports an optional
// search query matched against title and prompt, and a creator filter
func (a *API) VideoFetchBulk(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)

	tx := a.DB.
		Preload("Creator").
		Preload("Likes").
		Order("created_at desc")

	if creator := c.Query("creator"); creator != "" {
		tx = tx.Where("creator_id = ?", creator)
	}

	if query := c.Query("query"); query != "" {
		like := "%" + query + "%"
		tx = tx.Where("title LIKE ? OR prompt LIKE ?", like, like)
	}

	var videos []model.Video
	if err := tx.Find(&videos).Error; err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to list videos", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	for i := range videos {
		normalizeRefs(c, &videos[i])
	}

	c.JSON(http.StatusOK, videos)
}
