package api

import (
	"net/http"

	"github.com/aamit98/Reelhub/internal/model"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func (a *API) BookmarkRemove(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)
	userID := c.MustGet("userID").(string)
	videoID := c.Param("videoID")

	err := a.DB.
		Where("user_id = ? AND video_id = ?", userID, videoID).
		Delete(model.Bookmark{}).
		Error
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to remove bookmark", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusOK, gin.H{"bookmarked": false})
}
