package api

import (
	"errors"
	"net/http"

	"github.com/aamit98/Reelhub/internal/model"
	"github.com/aamit98/Reelhub/pkg/assets"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// VideoDelete removes a video owned by the authenticated user. Files
// the record pointed at inside our upload directory are removed as a
// side effect; external URLs are left alone.
func (a *API) VideoDelete(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)
	userID := c.MustGet("userID").(string)
	videoID := c.Param("id")

	var video model.Video
	err := a.DB.First(&video, "id = ?", videoID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{
				"error":     "Video not found",
				"requestID": requestID,
			})
			return
		}

		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to fetch video", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	if video.CreatorID != userID {
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
			"error":     "Not authorized to delete this video",
			"requestID": requestID,
		})
		return
	}

	err = a.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&video).Association("Likes").Clear(); err != nil {
			return err
		}

		if err := tx.Where("video_id = ?", videoID).Delete(model.Bookmark{}).Error; err != nil {
			return err
		}

		return tx.Delete(&video).Error
	})
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to delete video", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	for _, ref := range []string{video.Video, video.Thumbnail} {
		name, ok := assets.UploadName(ref)
		if !ok {
			continue
		}

		if err := a.Store.Remove(name); err != nil {
			zap.L().Warn("Failed to remove file for deleted video",
				zap.String("name", name),
				zap.Error(err),
			)
		}
	}

	c.JSON(http.StatusOK, gin.H{"message": "Video deleted successfully"})
}
