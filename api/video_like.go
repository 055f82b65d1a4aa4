package api

import (
	"errors"
	"net/http"

	"github.com/aamit98/Reelhub/internal/model"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// VideoLike toggles the authenticated user's like on a video and
// returns the updated record
func (a *API) VideoLike(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)
	userID := c.MustGet("userID").(string)
	videoID := c.Param("id")

	var video model.Video
	err := a.DB.Preload("Likes").First(&video, "id = ?", videoID).Error
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

	liked := false
	for _, u := range video.Likes {
		if u.ID == userID {
			liked = true
			break
		}
	}

	assoc := a.DB.Model(&video).Association("Likes")

	if liked {
		err = assoc.Delete(&model.User{ID: userID})
	} else {
		err = assoc.Append(&model.User{ID: userID})
	}
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to toggle like", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	err = a.DB.
		Preload("Creator").
		Preload("Likes").
		First(&video, "id = ?", videoID).
		Error
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to reload video", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	normalizeRefs(c, &video)

	c.JSON(http.StatusOK, video)
}

// VideoLikeCheck reports whether the authenticated user liked a video
func (a *API) VideoLikeCheck(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)
	userID := c.MustGet("userID").(string)
	videoID := c.Param("id")

	var count int64
	err := a.DB.
		Table("video_likes").
		Where("video_id = ? AND user_id = ?", videoID, userID).
		Count(&count).
		Error
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to check like", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusOK, gin.H{"liked": count > 0})
}
