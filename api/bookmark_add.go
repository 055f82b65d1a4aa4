package api

import (
	"errors"
	"net/http"

	"github.com/aamit98/Reelhub/internal/model"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

func (a *API) BookmarkAdd(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)
	userID := c.MustGet("userID").(string)
	videoID := c.Param("videoID")

	var exists bool
	err := a.DB.
		Model(model.Video{}).
		Select("count(*) > 0").
		Where("id = ?", videoID).
		First(&exists).
		Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to check video", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	if !exists {
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{
			"error":     "Video not found",
			"requestID": requestID,
		})
		return
	}

	// Bookmarking twice is a no-op, not an error
	err = a.DB.
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&model.Bookmark{
			UserID:  userID,
			VideoID: videoID,
		}).
		Error
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to create bookmark", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusCreated, gin.H{"bookmarked": true})
}
