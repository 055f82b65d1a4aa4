package api

import (
	"net/http"

	"github.com/aamit98/Reelhub/internal/model"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BookmarkFetch lists the authenticated user's bookmarked videos,
// newest bookmark first
func (a *API) BookmarkFetch(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)
	userID := c.MustGet("userID").(string)

	var bookmarks []model.Bookmark
	err := a.DB.
		Preload("Video").
		Preload("Video.Creator").
		Preload("Video.Likes").
		Where("user_id = ?", userID).
		Order("created_at desc").
		Find(&bookmarks).
		Error
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to list bookmarks", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	videos := make([]model.Video, 0, len(bookmarks))
	for _, b := range bookmarks {
		if b.Video == nil {
			continue
		}

		v := *b.Video
		normalizeRefs(c, &v)
		videos = append(videos, v)
	}

	c.JSON(http.StatusOK, videos)
}

// BookmarkCheck reports whether the user bookmarked a video
func (a *API) BookmarkCheck(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)
	userID := c.MustGet("userID").(string)
	videoID := c.Param("videoID")

	var count int64
	err := a.DB.
		Model(model.Bookmark{}).
		Where("user_id = ? AND video_id = ?", userID, videoID).
		Count(&count).
		Error
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to check bookmark", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusOK, gin.H{"bookmarked": count > 0})
}
