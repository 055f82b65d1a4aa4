package api

import (
	"net/http"
	"sort"

	"github.com/aamit98/Reelhub/internal/model"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const trendingLimit = 10

// VideoTrending returns the top videos by engagement score, where a
// like weighs twice as much as a view
func (a *API) VideoTrending(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)

	var videos []model.Video
	err := a.DB.
		Preload("Creator").
		Preload("Likes").
		Order("created_at desc").
		Find(&videos).
		Error
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to list videos", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	score := func(v *model.Video) int64 {
		return int64(len(v.Likes))*2 + v.Views
	}

	sort.SliceStable(videos, func(i, j int) bool {
		return score(&videos[i]) > score(&videos[j])
	})

	if len(videos) > trendingLimit {
		videos = videos[:trendingLimit]
	}

	for i := range videos {
		normalizeRefs(c, &videos[i])
	}

	c.JSON(http.StatusOK, videos)
}
