package api

import (
	"net/http"
	"strings"

	"github.com/aamit98/Reelhub/internal/model"
	"github.com/aamit98/Reelhub/pkg/assets"

	"github.com/gin-gonic/gin"
	gonanoid "github.com/matoous/go-nanoid/v2"
	"go.uber.org/zap"
)

type videoCreateBody struct {
	Title     string `json:"title"`
	Prompt    string `json:"prompt"`
	Video     string `json:"video"`
	Thumbnail string `json:"thumbnail"`
}

// VideoCreate persists a new video record. Both asset references must
// already be resolved URLs at this point. Turning device-local files
// into URLs is the upload pipeline's job, so file:// and content://
// handles are rejected outright.
func (a *API) VideoCreate(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)
	userID := c.MustGet("userID").(string)

	var data videoCreateBody
	if err := c.ShouldBind(&data); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":     "Invalid request body",
			"requestID": requestID,
		})

		zap.L().Error("Can't bind request body", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	data.Title = strings.TrimSpace(data.Title)
	data.Prompt = strings.TrimSpace(data.Prompt)

	if data.Title == "" || len(data.Title) > 2200 {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":     "Title must be between 1 and 2200 characters",
			"requestID": requestID,
		})
		return
	}

	if data.Prompt == "" || len(data.Prompt) > 5000 {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":     "Prompt must be between 1 and 5000 characters",
			"requestID": requestID,
		})
		return
	}

	if data.Video == "" {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":     "Video is required",
			"requestID": requestID,
		})
		return
	}

	if data.Thumbnail == "" {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":     "Thumbnail is required",
			"requestID": requestID,
		})
		return
	}

	if assets.IsLocalHandle(data.Video) || assets.IsLocalHandle(data.Thumbnail) {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":     "Asset references must be uploaded URLs, not device-local files",
			"requestID": requestID,
		})
		return
	}

	videoID, err := gonanoid.Generate(idCharset, 16)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to generate video ID", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	video := model.Video{
		ID:        videoID,
		CreatorID: userID,
		Title:     data.Title,
		Prompt:    data.Prompt,
		Video:     data.Video,
		Thumbnail: data.Thumbnail,
	}

	if err := a.DB.Create(&video).Error; err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to save video record", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	if err := a.DB.Preload("Creator").First(&video, "id = ?", video.ID).Error; err != nil {
		zap.L().Error("Failed to reload video record", zap.Error(err), zap.String("requestID", requestID))
	}

	normalizeRefs(c, &video)

	c.JSON(http.StatusCreated, video)
}
