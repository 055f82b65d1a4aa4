package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/aamit98/Reelhub/validators"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// UploadCreate accepts one multipart file, writes it to the upload
// directory under a generated name and returns the URL the client
// should embed in its content record
func (a *API) UploadCreate(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)
	userID := c.MustGet("userID").(string)

	if !strings.HasPrefix(c.Request.Header.Get("Content-Type"), "multipart/form-data") {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":     "Invalid request",
			"requestID": requestID,
		})
		return
	}

	fh, err := c.FormFile("file")
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":     "No file provided",
			"requestID": requestID,
		})
		return
	}

	code, f, err := validators.FileValidator(fh)
	if err != nil {
		if code == http.StatusInternalServerError {
			zap.L().Error("Failed to validate file", zap.Error(err), zap.String("requestID", requestID))

			// That's to set the error into a general one for the users
			err = errors.New("internal server error")
		}

		c.AbortWithStatusJSON(code, gin.H{
			"error":     err.Error(),
			"requestID": requestID,
		})
		return
	}
	defer f.Close()

	name, size, err := a.Store.Save(f, fh.Filename)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to store uploaded file", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	zap.L().Info("File uploaded",
		zap.String("name", name),
		zap.Int64("size", size),
		zap.String("userID", userID),
	)

	c.JSON(http.StatusOK, gin.H{
		"url": requestScheme(c) + "://" + c.Request.Host + "/uploads/" + name,
	})
}
