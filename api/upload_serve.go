package api

import (
	"errors"
	"io"
	"mime"
	"net/http"
	"os"
	"path"
	"strconv"

	"github.com/aamit98/Reelhub/pkg/assets"
	"github.com/aamit98/Reelhub/pkg/httprange"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// UploadServe delivers a stored file. Video files asked for with a
// Range header get a single contiguous 206 slice so players can seek;
// everything else, including malformed Range headers, falls back to a
// plain full-body 200.
func (a *API) UploadServe(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)
	name := c.Param("filename")

	filePath, err := a.Store.Path(name)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":     "Invalid file name",
			"requestID": requestID,
		})
		return
	}

	size, err := a.Store.Stat(name)
	if err != nil {
		if os.IsNotExist(err) {
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{
				"error":     "File not found",
				"requestID": requestID,
			})
			return
		}

		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to stat file", zap.String("name", name), zap.Error(err))
		return
	}

	isVideo := assets.IsVideoPath(name)
	if isVideo {
		// Advertise seekability and let browsers read the headers
		// they need for scrubbing
		c.Header("Accept-Ranges", "bytes")
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Expose-Headers", "Content-Length, Content-Range")
	}

	rangeHeader := c.GetHeader("Range")

	if rangeHeader == "" || !isVideo {
		a.serveFull(c, filePath, name, size)
		return
	}

	rng, err := httprange.Parse(rangeHeader, size)
	if err != nil {
		if errors.Is(err, httprange.ErrUnsatisfiable) {
			c.Header("Content-Range", "bytes */"+strconv.FormatInt(size, 10))
			c.AbortWithStatusJSON(http.StatusRequestedRangeNotSatisfiable, gin.H{
				"error":     "Range not satisfiable",
				"requestID": requestID,
			})
			return
		}

		// Malformed header: availability over strict compliance
		zap.L().Debug("Malformed range header, serving full body",
			zap.String("range", rangeHeader),
			zap.String("name", name),
		)
		a.serveFull(c, filePath, name, size)
		return
	}

	f, err := a.Store.Open(name)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to open file", zap.String("name", name), zap.Error(err))
		return
	}
	defer f.Close()

	if _, err := f.Seek(rng.Start, io.SeekStart); err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to seek file", zap.String("name", name), zap.Error(err))
		return
	}

	c.Header("Content-Range", rng.ContentRange(size))
	c.Header("Content-Length", strconv.FormatInt(rng.Length(), 10))
	c.Header("Content-Type", "video/mp4")
	c.Status(http.StatusPartialContent)

	// A failed copy here means the client hung up or the disk read
	// died mid-stream. Either way the connection is done, the player
	// re-requests from its last good offset.
	if _, err := io.CopyN(c.Writer, f, rng.Length()); err != nil {
		zap.L().Debug("Range stream interrupted",
			zap.String("name", name),
			zap.String("range", rangeHeader),
			zap.Error(err),
		)
	}
}

func (a *API) serveFull(c *gin.Context, filePath, name string, size int64) {
	f, err := os.Open(filePath)
	if err != nil {
		requestID := c.MustGet("requestID").(string)

		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to open file", zap.String("name", name), zap.Error(err))
		return
	}
	defer f.Close()

	ct := "video/mp4"
	if !assets.IsVideoPath(name) {
		ct = mime.TypeByExtension(path.Ext(name))
		if ct == "" {
			ct = "application/octet-stream"
		}
	}

	c.Header("Content-Length", strconv.FormatInt(size, 10))
	c.Header("Content-Type", ct)
	c.Status(http.StatusOK)

	if _, err := io.Copy(c.Writer, f); err != nil {
		zap.L().Debug("Full stream interrupted", zap.String("name", name), zap.Error(err))
	}
}
