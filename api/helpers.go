package api

import (
	"github.com/aamit98/Reelhub/internal/model"
	"github.com/aamit98/Reelhub/pkg/assets"

	"github.com/gin-gonic/gin"
)

// requestScheme returns the scheme the client used to reach us,
// honoring a reverse proxy's X-Forwarded-Proto
func requestScheme(c *gin.Context) string {
	if p := c.GetHeader("X-Forwarded-Proto"); p != "" {
		return p
	}

	if c.Request.TLS != nil {
		return "https"
	}

	return "http"
}

// normalizeRefs rewrites the asset references of a video record
// against the inbound request's host. Every handler that returns
// video records must call this on each record, both fields, always.
func normalizeRefs(c *gin.Context, v *model.Video) {
	scheme := requestScheme(c)
	host := c.Request.Host

	v.Video = assets.Rewrite(v.Video, scheme, host)
	v.Thumbnail = assets.Rewrite(v.Thumbnail, scheme, host)
}
