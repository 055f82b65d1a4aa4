// Package api contains all endpoints available
package api

import (
	"fmt"
	"time"

	"github.com/aamit98/Reelhub/db"
	"github.com/aamit98/Reelhub/internal/service"
	"github.com/aamit98/Reelhub/pkg/middleware"
	"github.com/aamit98/Reelhub/pkg/security"

	cache "github.com/chenyahui/gin-cache"
	"github.com/chenyahui/gin-cache/persist"
	"github.com/gin-contrib/cors"
	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gorm.io/gorm"
)

const (
	gray  = "\x1b[90m"
	reset = "\x1b[0m"
)

var store = persist.NewMemoryStore(time.Minute)

type API struct {
	DB     *gorm.DB
	Router *gin.Engine
	Argon  *security.ArgonHash
	Store  *service.Store
}

func NewRouter() (*API, error) {
	a := &API{
		Argon: security.New(),
		Store: service.NewStore(),
	}

	db, err := db.New()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize SQLite database, %w", err)
	}
	a.DB = db

	makeLogger()

	router := gin.New()
	a.Router = router

	router.Use(
		cors.New(cors.Config{
			AllowAllOrigins: true,
			AllowMethods:    []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowHeaders:    []string{"Origin", "Content-Type", "Accept", "Authorization", "Range"},
			ExposeHeaders:   []string{"Content-Length", "Content-Range"},
			MaxAge:          12 * time.Hour,
		}),
		gin.Recovery(),
		middleware.NewRequestIDMiddleware(),
		ginzap.GinzapWithConfig(zap.L(), &ginzap.Config{
			TimeFormat: "15:04:05.000",
			UTC:        true,
			Skipper: func(c *gin.Context) bool {
				return c.Request.Method == "HEAD"
			},
			Context: func(c *gin.Context) []zapcore.Field {
				fields := []zapcore.Field{}

				if v := c.GetString("requestID"); v != "" {
					fields = append(fields, zap.String("request_id", v))
				}

				if v := c.GetString("userID"); v != "" {
					fields = append(fields, zap.String("userID", v))
				}

				return fields
			},
		}),
	)

	router.HandleMethodNotAllowed = true
	router.MaxMultipartMemory = 5 << 20

	jwt := middleware.NewJWTMiddleware(db)
	authLimit := middleware.RateLimiterMiddleware(middleware.RateLimiterConfig{
		RequestsPerSecond: 2,
		Burst:             5,
	})
	maxUploadSize := viper.GetInt64("upload.max_size")

	// GET /uploads/:filename	-> Serves an uploaded file, honoring Range
	// requests on video files so clients can seek without pulling the
	// whole body
	router.GET("/uploads/:filename", a.UploadServe)

	main := router.Group("/api")
	{
		// GET /api/health		-> Used to check if the server is alive
		main.GET("/health", a.Health)

		// HEAD /api/validate		-> Validates a JWT token
		main.HEAD("/validate", jwt, a.Validate)

		// POST /api/upload		-> Uploads one file, returns its URL
		main.POST("/upload", jwt, middleware.BodySizeLimiter(maxUploadSize), a.UploadCreate)
	}

	users := main.Group("/users", middleware.BodySizeLimiter(1<<20))
	{
		// POST /api/users 		-> Registers a new user
		users.POST("", authLimit, a.UserRegister)

		// POST /api/users/login 	-> Logs in a user and returns a JWT token
		users.POST("/login", authLimit, a.UserLogin)

		// GET /api/users/me		-> Returns the authenticated user
		users.GET("/me", jwt, a.UserFetch)
	}

	videos := main.Group("/videos")
	{
		// GET /api/videos		-> Lists videos, optional query/creator filters
		videos.GET("", a.VideoFetchBulk)

		// GET /api/videos/trending	-> Top videos by engagement
		videos.GET("/trending", cacheFor(30), a.VideoTrending)

		// GET /api/videos/:id		-> Returns a single video
		videos.GET("/:id", a.VideoFetch)

		// POST /api/videos		-> Creates a video record from resolved references
		videos.POST("", jwt, middleware.BodySizeLimiter(1<<20), a.VideoCreate)

		// POST /api/videos/:id/like	-> Toggles a like
		videos.POST("/:id/like", jwt, a.VideoLike)

		// GET /api/videos/:id/like/check -> Reports whether the user liked a video
		videos.GET("/:id/like/check", jwt, a.VideoLikeCheck)

		// DELETE /api/videos/:id	-> Deletes a video owned by the user
		videos.DELETE("/:id", jwt, a.VideoDelete)
	}

	bookmarks := main.Group("/bookmarks", jwt)
	{
		// GET /api/bookmarks		-> Lists the user's bookmarked videos
		bookmarks.GET("", a.BookmarkFetch)

		// GET /api/bookmarks/check/:videoID -> Reports whether a video is bookmarked
		bookmarks.GET("/check/:videoID", a.BookmarkCheck)

		// POST /api/bookmarks/:videoID	-> Bookmarks a video
		bookmarks.POST("/:videoID", a.BookmarkAdd)

		// DELETE /api/bookmarks/:videoID -> Removes a bookmark
		bookmarks.DELETE("/:videoID", a.BookmarkRemove)
	}

	if viper.GetBool("cleanup.orphan_enabled") {
		service.OrphanCleanup(
			viper.GetDuration("cleanup.orphan_interval"),
			viper.GetDuration("cleanup.orphan_grace"),
			a.DB,
			a.Store,
		)
	}

	return a, nil
}

func makeLogger() {
	cfg := zap.NewDevelopmentConfig()
	cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	cfg.EncoderConfig.EncodeTime = func(t time.Time, pae zapcore.PrimitiveArrayEncoder) {
		pae.AppendString(gray + t.Format("15:04:05.000") + reset)
	}
	cfg.EncoderConfig.EncodeCaller = func(ec zapcore.EntryCaller, pae zapcore.PrimitiveArrayEncoder) {
		pae.AppendString(gray + ec.TrimmedPath() + reset)
	}

	cfg.DisableStacktrace = true

	log, _ := cfg.Build()
	zap.ReplaceGlobals(log)
}

func cacheFor(sec int) gin.HandlerFunc {
	return cache.CacheByRequestURI(store, time.Second*time.Duration(sec))
}
