// Package app wires the HTTP routes of the API
package app

import (
	"bitwise74/files-api/app/auth"
	"bitwise74/files-api/app/file"
	"bitwise74/files-api/app/root"
	"bitwise74/files-api/app/user"
	"bitwise74/files-api/internal"
	"bitwise74/files-api/pkg/middleware"
	"time"

	cache "github.com/chenyahui/gin-cache"
	"github.com/chenyahui/gin-cache/persist"
	"github.com/gin-contrib/cors"
	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func NewRouter(d *internal.Deps) *gin.Engine {
	router := gin.New()

	corsCfg := cors.Config{
		AllowOrigins:     viper.GetStringSlice("host.cors"),
		AllowMethods:     []string{"GET", "POST", "PUT", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", middleware.TokenHeader},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(corsCfg.AllowOrigins) == 0 {
		corsCfg.AllowAllOrigins = true
	}

	router.Use(
		cors.New(corsCfg),
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

				if v := c.GetUint("userID"); v != 0 {
					fields = append(fields, zap.Uint("userID", v))
				}

				return fields
			},
		}),
		middleware.RateLimiterMiddleware(middleware.RateLimiterConfig{
			RequestsPerSecond: viper.GetInt("security.rate_limit"),
			Burst:             viper.GetInt("security.rate_limit") * 2,
		}),
	)

	router.HandleMethodNotAllowed = true

	token := middleware.NewTokenMiddleware(d.Gate)
	optionalToken := middleware.NewOptionalTokenMiddleware(d.Gate)
	bodyLimit := middleware.BodySizeLimiter(1 << 20)
	uploadLimit := middleware.BodySizeLimiter(viper.GetInt64("upload.max_size_bytes"))

	// Cached responses are shared between users, only use it on public routes
	store := persist.NewMemoryStore(time.Minute)
	cacheFor := func(sec int) gin.HandlerFunc {
		return cache.CacheByRequestURI(store, time.Second*time.Duration(sec))
	}

	// HEAD /heartbeat		-> Used to check if the server is alive
	router.HEAD("/heartbeat", root.Heartbeat)

	// GET /status			-> Reports whether redis and the database are reachable
	router.GET("/status", func(c *gin.Context) { root.Status(c, d) })

	// GET /stats			-> Returns the amount of users and files
	router.GET("/stats", cacheFor(30), func(c *gin.Context) { root.Stats(c, d) })

	// GET /metrics			-> Prometheus metrics
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// GET /connect			-> Exchanges basic auth credentials for a token
	router.GET("/connect", func(c *gin.Context) { auth.Connect(c, d) })

	// GET /disconnect		-> Invalidates the token
	router.GET("/disconnect", token, func(c *gin.Context) { auth.Disconnect(c, d) })

	u := router.Group("/users")
	{
		// POST /users			-> Registers a new user
		u.POST("", bodyLimit, func(c *gin.Context) { user.UserRegister(c, d) })

		// GET /users/me		-> Returns the user behind the token
		u.GET("/me", token, func(c *gin.Context) { user.UserFetch(c, d) })
	}

	f := router.Group("/files")
	{
		// POST /files			-> Uploads a new file or creates a folder
		f.POST("", token, uploadLimit, func(c *gin.Context) { file.FileUpload(c, d) })

		// GET /files			-> Lists a page of the user's files under parentId
		f.GET("", token, func(c *gin.Context) { file.FileFetchBulk(c, d) })

		// GET /files/:id		-> Returns a file if it's public or owned by the user
		f.GET("/:id", optionalToken, func(c *gin.Context) { file.FileFetch(c, d) })

		// PUT /files/:id/publish	-> Makes a file public
		f.PUT("/:id/publish", token, func(c *gin.Context) { file.FilePublish(c, d) })

		// PUT /files/:id/unpublish	-> Makes a file private
		f.PUT("/:id/unpublish", token, func(c *gin.Context) { file.FileUnpublish(c, d) })

		// GET /files/:id/data		-> Serves the content of a file or one of its thumbnails
		f.GET("/:id/data", optionalToken, func(c *gin.Context) { file.FileServe(c, d) })
	}

	return router
}
