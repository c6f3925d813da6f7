package app

import (
	"errors"
	"slices"
	"time"

	"github.com/Tanmay7310/Mental-Health-Wellbeing/app/assessment"
	"github.com/Tanmay7310/Mental-Health-Wellbeing/app/auth"
	"github.com/Tanmay7310/Mental-Health-Wellbeing/app/contact"
	"github.com/Tanmay7310/Mental-Health-Wellbeing/app/doctor"
	"github.com/Tanmay7310/Mental-Health-Wellbeing/app/profile"
	"github.com/Tanmay7310/Mental-Health-Wellbeing/app/root"
	"github.com/Tanmay7310/Mental-Health-Wellbeing/app/vital"
	"github.com/Tanmay7310/Mental-Health-Wellbeing/internal"
	"github.com/Tanmay7310/Mental-Health-Wellbeing/pkg/middleware"
	"github.com/Tanmay7310/Mental-Health-Wellbeing/validators"

	cache "github.com/chenyahui/gin-cache"
	"github.com/chenyahui/gin-cache/persist"
	"github.com/gin-contrib/cors"
	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	v "github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const defaultBodyLimit = 1 << 20

// NewRouter builds the engine. The returned func releases the rate limiter
// and cache connections and must be called once the server has stopped.
func NewRouter(d *internal.Deps) (*gin.Engine, func() error) {
	validators.Setup()

	router := gin.New()

	router.Use(
		cors.New(corsConfig()),
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

				if id := c.GetString("requestID"); id != "" {
					fields = append(fields, zap.String("request_id", id))
				}

				if id := c.GetString("userID"); id != "" {
					fields = append(fields, zap.String("userID", id))
				}

				return fields
			},
		}),
	)

	router.HandleMethodNotAllowed = true
	router.RedirectFixedPath = true

	bodyLimit := v.GetInt64("security.body_limit")
	if bodyLimit <= 0 {
		bodyLimit = defaultBodyLimit
	}

	rps := v.GetInt("security.rate_limit")
	rateLimiter := middleware.NewRateLimiter(middleware.RateLimiterConfig{
		RequestsPerSecond: rps,
		Burst:             rps * 2,
	})

	jwt := middleware.NewJWTMiddleware(d.Tokens, d.DB)
	turnstile := middleware.NewTurnstileMiddleware(
		v.GetBool("cloudflare.turnstile.enabled"),
		v.GetString("cloudflare.turnstile.secret_token"),
	)
	store, closeStore := newCacheStore()

	closeAll := func() error {
		return errors.Join(rateLimiter.Close(), closeStore())
	}

	m := router.Group("/api", rateLimiter.Middleware(), middleware.BodySizeLimiter(bodyLimit))
	{
		// HEAD /api/heartbeat 		-> Used to check if the server is alive
		m.HEAD("/heartbeat", root.Heartbeat)
		m.GET("/heartbeat", root.Heartbeat)

		// GET /api/validate		-> Validates an access token
		m.GET("/validate", jwt, root.Validate)
	}

	a := m.Group("/auth")
	{
		// POST /api/auth/register	-> Creates a user and profile, returns tokens
		a.POST("/register", turnstile, func(c *gin.Context) { auth.Register(c, d) })

		// POST /api/auth/login		-> Logs in a user and rotates their refresh token
		a.POST("/login", turnstile, func(c *gin.Context) { auth.Login(c, d) })

		// POST /api/auth/refresh	-> Exchanges a refresh token for a new access token
		a.POST("/refresh", func(c *gin.Context) { auth.Refresh(c, d) })

		// POST /api/auth/logout	-> Revokes a refresh token
		a.POST("/logout", func(c *gin.Context) { auth.Logout(c, d) })
	}

	p := m.Group("/profiles", jwt)
	{
		// GET /api/profiles/me		-> Returns the caller's profile
		p.GET("/me", func(c *gin.Context) { profile.Fetch(c, d) })

		// PUT /api/profiles/me		-> Partially updates the caller's profile
		p.PUT("/me", func(c *gin.Context) { profile.Update(c, d) })

		// POST /api/profiles/initial-screening	-> Scores and stores the initial screening
		p.POST("/initial-screening", func(c *gin.Context) { profile.Screening(c, d) })
	}

	vt := m.Group("/vitals", jwt)
	{
		// GET /api/vitals		-> Lists readings, newest first
		vt.GET("", func(c *gin.Context) { vital.FetchBulk(c, d) })

		// POST /api/vitals		-> Records a reading and flags emergencies
		vt.POST("", func(c *gin.Context) { vital.Create(c, d) })

		// GET /api/vitals/:id		-> Returns a single reading
		vt.GET("/:id", func(c *gin.Context) { vital.Fetch(c, d) })
	}

	ct := m.Group("/contacts", jwt)
	{
		// GET /api/contacts		-> Lists emergency contacts
		ct.GET("", func(c *gin.Context) { contact.FetchBulk(c, d) })

		// POST /api/contacts		-> Adds an emergency contact
		ct.POST("", func(c *gin.Context) { contact.Create(c, d) })

		// PUT /api/contacts/:id	-> Partially updates a contact
		ct.PUT("/:id", func(c *gin.Context) { contact.Update(c, d) })

		// DELETE /api/contacts/:id	-> Deletes a contact unless it's the default
		ct.DELETE("/:id", func(c *gin.Context) { contact.Delete(c, d) })

		// POST /api/contacts/:id/alert	-> Sends an emergency alert to a contact
		ct.POST("/:id/alert", func(c *gin.Context) { contact.Alert(c, d) })
	}

	as := m.Group("/assessments", jwt)
	{
		// GET /api/assessments		-> Lists assessments, optionally by type
		as.GET("", func(c *gin.Context) { assessment.FetchBulk(c, d) })

		// POST /api/assessments	-> Stores a completed assessment
		as.POST("", func(c *gin.Context) { assessment.Create(c, d) })

		// GET /api/assessments/:id	-> Returns a single assessment
		as.GET("/:id", func(c *gin.Context) { assessment.Fetch(c, d) })
	}

	dr := m.Group("/doctors", jwt)
	{
		// GET /api/doctors/search	-> Searches the doctor directory
		dr.GET("/search", cacheFor(store, 5*60), func(c *gin.Context) { doctor.Search(c, d) })

		// GET /api/doctors/suggestions	-> Lists searchable specialties
		dr.GET("/suggestions", cacheFor(store, 60*60), func(c *gin.Context) { doctor.Suggestions(c, d) })
	}

	return router, closeAll
}

func corsConfig() cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS", "HEAD"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "Authorization", middleware.TurnstileHeader},
		ExposeHeaders: []string{"Content-Length", middleware.RequestIDHeader},
		MaxAge:        12 * time.Hour,
	}

	origins := v.GetStringSlice("host.cors_origins")
	if len(origins) == 0 || slices.Contains(origins, "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
		cfg.AllowCredentials = true
	}

	return cfg
}

// newCacheStore uses redis when cache.redis_addr is set so several instances
// share cached responses
func newCacheStore() (persist.CacheStore, func() error) {
	addr := v.GetString("cache.redis_addr")
	if addr == "" {
		return persist.NewMemoryStore(time.Minute), func() error { return nil }
	}

	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: v.GetString("cache.redis_password"),
		DB:       v.GetInt("cache.redis_db"),
	})

	return persist.NewRedisStore(client), client.Close
}

func cacheFor(store persist.CacheStore, sec int) gin.HandlerFunc {
	return cache.CacheByRequestURI(store, time.Second*time.Duration(sec))
}
