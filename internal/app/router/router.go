package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"user_backend/internal/app/di"
	jwtmw "user_backend/internal/platform/jwt"
)

// NewRouter registers all routes on a gin engine with the default logger and recovery middleware.
// CORS is enabled only when allowedOrigins is non-empty.
func NewRouter(c *di.Container, allowedOrigins []string) *gin.Engine {
	r := gin.Default()

	if len(allowedOrigins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins:  allowedOrigins,
			AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "HEAD", "OPTIONS"},
			AllowHeaders:  []string{"Origin", "Content-Type", "Authorization"},
			ExposeHeaders: []string{"Content-Length"},
			MaxAge:        12 * time.Hour,
		}))
	}

	// 認証不要
	r.GET("/healthz", c.Health.Health)
	r.HEAD("/healthz", c.Health.Health)

	auth := r.Group("/auth")
	{
		auth.POST("/signup", c.Auth.Signup)
		auth.POST("/login", c.Auth.Login)
		auth.POST("/refresh", c.Auth.Refresh)
		// 認証必須
		auth.GET("/profile", jwtmw.AuthRequired(c.Verifier), c.Auth.Profile)
	}

	// 認証必須のルート
	users := r.Group("/users")
	users.Use(jwtmw.AuthRequired(c.Verifier))
	{
		users.GET("", c.Users.List)
		users.GET("/:id", c.Users.Get)
		users.PUT("/:id", c.Users.Update)
		users.DELETE("/:id", c.Users.Delete)
	}

	return r
}
