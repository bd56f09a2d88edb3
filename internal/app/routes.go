package app

import (
	"github.com/gin-gonic/gin"
	"github.com/inkstream/core/internal/middleware"
	"github.com/inkstream/core/internal/models"
	"github.com/inkstream/core/internal/modules/admin"
	"github.com/inkstream/core/internal/modules/auth"
	"github.com/inkstream/core/internal/modules/comment"
	"github.com/inkstream/core/internal/modules/content"
	"github.com/inkstream/core/internal/modules/storage"
	"github.com/inkstream/core/internal/modules/taxonomy"
	pkgredis "github.com/inkstream/core/internal/pkg/redis"
	"github.com/inkstream/core/internal/pkg/response"
)

func (a *App) registerRoutes(rc *pkgredis.Client, store *storage.Client) {
	r := a.router
	db := a.db
	authMW := middleware.Auth(db)
	adminMW := middleware.RequireAdmin(db)

	r.NoRoute(func(c *gin.Context) {
		response.NotFound(c)
	})
	r.NoMethod(func(c *gin.Context) {
		response.MethodNotAllowed(c)
	})

	api := r.Group("/api")
	api.Use(middleware.OptionalAuth(db))
	api.Use(middleware.RateLimit(rc.Raw()))

	auth.NewHandler(auth.NewService(db)).RegisterRoutes(api, authMW)

	// The article and blog trees share one content module; only the type
	// discriminator differs.
	articleSvc := content.NewService(db, models.TypeArticle)
	blogSvc := content.NewService(db, models.TypeBlog)
	content.NewHandler(articleSvc).RegisterRoutes(api, "articles", adminMW)
	content.NewHandler(blogSvc).RegisterRoutes(api, "blogs", adminMW)

	taxonomy.NewHandler(taxonomy.NewCategoryService(db), taxonomy.NewTagService(db)).
		RegisterRoutes(api, adminMW)

	comment.NewHandler(comment.NewService(db)).RegisterRoutes(api, authMW, adminMW)

	admin.NewHandler(admin.NewService(db, rc, a.logger)).RegisterRoutes(api, adminMW)

	storage.NewHandler(store).RegisterRoutes(api, adminMW)
}
