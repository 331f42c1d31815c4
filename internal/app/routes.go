package app

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/lensframe/studio-core/internal/middleware"
	"github.com/lensframe/studio-core/internal/modules/aggregate"
	"github.com/lensframe/studio-core/internal/modules/auth"
	"github.com/lensframe/studio-core/internal/modules/content/message"
	"github.com/lensframe/studio-core/internal/modules/content/project"
	"github.com/lensframe/studio-core/internal/modules/content/rating"
	"github.com/lensframe/studio-core/internal/modules/content/taxonomy"
	"github.com/lensframe/studio-core/internal/modules/storage/backup"
	"github.com/lensframe/studio-core/internal/modules/storage/upload"
	"github.com/lensframe/studio-core/internal/modules/system/configs"
	"github.com/lensframe/studio-core/internal/pkg/mailer"
	pkgredis "github.com/lensframe/studio-core/internal/pkg/redis"
	"github.com/lensframe/studio-core/internal/pkg/response"
)

const apiPrefix = "/api/v1"

func (a *App) registerRoutes(rc *pkgredis.Client) {
	r := a.router
	db := a.db
	authMW := middleware.Auth(db)

	r.NoRoute(func(c *gin.Context) {
		response.NotFound(c)
	})
	r.NoMethod(func(c *gin.Context) {
		response.MethodNotAllowed(c)
	})

	appInfo := gin.H{
		"name":    "studio-core",
		"version": "1.0.0",
	}

	// Shared services
	cfgSvc := configs.NewService(db)
	taxSvc := taxonomy.NewService(db)
	projSvc := project.NewService(db)
	ratingSvc := rating.NewService(db, a.cfg.PublicURL)
	msgSvc := message.NewService(db)
	authSvc := auth.NewService(db)

	mail := mailer.New(func() mailer.Options {
		cfg, err := cfgSvc.Get()
		if err != nil {
			return mailer.Options{}
		}
		return mailer.Options{
			Enable:   cfg.Mail.Enable,
			Host:     cfg.Mail.Host,
			Port:     cfg.Mail.Port,
			Username: cfg.Mail.Username,
			Password: cfg.Mail.Password,
			From:     cfg.Mail.From,
		}
	})
	siteTitle := func() string {
		cfg, err := cfgSvc.Get()
		if err != nil {
			return ""
		}
		return cfg.Site.Title
	}

	api := r.Group(apiPrefix)

	api.GET("", func(c *gin.Context) { c.PureJSON(http.StatusOK, appInfo) })
	api.GET("/ping", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"data": "pong"}) })

	// Public submission endpoints are rate limited per client IP.
	messageRate := middleware.RateLimit(rc.Raw(), "messages", 5, time.Minute)
	submitRate := middleware.RateLimit(rc.Raw(), "rating_submit", 10, time.Minute)

	auth.NewHandler(authSvc, !a.cfg.IsDev()).RegisterRoutes(api, authMW)
	aggregate.NewHandler(cfgSvc, taxSvc, projSvc, ratingSvc).RegisterRoutes(api, authMW)
	taxonomy.NewHandler(taxSvc).RegisterRoutes(api, authMW)
	project.NewHandler(projSvc).RegisterRoutes(api, authMW)
	rating.NewHandler(ratingSvc, mail, siteTitle, submitRate).RegisterRoutes(api, authMW)
	message.NewHandler(msgSvc, messageRate).RegisterRoutes(api, authMW)
	configs.NewHandler(cfgSvc).RegisterRoutes(api, authMW)
	upload.NewHandler(cfgSvc).RegisterRoutes(api, authMW)
	backup.NewHandler(db, cfgSvc, a.cfg.BackupDir).RegisterRoutes(api, authMW)
}
