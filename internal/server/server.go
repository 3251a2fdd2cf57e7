package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/lshigami/storeaudit/config"
	"github.com/lshigami/storeaudit/internal/controller"
	adminctrl "github.com/lshigami/storeaudit/internal/controller/admin"
	auditorctrl "github.com/lshigami/storeaudit/internal/controller/auditor"
	"github.com/lshigami/storeaudit/internal/metrics"
	"github.com/lshigami/storeaudit/internal/service"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/fx"
)

func NewGinEngine(reg *prometheus.Registry) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	controller.RegisterValidators()

	r := gin.New()
	r.Use(requestLogger())
	r.Use(gin.Recovery())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", controller.HeaderUserID, controller.HeaderUserRole},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	r.MaxMultipartMemory = service.MaxPhotoBytes + 1<<20

	// URL: http://localhost:PORT/swagger/index.html
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	metrics.Register(&r.RouterGroup, reg)

	return r
}

// RegisterRoutes mounts the API under /api/v1. Every API route requires the
// identity headers; admin routes also require the admin role.
func RegisterRoutes(
	router *gin.Engine,
	templateCtrl *auditorctrl.TemplateController,
	auditCtrl *auditorctrl.AuditController,
	adminTemplateCtrl *adminctrl.AdminTemplateController,
) {
	api := router.Group("/api/v1", controller.SessionMiddleware())
	{
		api.GET("/templates", templateCtrl.ListTemplates)
		api.GET("/templates/:template_id", templateCtrl.GetTemplate)

		api.POST("/audits", auditCtrl.CreateAudit)
		api.GET("/audits/:audit_id", auditCtrl.GetAudit)
		api.GET("/audits/:audit_id/draft", auditCtrl.GetDraft)
		api.PATCH("/audits/:audit_id/draft/:question_id", auditCtrl.SetAnswer)
		api.POST("/audits/:audit_id/photos/:question_id", auditCtrl.UploadPhoto)
		api.POST("/audits/:audit_id/save", auditCtrl.SaveDraft)
		api.POST("/audits/:audit_id/submit", auditCtrl.SubmitAudit)
		api.GET("/audits/:audit_id/files", auditCtrl.ListFiles)
	}

	admin := api.Group("/admin", controller.RequireRole(service.RoleAdmin))
	{
		admin.POST("/templates", adminTemplateCtrl.CreateTemplate)
		admin.POST("/templates/:template_id/retire", adminTemplateCtrl.RetireTemplate)
	}
}

// StartServer binds the listen address when the app starts so a taken port
// fails startup instead of killing the process later.
func StartServer(lc fx.Lifecycle, router *gin.Engine, cfg *config.Config) {
	server := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			ln, err := net.Listen("tcp", server.Addr)
			if err != nil {
				return fmt.Errorf("listen on %s: %w", server.Addr, err)
			}
			log.Info().Str("addr", ln.Addr().String()).Msg("Store audit API listening")
			go func() {
				if err := server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Error().Err(err).Msg("HTTP server stopped")
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info().Msg("Draining HTTP server")
			return server.Shutdown(ctx)
		},
	})
}
