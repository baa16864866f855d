package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "distrobill/docs"
	"distrobill/internal/handler"
	"distrobill/internal/metrics"
	"distrobill/internal/middleware"
)

// Handlers groups the HTTP handlers mounted by Setup.
type Handlers struct {
	Health   *handler.HealthHandler
	Invoice  *handler.InvoiceHandler
	Resource *handler.ResourceHandler
	Report   *handler.ReportHandler
	Upload   *handler.UploadHandler
}

// Options holds the router-wide middleware dependencies.
type Options struct {
	Logger         *zap.Logger
	Metrics        *metrics.Metrics
	MetricsHandler http.Handler
	AllowedOrigins []string
}

// Setup configures the Gin engine with all routes and middleware.
func Setup(opts Options, h Handlers) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery(opts.Logger))
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(opts.Logger, opts.Metrics))
	r.Use(middleware.CORS(opts.AllowedOrigins))

	// Health checks and operational endpoints
	r.GET("/healthz", h.Health.Liveness)
	r.GET("/readyz", h.Health.Readiness)
	if opts.MetricsHandler != nil {
		r.GET("/metrics", gin.WrapH(opts.MetricsHandler))
	}
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1 := r.Group("/api/v1")

	// Invoices
	challans := v1.Group("/challans")
	challans.GET("/:id/invoice", h.Invoice.Get)
	challans.POST("/:id/invoice/archive", h.Invoice.Archive)
	v1.POST("/invoices/preview", h.Invoice.Preview)

	// Generic resource records
	resources := v1.Group("/resources")
	resources.GET("/:resource", h.Resource.List)
	resources.POST("/:resource", h.Resource.Create)
	resources.GET("/:resource/:id", h.Resource.Get)
	resources.PUT("/:resource/:id", h.Resource.Update)
	resources.DELETE("/:resource/:id", h.Resource.Delete)

	// Reports
	reports := v1.Group("/reports")
	reports.GET("/inventory", h.Report.Inventory)
	reports.GET("/sales/monthly", h.Report.MonthlySales)

	// Uploads
	v1.POST("/uploads", h.Upload.Upload)

	return r
}
