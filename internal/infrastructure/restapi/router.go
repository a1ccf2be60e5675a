package restapi

import (
	"embed"
	"html/template"
	"net/http/pprof"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

//go:embed templates/index.html
var templatesFS embed.FS

// RouterOptions toggles optional endpoints.
type RouterOptions struct {
	EnablePprof bool
}

// SetupRouter configures and returns the Gin engine.
func SetupRouter(portfolioHandler *PortfolioHandler, zapLogger *zap.Logger, opts RouterOptions) *gin.Engine {
	router := gin.New()

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept"}
	router.Use(cors.New(corsConfig))
	router.Use(ZapLoggerMiddleware(zapLogger))
	router.Use(gin.Recovery())

	router.SetHTMLTemplate(template.Must(template.ParseFS(templatesFS, "templates/index.html")))

	router.GET("/", portfolioHandler.ShowFormHandler)
	router.POST("/", portfolioHandler.SubmitFormHandler)
	router.GET("/healthz", portfolioHandler.HealthHandler)

	v1 := router.Group("/api/v1")
	{
		v1.POST("/portfolio", portfolioHandler.RenderPortfolioHandler)
		v1.GET("/clusters", portfolioHandler.ClustersHandler)
	}

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	if opts.EnablePprof {
		pprofRouter := router.Group("/debug/pprof")
		{
			pprofRouter.GET("/", gin.WrapF(pprof.Index))
			pprofRouter.GET("/cmdline", gin.WrapF(pprof.Cmdline))
			pprofRouter.GET("/profile", gin.WrapF(pprof.Profile))
			pprofRouter.GET("/symbol", gin.WrapF(pprof.Symbol))
			pprofRouter.GET("/trace", gin.WrapF(pprof.Trace))
			pprofRouter.GET("/heap", gin.WrapH(pprof.Handler("heap")))
			pprofRouter.GET("/goroutine", gin.WrapH(pprof.Handler("goroutine")))
		}
	}

	return router
}

// ZapLoggerMiddleware logs one line per request. Query strings are left out
// since they may carry API keys.
func ZapLoggerMiddleware(zapLogger *zap.Logger) gin.HandlerFunc {
	log := zapLogger.Named("http")
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String("client_ip", c.ClientIP()),
		}
		if len(c.Errors) > 0 {
			fields = append(fields, zap.String("errors", c.Errors.String()))
		}
		switch {
		case c.Writer.Status() >= 500:
			log.Error("request", fields...)
		case c.Writer.Status() >= 400:
			log.Warn("request", fields...)
		default:
			log.Info("request", fields...)
		}
	}
}
