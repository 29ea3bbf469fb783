package api

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// RouterConfig carries the HTTP-level settings of the router.
type RouterConfig struct {
	AllowedOrigins []string
	DelayMin       time.Duration
	DelayMax       time.Duration
}

// NewRouter builds the gin engine with middleware and every API route.
func NewRouter(cfg RouterConfig, handler *Handler, logger *logrus.Logger) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(RequestLogger(logger))
	router.Use(CORS(cfg.AllowedOrigins))

	var apiMiddleware []gin.HandlerFunc
	if cfg.DelayMax > 0 {
		apiMiddleware = append(apiMiddleware, ResponseDelay(cfg.DelayMin, cfg.DelayMax))
	}

	SetupRoutes(router, handler, apiMiddleware...)
	return router
}
