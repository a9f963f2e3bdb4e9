package v1

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes регистрирует все маршруты API v1
func (h *Handler) RegisterRoutes(api *gin.RouterGroup) {
	// Маршрут Health-check доступен без ключа
	api.GET("/system/health", h.healthCheck)

	protected := api.Group("", APIKeyAuthMiddleware(h.cfg, h.logger))

	// Загрузка и чтение участков
	farms := protected.Group("/farms")
	{
		farms.POST("/upload", h.uploadFarms)
		farms.POST("/sync", h.syncFarms)
		farms.GET("", h.listFarms)
		farms.GET("/:id", h.getFarm)
	}

	// Загруженные файлы
	files := protected.Group("/files")
	{
		files.GET("", h.listFiles)
		files.GET("/:id", h.getFile)
		files.GET("/:id/farms", h.listFileFarms)
		files.GET("/:id/export", h.exportFile)
		files.POST("/:id/reanalyze", h.reanalyzeFile)
	}

	protected.GET("/templates", h.downloadTemplate)
	protected.GET("/map/risk-layers/:level", h.getRiskLayer)

	settings := protected.Group("/settings")
	{
		settings.GET("/analysis", h.getAnalysisSettings)
		settings.PUT("/analysis", h.updateAnalysisSettings)
	}
}
