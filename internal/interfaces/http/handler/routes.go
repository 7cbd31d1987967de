package handler

import "github.com/gin-gonic/gin"

// RegisterRoutes registers session scope routes
func (h *SessionHandler) RegisterRoutes(rg *gin.RouterGroup) {
	session := rg.Group("/session")
	{
		session.POST("/bootstrap", h.Bootstrap)
		session.GET("/scope", h.CurrentScope)
		session.PUT("/tenant", h.SwitchTenant)
		session.PUT("/period", h.SwitchPeriod)
		session.DELETE("", h.Logout)
	}
}

// RegisterRoutes registers accounting period routes
func (h *PeriodHandler) RegisterRoutes(rg *gin.RouterGroup) {
	periods := rg.Group("/periods")
	{
		periods.GET("", h.List)
		periods.POST("", h.Create)
		periods.PUT("/:id", h.Update)
		periods.DELETE("/:id", h.Delete)
		periods.POST("/:id/activate", h.Activate)
		periods.POST("/:id/close", h.Close)
		periods.POST("/:id/reopen", h.Reopen)
	}
}

// RegisterRoutes registers tenant directory routes
func (h *TenantHandler) RegisterRoutes(rg *gin.RouterGroup) {
	tenants := rg.Group("/tenants")
	{
		tenants.GET("", h.List)
		tenants.GET("/:id", h.GetByID)
		tenants.PUT("/:id/settings", h.UpdateSettings)
	}
}

// RegisterRoutes registers system routes
func (h *SystemHandler) RegisterRoutes(rg *gin.RouterGroup) {
	system := rg.Group("/system")
	{
		system.GET("/info", h.GetSystemInfo)
		system.GET("/ping", h.Ping)
	}
}
