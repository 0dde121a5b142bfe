package routes

import (
	"menumeters/internal/controllers"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func RegisterMeterRoutes(r gin.IRouter, mc *controllers.MetersController, auth gin.HandlerFunc) {
	meters := r.Group("/meters", auth)
	{
		meters.GET("", mc.GetAll)
		meters.GET("/:category", mc.GetMeter)
	}
}

// RegisterWebSocketRoutes registers the live frame stream. Tokens are
// printed to the log at startup; there is no HTTP endpoint issuing them.
func RegisterWebSocketRoutes(r gin.IRouter, wc *controllers.WebSocketController, auth gin.HandlerFunc) {
	r.GET("/ws", auth, wc.HandleWebSocket)
}

func RegisterExporterRoutes(r gin.IRouter, registry *prometheus.Registry) {
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))
}
