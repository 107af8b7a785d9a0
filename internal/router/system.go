package router

import (
	"path/filepath"

	"github.com/labstack/echo/v4"

	"github.com/deppfellow/kringe-music/internal/handler"
)

// assetDirs are the static folders the site pages link to.
var assetDirs = []string{"styles", "scripts", "images", "music"}

// registerSystemRoutes registers endpoints that sit outside the route
// table: the health probe and the static asset folders.
func registerSystemRoutes(r *echo.Echo, h *handler.Handlers, staticDir string) {
	r.GET("/status", h.Health.CheckHealth)

	for _, dir := range assetDirs {
		r.Static("/"+dir, filepath.Join(staticDir, dir))
	}
}
