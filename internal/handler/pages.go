package handler

import (
	"errors"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"

	"github.com/labstack/echo/v4"

	"github.com/deppfellow/kringe-music/internal/middleware"
	"github.com/deppfellow/kringe-music/internal/server"
)

// MsgFileNotFound is the plain-text body for a missing page file.
const MsgFileNotFound = "Файл не найден"

// PageHandler serves the site's HTML pages from server.static_dir.
type PageHandler struct {
	Handler
}

func NewPageHandler(s *server.Server) *PageHandler {
	return &PageHandler{
		Handler: NewHandler(s),
	}
}

// Serve returns a handler writing the named page. Pages are read on every
// request and not cached, so edits show up without a restart.
func (h *PageHandler) Serve(name string) echo.HandlerFunc {
	return func(c echo.Context) error {
		path := filepath.Join(h.server.Config.Server.StaticDir, name)

		page, err := os.ReadFile(path)
		if errors.Is(err, fs.ErrNotExist) {
			middleware.GetLogger(c).Warn().Str("file", path).Msg("page file is missing")
			return c.String(http.StatusNotFound, MsgFileNotFound)
		}
		if err != nil {
			return err
		}

		c.Response().Header().Set("Cache-Control", "no-cache")
		return c.HTMLBlob(http.StatusOK, page)
	}
}
