package handlers

import (
	"log/slog"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/memohai/linehook/internal/config"
)

// StaticMount serves the files of Dir under Prefix.
type StaticMount struct {
	Prefix string
	Dir    string
}

// StaticHandler serves bundled assets and downloaded media.
type StaticHandler struct {
	logger *slog.Logger
	mounts []StaticMount
}

func NewStaticHandler(log *slog.Logger, mounts ...StaticMount) *StaticHandler {
	if log == nil {
		log = slog.Default()
	}
	return &StaticHandler{logger: log.With(slog.String("handler", "static")), mounts: mounts}
}

// NewStaticServerHandler mounts the static and download directories from cfg.
func NewStaticServerHandler(log *slog.Logger, cfg config.Config) *StaticHandler {
	return NewStaticHandler(log,
		StaticMount{Prefix: cfg.Static.Prefix, Dir: cfg.Static.Dir},
		StaticMount{Prefix: cfg.Download.Prefix, Dir: cfg.Download.Dir},
	)
}

func (h *StaticHandler) Register(e *echo.Echo) {
	for _, m := range h.mounts {
		if strings.TrimSpace(m.Dir) == "" {
			continue
		}
		prefix := "/" + strings.Trim(m.Prefix, "/")
		e.Static(prefix, m.Dir)
		h.logger.Debug("static mount", slog.String("prefix", prefix), slog.String("dir", m.Dir))
	}
}
