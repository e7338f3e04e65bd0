// Package devserver is the demo backend for the SPA: it serves the shell
// page and static assets, keeps a counter that can be bumped over HTTP and
// watched over server-sent events or a websocket, and writes posted client
// logs to disk.
package devserver

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
)

// Server is the demo HTTP server.
type Server struct {
	cfg      *Config
	echo     *echo.Echo
	logger   *zap.Logger
	counter  atomic.Int64
	upgrader websocket.Upgrader
	now      func() time.Time
}

// New creates a server with all routes registered. A nil cfg means
// DefaultConfig, a nil logger discards output.
func New(cfg *Config, logger *zap.Logger) *Server {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	s := &Server{
		cfg:    cfg,
		echo:   echo.New(),
		logger: logger.Named("devserver"),
		now:    time.Now,
	}
	s.echo.HideBanner = true
	s.echo.HidePort = true
	s.echo.Debug = cfg.Dev
	s.routes()
	return s
}

func (s *Server) routes() {
	e := s.echo
	e.Use(middleware.Recover())
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:    true,
		LogStatus: true,
		LogMethod: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			s.logger.Info("request",
				zap.String("method", v.Method),
				zap.String("uri", v.URI),
				zap.Int("status", v.Status),
			)
			return nil
		},
	}))

	var limited []echo.MiddlewareFunc
	if s.cfg.RateRPS > 0 {
		limited = append(limited, newRateLimiter(s.cfg.RateRPS, s.cfg.RateBurst).middleware)
	}

	both := []string{http.MethodGet, http.MethodPost}

	e.GET("/", s.handleShell)
	e.Match(both, "/public/*", s.staticFrom(s.cfg.PublicDir))
	e.Match(both, "/source/*", s.staticFrom(s.cfg.SourceDir))
	e.POST("/sse_testing", s.handleIncrement, limited...)
	e.GET("/sse_testing", s.handleCounterStream)
	e.GET("/ws_testing", s.handleCounterSocket)
	e.POST("/yoru", s.handleLog, limited...)
}

// Handler exposes the server's routes, for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.echo
}

// Count returns the current counter value.
func (s *Server) Count() int64 {
	return s.counter.Load()
}

// Start serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", zap.String("addr", s.cfg.Addr))
		errCh <- s.echo.Start(s.cfg.Addr)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()
	return s.echo.Shutdown(shutdownCtx)
}

func (s *Server) handleShell(c echo.Context) error {
	c.Response().Header().Set(echo.HeaderContentType, echo.MIMETextHTMLCharsetUTF8)
	return shellPage(s.cfg.Title).Render(c.Request().Context(), c.Response())
}

// staticFrom serves files below dir. The wildcard is cleaned as an absolute
// path first so it cannot climb out of dir.
func (s *Server) staticFrom(dir string) echo.HandlerFunc {
	return func(c echo.Context) error {
		name := filepath.Join(dir, filepath.Clean("/"+c.Param("*")))
		return c.File(name)
	}
}

func (s *Server) handleIncrement(c echo.Context) error {
	n := s.counter.Add(1)
	return c.JSON(http.StatusOK, map[string]int64{"count": n})
}

// handleCounterStream emits the counter right away and then once per tick
// until the client goes away.
func (s *Server) handleCounterStream(c echo.Context) error {
	w := c.Response()
	w.Header().Set(echo.HeaderContentType, "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)

	ctx := c.Request().Context()
	ticker := time.NewTicker(s.cfg.TickInterval)
	defer ticker.Stop()

	for {
		if _, err := fmt.Fprintf(w, "data: %d\n\n", s.counter.Load()); err != nil {
			return nil
		}
		w.Flush()

		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}

// handleCounterSocket mirrors the event stream over a websocket.
func (s *Server) handleCounterSocket(c echo.Context) error {
	conn, err := s.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		s.logger.Warn("websocket upgrade failed", zap.Error(err))
		return nil
	}
	defer conn.Close()

	// Reading is only needed to notice the client closing.
	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(s.cfg.TickInterval)
	defer ticker.Stop()

	for {
		msg := []byte(fmt.Sprint(s.counter.Load()))
		if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			return nil
		}
		select {
		case <-closed:
			return nil
		case <-c.Request().Context().Done():
			return nil
		case <-ticker.C:
		}
	}
}

// handleLog writes the request body to a new timestamped file in LogDir.
func (s *Server) handleLog(c echo.Context) error {
	body, err := io.ReadAll(io.LimitReader(c.Request().Body, s.cfg.MaxLogBytes))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "unreadable body")
	}

	if err := os.MkdirAll(s.cfg.LogDir, 0o755); err != nil {
		s.logger.Error("cannot create log dir", zap.String("dir", s.cfg.LogDir), zap.Error(err))
		return echo.NewHTTPError(http.StatusInternalServerError, "log dir unavailable")
	}

	name := s.now().UTC().Format("20060102T150405.000000000") + ".log"
	if err := os.WriteFile(filepath.Join(s.cfg.LogDir, name), body, 0o644); err != nil {
		s.logger.Error("cannot write log", zap.String("file", name), zap.Error(err))
		return echo.NewHTTPError(http.StatusInternalServerError, "write failed")
	}

	s.logger.Info("client log stored", zap.String("file", name), zap.Int("bytes", len(body)))
	return c.JSON(http.StatusOK, map[string]string{"file": name})
}
