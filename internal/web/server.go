// internal/web/server.go
package web

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/tamzrod/pemf-controller/internal/display"
	"github.com/tamzrod/pemf-controller/internal/protocol"
	"github.com/tamzrod/pemf-controller/internal/session"
)

// NoticeClientConnected is shown on the display on every form render.
const NoticeClientConnected = "Client connected"

// Controller is the dispatcher surface the web layer drives.
type Controller interface {
	Apply(req session.Request) session.Parameters
	ReadCurrent() protocol.SignalReading
	State() *session.State
}

// RequestRecorder receives one call per served request (see metrics.Metrics).
type RequestRecorder interface {
	RecordHTTPRequest(method, path string, status int, d time.Duration)
}

// Options wires the router. Display, Metrics and MetricsHandler are optional.
type Options struct {
	Title          string
	Controller     Controller
	Display        display.Sink
	Log            zerolog.Logger
	Metrics        RequestRecorder
	MetricsHandler http.Handler
}

// NewRouter builds the control surface. The surface forwards raw form
// values: all clamping happens in the dispatcher.
func NewRouter(opts Options) *gin.Engine {
	log := opts.Log.With().Str("module", "web").Logger()

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(requestLogger(log))
	if opts.Metrics != nil {
		r.Use(requestMetrics(opts.Metrics))
	}
	r.SetHTMLTemplate(formTemplate)

	h := &handlers{
		title: opts.Title,
		ctl:   opts.Controller,
		disp:  opts.Display,
	}

	r.GET("/", h.form)
	r.POST("/", h.submit)

	api := r.Group("/api")
	api.GET("/session", h.session)
	api.GET("/reading", h.reading)

	if opts.MetricsHandler != nil {
		r.GET("/metrics", gin.WrapH(opts.MetricsHandler))
	}

	r.NoRoute(notFound)

	return r
}

// NewServer wraps a handler with fixed timeouts.
func NewServer(addr string, h http.Handler) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           h,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
}

// ---- handlers ----

type handlers struct {
	title string
	ctl   Controller
	disp  display.Sink
}

func (h *handlers) form(c *gin.Context) {
	if h.disp != nil {
		h.disp.Println(NoticeClientConnected)
	}
	c.HTML(http.StatusOK, formTemplateName, newFormView(h.title, h.ctl.State().Snapshot()))
}

func (h *handlers) submit(c *gin.Context) {
	// query and body values both count
	if err := c.Request.ParseForm(); err != nil {
		c.String(http.StatusBadRequest, "Bad request")
		return
	}

	h.ctl.Apply(session.ParseRequest(c.Request.Form))
	c.Redirect(http.StatusSeeOther, "/")
}

func (h *handlers) session(c *gin.Context) {
	c.JSON(http.StatusOK, h.ctl.State().Snapshot())
}

func (h *handlers) reading(c *gin.Context) {
	c.JSON(http.StatusOK, h.ctl.ReadCurrent())
}

func notFound(c *gin.Context) {
	c.String(http.StatusNotFound, "Not found")
}

// ---- middleware ----

func requestLogger(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}

		event := log.Debug()
		if status >= 500 {
			event = log.Error()
		} else if status >= 400 {
			event = log.Warn()
		}

		event.
			Str("method", c.Request.Method).
			Str("path", path).
			Int("status", status).
			Dur("duration", time.Since(start)).
			Str("client_ip", c.ClientIP()).
			Msg("http_request")
	}
}

func requestMetrics(rec RequestRecorder) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		rec.RecordHTTPRequest(c.Request.Method, path, c.Writer.Status(), time.Since(start))
	}
}
