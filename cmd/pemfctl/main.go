// cmd/pemfctl/main.go
package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	zlog "github.com/rs/zerolog/log"

	"github.com/tamzrod/pemf-controller/internal/config"
	"github.com/tamzrod/pemf-controller/internal/console"
	"github.com/tamzrod/pemf-controller/internal/discovery"
	"github.com/tamzrod/pemf-controller/internal/logging"
	"github.com/tamzrod/pemf-controller/internal/metrics"
	"github.com/tamzrod/pemf-controller/internal/monitor"
	"github.com/tamzrod/pemf-controller/internal/session"
	"github.com/tamzrod/pemf-controller/internal/web"
)

const appName = "pemfctl"

const shutdownTimeout = 5 * time.Second

func main() {
	cfgPath := flag.String("config", "pemf.yaml", "path to the YAML config")
	withConsole := flag.Bool("console", false, "run the interactive console")
	flag.Parse()

	// --------------------
	// Load + validate config
	// --------------------

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		zlog.Fatal().Err(err).Msg("config load failed")
	}
	if err := config.Validate(cfg); err != nil {
		zlog.Fatal().Err(err).Str("path", *cfgPath).Msg("config validation failed")
	}
	config.Normalize(cfg)
	c := cfg.Controller

	log, err := logging.New(appName, c.Log)
	if err != nil {
		zlog.Fatal().Err(err).Msg("logger setup failed")
	}
	zlog.Logger = log

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// --------------------
	// Modules
	// --------------------

	signalGen, relay, closeTransports, err := buildTransports(c, log)
	if err != nil {
		log.Fatal().Err(err).Msg("transport open failed")
	}
	defer closeTransports()

	d := session.NewDispatcher(session.NewState(), signalGen, relay, log)

	var m *metrics.Metrics
	if c.Metrics.Enabled {
		m = metrics.New()
		d.AddObserver(m)
	}

	mir, closeMirror, err := buildMirror(c, log)
	if err != nil {
		// the mirror is telemetry only: run without it
		log.Warn().Err(err).Str("endpoint", c.Mirror.Endpoint).Msg("mirror disabled")
	} else {
		defer closeMirror()
		if mir != nil {
			d.AddObserver(mir)
		}
	}

	d.Initialize()

	// --------------------
	// Display
	// --------------------

	disp, closeDisplay, err := buildDisplay(c.Display, log)
	if err != nil {
		log.Fatal().Err(err).Msg("display init failed")
	}
	defer closeDisplay()

	disp.Println(c.Name)
	disp.Println("IP: " + displayAddress(c.HTTP.Addr))

	// --------------------
	// Discovery
	// --------------------

	if c.Discovery.Enabled {
		defer startDiscovery(ctx, c, log)()
	}

	// --------------------
	// Monitor
	// --------------------

	if c.Monitor.IntervalMs > 0 {
		mon, err := monitor.New(time.Duration(c.Monitor.IntervalMs)*time.Millisecond, d)
		if err != nil {
			log.Fatal().Err(err).Msg("monitor setup failed")
		}

		out := make(chan monitor.Result)
		go mon.Run(ctx, out)
		go func() {
			for {
				select {
				case <-ctx.Done():
					return
				case res := <-out:
					log.Info().
						Str("module", "monitor").
						Float64("freq_hz", res.Reading.FrequencyHz).
						Float64("duty_pct", res.Reading.DutyPercent).
						Msg("generator status")
				}
			}
		}()
	}

	// --------------------
	// HTTP
	// --------------------

	gin.SetMode(gin.ReleaseMode)
	opts := web.Options{
		Title:      "PEMF Machine Settings",
		Controller: d,
		Display:    disp,
		Log:        log,
	}
	if m != nil {
		opts.Metrics = m
		opts.MetricsHandler = m.Handler()
	}
	srv := web.NewServer(c.HTTP.Addr, web.NewRouter(opts))

	serveErr := make(chan error, 1)
	go func() {
		log.Info().Str("addr", c.HTTP.Addr).Msg("web server started")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
	}()

	// --------------------
	// Console
	// --------------------

	if *withConsole {
		con, err := console.New(d)
		if err != nil {
			log.Fatal().Err(err).Msg("console setup failed")
		}
		go con.Run(ctx, stop)
	}

	// --------------------
	// Run until signal
	// --------------------

	select {
	case <-ctx.Done():
		log.Info().Msg("shutting down")
	case err := <-serveErr:
		log.Error().Err(err).Msg("web server failed")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Warn().Err(err).Msg("web server shutdown")
	}
}

// startDiscovery advertises the web surface and returns the withdraw func.
func startDiscovery(ctx context.Context, c config.ControllerConfig, log zerolog.Logger) func() {
	noop := func() {}

	port, err := discovery.PortFromAddr(c.HTTP.Addr)
	if err != nil {
		log.Warn().Err(err).Msg("discovery disabled")
		return noop
	}

	adv, err := discovery.NewAdvertiser(discovery.Config{
		Instance:  c.Discovery.Instance,
		Name:      c.Name,
		Port:      port,
		Interface: c.Discovery.Interface,
	}, log)
	if err != nil {
		log.Warn().Err(err).Msg("discovery disabled")
		return noop
	}

	// best-effort: the display still shows the address
	if err := adv.Advertise(ctx); err != nil {
		log.Warn().Err(err).Msg("discovery disabled")
		return noop
	}
	return adv.Stop
}
