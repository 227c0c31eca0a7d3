package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/birkland/servefs/endpoint"
	ref "github.com/birkland/servefs/internal/resolv"
	"github.com/go-chi/chi/v5"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/urfave/cli"
)

const shutdownTimeout = 10 * time.Second

var serveOpts = struct {
	noMetrics bool
}{}

var serve cli.Command = cli.Command{
	Name:  "serve",
	Usage: "Serve static content over HTTP",
	Description: `Given one or more mounts, serve their content over HTTP.

	Each mount places a location under a URL route, in the form
	ROUTE=KIND:LOCATION, where KIND is one of

	  dir     files under a directory, read on every request
	  file    a single file, served for every path under the route
	  bundle  files under a directory, loaded into memory at start-up
	  s3      objects under an S3 bucket/prefix, loaded at start-up

	For example, the following serves /srv/static under /static, and
	a single page application for everything else

	  servefs serve /static=dir:/srv/static /=file:/srv/app/index.html

	Index files (-i) are served for directories of bundle and s3
	mounts only.  Prometheus metrics are exposed at /metrics`,
	ArgsUsage: "ROUTE=KIND:LOCATION...",
	Flags: []cli.Flag{
		cli.BoolFlag{
			Name:        "no-metrics",
			Usage:       "Do not collect or expose Prometheus metrics",
			Destination: &serveOpts.noMetrics,
		},
	},

	Action: func(c *cli.Context) error {
		return serveAction(c.Args())
	},
}

func serveAction(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("no mounts given")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var reg *prometheus.Registry
	if !serveOpts.noMetrics {
		reg = prometheus.NewRegistry()
		reg.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
	}

	r, err := router(ctx, args, reg)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              mainOpts.listen,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errs := make(chan error, 1)
	go func() {
		errs <- srv.ListenAndServe()
	}()
	log.Printf("listening on %s", mainOpts.listen)

	select {
	case err := <-errs:
		return errors.Wrapf(err, "could not serve on %s", mainOpts.listen)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	log.Printf("shutting down")
	return srv.Shutdown(shutdownCtx)
}

// Mounts every ROUTE=KIND:LOCATION on a new router.  Resolutions are counted
// in reg, which is exposed at /metrics; a nil reg disables metrics.
func router(ctx context.Context, mounts []string, reg *prometheus.Registry) (chi.Router, error) {
	r := chi.NewRouter()

	var opts []endpoint.Option
	if reg != nil {
		opts = append(opts, endpoint.WithMetrics(endpoint.NewMetrics(reg)))
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}))
	}

	for _, arg := range mounts {
		m, err := ref.ParseMount(arg)
		if err != nil {
			return nil, errors.Wrapf(err, "bad mount")
		}

		res, err := open(ctx, m.Location)
		if err != nil {
			return nil, errors.Wrapf(err, "could not mount %s", arg)
		}

		endpoint.Mount(r, m.Route, res, opts...)
		log.Printf("serving %s:%s at %s", m.Kind, m.Path, m.Route)
	}

	return r, nil
}
