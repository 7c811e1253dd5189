package cli

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"golang.org/x/sync/errgroup"

	"github.com/secmon-lab/isorisk/pkg/cli/config"
	httpctrl "github.com/secmon-lab/isorisk/pkg/controller/http"
	"github.com/secmon-lab/isorisk/pkg/service/metrics"
	"github.com/secmon-lab/isorisk/pkg/service/worker"
	"github.com/secmon-lab/isorisk/pkg/usecase"
	"github.com/secmon-lab/isorisk/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

const shutdownTimeout = 10 * time.Second

func cmdServe() *cli.Command {
	var addr string
	var reviewInterval time.Duration
	var enableMetrics bool
	var repoCfg config.Repository
	var slackCfg config.Slack
	var notionCfg config.Notion
	var catalogCfg config.Catalog

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "addr",
			Usage:       "HTTP server address",
			Value:       ":8080",
			Sources:     cli.EnvVars("ISORISK_ADDR"),
			Destination: &addr,
		},
		&cli.DurationFlag{
			Name:        "review-interval",
			Usage:       "Interval between review reminder checks (requires Slack)",
			Value:       time.Hour,
			Sources:     cli.EnvVars("ISORISK_REVIEW_INTERVAL"),
			Destination: &reviewInterval,
		},
		&cli.BoolFlag{
			Name:        "metrics",
			Usage:       "Expose Prometheus metrics on /metrics",
			Value:       true,
			Sources:     cli.EnvVars("ISORISK_METRICS"),
			Destination: &enableMetrics,
		},
	}

	flags = append(flags, repoCfg.Flags()...)
	flags = append(flags, slackCfg.Flags()...)
	flags = append(flags, notionCfg.Flags()...)
	flags = append(flags, catalogCfg.Flags()...)

	return &cli.Command{
		Name:    "serve",
		Aliases: []string{"s"},
		Usage:   "Start HTTP server",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			repo, err := repoCfg.Configure(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to initialize repository")
			}
			defer func() {
				if err := repo.Close(); err != nil {
					logging.Default().Error("failed to close repository", "error", err.Error())
				}
			}()

			catalog, err := catalogCfg.Configure()
			if err != nil {
				return goerr.Wrap(err, "failed to load factor catalog")
			}

			notifier, err := slackCfg.Configure()
			if err != nil {
				return goerr.Wrap(err, "failed to configure slack notifier")
			}

			ucOpts := []usecase.Option{
				usecase.WithCatalog(catalog),
			}
			if notifier != nil {
				ucOpts = append(ucOpts, usecase.WithNotifier(notifier))
				logging.Default().Info("Slack notification enabled", "slack", slackCfg)
			} else {
				logging.Default().Info("Slack not configured, notifications and review reminders are disabled")
			}

			exporter, err := notionCfg.Configure()
			if err != nil {
				return goerr.Wrap(err, "failed to configure notion exporter")
			}
			if exporter != nil {
				ucOpts = append(ucOpts, usecase.WithExporter(exporter))
				logging.Default().Info("Notion risk register export enabled", "notion", notionCfg)
			}

			var httpOpts []httpctrl.Options
			if enableMetrics {
				m := metrics.New()
				ucOpts = append(ucOpts, usecase.WithMetrics(m))
				httpOpts = append(httpOpts, httpctrl.WithMetrics(m.Handler(), m))
			}

			uc := usecase.New(repo, ucOpts...)

			server := &http.Server{
				Addr:              addr,
				Handler:           httpctrl.New(uc.Assessment, httpOpts...),
				ReadHeaderTimeout: 30 * time.Second,
			}

			ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
			defer stop()

			var reviewWorker *worker.ReviewReminderWorker
			if notifier != nil {
				reviewWorker = worker.NewReviewReminderWorker(uc.Assessment, reviewInterval)
				if err := reviewWorker.Start(ctx); err != nil {
					return goerr.Wrap(err, "failed to start review reminder worker")
				}
			}

			eg, egCtx := errgroup.WithContext(ctx)

			eg.Go(func() error {
				logging.Default().Info("Starting HTTP server", "addr", addr, "metrics", enableMetrics)
				if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					return goerr.Wrap(err, "failed to start server")
				}
				return nil
			})

			eg.Go(func() error {
				<-egCtx.Done()
				logging.Default().Info("Shutting down")

				if reviewWorker != nil {
					reviewWorker.Stop()
				}

				shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
				defer cancel()

				if err := server.Shutdown(shutdownCtx); err != nil {
					return goerr.Wrap(err, "failed to shutdown server gracefully")
				}

				logging.Default().Info("Server shutdown completed")
				return nil
			})

			return eg.Wait()
		},
	}
}
