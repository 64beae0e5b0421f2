package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/xavierca1/ligue-crm/internal/config"
	"github.com/xavierca1/ligue-crm/internal/fixture"
	"github.com/xavierca1/ligue-crm/internal/infra/database"
	"github.com/xavierca1/ligue-crm/internal/infra/http/handlers"
	"github.com/xavierca1/ligue-crm/internal/infra/http/middleware"
	"github.com/xavierca1/ligue-crm/internal/infra/mail"
	"github.com/xavierca1/ligue-crm/internal/infra/queue"
	"github.com/xavierca1/ligue-crm/internal/infra/worker"
	"github.com/xavierca1/ligue-crm/internal/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	log := logger.New(cfg.App.Name, cfg.Log.Level, cfg.Log.Format)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 1. Store
	store := database.NewStore()
	if cfg.CRM.SeedFixtures {
		data := fixture.LoadInitialData()
		store.Load(data.Leads, data.Deals, data.Products, data.Invoices)
		log.WithFields(countFields(store.Counts())).Info("fixtures loaded")
	}

	// 2. Broker and mail (optional)
	var (
		producer queue.QueueProducerInterface = queue.NewLogProducer(log)
		broker   handlers.BrokerStatus
	)
	if cfg.RabbitMQ.Enabled() {
		rabbitMQ, err := queue.NewRabbitMQ(cfg.RabbitMQ.URL)
		if err != nil {
			log.WithError(err).Fatal("rabbitmq unavailable")
		}
		defer rabbitMQ.Close()

		producer = queue.NewProducer(rabbitMQ.Ch)
		broker = rabbitMQ

		if cfg.Mail.Enabled() {
			sender := mail.NewEmailSender(cfg.Mail.Host, cfg.Mail.Port, cfg.Mail.User, cfg.Mail.Password, cfg.Mail.From)
			go func() {
				if err := queue.NewWorker(rabbitMQ.Ch, sender, log).Start(ctx, queue.DeliveryQueue); err != nil {
					log.WithError(err).Error("delivery worker exited")
				}
			}()
		} else {
			log.Warn("MAIL_HOST not set, invoice deliveries stay queued")
		}
	}

	// 3. Use cases and handlers
	a := newApp(cfg, store, producer, broker, log)

	// 4. Background jobs
	if cfg.Overdue.Enabled {
		go func() {
			if err := worker.NewOverdueWorker(a.invoices, cfg.Overdue.Schedule, log).Start(ctx); err != nil {
				log.WithError(err).Error("overdue sweep exited")
			}
		}()
	}

	limiter := middleware.NewRateLimiter(cfg.Server.RateLimitPerMinute, time.Minute)
	go limiter.Cleanup(ctx.Done(), 10*time.Minute)

	// 5. Router
	srv := &http.Server{
		Addr: fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: handlers.NewRouter(a.handlers, handlers.RouterOptions{
			AllowedOrigins: cfg.CORS.Origins(),
			Limiter:        limiter,
			TrustProxy:     cfg.Server.TrustProxy,
			Log:            log,
		}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx)
	}()

	log.WithField("port", cfg.Server.Port).Info("crm api listening")
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.WithError(err).Fatal("server error")
	}
	log.Info("crm api stopped")
}

func countFields(m map[string]int) logrus.Fields {
	out := make(logrus.Fields, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
