package cmd

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"food-ordering-api/config"
	"food-ordering-api/events"
	"food-ordering-api/handlers"
	"food-ordering-api/imagestore"
	"food-ordering-api/middleware"
	"food-ordering-api/payment"
	"food-ordering-api/routes"
	"food-ordering-api/services"

	"github.com/gin-gonic/gin"
	"github.com/rs/cors"
	"github.com/segmentio/kafka-go"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

const (
	readTimeout       = 30 * time.Second
	readHeaderTimeout = 10 * time.Second
	writeTimeout      = 30 * time.Second
	shutdownTimeout   = 10 * time.Second
)

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE:  runServe,
	}
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	log, err := config.NewLogger(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return err
	}
	gin.SetMode(cfg.GinMode)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	st, err := config.OpenStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer st.Close()
	if err := st.Migrate(ctx); err != nil {
		return err
	}

	verifier, err := newVerifier(ctx, cfg)
	if err != nil {
		return err
	}
	uploader, err := imagestore.NewCloudinaryUploader(cfg.CloudinaryURL)
	if err != nil {
		return err
	}
	gateway := payment.NewStripeGateway(cfg.StripeAPIKey, cfg.StripeWebhookSecret, cfg.StripeCurrency)

	var publisher events.Publisher = events.NopPublisher{}
	if cfg.KafkaBroker != "" {
		writer := events.NewKafkaWriter(cfg.KafkaBroker, cfg.KafkaOrderTopic)
		writer.ErrorLogger = kafka.LoggerFunc(log.WithField("component", "kafka").Errorf)
		kp := events.NewKafkaPublisher(writer)
		defer kp.Close()
		publisher = kp
	} else {
		log.Info("KAFKA_BROKER not set, order events are not published")
	}

	h := handlers.New(
		services.NewUserService(st),
		services.NewRestaurantService(st, uploader, log),
		services.NewSearchService(st),
		services.NewOrderService(st, st, st, gateway, publisher, cfg.FrontendURL, log),
	)

	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger(log))
	routes.SetupRoutes(r, h, verifier, st, log)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           withCORS(r, cfg.CORSAllowedOrigins),
		ReadTimeout:       readTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
		WriteTimeout:      writeTimeout,
	}
	return run(ctx, srv, log)
}

func newVerifier(ctx context.Context, cfg *config.Config) (middleware.TokenVerifier, error) {
	if cfg.AuthHMACSecret != "" {
		return middleware.NewHMACVerifier([]byte(cfg.AuthHMACSecret), cfg.Auth0IssuerBaseURL, cfg.Auth0Audience), nil
	}
	return middleware.NewJWKSVerifier(ctx, cfg.Auth0IssuerBaseURL, cfg.Auth0Audience)
}

func withCORS(h http.Handler, origins []string) http.Handler {
	return cors.New(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Origin", "Content-Type", "Authorization", "Stripe-Signature"},
	}).Handler(h)
}

// run serves until ctx is cancelled, then drains in-flight requests.
func run(ctx context.Context, srv *http.Server, log logrus.FieldLogger) error {
	errCh := make(chan error, 1)
	go func() {
		log.WithField("addr", srv.Addr).Info("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
