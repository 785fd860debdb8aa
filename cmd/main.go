package main

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"strings"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/shopglass/wholesale-gate/api"
	"github.com/shopglass/wholesale-gate/backend"
	"github.com/shopglass/wholesale-gate/dynamo"
	"github.com/shopglass/wholesale-gate/storefront"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	if err := run(logger); err != nil {
		logger.Error("Server exited", "error", err)
		os.Exit(1)
	}
}

func run(logger *slog.Logger) error {
	ctx := context.Background()

	cfg, err := LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	env := api.LOCAL
	if strings.EqualFold(cfg.Env, "prod") {
		env = api.PROD
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return fmt.Errorf("failed to get aws config: %w", err)
	}

	db := dynamo.NewDB(dynamodb.NewFromConfig(awsCfg), cfg.TableName)

	platform := storefront.NewClient(cfg.PlatformBaseURL, cfg.PlatformAPIKey)

	backendClient := backend.NewClient(
		cfg.BackendBaseURL,
		cfg.StoreID,
		platform,
		backend.WithLanguage(cfg.Language),
	)

	wholesaleAPI := api.NewAPI(
		db,
		backendClient,
		platform,
		logger,
		env,
		storefront.NewSessionValidator(cfg.PlatformBaseURL),
		storefront.NewTurnstileValidator(cfg.TurnstileSecret),
		createEmailSender(logger, env, awsCfg),
		api.Settings{
			StoreID:           cfg.StoreID,
			TargetGroup:       cfg.TargetGroup,
			RegistrationRoute: cfg.RegistrationRoute,
			FromAddress:       cfg.FromAddress,
			AllowedOrigins:    cfg.AllowedOriginList(),
		},
	)

	swagger, err := api.GetSwagger()
	if err != nil {
		return fmt.Errorf("failed to load swagger spec: %w", err)
	}

	swagger.Servers = nil

	s := &http.Server{
		Handler: wholesaleAPI.Handler(swagger),
		Addr:    net.JoinHostPort(cfg.Host, cfg.Port),
	}

	logger.Info("Listening", slog.String("addr", s.Addr))

	return s.ListenAndServe()
}
