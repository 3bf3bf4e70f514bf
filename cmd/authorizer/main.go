// Command authorizer is the API Gateway TOKEN authorizer Lambda function.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/aws/aws-lambda-go/lambda"

	"github.com/jonwraymond/gatekeeper/auth"
	"github.com/jonwraymond/gatekeeper/config"
	"github.com/jonwraymond/gatekeeper/gateway"
	"github.com/jonwraymond/gatekeeper/observe"
	"github.com/jonwraymond/gatekeeper/secret"
)

const shutdownTimeout = 2 * time.Second

func main() {
	if err := run(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "authorizer: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	obs, err := observe.NewObserver(ctx, cfg.Observe())
	if err != nil {
		return fmt.Errorf("init telemetry: %w", err)
	}
	inst, err := observe.InstrumentsFromObserver(obs)
	if err != nil {
		return fmt.Errorf("init instruments: %w", err)
	}

	provider, err := secret.DefaultRegistry.Create(ctx, cfg.SecretProvider, cfg.ProviderConfig())
	if err != nil {
		return fmt.Errorf("create secret provider: %w", err)
	}

	source := secret.NewCachedSource(provider, cfg.Source(), inst)
	verifier, err := auth.NewVerifier(cfg.Verifier(), source, inst)
	if err != nil {
		return fmt.Errorf("create verifier: %w", err)
	}
	handler := gateway.NewHandler(verifier, inst.Logger)

	shutdown := func() {
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := obs.Shutdown(ctx); err != nil {
			inst.Logger.Error(ctx, "telemetry shutdown failed", observe.Err(err))
		}
		_ = provider.Close()
	}

	inst.Logger.Info(ctx, "authorizer starting",
		observe.String("secret_provider", provider.Name()),
		observe.String("version", config.Version),
	)

	lambda.StartWithOptions(handler.Handle,
		lambda.WithContext(ctx),
		lambda.WithEnableSIGTERM(shutdown),
	)
	return nil
}
