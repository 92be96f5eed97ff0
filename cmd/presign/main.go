// Command presign is the Lambda function that hands out pre-signed S3
// upload URLs.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/aws/aws-lambda-go/lambda"

	"github.com/sh3r4rd/upload_url/internal/config"
	"github.com/sh3r4rd/upload_url/internal/handler"
	"github.com/sh3r4rd/upload_url/internal/logging"
	"github.com/sh3r4rd/upload_url/internal/storage"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n\n%s", err, config.Usage())
		os.Exit(1)
	}

	log, err := logging.NewJSON(os.Stdout, cfg.LogLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	signer, err := storage.NewS3PresignerFromConfig(ctx, cfg)
	if err != nil {
		log.Error(ctx, "failed to build S3 presigner", "error", err)
		os.Exit(1)
	}

	log.Info(ctx, "cold start",
		"bucket", cfg.Bucket,
		"url_expiration_seconds", cfg.URLExpiration,
		"custom_endpoint", cfg.Endpoint != "",
	)

	lambda.Start(handler.New(cfg, signer, log).Handle)
}
