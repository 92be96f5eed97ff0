// Package handler turns one invocation into an upload grant or a typed
// error response.
package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambdacontext"
	"github.com/google/uuid"

	"github.com/sh3r4rd/upload_url/internal/config"
	"github.com/sh3r4rd/upload_url/internal/logging"
	"github.com/sh3r4rd/upload_url/internal/model"
	"github.com/sh3r4rd/upload_url/internal/payload"
	"github.com/sh3r4rd/upload_url/internal/storage"
)

// Handler issues pre-signed upload URLs. It holds no mutable state and is
// safe for concurrent use.
type Handler struct {
	cfg    config.Config
	signer storage.Presigner
	log    logging.Logger
	now    func() time.Time
}

// Option customizes a Handler.
type Option func(*Handler)

// WithClock replaces time.Now as the source of key timestamps.
func WithClock(now func() time.Time) Option {
	return func(h *Handler) {
		h.now = now
	}
}

// New returns a Handler signing uploads into cfg.Bucket with signer.
func New(cfg config.Config, signer storage.Presigner, log logging.Logger, opts ...Option) *Handler {
	h := &Handler{
		cfg:    cfg,
		signer: signer,
		log:    log,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Handle is the Lambda entry point. The returned error is always nil:
// every failure is reported in the response.
func (h *Handler) Handle(ctx context.Context, raw json.RawMessage) (events.APIGatewayProxyResponse, error) {
	return h.Process(ctx, raw).Response(), nil
}

// Process runs Parse, Validate, DeriveKey and SignRequest on raw.
func (h *Handler) Process(ctx context.Context, raw []byte) (res Result) {
	log := h.log.With("request_id", requestID(ctx))

	defer func() {
		if r := recover(); r != nil {
			err := fmt.Errorf("panic: %v", r)
			log.Error(ctx, "unexpected error", "error", err)
			res = serverError(model.ErrInternal, err.Error(), err)
		}
	}()

	log.Debug(ctx, "received event", "event", string(raw))

	p, err := payload.Parse(raw)
	if err != nil {
		log.Error(ctx, "unexpected error", "error", err)
		return serverError(model.ErrInternal, err.Error(), err)
	}

	if p.IsPreflight() {
		log.Info(ctx, "answered preflight", "kind", p.Kind.String())
		return Result{Outcome: OutcomePreflight}
	}

	req := p.Request
	log.Info(ctx, "received request",
		"kind", p.Kind.String(),
		"file_name", req.FileName,
		"content_type", req.ContentType,
	)

	if req.FileName == "" {
		log.Error(ctx, "fileName parameter is missing")
		return clientError(model.ErrFileNameRequired, "")
	}
	if h.cfg.RejectUnsafeFileNames {
		if reason := unsafeFileName(req.FileName); reason != "" {
			log.Warn(ctx, "rejected file name", "file_name", req.FileName, "reason", reason)
			return clientError(model.ErrFileNameInvalid, "fileName "+reason)
		}
	}

	key := DeriveKey(h.now(), req.FileName)
	log.Info(ctx, "generating pre-signed URL", "key", key, "bucket", h.cfg.Bucket)

	url, err := h.signer.PresignPut(ctx, h.cfg.Bucket, key, h.cfg.Expiration())
	if err != nil {
		detail, code := err.Error(), ""
		var se *storage.SigningError
		if errors.As(err, &se) {
			detail, code = se.Err.Error(), se.Code()
		}
		log.Error(ctx, "presign failed", "key", key, "code", code, "error", err)
		return serverError(model.ErrSigningFailed, detail, err)
	}

	log.Info(ctx, "generated pre-signed URL", "key", key)
	return success(model.UploadResponse{
		UploadURL: url,
		Key:       key,
		Bucket:    h.cfg.Bucket,
	})
}

// requestID returns the Lambda request id, or a fresh UUID when the
// handler runs outside Lambda.
func requestID(ctx context.Context) string {
	if lc, ok := lambdacontext.FromContext(ctx); ok && lc.AwsRequestID != "" {
		return lc.AwsRequestID
	}
	return uuid.NewString()
}
