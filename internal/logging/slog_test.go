package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
)

// records splits JSON-lines output into decoded records.
func records(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var out []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var rec map[string]any
		if err := json.Unmarshal([]byte(line), &rec); err != nil {
			t.Fatalf("line is not JSON: %q: %v", line, err)
		}
		out = append(out, rec)
	}
	return out
}

func TestNewJSON_RequestScopedFields(t *testing.T) {
	var buf bytes.Buffer
	log, err := NewJSON(&buf, "info")
	if err != nil {
		t.Fatalf("NewJSON: %v", err)
	}

	ctx := context.Background()
	reqLog := log.With("request_id", "req-42")
	reqLog.Info(ctx, "generating pre-signed URL", "key", "2025-10-21T10-30-00-photo.jpg", "bucket", "my-bucket")
	reqLog.Error(ctx, "presign failed", "code", "AccessDenied")

	recs := records(t, &buf)
	if len(recs) != 2 {
		t.Fatalf("expected 2 records, got %d:\n%s", len(recs), buf.String())
	}

	tests := []struct {
		rec   map[string]any
		level string
		msg   string
		attrs map[string]string
	}{
		{recs[0], "INFO", "generating pre-signed URL", map[string]string{
			"request_id": "req-42",
			"key":        "2025-10-21T10-30-00-photo.jpg",
			"bucket":     "my-bucket",
		}},
		{recs[1], "ERROR", "presign failed", map[string]string{
			"request_id": "req-42",
			"code":       "AccessDenied",
		}},
	}

	for _, tc := range tests {
		if tc.rec["level"] != tc.level {
			t.Errorf("level = %v, want %s", tc.rec["level"], tc.level)
		}
		if tc.rec["msg"] != tc.msg {
			t.Errorf("msg = %v, want %s", tc.rec["msg"], tc.msg)
		}
		for k, v := range tc.attrs {
			if tc.rec[k] != v {
				t.Errorf("%s = %v, want %s", k, tc.rec[k], v)
			}
		}
	}
}

func TestNewJSON_ParentUnaffectedByWith(t *testing.T) {
	var buf bytes.Buffer
	log, err := NewJSON(&buf, "")
	if err != nil {
		t.Fatalf("NewJSON: %v", err)
	}

	ctx := context.Background()
	_ = log.With("request_id", "req-1")
	log.Info(ctx, "cold start", "bucket", "my-bucket")

	recs := records(t, &buf)
	if len(recs) != 1 {
		t.Fatalf("expected 1 record, got %d", len(recs))
	}
	if _, ok := recs[0]["request_id"]; ok {
		t.Errorf("cold start record must not carry request_id: %v", recs[0])
	}
}

func TestNewJSON_FiltersBelowLevel(t *testing.T) {
	var buf bytes.Buffer
	log, err := NewJSON(&buf, "warn")
	if err != nil {
		t.Fatalf("NewJSON: %v", err)
	}

	ctx := context.Background()
	log.Debug(ctx, "received event", "event", `{"fileName":"a"}`)
	log.Info(ctx, "received request")
	log.Warn(ctx, "rejected file name", "file_name", "../a")

	recs := records(t, &buf)
	if len(recs) != 1 {
		t.Fatalf("expected 1 record, got %d:\n%s", len(recs), buf.String())
	}
	if recs[0]["msg"] != "rejected file name" || recs[0]["file_name"] != "../a" {
		t.Fatalf("unexpected record: %v", recs[0])
	}
}

func TestNewJSON_DebugEmitsRawEvent(t *testing.T) {
	var buf bytes.Buffer
	log, err := NewJSON(&buf, "debug")
	if err != nil {
		t.Fatalf("NewJSON: %v", err)
	}

	log.Debug(context.Background(), "received event", "event", `{"fileName":"a"}`)

	recs := records(t, &buf)
	if len(recs) != 1 || recs[0]["event"] != `{"fileName":"a"}` {
		t.Fatalf("unexpected records: %v", recs)
	}
}

func TestNewJSON_RejectsUnknownLevel(t *testing.T) {
	if _, err := NewJSON(&bytes.Buffer{}, "verbose"); err == nil {
		t.Fatal("expected error for unknown level")
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    slog.Level
		wantErr bool
	}{
		{"", slog.LevelInfo, false},
		{"DEBUG", slog.LevelDebug, false},
		{" info ", slog.LevelInfo, false},
		{"warning", slog.LevelWarn, false},
		{"error", slog.LevelError, false},
		{"verbose", 0, true},
	}

	for _, tc := range tests {
		got, err := ParseLevel(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Errorf("ParseLevel(%q): expected error", tc.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseLevel(%q): %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestDiscard_DoesNotPanic(t *testing.T) {
	log := Discard()
	ctx := context.TODO()
	log.Info(ctx, "cold start")
	log.With("request_id", "req-1").Error(ctx, "presign failed")
}
