package log

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"
)

func TestAppendCtx(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(ContextHandler{Handler: slog.NewJSONHandler(&buf, nil)})

	ctx := AppendCtx(context.Background(), slog.String("log_id", "abc"))
	child := AppendCtx(ctx, slog.String("user-id", "u1"))

	logger.InfoContext(child, "hello")

	var record map[string]any
	if err := json.Unmarshal(buf.Bytes(), &record); err != nil {
		t.Fatalf("failed to decode log record: %v", err)
	}
	if record["log_id"] != "abc" {
		t.Errorf("expected log_id %q, got %v", "abc", record["log_id"])
	}
	if record["user-id"] != "u1" {
		t.Errorf("expected user-id %q, got %v", "u1", record["user-id"])
	}

	// The parent context must not see attributes added to the child.
	buf.Reset()
	logger.InfoContext(ctx, "parent")
	record = map[string]any{}
	if err := json.Unmarshal(buf.Bytes(), &record); err != nil {
		t.Fatalf("failed to decode log record: %v", err)
	}
	if _, ok := record["user-id"]; ok {
		t.Error("parent context leaked child attribute")
	}
}

func TestLevelFor(t *testing.T) {
	if LevelFor("PROD") != slog.LevelInfo {
		t.Errorf("expected info level for PROD")
	}
	if LevelFor("DEV") != slog.LevelDebug {
		t.Errorf("expected debug level for DEV")
	}
}
