package report

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

func runReporter(t *testing.T, h echo.HandlerFunc) map[string]any {
	t.Helper()

	var buf bytes.Buffer
	log := zerolog.New(&buf)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/product", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := Reporter(log)(h)(c); err != nil {
		t.Fatalf("middleware error: %v", err)
	}
	if buf.Len() == 0 {
		t.Fatal("nothing logged")
	}

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("parse log line: %v", err)
	}
	return entry
}

func TestReporter_SuccessLogsInfo(t *testing.T) {
	entry := runReporter(t, Wrap(func(c echo.Context) Outcome {
		_ = c.NoContent(http.StatusOK)
		return OK()
	}))

	if entry["level"] != "info" {
		t.Fatalf("expected info level, got %v", entry["level"])
	}
	if entry["path"] != "/api/product" {
		t.Fatalf("unexpected path: %v", entry["path"])
	}
}

func TestReporter_FailureLogsErrorWithClassification(t *testing.T) {
	entry := runReporter(t, Wrap(func(c echo.Context) Outcome {
		_ = c.NoContent(http.StatusConflict)
		return Outcome{Kind: KindConflict, Detail: "product already exists"}
	}))

	if entry["level"] != "error" {
		t.Fatalf("expected error level, got %v", entry["level"])
	}
	if entry["classification"] != string(KindConflict) {
		t.Fatalf("unexpected classification: %v", entry["classification"])
	}
	if entry["detail"] != "product already exists" {
		t.Fatalf("unexpected detail: %v", entry["detail"])
	}
}

// A handler that never classifies its outcome is a latent bug and must be
// logged as a warning rather than passing silently.
func TestReporter_MissingOutcomeWarns(t *testing.T) {
	entry := runReporter(t, func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})

	if entry["level"] != "warn" {
		t.Fatalf("expected warn level, got %v", entry["level"])
	}
}

// The detail never reaches the client; only the side channel carries it.
func TestReporter_DoesNotAlterResponse(t *testing.T) {
	var buf bytes.Buffer
	log := zerolog.New(&buf)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	h := Wrap(func(c echo.Context) Outcome {
		_ = c.JSON(http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return Outcome{Kind: KindDB, Detail: "pq: connection refused"}
	})

	if err := Reporter(log)(h)(c); err != nil {
		t.Fatalf("middleware error: %v", err)
	}

	if body := rec.Body.String(); bytes.Contains([]byte(body), []byte("connection refused")) {
		t.Fatalf("detail leaked to the client: %q", body)
	}
}
