package application

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap/zaptest"

	"github.com/eugenenazirov/messaging-config/internal/config"
)

func TestIntegrationFlow(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "channels.yaml")
	content := `
mp:
  messaging:
    connector:
      Dummy:
        common-A: Value-A
    incoming:
      dummy-source:
        connector: Dummy
        attribute: overridden
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write yaml: %v", err)
	}

	cfg := baseTestConfig(":0")
	cfg.Sources = config.SourcesConfig{
		Fixture:       true,
		PropertyFiles: []string{path},
		Coercion:      config.CoercionParse,
	}

	app, err := New(context.Background(), cfg, zaptest.NewLogger(t))
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	server := httptest.NewServer(app.router)
	t.Cleanup(server.Close)

	fetch := func(target string, out any) int {
		t.Helper()
		resp, err := http.Get(server.URL + target)
		if err != nil {
			t.Fatalf("GET %s: %v", target, err)
		}
		defer resp.Body.Close()
		if out != nil {
			if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
				t.Fatalf("decode %s: %v", target, err)
			}
		}
		return resp.StatusCode
	}

	if code := fetch("/api/health", nil); code != http.StatusOK {
		t.Fatalf("expected 200 from health, got %d", code)
	}

	var prop struct {
		Name  string `json:"name"`
		Value string `json:"value"`
	}
	if code := fetch("/api/properties/mp.messaging.incoming.dummy-source.attribute", &prop); code != http.StatusOK || prop.Value != "overridden" {
		t.Fatalf("expected file value to override fixture, got %d %+v", code, prop)
	}
	if code := fetch("/api/properties/mp.messaging.incoming.dummy-source-2.attribute", &prop); code != http.StatusOK || prop.Value != "value-2" {
		t.Fatalf("expected fixture value for the other channel, got %d %+v", code, prop)
	}
	if code := fetch("/api/properties/mp.messaging.incoming.missing-channel.attribute", nil); code != http.StatusNotFound {
		t.Fatalf("expected 404 for missing property, got %d", code)
	}

	var channels struct {
		Channels []struct {
			Name       string            `json:"name"`
			Attributes map[string]string `json:"attributes"`
		} `json:"channels"`
		Problems []string `json:"problems"`
	}
	if code := fetch("/api/channels", &channels); code != http.StatusOK {
		t.Fatalf("expected 200 from channels, got %d", code)
	}
	if len(channels.Channels) != 3 || len(channels.Problems) != 0 {
		t.Fatalf("unexpected topology %+v", channels)
	}
	if got := channels.Channels[0].Attributes["attribute"]; got != "overridden" {
		t.Fatalf("expected overridden attribute on dummy-source, got %q", got)
	}
}

func TestEnvironmentSecretsAreNotServed(t *testing.T) {
	for _, key := range []string{"PORT", "RATE_LIMIT_RPS", "RATE_LIMIT_BURST", "LOG_LEVEL", "PROPERTY_FILES", "REDIS_ADDR", "REDIS_KEY"} {
		t.Setenv(key, "")
	}
	t.Setenv("REDIS_PASSWORD", "s3cret")
	t.Setenv("MP_MESSAGING_OUTGOING_AUDIT_CONNECTOR", "Dummy")

	for _, withEnv := range []bool{false, true} {
		cfg, err := config.Load(&config.CLIOverrides{Env: &withEnv})
		if err != nil {
			t.Fatalf("Load returned error: %v", err)
		}
		app, err := New(context.Background(), cfg, zaptest.NewLogger(t))
		if err != nil {
			t.Fatalf("New returned error: %v", err)
		}

		rec := httptest.NewRecorder()
		app.router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/properties/REDIS_PASSWORD", nil))
		if rec.Code != http.StatusNotFound || strings.Contains(rec.Body.String(), "s3cret") {
			t.Fatalf("env=%v: expected 404 for REDIS_PASSWORD, got %d %s", withEnv, rec.Code, rec.Body.String())
		}

		rec = httptest.NewRecorder()
		app.router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/properties", nil))
		if strings.Contains(rec.Body.String(), "REDIS_PASSWORD") {
			t.Fatalf("env=%v: property listing leaked REDIS_PASSWORD: %s", withEnv, rec.Body.String())
		}
		if got := strings.Contains(rec.Body.String(), "mp.messaging.outgoing.audit.connector"); got != withEnv {
			t.Fatalf("env=%v: expected messaging variable listed=%v, got %s", withEnv, withEnv, rec.Body.String())
		}
	}
}
