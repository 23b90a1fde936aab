package cmd

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtensionEnv(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.LedgerFile = "household.jsonl"
	cfg.Currencies = []string{"EUR", "USD"}

	assert.Equal(t, []string{
		"FOLIO_LEDGER_FILE=household.jsonl",
		"FOLIO_VALUATION=market",
		"FOLIO_LOG_LEVEL=info",
		"FOLIO_CURRENCIES=EUR,USD",
	}, extensionEnv(cfg))
}

func TestRunExtension_NotFound(t *testing.T) {
	t.Setenv("PATH", t.TempDir())
	found, code := RunExtension("nothing-like-this", nil)
	assert.False(t, found)
	assert.Zero(t, code)
}

func TestExtensionEnv_RoundTrip(t *testing.T) {
	// An extension reading the environment sees the same settings.
	cfg := NewDefaultConfig()
	cfg.Valuation = "cost"
	cfg.MetricsFile = "folio.prom"
	for _, kv := range extensionEnv(cfg) {
		k, v, _ := strings.Cut(kv, "=")
		t.Setenv(k, v)
	}
	got, err := LoadConfig()
	assert.NoError(t, err)
	assert.Equal(t, cfg, got)
}
