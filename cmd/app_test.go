package cmd

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/etnz/folio"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrintJSON_Query(t *testing.T) {
	report := &folio.Holdings{
		Valuation:  folio.AtCost,
		Currencies: []string{"EUR"},
		Totals: map[string]folio.HoldingTotal{
			"EUR": {Market: decimal.RequireFromString("13250.10"), Cost: decimal.RequireFromString("13250.10")},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, printJSON(&buf, report, "$.totals.EUR.market"))
	assert.Equal(t, "13250.1\n", buf.String())

	buf.Reset()
	require.NoError(t, printJSON(&buf, report, "$.valuation"))
	assert.Equal(t, "\"cost\"\n", buf.String())
}

func TestReportFlags_Parse(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.Valuation = "cost"

	r := reportFlags{format: "markdown"}
	v, err := r.parse(cfg)
	require.NoError(t, err)
	assert.Equal(t, folio.AtCost, v, "defaults to the configuration")

	r.valuation = "market"
	v, err = r.parse(cfg)
	require.NoError(t, err)
	assert.Equal(t, folio.AtMarket, v)

	r.valuation = "fair"
	_, err = r.parse(cfg)
	assert.ErrorContains(t, err, "unknown valuation")

	r = reportFlags{format: "xml"}
	_, err = r.parse(cfg)
	assert.ErrorContains(t, err, "unknown format")
}

func TestNewLogger(t *testing.T) {
	cfg := NewDefaultConfig()
	assert.False(t, newLogger(cfg).Core().Enabled(-1), "no debug traces by default")

	cfg.LogLevel = "debug"
	assert.True(t, newLogger(cfg).Core().Enabled(-1))
}

func TestWriteMetrics(t *testing.T) {
	err := writeMetrics(nil, errors.New("bad config"))
	assert.ErrorContains(t, err, "bad config")

	cfg := NewDefaultConfig()
	require.NoError(t, writeMetrics(cfg, nil))

	cfg.MetricsFile = filepath.Join(t.TempDir(), "folio.prom")
	require.NoError(t, writeMetrics(cfg, nil))
	_, err = os.Stat(cfg.MetricsFile)
	assert.NoError(t, err)
}
