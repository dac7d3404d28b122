package metrics

import (
	"io"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCounters(t *testing.T) {
	r := NewRegistry()

	r.MarkCommand("currency", "daily")
	r.MarkCommand("currency", "daily")
	r.MarkError("currency group command")
	r.MarkPlay("slots", "win")
	r.SetEconomy(3, 1500)

	assert.Equal(t, 2.0, testutil.ToFloat64(r.Commands.WithLabelValues("currency", "daily")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.Errors.WithLabelValues("currency group command")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.Plays.WithLabelValues("slots", "win")))
	assert.Equal(t, 3.0, testutil.ToFloat64(r.Records))
	assert.Equal(t, 1500.0, testutil.ToFloat64(r.CurrencyTotal))
}

func TestHandler(t *testing.T) {
	r := NewRegistry()
	r.MarkCommand("currency", "view")

	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Equal(t, 200, rec.Code)
	assert.Contains(t, string(body), `bankroll_commands_total{command="currency",subcommand="view"} 1`)
}
