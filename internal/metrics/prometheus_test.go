package metrics_test

import (
	"net/http/httptest"
	"strings"
	"testing"

	"traderjoe/internal/metrics"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
)

func TestPrometheus_Counter(t *testing.T) {
	registry := prometheus.NewRegistry()
	p := metrics.NewPrometheus(registry).WithPrefix("traderjoe").(*metrics.Prometheus)

	p.Counter("roulette_total", metrics.Labels{"source": "memes", "kind": "image"}).Inc()
	p.Counter("roulette_total", metrics.Labels{"source": "memes", "kind": "image"}).Add(2)
	p.Counter("roulette_total", metrics.Labels{"source": "kittens", "kind": "video"}).Inc()
	p.Counter("commands_total", nil).Inc()
	p.Gauge("active_games", nil).Set(3)

	rec := httptest.NewRecorder()
	p.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	body := rec.Body.String()

	assert.True(t, strings.Contains(body, `traderjoe_roulette_total{kind="image",source="memes"} 3`), body)
	assert.True(t, strings.Contains(body, `traderjoe_roulette_total{kind="video",source="kittens"} 1`), body)
	assert.True(t, strings.Contains(body, "traderjoe_commands_total 1"), body)
	assert.True(t, strings.Contains(body, "traderjoe_active_games 3"), body)
}

func TestDummy(t *testing.T) {
	var registry metrics.Registry = metrics.Dummy{}
	registry.Counter("any", metrics.Labels{"a": "b"}).Inc()
	registry.Gauge("any", nil).Dec()
}
