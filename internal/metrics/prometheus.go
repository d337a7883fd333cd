package metrics

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type key struct {
	namespace string
	name      string
}

// Prometheus lazily registers collectors on first use.
// A collector created with labels must always be used with the same label keys.
type Prometheus struct {
	prefix   string
	registry *prometheus.Registry
	entries  map[key]any
	mu       *sync.RWMutex
}

func NewPrometheus(registry *prometheus.Registry) *Prometheus {
	if registry == nil {
		registry = prometheus.NewRegistry()
	}

	return &Prometheus{
		registry: registry,
		entries:  make(map[key]any),
		mu:       new(sync.RWMutex),
	}
}

func (p *Prometheus) WithPrefix(prefix string) Registry {
	clone := *p
	if clone.prefix != "" {
		clone.prefix += "_" + prefix
	} else {
		clone.prefix = prefix
	}

	return &clone
}

func (p *Prometheus) Handler() http.Handler {
	return promhttp.HandlerFor(p.registry, promhttp.HandlerOpts{})
}

func (p *Prometheus) Counter(name string, labels Labels) Counter {
	entry := p.entry(name, func() any {
		opts := prometheus.CounterOpts{Namespace: p.prefix, Name: name}
		if labels == nil {
			return prometheus.NewCounter(opts)
		}

		return prometheus.NewCounterVec(opts, labels.Keys())
	})

	if labels != nil {
		entry = entry.(*prometheus.CounterVec).With(prometheus.Labels(labels))
	}

	return entry.(Counter)
}

func (p *Prometheus) Gauge(name string, labels Labels) Gauge {
	entry := p.entry(name, func() any {
		opts := prometheus.GaugeOpts{Namespace: p.prefix, Name: name}
		if labels == nil {
			return prometheus.NewGauge(opts)
		}

		return prometheus.NewGaugeVec(opts, labels.Keys())
	})

	if labels != nil {
		entry = entry.(*prometheus.GaugeVec).With(prometheus.Labels(labels))
	}

	return entry.(Gauge)
}

func (p *Prometheus) entry(name string, create func() any) any {
	k := key{p.prefix, name}
	p.mu.RLock()
	entry, ok := p.entries[k]
	p.mu.RUnlock()
	if ok {
		return entry
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if entry, ok := p.entries[k]; ok {
		return entry
	}

	entry = create()
	p.registry.MustRegister(entry.(prometheus.Collector))
	p.entries[k] = entry
	return entry
}
