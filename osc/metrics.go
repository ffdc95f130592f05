package osc

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the counters updated by Server and by the typed dispatchers
// built on top of it. A nil *Metrics is valid and records nothing.
type Metrics struct {
	PacketsReceived *prometheus.CounterVec
	PacketErrors    *prometheus.CounterVec
	MessagesRouted  *prometheus.CounterVec
}

// NewMetrics creates the OSC metrics and registers them with reg. A nil reg
// leaves them unregistered.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		PacketsReceived: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "osc",
				Subsystem: "server",
				Name:      "packets_received_total",
				Help:      "Total number of OSC packets received",
			},
			[]string{"type"},
		),

		PacketErrors: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "osc",
				Subsystem: "server",
				Name:      "packet_errors_total",
				Help:      "Total number of OSC packets that failed to read, parse or route",
			},
			[]string{"stage"},
		),

		MessagesRouted: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "osc",
				Subsystem: "router",
				Name:      "messages_routed_total",
				Help:      "Total number of OSC messages decoded into a typed message",
			},
			[]string{"status"},
		),
	}

	if reg != nil {
		reg.MustRegister(m.PacketsReceived, m.PacketErrors, m.MessagesRouted)
	}

	return m
}

// ObservePacket counts a received packet.
func (m *Metrics) ObservePacket(p Packet) {
	if m == nil {
		return
	}
	switch p.(type) {
	case *Message:
		m.PacketsReceived.WithLabelValues("message").Inc()
	case *Bundle:
		m.PacketsReceived.WithLabelValues("bundle").Inc()
	}
}

// ObserveError counts a packet failure at the given stage ("read", "parse",
// "route", "panic").
func (m *Metrics) ObserveError(stage string) {
	if m == nil {
		return
	}
	m.PacketErrors.WithLabelValues(stage).Inc()
}

// ObserveRouted counts a routing attempt; ok reports whether it succeeded.
func (m *Metrics) ObserveRouted(ok bool) {
	if m == nil {
		return
	}
	status := "ok"
	if !ok {
		status = "error"
	}
	m.MessagesRouted.WithLabelValues(status).Inc()
}
