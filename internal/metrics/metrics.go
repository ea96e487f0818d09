package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

type Metrics struct {
	MessagesSent   prometheus.Counter
	StreamChunks   prometheus.Counter
	StreamFailures prometheus.Counter
	Retries        prometheus.Counter
}

var (
	once   sync.Once
	global *Metrics
)

func Global() *Metrics {
	once.Do(func() {
		global = &Metrics{
			MessagesSent: prometheus.NewCounter(prometheus.CounterOpts{
				Namespace: "manachat",
				Name:      "chat_messages_sent_total",
				Help:      "Total user messages accepted by the chat engine",
			}),
			StreamChunks: prometheus.NewCounter(prometheus.CounterOpts{
				Namespace: "manachat",
				Name:      "chat_stream_chunks_total",
				Help:      "Total streamed response fragments received",
			}),
			StreamFailures: prometheus.NewCounter(prometheus.CounterOpts{
				Namespace: "manachat",
				Name:      "chat_stream_failures_total",
				Help:      "Total streaming exchanges that ended in a transport failure",
			}),
			Retries: prometheus.NewCounter(prometheus.CounterOpts{
				Namespace: "manachat",
				Name:      "chat_retries_total",
				Help:      "Total retry submissions of the last user message",
			}),
		}
		prometheus.MustRegister(global.MessagesSent, global.StreamChunks, global.StreamFailures, global.Retries)
	})
	return global
}
