package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	DispatchTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "roompush_dispatch_total",
		Help: "Dispatch invocations by outcome.",
	}, []string{"outcome"})

	SendTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "roompush_fcm_send_total",
		Help: "Per-token FCM send attempts by result.",
	}, []string{"result"})
)
