package metrics

import (
	"strconv"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal *prometheus.CounterVec
	instructionsTotal *prometheus.CounterVec
	votesCastTotal    *prometheus.CounterVec
	registerOnce      sync.Once
)

// Register initializes Prometheus metrics on the default registry.
func Register() {
	registerOnce.Do(func() {
		httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: "votee",
			Name:      "http_requests_total",
			Help:      "Total HTTP requests processed by the voting API.",
		}, []string{"method", "path", "status"})
		instructionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: "votee",
			Name:      "instructions_total",
			Help:      "Program instructions executed, by instruction and result.",
		}, []string{"instruction", "result"})
		votesCastTotal = promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: "votee",
			Name:      "votes_cast_total",
			Help:      "Votes committed, by poll.",
		}, []string{"poll"})
	})
}

// IncRequest increments the http_requests_total counter with the given labels.
func IncRequest(method, path string, status int) {
	if httpRequestsTotal == nil {
		return
	}
	httpRequestsTotal.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
}

// IncInstruction counts one instruction outcome. result is "ok" or the program error name.
func IncInstruction(instruction, result string) {
	if instructionsTotal == nil {
		return
	}
	instructionsTotal.WithLabelValues(instruction, result).Inc()
}

func IncVote(pollID uint64) {
	if votesCastTotal == nil {
		return
	}
	votesCastTotal.WithLabelValues(strconv.FormatUint(pollID, 10)).Inc()
}
