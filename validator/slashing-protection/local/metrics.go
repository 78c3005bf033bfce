package local

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	slashableSigningDenialsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "validator_slashing_protection_denials_total",
			Help: "Count of signing requests refused by local slashing protection, by slashing kind",
		},
		[]string{"kind"},
	)
	signingAcceptedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "validator_slashing_protection_accepted_total",
			Help: "Count of signing requests recorded by local slashing protection, by message type",
		},
		[]string{"type"},
	)
	unregisteredKeyDenialsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "validator_slashing_protection_unregistered_key_denials_total",
			Help: "Count of signing requests refused because the public key is not registered, by message type",
		},
		[]string{"type"},
	)
	protectionErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "validator_slashing_protection_errors_total",
			Help: "Count of signing requests that failed with a storage error, by message type",
		},
		[]string{"type"},
	)
)
