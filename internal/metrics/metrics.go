package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	GraphRebuilds = promauto.NewCounter(prometheus.CounterOpts{
		Name: "dialogue_graph_rebuilds_total",
		Help: "Total number of node/parent lookup rebuilds.",
	})

	ValidatorPasses = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "dialogue_validator_passes",
		Help:    "Rebuild+validate passes needed for one graph change to settle.",
		Buckets: []float64{1, 2, 3, 5, 8, 13, 21, 50},
	})

	EdgesPruned = promauto.NewCounter(prometheus.CounterOpts{
		Name: "dialogue_edges_pruned_total",
		Help: "Total number of child edges removed for breaking speaker alternation.",
	})

	NodesCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "dialogue_nodes_created_total",
		Help: "Total number of dialogue nodes created, including synthesised roots.",
	})

	NodesDeleted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "dialogue_nodes_deleted_total",
		Help: "Total number of dialogue nodes deleted.",
	})

	Nodes = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "dialogue_nodes",
		Help: "Node count of the most recently validated dialogue.",
	})

	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "dialogue_http_requests_total",
		Help: "Total number of editor API requests, labelled by method and status.",
	}, []string{"method", "status"})
)
