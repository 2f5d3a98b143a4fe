package k8s

import (
	"errors"
	"time"
)

// Kubernetes client constants
const (
	// ListTimeout bounds a single list call so a slow API server never
	// stalls a refresh tick.
	ListTimeout = 30 * time.Second

	// protobufContentType is used for typed clients.
	protobufContentType = "application/vnd.kubernetes.protobuf"
)

// ErrMetricsUnavailable is returned when pod metrics are listed without a
// metrics client.
var ErrMetricsUnavailable = errors.New("metrics API not available")
