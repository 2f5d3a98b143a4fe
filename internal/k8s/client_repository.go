package k8s

import (
	"context"
	"fmt"
	"time"

	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/client-go/kubernetes"
	metricsclient "k8s.io/metrics/pkg/client/clientset/versioned"

	"github.com/renato0307/kview/internal/logging"
)

// ClientRepository lists resources straight from the API server on every
// call. Refresh cadence is owned by the caller.
type ClientRepository struct {
	clientset kubernetes.Interface
	metrics   metricsclient.Interface // nil when metrics-server is not wired

	contextName string
	user        string
	now         func() time.Time
}

// NewClientRepository creates a repository over the given clients.
func NewClientRepository(clientset kubernetes.Interface, metrics metricsclient.Interface, contextName, user string) *ClientRepository {
	return &ClientRepository{
		clientset:   clientset,
		metrics:     metrics,
		contextName: contextName,
		user:        user,
		now:         time.Now,
	}
}

func (r *ClientRepository) GetContext() string { return r.contextName }
func (r *ClientRepository) GetUser() string    { return r.user }

// Clientset exposes the typed client for the settings backend.
func (r *ClientRepository) Clientset() kubernetes.Interface { return r.clientset }

// List implements Repository.
func (r *ClientRepository) List(ctx context.Context, resourceType ResourceType, namespace string) ([]any, error) {
	if !resourceType.Namespaced() {
		namespace = ""
	}

	ctx, cancel := context.WithTimeout(ctx, ListTimeout)
	defer cancel()

	timing := logging.Start("list " + string(resourceType))
	items, err := r.list(ctx, resourceType, namespace)
	if err != nil {
		logging.Error("List failed", "resource", resourceType, "namespace", namespace, "error", err)
		return nil, fmt.Errorf("failed to list %s: %w", resourceType, err)
	}
	logging.EndWithCount(timing, len(items))

	sortByAge(items)
	return items, nil
}

func (r *ClientRepository) list(ctx context.Context, resourceType ResourceType, namespace string) ([]any, error) {
	opts := metav1.ListOptions{}
	now := r.now()
	core := r.clientset.CoreV1()

	switch resourceType {
	case ResourceTypePod:
		list, err := core.Pods(namespace).List(ctx, opts)
		if err != nil {
			return nil, err
		}
		return transformAll(list.Items, now, transformPod), nil
	case ResourceTypeDeployment:
		list, err := r.clientset.AppsV1().Deployments(namespace).List(ctx, opts)
		if err != nil {
			return nil, err
		}
		return transformAll(list.Items, now, transformDeployment), nil
	case ResourceTypeService:
		list, err := core.Services(namespace).List(ctx, opts)
		if err != nil {
			return nil, err
		}
		return transformAll(list.Items, now, transformService), nil
	case ResourceTypeConfigMap:
		list, err := core.ConfigMaps(namespace).List(ctx, opts)
		if err != nil {
			return nil, err
		}
		return transformAll(list.Items, now, transformConfigMap), nil
	case ResourceTypeSecret:
		list, err := core.Secrets(namespace).List(ctx, opts)
		if err != nil {
			return nil, err
		}
		return transformAll(list.Items, now, transformSecret), nil
	case ResourceTypeNamespace:
		list, err := core.Namespaces().List(ctx, opts)
		if err != nil {
			return nil, err
		}
		return transformAll(list.Items, now, transformNamespace), nil
	case ResourceTypeNode:
		list, err := core.Nodes().List(ctx, opts)
		if err != nil {
			return nil, err
		}
		return transformAll(list.Items, now, transformNode), nil
	case ResourceTypePodMetrics:
		if r.metrics == nil {
			return nil, ErrMetricsUnavailable
		}
		list, err := r.metrics.MetricsV1beta1().PodMetricses(namespace).List(ctx, opts)
		if err != nil {
			return nil, err
		}
		return transformAll(list.Items, now, transformPodMetrics), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedResource, resourceType)
	}
}

// transformAll applies a typed transform to every item of a list.
func transformAll[O any, T any](items []O, now time.Time, transform func(*O, time.Time) T) []any {
	result := make([]any, len(items))
	for i := range items {
		result[i] = transform(&items[i], now)
	}
	return result
}
