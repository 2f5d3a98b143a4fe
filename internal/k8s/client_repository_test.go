package k8s

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	appsv1 "k8s.io/api/apps/v1"
	corev1 "k8s.io/api/core/v1"
	"k8s.io/apimachinery/pkg/api/resource"
	"k8s.io/apimachinery/pkg/runtime"
	"k8s.io/client-go/kubernetes/fake"
	k8stesting "k8s.io/client-go/testing"
	metricsv1beta1 "k8s.io/metrics/pkg/apis/metrics/v1beta1"
	metricsfake "k8s.io/metrics/pkg/client/clientset/versioned/fake"
)

func newTestRepository(t *testing.T, objects ...runtime.Object) *ClientRepository {
	t.Helper()
	repo := NewClientRepository(fake.NewClientset(objects...), nil, "kind-test", "alice")
	repo.now = func() time.Time { return testNow }
	return repo
}

func TestClientRepository_ListPods(t *testing.T) {
	repo := newTestRepository(t,
		&corev1.Pod{ObjectMeta: objectMeta("default", "old", 2*time.Hour)},
		&corev1.Pod{ObjectMeta: objectMeta("default", "new", time.Minute)},
		&corev1.Pod{ObjectMeta: objectMeta("other", "elsewhere", time.Hour)},
	)

	items, err := repo.List(context.Background(), ResourceTypePod, "default")
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "new", items[0].(Pod).Name)
	assert.Equal(t, "old", items[1].(Pod).Name)

	all, err := repo.List(context.Background(), ResourceTypePod, "")
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestClientRepository_ListTypes(t *testing.T) {
	repo := newTestRepository(t,
		&appsv1.Deployment{ObjectMeta: objectMeta("default", "web", time.Hour)},
		&corev1.Service{ObjectMeta: objectMeta("default", "web", time.Hour)},
		&corev1.ConfigMap{ObjectMeta: objectMeta("default", "web-config", time.Hour)},
		&corev1.Secret{ObjectMeta: objectMeta("default", "web-secret", time.Hour)},
		&corev1.Namespace{ObjectMeta: objectMeta("", "default", time.Hour)},
		&corev1.Node{ObjectMeta: objectMeta("", "node-1", time.Hour)},
	)

	tests := []struct {
		resourceType ResourceType
		check        func(t *testing.T, item any)
	}{
		{ResourceTypeDeployment, func(t *testing.T, item any) { assert.IsType(t, Deployment{}, item) }},
		{ResourceTypeService, func(t *testing.T, item any) { assert.IsType(t, Service{}, item) }},
		{ResourceTypeConfigMap, func(t *testing.T, item any) { assert.IsType(t, ConfigMap{}, item) }},
		{ResourceTypeSecret, func(t *testing.T, item any) { assert.IsType(t, Secret{}, item) }},
		{ResourceTypeNamespace, func(t *testing.T, item any) { assert.IsType(t, Namespace{}, item) }},
		{ResourceTypeNode, func(t *testing.T, item any) { assert.IsType(t, Node{}, item) }},
	}

	for _, tt := range tests {
		t.Run(string(tt.resourceType), func(t *testing.T) {
			// Cluster-scoped types ignore the namespace.
			items, err := repo.List(context.Background(), tt.resourceType, "default")
			require.NoError(t, err)
			require.Len(t, items, 1)
			tt.check(t, items[0])
		})
	}
}

func TestClientRepository_ListError(t *testing.T) {
	client := fake.NewClientset()
	client.PrependReactor("list", "pods", func(k8stesting.Action) (bool, runtime.Object, error) {
		return true, nil, errors.New("connection refused")
	})
	repo := NewClientRepository(client, nil, "", "")

	_, err := repo.List(context.Background(), ResourceTypePod, "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to list pods")
}

func TestClientRepository_Unsupported(t *testing.T) {
	repo := newTestRepository(t)

	_, err := repo.List(context.Background(), ResourceType("widgets"), "")
	assert.ErrorIs(t, err, ErrUnsupportedResource)
}

func TestClientRepository_PodMetrics(t *testing.T) {
	metrics := metricsfake.NewSimpleClientset()
	// The fake tracker cannot map PodMetrics to the "pods" resource, so the
	// list is served by a reactor.
	metrics.PrependReactor("list", "pods", func(k8stesting.Action) (bool, runtime.Object, error) {
		return true, &metricsv1beta1.PodMetricsList{Items: []metricsv1beta1.PodMetrics{{
			ObjectMeta: objectMeta("default", "nginx-abc", 0),
			Containers: []metricsv1beta1.ContainerMetrics{{
				Name: "nginx",
				Usage: corev1.ResourceList{
					corev1.ResourceCPU:    resource.MustParse("5m"),
					corev1.ResourceMemory: resource.MustParse("20Mi"),
				},
			}},
		}}}, nil
	})

	repo := NewClientRepository(fake.NewClientset(), metrics, "", "")
	items, err := repo.List(context.Background(), ResourceTypePodMetrics, "default")
	require.NoError(t, err)
	require.Len(t, items, 1)

	m := items[0].(PodMetrics)
	assert.Equal(t, "5m", m.CPU)
	assert.Equal(t, "20Mi", m.Memory)
}

func TestClientRepository_PodMetricsUnavailable(t *testing.T) {
	repo := newTestRepository(t)

	_, err := repo.List(context.Background(), ResourceTypePodMetrics, "")
	assert.ErrorIs(t, err, ErrMetricsUnavailable)
}

func TestClientRepository_ContextAndUser(t *testing.T) {
	repo := newTestRepository(t)
	assert.Equal(t, "kind-test", repo.GetContext())
	assert.Equal(t, "alice", repo.GetUser())
	assert.NotNil(t, repo.Clientset())
}
