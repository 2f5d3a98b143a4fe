package k8s

import (
	"context"
	"fmt"
	"time"
)

// DummyRepository provides fake data for --dummy mode and tests
type DummyRepository struct {
	now time.Time
}

func NewDummyRepository() *DummyRepository {
	return &DummyRepository{now: time.Now()}
}

func (r *DummyRepository) GetContext() string { return "dummy" }
func (r *DummyRepository) GetUser() string    { return "dummy-user" }

func (r *DummyRepository) meta(namespace, name string, age time.Duration) ResourceMetadata {
	return ResourceMetadata{
		Namespace: namespace,
		Name:      name,
		Age:       age,
		CreatedAt: r.now.Add(-age),
	}
}

// List implements Repository.
func (r *DummyRepository) List(_ context.Context, resourceType ResourceType, namespace string) ([]any, error) {
	var items []any
	switch resourceType {
	case ResourceTypePod:
		items = toAny(r.pods())
	case ResourceTypeDeployment:
		items = toAny(r.deployments())
	case ResourceTypeService:
		items = toAny(r.services())
	case ResourceTypeConfigMap:
		items = toAny(r.configMaps())
	case ResourceTypeSecret:
		items = toAny(r.secrets())
	case ResourceTypeNamespace:
		items = toAny(r.namespaces())
	case ResourceTypeNode:
		items = toAny(r.nodes())
	case ResourceTypePodMetrics:
		items = toAny(r.podMetrics())
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedResource, resourceType)
	}

	if resourceType.Namespaced() {
		items = filterNamespace(items, namespace)
	}
	sortByAge(items)
	return items, nil
}

func (r *DummyRepository) pods() []Pod {
	return []Pod{
		{
			ResourceMetadata: r.meta("default", "nginx-deployment-7d64f8d9c8-abc12", 24*time.Hour),
			Ready:            "1/1",
			Status:           "Running",
			Node:             "node-1",
			IP:               "10.244.1.5",
			QoSClass:         "Burstable",
			Containers:       1,
			Owner:            "ReplicaSet/nginx-deployment-7d64f8d9c8",
		},
		{
			ResourceMetadata: r.meta("default", "nginx-deployment-7d64f8d9c8-def34", 23*time.Hour),
			Ready:            "1/1",
			Status:           "Running",
			Restarts:         2,
			Node:             "node-2",
			IP:               "10.244.2.3",
			QoSClass:         "Burstable",
			Containers:       1,
			Owner:            "ReplicaSet/nginx-deployment-7d64f8d9c8",
		},
		{
			ResourceMetadata: r.meta("kube-system", "coredns-5d78c9869d-xyz89", 168*time.Hour),
			Ready:            "1/1",
			Status:           "Running",
			Node:             "node-1",
			IP:               "10.244.1.2",
			QoSClass:         "Burstable",
			Containers:       1,
			Owner:            "ReplicaSet/coredns-5d78c9869d",
		},
		{
			ResourceMetadata: r.meta("production", "api-server-6b9f8c7d5e-qwert", 2*time.Hour),
			Ready:            "0/1",
			Status:           "CrashLoopBackOff",
			Restarts:         15,
			Node:             "node-3",
			IP:               "10.244.3.7",
			QoSClass:         "Guaranteed",
			Containers:       1,
			Owner:            "ReplicaSet/api-server-6b9f8c7d5e",
		},
	}
}

func (r *DummyRepository) deployments() []Deployment {
	return []Deployment{
		{
			ResourceMetadata: r.meta("default", "nginx-deployment", 24*time.Hour),
			Ready:            "2/2",
			UpToDate:         2,
			Available:        2,
			Strategy:         "RollingUpdate",
			Images:           "nginx:1.27",
			Selector:         "app=nginx",
		},
		{
			ResourceMetadata: r.meta("kube-system", "coredns", 168*time.Hour),
			Ready:            "2/2",
			UpToDate:         2,
			Available:        2,
			Strategy:         "RollingUpdate",
			Images:           "registry.k8s.io/coredns/coredns:v1.11.1",
			Selector:         "k8s-app=kube-dns",
		},
		{
			ResourceMetadata: r.meta("production", "api-server", 48*time.Hour),
			Ready:            "1/3",
			UpToDate:         1,
			Available:        1,
			Strategy:         "Recreate",
			Images:           "example.com/api:2.4.0",
			Selector:         "app=api",
		},
	}
}

func (r *DummyRepository) services() []Service {
	return []Service{
		{
			ResourceMetadata: r.meta("default", "kubernetes", 168*time.Hour),
			Type:             "ClusterIP",
			ClusterIP:        "10.96.0.1",
			ExternalIP:       none,
			Ports:            "443/TCP",
			Selector:         none,
		},
		{
			ResourceMetadata: r.meta("default", "nginx-service", 24*time.Hour),
			Type:             "LoadBalancer",
			ClusterIP:        "10.96.10.5",
			ExternalIP:       "203.0.113.45",
			Ports:            "80:30080/TCP,443:30443/TCP",
			Selector:         "app=nginx",
		},
		{
			ResourceMetadata: r.meta("production", "api-service", 48*time.Hour),
			Type:             "ClusterIP",
			ClusterIP:        "10.96.20.10",
			ExternalIP:       none,
			Ports:            "8080/TCP",
			Selector:         "app=api",
		},
	}
}

func (r *DummyRepository) configMaps() []ConfigMap {
	return []ConfigMap{
		{ResourceMetadata: r.meta("default", "nginx-config", 24*time.Hour), Data: 2},
		{ResourceMetadata: r.meta("kube-system", "coredns", 168*time.Hour), Data: 1},
		{ResourceMetadata: r.meta("kube-system", "kube-root-ca.crt", 168*time.Hour), Data: 1, Immutable: true},
	}
}

func (r *DummyRepository) secrets() []Secret {
	return []Secret{
		{ResourceMetadata: r.meta("default", "nginx-tls", 24*time.Hour), Type: "kubernetes.io/tls", Data: 2},
		{ResourceMetadata: r.meta("production", "api-credentials", 48*time.Hour), Type: "Opaque", Data: 3},
	}
}

func (r *DummyRepository) namespaces() []Namespace {
	return []Namespace{
		{ResourceMetadata: r.meta("", "default", 168*time.Hour), Status: "Active"},
		{ResourceMetadata: r.meta("", "kube-system", 168*time.Hour), Status: "Active"},
		{ResourceMetadata: r.meta("", "production", 72*time.Hour), Status: "Active"},
	}
}

func (r *DummyRepository) nodes() []Node {
	node := func(name, ip, roles string) Node {
		return Node{
			ResourceMetadata: r.meta("", name, 168*time.Hour),
			Status:           "Ready",
			Roles:            roles,
			Version:          "v1.34.1",
			InternalIP:       ip,
			OSImage:          "Ubuntu 24.04 LTS",
			KernelVersion:    "6.8.0-45-generic",
			ContainerRuntime: "containerd://1.7.22",
			InstanceType:     "m5.large",
			Zone:             "eu-west-1a",
		}
	}
	return []Node{
		node("node-1", "10.0.1.10", "control-plane"),
		node("node-2", "10.0.1.11", none),
		node("node-3", "10.0.1.12", none),
	}
}

func (r *DummyRepository) podMetrics() []PodMetrics {
	metrics := func(namespace, name, cpu, memory string) PodMetrics {
		return PodMetrics{
			ResourceMetadata: r.meta(namespace, name, 0),
			CPU:              cpu,
			Memory:           memory,
			Containers:       1,
			Window:           30 * time.Second,
		}
	}
	return []PodMetrics{
		metrics("default", "nginx-deployment-7d64f8d9c8-abc12", "2m", "12Mi"),
		metrics("default", "nginx-deployment-7d64f8d9c8-def34", "3m", "13Mi"),
		metrics("kube-system", "coredns-5d78c9869d-xyz89", "4m", "18Mi"),
	}
}
