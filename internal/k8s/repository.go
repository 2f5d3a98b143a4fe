package k8s

import (
	"context"
	"errors"
)

// ResourceType identifies a Kubernetes resource type
type ResourceType string

const (
	ResourceTypePod        ResourceType = "pods"
	ResourceTypeDeployment ResourceType = "deployments"
	ResourceTypeService    ResourceType = "services"
	ResourceTypeConfigMap  ResourceType = "configmaps"
	ResourceTypeSecret     ResourceType = "secrets"
	ResourceTypeNamespace  ResourceType = "namespaces"
	ResourceTypeNode       ResourceType = "nodes"
	ResourceTypePodMetrics ResourceType = "podmetrics"
)

// ResourceTypes lists every type a Repository can list.
func ResourceTypes() []ResourceType {
	return []ResourceType{
		ResourceTypePod,
		ResourceTypeDeployment,
		ResourceTypeService,
		ResourceTypeConfigMap,
		ResourceTypeSecret,
		ResourceTypeNamespace,
		ResourceTypeNode,
		ResourceTypePodMetrics,
	}
}

// Namespaced reports whether resources of this type live in a namespace.
func (t ResourceType) Namespaced() bool {
	return t != ResourceTypeNamespace && t != ResourceTypeNode
}

// ErrUnsupportedResource is returned when listing an unknown resource type.
var ErrUnsupportedResource = errors.New("unsupported resource type")

// Repository provides access to Kubernetes resources
type Repository interface {
	// List returns typed resources of one type, newest first. An empty
	// namespace lists across all namespaces; cluster-scoped types ignore it.
	List(ctx context.Context, resourceType ResourceType, namespace string) ([]any, error)

	// Context and user of the active kubeconfig, for display and settings.
	GetContext() string
	GetUser() string
}
