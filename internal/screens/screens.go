package screens

import (
	"strings"

	appsv1 "k8s.io/api/apps/v1"
	corev1 "k8s.io/api/core/v1"
	"k8s.io/apimachinery/pkg/runtime/schema"
	metricsv1beta1 "k8s.io/metrics/pkg/apis/metrics/v1beta1"

	"github.com/renato0307/kview/internal/columns"
	"github.com/renato0307/kview/internal/k8s"
	"github.com/renato0307/kview/internal/types"
)

// LayoutID returns the column settings key of a kind, "group~version~Kind"
// with "core" for the legacy group.
func LayoutID(gvk schema.GroupVersionKind) string {
	group := gvk.Group
	if group == "" {
		group = "core"
	}
	return strings.Join([]string{group, gvk.Version, gvk.Kind}, "~")
}

// Shared column definitions
var (
	nameColumn      = ColumnConfig{ID: columns.NameColumnID, Field: "Name", Title: "Name", Width: 0, Priority: 1}
	namespaceColumn = ColumnConfig{ID: NamespaceColumnID, Field: "Namespace", Title: "Namespace", Width: 20, Priority: 2}
	ageColumn       = ColumnConfig{ID: "age", Field: "Age", Title: "Age", Width: 6, Format: FormatDuration, Priority: 1}
	labelsColumn    = ColumnConfig{ID: "labels", Field: "Labels", Title: "Labels", Width: 7, Priority: 3, Additional: true}
)

// GetPodsScreenConfig returns the config for the Pods screen
func GetPodsScreenConfig() ScreenConfig {
	return ScreenConfig{
		ID:           "pods",
		Title:        "Pods",
		Kind:         "Pod",
		LayoutID:     LayoutID(corev1.SchemeGroupVersion.WithKind("Pod")),
		ResourceType: k8s.ResourceTypePod,
		Columns: []ColumnConfig{
			nameColumn,
			namespaceColumn,
			{ID: "status", Field: "Status", Title: "Status", Width: 16, Priority: 1},
			{ID: "ready", Field: "Ready", Title: "Ready", Width: 7, Priority: 1},
			{ID: "restarts", Field: "Restarts", Title: "Restarts", Width: 8, Priority: 2},
			{ID: "owner", Field: "Owner", Title: "Owner", Width: 30, Format: FormatEmpty, Priority: 3},
			{ID: "node", Field: "Node", Title: "Node", Width: 20, Format: FormatEmpty, Priority: 3},
			ageColumn,
			{ID: "ip", Field: "IP", Title: "IP", Width: 15, Format: FormatEmpty, Priority: 3, Additional: true},
			{ID: "qos", Field: "QoSClass", Title: "QoS", Width: 10, Priority: 3, Additional: true},
			{ID: "containers", Field: "Containers", Title: "Containers", Width: 10, Priority: 3, Additional: true},
			labelsColumn,
		},
		SearchFields:   []string{"Namespace", "Name", "Status", "Node", "IP", "Owner"},
		TrackSelection: true,
	}
}

// GetDeploymentsScreenConfig returns the config for the Deployments screen
func GetDeploymentsScreenConfig() ScreenConfig {
	return ScreenConfig{
		ID:           "deployments",
		Title:        "Deployments",
		Kind:         "Deployment",
		LayoutID:     LayoutID(appsv1.SchemeGroupVersion.WithKind("Deployment")),
		ResourceType: k8s.ResourceTypeDeployment,
		Columns: []ColumnConfig{
			nameColumn,
			namespaceColumn,
			{ID: "ready", Field: "Ready", Title: "Ready", Width: 7, Priority: 1},
			{ID: "up-to-date", Field: "UpToDate", Title: "Up-to-date", Width: 10, Priority: 2},
			{ID: "available", Field: "Available", Title: "Available", Width: 9, Priority: 2},
			ageColumn,
			{ID: "strategy", Field: "Strategy", Title: "Strategy", Width: 13, Priority: 3, Additional: true},
			{ID: "images", Field: "Images", Title: "Images", Width: 30, Priority: 3, Additional: true},
			{ID: "selector", Field: "Selector", Title: "Selector", Width: 20, Priority: 3, Additional: true},
			labelsColumn,
		},
		SearchFields:   []string{"Namespace", "Name", "Images"},
		TrackSelection: true,
	}
}

// GetServicesScreenConfig returns the config for the Services screen
func GetServicesScreenConfig() ScreenConfig {
	return ScreenConfig{
		ID:           "services",
		Title:        "Services",
		Kind:         "Service",
		LayoutID:     LayoutID(corev1.SchemeGroupVersion.WithKind("Service")),
		ResourceType: k8s.ResourceTypeService,
		Columns: []ColumnConfig{
			nameColumn,
			namespaceColumn,
			{ID: "type", Field: "Type", Title: "Type", Width: 12, Priority: 1},
			{ID: "cluster-ip", Field: "ClusterIP", Title: "Cluster-IP", Width: 15, Priority: 2},
			{ID: "external-ip", Field: "ExternalIP", Title: "External-IP", Width: 15, Priority: 2},
			{ID: "ports", Field: "Ports", Title: "Ports", Width: 20, Priority: 2},
			ageColumn,
			{ID: "selector", Field: "Selector", Title: "Selector", Width: 20, Priority: 3, Additional: true},
			labelsColumn,
		},
		SearchFields:   []string{"Namespace", "Name", "Type", "ClusterIP"},
		TrackSelection: true,
	}
}

// GetConfigMapsScreenConfig returns the config for the ConfigMaps screen
func GetConfigMapsScreenConfig() ScreenConfig {
	return ScreenConfig{
		ID:           "configmaps",
		Title:        "ConfigMaps",
		Kind:         "ConfigMap",
		LayoutID:     LayoutID(corev1.SchemeGroupVersion.WithKind("ConfigMap")),
		ResourceType: k8s.ResourceTypeConfigMap,
		Columns: []ColumnConfig{
			nameColumn,
			namespaceColumn,
			{ID: "data", Field: "Data", Title: "Data", Width: 5, Priority: 1},
			ageColumn,
			{ID: "binary-data", Field: "BinaryData", Title: "Binary", Width: 6, Priority: 3, Additional: true},
			{ID: "immutable", Field: "Immutable", Title: "Immutable", Width: 9, Format: FormatBool, Priority: 3, Additional: true},
			labelsColumn,
		},
		SearchFields:   []string{"Namespace", "Name"},
		TrackSelection: true,
	}
}

// GetSecretsScreenConfig returns the config for the Secrets screen
func GetSecretsScreenConfig() ScreenConfig {
	return ScreenConfig{
		ID:           "secrets",
		Title:        "Secrets",
		Kind:         "Secret",
		LayoutID:     LayoutID(corev1.SchemeGroupVersion.WithKind("Secret")),
		ResourceType: k8s.ResourceTypeSecret,
		Columns: []ColumnConfig{
			nameColumn,
			namespaceColumn,
			{ID: "type", Field: "Type", Title: "Type", Width: 30, Priority: 1},
			{ID: "data", Field: "Data", Title: "Data", Width: 5, Priority: 1},
			ageColumn,
			{ID: "immutable", Field: "Immutable", Title: "Immutable", Width: 9, Format: FormatBool, Priority: 3, Additional: true},
			labelsColumn,
		},
		SearchFields:   []string{"Namespace", "Name", "Type"},
		TrackSelection: true,
	}
}

// GetNamespacesScreenConfig returns the config for the Namespaces screen
func GetNamespacesScreenConfig() ScreenConfig {
	return ScreenConfig{
		ID:           "namespaces",
		Title:        "Namespaces",
		Kind:         "Namespace",
		LayoutID:     LayoutID(corev1.SchemeGroupVersion.WithKind("Namespace")),
		ResourceType: k8s.ResourceTypeNamespace,
		Columns: []ColumnConfig{
			nameColumn,
			{ID: "status", Field: "Status", Title: "Status", Width: 12, Priority: 1},
			ageColumn,
			labelsColumn,
		},
		SearchFields:   []string{"Name", "Status"},
		TrackSelection: true,
	}
}

// GetNodesScreenConfig returns the config for the Nodes screen
func GetNodesScreenConfig() ScreenConfig {
	return ScreenConfig{
		ID:           "nodes",
		Title:        "Nodes",
		Kind:         "Node",
		LayoutID:     LayoutID(corev1.SchemeGroupVersion.WithKind("Node")),
		ResourceType: k8s.ResourceTypeNode,
		Columns: []ColumnConfig{
			nameColumn,
			{ID: "status", Field: "Status", Title: "Status", Width: 24, Priority: 1},
			{ID: "roles", Field: "Roles", Title: "Roles", Width: 20, Priority: 2},
			{ID: "version", Field: "Version", Title: "Version", Width: 10, Priority: 2},
			ageColumn,
			{ID: "internal-ip", Field: "InternalIP", Title: "Internal-IP", Width: 15, Priority: 3, Additional: true},
			{ID: "os-image", Field: "OSImage", Title: "OS Image", Width: 20, Priority: 3, Additional: true},
			{ID: "kernel", Field: "KernelVersion", Title: "Kernel", Width: 18, Priority: 3, Additional: true},
			{ID: "runtime", Field: "ContainerRuntime", Title: "Runtime", Width: 20, Priority: 3, Additional: true},
			{ID: "instance-type", Field: "InstanceType", Title: "Instance", Width: 12, Format: FormatEmpty, Priority: 3, Additional: true},
			{ID: "zone", Field: "Zone", Title: "Zone", Width: 12, Format: FormatEmpty, Priority: 3, Additional: true},
			labelsColumn,
		},
		SearchFields:   []string{"Name", "Status", "Roles", "InternalIP"},
		TrackSelection: true,
	}
}

// GetPodMetricsScreenConfig returns the config for the Pod Metrics screen
func GetPodMetricsScreenConfig() ScreenConfig {
	return ScreenConfig{
		ID:           "podmetrics",
		Title:        "Pod Metrics",
		Kind:         "PodMetrics",
		LayoutID:     LayoutID(metricsv1beta1.SchemeGroupVersion.WithKind("PodMetrics")),
		ResourceType: k8s.ResourceTypePodMetrics,
		Columns: []ColumnConfig{
			nameColumn,
			namespaceColumn,
			{ID: "cpu", Field: "CPU", Title: "CPU", Width: 8, Priority: 1},
			{ID: "memory", Field: "Memory", Title: "Memory", Width: 8, Priority: 1},
			{ID: "containers", Field: "Containers", Title: "Containers", Width: 10, Priority: 3, Additional: true},
			{ID: "window", Field: "Window", Title: "Window", Width: 7, Format: FormatDuration, Priority: 3, Additional: true},
		},
		SearchFields:   []string{"Namespace", "Name"},
		TrackSelection: true,
	}
}

// ScreenConfigs returns every resource screen config in menu order.
func ScreenConfigs() []ScreenConfig {
	return []ScreenConfig{
		GetPodsScreenConfig(),
		GetDeploymentsScreenConfig(),
		GetServicesScreenConfig(),
		GetConfigMapsScreenConfig(),
		GetSecretsScreenConfig(),
		GetNamespacesScreenConfig(),
		GetNodesScreenConfig(),
		GetPodMetricsScreenConfig(),
	}
}

// ScreenConfigByID finds a screen config by id or resource name.
func ScreenConfigByID(id string) (ScreenConfig, bool) {
	for _, cfg := range ScreenConfigs() {
		if cfg.ID == id || strings.EqualFold(cfg.Kind, id) {
			return cfg, true
		}
	}
	return ScreenConfig{}, false
}

// NewScreens builds a screen per config.
func NewScreens(ctx *types.AppContext) []*ConfigScreen {
	configs := ScreenConfigs()
	result := make([]*ConfigScreen, len(configs))
	for i, cfg := range configs {
		result[i] = NewConfigScreen(cfg, ctx)
	}
	return result
}
