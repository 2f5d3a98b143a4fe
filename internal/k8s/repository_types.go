package k8s

import "time"

// Resource represents any Kubernetes resource with common fields
// All resource types must implement this interface for sorting and polymorphic operations
type Resource interface {
	GetNamespace() string // "" for cluster-scoped resources
	GetName() string
	GetAge() time.Duration
	GetCreatedAt() time.Time
}

// ResourceMetadata contains common fields shared by all Kubernetes resources
// Embed this in resource structs to automatically implement Resource interface
type ResourceMetadata struct {
	Namespace string
	Name      string
	Age       time.Duration
	CreatedAt time.Time
	Labels    int
}

func (r ResourceMetadata) GetNamespace() string    { return r.Namespace }
func (r ResourceMetadata) GetName() string         { return r.Name }
func (r ResourceMetadata) GetAge() time.Duration   { return r.Age }
func (r ResourceMetadata) GetCreatedAt() time.Time { return r.CreatedAt }

// Pod represents a Kubernetes pod
type Pod struct {
	ResourceMetadata
	Ready      string
	Status     string
	Restarts   int32
	Node       string
	IP         string
	QoSClass   string
	Containers int
	Owner      string // "ReplicaSet/nginx-7d64f8d9c8"
}

// Deployment represents a Kubernetes deployment
type Deployment struct {
	ResourceMetadata
	Ready     string
	UpToDate  int32
	Available int32
	Strategy  string
	Images    string
	Selector  string
}

// Service represents a Kubernetes service
type Service struct {
	ResourceMetadata
	Type       string
	ClusterIP  string
	ExternalIP string
	Ports      string
	Selector   string
}

// ConfigMap represents a Kubernetes configmap
type ConfigMap struct {
	ResourceMetadata
	Data       int // Number of data items
	BinaryData int
	Immutable  bool
}

// Secret represents a Kubernetes secret
type Secret struct {
	ResourceMetadata
	Type      string
	Data      int // Number of data items
	Immutable bool
}

// Namespace represents a Kubernetes namespace
type Namespace struct {
	ResourceMetadata
	Status string
}

// Node represents a Kubernetes node
type Node struct {
	ResourceMetadata
	Status           string
	Roles            string
	Version          string
	InternalIP       string
	OSImage          string
	KernelVersion    string
	ContainerRuntime string
	InstanceType     string
	Zone             string
}

// PodMetrics is the current resource usage of a pod
type PodMetrics struct {
	ResourceMetadata
	CPU        string // "250m"
	Memory     string // "128Mi"
	Containers int
	Window     time.Duration
}
