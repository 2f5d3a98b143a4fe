package k8s

import (
	"regexp"
	"slices"
	"strings"

	corev1 "k8s.io/api/core/v1"
	"k8s.io/apimachinery/pkg/api/resource"
	"k8s.io/apimachinery/pkg/runtime/schema"
)

// DefaultNamespace is the namespace used when none is selected.
const DefaultNamespace = corev1.NamespaceDefault

// ResourceLimitRegex matches a resource quantity as typed into a limit field.
var ResourceLimitRegex = regexp.MustCompile(`^([+-]?[0-9.]+)([eEimkKMGTP]*[-+]?[0-9]*)$`)

// ValidResourceLimit reports whether s is a well-formed resource quantity.
func ValidResourceLimit(s string) bool {
	if !ResourceLimitRegex.MatchString(s) {
		return false
	}
	_, err := resource.ParseQuantity(s)
	return err == nil
}

// Kind describes one resource kind the console knows about.
type Kind struct {
	ID          string `json:"id"`
	Kind        string `json:"kind"`
	Label       string `json:"label"`
	LabelPlural string `json:"labelPlural"`
	Path        string `json:"path"`
	Plural      string `json:"plural"`
	IsExtension bool   `json:"isExtension,omitempty"`
	APIVersion  string `json:"apiVersion,omitempty"`
	BasePath    string `json:"basePath,omitempty"`
}

// GroupVersionResource returns the API coordinates of the kind.
func (k Kind) GroupVersionResource() schema.GroupVersionResource {
	gvr := schema.GroupVersionResource{Version: "v1", Resource: k.Path}
	if k.APIVersion != "" {
		gvr.Version = k.APIVersion
	}
	switch {
	case k.BasePath != "":
		gvr.Group = strings.Trim(strings.TrimPrefix(k.BasePath, "/apis/"), "/")
	case k.IsExtension:
		gvr.Group = "extensions"
	}
	return gvr
}

var kinds = []Kind{
	{ID: "service", Kind: "Service", Label: "Service", LabelPlural: "Services", Path: "services", Plural: "services"},
	{ID: "pod", Kind: "Pod", Label: "Pod", LabelPlural: "Pods", Path: "pods", Plural: "pods"},
	{ID: "daemonset", Kind: "DaemonSet", Label: "Daemon Set", LabelPlural: "Daemon Sets", Path: "daemonsets", Plural: "daemonsets", IsExtension: true, APIVersion: "v1beta1"},
	{ID: "replicationcontroller", Kind: "ReplicationController", Label: "Replication Controller", LabelPlural: "Replication Controllers", Path: "replicationcontrollers", Plural: "replicationcontrollers"},
	{ID: "replicaset", Kind: "ReplicaSet", Label: "Replica Set", LabelPlural: "Replica Sets", Path: "replicasets", Plural: "replicasets", IsExtension: true, APIVersion: "v1beta1"},
	{ID: "deployment", Kind: "Deployment", Label: "Deployment", LabelPlural: "Deployments", Path: "deployments", Plural: "deployments", IsExtension: true, APIVersion: "v1beta1"},
	{ID: "node", Kind: "Node", Label: "Node", LabelPlural: "Nodes", Path: "nodes", Plural: "nodes"},
	{ID: "event", Kind: "Event", Label: "Event", LabelPlural: "Events", Path: "events", Plural: "events"},
	{ID: "componentstatus", Kind: "ComponentStatus", Label: "Component Status", LabelPlural: "Component Statuses", Path: "componentstatuses", Plural: "componentstatuses"},
	{ID: "namespace", Kind: "Namespace", Label: "Namespace", LabelPlural: "Namespaces", Path: "namespaces", Plural: "namespaces"},
	{ID: "policy", Kind: "Policy", Label: "Policy", LabelPlural: "Policies", Path: "policies", Plural: "policies", APIVersion: "v1", BasePath: "/apis/tpm.coreos.com/"},
	{ID: "tpm", Kind: "TPM", Label: "TPM", LabelPlural: "TPMs", Path: "tpms", Plural: "TPMs", APIVersion: "v1", BasePath: "/apis/coreos.com/"},
	{ID: "configmap", Kind: "ConfigMap", Label: "Config Map", LabelPlural: "Config Maps", Path: "configmaps", Plural: "configmaps"},
	{ID: "secret", Kind: "Secret", Label: "Secret", LabelPlural: "Secrets", Path: "secrets", Plural: "secrets"},
}

// Kinds returns every known kind in declaration order.
func Kinds() []Kind {
	return slices.Clone(kinds)
}

// KindByID looks up a kind by its id ("pod", "configmap").
func KindByID(id string) (Kind, bool) {
	i := slices.IndexFunc(kinds, func(k Kind) bool { return k.ID == id })
	if i < 0 {
		return Kind{}, false
	}
	return kinds[i], true
}

// Choice is a weighted option of a policy or source table.
type Choice struct {
	ID          string `json:"id"`
	Value       string `json:"value,omitempty"`
	Label       string `json:"label"`
	Weight      int    `json:"weight"`
	Description string `json:"description,omitempty"`
	Default     bool   `json:"default,omitempty"`
}

var pullPolicies = []Choice{
	{
		ID: "always", Value: string(corev1.PullAlways), Label: "Always Pull", Weight: 100, Default: true,
		Description: "Pull down a new copy of the container image whenever a new pod is created.",
	},
	{
		ID: "ifnotpresent", Value: string(corev1.PullIfNotPresent), Label: "Pull If Needed", Weight: 200,
		Description: "If the container isn’t available locally, pull it down.",
	},
	{
		ID: "never", Value: string(corev1.PullNever), Label: "Never Pull", Weight: 300,
		Description: "Don't pull down a container image. If the correct container image doesn't exist locally, the pod will fail to start correctly.",
	},
}

var restartPolicies = []Choice{
	{
		ID: string(corev1.RestartPolicyAlways), Label: "Always Restart", Weight: 100, Default: true,
		Description: "If the container restarts for any reason, restart it. Useful for stateless services that may fail from time to time.",
	},
	{
		ID: string(corev1.RestartPolicyOnFailure), Label: "Restart On Failure", Weight: 200,
		Description: "If the container exits with a non-zero status code, restart it.",
	},
	{
		ID: string(corev1.RestartPolicyNever), Label: "Never Restart", Weight: 300,
		Description: "Never restart the container. Useful for containers that exit when they have completed a specific job, like a data import daemon.",
	},
}

// Used for probes and lifecycle hooks.
var hookActions = []Choice{
	{ID: "exec", Label: "Exec Command", Weight: 100},
	{ID: "httpGet", Label: "HTTP Get", Weight: 200},
	{ID: "tcpSocket", Label: "TCP Socket (Port)", Weight: 300},
}

var volumeSources = []Choice{
	{ID: "emptyDir", Label: "Container Volume", Weight: 100, Description: "Temporary directory that shares a pod's lifetime."},
	{ID: "hostPath", Label: "Host Directory", Weight: 200, Description: "Pre-existing host file or directory, generally for privileged system daemons or other agents tied to the host."},
	{ID: "gitRepo", Label: "Git Repo", Weight: 300, Description: "Git repository at a particular revision."},
	{ID: "nfs", Label: "NFS", Weight: 400, Description: "NFS volume that will be mounted in the host machine."},
	{ID: "secret", Label: "Secret", Weight: 500, Description: "Secret to populate volume."},
	{ID: "gcePersistentDisk", Label: "GCE Persistent Disk", Weight: 600, Description: "GCE disk resource attached to the host machine on demand."},
	{ID: "awsElasticBlockStore", Label: "AWS Elastic Block Store", Weight: 700, Description: "AWS disk resource attached to the host machine on demand."},
	{ID: "glusterfs", Label: "Gluster FS", Weight: 800, Description: "GlusterFS volume that will be mounted on the host machine."},
	{ID: "iscsi", Label: "iSCSI", Weight: 900, Description: "iSCSI disk attached to host machine on demand"},
}

// PullPolicies returns the image pull policies ordered by weight.
func PullPolicies() []Choice { return byWeight(pullPolicies) }

// RestartPolicies returns the pod restart policies ordered by weight.
func RestartPolicies() []Choice { return byWeight(restartPolicies) }

// HookActions returns the probe and lifecycle hook actions ordered by weight.
func HookActions() []Choice { return byWeight(hookActions) }

// VolumeSources returns the volume sources ordered by weight.
func VolumeSources() []Choice { return byWeight(volumeSources) }

// DefaultChoice returns the default entry of a table, if it has one.
func DefaultChoice(choices []Choice) (Choice, bool) {
	i := slices.IndexFunc(choices, func(c Choice) bool { return c.Default })
	if i < 0 {
		return Choice{}, false
	}
	return choices[i], true
}

func byWeight(choices []Choice) []Choice {
	sorted := slices.Clone(choices)
	slices.SortStableFunc(sorted, func(a, b Choice) int { return a.Weight - b.Weight })
	return sorted
}
