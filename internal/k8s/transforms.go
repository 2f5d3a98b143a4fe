package k8s

import (
	"fmt"
	"sort"
	"strings"
	"time"

	appsv1 "k8s.io/api/apps/v1"
	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/labels"
	metricsv1beta1 "k8s.io/metrics/pkg/apis/metrics/v1beta1"
)

const none = "<none>"

func metadata(obj metav1.Object, now time.Time) ResourceMetadata {
	created := obj.GetCreationTimestamp().Time
	return ResourceMetadata{
		Namespace: obj.GetNamespace(),
		Name:      obj.GetName(),
		Age:       now.Sub(created),
		CreatedAt: created,
		Labels:    len(obj.GetLabels()),
	}
}

// transformPod converts a pod to a typed Pod
func transformPod(p *corev1.Pod, now time.Time) Pod {
	ready := 0
	restarts := int32(0)
	for _, cs := range p.Status.ContainerStatuses {
		if cs.Ready {
			ready++
		}
		restarts += cs.RestartCount
	}

	owner := ""
	if ref := metav1.GetControllerOf(p); ref != nil {
		owner = ref.Kind + "/" + ref.Name
	}

	return Pod{
		ResourceMetadata: metadata(p, now),
		Ready:            fmt.Sprintf("%d/%d", ready, len(p.Spec.Containers)),
		Status:           podStatus(p),
		Restarts:         restarts,
		Node:             p.Spec.NodeName,
		IP:               p.Status.PodIP,
		QoSClass:         string(p.Status.QOSClass),
		Containers:       len(p.Spec.Containers),
		Owner:            owner,
	}
}

// podStatus mirrors the STATUS column of kubectl get pods: a waiting or
// terminated container reason wins over the pod phase.
func podStatus(p *corev1.Pod) string {
	if p.DeletionTimestamp != nil {
		return "Terminating"
	}
	for _, cs := range p.Status.InitContainerStatuses {
		if w := cs.State.Waiting; w != nil && w.Reason != "" && w.Reason != "PodInitializing" {
			return "Init:" + w.Reason
		}
	}
	for _, cs := range p.Status.ContainerStatuses {
		if w := cs.State.Waiting; w != nil && w.Reason != "" {
			return w.Reason
		}
		if t := cs.State.Terminated; t != nil && t.Reason != "" {
			return t.Reason
		}
	}
	if p.Status.Reason != "" {
		return p.Status.Reason
	}
	return string(p.Status.Phase)
}

// transformDeployment converts a deployment to a typed Deployment
func transformDeployment(d *appsv1.Deployment, now time.Time) Deployment {
	desired := int32(1)
	if d.Spec.Replicas != nil {
		desired = *d.Spec.Replicas
	}

	images := make([]string, 0, len(d.Spec.Template.Spec.Containers))
	for _, c := range d.Spec.Template.Spec.Containers {
		images = append(images, c.Image)
	}

	selector := none
	if d.Spec.Selector != nil {
		if s, err := metav1.LabelSelectorAsSelector(d.Spec.Selector); err == nil && !s.Empty() {
			selector = s.String()
		}
	}

	return Deployment{
		ResourceMetadata: metadata(d, now),
		Ready:            fmt.Sprintf("%d/%d", d.Status.ReadyReplicas, desired),
		UpToDate:         d.Status.UpdatedReplicas,
		Available:        d.Status.AvailableReplicas,
		Strategy:         string(d.Spec.Strategy.Type),
		Images:           strings.Join(images, ","),
		Selector:         selector,
	}
}

// transformService converts a service to a typed Service
func transformService(s *corev1.Service, now time.Time) Service {
	clusterIP := s.Spec.ClusterIP
	if clusterIP == "" {
		clusterIP = none
	}

	externalIP := none
	if ingress := s.Status.LoadBalancer.Ingress; len(ingress) > 0 {
		if ingress[0].IP != "" {
			externalIP = ingress[0].IP
		} else if ingress[0].Hostname != "" {
			externalIP = ingress[0].Hostname
		}
	}
	if externalIP == none && len(s.Spec.ExternalIPs) > 0 {
		externalIP = strings.Join(s.Spec.ExternalIPs, ",")
	}

	ports := make([]string, 0, len(s.Spec.Ports))
	for _, p := range s.Spec.Ports {
		port := fmt.Sprintf("%d", p.Port)
		if p.NodePort != 0 {
			port = fmt.Sprintf("%d:%d", p.Port, p.NodePort)
		}
		ports = append(ports, port+"/"+string(p.Protocol))
	}
	portsStr := strings.Join(ports, ",")
	if portsStr == "" {
		portsStr = none
	}

	selector := none
	if len(s.Spec.Selector) > 0 {
		selector = labels.SelectorFromSet(s.Spec.Selector).String()
	}

	return Service{
		ResourceMetadata: metadata(s, now),
		Type:             string(s.Spec.Type),
		ClusterIP:        clusterIP,
		ExternalIP:       externalIP,
		Ports:            portsStr,
		Selector:         selector,
	}
}

// transformConfigMap converts a configmap to a typed ConfigMap
func transformConfigMap(cm *corev1.ConfigMap, now time.Time) ConfigMap {
	return ConfigMap{
		ResourceMetadata: metadata(cm, now),
		Data:             len(cm.Data),
		BinaryData:       len(cm.BinaryData),
		Immutable:        cm.Immutable != nil && *cm.Immutable,
	}
}

// transformSecret converts a secret to a typed Secret
func transformSecret(s *corev1.Secret, now time.Time) Secret {
	return Secret{
		ResourceMetadata: metadata(s, now),
		Type:             string(s.Type),
		Data:             len(s.Data),
		Immutable:        s.Immutable != nil && *s.Immutable,
	}
}

// transformNamespace converts a namespace to a typed Namespace
func transformNamespace(ns *corev1.Namespace, now time.Time) Namespace {
	return Namespace{
		ResourceMetadata: metadata(ns, now),
		Status:           string(ns.Status.Phase),
	}
}

// transformNode converts a node to a typed Node
func transformNode(n *corev1.Node, now time.Time) Node {
	status := "Unknown"
	for _, c := range n.Status.Conditions {
		if c.Type != corev1.NodeReady {
			continue
		}
		if c.Status == corev1.ConditionTrue {
			status = "Ready"
		} else {
			status = "NotReady"
		}
	}
	if n.Spec.Unschedulable {
		status += ",SchedulingDisabled"
	}

	internalIP := none
	for _, addr := range n.Status.Addresses {
		if addr.Type == corev1.NodeInternalIP {
			internalIP = addr.Address
			break
		}
	}

	info := n.Status.NodeInfo
	return Node{
		ResourceMetadata: metadata(n, now),
		Status:           status,
		Roles:            nodeRoles(n.Labels),
		Version:          info.KubeletVersion,
		InternalIP:       internalIP,
		OSImage:          info.OSImage,
		KernelVersion:    info.KernelVersion,
		ContainerRuntime: info.ContainerRuntimeVersion,
		InstanceType:     n.Labels[corev1.LabelInstanceTypeStable],
		Zone:             n.Labels[corev1.LabelTopologyZone],
	}
}

func nodeRoles(nodeLabels map[string]string) string {
	const prefix = "node-role.kubernetes.io/"
	roles := []string{}
	for k := range nodeLabels {
		if role, ok := strings.CutPrefix(k, prefix); ok && role != "" {
			roles = append(roles, role)
		}
	}
	if len(roles) == 0 {
		return none
	}
	sort.Strings(roles)
	return strings.Join(roles, ",")
}

// transformPodMetrics sums container usage into a typed PodMetrics
func transformPodMetrics(m *metricsv1beta1.PodMetrics, now time.Time) PodMetrics {
	usage := corev1.ResourceList{}
	for _, c := range m.Containers {
		for name, q := range c.Usage {
			total := usage[name]
			total.Add(q)
			usage[name] = total
		}
	}

	usageCPU := usage[corev1.ResourceCPU]
	usageMem := usage[corev1.ResourceMemory]
	return PodMetrics{
		ResourceMetadata: metadata(m, now),
		CPU:              fmt.Sprintf("%dm", usageCPU.MilliValue()),
		Memory:           fmt.Sprintf("%dMi", usageMem.Value()/(1024*1024)),
		Containers:       len(m.Containers),
		Window:           m.Window.Duration,
	}
}
