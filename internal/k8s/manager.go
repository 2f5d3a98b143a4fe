package k8s

import (
	"fmt"

	"k8s.io/cli-runtime/pkg/genericclioptions"
	"k8s.io/client-go/kubernetes"
	metricsclient "k8s.io/metrics/pkg/client/clientset/versioned"
)

// Clients bundles everything built from the kubeconfig flags.
type Clients struct {
	Clientset  kubernetes.Interface
	Metrics    metricsclient.Interface
	Context    string
	User       string
	Namespace  string // from kubeconfig or --namespace, may be ""
	Repository *ClientRepository
}

// NewClients builds the typed and metrics clients from kubeconfig flags.
func NewClients(getter genericclioptions.RESTClientGetter) (*Clients, error) {
	config, err := getter.ToRESTConfig()
	if err != nil {
		return nil, fmt.Errorf("error building kubeconfig: %w", err)
	}

	// Use protobuf for better performance
	config.ContentType = protobufContentType

	clientset, err := kubernetes.NewForConfig(config)
	if err != nil {
		return nil, fmt.Errorf("error creating clientset: %w", err)
	}

	metrics, err := metricsclient.NewForConfig(config)
	if err != nil {
		return nil, fmt.Errorf("error creating metrics client: %w", err)
	}

	loader := getter.ToRawKubeConfigLoader()
	raw, err := loader.RawConfig()
	if err != nil {
		return nil, fmt.Errorf("error reading kubeconfig: %w", err)
	}

	contextName := raw.CurrentContext
	if flags, ok := getter.(*genericclioptions.ConfigFlags); ok && flags.Context != nil && *flags.Context != "" {
		contextName = *flags.Context
	}

	user := ""
	if kubeContext, ok := raw.Contexts[contextName]; ok {
		user = kubeContext.AuthInfo
	}
	if flags, ok := getter.(*genericclioptions.ConfigFlags); ok && flags.AuthInfoName != nil && *flags.AuthInfoName != "" {
		user = *flags.AuthInfoName
	}

	namespace, explicit, err := loader.Namespace()
	if err != nil {
		return nil, fmt.Errorf("error reading namespace: %w", err)
	}
	if !explicit && namespace == DefaultNamespace {
		namespace = ""
	}

	return &Clients{
		Clientset:  clientset,
		Metrics:    metrics,
		Context:    contextName,
		User:       user,
		Namespace:  namespace,
		Repository: NewClientRepository(clientset, metrics, contextName, user),
	}, nil
}
