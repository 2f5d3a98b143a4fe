package settings

import (
	"context"
	"fmt"
	"strings"
	"time"

	corev1 "k8s.io/api/core/v1"
	apierrors "k8s.io/apimachinery/pkg/api/errors"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/util/validation"
	"k8s.io/apimachinery/pkg/util/wait"
	"k8s.io/client-go/kubernetes"
	"k8s.io/client-go/util/retry"

	"github.com/renato0307/kview/internal/logging"
)

const (
	// DefaultNamespace holds the user-settings ConfigMaps.
	DefaultNamespace = "kview-user-settings"

	managedByLabel = "app.kubernetes.io/managed-by"
	managedByValue = "kview"
)

// updateBackoff bounds the retries of a read-modify-write that keeps losing
// to other writers of the same ConfigMap.
var updateBackoff = wait.Backoff{
	Steps:    10,
	Duration: 10 * time.Millisecond,
	Factor:   1.5,
	Jitter:   0.5,
}

// ConfigMapBackend stores values as data entries of one ConfigMap per user.
type ConfigMapBackend struct {
	client    kubernetes.Interface
	namespace string
	name      string
}

// NewConfigMapBackend creates a backend for the ConfigMap namespace/name. The
// ConfigMap is created on first update.
func NewConfigMapBackend(client kubernetes.Interface, namespace, name string) *ConfigMapBackend {
	return &ConfigMapBackend{
		client:    client,
		namespace: namespace,
		name:      name,
	}
}

// UserSettingsName derives a valid ConfigMap name from a user name.
func UserSettingsName(user string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(user) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-', r == '.':
			b.WriteRune(r)
		default:
			b.WriteRune('-')
		}
	}

	suffix := strings.Trim(b.String(), "-.")
	if suffix == "" {
		suffix = "default"
	}

	name := "user-settings-" + suffix
	if len(name) > validation.DNS1123SubdomainMaxLength {
		name = strings.TrimRight(name[:validation.DNS1123SubdomainMaxLength], "-.")
	}
	return name
}

func (b *ConfigMapBackend) String() string {
	return b.namespace + "/" + b.name
}

func (b *ConfigMapBackend) Get(ctx context.Context, key string) (string, bool, error) {
	cm, err := b.client.CoreV1().ConfigMaps(b.namespace).Get(ctx, b.name, metav1.GetOptions{})
	if apierrors.IsNotFound(err) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to get configmap %s: %w", b, err)
	}

	value, ok := cm.Data[key]
	return value, ok, nil
}

// Update retries on conflicts so concurrent writers of different keys never
// clobber each other.
func (b *ConfigMapBackend) Update(ctx context.Context, key string, fn UpdateFunc) error {
	configMaps := b.client.CoreV1().ConfigMaps(b.namespace)

	err := retry.OnError(updateBackoff, isRetryable, func() error {
		current, err := configMaps.Get(ctx, b.name, metav1.GetOptions{})
		if apierrors.IsNotFound(err) {
			value, err := fn("", false)
			if err != nil {
				return err
			}
			_, err = configMaps.Create(ctx, b.newConfigMap(key, value), metav1.CreateOptions{})
			return err
		}
		if err != nil {
			return err
		}

		prev, ok := current.Data[key]
		value, err := fn(prev, ok)
		if err != nil {
			return err
		}

		next := current.DeepCopy()
		if next.Data == nil {
			next.Data = map[string]string{}
		}
		next.Data[key] = value

		_, err = configMaps.Update(ctx, next, metav1.UpdateOptions{})
		if apierrors.IsConflict(err) {
			logging.Debug("User settings conflict, retrying", "configmap", b.String(), "key", key)
		}
		return err
	})
	if err != nil {
		return fmt.Errorf("failed to update configmap %s: %w", b, err)
	}
	return nil
}

func (b *ConfigMapBackend) newConfigMap(key, value string) *corev1.ConfigMap {
	return &corev1.ConfigMap{
		ObjectMeta: metav1.ObjectMeta{
			Name:      b.name,
			Namespace: b.namespace,
			Labels:    map[string]string{managedByLabel: managedByValue},
		},
		Data: map[string]string{key: value},
	}
}

// isRetryable matches the errors of losing a race with another writer.
func isRetryable(err error) bool {
	return apierrors.IsConflict(err) || apierrors.IsAlreadyExists(err)
}
