package settings

import (
	"context"
	"fmt"
	"os"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/client-go/kubernetes"
	"sigs.k8s.io/controller-runtime/pkg/envtest"
)

// startAPIServer runs a real API server for the test. Skipped unless the
// envtest binaries are installed.
func startAPIServer(t *testing.T) kubernetes.Interface {
	t.Helper()
	if os.Getenv("KUBEBUILDER_ASSETS") == "" {
		t.Skip("KUBEBUILDER_ASSETS not set")
	}

	testEnv := &envtest.Environment{}
	cfg, err := testEnv.Start()
	require.NoError(t, err, "Failed to start envtest")
	t.Cleanup(func() { _ = testEnv.Stop() })

	client, err := kubernetes.NewForConfig(cfg)
	require.NoError(t, err)

	_, err = client.CoreV1().Namespaces().Create(context.Background(),
		&corev1.Namespace{ObjectMeta: metav1.ObjectMeta{Name: DefaultNamespace}},
		metav1.CreateOptions{})
	require.NoError(t, err)
	return client
}

func TestConfigMapBackend_ConcurrentCommits(t *testing.T) {
	client := startAPIServer(t)
	ctx := context.Background()
	name := UserSettingsName("envtest")

	const writers = 8
	var wg sync.WaitGroup
	errs := make([]error, writers)
	for i := range writers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s := TableColumnsSetting(NewConfigMapBackend(client, DefaultNamespace, name), nil)
			errs[i] = s.Set(ctx, addColumns(fmt.Sprintf("layout-%d", i), "name"))
		}()
	}
	wg.Wait()

	for _, err := range errs {
		require.NoError(t, err)
	}

	got, found, err := TableColumnsSetting(NewConfigMapBackend(client, DefaultNamespace, name), nil).Get(ctx)
	require.NoError(t, err)
	require.True(t, found)
	assert.Len(t, got, writers)
}
