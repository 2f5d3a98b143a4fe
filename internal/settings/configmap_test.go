package settings

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	corev1 "k8s.io/api/core/v1"
	apierrors "k8s.io/apimachinery/pkg/api/errors"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/runtime"
	"k8s.io/apimachinery/pkg/runtime/schema"
	"k8s.io/client-go/kubernetes/fake"
	k8stesting "k8s.io/client-go/testing"
)

func TestConfigMapBackend_CreateThenUpdate(t *testing.T) {
	ctx := context.Background()
	client := fake.NewClientset()
	b := NewConfigMapBackend(client, DefaultNamespace, "user-settings-alice")

	_, found, err := b.Get(ctx, ColumnManagementConfigMapKey)
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, b.Update(ctx, ColumnManagementConfigMapKey, func(_ string, found bool) (string, error) {
		assert.False(t, found)
		return `{"pods":["name"]}`, nil
	}))

	cm, err := client.CoreV1().ConfigMaps(DefaultNamespace).Get(ctx, "user-settings-alice", metav1.GetOptions{})
	require.NoError(t, err)
	assert.Equal(t, "kview", cm.Labels["app.kubernetes.io/managed-by"])

	require.NoError(t, b.Update(ctx, RefreshIntervalConfigMapKey, func(_ string, found bool) (string, error) {
		assert.False(t, found)
		return `"1m"`, nil
	}))

	value, found, err := b.Get(ctx, ColumnManagementConfigMapKey)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, `{"pods":["name"]}`, value)

	value, found, err = b.Get(ctx, RefreshIntervalConfigMapKey)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, `"1m"`, value)
}

func TestConfigMapBackend_KeepsForeignKeys(t *testing.T) {
	ctx := context.Background()
	existing := &corev1.ConfigMap{
		ObjectMeta: metav1.ObjectMeta{Name: "user-settings-bob", Namespace: DefaultNamespace},
		Data:       map[string]string{"console.theme": `"dark"`},
	}
	client := fake.NewClientset(existing)
	b := NewConfigMapBackend(client, DefaultNamespace, "user-settings-bob")

	require.NoError(t, b.Update(ctx, ColumnManagementConfigMapKey, func(string, bool) (string, error) {
		return `{}`, nil
	}))

	cm, err := client.CoreV1().ConfigMaps(DefaultNamespace).Get(ctx, "user-settings-bob", metav1.GetOptions{})
	require.NoError(t, err)
	assert.Equal(t, map[string]string{
		"console.theme":              `"dark"`,
		ColumnManagementConfigMapKey: `{}`,
	}, cm.Data)
}

func TestConfigMapBackend_RetriesConflicts(t *testing.T) {
	ctx := context.Background()
	existing := &corev1.ConfigMap{
		ObjectMeta: metav1.ObjectMeta{Name: "user-settings-carol", Namespace: DefaultNamespace},
		Data:       map[string]string{ColumnManagementConfigMapKey: "1"},
	}
	client := fake.NewClientset(existing)

	conflicts := 2
	client.PrependReactor("update", "configmaps", func(k8stesting.Action) (bool, runtime.Object, error) {
		if conflicts == 0 {
			return false, nil, nil
		}
		conflicts--
		return true, nil, apierrors.NewConflict(schema.GroupResource{Resource: "configmaps"}, "user-settings-carol", nil)
	})

	b := NewConfigMapBackend(client, DefaultNamespace, "user-settings-carol")
	calls := 0
	require.NoError(t, b.Update(ctx, ColumnManagementConfigMapKey, func(prev string, _ bool) (string, error) {
		calls++
		return prev + "2", nil
	}))

	assert.Equal(t, 3, calls)
	value, _, err := b.Get(ctx, ColumnManagementConfigMapKey)
	require.NoError(t, err)
	assert.Equal(t, "12", value)
}

func TestConfigMapBackend_Forbidden(t *testing.T) {
	ctx := context.Background()
	client := fake.NewClientset()
	client.PrependReactor("get", "configmaps", func(k8stesting.Action) (bool, runtime.Object, error) {
		return true, nil, apierrors.NewForbidden(schema.GroupResource{Resource: "configmaps"}, "x", nil)
	})

	b := NewConfigMapBackend(client, DefaultNamespace, "x")
	_, _, err := b.Get(ctx, "a")
	require.Error(t, err)
	assert.True(t, apierrors.IsForbidden(err))
	assert.Contains(t, err.Error(), DefaultNamespace+"/x")
}

func TestUserSettingsName(t *testing.T) {
	tests := []struct {
		name string
		user string
		want string
	}{
		{name: "plain", user: "alice", want: "user-settings-alice"},
		{name: "email", user: "Bob@Example.com", want: "user-settings-bob-example.com"},
		{name: "service account", user: "system:serviceaccount:ns:sa", want: "user-settings-system-serviceaccount-ns-sa"},
		{name: "empty", user: "", want: "user-settings-default"},
		{name: "only symbols", user: "::", want: "user-settings-default"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, UserSettingsName(tt.user))
		})
	}
}

func TestUserSettingsName_Long(t *testing.T) {
	name := UserSettingsName(strings.Repeat("a", 300))
	assert.LessOrEqual(t, len(name), 253)
	assert.True(t, strings.HasPrefix(name, "user-settings-"))
}
