package settings

import (
	"context"
	"errors"
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

var errUnavailable = errors.New("cluster unreachable")

// brokenBackend fails every call.
type brokenBackend struct{}

func (brokenBackend) Get(context.Context, string) (string, bool, error) {
	return "", false, errUnavailable
}

func (brokenBackend) Update(context.Context, string, UpdateFunc) error {
	return errUnavailable
}

func addColumns(layout string, ids ...string) func(TableColumns) TableColumns {
	return func(prev TableColumns) TableColumns {
		next := TableColumns{}
		for k, v := range prev {
			next[k] = v
		}
		next[layout] = ids
		return next
	}
}

func TestSetting_SetWritesBoth(t *testing.T) {
	ctx := context.Background()
	remote, local := NewMemoryBackend(), NewMemoryBackend()
	s := TableColumnsSetting(remote, local)

	require.NoError(t, s.Set(ctx, addColumns("pods", "name", "status")))
	require.NoError(t, s.Set(ctx, addColumns("nodes", "name")))

	raw, found, err := remote.Get(ctx, ColumnManagementConfigMapKey)
	require.NoError(t, err)
	require.True(t, found)
	assert.JSONEq(t, `{"pods":["name","status"],"nodes":["name"]}`, raw)

	raw, found, err = local.Get(ctx, ColumnManagementLocalStorageKey)
	require.NoError(t, err)
	require.True(t, found)
	assert.JSONEq(t, `{"pods":["name","status"],"nodes":["name"]}`, raw)
}

func TestSetting_GetPrefersRemote(t *testing.T) {
	ctx := context.Background()
	remote, local := NewMemoryBackend(), NewMemoryBackend()
	seed(t, remote, ColumnManagementConfigMapKey, `{"pods":["name"]}`)
	seed(t, local, ColumnManagementLocalStorageKey, `{"pods":["name","age"]}`)

	got, found, err := TableColumnsSetting(remote, local).Get(ctx)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, TableColumns{"pods": {"name"}}, got)
}

func TestSetting_GetMigratesLocal(t *testing.T) {
	ctx := context.Background()
	remote, local := NewMemoryBackend(), NewMemoryBackend()
	seed(t, local, ColumnManagementLocalStorageKey, `{"pods":["name","age"]}`)

	got, found, err := TableColumnsSetting(remote, local).Get(ctx)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, TableColumns{"pods": {"name", "age"}}, got)

	raw, found, err := remote.Get(ctx, ColumnManagementConfigMapKey)
	require.NoError(t, err)
	assert.True(t, found)
	assert.JSONEq(t, `{"pods":["name","age"]}`, raw)
}

func TestSetting_RemoteUnavailable(t *testing.T) {
	ctx := context.Background()
	local := NewMemoryBackend()
	seed(t, local, RefreshIntervalLocalStorageKey, `"30s"`)
	s := RefreshIntervalSetting(brokenBackend{}, local)

	got, found, err := s.Get(ctx)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "30s", got)

	require.NoError(t, s.Set(ctx, func(string) string { return "5m" }))
	got, _, err = s.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "5m", got)
}

func TestSetting_ReadOnlyConfigMap(t *testing.T) {
	ctx := context.Background()
	existing := &corev1.ConfigMap{
		ObjectMeta: metav1.ObjectMeta{Name: "user-settings-alice", Namespace: DefaultNamespace},
		Data:       map[string]string{ColumnManagementConfigMapKey: `{"pods":["name","status"],"nodes":["name"]}`},
	}
	client := fake.NewClientset(existing)
	forbidden := true
	client.PrependReactor("update", "configmaps", func(k8stesting.Action) (bool, runtime.Object, error) {
		if forbidden {
			return true, nil, apierrors.NewForbidden(schema.GroupResource{Resource: "configmaps"}, "user-settings-alice", nil)
		}
		return false, nil, nil
	})
	remote := NewConfigMapBackend(client, DefaultNamespace, "user-settings-alice")
	local := NewMemoryBackend()
	s := TableColumnsSetting(remote, local)

	require.NoError(t, s.Set(ctx, addColumns("pods", "name", "age")))

	got, found, err := s.Get(ctx)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, TableColumns{"pods": {"name", "age"}, "nodes": {"name"}}, got,
		"the local save wins and keeps the other layouts")

	// Later saves build on the local value.
	require.NoError(t, s.Set(ctx, addColumns("nodes", "name", "age")))
	got, _, err = TableColumnsSetting(remote, local).Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, TableColumns{"pods": {"name", "age"}, "nodes": {"name", "age"}}, got)

	// Once the ConfigMap is writable the local value is pushed to it.
	forbidden = false
	_, _, err = s.Get(ctx)
	require.NoError(t, err)
	raw, _, err := remote.Get(ctx, ColumnManagementConfigMapKey)
	require.NoError(t, err)
	assert.JSONEq(t, `{"pods":["name","age"],"nodes":["name","age"]}`, raw)

	// With nothing pending the ConfigMap wins again.
	seed(t, remote, ColumnManagementConfigMapKey, `{"pods":["name"]}`)
	got, _, err = s.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, TableColumns{"pods": {"name"}}, got)
}

func TestSetting_RemoteOnlyErrors(t *testing.T) {
	ctx := context.Background()
	s := RefreshIntervalSetting(brokenBackend{}, nil)

	_, _, err := s.Get(ctx)
	assert.ErrorIs(t, err, errUnavailable)

	err = s.Set(ctx, func(string) string { return "1m" })
	assert.ErrorIs(t, err, errUnavailable)
}

func TestSetting_NoBackends(t *testing.T) {
	s := RefreshIntervalSetting(nil, nil)

	_, found, err := s.Get(context.Background())
	require.NoError(t, err)
	assert.False(t, found)

	err = s.Set(context.Background(), func(string) string { return "1m" })
	assert.ErrorIs(t, err, ErrNoBackend)
}

func TestSetting_DecodeError(t *testing.T) {
	ctx := context.Background()
	remote := NewMemoryBackend()
	seed(t, remote, ColumnManagementConfigMapKey, `not json`)
	s := TableColumnsSetting(remote, nil)

	_, found, err := s.Get(ctx)
	assert.Error(t, err)
	assert.False(t, found)

	// A corrupt value is never overwritten blindly.
	err = s.Set(ctx, addColumns("pods", "name"))
	assert.Error(t, err)
}

func TestSetting_NotFound(t *testing.T) {
	got, found, err := TableColumnsSetting(NewMemoryBackend(), NewMemoryBackend()).Get(context.Background())
	require.NoError(t, err)
	assert.False(t, found)
	assert.Nil(t, got)
}

func seed(t *testing.T, b Backend, key, value string) {
	t.Helper()
	require.NoError(t, b.Update(context.Background(), key, func(string, bool) (string, error) {
		return value, nil
	}))
}
