package k8s

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	corev1 "k8s.io/api/core/v1"
	"k8s.io/apimachinery/pkg/runtime/schema"
)

func TestKinds(t *testing.T) {
	kinds := Kinds()
	require.Len(t, kinds, 14)
	assert.Equal(t, "service", kinds[0].ID)
	assert.Equal(t, "secret", kinds[13].ID)

	ids := map[string]bool{}
	for _, k := range kinds {
		assert.False(t, ids[k.ID], "duplicate id %s", k.ID)
		ids[k.ID] = true
		assert.NotEmpty(t, k.Kind, k.ID)
		assert.NotEmpty(t, k.Label, k.ID)
		assert.NotEmpty(t, k.LabelPlural, k.ID)
		assert.NotEmpty(t, k.Path, k.ID)
	}
}

func TestKinds_ReturnsCopy(t *testing.T) {
	kinds := Kinds()
	kinds[0].ID = "mutated"

	assert.Equal(t, "service", Kinds()[0].ID)
	_, ok := KindByID("mutated")
	assert.False(t, ok)
}

func TestKindByID(t *testing.T) {
	pod, ok := KindByID("pod")
	require.True(t, ok)
	assert.Equal(t, "Pod", pod.Kind)
	assert.Equal(t, "Pods", pod.LabelPlural)

	_, ok = KindByID("widget")
	assert.False(t, ok)
}

func TestKind_GroupVersionResource(t *testing.T) {
	tests := []struct {
		id   string
		want schema.GroupVersionResource
	}{
		{id: "pod", want: schema.GroupVersionResource{Version: "v1", Resource: "pods"}},
		{id: "deployment", want: schema.GroupVersionResource{Group: "extensions", Version: "v1beta1", Resource: "deployments"}},
		{id: "policy", want: schema.GroupVersionResource{Group: "tpm.coreos.com", Version: "v1", Resource: "policies"}},
		{id: "tpm", want: schema.GroupVersionResource{Group: "coreos.com", Version: "v1", Resource: "tpms"}},
	}

	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			kind, ok := KindByID(tt.id)
			require.True(t, ok)
			assert.Equal(t, tt.want, kind.GroupVersionResource())
		})
	}
}

func TestPolicyTables(t *testing.T) {
	tests := []struct {
		name      string
		choices   []Choice
		ids       []string
		defaultID string
	}{
		{
			name:      "pull policies",
			choices:   PullPolicies(),
			ids:       []string{"always", "ifnotpresent", "never"},
			defaultID: "always",
		},
		{
			name:      "restart policies",
			choices:   RestartPolicies(),
			ids:       []string{"Always", "OnFailure", "Never"},
			defaultID: "Always",
		},
		{
			name:    "hook actions",
			choices: HookActions(),
			ids:     []string{"exec", "httpGet", "tcpSocket"},
		},
		{
			name:    "volume sources",
			choices: VolumeSources(),
			ids: []string{"emptyDir", "hostPath", "gitRepo", "nfs", "secret",
				"gcePersistentDisk", "awsElasticBlockStore", "glusterfs", "iscsi"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ids := []string{}
			for i, c := range tt.choices {
				ids = append(ids, c.ID)
				if i > 0 {
					assert.Greater(t, c.Weight, tt.choices[i-1].Weight)
				}
			}
			assert.Equal(t, tt.ids, ids)

			def, ok := DefaultChoice(tt.choices)
			if tt.defaultID == "" {
				assert.False(t, ok)
				return
			}
			require.True(t, ok)
			assert.Equal(t, tt.defaultID, def.ID)
		})
	}
}

func TestPullPolicyValues(t *testing.T) {
	values := []corev1.PullPolicy{}
	for _, c := range PullPolicies() {
		values = append(values, corev1.PullPolicy(c.Value))
	}
	assert.Equal(t, []corev1.PullPolicy{corev1.PullAlways, corev1.PullIfNotPresent, corev1.PullNever}, values)
}

func TestValidResourceLimit(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{in: "100m", want: true},
		{in: "1.5", want: true},
		{in: "512Mi", want: true},
		{in: "2Gi", want: true},
		{in: "1e3", want: true},
		{in: "", want: false},
		{in: "Mi", want: false},
		{in: "ten", want: false},
		{in: "1 Gi", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ValidResourceLimit(tt.in))
		})
	}
}

func TestDefaultNamespace(t *testing.T) {
	assert.Equal(t, "default", DefaultNamespace)
}
