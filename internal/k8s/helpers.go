package k8s

import (
	"sort"
)

// sortByAge sorts resources by creation time (newest first), then by name
func sortByAge(items []any) {
	sort.SliceStable(items, func(i, j int) bool {
		ri, okI := items[i].(Resource)
		rj, okJ := items[j].(Resource)
		if !okI || !okJ {
			return okI
		}

		createdI, createdJ := ri.GetCreatedAt(), rj.GetCreatedAt()
		if !createdI.Equal(createdJ) {
			return createdI.After(createdJ) // Newer first
		}

		// Fall back to namespace/name for a stable order
		if ri.GetNamespace() != rj.GetNamespace() {
			return ri.GetNamespace() < rj.GetNamespace()
		}
		return ri.GetName() < rj.GetName()
	})
}

// toAny converts a typed slice for the Repository interface
func toAny[T any](items []T) []any {
	result := make([]any, len(items))
	for i, item := range items {
		result[i] = item
	}
	return result
}

// filterNamespace drops resources outside namespace. An empty namespace
// keeps everything.
func filterNamespace(items []any, namespace string) []any {
	if namespace == "" {
		return items
	}
	result := []any{}
	for _, item := range items {
		if r, ok := item.(Resource); ok && r.GetNamespace() == namespace {
			result = append(result, item)
		}
	}
	return result
}
