package screens

import "github.com/renato0307/kview/internal/columns"

// Screen configuration constants
const (
	// DynamicColumnMinWidth is the width assumed for, and the minimum given
	// to, columns without a fixed width.
	DynamicColumnMinWidth = 20

	// NamespaceColumnID is hidden while a single namespace is listed.
	NamespaceColumnID = columns.NamespaceColumnID
)
