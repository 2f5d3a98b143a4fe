// Package messages defines message handling conventions for kview: how each
// layer reports errors, successes and informational notes.
//
// # Message Handling Patterns by Layer
//
// ## Data Layer (internal/k8s, internal/settings)
//
// Return standard Go errors. Repositories and settings backends are pure data
// access and do not depend on UI concerns.
//
// Pattern:
//
//	pods, err := r.clientset.CoreV1().Pods(namespace).List(ctx, metav1.ListOptions{})
//	if err != nil {
//	    return nil, fmt.Errorf("failed to list pods: %w", err)
//	}
//
// Wrap with %w so callers can still match sentinel errors such as
// settings.ErrNoBackend or columns.ErrFinished with errors.Is.
//
// Helper available: messages.WrapError(err, "context").
//
// ## Modal and Screen Layer (internal/modals, internal/screens)
//
// Return a tea.Cmd that produces a StatusMsg. Slow work such as writing user
// settings runs inside the command, never in Update.
//
// Pattern:
//
//	return func() tea.Msg {
//	    if _, err := ctrl.Commit(ctx); err != nil {
//	        return types.ErrorStatusMsg(fmt.Sprintf("Failed to save columns: %v", err))
//	    }
//	    return types.SuccessMsg("Saved Pod columns")
//	}
//
// ## App Layer (internal/app)
//
// Display status messages on the message line. It clears after
// components.MessageDisplayDuration.
//
// ## Settings Fallback
//
// When the user-settings ConfigMap cannot be read or written, log a warning
// and continue with the local settings file. Column choices and the refresh
// interval keep working on clusters without RBAC for the settings namespace.
//
// # Error Message Guidelines
//
// Be specific ("Failed to save Pod columns", not "Operation failed") and keep
// stack traces out of the UI. Technical detail belongs in the log file.
package messages
