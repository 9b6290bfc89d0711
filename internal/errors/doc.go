// Package errors defines sentinel errors for shroud operations.
//
// Errors are grouped by the phase of the session they belong to: pre-flight
// validation, encryption-backend invocation, and the active session itself.
// Callers wrap these sentinels with fmt.Errorf("%w: ...") to attach backend
// diagnostics, and match them with errors.Is.
//
// The grouping mirrors the escalation policy: pre-flight errors abort before
// any plaintext exists, backend errors carry the backend's diagnostic text
// verbatim, and session errors drive the supervisor into its terminating
// sequence.
package errors
