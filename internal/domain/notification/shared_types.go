// internal/domain/notification/shared_types.go
package notification

// Outcome is the result of a cycle as seen by the error policy.
type Outcome string

const (
	OutcomeSucceeded  Outcome = "SUCCEEDED"
	OutcomeFailed     Outcome = "FAILED"     // error forwarded to the chat
	OutcomeSuppressed Outcome = "SUPPRESSED" // same error as last time, logged only
	OutcomeUnsendable Outcome = "UNSENDABLE" // chat unreachable, logged only
)
