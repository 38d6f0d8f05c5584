package domain

// Severity indicates how a notice should be surfaced to the user.
type Severity string

const (
	// SeverityInfo is an informational notice.
	SeverityInfo Severity = "info"
	// SeverityWarning indicates something went wrong but the operation's
	// primary effect stands.
	SeverityWarning Severity = "warning"
	// SeverityError indicates a user-visible failure, typically configuration.
	SeverityError Severity = "error"
)

// Notice is a user-visible message raised by an operation. Notices are
// distinct from returned errors: they never abort the caller.
type Notice struct {
	Severity Severity `json:"severity"`
	Message  string   `json:"message"`
	Setting  string   `json:"setting,omitempty"`
	Path     string   `json:"path,omitempty"`
}

// Notifier receives user-visible notices.
type Notifier interface {
	Notify(n Notice)
}

// NotifierFunc adapts a function to the Notifier interface.
type NotifierFunc func(n Notice)

// Notify calls f(n).
func (f NotifierFunc) Notify(n Notice) { f(n) }

// Discard is a Notifier that drops every notice.
var Discard Notifier = NotifierFunc(func(Notice) {})

// NoticeRecorder collects notices in memory.
type NoticeRecorder struct {
	Notices []Notice
}

// Notify appends n.
func (r *NoticeRecorder) Notify(n Notice) {
	r.Notices = append(r.Notices, n)
}

// Count returns the number of recorded notices with the given severity.
func (r *NoticeRecorder) Count(s Severity) int {
	n := 0
	for _, notice := range r.Notices {
		if notice.Severity == s {
			n++
		}
	}
	return n
}
