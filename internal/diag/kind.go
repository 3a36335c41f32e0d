package diag

// Kind classifies a diagnostic.
type Kind uint8

const (
	// KindStatus is for transient progress or informational messages.
	KindStatus Kind = iota
	// KindWarning is for recoverable conditions worth surfacing.
	KindWarning
	// KindError is for recoverable failures; only errors are stored.
	KindError
	// KindFatal is for unrecoverable failures that end the process.
	KindFatal
)

func (k Kind) String() string {
	switch k {
	case KindStatus:
		return "STATUS"
	case KindWarning:
		return "WARNING"
	case KindError:
		return "ERROR"
	case KindFatal:
		return "FATAL"
	}
	return "UNKNOWN"
}
