package log

// Syslog priority codes (RFC 5424 severity).
const (
	PriorityEmergency = 0
	PriorityAlert     = 1
	PriorityCritical  = 2
	PriorityError     = 3
	PriorityWarning   = 4
	PriorityNotice    = 5
	PriorityInfo      = 6
	PriorityDebug     = 7
)

// ToPriority returns the syslog priority written in front of a log line.
//
// Debug is reported as PriorityInfo: the journal on the target systems keeps
// nothing below info, so a separate debug code would never be stored.
// Levels without a mapping (the two sentinels, out-of-range values) also
// report PriorityInfo.
func ToPriority(level Level) int {
	switch level {
	case LevelCritical:
		return PriorityCritical
	case LevelError:
		return PriorityError
	case LevelWarning:
		return PriorityWarning
	case LevelInfo, LevelDebug:
		return PriorityInfo
	default:
		return PriorityInfo
	}
}
