package log

import "strconv"

// Level is the ordered severity scale used both as the static level of a
// call site and as the runtime threshold of a logger. Levels compare by
// ordinal position: a call at level L is emitted when L <= threshold.
type Level int8

const (
	// LevelDisabled suppresses every call. It is a threshold sentinel only.
	LevelDisabled Level = iota
	LevelCritical
	LevelError
	LevelWarning
	LevelInfo
	LevelDebug
	// LevelEnabled lets every call through. It is a threshold sentinel only.
	LevelEnabled
)

// levelNames is indexed by Level. Its order must match the constants above.
var levelNames = [...]string{
	"DISABLED",
	"CRITICAL",
	"ERROR",
	"WARNING",
	"INFO",
	"DEBUG",
	"ENABLED",
}

// ParseLevel maps a configured level name onto a Level.
// The match is exact and case-sensitive; names are not trimmed. Any name
// outside the table yields LevelDisabled, so a bad configuration silences
// logging instead of guessing a level.
func ParseLevel(name string) Level {
	for i, candidate := range levelNames {
		if candidate == name {
			return Level(i)
		}
	}
	return LevelDisabled
}

// LevelNames returns the canonical level names in ordinal order.
func LevelNames() []string {
	names := make([]string, len(levelNames))
	copy(names, levelNames[:])
	return names
}

// String returns the canonical upper-case name of the level.
func (l Level) String() string {
	if l.valid() {
		return levelNames[l]
	}
	return "Level(" + strconv.Itoa(int(l)) + ")"
}

// Loggable reports whether l can be used as the level of a call site.
// LevelDisabled and LevelEnabled only make sense as thresholds.
func (l Level) Loggable() bool {
	return l >= LevelCritical && l <= LevelDebug
}

func (l Level) valid() bool {
	return l >= LevelDisabled && l <= LevelEnabled
}
