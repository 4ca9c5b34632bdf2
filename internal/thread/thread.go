// Package thread implements the naming convention that maps an owner and a
// conversation purpose to a canonical thread identifier, and back.
//
// Identifiers follow the layout used since the first release:
//
//	user_<ownerId>_coach          general coaching conversation
//	user_<ownerId>_task_<taskId>  conversation about one task
//
// Parsing never fails; identifiers from legacy formats degrade to
// KindUnknown so callers can still display and store them.
package thread

import "strings"

// Kind classifies a thread's purpose.
type Kind int

const (
	KindUnknown Kind = iota
	KindCoach
	KindTask
)

// Purpose is a conversation purpose: general coaching or a specific task.
type Purpose struct {
	kind   Kind
	taskID string
}

// Coach returns the general-coaching purpose.
func Coach() Purpose { return Purpose{kind: KindCoach} }

// ForTask returns the purpose for the given task.
func ForTask(taskID string) Purpose { return Purpose{kind: KindTask, taskID: taskID} }

// Kind returns the purpose kind.
func (p Purpose) Kind() Kind { return p.kind }

// TaskID returns the task id for KindTask purposes, "" otherwise.
func (p Purpose) TaskID() string { return p.taskID }

const (
	prefix      = "user_"
	coachSuffix = "_coach"
	taskMarker  = "_task_"
)

// ID derives the canonical thread identifier for (ownerID, purpose).
// The derivation is deterministic: the same inputs always yield the same id.
func ID(ownerID string, p Purpose) string {
	switch p.kind {
	case KindTask:
		return prefix + ownerID + taskMarker + p.taskID
	default:
		return prefix + ownerID + coachSuffix
	}
}

// Parsed is the result of decoding a thread identifier.
type Parsed struct {
	ThreadID string
	OwnerID  string
	Purpose  Purpose
}

// Known reports whether the identifier matched the naming convention.
func (p Parsed) Known() bool { return p.Purpose.kind != KindUnknown }

// Parse decodes a thread identifier. It never fails: identifiers that do not
// match the convention come back with an unknown purpose and no owner.
func Parse(threadID string) Parsed {
	out := Parsed{ThreadID: threadID}
	if !strings.HasPrefix(threadID, prefix) {
		return out
	}
	rest := threadID[len(prefix):]

	// The task marker wins over the coach suffix so owner ids containing
	// "_coach" still parse. Split on the last marker occurrence because
	// owner ids may themselves contain "_task_".
	if i := strings.LastIndex(rest, taskMarker); i > 0 && i+len(taskMarker) < len(rest) {
		out.OwnerID = rest[:i]
		out.Purpose = ForTask(rest[i+len(taskMarker):])
		return out
	}
	if strings.HasSuffix(rest, coachSuffix) && len(rest) > len(coachSuffix) {
		out.OwnerID = strings.TrimSuffix(rest, coachSuffix)
		out.Purpose = Coach()
		return out
	}
	return out
}

// Label renders a human-readable name for a thread identifier.
// Task threads render as "Task <taskId>", coach threads as "Life Coach",
// and unrecognized identifiers as the raw id.
func Label(threadID string) string {
	p := Parse(threadID)
	switch p.Purpose.kind {
	case KindTask:
		return "Task " + p.Purpose.taskID
	case KindCoach:
		return "Life Coach"
	default:
		return threadID
	}
}
