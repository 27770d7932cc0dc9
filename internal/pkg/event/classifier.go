package event

import (
	"strings"
)

// Action is the classified semantics of an inbound engagement event.
type Action int

const (
	// ActionAdd appends a new record to the engagement log.
	ActionAdd Action = iota
	// ActionRemove erases every matching record, keeping no history.
	ActionRemove
	// ActionReply appends a record linked to a parent comment.
	ActionReply
)

func (a Action) String() string {
	switch a {
	case ActionRemove:
		return "REMOVE"
	case ActionReply:
		return "REPLY"
	default:
		return "ADD"
	}
}

// Classification carries the parsed action plus the verb delivered in
// webhook payloads. DELETED and REMOVED are distinguished for the verb only;
// both erase records.
type Classification struct {
	Action Action
	// Verb is the normalized action type stored with ADD records, or the
	// removal verb (REMOVED / DELETED) for removals.
	Verb string
}

// ParseActionType classifies a free-text action_type field. An absent value
// defaults to an addition with verb ADDED. Unrecognized strings classify as
// additions and keep their uppercased form, matching the log's
// record-arbitrary-toggles behavior.
func ParseActionType(raw string) Classification {
	normalized := strings.ToUpper(strings.TrimSpace(raw))
	if normalized == "" {
		return Classification{Action: ActionAdd, Verb: "ADDED"}
	}

	if strings.Contains(normalized, "DELETE") {
		return Classification{Action: ActionRemove, Verb: "DELETED"}
	}
	if strings.Contains(normalized, "REMOVE") {
		return Classification{Action: ActionRemove, Verb: "REMOVED"}
	}

	return Classification{Action: ActionAdd, Verb: normalized}
}

// IsRemoval reports whether a stored action_type string has removal
// semantics. Used when deriving current reaction state from the newest
// surviving record.
func IsRemoval(actionType string) bool {
	return ParseActionType(actionType).Action == ActionRemove
}
