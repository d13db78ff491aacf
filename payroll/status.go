package payroll

import "strings"

// transitions lists every allowed (from, action) pair.
var transitions = map[Status]map[Action]Status{
	StatusPending: {
		ActionApprove: StatusApproved,
		ActionReject:  StatusRejected,
	},
	StatusApproved: {
		ActionMarkPaid: StatusPaid,
	},
}

// Next returns the status reached by applying action to from.
func Next(key Key, from Status, action Action) (Status, error) {
	if from == "" {
		from = StatusPending
	}
	to, ok := transitions[from][action]
	if !ok {
		return from, &TransitionError{Key: key, From: from, Action: action}
	}
	return to, nil
}

// Apply validates and applies an action to a status entry. Rejection
// requires a non-blank reason. The returned entry is a copy.
func Apply(entry StatusEntry, action Action, actorID, reason string) (StatusEntry, error) {
	to, err := Next(entry.Key, entry.Status, action)
	if err != nil {
		return entry, err
	}
	reason = strings.TrimSpace(reason)
	if action == ActionReject && reason == "" {
		return entry, ErrReasonRequired
	}
	entry.Status = to
	entry.ActorID = actorID
	entry.Reason = reason
	return entry, nil
}

// IsFinal reports whether no further action is possible from s.
func (s Status) IsFinal() bool {
	return len(transitions[s]) == 0
}
