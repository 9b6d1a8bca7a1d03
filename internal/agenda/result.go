package agenda

import "errors"

// ErrSlotTaken is returned by the store adapter when the authoritative event
// set already holds an active event on the candidate slot.
var ErrSlotTaken = errors.New("an active event already occupies this slot")

// ResultCode classifies how a mutation attempt settled.
type ResultCode string

const (
	// ResultCommitted: remote persistence succeeded, local state refreshed.
	ResultCommitted ResultCode = "committed"
	// ResultRejectedValidation: a required field is missing or malformed;
	// nothing was mutated, no remote call was made.
	ResultRejectedValidation ResultCode = "rejected_validation"
	// ResultRejectedConflict: the local conflict check caught the collision
	// before any store write.
	ResultRejectedConflict ResultCode = "rejected_conflict"
	// ResultRolledBackConflict: the store reported the collision at commit
	// time; the optimistic change was reverted.
	ResultRolledBackConflict ResultCode = "rolled_back_conflict"
	// ResultRolledBackTransport: the store was unreachable or failed; the
	// optimistic change was reverted.
	ResultRolledBackTransport ResultCode = "rolled_back_transport"
	// ResultDeclined: the operator declined the confirmation prompt; no-op.
	ResultDeclined ResultCode = "declined"
)

// Result is the structured outcome of one mutation attempt. The engine never
// raises user-facing notifications itself; callers decide how to surface the
// message.
type Result struct {
	Code    ResultCode `json:"code"`
	Message string     `json:"message"`
	Event   *Event     `json:"event,omitempty"`
}

// OK reports whether the mutation was committed.
func (r Result) OK() bool {
	return r.Code == ResultCommitted
}

func committed(msg string, ev *Event) Result {
	return Result{Code: ResultCommitted, Message: msg, Event: ev}
}

func rejectedValidation(msg string) Result {
	return Result{Code: ResultRejectedValidation, Message: msg}
}

func rejectedConflict() Result {
	return Result{Code: ResultRejectedConflict, Message: "an active event is already scheduled for this date and time"}
}

func rolledBackConflict() Result {
	return Result{Code: ResultRolledBackConflict, Message: "the slot was taken while saving; your change was reverted"}
}

func rolledBackTransport() Result {
	return Result{Code: ResultRolledBackTransport, Message: "could not save the event; your change was reverted"}
}

func declined() Result {
	return Result{Code: ResultDeclined, Message: "operation cancelled"}
}
