package paymentrequest

import "errors"

// Event is a state-machine trigger on a payment request.
type Event string

const (
	EventAccept   Event = "accept"
	EventReject   Event = "reject"
	EventCancel   Event = "cancel"
	EventMarkPaid Event = "mark-paid"
	EventDispute  Event = "dispute"
)

// Common errors
var (
	// ErrIllegalTransition means the event is not valid from the current
	// status. The request must be left unchanged.
	ErrIllegalTransition = errors.New("illegal payment request transition")

	// ErrUnauthorized means the actor's role may not trigger the event.
	ErrUnauthorized = errors.New("actor is not authorized for this action")
)

// eventActor fixes which role may trigger each event, independent of state.
// The payer responds to a request (accept, reject, mark-paid); the payee may
// withdraw it (cancel); either side may dispute a completed payment.
var eventActor = map[Event]Role{
	EventAccept:   RolePayer,
	EventReject:   RolePayer,
	EventCancel:   RolePayee,
	EventMarkPaid: RolePayer,
	EventDispute:  RoleEither,
}

// transitions is the complete legal transition table. Any (status, event)
// pair absent from it is an illegal transition.
var transitions = map[Status]map[Event]Status{
	StatusSent: {
		EventAccept: StatusAccepted,
		EventReject: StatusRejected,
		EventCancel: StatusCancelled,
	},
	StatusAccepted: {
		EventMarkPaid: StatusCompleted,
	},
	StatusCompleted: {
		EventDispute: StatusDisputed,
	},
}

// Next returns the status that applying event as role yields. Authorization
// is checked before the transition table: an actor who is neither payer nor
// payee, or who holds the wrong role for the event, gets ErrUnauthorized no
// matter the current status. A well-roled actor triggering an event that the
// current status does not admit gets ErrIllegalTransition.
func Next(from Status, event Event, role Role) (Status, error) {
	required, ok := eventActor[event]
	if !ok {
		return "", ErrIllegalTransition
	}
	if role != RolePayer && role != RolePayee {
		return "", ErrUnauthorized
	}
	if required != RoleEither && required != role {
		return "", ErrUnauthorized
	}

	to, ok := transitions[from][event]
	if !ok {
		return "", ErrIllegalTransition
	}
	return to, nil
}
