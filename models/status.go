package models

// OrderStatus is the closed set of lifecycle states an order can be in.
// Status is only ever changed through the transition table below; free-form
// assignment is not allowed anywhere in the codebase.
type OrderStatus string

const (
	StatusUnderReview     OrderStatus = "under_review"
	StatusNegotiation     OrderStatus = "negotiation"
	StatusAwaitingPayment OrderStatus = "awaiting_payment"
	StatusAccepted        OrderStatus = "accepted"
	StatusInProduction    OrderStatus = "in_production"
	StatusCompleted       OrderStatus = "completed"
	StatusRejected        OrderStatus = "rejected"
)

// statusTransitions is the full directed graph of legal moves. Terminal
// states have no outgoing edges.
var statusTransitions = map[OrderStatus][]OrderStatus{
	StatusUnderReview:     {StatusNegotiation, StatusAwaitingPayment, StatusRejected},
	StatusNegotiation:     {StatusNegotiation, StatusAwaitingPayment, StatusRejected},
	StatusAwaitingPayment: {StatusAccepted},
	StatusAccepted:        {StatusInProduction},
	StatusInProduction:    {StatusCompleted},
	StatusCompleted:       {},
	StatusRejected:        {},
}

// IsValid reports whether s is one of the known order statuses.
func (s OrderStatus) IsValid() bool {
	_, ok := statusTransitions[s]
	return ok
}

// IsTerminal reports whether s is an absorbing state.
func (s OrderStatus) IsTerminal() bool {
	return s == StatusCompleted || s == StatusRejected
}

// CanTransitionTo reports whether moving from s to next is in the
// transition table.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	for _, allowed := range statusTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// HasAgreedPrice reports whether an order in state s must carry an agreed
// price. AgreedPrice is set exactly once, on the transition into
// awaiting_payment, and never cleared afterwards.
func (s OrderStatus) HasAgreedPrice() bool {
	switch s {
	case StatusAwaitingPayment, StatusAccepted, StatusInProduction, StatusCompleted:
		return true
	}
	return false
}
