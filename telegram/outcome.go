package telegram

/* Outcome normalizes every possible result of a Bot API call into one value
 * Created per dispatch attempt, consumed immediately by the caller, never retained
 */

// OutcomeKind classifies the result of a dispatch attempt
type OutcomeKind int

const (
	// Sent means Telegram accepted the call (2xx)
	Sent OutcomeKind = iota + 1
	// Rejected means Telegram answered with an API error (non-2xx),
	// typically a malformed entity or a bad chat id
	Rejected
	// Unreachable means the call never completed (network error or timeout)
	Unreachable
)

// String returns the string representation of the outcome kind
func (k OutcomeKind) String() string {
	switch k {
	case Sent:
		return "sent"
	case Rejected:
		return "rejected"
	case Unreachable:
		return "unreachable"
	default:
		return "unknown"
	}
}

// TransportKind distinguishes the two flavors of an Unreachable outcome
type TransportKind int

const (
	Network TransportKind = iota + 1
	Timeout
)

// String returns the string representation of the transport kind
func (t TransportKind) String() string {
	switch t {
	case Network:
		return "network"
	case Timeout:
		return "timeout"
	default:
		return "unknown"
	}
}

// Outcome is the normalized result of a single Bot API call
type Outcome struct {
	Kind OutcomeKind

	// StatusCode and Body carry Telegram's raw answer for Sent and Rejected
	StatusCode int
	Body       string

	// Transport and Err are set for Unreachable outcomes
	Transport TransportKind
	Err       error
}

// Delivered reports whether Telegram accepted the message
func (o Outcome) Delivered() bool {
	return o.Kind == Sent
}

// SentOutcome builds an Outcome for an accepted call
func SentOutcome(statusCode int, body string) Outcome {
	return Outcome{Kind: Sent, StatusCode: statusCode, Body: body}
}

// RejectedOutcome builds an Outcome for a call Telegram refused
func RejectedOutcome(statusCode int, body string) Outcome {
	return Outcome{Kind: Rejected, StatusCode: statusCode, Body: body}
}

// UnreachableOutcome builds an Outcome for a call that never completed
func UnreachableOutcome(transport TransportKind, err error) Outcome {
	return Outcome{Kind: Unreachable, Transport: transport, Err: err}
}
