package paymentrequest

import "strings"

// Project maps a status to the label shown to one side of the request. The
// same status reads differently for payer and payee ("They paid you" versus
// "You paid"), and this function is the only place that mapping lives: every
// caller that renders a status must go through it rather than re-deriving the
// wording per call site.
func Project(status Status, viewerIsPayee bool) string {
	switch status {
	case StatusSent:
		if viewerIsPayee {
			return "Sent"
		}
		return "Waiting for your response"
	case StatusAccepted:
		if viewerIsPayee {
			return "They accepted"
		}
		return "You accepted"
	case StatusCompleted:
		if viewerIsPayee {
			return "They paid you"
		}
		return "You paid"
	case StatusRejected:
		if viewerIsPayee {
			return "They declined"
		}
		return "You declined"
	case StatusCancelled:
		if viewerIsPayee {
			return "You cancelled"
		}
		return "They cancelled"
	case StatusDisputed:
		return "Under dispute"
	default:
		// Unknown statuses cannot reach here through ParseStatus; fall back
		// to a readable form so no caller ever renders an empty label.
		s := strings.ToLower(string(status))
		if s == "" {
			return "Unknown"
		}
		return strings.ToUpper(s[:1]) + s[1:]
	}
}
