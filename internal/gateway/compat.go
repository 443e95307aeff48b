package gateway

import "strings"

// classifyMessage maps a bare GraphQL error message onto an error code for
// servers that omit the __typename discriminator. Substring matching is a
// last-resort compatibility path; the classification core never sees raw
// message text.
func classifyMessage(message string) (ErrorCode, bool) {
	msg := strings.ToLower(message)
	switch {
	case strings.Contains(msg, "permission"):
		return CodeInsufficientPermission, true
	case strings.Contains(msg, "unauthorized for base"), strings.Contains(msg, "different base"):
		return CodeUnauthorizedForBase, true
	case strings.Contains(msg, "does not exist"), strings.Contains(msg, "not found"):
		return CodeResourceDoesNotExist, true
	case strings.Contains(msg, "deleted location"):
		return CodeDeletedLocation, true
	case strings.Contains(msg, "deleted tag"):
		return CodeDeletedTag, true
	case strings.Contains(msg, "deleted box"):
		return CodeDeletedBox, true
	case strings.Contains(msg, "shipment state"), strings.Contains(msg, "not in preparing"):
		return CodeInvalidShipmentState, true
	}
	return "", false
}
