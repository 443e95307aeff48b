package notify

import (
	"fmt"
	"strings"

	"boxtribute/internal/reconcile"
)

// Level distinguishes success toasts from error notifications.
type Level string

const (
	LevelSuccess Level = "success"
	LevelError   Level = "error"
)

// Notification is the single user-facing message a coordinator invocation
// produces. Coordinators that compose several engine runs suppress the
// intermediate notifications and emit only the final one.
type Notification struct {
	Level   Level  `json:"level"`
	Message string `json:"message"`
}

func pluralize(noun string) string {
	if strings.HasSuffix(noun, "x") || strings.HasSuffix(noun, "s") {
		return noun + "es"
	}
	return noun + "s"
}

// BatchSuccess builds the success toast for a completed batch, with correct
// singular/plural wording, e.g.
// "3 Boxes were successfully assigned to the shipment."
func BatchSuccess(count int, noun, verbPhrase string) *Notification {
	subject := fmt.Sprintf("%d %s were", count, pluralize(noun))
	if count == 1 {
		subject = fmt.Sprintf("1 %s was", noun)
	}
	return &Notification{
		Level:   LevelSuccess,
		Message: fmt.Sprintf("%s successfully %s.", subject, verbPhrase),
	}
}

// BatchPartial builds the error notification for a mixed per-item outcome.
// The noun agrees with the batch size, not the failure count.
func BatchPartial(failedCount, totalCount int, noun, verbPhrase string) *Notification {
	subject := pluralize(noun)
	if totalCount == 1 {
		subject = noun
	}
	return &Notification{
		Level:   LevelError,
		Message: fmt.Sprintf("%d of %d %s could not be %s.", failedCount, totalCount, subject, verbPhrase),
	}
}

// Failure builds the error notification for an outcome that affected the
// whole batch.
func Failure(message string) *Notification {
	return &Notification{Level: LevelError, Message: message}
}

// ForOutcome builds the notification for a classified result using the
// operation's own message templates. The messages map covers the
// whole-batch failure outcomes; verbPhrase feeds the success and partial
// templates.
func ForOutcome(outcome reconcile.Outcome, succeededCount, failedCount, eligibleCount int, noun, verbPhrase string, messages map[reconcile.Outcome]string) *Notification {
	switch outcome {
	case reconcile.OutcomeSuccess:
		return BatchSuccess(succeededCount, noun, verbPhrase)
	case reconcile.OutcomePartialFail:
		return BatchPartial(failedCount, eligibleCount, noun, verbPhrase)
	default:
		if msg, ok := messages[outcome]; ok {
			return Failure(msg)
		}
		return Failure(fmt.Sprintf("The %s could not be %s.", pluralize(noun), verbPhrase))
	}
}
