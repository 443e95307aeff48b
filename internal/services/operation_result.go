package services

import (
	"boxtribute/internal/gateway"
	"boxtribute/internal/notify"
	"boxtribute/internal/reconcile"
)

// OperationResult is the classified, user-reportable outcome of one batch
// coordinator invocation. Succeeded, Failed and Invalid partition the
// eligible identifiers; Ineligible holds the identifiers filtered out before
// the remote call (including ones that could not be resolved at all).
type OperationResult struct {
	Outcome        reconcile.Outcome    `json:"outcome"`
	RequestedCount int                  `json:"requestedCount"`
	EligibleCount  int                  `json:"eligibleCount"`
	Succeeded      []string             `json:"succeeded"`
	Failed         []string             `json:"failed"`
	Invalid        []string             `json:"invalid"`
	Ineligible     []string             `json:"ineligible"`
	TagErrors      []gateway.TagError   `json:"tagErrors,omitempty"`
	Notification   *notify.Notification `json:"notification,omitempty"`
}

func operationResult[T any](res *reconcile.Result[T], key func(T) string, requestedCount int, unresolved []string) *OperationResult {
	out := &OperationResult{
		Outcome:        res.Outcome,
		RequestedCount: requestedCount,
		EligibleCount:  len(res.Eligible),
		Succeeded:      res.Succeeded,
		Failed:         res.Failed,
		Invalid:        res.Invalid,
		Ineligible:     append([]string{}, unresolved...),
	}
	for _, item := range res.Ineligible {
		out.Ineligible = append(out.Ineligible, key(item))
	}
	return out
}

// buildNotification attaches the single user notification for this result
// using the operation's message templates.
func (r *OperationResult) buildNotification(noun, verbPhrase string, messages map[reconcile.Outcome]string) {
	r.Notification = notify.ForOutcome(
		r.Outcome,
		len(r.Succeeded),
		len(r.Failed)+len(r.Invalid),
		r.EligibleCount,
		noun, verbPhrase, messages)
}
