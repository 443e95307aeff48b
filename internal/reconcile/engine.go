package reconcile

import (
	"context"
	"errors"

	"boxtribute/internal/gateway"
)

// Outcome classifies one engine run. Exactly one outcome is produced per
// run, in the precedence order implemented by Run.
type Outcome string

const (
	OutcomeSuccess             Outcome = "Success"
	OutcomePartialFail         Outcome = "PartialFail"
	OutcomeFail                Outcome = "Fail"
	OutcomeBadUserInput        Outcome = "BadUserInput"
	OutcomeNotAuthorized       Outcome = "NotAuthorized"
	OutcomeUnauthorizedForBase Outcome = "UnauthorizedForBase"
	OutcomeWrongTargetState    Outcome = "WrongTargetState"
	OutcomeResourceNotFound    Outcome = "ResourceNotFound"
	OutcomeDeletedTarget       Outcome = "DeletedTarget"
	OutcomeNetworkFail         Outcome = "NetworkFail"
)

// CallResult is what an operation's Execute reports back after the single
// remote call: which eligible keys satisfy the postcondition on the returned
// objects, and which keys the server rejected outright.
type CallResult struct {
	SucceededKeys []string
	InvalidKeys   []string
}

// Op describes one batch operation to the engine. Execute must submit
// exactly one remote call for the given keys and derive SucceededKeys purely
// from the response, never from the request.
type Op[T any] struct {
	Key      func(T) string
	Eligible func(T) bool
	Execute  func(ctx context.Context, keys []string) (*CallResult, error)
}

// Result is the classified outcome of one engine run. Succeeded, Failed and
// Invalid are disjoint subsets of the eligible keys, in request order.
type Result[T any] struct {
	Outcome    Outcome
	Eligible   []T
	Ineligible []T
	Succeeded  []string
	Failed     []string
	Invalid    []string
	Err        error
}

// EligibleKeys returns the natural keys of the eligible items, in request
// order.
func (r *Result[T]) EligibleKeys(key func(T) string) []string {
	keys := make([]string, 0, len(r.Eligible))
	for _, item := range r.Eligible {
		keys = append(keys, key(item))
	}
	return keys
}

// Run executes the batch reconciliation algorithm: partition the request by
// eligibility, short-circuit when nothing is eligible, submit one remote
// call, diff the response against the request and classify. The engine holds
// no state between runs; an unchanged request against an unchanged server
// reproduces the same result.
func Run[T any](ctx context.Context, items []T, op Op[T]) *Result[T] {
	res := &Result[T]{
		Eligible:   make([]T, 0, len(items)),
		Ineligible: make([]T, 0),
		Succeeded:  []string{},
		Failed:     []string{},
		Invalid:    []string{},
	}

	for _, item := range items {
		if op.Eligible(item) {
			res.Eligible = append(res.Eligible, item)
		} else {
			res.Ineligible = append(res.Ineligible, item)
		}
	}

	if len(res.Eligible) == 0 {
		res.Outcome = OutcomeBadUserInput
		return res
	}

	keys := res.EligibleKeys(op.Key)
	call, err := op.Execute(ctx, keys)
	if err != nil {
		res.Err = err
		res.Outcome = classifyError(err)
		return res
	}

	succeeded := toSet(call.SucceededKeys)
	invalid := toSet(call.InvalidKeys)

	// Precedence: a key listed as invalid by the server is reported as
	// invalid, not failed. Postcondition evidence on a returned object
	// still wins over an invalid listing.
	for _, key := range keys {
		switch {
		case succeeded[key]:
			res.Succeeded = append(res.Succeeded, key)
		case invalid[key]:
			res.Invalid = append(res.Invalid, key)
		default:
			res.Failed = append(res.Failed, key)
		}
	}

	switch {
	case len(res.Succeeded) == 0:
		res.Outcome = OutcomeFail
	case len(res.Succeeded) == len(res.Eligible):
		res.Outcome = OutcomeSuccess
	default:
		res.Outcome = OutcomePartialFail
	}
	return res
}

// classifyError maps the gateway's typed error union onto an outcome.
// Unrecognized structured errors classify as Fail; anything without a
// structured payload is a transport failure.
func classifyError(err error) Outcome {
	var gwErr *gateway.Error
	if !errors.As(err, &gwErr) {
		return OutcomeNetworkFail
	}
	switch gwErr.Code {
	case gateway.CodeInsufficientPermission:
		return OutcomeNotAuthorized
	case gateway.CodeUnauthorizedForBase:
		return OutcomeUnauthorizedForBase
	case gateway.CodeResourceDoesNotExist:
		return OutcomeResourceNotFound
	case gateway.CodeDeletedLocation, gateway.CodeDeletedTag, gateway.CodeDeletedBox:
		return OutcomeDeletedTarget
	case gateway.CodeInvalidShipmentState:
		return OutcomeWrongTargetState
	case gateway.CodeNetwork:
		return OutcomeNetworkFail
	default:
		return OutcomeFail
	}
}

func toSet(keys []string) map[string]bool {
	set := make(map[string]bool, len(keys))
	for _, k := range keys {
		set[k] = true
	}
	return set
}
