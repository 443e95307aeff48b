package reconcile

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"boxtribute/internal/gateway"
)

type item struct {
	key      string
	eligible bool
}

func itemKey(i item) string { return i.key }

func op(execute func(ctx context.Context, keys []string) (*CallResult, error)) Op[item] {
	return Op[item]{
		Key:      itemKey,
		Eligible: func(i item) bool { return i.eligible },
		Execute:  execute,
	}
}

func TestRun_AllSucceed(t *testing.T) {
	items := []item{{"a", true}, {"b", true}, {"c", true}}

	res := Run(context.Background(), items, op(func(ctx context.Context, keys []string) (*CallResult, error) {
		return &CallResult{SucceededKeys: keys}, nil
	}))

	assert.Equal(t, OutcomeSuccess, res.Outcome)
	assert.Equal(t, []string{"a", "b", "c"}, res.Succeeded)
	assert.Empty(t, res.Failed)
	assert.Empty(t, res.Invalid)
	assert.Empty(t, res.Ineligible)
}

func TestRun_EmptyEligibleShortCircuits(t *testing.T) {
	items := []item{{"a", false}, {"b", false}}
	called := false

	res := Run(context.Background(), items, op(func(ctx context.Context, keys []string) (*CallResult, error) {
		called = true
		return &CallResult{}, nil
	}))

	assert.False(t, called, "no remote call may be made for an empty eligible set")
	assert.Equal(t, OutcomeBadUserInput, res.Outcome)
	assert.Len(t, res.Ineligible, 2)
}

func TestRun_EmptyInputShortCircuits(t *testing.T) {
	res := Run(context.Background(), []item{}, op(func(ctx context.Context, keys []string) (*CallResult, error) {
		t.Fatal("unexpected remote call")
		return nil, nil
	}))

	assert.Equal(t, OutcomeBadUserInput, res.Outcome)
}

func TestRun_PartitionIsComplete(t *testing.T) {
	items := []item{{"a", true}, {"b", false}, {"c", true}, {"d", true}}

	res := Run(context.Background(), items, op(func(ctx context.Context, keys []string) (*CallResult, error) {
		return &CallResult{SucceededKeys: []string{"a"}, InvalidKeys: []string{"c"}}, nil
	}))

	// Every eligible key lands in exactly one of the three buckets.
	assert.Equal(t, OutcomePartialFail, res.Outcome)
	assert.Equal(t, []string{"a"}, res.Succeeded)
	assert.Equal(t, []string{"c"}, res.Invalid)
	assert.Equal(t, []string{"d"}, res.Failed)
	assert.Len(t, res.Ineligible, 1)
	assert.Equal(t, len(res.Eligible), len(res.Succeeded)+len(res.Failed)+len(res.Invalid))
}

func TestRun_NoneSucceed(t *testing.T) {
	items := []item{{"a", true}, {"b", true}}

	res := Run(context.Background(), items, op(func(ctx context.Context, keys []string) (*CallResult, error) {
		return &CallResult{}, nil
	}))

	assert.Equal(t, OutcomeFail, res.Outcome)
	assert.Equal(t, []string{"a", "b"}, res.Failed)
}

func TestRun_PostconditionOverridesInvalidListing(t *testing.T) {
	items := []item{{"a", true}}

	res := Run(context.Background(), items, op(func(ctx context.Context, keys []string) (*CallResult, error) {
		return &CallResult{SucceededKeys: []string{"a"}, InvalidKeys: []string{"a"}}, nil
	}))

	assert.Equal(t, OutcomeSuccess, res.Outcome)
	assert.Equal(t, []string{"a"}, res.Succeeded)
	assert.Empty(t, res.Invalid)
}

func TestRun_ErrorClassification(t *testing.T) {
	cases := []struct {
		name     string
		err      error
		expected Outcome
	}{
		{"permission", gateway.NewError(gateway.CodeInsufficientPermission, "forbidden"), OutcomeNotAuthorized},
		{"base", gateway.NewError(gateway.CodeUnauthorizedForBase, "wrong base"), OutcomeUnauthorizedForBase},
		{"not found", gateway.NewError(gateway.CodeResourceDoesNotExist, "gone"), OutcomeResourceNotFound},
		{"deleted location", gateway.NewError(gateway.CodeDeletedLocation, "deleted"), OutcomeDeletedTarget},
		{"deleted tag", gateway.NewError(gateway.CodeDeletedTag, "deleted"), OutcomeDeletedTarget},
		{"deleted box", gateway.NewError(gateway.CodeDeletedBox, "deleted"), OutcomeDeletedTarget},
		{"shipment state", gateway.NewError(gateway.CodeInvalidShipmentState, "not preparing"), OutcomeWrongTargetState},
		{"network code", gateway.NewError(gateway.CodeNetwork, "timeout"), OutcomeNetworkFail},
		{"unknown structured", gateway.NewError("SOMETHING_ELSE", "odd"), OutcomeFail},
		{"plain error", errors.New("connection refused"), OutcomeNetworkFail},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			res := Run(context.Background(), []item{{"a", true}}, op(func(ctx context.Context, keys []string) (*CallResult, error) {
				return nil, tc.err
			}))

			assert.Equal(t, tc.expected, res.Outcome)
			assert.Error(t, res.Err)
			assert.Empty(t, res.Succeeded)
		})
	}
}

func TestRun_Idempotent(t *testing.T) {
	items := []item{{"a", true}, {"b", false}, {"c", true}}
	execute := func(ctx context.Context, keys []string) (*CallResult, error) {
		return &CallResult{SucceededKeys: []string{"a"}, InvalidKeys: []string{"c"}}, nil
	}

	first := Run(context.Background(), items, op(execute))
	second := Run(context.Background(), items, op(execute))

	assert.Equal(t, first.Outcome, second.Outcome)
	assert.Equal(t, first.Succeeded, second.Succeeded)
	assert.Equal(t, first.Failed, second.Failed)
	assert.Equal(t, first.Invalid, second.Invalid)
}
