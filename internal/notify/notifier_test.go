package notify

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"boxtribute/internal/reconcile"
)

func TestBatchSuccess(t *testing.T) {
	n := BatchSuccess(3, "Box", "assigned to the shipment")
	assert.Equal(t, LevelSuccess, n.Level)
	assert.Equal(t, "3 Boxes were successfully assigned to the shipment.", n.Message)

	n = BatchSuccess(1, "Box", "deleted")
	assert.Equal(t, "1 Box was successfully deleted.", n.Message)

	n = BatchSuccess(2, "Tag", "deleted")
	assert.Equal(t, "2 Tags were successfully deleted.", n.Message)
}

func TestBatchPartial(t *testing.T) {
	n := BatchPartial(2, 5, "Box", "moved to the location")
	assert.Equal(t, LevelError, n.Level)
	assert.Equal(t, "2 of 5 Boxes could not be moved to the location.", n.Message)

	n = BatchPartial(1, 3, "Box", "deleted")
	assert.Equal(t, "1 of 3 Boxes could not be deleted.", n.Message)

	n = BatchPartial(1, 1, "Box", "deleted")
	assert.Equal(t, "1 of 1 Box could not be deleted.", n.Message)
}

func TestForOutcome(t *testing.T) {
	messages := map[reconcile.Outcome]string{
		reconcile.OutcomeNotAuthorized: "You don't have the permission to do this.",
	}

	n := ForOutcome(reconcile.OutcomeSuccess, 4, 0, 4, "Box", "deleted", messages)
	assert.Equal(t, LevelSuccess, n.Level)
	assert.Equal(t, "4 Boxes were successfully deleted.", n.Message)

	n = ForOutcome(reconcile.OutcomePartialFail, 2, 2, 4, "Box", "deleted", messages)
	assert.Equal(t, LevelError, n.Level)
	assert.Equal(t, "2 of 4 Boxes could not be deleted.", n.Message)

	n = ForOutcome(reconcile.OutcomeNotAuthorized, 0, 0, 4, "Box", "deleted", messages)
	assert.Equal(t, "You don't have the permission to do this.", n.Message)

	// An outcome without a template falls back to the generic wording.
	n = ForOutcome(reconcile.OutcomeNetworkFail, 0, 0, 4, "Box", "deleted", messages)
	assert.Equal(t, LevelError, n.Level)
	assert.Equal(t, "The Boxes could not be deleted.", n.Message)
}
