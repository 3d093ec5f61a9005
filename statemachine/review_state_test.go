package statemachine_test

import (
	"testing"

	"restaurant-claims-api/models"
	"restaurant-claims-api/statemachine"

	"github.com/stretchr/testify/assert"
)

func TestCanTransition(t *testing.T) {
	tests := []struct {
		name    string
		from    models.ReviewStatus
		to      models.ReviewStatus
		actor   string
		allowed bool
	}{
		{name: "claim_approved", from: models.StatusUnclaimed, to: models.StatusApproved, actor: statemachine.ActorReviewer, allowed: true},
		{name: "claim_rejected", from: models.StatusUnclaimed, to: models.StatusRejected, actor: statemachine.ActorReviewer, allowed: true},
		{name: "registration_approved", from: models.StatusUnregistered, to: models.StatusApproved, actor: statemachine.ActorReviewer, allowed: true},
		{name: "registration_rejected", from: models.StatusUnregistered, to: models.StatusRejected, actor: statemachine.ActorReviewer, allowed: true},
		{name: "approved_is_terminal", from: models.StatusApproved, to: models.StatusRejected, actor: statemachine.ActorReviewer, allowed: false},
		{name: "rejected_is_terminal", from: models.StatusRejected, to: models.StatusApproved, actor: statemachine.ActorReviewer, allowed: false},
		{name: "pending_kinds_do_not_cross", from: models.StatusUnclaimed, to: models.StatusUnregistered, actor: statemachine.ActorReviewer, allowed: false},
		{name: "unknown_actor", from: models.StatusUnclaimed, to: models.StatusApproved, actor: "customer", allowed: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := statemachine.CanTransition(tt.from, tt.to, tt.actor)
			if tt.allowed {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestValidTransitionsFrom(t *testing.T) {
	assert.ElementsMatch(t,
		[]models.ReviewStatus{models.StatusApproved, models.StatusRejected},
		statemachine.ValidTransitionsFrom(models.StatusUnclaimed))
	assert.Empty(t, statemachine.ValidTransitionsFrom(models.StatusApproved))
	assert.Empty(t, statemachine.ValidTransitionsFrom(models.StatusRejected))
}

func TestTerminal(t *testing.T) {
	assert.True(t, models.StatusApproved.Terminal())
	assert.True(t, models.StatusRejected.Terminal())
	assert.False(t, models.StatusUnclaimed.Terminal())
	assert.False(t, models.StatusUnregistered.Terminal())
}
