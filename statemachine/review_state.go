package statemachine

import (
	"errors"

	"restaurant-claims-api/models"
)

// Transition defines a valid review-status change and who can perform it
type Transition struct {
	From  models.ReviewStatus
	To    models.ReviewStatus
	Actor string // "reviewer" today; kept explicit so future actors slot in
}

const ActorReviewer = "reviewer"

// validTransitions is the authoritative lifecycle definition: a pending
// claim or registration is resolved by a reviewer, and nothing else moves.
var validTransitions = []Transition{
	{From: models.StatusUnclaimed, To: models.StatusApproved, Actor: ActorReviewer},
	{From: models.StatusUnclaimed, To: models.StatusRejected, Actor: ActorReviewer},
	{From: models.StatusUnregistered, To: models.StatusApproved, Actor: ActorReviewer},
	{From: models.StatusUnregistered, To: models.StatusRejected, Actor: ActorReviewer},
}

type transitionKey struct {
	From  models.ReviewStatus
	To    models.ReviewStatus
	Actor string
}

// Build a lookup map for O(1) validation
var transitionMap = func() map[transitionKey]bool {
	m := make(map[transitionKey]bool)
	for _, t := range validTransitions {
		m[transitionKey{t.From, t.To, t.Actor}] = true
	}
	return m
}()

// ValidTransitionsFrom returns all valid next states from a given status
func ValidTransitionsFrom(status models.ReviewStatus) []models.ReviewStatus {
	var nexts []models.ReviewStatus
	seen := map[models.ReviewStatus]bool{}
	for _, t := range validTransitions {
		if t.From == status && !seen[t.To] {
			nexts = append(nexts, t.To)
			seen[t.To] = true
		}
	}
	return nexts
}

// CanTransition checks if a given actor can move a request between statuses
func CanTransition(from, to models.ReviewStatus, actor string) error {
	key := transitionKey{From: from, To: to, Actor: actor}
	if transitionMap[key] {
		return nil
	}
	return errors.New(
		"invalid transition: " + string(from) + " to " + string(to) +
			" is not allowed for actor '" + actor + "'. " +
			"Valid transitions from " + string(from) + " are: " + describeValidFrom(from),
	)
}

func describeValidFrom(status models.ReviewStatus) string {
	nexts := ValidTransitionsFrom(status)
	if len(nexts) == 0 {
		return "none (terminal state)"
	}
	result := ""
	for i, s := range nexts {
		if i > 0 {
			result += ", "
		}
		result += string(s)
	}
	return result
}

// GetAllTransitions returns the full state machine for documentation
func GetAllTransitions() []Transition {
	return validTransitions
}
