package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParticipationStatusCanTransitionTo(t *testing.T) {
	allowed := map[ParticipationStatus][]ParticipationStatus{
		ParticipationRegistered: {ParticipationConfirmed, ParticipationCancelled},
		ParticipationConfirmed:  {ParticipationAttended},
		ParticipationAttended:   {},
		ParticipationCancelled:  {},
	}

	statuses := []ParticipationStatus{
		ParticipationRegistered, ParticipationConfirmed,
		ParticipationAttended, ParticipationCancelled,
	}

	for from, nexts := range allowed {
		ok := make(map[ParticipationStatus]bool, len(nexts))
		for _, next := range nexts {
			ok[next] = true
		}
		for _, to := range statuses {
			assert.Equal(t, ok[to], from.CanTransitionTo(to), "%s -> %s", from, to)
		}
	}
}

func TestConfirmedParticipationCannotBeCancelled(t *testing.T) {
	assert.False(t, ParticipationConfirmed.CanTransitionTo(ParticipationCancelled))
}

func TestParticipationStatusActive(t *testing.T) {
	assert.True(t, ParticipationRegistered.Active())
	assert.True(t, ParticipationConfirmed.Active())
	assert.False(t, ParticipationAttended.Active())
	assert.False(t, ParticipationCancelled.Active())
}
