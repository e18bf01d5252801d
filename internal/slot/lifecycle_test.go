package slot

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"slot-swapper-api/internal/apperr"
	"slot-swapper-api/internal/model"
)

func TestNextAllowedEdges(t *testing.T) {
	tests := []struct {
		from model.EventStatus
		on   Trigger
		want model.EventStatus
	}{
		{model.StatusBusy, MarkSwappable, model.StatusSwappable},
		{model.StatusSwappable, MarkBusy, model.StatusBusy},
		{model.StatusSwappable, RequestCreated, model.StatusSwapPending},
		{model.StatusSwapPending, RequestRejected, model.StatusSwappable},
		{model.StatusSwapPending, RequestAccepted, model.StatusBusy},
	}
	for _, tt := range tests {
		t.Run(string(tt.from)+"/"+tt.on.String(), func(t *testing.T) {
			got, err := Next(tt.from, tt.on)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNextRejectsEverythingElse(t *testing.T) {
	statuses := []model.EventStatus{model.StatusBusy, model.StatusSwappable, model.StatusSwapPending}
	triggers := []Trigger{MarkSwappable, MarkBusy, RequestCreated, RequestRejected, RequestAccepted}

	for _, from := range statuses {
		for _, on := range triggers {
			if _, ok := transitions[edge{from, on}]; ok {
				continue
			}
			_, err := Next(from, on)
			assert.True(t, apperr.HasCode(err, apperr.InvalidState), "%s/%s should be rejected", from, on)
		}
	}
}

func TestPendingNeverReachableFromBusy(t *testing.T) {
	for _, on := range []Trigger{MarkSwappable, MarkBusy, RequestCreated, RequestRejected, RequestAccepted} {
		got, err := Next(model.StatusBusy, on)
		if err == nil {
			assert.NotEqual(t, model.StatusSwapPending, got)
		}
	}
}

func TestOwnerTarget(t *testing.T) {
	tests := []struct {
		name     string
		from     model.EventStatus
		want     model.EventStatus
		expected model.EventStatus
		code     apperr.Code
	}{
		{"busy to swappable", model.StatusBusy, model.StatusSwappable, model.StatusSwappable, ""},
		{"swappable to busy", model.StatusSwappable, model.StatusBusy, model.StatusBusy, ""},
		{"busy no-op", model.StatusBusy, model.StatusBusy, model.StatusBusy, ""},
		{"ask for pending", model.StatusSwappable, model.StatusSwapPending, "", apperr.InvalidOperation},
		{"pending to busy", model.StatusSwapPending, model.StatusBusy, "", apperr.InvalidState},
		{"pending to swappable", model.StatusSwapPending, model.StatusSwappable, "", apperr.InvalidState},
		{"garbage", model.StatusBusy, "FREE", "", apperr.InvalidArgument},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := OwnerTarget(tt.from, tt.want)
			if tt.code != "" {
				require.Error(t, err)
				assert.Equal(t, tt.code, apperr.CodeOf(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}
