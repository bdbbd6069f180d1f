package paymentrequest

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProject_LabelTable(t *testing.T) {
	tests := []struct {
		status    Status
		payeeView string
		payerView string
	}{
		{StatusSent, "Sent", "Waiting for your response"},
		{StatusAccepted, "They accepted", "You accepted"},
		{StatusCompleted, "They paid you", "You paid"},
		{StatusRejected, "They declined", "You declined"},
		{StatusCancelled, "You cancelled", "They cancelled"},
		{StatusDisputed, "Under dispute", "Under dispute"},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			assert.Equal(t, tt.payeeView, Project(tt.status, true))
			assert.Equal(t, tt.payerView, Project(tt.status, false))
		})
	}
}

func TestProject_NeverEmpty(t *testing.T) {
	statuses := []Status{
		StatusSent, StatusAccepted, StatusCompleted,
		StatusRejected, StatusCancelled, StatusDisputed,
		Status("SOMETHING_NEW"), Status(""),
	}

	for _, status := range statuses {
		for _, viewerIsPayee := range []bool{true, false} {
			assert.NotEmpty(t, Project(status, viewerIsPayee),
				"status %q viewerIsPayee=%v", status, viewerIsPayee)
		}
	}
}

func TestProject_UnknownStatusHumanized(t *testing.T) {
	assert.Equal(t, "Something_new", Project(Status("SOMETHING_NEW"), true))
	assert.Equal(t, "Unknown", Project(Status(""), false))
}
