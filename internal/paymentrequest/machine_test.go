package paymentrequest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNext_LegalTransitions(t *testing.T) {
	tests := []struct {
		name  string
		from  Status
		event Event
		role  Role
		want  Status
	}{
		{"payer accepts", StatusSent, EventAccept, RolePayer, StatusAccepted},
		{"payer rejects", StatusSent, EventReject, RolePayer, StatusRejected},
		{"payee cancels", StatusSent, EventCancel, RolePayee, StatusCancelled},
		{"payer marks paid", StatusAccepted, EventMarkPaid, RolePayer, StatusCompleted},
		{"payer disputes", StatusCompleted, EventDispute, RolePayer, StatusDisputed},
		{"payee disputes", StatusCompleted, EventDispute, RolePayee, StatusDisputed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Next(tt.from, tt.event, tt.role)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNext_IllegalTransitions(t *testing.T) {
	tests := []struct {
		name  string
		from  Status
		event Event
		role  Role
	}{
		{"accept twice", StatusAccepted, EventAccept, RolePayer},
		{"mark paid before accept", StatusSent, EventMarkPaid, RolePayer},
		{"reject after accept", StatusAccepted, EventReject, RolePayer},
		{"cancel after accept", StatusAccepted, EventCancel, RolePayee},
		{"dispute before completion", StatusAccepted, EventDispute, RolePayer},
		{"dispute from sent", StatusSent, EventDispute, RolePayee},
		{"anything from rejected", StatusRejected, EventAccept, RolePayer},
		{"anything from cancelled", StatusCancelled, EventCancel, RolePayee},
		{"anything from disputed", StatusDisputed, EventDispute, RolePayer},
		{"mark paid after completion", StatusCompleted, EventMarkPaid, RolePayer},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Next(tt.from, tt.event, tt.role)
			assert.ErrorIs(t, err, ErrIllegalTransition)
		})
	}
}

func TestNext_WrongRoleIsUnauthorizedEverywhere(t *testing.T) {
	allStatuses := []Status{
		StatusSent, StatusAccepted, StatusCompleted,
		StatusRejected, StatusCancelled, StatusDisputed,
	}

	// The payee can never accept, reject, or mark paid, no matter the state.
	// The role check wins even where the transition itself would be illegal.
	for _, from := range allStatuses {
		for _, event := range []Event{EventAccept, EventReject, EventMarkPaid} {
			_, err := Next(from, event, RolePayee)
			assert.ErrorIs(t, err, ErrUnauthorized, "payee %s from %s", event, from)
		}

		_, err := Next(from, EventCancel, RolePayer)
		assert.ErrorIs(t, err, ErrUnauthorized, "payer cancel from %s", from)
	}
}

func TestNext_NonParticipantIsUnauthorized(t *testing.T) {
	events := []Event{EventAccept, EventReject, EventCancel, EventMarkPaid, EventDispute}

	for _, event := range events {
		_, err := Next(StatusSent, event, RoleNone)
		assert.ErrorIs(t, err, ErrUnauthorized, "outsider %s", event)
	}
}

func TestNext_FullLifecycle(t *testing.T) {
	status := StatusSent

	status, err := Next(status, EventAccept, RolePayer)
	require.NoError(t, err)
	require.Equal(t, StatusAccepted, status)

	status, err = Next(status, EventMarkPaid, RolePayer)
	require.NoError(t, err)
	require.Equal(t, StatusCompleted, status)

	status, err = Next(status, EventDispute, RolePayee)
	require.NoError(t, err)
	require.Equal(t, StatusDisputed, status)

	_, err = Next(status, EventDispute, RolePayee)
	assert.ErrorIs(t, err, ErrIllegalTransition)
}

func TestTerminal(t *testing.T) {
	assert.False(t, StatusSent.Terminal())
	assert.False(t, StatusAccepted.Terminal())
	assert.False(t, StatusCompleted.Terminal(), "completed still admits dispute")
	assert.True(t, StatusRejected.Terminal())
	assert.True(t, StatusCancelled.Terminal())
	assert.True(t, StatusDisputed.Terminal())
}

func TestParseStatus(t *testing.T) {
	tests := []struct {
		in      string
		want    Status
		wantErr bool
	}{
		{"SENT", StatusSent, false},
		{"PENDING", StatusSent, false},
		{"pending", StatusSent, false},
		{" sent ", StatusSent, false},
		{"ACCEPTED", StatusAccepted, false},
		{"completed", StatusCompleted, false},
		{"REJECTED", StatusRejected, false},
		{"CANCELLED", StatusCancelled, false},
		{"DISPUTED", StatusDisputed, false},
		{"PAID", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseStatus(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRoleOf(t *testing.T) {
	pr := &PaymentRequest{PayerID: 10, PayeeID: 20}

	assert.Equal(t, RolePayer, pr.RoleOf(10))
	assert.Equal(t, RolePayee, pr.RoleOf(20))
	assert.Equal(t, RoleNone, pr.RoleOf(30))
}
