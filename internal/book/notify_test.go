package book

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatus(t *testing.T) {
	tests := []struct {
		status Status
		want   string
	}{
		{StatusInfo, "info"},
		{StatusSuccess, "success"},
		{StatusError, "error"},
		{Status(42), ""},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.status.String())
		})
	}
}

func TestNotifications(t *testing.T) {
	t.Run("Queue drains in order", func(t *testing.T) {
		q := &Queue{}
		q.Notify(addedNotification("Casa"))
		q.Notify(notFoundNotification("99999999"))

		notes := q.Drain()

		assert.Len(t, notes, 2)
		assert.Equal(t, StatusSuccess, notes[0].Status)
		assert.Equal(t, StatusError, notes[1].Status)
		assert.Nil(t, q.Drain())
	})

	t.Run("NotifierFunc", func(t *testing.T) {
		var got []Notification
		n := NotifierFunc(func(n Notification) { got = append(got, n) })

		n.Notify(deletedNotification())

		assert.Equal(t, []Notification{deletedNotification()}, got)
	})

	t.Run("String", func(t *testing.T) {
		assert.Equal(t, "Error: Failed to look up CEP", lookupFailedNotification().String())
		assert.Equal(t, `Success: Address "Casa" added`, addedNotification("Casa").String())
		assert.Equal(t, "Success: Address added", addedNotification("").String())
	})

	t.Run("default duration", func(t *testing.T) {
		for _, n := range []Notification{
			addedNotification(""), notFoundNotification(""), lookupFailedNotification(),
			storageFailedNotification(), deletedNotification(), renamedNotification(""),
		} {
			assert.Equal(t, DefaultDuration, n.Duration)
		}
	})
}
