package service

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContactServiceSubmit(t *testing.T) {
	svc := NewContactService(nil)

	msg, err := svc.Submit(ContactInput{Name: " Rova ", Email: "rova@example.mg", Message: "Best season for whales?"})
	require.NoError(t, err)
	assert.NotEmpty(t, msg.ID)
	assert.Equal(t, "Rova", msg.Name)
	assert.False(t, msg.ReceivedAt.IsZero())

	_, err = svc.Submit(ContactInput{Name: "Second", Email: "second@example.mg", Message: "Hi"})
	require.NoError(t, err)

	recent := svc.Recent(1)
	require.Len(t, recent, 1)
	assert.Equal(t, "Second", recent[0].Name)
	assert.Equal(t, 2, svc.Count())
}

func TestContactServiceValidation(t *testing.T) {
	svc := NewContactService(nil)

	_, err := svc.Submit(ContactInput{Name: "", Email: "not-an-email", Message: "  "})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidContact))

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.True(t, verr.HasField("Name"))
	assert.True(t, verr.HasField("Email"))
	assert.True(t, verr.HasField("Message"))
	assert.Zero(t, svc.Count())
}

func TestContactServiceInboxIsBounded(t *testing.T) {
	svc := NewContactService(nil)
	for i := 0; i < maxInboxMessages+5; i++ {
		_, err := svc.Submit(ContactInput{Name: fmt.Sprintf("n%d", i), Email: "a@b.mg", Message: "m"})
		require.NoError(t, err)
	}
	assert.Equal(t, maxInboxMessages, svc.Count())
	assert.Equal(t, fmt.Sprintf("n%d", maxInboxMessages+4), svc.Recent(1)[0].Name)
}
