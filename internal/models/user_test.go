package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoginLockoutAfterRepeatedFailures(t *testing.T) {
	u := &User{}

	// Four failures in a row do not lock the account yet.
	for i := 0; i < 4; i++ {
		u.RecordFailedLogin()
		require.False(t, u.IsLocked())
	}

	// The fifth one does, for fifteen minutes.
	u.RecordFailedLogin()
	require.True(t, u.IsLocked())
	require.NotNil(t, u.LockedUntil)
	require.WithinDuration(t, time.Now().UTC().Add(15*time.Minute), *u.LockedUntil, time.Minute)

	// A successful login clears the counter and the lock.
	u.RecordLogin()
	require.False(t, u.IsLocked())
	require.Zero(t, u.FailedLoginAttempts)
	require.Nil(t, u.LockedUntil)
	require.NotNil(t, u.LastLoginAt)
}

func TestExpiredLockoutNoLongerBlocks(t *testing.T) {
	past := time.Now().UTC().Add(-time.Minute)
	u := &User{FailedLoginAttempts: 5, LockedUntil: &past}
	require.False(t, u.IsLocked())
}
