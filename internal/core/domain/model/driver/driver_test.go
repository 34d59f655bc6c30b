package driver_test

import (
	"testing"

	"freightops/internal/core/domain/model/driver"
	"freightops/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDriver(t *testing.T) {
	t.Run("should create active driver", func(t *testing.T) {
		d, err := driver.NewDriver(kernel.NewUUID(), "  Ayşe Demir ", "+90 555 000 00 00")

		require.NoError(t, err)
		require.NoError(t, d.Validate())
		assert.Equal(t, "Ayşe Demir", d.FullName())
		assert.Equal(t, "+90 555 000 00 00", d.Phone())
		assert.True(t, d.IsActive())
	})

	t.Run("should require full name", func(t *testing.T) {
		_, err := driver.NewDriver(kernel.NewUUID(), " ", "")

		require.ErrorIs(t, err, driver.ErrFullNameIsRequired)
	})
}

func TestRestoreDriver(t *testing.T) {
	for _, status := range []driver.Status{driver.Inactive, driver.Suspended} {
		t.Run(status.String()+" driver is not active", func(t *testing.T) {
			d, err := driver.RestoreDriver(kernel.NewUUID(), "Mehmet Kaya", "", status)

			require.NoError(t, err)
			assert.False(t, d.IsActive())
		})
	}

	t.Run("should reject unknown status", func(t *testing.T) {
		_, err := driver.RestoreDriver(kernel.NewUUID(), "Mehmet Kaya", "", driver.Unknown)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "status is invalid")
	})
}

func TestParseStatus(t *testing.T) {
	s, err := driver.ParseStatus("SUSPENDED")
	require.NoError(t, err)
	assert.Equal(t, driver.Suspended, s)

	_, err = driver.ParseStatus("ON_LEAVE")
	require.Error(t, err)
}
