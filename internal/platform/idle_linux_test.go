package platform

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseIdleMillis(t *testing.T) {
	idle, err := parseIdleMillis("1500\n")
	require.NoError(t, err)
	assert.Equal(t, 1500*time.Millisecond, idle)

	idle, err = parseIdleMillis("-3")
	require.NoError(t, err)
	assert.Zero(t, idle)

	_, err = parseIdleMillis("soon")
	assert.Error(t, err)
}
