package levels

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNames(t *testing.T) {
	assert.Equal(t, []string{"01", "02"}, Names())
}

func TestRead(t *testing.T) {
	data, err := Read(Default)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"location": 18, "tunnels": [9, 17, 19]`)

	_, err = Read("99")
	assert.Error(t, err)
}
