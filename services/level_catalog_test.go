package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const ringLevel = `[
	{"location": 0, "tunnels": [1, 5]},
	{"location": 1, "tunnels": [0, 2]},
	{"location": 2, "tunnels": [1, 3]},
	{"location": 3, "tunnels": [2, 4]},
	{"location": 4, "tunnels": [3, 5]},
	{"location": 5, "tunnels": [4, 0]}
]`

const splitLevel = `[
	{"location": 0, "tunnels": [1, 2]},
	{"location": 1, "tunnels": [0, 2]},
	{"location": 2, "tunnels": [0, 1]},
	{"location": 3, "tunnels": [4, 5]},
	{"location": 4, "tunnels": [3, 5]},
	{"location": 5, "tunnels": [3, 4]}
]`

func TestLevelCatalog_BuiltIn(t *testing.T) {
	catalog := NewLevelCatalog(nil)

	caves, err := catalog.Get("01")
	require.NoError(t, err)
	assert.Len(t, caves, 20)

	caves, err = catalog.Get("02")
	require.NoError(t, err)
	assert.Len(t, caves, 16)

	assert.Equal(t, []string{"01", "02"}, catalog.Names())
}

func TestLevelCatalog_Unknown(t *testing.T) {
	_, err := NewLevelCatalog(nil).Get("nope")
	assert.ErrorIs(t, err, ErrLevelNotFound)

	_, err = NewLevelCatalog(newStore(t)).Get("nope")
	assert.ErrorIs(t, err, ErrLevelNotFound)
}

func TestLevelCatalog_SaveAndLoad(t *testing.T) {
	store := newStore(t)
	catalog := NewLevelCatalog(store)
	require.NoError(t, catalog.Save("ring", []byte(ringLevel)))

	caves, err := catalog.Get("ring")
	require.NoError(t, err)
	assert.Len(t, caves, 6)

	// a fresh catalog finds it in storage
	caves, err = NewLevelCatalog(store).Get("ring")
	require.NoError(t, err)
	require.Len(t, caves, 6)
	assert.Equal(t, []int{1, 5}, caves[0].Tunnels)
}

func TestLevelCatalog_SaveRejects(t *testing.T) {
	catalog := NewLevelCatalog(newStore(t))

	err := catalog.Save("split", []byte(splitLevel))
	assert.ErrorIs(t, err, ErrLevelUnplayable)

	err = catalog.Save("tiny", []byte(`[{"location": 0, "tunnels": [1]}, {"location": 1, "tunnels": [0]}]`))
	assert.ErrorIs(t, err, ErrLevelUnplayable)

	err = catalog.Save("broken", []byte(`[{"location": 0, "tunnels": [7]}]`))
	assert.Error(t, err)

	assert.Error(t, catalog.Save("01", []byte(ringLevel)), "built-in levels cannot be replaced")
	assert.Error(t, NewLevelCatalog(nil).Save("ring", []byte(ringLevel)))

	_, err = catalog.Get("split")
	assert.ErrorIs(t, err, ErrLevelNotFound)
}
