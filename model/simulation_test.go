package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaptide/chipstack/errors"
	"github.com/yaptide/chipstack/pkg/stack/job"
	"gopkg.in/mgo.v2/bson"
)

func sampleOutput() job.Output {
	return job.Output{
		Name: "island",
		Files: map[string]string{
			"island_layers.txt": "table",
			"island.json":       "{}",
		},
		LayerNames: []string{"1t1_signal", "vacuum"},
	}
}

func TestInitialSimulation(t *testing.T) {
	sim := InitialSimulation(sampleOutput())

	assert.True(t, sim.ID.Valid())
	assert.Equal(t, "island", sim.Name)
	assert.Equal(t, []File{
		{Name: "island.json", Content: "{}"},
		{Name: "island_layers.txt", Content: "table"},
	}, sim.Files)
	assert.Nil(t, sim.Summary().Files)
	assert.Len(t, sim.Files, 2)
}

func TestMemoryStore(t *testing.T) {
	store := NewMemoryStore()

	older := InitialSimulation(sampleOutput())
	older.Created = time.Now().Add(-time.Hour)
	newer := InitialSimulation(sampleOutput())
	require.NoError(t, store.Insert(older))
	require.NoError(t, store.Insert(newer))

	got, err := store.Get(older.ID)
	require.NoError(t, err)
	assert.Equal(t, older.Files, got.Files)

	list, err := store.List()
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, newer.ID, list[0].ID)
	assert.Nil(t, list[0].Files)

	require.NoError(t, store.Remove(older.ID))
	_, err = store.Get(older.ID)
	assert.Equal(t, errors.ErrNotFound, err)
	assert.Equal(t, errors.ErrNotFound, store.Remove(bson.NewObjectId()))
}
