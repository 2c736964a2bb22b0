package mongo

import (
	"pediacenter/internal/bookings/store"
	"pediacenter/internal/catalog"
	"pediacenter/pkg/lock"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

func TestCollections_CoverEveryStoreCollection(t *testing.T) {
	defs := Collections()

	for _, name := range []string{store.CollectionName, catalog.CollectionName, lock.CollectionName} {
		def, ok := defs[name]
		require.True(t, ok, name)
		assert.NotEmpty(t, def.Indexes, name)
		assert.Contains(t, def.Validator, "$jsonSchema", name)
	}
}

func TestBookingLocks_ExpireThroughTTLIndex(t *testing.T) {
	idx := Collections()[lock.CollectionName].Indexes
	require.Len(t, idx, 1)

	assert.Equal(t, bson.D{{Key: "expires_at", Value: 1}}, idx[0].Keys)
	require.NotNil(t, idx[0].Options)
	require.NotNil(t, idx[0].Options.ExpireAfterSeconds)
	assert.Equal(t, int32(0), *idx[0].Options.ExpireAfterSeconds)
}

func TestBookings_SeqIsUnique(t *testing.T) {
	idx := Collections()[store.CollectionName].Indexes
	require.NotEmpty(t, idx)

	assert.Equal(t, bson.D{{Key: "seq", Value: 1}}, idx[0].Keys)
	require.NotNil(t, idx[0].Options.Unique)
	assert.True(t, *idx[0].Options.Unique)
}
