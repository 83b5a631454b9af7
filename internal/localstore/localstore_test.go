package localstore_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kittipatv/shopdesk/internal/company"
	"github.com/kittipatv/shopdesk/internal/localstore"
)

func TestStore_EndpointURL(t *testing.T) {
	store, err := localstore.New(t.TempDir())
	require.NoError(t, err)

	assert.Empty(t, store.EndpointURL(), "fresh store has no endpoint")

	require.NoError(t, store.SaveEndpointURL("  https://script.example.com/exec  "))
	assert.Equal(t, "https://script.example.com/exec", store.EndpointURL(), "url is trimmed")

	require.NoError(t, store.SaveEndpointURL(""))
	assert.Empty(t, store.EndpointURL())
}

func TestStore_Profile(t *testing.T) {
	dir := t.TempDir()

	store, err := localstore.New(dir)
	require.NoError(t, err)

	_, err = store.Profile()
	assert.ErrorIs(t, err, localstore.ErrNotFound)

	saved := company.Default()
	saved.Name = "ร้านช่างดี เซอร์วิส"
	require.NoError(t, store.SaveProfile(saved))

	// Reopen to prove it survives a restart.
	reopened, err := localstore.New(dir)
	require.NoError(t, err)

	got, err := reopened.Profile()
	require.NoError(t, err)
	assert.Equal(t, saved, *got)
}

func TestStore_Session(t *testing.T) {
	store, err := localstore.New(t.TempDir())
	require.NoError(t, err)

	assert.Empty(t, store.SessionToken())

	require.NoError(t, store.SaveSessionToken("abc.def.ghi"))
	assert.Equal(t, "abc.def.ghi", store.SessionToken())

	require.NoError(t, store.ClearSession())
	assert.Empty(t, store.SessionToken())

	// Clearing an already-clean session is not an error.
	assert.NoError(t, store.ClearSession())
}
