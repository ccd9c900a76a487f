package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestMalformedCapabilitiesAreLogged(t *testing.T) {
	f := newFixture(t)
	core, logs := observer.New(zap.WarnLevel)
	catalog := NewCatalog(f.db, nil, zap.New(core), Options{MaxDepth: 1})

	s := f.store("s")
	broken := f.app("broken", s.ID)
	f.app("fine", s.ID)
	require.NoError(t, f.db.Exec("UPDATE apps SET capabilities = ? WHERE id = ?", `{"tools": [`, broken.ID).Error)

	view, err := catalog.GetApp(f.ctx, AppLookup{ID: broken.ID}, Caller{})
	require.NoError(t, err)
	assert.Empty(t, view.Capabilities.Tools)

	entries := logs.FilterMessage("malformed app capabilities").All()
	require.NotEmpty(t, entries)
	for _, e := range entries {
		assert.Equal(t, broken.ID, e.ContextMap()["appId"])
		assert.Equal(t, "catalog", e.LoggerName)
	}

	before := len(entries)
	page, err := catalog.ListApps(f.ctx, AppFilter{StoreID: s.ID}, Caller{}, 1, 10)
	require.NoError(t, err)
	assert.Len(t, page.Items, 2)
	assert.Greater(t, logs.FilterMessage("malformed app capabilities").Len(), before)
}

func TestWellFormedCapabilitiesAreQuiet(t *testing.T) {
	f := newFixture(t)
	core, logs := observer.New(zap.WarnLevel)
	catalog := NewCatalog(f.db, nil, zap.New(core), Options{})

	s := f.store("s")
	app := f.app("plain", s.ID)

	_, err := catalog.GetApp(f.ctx, AppLookup{ID: app.ID}, Caller{})
	require.NoError(t, err)
	assert.Zero(t, logs.FilterMessage("malformed app capabilities").Len())
}
