package weave_test

import (
	"testing"

	"github.com/iov-one/solquad"
	"github.com/iov-one/solquad/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticQuery []weave.Model

func (s staticQuery) Query(weave.ReadOnlyKVStore, string, []byte) ([]weave.Model, error) {
	return s, nil
}

func TestParseQueryPath(t *testing.T) {
	cases := map[string]struct {
		path, wantRoute, wantMod string
		wantErr                  *errors.Error
	}{
		"plain":       {path: "/escrows", wantRoute: "/escrows"},
		"prefix":      {path: "/escrows?prefix", wantRoute: "/escrows", wantMod: "prefix"},
		"index":       {path: "/projects/pool?prefix", wantRoute: "/projects/pool", wantMod: "prefix"},
		"empty":       {path: ""},
		"only suffix": {path: "?prefix", wantMod: "prefix"},
		"unknown mod": {path: "/escrows?range", wantErr: errors.ErrInput},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			route, mod, err := weave.ParseQueryPath(tc.path)
			if tc.wantErr != nil {
				assert.True(t, tc.wantErr.Is(err), "%+v", err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.wantRoute, route)
			assert.Equal(t, tc.wantMod, mod)
		})
	}
}

func TestQueryRouter(t *testing.T) {
	r := weave.NewQueryRouter()
	pools := staticQuery{weave.Pair([]byte("k"), []byte("v"))}
	r.RegisterAll(func(qr weave.QueryRouter) {
		qr.Register("/pools", pools)
		qr.Register("/escrows", staticQuery{})
	})

	assert.Equal(t, []string{"/escrows", "/pools"}, r.Routes())

	h, mod, err := r.Resolve("/pools?prefix")
	require.NoError(t, err)
	assert.Equal(t, weave.PrefixQueryMod, mod)
	models, err := h.Query(nil, mod, nil)
	require.NoError(t, err)
	assert.Equal(t, []weave.Model(pools), models)

	_, _, err = r.Resolve("/projects")
	assert.True(t, errors.ErrNotFound.Is(err))
	assert.Contains(t, err.Error(), "/escrows, /pools")

	_, _, err = r.Resolve("/pools?range")
	assert.True(t, errors.ErrInput.Is(err))

	assert.Panics(t, func() { r.Register("/pools", staticQuery{}) })
	assert.Panics(t, func() { r.Register("pools", staticQuery{}) })
	assert.Panics(t, func() { r.Register("/pools?prefix", staticQuery{}) })
}
