package x_test

import (
	"context"
	"testing"

	"github.com/iov-one/solquad"
	"github.com/iov-one/solquad/weavetest"
	"github.com/iov-one/solquad/x"
)

func TestAuth(t *testing.T) {
	a := weavetest.NewCondition()
	b := weavetest.NewCondition()
	c := weavetest.NewCondition()

	ctx := context.Background()
	ctxAuth := &weavetest.CtxAuth{Key: "authin"}
	ctx = ctxAuth.SetConditions(ctx, a, b)
	static := &weavetest.Auth{Signer: b, Signers: []weave.Condition{c}}

	cases := map[string]struct {
		auth    x.Authenticator
		main    weave.Condition
		all     []weave.Condition
		hasAll  []weave.Address
		missing []weave.Address
	}{
		"context only": {
			auth:    ctxAuth,
			main:    a,
			all:     []weave.Condition{a, b},
			hasAll:  []weave.Address{a.Address(), b.Address()},
			missing: []weave.Address{a.Address(), c.Address()},
		},
		"chain removes duplicates": {
			auth:    x.ChainAuth(ctxAuth, static),
			main:    a,
			all:     []weave.Condition{a, b, c},
			hasAll:  []weave.Address{a.Address(), b.Address(), c.Address()},
			missing: []weave.Address{weavetest.NewCondition().Address()},
		},
		"empty chain": {
			auth:    x.ChainAuth(),
			missing: []weave.Address{a.Address()},
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			got := tc.auth.GetConditions(ctx)
			if len(got) != len(tc.all) {
				t.Fatalf("want %d conditions, got %d", len(tc.all), len(got))
			}
			for i := range got {
				if !got[i].Equals(tc.all[i]) {
					t.Fatalf("condition %d: want %s, got %s", i, tc.all[i], got[i])
				}
			}
			if main := x.MainSigner(ctx, tc.auth); !main.Equals(tc.main) {
				t.Fatalf("want main signer %s, got %s", tc.main, main)
			}
			if len(x.GetAddresses(ctx, tc.auth)) != len(tc.all) {
				t.Fatal("addresses do not match conditions")
			}
			if !x.HasAllAddresses(ctx, tc.auth, tc.hasAll) {
				t.Fatal("expected all addresses to be present")
			}
			if x.HasAllAddresses(ctx, tc.auth, tc.missing) {
				t.Fatal("expected an address to be missing")
			}
		})
	}
}
