package weave_test

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/iov-one/solquad"
	"github.com/iov-one/solquad/errors"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddressPrinting(t *testing.T) {
	Convey("test hexademical address printing", t, func() {
		addr := weave.NewCondition("qfund", "escrow", []byte("admin")).Address()

		So(addr.String(), ShouldEqual, fmt.Sprintf("%X", []byte(addr)))
		So(weave.Address(nil).String(), ShouldEqual, "(nil)")
	})

	Convey("test hexademical condition printing", t, func() {
		cond := weave.NewCondition("sigs", "ed25519", []byte("pubkey"))

		So(cond.String(), ShouldEqual, fmt.Sprintf("sigs/ed25519/%X", []byte("pubkey")))
		So(cond.String(), ShouldNotEqual, fmt.Sprintf("%X", []byte(cond)))
	})
}

func TestConditionParse(t *testing.T) {
	Convey("a condition is split into its sections", t, func() {
		cond := weave.NewCondition("qfund", "pool", []byte("with/slash\n"))
		ext, typ, data, err := cond.Parse()
		So(err, ShouldBeNil)
		So(ext, ShouldEqual, "qfund")
		So(typ, ShouldEqual, "pool")
		So(data, ShouldResemble, []byte("with/slash\n"))
		So(cond.Validate(), ShouldBeNil)
	})

	Convey("malformed conditions are rejected", t, func() {
		for _, raw := range []string{"", "qfund/pool", "q/pool/data", "qfund/pool/"} {
			cond := weave.Condition(raw)
			_, _, _, err := cond.Parse()
			So(errors.ErrInput.Is(err), ShouldBeTrue)
			So(errors.ErrInput.Is(cond.Validate()), ShouldBeTrue)
		}
	})
}

func TestConditionJSON(t *testing.T) {
	cond := weave.NewCondition("sigs", "ed25519", []byte{0xde, 0xad, 0xbe, 0xef})

	raw, err := json.Marshal(cond)
	require.NoError(t, err)
	assert.Equal(t, `"sigs/ed25519/DEADBEEF"`, string(raw))

	var got weave.Condition
	require.NoError(t, json.Unmarshal(raw, &got))
	assert.True(t, cond.Equals(got))

	err = json.Unmarshal([]byte(`"sigs/DEADBEEF"`), &got)
	assert.True(t, errors.ErrInput.Is(err))
}

func TestAddressUnmarshalJSON(t *testing.T) {
	addr := weave.NewCondition("qfund", "project", []byte("garden")).Address()
	bech, err := addr.Bech32String("qf")
	require.NoError(t, err)

	cases := map[string]struct {
		json     string
		wantErr  *errors.Error
		wantAddr weave.Address
	}{
		"default decoding": {
			json:     fmt.Sprintf(`"%s"`, addr),
			wantAddr: addr,
		},
		"hex decoding": {
			json:     fmt.Sprintf(`"hex:%s"`, addr),
			wantAddr: addr,
		},
		"cond decoding": {
			json:     `"cond:foo/bar/636f6e646974696f6e64617461"`,
			wantAddr: weave.NewCondition("foo", "bar", []byte("conditiondata")).Address(),
		},
		"bech32 decoding": {
			json:     fmt.Sprintf(`"bech32:%s"`, bech),
			wantAddr: addr,
		},
		"invalid condition format": {
			json:    `"cond:foo/636f6e646974696f6e64617461"`,
			wantErr: errors.ErrInput,
		},
		"invalid condition data": {
			json:    `"cond:foo/bar/zzzzz"`,
			wantErr: errors.ErrInput,
		},
		"invalid hex": {
			json:    `"zzzz"`,
			wantErr: errors.ErrInput,
		},
		"invalid length": {
			json:    `"6865782d61646472"`,
			wantErr: errors.ErrInput,
		},
		"unknown format": {
			json:    `"foobar:xxx"`,
			wantErr: errors.ErrType,
		},
		"zero address": {
			json:     `""`,
			wantAddr: nil,
		},
		"zero cond address": {
			json:     `"cond:"`,
			wantAddr: nil,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			var a weave.Address
			err := json.Unmarshal([]byte(tc.json), &a)
			if !tc.wantErr.Is(err) {
				t.Fatalf("got error: %+v", err)
			}
			if err == nil {
				assert.Equal(t, tc.wantAddr, a)
			}
		})
	}
}

func TestAddressJSONRoundTrip(t *testing.T) {
	addr := weave.NewCondition("qfund", "escrow", []byte("admin")).Address()

	raw, err := json.Marshal(addr)
	require.NoError(t, err)

	var got weave.Address
	require.NoError(t, json.Unmarshal(raw, &got))
	assert.True(t, addr.Equals(got))
	assert.NoError(t, got.Validate())

	clone := got.Clone()
	clone[0]++
	assert.False(t, clone.Equals(got))
}
