package assert

import (
	"fmt"
	"testing"

	"github.com/iov-one/solquad/errors"
)

type recorder struct {
	failed bool
}

func (r *recorder) Helper() {}

func (r *recorder) Fatal(...interface{}) { r.failed = true }

func (r *recorder) Fatalf(string, ...interface{}) { r.failed = true }

func TestIsErr(t *testing.T) {
	cases := map[string]struct {
		Want     error
		Got      error
		WantFail bool
	}{
		"same error": {
			Want: errors.ErrEmpty,
			Got:  errors.ErrEmpty,
		},
		"wrapped error": {
			Want: errors.ErrEmpty,
			Got:  errors.Wrap(errors.ErrEmpty, "no projects"),
		},
		"different error": {
			Want:     errors.ErrEmpty,
			Got:      errors.ErrNotFound,
			WantFail: true,
		},
		"plain error": {
			Want:     errors.ErrEmpty,
			Got:      fmt.Errorf("empty"),
			WantFail: true,
		},
		"both nil": {},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			var r recorder
			IsErr(&r, tc.Want, tc.Got)
			if r.failed != tc.WantFail {
				t.Fatalf("want fail=%v, got %v", tc.WantFail, r.failed)
			}
		})
	}
}

func TestNil(t *testing.T) {
	var r recorder
	var nilErr error
	var nilSlice []byte
	Nil(&r, nilErr)
	Nil(&r, nilSlice)
	if r.failed {
		t.Fatal("nil values reported as not nil")
	}
	Nil(&r, 0)
	if !r.failed {
		t.Fatal("zero integer is not nil")
	}
}
