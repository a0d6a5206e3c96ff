package errs_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/ledgerd/node/business/web/errs"
)

func Test_Trusted(t *testing.T) {
	base := errors.New("block not accepted")
	err := fmt.Errorf("handler: %w", errs.NewTrusted(base, http.StatusNotAcceptable))

	if !errs.IsTrusted(err) {
		t.Fatalf("Should find the trusted error in the chain.")
	}

	te := errs.GetTrusted(err)
	if te.Status != http.StatusNotAcceptable || !errors.Is(err, base) {
		t.Fatalf("Should keep the status and the wrapped error: %v", te)
	}

	if errs.GetTrusted(base) != nil {
		t.Fatalf("Should not find a trusted error in a plain error.")
	}
}
