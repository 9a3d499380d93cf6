package handler

import (
	"os"
	"testing"

	"github.com/shopspring/decimal"
)

// Mirrors cmd/api, which renders amounts as JSON numbers.
func TestMain(m *testing.M) {
	decimal.MarshalJSONWithoutQuotes = true
	os.Exit(m.Run())
}
