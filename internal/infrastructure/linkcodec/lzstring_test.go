package linkcodec

import (
	"encoding/json"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/invoicepdf/invoice-api/internal/domain/invoice"
)

func TestRoundTrip(t *testing.T) {
	codec := New()

	payload, err := json.Marshal(invoice.DefaultDocument(time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)))
	require.NoError(t, err)

	param, err := codec.Encode(payload)
	require.NoError(t, err)
	require.NotEmpty(t, param)

	out, err := codec.Decode(param)
	require.NoError(t, err)
	assert.JSONEq(t, string(payload), string(out))
}

func TestEncode_IsURLSafe(t *testing.T) {
	codec := New()

	param, err := codec.Encode([]byte(`{"notes":"zażółć gęślą jaźń & <tags> 100%"}`))
	require.NoError(t, err)
	assert.Equal(t, param, url.QueryEscape(param), "no character may need escaping")
}

func TestDecode_TamperedParamNeverYieldsOriginal(t *testing.T) {
	codec := New()

	original := `{"language":"en","currency":"EUR"}`
	param, err := codec.Encode([]byte(original))
	require.NoError(t, err)

	// A truncated parameter either errors or decompresses to junk; it must
	// never silently round-trip to the original document.
	out, err := codec.Decode(param[:len(param)/2])
	if err == nil {
		assert.NotEqual(t, original, string(out))
	}
}

func TestDecode_EmptyParam(t *testing.T) {
	_, err := New().Decode("")
	assert.Error(t, err)
}
