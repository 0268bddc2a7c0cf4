// Package linkcodec compresses document payloads into URL-safe share link
// parameters, compatible with the lz-string "EncodedURIComponent" format
// used by web clients.
package linkcodec

import (
	"fmt"

	lzstring "github.com/daku10/go-lz-string"

	"github.com/invoicepdf/invoice-api/internal/application/document"
)

var _ document.LinkCodec = (*LZString)(nil)

// LZString implements the share link codec.
type LZString struct{}

func New() *LZString {
	return &LZString{}
}

// Encode compresses payload into the URI-component alphabet (no characters
// that need percent-escaping in a query string).
func (*LZString) Encode(payload []byte) (string, error) {
	out, err := lzstring.CompressToEncodedURIComponent(string(payload))
	if err != nil {
		return "", fmt.Errorf("compress payload: %w", err)
	}
	return out, nil
}

// Decode reverses Encode. Truncated or tampered parameters fail here;
// callers fall back to their next document source.
func (*LZString) Decode(param string) ([]byte, error) {
	out, err := lzstring.DecompressFromEncodedURIComponent(param)
	if err != nil {
		return nil, fmt.Errorf("decompress payload: %w", err)
	}
	if out == "" {
		return nil, fmt.Errorf("decompress payload: empty result")
	}
	return []byte(out), nil
}
