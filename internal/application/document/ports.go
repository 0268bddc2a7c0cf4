// Package document implements the application service around the invoice
// core: the load fallback chain, the edit cycle (validate → recompute →
// persist → stale-link check), share-link generation and PDF rendering.
//
// The service is stateless; the current document value is owned by the
// caller. Persistence and the link codec are injected collaborators, which
// keeps the core operations pure and independently testable.
package document

import (
	"context"
	"fmt"
)

// Storage persists the last successfully validated document payload on the
// local device. Implementations store raw JSON; the service re-validates on
// every read.
type Storage interface {
	SaveDocument(ctx context.Context, payload []byte) error
	// LoadDocument returns domain.ErrNotFound when nothing is stored.
	LoadDocument(ctx context.Context) ([]byte, error)
}

// LinkCodec turns a document payload into a URL-embeddable compressed
// string and back. Decode(Encode(p)) must reproduce p byte for byte.
type LinkCodec interface {
	Encode(payload []byte) (string, error)
	Decode(param string) ([]byte, error)
}

// PDFRenderer consumes a fully validated, fully recomputed document plus
// its precomputed display strings and produces the printable byte stream.
// It must not re-derive business values.
type PDFRenderer interface {
	Render(ctx context.Context, data *RenderData) ([]byte, error)
}

// DecodeError is the single unified failure of reading a document from a
// carrier: bad compression, malformed JSON and schema violations all
// collapse into it, since the fallback policy does not distinguish causes.
type DecodeError struct {
	Carrier string // "url" or "storage"
	Cause   error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode %s payload: %v", e.Carrier, e.Cause)
}

func (e *DecodeError) Unwrap() error { return e.Cause }

// PersistenceError reports a failed storage write. It is advisory: the
// in-memory document remains authoritative for the session.
type PersistenceError struct {
	Cause error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persist document: %v", e.Cause)
}

func (e *PersistenceError) Unwrap() error { return e.Cause }
