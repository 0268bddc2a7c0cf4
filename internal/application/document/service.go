package document

import (
	"context"
	"encoding/json"
	"time"

	"github.com/invoicepdf/invoice-api/internal/domain/invoice"
	"github.com/invoicepdf/invoice-api/pkg/logger"
)

// LoadSource identifies which carrier of the fallback chain produced the
// document.
type LoadSource string

const (
	SourceURL     LoadSource = "url"
	SourceStorage LoadSource = "storage"
	SourceDefault LoadSource = "default"
)

// LoadResult is the outcome of the load fallback chain.
type LoadResult struct {
	Document *invoice.Document
	Source   LoadSource
}

// EditResult is the outcome of one edit cycle.
type EditResult struct {
	Document *invoice.Document

	// Recomputed reports whether any derived value actually changed;
	// downstream persistence triggers can ignore no-op edits.
	Recomputed bool

	// ShareLinkStale is set when a URL-carried document exists and no
	// longer matches the edited one: the shared link does not reflect
	// local edits.
	ShareLinkStale bool

	// PersistErr carries a storage write failure. The returned document
	// is still authoritative for the session.
	PersistErr error
}

// Service wires the invoice core to its carriers.
type Service struct {
	store    Storage
	codec    LinkCodec
	renderer PDFRenderer
	log      *logger.Logger
	now      func() time.Time
}

// NewService builds the document service. renderer may be nil when PDF
// rendering is not needed (e.g. the share CLI).
func NewService(store Storage, codec LinkCodec, renderer PDFRenderer, log *logger.Logger) *Service {
	return &Service{
		store:    store,
		codec:    codec,
		renderer: renderer,
		log:      log,
		now:      time.Now,
	}
}

// WithClock fixes the clock used for the canonical default document.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// Load reconstructs the current document: URL parameter first, then the
// local store, then the canonical default. It never leaves the caller
// without a usable document; decode failures are logged and fallen through.
func (s *Service) Load(ctx context.Context, urlParam string) *LoadResult {
	if urlParam != "" {
		doc, err := s.decodeFromURL(urlParam)
		if err == nil {
			return &LoadResult{Document: doc, Source: SourceURL}
		}
		s.log.Warn().Err(err).Msg("url payload unusable, falling back to storage")
	}

	if doc, err := s.loadFromStorage(ctx); err == nil {
		return &LoadResult{Document: doc, Source: SourceStorage}
	} else {
		s.log.Debug().Err(err).Msg("no stored document, using default")
	}

	return &LoadResult{Document: invoice.DefaultDocument(s.now()), Source: SourceDefault}
}

// ApplyEdit runs one edit cycle on raw form data: validate, recompute the
// derived fields, persist the result and flag a stale share link. A
// *invoice.ValidationError is returned when the input violates the schema;
// in that case no state has been touched.
func (s *Service) ApplyEdit(ctx context.Context, raw []byte, urlParam string) (*EditResult, error) {
	doc, err := invoice.Validate(raw)
	if err != nil {
		return nil, err
	}

	doc, recomputed := invoice.RecomputeDocument(doc)

	res := &EditResult{Document: doc, Recomputed: recomputed}

	payload, err := json.Marshal(doc)
	if err != nil {
		return nil, err
	}
	if err := s.store.SaveDocument(ctx, payload); err != nil {
		// The in-memory document stays authoritative; warn and continue.
		s.log.Warn().Err(err).Msg("document could not be persisted")
		res.PersistErr = &PersistenceError{Cause: err}
	}

	if urlParam != "" {
		if urlDoc, err := s.decodeFromURL(urlParam); err == nil && !urlDoc.Equal(doc) {
			res.ShareLinkStale = true
		}
	}

	return res, nil
}

// Share validates raw document data and encodes it into the URL-safe
// compressed parameter of a shareable link.
func (s *Service) Share(_ context.Context, raw []byte) (string, error) {
	doc, err := invoice.Validate(raw)
	if err != nil {
		return "", err
	}
	payload, err := json.Marshal(doc)
	if err != nil {
		return "", err
	}
	return s.codec.Encode(payload)
}

// Decode reverses Share: decompress, parse and validate a link parameter.
func (s *Service) Decode(param string) (*invoice.Document, error) {
	return s.decodeFromURL(param)
}

// RenderPDF produces the printable document. Derived fields are recomputed
// first so the renderer always sees consistent values.
func (s *Service) RenderPDF(ctx context.Context, doc *invoice.Document) ([]byte, error) {
	doc, _ = invoice.RecomputeDocument(doc)
	return s.renderer.Render(ctx, BuildRenderData(doc))
}

func (s *Service) decodeFromURL(param string) (*invoice.Document, error) {
	payload, err := s.codec.Decode(param)
	if err != nil {
		return nil, &DecodeError{Carrier: "url", Cause: err}
	}
	doc, err := invoice.Validate(payload)
	if err != nil {
		return nil, &DecodeError{Carrier: "url", Cause: err}
	}
	return doc, nil
}

func (s *Service) loadFromStorage(ctx context.Context) (*invoice.Document, error) {
	payload, err := s.store.LoadDocument(ctx)
	if err != nil {
		return nil, &DecodeError{Carrier: "storage", Cause: err}
	}
	doc, err := invoice.Validate(payload)
	if err != nil {
		return nil, &DecodeError{Carrier: "storage", Cause: err}
	}
	return doc, nil
}
