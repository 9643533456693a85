package gecko

import (
	"errors"
	"fmt"

	"github.com/goccy/go-json"
)

// ErrMalformedDocument indicates input that does not parse as an
// interchange-format document or is missing a required top-level field.
var ErrMalformedDocument = errors.New("malformed document")

// ErrUnsupportedVersion indicates a document whose meta.version falls
// outside [SupportedVersionMin, SupportedVersionMax].
var ErrUnsupportedVersion = errors.New("unsupported format version")

// ErrDanglingIndexReference indicates an index that does not resolve to an
// entry of the table it points into.
var ErrDanglingIndexReference = errors.New("dangling index reference")

// ParseDocument decodes and structurally validates one interchange-format
// document from uncompressed JSON bytes. The returned document is fully
// index-checked: every table reference resolves.
func ParseDocument(b []byte) (*Document, error) {
	var probe struct {
		Meta      *Meta            `json:"meta"`
		Processes *json.RawMessage `json:"processes"`
	}
	if err := json.Unmarshal(b, &probe); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedDocument, err)
	}
	if probe.Meta == nil {
		return nil, fmt.Errorf("%w: missing meta", ErrMalformedDocument)
	}
	if probe.Processes == nil {
		return nil, fmt.Errorf("%w: missing processes", ErrMalformedDocument)
	}
	if v := probe.Meta.Version; v < SupportedVersionMin || v > SupportedVersionMax {
		return nil, fmt.Errorf("%w: version %d, supported range [%d, %d]",
			ErrUnsupportedVersion, v, SupportedVersionMin, SupportedVersionMax)
	}
	var d Document
	if err := json.Unmarshal(b, &d); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedDocument, err)
	}
	if err := d.Validate(); err != nil {
		return nil, err
	}
	return &d, nil
}
