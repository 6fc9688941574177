package nbhtml

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/google/uuid"
)

// Sentinel errors for programmatic error handling.
var (
	ErrUnsupportedFormat = errors.New("unsupported format")
	ErrInvalidInput      = errors.New("invalid input")
	ErrShapeMismatch     = errors.New("shape mismatch")
	ErrIndexOutOfRange   = errors.New("index out of range")
	ErrBinEdges          = errors.New("bin-edge coordinate not supported")
	ErrSparse            = errors.New("sparse dimension")
)

// Format represents an output format.
type Format string

const (
	HTML   Format = "html"
	Repr   Format = "repr"
	Text   Format = "text"
	Bundle Format = "bundle"
	YAML   Format = "yaml"
)

var formats = []Format{HTML, Repr, Text, Bundle, YAML}

// String returns the format name.
func (f Format) String() string { return string(f) }

// Formats returns all supported format names.
func Formats() []Format {
	out := make([]Format, len(formats))
	copy(out, formats)
	return out
}

// ParseFormat parses a format string.
func ParseFormat(s string) (Format, error) {
	for _, f := range formats {
		if string(f) == s {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
}

// DefaultPrecision is the number of fractional digits used by [FormatValue]
// when no precision is configured.
const DefaultPrecision = 3

// DefaultPreviewLength is how many values the collapsible view shows per
// variable before eliding the rest.
const DefaultPreviewLength = 5

// LabelFunc produces a column header for v. name is empty for coordinates
// that are labeled by their dimension.
type LabelFunc func(v *Variable, name string) string

// BinEdgeFunc renders a bin-edge coordinate cell from the already formatted
// lower and upper edges of bin i.
type BinEdgeFunc func(lower, upper string) string

// Option configures rendering.
type Option func(*options)

type options struct {
	precision   int
	label       LabelFunc
	dataColor   string
	binEdges    BinEdgeFunc
	newID       func() string
	previewSize int
}

func newOptions(opts []Option) options {
	o := options{
		precision:   DefaultPrecision,
		label:       Label,
		newID:       uuid.NewString,
		previewSize: DefaultPreviewLength,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithPrecision sets the precision passed to [FormatValue].
func WithPrecision(p int) Option {
	return func(o *options) {
		if p >= 0 {
			o.precision = p
		}
	}
}

// WithLabeler replaces [Label] for column headers.
func WithLabeler(fn LabelFunc) Option {
	return func(o *options) {
		if fn != nil {
			o.label = fn
		}
	}
}

// WithDataColor sets a background color for data cells.
// Default: no background.
func WithDataColor(color string) Option {
	return func(o *options) { o.dataColor = color }
}

// WithBinEdges enables coordinates that are one element longer than the data
// they annotate. Without it such tables fail with [ErrBinEdges].
func WithBinEdges(fn BinEdgeFunc) Option {
	return func(o *options) { o.binEdges = fn }
}

// IntervalEdges renders a bin as "[lower; upper]".
func IntervalEdges(lower, upper string) string {
	return "[" + lower + "; " + upper + "]"
}

// WithIDGenerator replaces the random element ids of the collapsible view.
func WithIDGenerator(fn func() string) Option {
	return func(o *options) {
		if fn != nil {
			o.newID = fn
		}
	}
}

// WithPreviewLength sets how many values the collapsible view previews.
func WithPreviewLength(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.previewSize = n
		}
	}
}

// Write renders in using format f and writes the result to w.
func Write(w io.Writer, f Format, in Input, opts ...Option) error {
	switch f {
	case HTML:
		return WriteTable(w, in, opts...)
	case Repr:
		return WriteView(w, in, opts...)
	case Text:
		return WriteText(w, in, opts...)
	case Bundle:
		return Display(w, in, opts...)
	case YAML:
		return WriteSummary(w, in)
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, f)
	}
}

// Marshal renders in using format f and returns the bytes.
func Marshal(f Format, in Input, opts ...Option) ([]byte, error) {
	var buf bytes.Buffer
	if err := Write(&buf, f, in, opts...); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
