package nbhtml

import (
	"encoding/json"
	"io"
)

// MIME types of a notebook display bundle.
const (
	MIMEHTML  = "text/html"
	MIMEPlain = "text/plain"
)

// DisplayData is a notebook rich-output message: the same content in several
// MIME types, of which the frontend picks the richest it supports.
type DisplayData struct {
	Data     map[string]string `json:"data"`
	Metadata map[string]any    `json:"metadata"`
}

// MIMEBundle renders in as HTML tables with a plain-text fallback.
func MIMEBundle(in Input, opts ...Option) (DisplayData, error) {
	htmlOut, err := Table(in, opts...)
	if err != nil {
		return DisplayData{}, err
	}
	text, err := PlainText(in, opts...)
	if err != nil {
		return DisplayData{}, err
	}
	return DisplayData{
		Data:     map[string]string{MIMEHTML: htmlOut, MIMEPlain: text},
		Metadata: map[string]any{},
	}, nil
}

// Display writes the display bundle for in to w as one line of JSON. It is
// the adapter between the pure renderers and a notebook output channel.
func Display(w io.Writer, in Input, opts ...Option) error {
	d, err := MIMEBundle(in, opts...)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	return enc.Encode(d)
}
