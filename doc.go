// Package nbhtml renders labeled n-dimensional array collections as HTML for
// display in an interactive notebook.
//
// Inputs are either a single [DataArray] or a [Dataset] of named variables.
// Both implement [Input]; nothing else does. Renderers only read their input
// and keep no state between calls.
//
// # Tables
//
// [Table] and [WriteTable] partition the input with [Classify] and emit one
// HTML table per non-empty group:
//
//   - the default group: a single data array, led by its coordinate
//   - 0-D variables: dataset items without exactly one dimension
//   - 1-D variables: one table per dimension, in lexical order, led by the
//     dataset's coordinate for that dimension
//
// Every variable gets a header cell spanning its "Values" column and, when it
// has variances, its "Variances" column. Cells are formatted by [FormatValue].
//
//	html, err := nbhtml.Table(ds, nbhtml.WithPrecision(4))
//
// Coordinates one element longer than the data (bin edges) are rejected with
// [ErrBinEdges] unless [WithBinEdges] supplies a cell formatter.
//
// # Collapsible View
//
// [View] renders Dimensions, Coordinates, Labels, Data, Masks and Attributes
// sections with checkbox toggles. Element ids are random unless
// [WithIDGenerator] is given.
//
// # Notebook Output
//
// [Display] writes a display bundle holding the HTML tables and a plain-text
// rendering from [PlainText]. [Write] selects any output by [Format]:
//
//	f, err := nbhtml.ParseFormat(flagValue)
//	nbhtml.Write(os.Stdout, f, ds)
//
// # Errors
//
//   - [ErrUnsupportedFormat] — unknown format string
//   - [ErrInvalidInput] — malformed variable or document
//   - [ErrShapeMismatch] — variables in one table disagree on their length
//   - [ErrIndexOutOfRange] — fewer values stored than the shape promises
//   - [ErrBinEdges] — bin-edge coordinate without [WithBinEdges]
//   - [ErrSparse] — a table would be indexed along a sparse dimension
package nbhtml
