// =============================================================================
// Intacct Functions - Streaming XML Writer
// =============================================================================
//
// This package provides the sink that request functions serialize into. It
// exposes the four primitives a function needs and nothing else:
//
//   StartElement("function")              <function
//   WriteAttribute("controlid", "read")     controlid="read">
//   WriteElement("object", "CUSTOMER")      <object>CUSTOMER</object>
//   EndElement()                          </function>
//
// A start tag stays open until the next primitive is called, so attributes
// can only be written directly after StartElement. Text and attribute values
// are escaped by encoding/xml.
//
// =============================================================================

package xmlwriter

import (
	"bytes"
	"encoding/xml"
	"io"

	"github.com/cockroachdb/errors"
)

// =============================================================================
// ERRORS
// =============================================================================

var (
	ErrEmptyName             = errors.New("xml element or attribute name is empty")
	ErrAttributeOutsideStart = errors.New("attribute written outside of a start tag")
	ErrNoOpenElement         = errors.New("end element with no open element")
	ErrUnclosedElement       = errors.New("document has unclosed elements")
)

// =============================================================================
// SINK INTERFACE
// =============================================================================

// Sink is the append-only XML output that functions write into.
type Sink interface {
	StartElement(name string) error
	WriteAttribute(name, value string) error
	WriteElement(name, value string) error
	EndElement() error
}

// Marshaler is implemented by anything that can write itself into a Sink.
type Marshaler interface {
	WriteXML(w Sink) error
}

// =============================================================================
// WRITER OPTIONS
// =============================================================================

// Options controls the formatting of a Writer.
type Options struct {
	// Indent is the string used for one level of indentation.
	// Empty means compact output on a single line.
	Indent string

	// Declaration writes the XML declaration before the first element.
	Declaration bool
}

// =============================================================================
// WRITER
// =============================================================================

// Writer is a streaming Sink over an io.Writer. It is not safe for
// concurrent use.
type Writer struct {
	out     io.Writer
	enc     *xml.Encoder
	opts    Options
	pending *xml.StartElement
	open    []xml.Name
	started bool
}

// NewWriter creates a Writer that encodes into out.
func NewWriter(out io.Writer, opts Options) *Writer {
	enc := xml.NewEncoder(out)
	if opts.Indent != "" {
		enc.Indent("", opts.Indent)
	}

	return &Writer{
		out:  out,
		enc:  enc,
		opts: opts,
	}
}

// StartElement opens a new element. The start tag is written lazily so that
// attributes can still be added.
func (w *Writer) StartElement(name string) error {
	if name == "" {
		return ErrEmptyName
	}
	if err := w.flushPending(); err != nil {
		return err
	}

	if !w.started {
		w.started = true
		if w.opts.Declaration {
			if _, err := io.WriteString(w.out, xml.Header); err != nil {
				return errors.Wrap(err, "failed to write xml declaration")
			}
		}
	}

	w.pending = &xml.StartElement{Name: xml.Name{Local: name}}
	w.open = append(w.open, w.pending.Name)

	return nil
}

// WriteAttribute adds an attribute to the element opened by the last
// StartElement call. Characters XML 1.0 cannot carry, such as NUL, and
// invalid UTF-8 are written as U+FFFD.
func (w *Writer) WriteAttribute(name, value string) error {
	if name == "" {
		return ErrEmptyName
	}
	if w.pending == nil {
		return errors.Wrapf(ErrAttributeOutsideStart, "attribute %q", name)
	}

	w.pending.Attr = append(w.pending.Attr, xml.Attr{
		Name:  xml.Name{Local: name},
		Value: value,
	})

	return nil
}

// WriteElement writes a complete element containing only text.
// An empty value produces an empty element, never an omitted one.
// As with WriteAttribute, characters outside the XML character range are
// replaced by U+FFFD rather than rejected.
func (w *Writer) WriteElement(name, value string) error {
	if err := w.StartElement(name); err != nil {
		return err
	}
	if err := w.flushPending(); err != nil {
		return err
	}
	if err := w.enc.EncodeToken(xml.CharData(value)); err != nil {
		return errors.Wrapf(err, "failed to write text of <%s>", name)
	}

	return w.EndElement()
}

// EndElement closes the most recently opened element.
func (w *Writer) EndElement() error {
	if len(w.open) == 0 {
		return ErrNoOpenElement
	}
	if err := w.flushPending(); err != nil {
		return err
	}

	name := w.open[len(w.open)-1]
	w.open = w.open[:len(w.open)-1]

	if err := w.enc.EncodeToken(xml.EndElement{Name: name}); err != nil {
		return errors.Wrapf(err, "failed to close <%s>", name.Local)
	}

	return nil
}

// Flush writes any buffered output to the underlying writer. It reports
// ErrUnclosedElement when elements are still open, after flushing what was
// written so far.
func (w *Writer) Flush() error {
	if err := w.flushPending(); err != nil {
		return err
	}
	if err := w.enc.Flush(); err != nil {
		return errors.Wrap(err, "failed to flush xml output")
	}
	if len(w.open) > 0 {
		return errors.Wrapf(ErrUnclosedElement, "<%s> is still open", w.open[len(w.open)-1].Local)
	}

	return nil
}

// flushPending writes the buffered start tag, if any.
func (w *Writer) flushPending() error {
	if w.pending == nil {
		return nil
	}

	start := *w.pending
	w.pending = nil

	if err := w.enc.EncodeToken(start); err != nil {
		return errors.Wrapf(err, "failed to open <%s>", start.Name.Local)
	}

	return nil
}

// =============================================================================
// HELPERS
// =============================================================================

// Document serializes m into a standalone byte slice.
func Document(m Marshaler, opts Options) ([]byte, error) {
	var buffer bytes.Buffer

	w := NewWriter(&buffer, opts)
	if err := m.WriteXML(w); err != nil {
		return nil, err
	}
	if err := w.Flush(); err != nil {
		return nil, err
	}

	if opts.Indent != "" {
		buffer.WriteByte('\n')
	}

	return buffer.Bytes(), nil
}
