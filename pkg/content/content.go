package content

import (
	"fmt"
	"slices"

	"github.com/ginjaninja78/intacct-functions/pkg/xmlwriter"
)

// Content is an ordered list of functions, written as the <content> block
// of an operation. The surrounding request envelope is left to the caller.
type Content struct {
	functions []Function
}

// NewContent builds a Content from fns, in order.
func NewContent(fns ...Function) (*Content, error) {
	for i, fn := range fns {
		if fn == nil {
			return nil, invalidValue("functions", "", fmt.Sprintf("function %d is nil", i))
		}
	}
	return &Content{functions: slices.Clone(fns)}, nil
}

// Len returns the number of functions.
func (c *Content) Len() int {
	return len(c.functions)
}

// Functions returns a copy of the function list.
func (c *Content) Functions() []Function {
	return slices.Clone(c.functions)
}

// WriteXML writes <content> followed by every function.
func (c *Content) WriteXML(w xmlwriter.Sink) error {
	if err := w.StartElement("content"); err != nil {
		return err
	}
	for _, fn := range c.functions {
		if err := fn.WriteXML(w); err != nil {
			return err
		}
	}
	return w.EndElement()
}
