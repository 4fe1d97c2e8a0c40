// =============================================================================
// Intacct Functions - Function Contract
// =============================================================================
//
// A Function is one operation of the Intacct XML API. Every function writes
// the same outer shape:
//
//   <function controlid="CID">
//     <operationName>
//       ...fields, in a fixed order...
//     </operationName>
//   </function>
//
// Functions are built either from a typed params struct (NewRead,
// NewGetUserPermissions, ...) or by name from an untyped option mapping (New).
// Both paths validate at construction time. A constructed function is
// immutable and may be serialized any number of times, from any goroutine,
// as long as each call gets its own sink.
//
// =============================================================================

// Package content builds the function elements of an Intacct API request.
package content

import (
	"fmt"
	"sort"

	"github.com/ginjaninja78/intacct-functions/pkg/xmlwriter"
)

// Function is a validated, immutable API operation.
type Function interface {
	// Name is the operation element name, e.g. "read".
	Name() string

	// ControlID is the resolved correlation token.
	ControlID() string

	// WriteXML writes the <function> element into w.
	WriteXML(w xmlwriter.Sink) error
}

// =============================================================================
// REGISTRY
// =============================================================================

type definition struct {
	options []string
	build   func(Values) (Function, error)
}

// registry is the closed set of functions that can be built by name.
var registry = map[string]definition{
	readName:               {options: readOptions, build: readFromValues},
	readByNameName:         {options: readByNameOptions, build: readByNameFromValues},
	readByQueryName:        {options: readByQueryOptions, build: readByQueryFromValues},
	readMoreName:           {options: readMoreOptions, build: readMoreFromValues},
	inspectName:            {options: inspectOptions, build: inspectFromValues},
	getUserPermissionsName: {options: getUserPermissionsOptions, build: getUserPermissionsFromValues},
	getAPISessionName:      {options: getAPISessionOptions, build: getAPISessionFromValues},
}

// New builds the function called name from an option mapping.
func New(name string, values Values) (Function, error) {
	def, ok := registry[name]
	if !ok {
		return nil, &FieldError{
			Kind:    ErrUnknownFunction,
			Field:   "function",
			Value:   name,
			Message: fmt.Sprintf("unknown function %q", name),
		}
	}
	if err := values.checkKnown(def.options); err != nil {
		return nil, err
	}

	fn, err := def.build(values)
	if err != nil {
		return nil, err
	}
	return fn, nil
}

// Names lists the functions New can build, sorted.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Options lists the option keys recognized by the named function.
func Options(name string) ([]string, bool) {
	def, ok := registry[name]
	if !ok {
		return nil, false
	}
	return append([]string(nil), def.options...), true
}

// =============================================================================
// SHARED SERIALIZATION
// =============================================================================

// writeFunction writes <function controlid><name>body</name></function>.
// body runs directly after the operation start tag, so it may still add
// attributes to it.
func writeFunction(w xmlwriter.Sink, controlID, name string, body func() error) error {
	if err := w.StartElement("function"); err != nil {
		return err
	}
	if err := w.WriteAttribute("controlid", controlID); err != nil {
		return err
	}
	if err := w.StartElement(name); err != nil {
		return err
	}
	if body != nil {
		if err := body(); err != nil {
			return err
		}
	}
	if err := w.EndElement(); err != nil { // name
		return err
	}
	return w.EndElement() // function
}

// writeElements writes name/value pairs in order.
func writeElements(w xmlwriter.Sink, pairs ...string) error {
	for i := 0; i+1 < len(pairs); i += 2 {
		if err := w.WriteElement(pairs[i], pairs[i+1]); err != nil {
			return err
		}
	}
	return nil
}
