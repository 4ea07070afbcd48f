package types

import "fmt"

// Warning is a non-fatal anomaly found while building a document.
type Warning struct {
	Kind    WarningKind `json:"kind" yaml:"kind"`
	Subject string      `json:"subject" yaml:"subject"`
	Path    string      `json:"path,omitempty" yaml:"path,omitempty"`
	Message string      `json:"message,omitempty" yaml:"message,omitempty"`
	Line    int         `json:"line,omitempty" yaml:"line,omitempty"`
	Column  int         `json:"column,omitempty" yaml:"column,omitempty"`
}

func (w Warning) String() string {
	return fmt.Sprintf("%s: %s", w.Kind, w.Subject)
}

// ParseError is a fatal failure to read the document as AUTOSAR XML.
type ParseError struct {
	Source string
	Line   int
	Column int
	Msg    string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s:%d:%d: %s", e.Source, e.Line, e.Column, e.Msg)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
