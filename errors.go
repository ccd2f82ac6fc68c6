package shellforge

import (
	"fmt"
	"strings"
)

// FieldError is a single field-scoped validation failure.
type FieldError struct {
	Field string `json:"field"`
	Msg   string `json:"msg"`
}

func (e FieldError) Error() string {
	return e.Field + ": " + e.Msg
}

// ValidationErrors is the set of field errors found before any
// geometry work. Nothing is generated when it is non-empty.
type ValidationErrors []FieldError

func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return "no validation errors"
	}
	msgs := make([]string, len(e))
	for i, fe := range e {
		msgs[i] = fe.Error()
	}
	return "invalid request: " + strings.Join(msgs, "; ")
}

// GeomError reports geometry that cannot be built from the given
// parameters. It is scoped to one feature; other features of the same
// part still attempt generation.
type GeomError struct {
	Feature string `json:"feature"`        // "footprint", "cutout", "standoff", "tray"
	ID      int    `json:"id"`             // feature id, -1 when not applicable
	Axis    string `json:"axis,omitempty"` // offending axis, "" when not applicable
	Msg     string `json:"msg"`
}

func (e *GeomError) Error() string {
	s := e.Feature
	if e.ID >= 0 {
		s += fmt.Sprintf(" %d", e.ID)
	}
	if e.Axis != "" {
		s += " (axis " + e.Axis + ")"
	}
	return s + ": " + e.Msg
}

// PartError reports a failure fatal to a single part. The assembler
// still returns every other part that built successfully.
type PartError struct {
	Part    PartName `json:"part"`
	Op      string   `json:"op"`                // pipeline stage: "shell", "cutouts", "standoffs", "edges", "assemble"
	Feature string   `json:"feature,omitempty"` // offending feature id when known
	Err     error    `json:"-"`
}

func (e *PartError) Error() string {
	s := fmt.Sprintf("part %s: op %s", e.Part, e.Op)
	if e.Feature != "" {
		s += ": " + e.Feature
	}
	if e.Err != nil {
		s += ": " + e.Err.Error()
	}
	return s
}

func (e *PartError) Unwrap() error { return e.Err }

// Warning is a non-fatal adjustment or skipped feature. Generation
// continues with the reported substitute behavior.
type Warning struct {
	Feature string `json:"feature"`
	ID      int    `json:"id"` // -1 when not applicable
	Msg     string `json:"msg"`
}

func (w Warning) String() string {
	if w.ID >= 0 {
		return fmt.Sprintf("%s %d: %s", w.Feature, w.ID, w.Msg)
	}
	return w.Feature + ": " + w.Msg
}

func warnf(feature string, id int, format string, args ...any) Warning {
	return Warning{Feature: feature, ID: id, Msg: fmt.Sprintf(format, args...)}
}
