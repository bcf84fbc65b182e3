package params

import "fmt"

// ParseError reports a structured option that is malformed or has the
// wrong number of fields.
type ParseError struct {
	Option string
	Value  string
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid --%s value %q: %s", e.Option, e.Value, e.Reason)
}

// ValidationError reports an option that parsed but names something
// unsupported or lies outside the values a stage can work with.
type ValidationError struct {
	Option string
	Value  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid --%s value %q: %s", e.Option, e.Value, e.Reason)
}
