package entities

// ExecResult is the outcome of a successful script evaluation.
type ExecResult struct {
	// Output renders the produced top-level bindings as a Python-style
	// dict literal, e.g. {'x': 2}.
	Output string `json:"output"`

	// Printed holds the text written by print() during evaluation.
	Printed string `json:"printed,omitempty"`

	// Bindings lists the produced binding names in first-binding order.
	Bindings []string `json:"bindings,omitempty"`

	// Truncated indicates Printed hit the configured limit.
	Truncated bool `json:"truncated,omitempty"`
}
