package ninja

import (
	"strings"
)

// A Binding is a single "name = value" pair, either a top-level variable or scoped to a
// rule/build statement (§4.1).
type Binding struct {
	Name  string
	Value Value
}

// Writer accumulates the text of one Ninja-syntax plan file (either the top-level plan
// or a per-target subplan, §3 "Paths") and serializes it deterministically for a given
// sequence of calls (§8 property 1).
type Writer struct {
	b strings.Builder
}

// New returns an empty Writer.
func New() *Writer {
	return &Writer{}
}

// Comment emits a "# ..." line.
func (w *Writer) Comment(text string) {
	w.b.WriteString("# ")
	w.b.WriteString(text)
	w.b.WriteByte('\n')
}

// Newline emits a blank line, used to visually separate sections of the plan.
func (w *Writer) Newline() {
	w.b.WriteByte('\n')
}

// Binding emits a top-level "name = value" assignment.
func (w *Writer) Binding(name string, value Value) {
	w.writeBinding(0, name, value)
}

// Rule emits a "rule <name>" declaration with the given scoped bindings indented beneath
// it. The caller is responsible for including "command" (required by §4.1).
func (w *Writer) Rule(name string, bindings []Binding) {
	w.b.WriteString("rule ")
	w.b.WriteString(name)
	w.b.WriteByte('\n')
	for _, binding := range bindings {
		w.writeBinding(1, binding.Name, binding.Value)
	}
}

// Build emits a "build <outputs> : <rule> <inputs> | <inputDeps> || <orderDeps>"
// statement followed by its indented scoped bindings (§4.1). The "|" and "||" sections
// are omitted entirely when their corresponding slice is empty.
func (w *Writer) Build(outputs []Value, rule string, inputs []Value, bindings []Binding, inputDeps []Value, orderDeps []Value) {
	w.b.WriteString("build ")
	w.b.WriteString(joinValues(outputs))
	w.b.WriteString(" : ")
	w.b.WriteString(rule)
	if len(inputs) > 0 {
		w.b.WriteByte(' ')
		w.b.WriteString(joinValues(inputs))
	}
	if len(inputDeps) > 0 {
		w.b.WriteString(" | ")
		w.b.WriteString(joinValues(inputDeps))
	}
	if len(orderDeps) > 0 {
		w.b.WriteString(" || ")
		w.b.WriteString(joinValues(orderDeps))
	}
	w.b.WriteByte('\n')
	for _, binding := range bindings {
		w.writeBinding(1, binding.Name, binding.Value)
	}
}

// Subninja emits a "subninja <path>" directive, semantically inlining another plan file
// at the executor's generation time (§4.1).
func (w *Writer) Subninja(path Value) {
	w.b.WriteString("subninja ")
	w.b.WriteString(path.escape())
	w.b.WriteByte('\n')
}

// Default emits a "default <outputs>" statement. Not required by this core, but must not
// corrupt output if a caller adds one (§4.1).
func (w *Writer) Default(outputs []Value) {
	w.b.WriteString("default ")
	w.b.WriteString(joinValues(outputs))
	w.b.WriteByte('\n')
}

// Bytes returns the serialized plan text accumulated so far.
func (w *Writer) Bytes() []byte {
	return []byte(w.b.String())
}

// String returns the serialized plan text accumulated so far.
func (w *Writer) String() string {
	return w.b.String()
}

func (w *Writer) writeBinding(indent int, name string, value Value) {
	for i := 0; i < indent; i++ {
		w.b.WriteByte(' ')
	}
	w.b.WriteString(name)
	w.b.WriteString(" = ")
	w.b.WriteString(value.escape())
	w.b.WriteByte('\n')
}

func joinValues(values []Value) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = v.escape()
	}
	return strings.Join(parts, " ")
}
