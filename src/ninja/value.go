// Package ninja implements the executor build-plan syntax (C1): rules, build statements,
// bindings, subfile inclusions, and the escaping rules a standards-compliant Ninja-
// compatible executor requires (§4.1).
package ninja

import "strings"

// A Value is either already executor-safe (Literal, e.g. a file path or shell command)
// or an Expression that must be emitted unescaped because it references a plan variable
// (e.g. "$dir"). Keeping the two kinds distinct means exactly one place ever decides
// whether a "$" is data or syntax.
type Value struct {
	text       string
	expression bool
}

// String wraps a literal value. Dollar signs are escaped at serialization time so they
// can never be mistaken for a variable reference.
func String(s string) Value {
	return Value{text: s}
}

// Expression wraps a value that is already Ninja syntax (a variable reference like "$dir"
// or a composed command like "cd $dir && $exec") and must not be escaped.
func Expression(s string) Value {
	return Value{text: s, expression: true}
}

// Strings wraps a slice of plain strings as literal Values, in order.
func Strings(ss []string) []Value {
	values := make([]Value, len(ss))
	for i, s := range ss {
		values[i] = String(s)
	}
	return values
}

// escape renders a Value for inclusion in the plan text (§4.1 "Value quoting").
func (v Value) escape() string {
	if v.expression {
		return v.text
	}
	s := strings.ReplaceAll(v.text, "$", "$$")
	s = strings.ReplaceAll(s, "\n", "$\n")
	if strings.HasPrefix(s, " ") {
		s = "$" + s
	}
	return s
}
