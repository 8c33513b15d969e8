package gen

import (
	"fmt"
	"strings"
)

// OutputKind selects the comment syntax of a generated artifact.
type OutputKind int

const (
	_ OutputKind = iota

	// KindElixir is an Elixir source file (.ex).
	KindElixir

	// KindTypeScript is a TypeScript source file (.ts). No artifact emits
	// it; it keeps the "//" banner shape next to the "##" and "#" ones.
	KindTypeScript

	// KindYAML is a YAML document (.yml).
	KindYAML
)

// String returns the short name of the kind.
func (k OutputKind) String() string {
	switch k {
	case KindElixir:
		return "ex"
	case KindTypeScript:
		return "ts"
	case KindYAML:
		return "yml"
	default:
		return fmt.Sprintf("OutputKind(%d)", int(k))
	}
}

// banner returns the generated-code banner line for the kind.
func (k OutputKind) banner(name string) (string, bool) {
	switch k {
	case KindElixir:
		return fmt.Sprintf("## **** GENERATED CODE! see %s for details. ****", name), true
	case KindTypeScript:
		return fmt.Sprintf("// **** GENERATED CODE! see %s for details. ****", name), true
	case KindYAML:
		return fmt.Sprintf("### GENERATED by %s!", name), true
	default:
		return "", false
	}
}

// indentUnit is the whitespace added per indentation level.
const indentUnit = "  "

// Emitter is an indentation-aware line buffer. Lines pushed through Push are
// prefixed with two spaces per indentation level; the buffer is append-only.
//
// An Emitter is owned by a single generation run and is not safe for
// concurrent use.
type Emitter struct {
	name   string
	lines  []string
	depth  int
	prefix string
}

// NewEmitter creates an empty emitter. The name identifies the generator in
// the banner line.
func NewEmitter(name string) *Emitter {
	return &Emitter{name: name}
}

// Name returns the generator identity.
func (e *Emitter) Name() string {
	return e.name
}

// Push appends line prefixed with the current indentation.
func (e *Emitter) Push(line string) {
	e.lines = append(e.lines, e.prefix+line)
}

// PushBlock appends every line of a multi-line block at the current
// indentation. Empty lines are kept empty.
func (e *Emitter) PushBlock(block string) {
	for _, line := range strings.Split(block, "\n") {
		if line == "" {
			e.lines = append(e.lines, "")
			continue
		}
		e.Push(line)
	}
}

// PlainPush appends line verbatim, ignoring the current indentation.
func (e *Emitter) PlainPush(line string) {
	e.lines = append(e.lines, line)
}

// IndentUp increases the indentation depth by n.
func (e *Emitter) IndentUp(n int) {
	e.depth += n
	e.setPrefix()
}

// IndentDown decreases the indentation depth by n. Callers keep calls
// balanced; the depth is not checked.
func (e *Emitter) IndentDown(n int) {
	e.depth -= n
	e.setPrefix()
}

func (e *Emitter) setPrefix() {
	if e.depth <= 0 {
		e.prefix = ""
		return
	}
	e.prefix = strings.Repeat(indentUnit, e.depth)
}

// WithIndent runs fn one level deeper. The previous depth is restored on
// every exit path of fn, including an error or a panic.
func (e *Emitter) WithIndent(fn func() error) error {
	e.IndentUp(1)
	defer e.IndentDown(1)
	return fn()
}

// AddBanner pushes the generated-code banner for kind followed by one blank
// line.
func (e *Emitter) AddBanner(kind OutputKind) error {
	line, ok := kind.banner(e.name)
	if !ok {
		return NewConfigError("OutputKind", kind, "unsupported output kind")
	}
	e.Push(line)
	e.Push("")
	return nil
}

// Depth returns the current indentation depth.
func (e *Emitter) Depth() int {
	return e.depth
}

// Prefix returns the whitespace prefix of the current depth.
func (e *Emitter) Prefix() string {
	return e.prefix
}

// Len returns the number of buffered lines.
func (e *Emitter) Len() int {
	return len(e.lines)
}

// Lines returns a copy of the buffered lines.
func (e *Emitter) Lines() []string {
	return append([]string(nil), e.lines...)
}

// Content joins the buffered lines with newlines.
func (e *Emitter) Content() string {
	return strings.Join(e.lines, "\n")
}
