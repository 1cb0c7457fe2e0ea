// Package greeting prints the classic hello-world line stamped with the
// current date.
package greeting

import (
	"fmt"
	"io"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/pkg/errors"
)

// DateLayout renders as DD-MM-YYYY HH:MM.
const DateLayout = "02-01-2006 15:04"

// FormatDate formats t with DateLayout in t's own location.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// Format returns the greeting line for name at t, without a newline.
func Format(name string, t time.Time) string {
	return fmt.Sprintf("Hola Mundo. Saludo de %s hoy %s", name, FormatDate(t))
}

// Greeter writes greetings using its clock for the current time.
type Greeter struct {
	Clock clock.Clock
	Out   io.Writer
}

// New returns a Greeter on the wall clock.
func New(out io.Writer) *Greeter {
	return &Greeter{Clock: clock.New(), Out: out}
}

// Now returns the current date formatted with DateLayout.
func (g *Greeter) Now() string {
	return FormatDate(g.Clock.Now())
}

// Greet writes one greeting line for name.
func (g *Greeter) Greet(name string) error {
	_, err := fmt.Fprintln(g.Out, Format(name, g.Clock.Now()))
	return errors.Wrap(err, "greeting: write")
}
