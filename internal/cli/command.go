package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	flag "github.com/spf13/pflag"

	"github.com/calvinalkan/confdoc/internal/confdoc"
)

// Command is one confdoc subcommand. [Command.Run] owns flag parsing,
// positional argument checks and error reporting, so Exec only sees
// well-formed input.
type Command struct {
	// Flags holds command-specific flags. Global flags are parsed by [Run]
	// before the command is selected.
	Flags *flag.FlagSet

	// Usage is shown after "confdoc" in help. Its first word is the
	// command name, e.g. "merge <a> <b> [-o file | --save]".
	Usage string

	// Short is the one-line description for the global listing.
	Short string

	// Long is shown by "confdoc <cmd> --help". Short is used when empty.
	Long string

	// Args checks the positional arguments left after flag parsing. A nil
	// Args accepts anything. Errors are reported as usage errors, prefixed
	// with the command name.
	Args func(args []string) error

	// Exec runs the command. Warnings recorded with [IO.Warn] are printed
	// after it returns and turn a successful run into exit code 1.
	Exec func(ctx context.Context, o *IO, args []string) error
}

// Name returns the command name (first word of Usage).
func (c *Command) Name() string {
	name, _, _ := strings.Cut(c.Usage, " ")

	return name
}

// HelpLine returns the short help line for the main usage display.
func (c *Command) HelpLine() string {
	return fmt.Sprintf("  %-34s %s", c.Usage, c.Short)
}

// PrintHelp prints the full help output for "confdoc <cmd> --help".
func (c *Command) PrintHelp(o *IO) {
	o.Println("Usage: confdoc", c.Usage)
	o.Println()

	desc := c.Long
	if desc == "" {
		desc = c.Short
	}

	o.Println(desc)

	if c.Flags != nil && c.Flags.HasFlags() {
		o.Println()
		o.Println("Flags:")

		var buf strings.Builder
		c.Flags.SetOutput(&buf)
		c.Flags.PrintDefaults()
		o.Printf("%s", buf.String())
	}
}

// Run parses flags, checks arguments and executes the command. It returns
// the process exit code: 0 on success, 1 on any error or warning.
// Nothing is executed once ctx is done.
func (c *Command) Run(ctx context.Context, o *IO, args []string) int {
	c.Flags.SetOutput(&strings.Builder{}) // discard pflag output

	err := c.Flags.Parse(args)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			c.PrintHelp(o)

			return 0
		}

		o.ErrPrintln("error:", err)
		o.ErrPrintln()
		c.PrintHelp(o)

		return 1
	}

	rest := c.Flags.Args()

	if c.Args != nil {
		if err := c.Args(rest); err != nil {
			o.ErrPrintln("error:", c.Name(), err)
			o.ErrPrintln("Usage: confdoc", c.Usage)

			return 1
		}
	}

	if err := ctx.Err(); err != nil {
		o.ErrPrintln("error:", c.Name(), "not started:", err)

		return 1
	}

	if err := c.Exec(ctx, o, rest); err != nil {
		o.Finish()
		o.ErrPrintln("error:", err)

		return 1
	}

	return o.Finish()
}

// exactArgs accepts exactly n arguments; what names them in the error.
func exactArgs(n int, what string) func([]string) error {
	return func(args []string) error {
		if len(args) != n {
			return fmt.Errorf("takes %s, got %d", what, len(args))
		}

		return nil
	}
}

// maxArgs accepts up to n arguments.
func maxArgs(n int, what string) func([]string) error {
	return func(args []string) error {
		if len(args) > n {
			return fmt.Errorf("takes at most %s, got %d", what, len(args))
		}

		return nil
	}
}

// keyArgs accepts a single non-empty key.
func keyArgs(args []string) error {
	if len(args) == 0 || args[0] == "" {
		return confdoc.ErrKeyRequired
	}

	return exactArgs(1, "one key")(args)
}
