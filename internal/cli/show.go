package cli

import (
	"context"

	flag "github.com/spf13/pflag"

	"github.com/calvinalkan/confdoc/internal/confdoc"
)

// ShowCmd returns the show command.
func ShowCmd(s *confdoc.Session) *Command {
	fs := flag.NewFlagSet("show", flag.ContinueOnError)
	pretty := fs.Bool("pretty", false, "Indent the output")

	return &Command{
		Flags: fs,
		Usage: "show [file] [--pretty]",
		Short: "Print a document",
		Long: `Print a document in canonical form (sorted keys, no insignificant whitespace).
Without a file argument the default document is shown.`,
		Args: maxArgs(1, "one file"),
		Exec: func(_ context.Context, o *IO, args []string) error {
			path := s.DocumentPath()
			if len(args) == 1 {
				path = resolveArg(s, args[0])
			}

			doc, err := s.Load(path)
			if err != nil {
				return err
			}

			return printDocument(o, doc, *pretty || s.Config().Pretty)
		},
	}
}
