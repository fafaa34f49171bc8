package cli

import (
	"context"
	"errors"

	flag "github.com/spf13/pflag"

	"github.com/calvinalkan/confdoc/internal/confdoc"
	"github.com/calvinalkan/confdoc/internal/document"
)

var errDocumentsDiffer = errors.New("documents differ")

// MergeCmd returns the merge command.
func MergeCmd(s *confdoc.Session) *Command {
	fs := flag.NewFlagSet("merge", flag.ContinueOnError)
	output := fs.StringP("output", "o", "", "Write the result to `file` instead of stdout")
	save := fs.Bool("save", false, "Write the result to the default document")

	return &Command{
		Flags: fs,
		Usage: "merge <a> <b> [-o file | --save]",
		Short: "Merge two object documents, b wins on conflicts",
		Long: `Merge the top-level members of two object documents.

Members of <b> replace members of <a> with the same name. Both documents
must be objects with at least one member.`,
		Args: exactArgs(2, "two files"),
		Exec: func(ctx context.Context, o *IO, args []string) error {
			if *save && *output != "" {
				return errors.New("--save and --output are mutually exclusive")
			}

			a, b, err := loadPair(s, args)
			if err != nil {
				return err
			}

			merged, err := s.Merge(a, b)
			if err != nil {
				return err
			}

			target := *output
			if *save {
				target = s.DocumentPath()
			}

			return emit(ctx, o, s, merged, target)
		},
	}
}

// DiffCmd returns the diff command.
func DiffCmd(s *confdoc.Session) *Command {
	return &Command{
		Flags: flag.NewFlagSet("diff", flag.ContinueOnError),
		Usage: "diff <a> <b>",
		Short: "Compare two documents structurally",
		Long: `Compare two documents ignoring key order and formatting.

Prints the differences and exits 1 when the documents differ.`,
		Args: exactArgs(2, "two files"),
		Exec: func(_ context.Context, o *IO, args []string) error {
			a, b, err := loadPair(s, args)
			if err != nil {
				return err
			}

			diff := document.Diff(a, b)
			if diff == "" {
				o.Println("documents are equal")

				return nil
			}

			o.Printf("%s", diff)

			return errDocumentsDiffer
		},
	}
}

func loadPair(s *confdoc.Session, args []string) (document.Document, document.Document, error) {
	a, err := s.Load(resolveArg(s, args[0]))
	if err != nil {
		return document.Document{}, document.Document{}, err
	}

	b, err := s.Load(resolveArg(s, args[1]))
	if err != nil {
		return document.Document{}, document.Document{}, err
	}

	return a, b, nil
}
