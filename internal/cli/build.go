package cli

import (
	"context"
	"fmt"
	"strings"

	flag "github.com/spf13/pflag"

	"github.com/calvinalkan/confdoc/internal/confdoc"
)

// BuildCmd returns the build command.
func BuildCmd(s *confdoc.Session) *Command {
	fs := flag.NewFlagSet("build", flag.ContinueOnError)
	output := fs.StringP("output", "o", "", "Write the document to `file` instead of stdout")

	return &Command{
		Flags: fs,
		Usage: "build <name>:<k>=<v>[,<k>=<v>]... [-o file]",
		Short: "Build a collection of named row arrays",
		Long: `Build a document mapping names to arrays of rows.

Each argument is one row appended to the array called <name>. Rows keep
their argument order within a name. An empty row is written as "name:".

  confdoc build prog2:0=u,1=p prog2:2=ip prog3:0=u
  {"prog2":[{"0":"u","1":"p"},{"2":"ip"}],"prog3":[{"0":"u"}]}`,
		Args: func(args []string) error {
			if len(args) == 0 {
				return fmt.Errorf("%w: no rows given", confdoc.ErrInvalidRow)
			}

			return nil
		},
		Exec: func(ctx context.Context, o *IO, args []string) error {
			rowsByName := map[string]*confdoc.RowArray{}

			var order []string

			for _, arg := range args {
				name, row, err := parseRow(s, o, arg)
				if err != nil {
					return err
				}

				rows, ok := rowsByName[name]
				if !ok {
					rows = &confdoc.RowArray{}
					rowsByName[name] = rows
					order = append(order, name)
				}

				s.AppendRow(rows, row)
			}

			collection := confdoc.NamedCollection{}

			for _, name := range order {
				if !s.InsertRows(name, *rowsByName[name], collection) {
					return fmt.Errorf("%w: %q", confdoc.ErrDuplicateName, name)
				}
			}

			return emit(ctx, o, s, collection.Document(), *output)
		},
	}
}

// parseRow parses name:k=v,k=v into a collection name and one row.
func parseRow(s *confdoc.Session, o *IO, arg string) (string, confdoc.KeyValue, error) {
	name, fields, ok := strings.Cut(arg, ":")
	if !ok || name == "" {
		return "", nil, fmt.Errorf("%w: %q", confdoc.ErrInvalidRow, arg)
	}

	row := confdoc.KeyValue{}

	if fields == "" {
		return name, row, nil
	}

	for field := range strings.SplitSeq(fields, ",") {
		key, value, err := parsePair(field)
		if err != nil {
			return "", nil, fmt.Errorf("%w: %q: %w", confdoc.ErrInvalidRow, arg, err)
		}

		if !s.InsertKeyValue(key, value, row) {
			o.Warn(fmt.Sprintf("%s %q in row %q", confdoc.ErrDuplicateKey, key, arg), "keeping "+row[key])
		}
	}

	return name, row, nil
}
