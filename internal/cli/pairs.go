package cli

import (
	"context"
	"fmt"
	"strings"

	flag "github.com/spf13/pflag"

	"github.com/calvinalkan/confdoc/internal/confdoc"
)

// PairsCmd returns the pairs command.
func PairsCmd(s *confdoc.Session) *Command {
	fs := flag.NewFlagSet("pairs", flag.ContinueOnError)
	jsonArgs := fs.StringArray("json", nil, "Insert the members of a JSON object (repeatable)")
	output := fs.StringP("output", "o", "", "Write the document to `file` instead of stdout")

	return &Command{
		Flags: fs,
		Usage: "pairs [key=value]... [--json TEXT]... [-o file]",
		Short: "Build an object from key=value pairs",
		Long: `Build a flat object document.

--json objects are inserted first, in the order given, then the key=value
arguments. A key keeps its first value; later duplicates are reported as
warnings and the command exits 1 after printing the document.`,
		Exec: func(ctx context.Context, o *IO, args []string) error {
			kv := confdoc.KeyValue{}

			for _, text := range *jsonArgs {
				if !s.InsertJSON(text, kv) {
					o.Warn(fmt.Sprintf("--json %s", text), "not fully inserted (invalid JSON or duplicate key)")
				}
			}

			for _, arg := range args {
				key, value, err := parsePair(arg)
				if err != nil {
					return err
				}

				if !s.InsertKeyValue(key, value, kv) {
					o.Warn(fmt.Sprintf("%s %q", confdoc.ErrDuplicateKey, key), "keeping "+kv[key])
				}
			}

			return emit(ctx, o, s, kv.Document(), *output)
		},
	}
}

// parsePair splits key=value. The value may contain '='.
func parsePair(arg string) (string, string, error) {
	key, value, ok := strings.Cut(arg, "=")
	if !ok || key == "" {
		return "", "", fmt.Errorf("%w: %q", confdoc.ErrInvalidPair, arg)
	}

	return key, value, nil
}
