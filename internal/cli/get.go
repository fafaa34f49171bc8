package cli

import (
	"context"

	flag "github.com/spf13/pflag"

	"github.com/calvinalkan/confdoc/internal/confdoc"
)

// GetCmd returns the get command.
func GetCmd(s *confdoc.Session) *Command {
	fs := flag.NewFlagSet("get", flag.ContinueOnError)
	raw := fs.Bool("raw", false, "Decode string values instead of stripping quotes")

	return &Command{
		Flags: fs,
		Usage: "get <key> [--raw]",
		Short: "Print one top-level value of the default document",
		Long: `Print the value stored under <key> in the default document.

String values are printed without their surrounding quotes; other values
are printed as JSON. A missing key prints "null". With --raw, string
escapes are decoded as well.`,
		Args: keyArgs,
		Exec: func(_ context.Context, o *IO, args []string) error {
			key := args[0]

			if err := s.LoadDefault(); err != nil {
				return err
			}

			if *raw {
				o.Println(s.Current().Get(key).Text())

				return nil
			}

			o.Println(s.GetDefaultKey(key))

			return nil
		},
	}
}

// GetArrayCmd returns the get-array command.
func GetArrayCmd(s *confdoc.Session) *Command {
	return &Command{
		Flags: flag.NewFlagSet("get-array", flag.ContinueOnError),
		Usage: "get-array <key>",
		Short: "Print every field of the rows stored under a key",
		Long: `Flatten the array of rows stored under <key> in the default document.

Prints one key[i]=value line per field, visiting rows in order and the
fields of each row in ascending name order, followed by count=N.`,
		Args: keyArgs,
		Exec: func(_ context.Context, o *IO, args []string) error {
			key := args[0]

			if err := s.LoadDefault(); err != nil {
				return err
			}

			values, count := s.GetKeyArray(key, s.Current())

			for i, item := range values.Items() {
				o.Printf("%s[%d]=%s\n", key, i, item.Text())
			}

			o.Printf("count=%d\n", count)

			return nil
		},
	}
}
