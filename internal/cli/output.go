package cli

import (
	"context"
	"path/filepath"

	"github.com/calvinalkan/confdoc/internal/confdoc"
	"github.com/calvinalkan/confdoc/internal/document"
)

// resolveArg resolves a path argument against the effective working
// directory so -C applies to command arguments too.
func resolveArg(s *confdoc.Session, path string) string {
	if filepath.IsAbs(path) {
		return path
	}

	return filepath.Join(s.Config().EffectiveCwd, path)
}

// printDocument writes doc to stdout, indented when pretty is set.
func printDocument(o *IO, doc document.Document, pretty bool) error {
	if !pretty {
		o.Println(doc.String())

		return nil
	}

	data, err := document.Indent(doc)
	if err != nil {
		return err
	}

	o.Println(string(data))

	return nil
}

// emit prints doc, or saves it when output is non-empty. Nothing is written
// once ctx is done.
func emit(ctx context.Context, o *IO, s *confdoc.Session, doc document.Document, output string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if output == "" {
		return printDocument(o, doc, s.Config().Pretty)
	}

	path := resolveArg(s, output)

	if err := s.Save(path, doc); err != nil {
		return err
	}

	o.Println("saved", path)

	return nil
}
