package confdoc

import (
	"fmt"

	"github.com/calvinalkan/confdoc/internal/document"
)

const documentFilePerms = 0o644

// Load reads the whole file at path and parses it. Comments and trailing
// commas are accepted. On any failure Load returns the null document and
// an error: [ErrFileOpen] when the file cannot be read, [document.ErrSyntax]
// when it does not parse. An empty file is a syntax error.
func (s *Session) Load(path string) (document.Document, error) {
	data, err := s.fs.ReadFile(path)
	if err != nil {
		s.log.Warn("unable to open document", "path", path, "error", err)

		return document.Document{}, fmt.Errorf("%w %s: %w", ErrFileOpen, path, err)
	}

	s.trace("document read", "path", path, "bytes", len(data))

	doc, err := document.ParseJSONC(data)
	if err != nil {
		s.log.Warn("document parse error", "path", path, "error", err)

		return document.Document{}, fmt.Errorf("%s: %w", path, err)
	}

	return doc, nil
}

// Save serializes doc and writes it to path followed by a newline,
// replacing any existing content. Output is compact unless the session's
// config sets Pretty. A document that cannot be encoded exactly, such as
// one holding invalid UTF-8, is an [ErrFileWrite] error and path is left
// untouched.
func (s *Session) Save(path string, doc document.Document) error {
	var (
		data []byte
		err  error
	)

	if s.cfg.Pretty {
		data, err = document.Indent(doc)
	} else {
		data, err = doc.Encode()
	}

	if err != nil {
		s.log.Warn("unable to encode document", "path", path, "error", err)

		return fmt.Errorf("%w %s: %w", ErrFileWrite, path, err)
	}

	data = append(data, '\n')

	err = s.fs.WriteFileAtomic(path, data, documentFilePerms)
	if err != nil {
		s.log.Warn("unable to write document", "path", path, "error", err)

		return fmt.Errorf("%w %s: %w", ErrFileWrite, path, err)
	}

	s.trace("document saved", "path", path, "bytes", len(data))

	return nil
}
