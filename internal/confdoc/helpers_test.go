package confdoc_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/calvinalkan/confdoc/internal/confdoc"
	"github.com/calvinalkan/confdoc/internal/document"
	"github.com/calvinalkan/confdoc/internal/fs"
	"github.com/calvinalkan/confdoc/internal/logging"
)

var cmpEquateEmpty = cmpopts.EquateEmpty()

// newSession returns a session over the real filesystem whose trace log is
// captured in the returned buffer.
func newSession(t *testing.T) (*confdoc.Session, *bytes.Buffer) {
	t.Helper()

	return newSessionFS(t, fs.NewReal())
}

func newSessionFS(t *testing.T, fsys fs.FS) (*confdoc.Session, *bytes.Buffer) {
	t.Helper()

	var buf bytes.Buffer

	log := logging.New(&buf, "test", logging.LevelTrace)

	return confdoc.NewSession(confdoc.DefaultConfig(), log, fsys), &buf
}

func mustParse(t *testing.T, text string) document.Document {
	t.Helper()

	doc, err := document.Parse(text)
	if err != nil {
		t.Fatalf("parse %s: %v", text, err)
	}

	return doc
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}
