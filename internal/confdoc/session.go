// Package confdoc assembles, merges, persists and queries JSON configuration
// documents.
//
// Documents are built bottom-up: key/value pairs go into a [KeyValue], rows
// of pairs into a [RowArray], and named row arrays into a [NamedCollection].
// Each builder converts to an immutable [document.Document] for merging,
// saving or extraction.
//
// All operations hang off a [Session], which owns the log sink, the
// filesystem and the default document path for one unit of work:
//
//	s := confdoc.NewSession(cfg, log, fs.NewReal())
//
//	keys := confdoc.KeyValue{}
//	s.InsertKeyValue("db", "testdb", keys)
//
//	merged, err := s.Merge(base, keys.Document())
//	if err != nil {
//	    return err
//	}
//
//	return s.Save("out.json", merged)
package confdoc

import (
	"log/slog"

	"github.com/calvinalkan/confdoc/internal/document"
	"github.com/calvinalkan/confdoc/internal/fs"
	"github.com/calvinalkan/confdoc/internal/logging"
)

// Session carries the collaborators shared by the builders, merge engine,
// extractor and persistence adapter. A Session is not safe for concurrent
// use.
type Session struct {
	cfg Config
	log *slog.Logger
	fs  fs.FS

	current document.Document
}

// NewSession returns a Session. A nil log discards diagnostics.
func NewSession(cfg Config, log *slog.Logger, fsys fs.FS) *Session {
	if log == nil {
		log = logging.Discard()
	}

	return &Session{cfg: cfg, log: log, fs: fsys}
}

// Config returns the configuration the session was created with.
func (s *Session) Config() Config {
	return s.cfg
}

// DocumentPath returns the resolved path of the default document.
func (s *Session) DocumentPath() string {
	if s.cfg.ConfigFileAbs != "" {
		return s.cfg.ConfigFileAbs
	}

	return s.cfg.ConfigFile
}

// Current returns the document most recently loaded by [Session.LoadDefault].
// It is null before the first successful load.
func (s *Session) Current() document.Document {
	return s.current
}

// LoadDefault reads the default document into the session. On failure the
// current document becomes null.
func (s *Session) LoadDefault() error {
	doc, err := s.Load(s.DocumentPath())
	s.current = doc

	return err
}

// SaveDefault writes doc to the default document path.
func (s *Session) SaveDefault(doc document.Document) error {
	return s.Save(s.DocumentPath(), doc)
}

// GetDefaultKey is [Session.GetKey] against [Session.Current].
func (s *Session) GetDefaultKey(key string) string {
	return s.GetKey(key, s.current)
}

func (s *Session) trace(msg string, args ...any) {
	logging.Trace(s.log, msg, args...)
}
