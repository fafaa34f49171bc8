// Package shell implements confsh, an interactive prompt for assembling
// configuration documents step by step.
//
// The shell keeps three builders (pending pairs, pending rows and a named
// collection) plus a working document that load, merge, get and save
// operate on. [Shell.Exec] runs one command line and is independent of the
// terminal; [Shell.Run] wraps it in a liner prompt.
package shell

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/calvinalkan/confdoc/internal/confdoc"
	"github.com/calvinalkan/confdoc/internal/document"
)

// Shell is one interactive session. It is not safe for concurrent use.
type Shell struct {
	session *confdoc.Session
	out     io.Writer

	pairs      confdoc.KeyValue
	rows       confdoc.RowArray
	collection confdoc.NamedCollection
	doc        document.Document
}

// New returns a Shell with empty builders and a null working document.
func New(session *confdoc.Session, out io.Writer) *Shell {
	sh := &Shell{session: session, out: out}
	sh.reset()

	return sh
}

// Document returns the working document.
func (sh *Shell) Document() document.Document {
	return sh.doc
}

// commandNames is used for tab completion.
var commandNames = []string{
	"set", "json", "row", "collect", "pairs", "assemble",
	"show", "load", "save", "merge", "get", "array", "dump",
	"reset", "help", "exit", "quit", "q",
}

// Exec runs a single command line. It returns false when the shell should
// exit.
func (sh *Shell) Exec(line string) bool {
	line = strings.TrimSpace(line)
	if line == "" {
		return true
	}

	cmd, rest, _ := strings.Cut(line, " ")
	cmd = strings.ToLower(cmd)
	rest = strings.TrimSpace(rest)

	switch cmd {
	case "exit", "quit", "q":
		return false

	case "help", "?":
		sh.printHelp()

	case "set":
		sh.cmdSet(rest)

	case "json":
		sh.cmdJSON(rest)

	case "row":
		sh.cmdRow()

	case "collect":
		sh.cmdCollect(rest)

	case "pairs":
		sh.setDocument(sh.pairs.Document())

	case "assemble":
		sh.setDocument(sh.collection.Document())

	case "show":
		sh.printf("%s\n", sh.doc.String())

	case "load":
		sh.cmdLoad(rest)

	case "save":
		sh.cmdSave(rest)

	case "merge":
		sh.cmdMerge(rest)

	case "get":
		sh.cmdGet(rest)

	case "array":
		sh.cmdArray(rest)

	case "dump":
		sh.cmdDump(rest)

	case "reset":
		sh.reset()
		sh.printf("cleared\n")

	default:
		sh.printf("Unknown command: %s (type 'help' for commands)\n", cmd)
	}

	return true
}

func (sh *Shell) reset() {
	sh.pairs = confdoc.KeyValue{}
	sh.rows = nil
	sh.collection = confdoc.NamedCollection{}
	sh.doc = document.Document{}
}

func (sh *Shell) printf(format string, a ...any) {
	_, _ = fmt.Fprintf(sh.out, format, a...)
}

func (sh *Shell) setDocument(doc document.Document) {
	sh.doc = doc
	sh.printf("%s\n", doc.String())
}

func (sh *Shell) resolve(path string) string {
	if filepath.IsAbs(path) {
		return path
	}

	return filepath.Join(sh.session.Config().EffectiveCwd, path)
}

func (sh *Shell) cmdSet(rest string) {
	key, value, _ := strings.Cut(rest, " ")
	if key == "" {
		sh.printf("Usage: set <key> <value>\n")

		return
	}

	if !sh.session.InsertKeyValue(key, strings.TrimSpace(value), sh.pairs) {
		sh.printf("%s %q: keeping %s\n", confdoc.ErrDuplicateKey, key, sh.pairs[key])

		return
	}

	sh.printf("ok (%d pending)\n", len(sh.pairs))
}

func (sh *Shell) cmdJSON(rest string) {
	if rest == "" {
		sh.printf("Usage: json <object>\n")

		return
	}

	if !sh.session.InsertJSON(rest, sh.pairs) {
		sh.printf("not fully inserted (invalid JSON or duplicate key), %d pending\n", len(sh.pairs))

		return
	}

	sh.printf("ok (%d pending)\n", len(sh.pairs))
}

func (sh *Shell) cmdRow() {
	sh.session.AppendRow(&sh.rows, sh.pairs)
	sh.pairs = confdoc.KeyValue{}

	sh.printf("row %d added\n", len(sh.rows))
}

func (sh *Shell) cmdCollect(name string) {
	if name == "" {
		sh.printf("Usage: collect <name>\n")

		return
	}

	if !sh.session.InsertRows(name, sh.rows, sh.collection) {
		sh.printf("%s %q: pending rows kept\n", confdoc.ErrDuplicateName, name)

		return
	}

	sh.printf("collected %d rows as %s\n", len(sh.rows), name)
	sh.rows = nil
}

func (sh *Shell) cmdLoad(path string) {
	if path == "" {
		path = sh.session.DocumentPath()
	} else {
		path = sh.resolve(path)
	}

	doc, err := sh.session.Load(path)
	if err != nil {
		sh.printf("error: %v\n", err)

		return
	}

	sh.setDocument(doc)
}

func (sh *Shell) cmdSave(path string) {
	if path == "" {
		path = sh.session.DocumentPath()
	} else {
		path = sh.resolve(path)
	}

	if err := sh.session.Save(path, sh.doc); err != nil {
		sh.printf("error: %v\n", err)

		return
	}

	sh.printf("saved %s\n", path)
}

func (sh *Shell) cmdMerge(path string) {
	if path == "" {
		sh.printf("Usage: merge <file>\n")

		return
	}

	other, err := sh.session.Load(sh.resolve(path))
	if err != nil {
		sh.printf("error: %v\n", err)

		return
	}

	merged, err := sh.session.Merge(sh.doc, other)
	if err != nil {
		sh.printf("error: %v\n", err)

		return
	}

	sh.setDocument(merged)
}

func (sh *Shell) cmdGet(key string) {
	if key == "" {
		sh.printf("Usage: get <key>\n")

		return
	}

	sh.printf("%s\n", sh.session.GetKey(key, sh.doc))
}

func (sh *Shell) cmdArray(key string) {
	if key == "" {
		sh.printf("Usage: array <key>\n")

		return
	}

	values, count := sh.session.GetKeyArray(key, sh.doc)
	for i, item := range values.Items() {
		sh.printf("%s[%d]=%s\n", key, i, item.Text())
	}

	sh.printf("count=%d\n", count)
}

func (sh *Shell) cmdDump(key string) {
	if key == "" {
		sh.printf("Usage: dump <key>\n")

		return
	}

	sh.printf("%d members logged\n", sh.session.PrintArray(key, sh.doc))
}

// completer provides tab completion for commands.
func completer(line string) []string {
	var completions []string

	lower := strings.ToLower(line)
	for _, cmd := range commandNames {
		if strings.HasPrefix(cmd, lower) {
			completions = append(completions, cmd)
		}
	}

	return completions
}

func (sh *Shell) printHelp() {
	sh.printf(`Commands:
  set <key> <value>     Add a pair to the pending row
  json <object>         Add every member of a JSON object to the pending row
  row                   Close the pending row and start a new one
  collect <name>        Store the pending rows under <name>
  pairs                 Use the pending row as the working document
  assemble              Use the collection as the working document
  show                  Print the working document
  load [file]           Load a file (default document if omitted)
  save [file]           Save the working document
  merge <file>          Merge a file into the working document, file wins
  get <key>             Print a top-level value
  array <key>           Print every field of the rows under <key>
  dump <key>            Log every field of the rows under <key> at trace level
  reset                 Clear all builders and the working document
  help                  Show this help
  exit / quit / q       Exit
`)
}
