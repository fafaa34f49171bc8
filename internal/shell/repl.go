package shell

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/peterh/liner"
)

// HistoryFile returns the path to the history file, or "" when the home
// directory is unknown.
func HistoryFile(env map[string]string) string {
	home := env["HOME"]
	if home == "" {
		return ""
	}

	return filepath.Join(home, ".confsh_history")
}

// Run starts the interactive loop on the terminal and returns when the
// user quits or closes input. History is read from and written to
// historyPath unless it is empty.
func (sh *Shell) Run(historyPath string) error {
	line := liner.NewLiner()
	defer line.Close()

	line.SetCtrlCAborts(true)
	line.SetCompleter(completer)

	if historyPath != "" {
		if f, err := os.Open(historyPath); err == nil {
			_, _ = line.ReadHistory(f)
			_ = f.Close()
		}
	}

	defer sh.saveHistory(line, historyPath)

	sh.printf("confsh - default document %s\n", sh.session.DocumentPath())
	sh.printf("Type 'help' for available commands.\n\n")

	for {
		input, err := line.Prompt("confsh> ")
		if err != nil {
			if errors.Is(err, liner.ErrPromptAborted) || errors.Is(err, io.EOF) {
				sh.printf("\nBye!\n")

				return nil
			}

			return fmt.Errorf("reading input: %w", err)
		}

		if input != "" {
			line.AppendHistory(input)
		}

		if !sh.Exec(input) {
			sh.printf("Bye!\n")

			return nil
		}
	}
}

// saveHistory persists command history to disk.
func (sh *Shell) saveHistory(line *liner.State, path string) {
	if path == "" {
		return
	}

	f, err := os.Create(path)
	if err != nil {
		return
	}

	_, _ = line.WriteHistory(f)
	_ = f.Close()
}
