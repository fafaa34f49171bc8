// Package main provides confsh, an interactive shell for building JSON
// configuration documents.
package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	flag "github.com/spf13/pflag"

	"github.com/calvinalkan/confdoc/internal/confdoc"
	"github.com/calvinalkan/confdoc/internal/fs"
	"github.com/calvinalkan/confdoc/internal/logging"
	"github.com/calvinalkan/confdoc/internal/shell"
)

func main() {
	err := run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	flags := flag.NewFlagSet("confsh", flag.ContinueOnError)
	workDir := flags.StringP("cwd", "C", "", "Run as if started in `dir`")
	configPath := flags.StringP("config", "c", "", "Use specified settings `file`")
	document := flags.StringP("file", "f", "", "Default document (overrides config_file)")
	logFile := flags.String("log-file", "", "Write diagnostics to `file` (\"-\" for stderr)")
	logLevel := flags.String("log-level", "", "trace, debug, info, warn or error")

	err := flags.Parse(os.Args[1:])
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}

		return err
	}

	environ := os.Environ()
	env := make(map[string]string, len(environ))

	for _, e := range environ {
		if k, v, ok := strings.Cut(e, "="); ok {
			env[k] = v
		}
	}

	cfg, err := confdoc.LoadConfig(confdoc.LoadConfigInput{
		WorkDirOverride:  *workDir,
		ConfigPath:       *configPath,
		DocumentOverride: *document,
		LogFileOverride:  *logFile,
		LogLevelOverride: *logLevel,
		Env:              env,
	})
	if err != nil {
		return err
	}

	level, _ := logging.ParseLevel(cfg.LogLevel)
	fsys := fs.NewReal()

	log, closer, err := logging.Open(fsys, cfg.LogFileAbs, os.Stderr, cfg.LogName, level)
	if err != nil {
		return err
	}

	defer func() { _ = closer.Close() }()

	sh := shell.New(confdoc.NewSession(cfg, log, fsys), os.Stdout)

	return sh.Run(shell.HistoryFile(env))
}
