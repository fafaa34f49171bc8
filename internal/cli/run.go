package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/calvinalkan/confdoc/internal/confdoc"
	"github.com/calvinalkan/confdoc/internal/fs"
	"github.com/calvinalkan/confdoc/internal/logging"
)

const (
	minArgs      = 2
	consumedOne  = 1
	consumedTwo  = 2
	consumedNone = 0
	helpFlag     = "--help"
)

// Run is the main entry point. Returns exit code.
//
// A signal received on sigCh cancels the context passed to the command.
// sigCh may be nil.
func Run(_ io.Reader, out io.Writer, errOut io.Writer, args []string, env map[string]string, sigCh <-chan os.Signal) int {
	if len(args) < minArgs {
		printUsage(out, allCommands(nil))

		return 0
	}

	flags, err := parseGlobalFlags(args[1:])
	if err != nil {
		fprintln(errOut, "error:", err)

		return 1
	}

	if len(flags.remaining) == 0 || flags.remaining[0] == "-h" || flags.remaining[0] == helpFlag {
		printUsage(out, allCommands(nil))

		return 0
	}

	cfg, err := confdoc.LoadConfig(confdoc.LoadConfigInput{
		WorkDirOverride:  flags.workDir,
		ConfigPath:       flags.configPath,
		DocumentOverride: flags.document,
		LogFileOverride:  flags.logFile,
		LogLevelOverride: flags.logLevel,
		Env:              env,
	})
	if err != nil {
		fprintln(errOut, "error:", err)

		return 1
	}

	// Level was validated by LoadConfig.
	level, _ := logging.ParseLevel(cfg.LogLevel)
	fsys := fs.NewReal()

	log, closer, err := logging.Open(fsys, cfg.LogFileAbs, errOut, cfg.LogName, level)
	if err != nil {
		fprintln(errOut, "error:", err)

		return 1
	}

	defer func() { _ = closer.Close() }()

	session := confdoc.NewSession(cfg, log, fsys)
	commands := allCommands(session)

	name := flags.remaining[0]

	cmd, ok := findCommand(commands, name)
	if !ok {
		fprintln(errOut, "error: unknown command:", name)
		printUsage(errOut, commands)

		return 1
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan struct{})
	defer close(done)

	if sigCh != nil {
		go func() {
			select {
			case sig := <-sigCh:
				log.Warn("interrupted", "signal", sig.String())
				cancel()
			case <-done:
			}
		}()
	}

	return cmd.Run(ctx, NewIO(out, errOut), flags.remaining[1:])
}

// allCommands returns every command bound to s. Usage listings pass a nil
// session; Exec is never called on those.
func allCommands(s *confdoc.Session) []*Command {
	return []*Command{
		ShowCmd(s),
		GetCmd(s),
		GetArrayCmd(s),
		PairsCmd(s),
		BuildCmd(s),
		MergeCmd(s),
		DiffCmd(s),
		PrintConfigCmd(s),
	}
}

func findCommand(commands []*Command, name string) (*Command, bool) {
	for _, cmd := range commands {
		if cmd.Name() == name {
			return cmd, true
		}
	}

	return nil, false
}

type globalFlags struct {
	workDir    string
	configPath string
	document   string
	logFile    string
	logLevel   string
	remaining  []string
}

// valueFlag is a global flag that takes one argument.
type valueFlag struct {
	short string
	long  string
	set   func(*globalFlags, string)
}

var valueFlags = []valueFlag{
	{short: "-C", long: "--cwd", set: func(f *globalFlags, v string) { f.workDir = v }},
	{short: "-c", long: "--config", set: func(f *globalFlags, v string) { f.configPath = v }},
	{short: "-f", long: "--file", set: func(f *globalFlags, v string) { f.document = v }},
	{long: "--log-file", set: func(f *globalFlags, v string) { f.logFile = v }},
	{long: "--log-level", set: func(f *globalFlags, v string) { f.logLevel = v }},
}

func parseGlobalFlags(args []string) (globalFlags, error) {
	var flags globalFlags

	idx := 0
	for idx < len(args) {
		consumed, err := parseFlag(args, idx, &flags)
		if err != nil {
			return globalFlags{}, err
		}

		if consumed == 0 {
			// Not a flag, this is the command
			flags.remaining = args[idx:]

			break
		}

		idx += consumed
	}

	return flags, nil
}

// parseFlag tries to parse a flag at args[idx]. Returns number of args consumed (0 if not a flag).
func parseFlag(args []string, idx int, flags *globalFlags) (int, error) {
	arg := args[idx]

	for _, vf := range valueFlags {
		if arg == vf.long || (vf.short != "" && arg == vf.short) {
			if idx+1 >= len(args) {
				return consumedNone, fmt.Errorf("%w: %s", confdoc.ErrFlagRequiresArg, arg)
			}

			vf.set(flags, args[idx+1])

			return consumedTwo, nil
		}

		if after, ok := strings.CutPrefix(arg, vf.long+"="); ok {
			vf.set(flags, after)

			return consumedOne, nil
		}

		// -Cdir, -cfile, -fdoc.json
		if vf.short != "" && len(arg) > len(vf.short) {
			if after, ok := strings.CutPrefix(arg, vf.short); ok {
				vf.set(flags, after)

				return consumedOne, nil
			}
		}
	}

	// -h/--help flags
	if arg == "-h" || arg == helpFlag {
		flags.remaining = []string{helpFlag}

		return len(args) - idx, nil
	}

	// Unknown flag
	if strings.HasPrefix(arg, "-") && arg != "-" {
		return consumedNone, fmt.Errorf("%w: %s", confdoc.ErrUnknownFlag, arg)
	}

	// Not a flag
	return consumedNone, nil
}

func fprintln(w io.Writer, a ...any) {
	_, _ = fmt.Fprintln(w, a...)
}

func printUsage(w io.Writer, commands []*Command) {
	fprintln(w, `confdoc - assemble, merge and inspect JSON configuration documents

Usage: confdoc [options] <command> [args]

Options:
  -C, --cwd <dir>        Run as if started in <dir>
  -c, --config <file>    Use specified settings file
  -f, --file <file>      Default document (overrides config_file)
      --log-file <file>  Write diagnostics to <file> ("-" for stderr)
      --log-level <lvl>  trace, debug, info, warn or error

Commands:`)

	for _, cmd := range commands {
		fprintln(w, cmd.HelpLine())
	}
}
