package cli

import (
	"context"

	flag "github.com/spf13/pflag"

	"github.com/calvinalkan/confdoc/internal/confdoc"
)

// PrintConfigCmd returns the print-config command.
func PrintConfigCmd(s *confdoc.Session) *Command {
	return &Command{
		Flags: flag.NewFlagSet("print-config", flag.ContinueOnError),
		Usage: "print-config",
		Short: "Show resolved configuration",
		Long:  "Display the effective configuration and which files it was loaded from.",
		Args:  exactArgs(0, "no arguments"),
		Exec: func(_ context.Context, io *IO, _ []string) error {
			return execPrintConfig(io, s.Config())
		},
	}
}

func execPrintConfig(io *IO, cfg confdoc.Config) error {
	formatted, err := confdoc.FormatConfig(cfg)
	if err != nil {
		return err
	}

	io.Println(formatted)
	io.Println("")
	io.Println("effective_cwd=" + cfg.EffectiveCwd)
	io.Println("document=" + cfg.ConfigFileAbs)

	if cfg.LogFileAbs != "" {
		io.Println("log_file=" + cfg.LogFileAbs)
	}

	io.Println("")
	io.Println("# sources")

	if cfg.Sources.Global == "" && cfg.Sources.Project == "" {
		io.Println("(defaults only)")
	} else {
		if cfg.Sources.Global != "" {
			io.Println("global_config=" + cfg.Sources.Global)
		}

		if cfg.Sources.Project != "" {
			io.Println("project_config=" + cfg.Sources.Project)
		}
	}

	return nil
}
