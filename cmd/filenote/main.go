package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/kseistrup/filenote/attr"
	"github.com/kseistrup/filenote/common"
	"github.com/kseistrup/filenote/config"
	"github.com/kseistrup/filenote/note"
)

// Environment variable names
var (
	envPrefix     = strings.ToUpper(common.AppName) + "_"
	envName       = envPrefix + "NAME"
	envConfigPath = envPrefix + "CONFIG"
)

func main() {
	cli.VersionFlag = &cli.BoolFlag{
		Name:  "version",
		Usage: "Print version information and exit",
	}

	app := &cli.App{
		Name:            common.AppName,
		Usage:           "Attach a comment to a file or directory",
		Version:         fmt.Sprintf("%s (%s, %s)", common.Version, common.Commit, common.BuildDate),
		ArgsUsage:       "PATH...",
		HideHelpCommand: true,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "comment",
				Aliases: []string{"c"},
				Usage:   "Set `COMMENT` as the comment; an empty value removes it",
			},
			&cli.BoolFlag{
				Name:    "remove",
				Aliases: []string{"x"},
				Usage:   "Remove the comment",
			},
			&cli.BoolFlag{
				Name:   "delete",
				Usage:  "Remove the comment (legacy spelling)",
				Hidden: true,
			},
			&cli.BoolFlag{
				Name:    "files-only",
				Aliases: []string{"f"},
				Usage:   "Act on files only",
			},
			&cli.BoolFlag{
				Name:    "dirs-only",
				Aliases: []string{"d"},
				Usage:   "Act on directories only",
			},
			&cli.BoolFlag{
				Name:    "long",
				Aliases: []string{"l"},
				Usage:   "Show comments as 'path: comment'",
			},
			&cli.StringFlag{
				Name:    "name",
				Aliases: []string{"n"},
				Usage:   "Use attribute `NAME` instead of " + common.DefaultAttribute,
				EnvVars: []string{envName},
			},
			&cli.StringFlag{
				Name:    "config",
				Usage:   "Path to config file",
				EnvVars: []string{envConfigPath},
			},
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   "Enable verbose output",
			},
			&cli.BoolFlag{
				Name:  "copyright",
				Usage: "Print copyright information and exit",
			},
		},
		Action: run,
	}

	if err := app.Run(os.Args); err != nil {
		common.ExitWithError(err)
	}
}

func run(c *cli.Context) error {
	if c.Bool("copyright") {
		fmt.Println(common.Copyright)
		return nil
	}

	log := common.NewLogger(c)

	cfg, cfgPath, err := config.LoadConfig(c)
	if err != nil {
		return fmt.Errorf("config %s: %w", cfgPath, err)
	}
	if cfgPath != "" {
		log.Debug().Str("config", cfgPath).Msg("Loaded configuration")
	}

	name, err := attr.Parse(resolveAttributeName(c.IsSet("name"), c.String("name"), cfg))
	if err != nil {
		return err
	}

	filesOnly := c.Bool("files-only")
	dirsOnly := c.Bool("dirs-only")
	if filesOnly && dirsOnly {
		return fmt.Errorf("--files-only and --dirs-only are mutually exclusive")
	}
	sel := note.DefaultSelector()
	if filesOnly {
		sel.Dirs = false
	}
	if dirsOnly {
		sel.Files = false
	}
	if err := sel.Validate(); err != nil {
		return err
	}

	mode, err := note.ResolveMode(
		c.Bool("remove") || c.Bool("delete"),
		c.IsSet("comment"),
		c.String("comment"),
	)
	if err != nil {
		return err
	}

	paths := c.Args().Slice()
	if len(paths) == 0 {
		return fmt.Errorf("missing path argument")
	}

	long := c.Bool("long") || cfg.Long
	engine := note.NewEngine(note.SysStore{}, name, sel, log)

	failed := processPaths(engine, mode, paths, c.String("comment"), long, os.Stderr)
	if failed > 0 {
		log.Debug().Int("failed", failed).Int("total", len(paths)).Msg("Some paths failed")
		return cli.Exit("", 1)
	}

	return nil
}

// resolveAttributeName applies the flag > config file > compiled-in
// default precedence for the attribute name
func resolveAttributeName(flagSet bool, flagValue string, cfg *config.Config) string {
	if flagSet {
		return flagValue
	}
	if cfg.Attribute != "" {
		return cfg.Attribute
	}
	return common.DefaultAttribute
}

// processPaths runs the operation on every path in order. Failures are
// reported as they happen and do not stop the remaining paths; the number
// of failed paths is returned so the caller can decide the exit code.
func processPaths(engine *note.Engine, mode note.Mode, paths []string, comment string, long bool, errw io.Writer) int {
	failed := 0
	for _, path := range paths {
		if err := process(engine, mode, path, comment, long); err != nil {
			fmt.Fprintf(errw, "%s: %s\n", common.AppName, err)
			failed++
		}
	}
	return failed
}

func process(engine *note.Engine, mode note.Mode, path, comment string, long bool) error {
	switch mode {
	case note.ModeWrite:
		return engine.Write(path, comment)
	case note.ModeRemove:
		return engine.Remove(path)
	default:
		text, err := engine.Read(path)
		if err != nil {
			return err
		}
		if text != "" {
			fmt.Println(note.Format(path, text, long))
		}
		return nil
	}
}
