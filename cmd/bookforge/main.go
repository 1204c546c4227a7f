package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"runtime/debug"
	"strings"
	"syscall"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"bookforge/commands"
	"bookforge/common"
	"bookforge/config"
	"bookforge/misc"
	"bookforge/state"
)

// initializeAppContext prepares application context before command execution but
// after command line has been parsed
func initializeAppContext(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	var err error

	if cmd.NArg() == 0 {
		// nothing to do, just return
		return ctx, nil
	}

	env := state.EnvFromContext(ctx)

	configFile := cmd.String("config")
	if env.Cfg, err = config.LoadConfiguration(configFile); err != nil {
		return ctx, fmt.Errorf("unable to prepare configuration: %w", err)
	}
	if path := cmd.String("store"); len(path) > 0 {
		env.Cfg.Storage.Path = path
	}
	if cmd.Bool("debug") {
		if env.Rpt, err = env.Cfg.Reporting.Prepare(); err != nil {
			return ctx, fmt.Errorf("unable to prepare debug reporter: %w", err)
		}
		// save complete processed configuration if external configuration was provided
		if len(configFile) > 0 {
			if data, err := config.Dump(env.Cfg); err == nil {
				env.Rpt.StoreData(fmt.Sprintf("config/%s", filepath.Base(configFile)), data)
			}
		}
	}
	if env.Log, err = env.Cfg.Logging.Prepare(env.Rpt); err != nil {
		return ctx, fmt.Errorf("unable to prepare logs: %w", err)
	}
	env.RedirectStdLog()

	env.Log.Debug("Program started", zap.Strings("args", os.Args), zap.String("ver", misc.GetVersion()), zap.String("runtime", runtime.Version()), zap.String("hash", misc.GetGitHash()))

	if env.Rpt != nil {
		env.Log.Info("Creating debug report", zap.String("location", env.Rpt.Name()))
	}
	if len(configFile) == 0 && env.Log != nil {
		env.Log.Info("Using defaults (no configuration file)")
	}
	return ctx, nil
}

func destroyAppContext(ctx context.Context, cmd *cli.Command) (err error) {
	env := state.EnvFromContext(ctx)

	if env.Log != nil {
		env.Log.Debug("Program ended", zap.Duration("elapsed", env.Uptime()), zap.Strings("parsed args", cmd.Args().Slice()))
	}

	// close logging
	env.RestoreStdLog()

	// log is synced now and result can be used in report if necessary, errors
	// must be reported directly to stderr from now on
	if env.Rpt != nil {
		if er := env.Rpt.Close(); er != nil {
			err = multierr.Append(err, fmt.Errorf("unable to close debug report: %w", er))
		}
	}
	// reporting is closed now - remove empty panic file if any
	if env.Cfg != nil && len(env.Cfg.Logging.FileLogger.Destination) > 0 {
		debug.SetCrashOutput(nil, debug.CrashOptions{})
		fname := filepath.Join(filepath.Dir(env.Cfg.Logging.FileLogger.Destination), misc.GetAppName()+"-panic.log")
		if fi, er := os.Stat(fname); er == nil && fi.Size() == 0 {
			if er := os.Remove(fname); er != nil {
				err = multierr.Append(err, fmt.Errorf("unable to remove empty panic log file '%s': %w", fname, er))
			}
		}
	}
	return
}

// Ignore urfave/cli default error handling, subcommands return regular
// errors.
var errWasHandled bool

// this is called before appContext is destroyed, so we have a chance to
// properly log any error from subcommand
func exitErrHandler(ctx context.Context, _ *cli.Command, err error) {

	env := state.EnvFromContext(ctx)

	if env.Log != nil {
		env.Log.Error("Program ended with error", zap.Error(err))
		errWasHandled = true
	}
}

func usageErrorHandler(_ context.Context, _ *cli.Command, err error, _ bool) error {
	// do nothing special, error is reported either by exitErrHandler or on
	// exit directly to stderr.
	return err
}

func subcommandNotFoundHandler(ctx context.Context, _ *cli.Command, name string) {
	state.EnvFromContext(ctx).Log.Warn("Unknown command, nothing to do", zap.String("command", name))
}

func names(list []string) string {
	return strings.Join(list, ", ")
}

func overwriteFlag() cli.Flag {
	return &cli.BoolFlag{Name: "overwrite", Aliases: []string{"ow"}, Usage: "continue even if destination exists, overwrite it"}
}

func exportFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "profile", Usage: "export `PROFILE` (" + names(common.ExportProfileNames()) + "), digital drops bleed and crop marks"},
		&cli.StringFlag{Name: "color", Usage: "color `MODE` (" + names(common.ColorModeNames()) + ")"},
		&cli.StringFlag{Name: "compression", Usage: "bundle compression `LEVEL` (" + names(common.CompressionNames()) + ")"},
		&cli.BoolFlag{Name: "spreads", Usage: "export facing pages as spreads"},
		&cli.BoolFlag{Name: "bleed", Usage: "include bleed"},
		&cli.BoolFlag{Name: "crop-marks", Usage: "include crop marks"},
		&cli.BoolFlag{Name: "embed-fonts", Usage: "embed fonts"},
		&cli.BoolFlag{Name: "bookmarks", Usage: "produce section bookmarks"},
		&cli.BoolFlag{Name: "guides", Usage: "draw margin guides"},
		&cli.BoolFlag{Name: "block", Usage: "refuse export when checklist has errors"},
		&cli.FloatFlag{Name: "min-dpi", Usage: "warn about images below `DPI`"},
	}
}

func settingsFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "format", Usage: "page `FORMAT` (" + names(common.PageFormatNames()) + ")"},
		&cli.StringFlag{Name: "orientation", Usage: "page `ORIENTATION` (" + names(common.OrientationNames()) + ")"},
		&cli.FloatFlag{Name: "width", Usage: "page width in `MM`, switches to custom format unless it matches named one"},
		&cli.FloatFlag{Name: "height", Usage: "page height in `MM`"},
		&cli.FloatFlag{Name: "dpi", Usage: "screen `RESOLUTION` used for pixel geometry"},
		&cli.BoolFlag{Name: "spreads", Usage: "show facing pages"},
		&cli.BoolFlag{Name: "start-on-right", Usage: "first page is a recto, a virtual blank precedes it"},
		&cli.FloatFlag{Name: "top", Usage: "top margin in `MM`"},
		&cli.FloatFlag{Name: "bottom", Usage: "bottom margin in `MM`"},
		&cli.FloatFlag{Name: "inside", Usage: "inside margin in `MM`"},
		&cli.FloatFlag{Name: "outside", Usage: "outside margin in `MM`"},
		&cli.FloatFlag{Name: "spine", Usage: "spine allowance in `MM`"},
		&cli.FloatFlag{Name: "compensation", Usage: "odd/even inside compensation in `MM`"},
		&cli.BoolFlag{Name: "show-margins", Usage: "draw margin overlay"},
		&cli.StringFlag{Name: "preset", Usage: "margin overlay `PRESET` (" + names(common.VisualPresetNames()) + "), drops overrides"},
		&cli.StringFlag{Name: "mode", Usage: "overlay `MODE` (" + names(common.VisualModeNames()) + ")"},
		&cli.StringFlag{Name: "line", Usage: "overlay line `STYLE` (" + names(common.LineStyleNames()) + ")"},
		&cli.FloatFlag{Name: "opacity", Usage: "overlay opacity"},
		&cli.FloatFlag{Name: "stroke", Usage: "overlay stroke width in `PX`"},
		&cli.BoolFlag{Name: "legend", Usage: "show overlay legend"},
		&cli.StringSliceFlag{Name: "color", Usage: "overlay colour override `TYPE=#RRGGBB` (types: " + names(common.MarginTypeNames()) + ")"},
		&cli.StringSliceFlag{Name: "show", Usage: "show overlay margin `TYPE`"},
		&cli.StringSliceFlag{Name: "hide", Usage: "hide overlay margin `TYPE`"},
		&cli.FloatFlag{Name: "bleed", Usage: "bleed in `MM`"},
		&cli.FloatFlag{Name: "safe", Usage: "safe area in `MM`"},
		&cli.BoolFlag{Name: "show-bleed", Usage: "draw bleed"},
		&cli.BoolFlag{Name: "show-safe", Usage: "draw safe area"},
		&cli.StringFlag{Name: "grid-preset", Usage: "apply grid `PRESET` by name"},
		&cli.IntFlag{Name: "columns", Usage: "grid `COLUMNS` (1 - 12)"},
		&cli.FloatFlag{Name: "gutter", Usage: "grid gutter in `MM`"},
		&cli.FloatFlag{Name: "baseline", Usage: "baseline grid step in `MM`"},
		&cli.BoolFlag{Name: "snap", Usage: "snap to grid"},
		&cli.BoolFlag{Name: "rulers", Usage: "show rulers"},
		&cli.BoolFlag{Name: "grid-guides", Usage: "draw column grid, exported with --guides"},
		&cli.StringFlag{Name: "save-grid-preset", Usage: "save resulting grid as preset `NAME`"},
	}
}

func main() {

	// allow graceful shutdown on interrupt.
	ctx, stop := signal.NotifyContext(state.ContextWithEnv(context.Background()), os.Interrupt, syscall.SIGTERM)

	app := &cli.Command{
		Name:            misc.GetAppName(),
		Usage:           "page layout engine for books: pages, sections, masters, spreads and export",
		Version:         misc.GetVersion() + " (" + runtime.Version() + ") : " + misc.GetGitHash(),
		HideHelpCommand: true,
		Before:          initializeAppContext,
		After:           destroyAppContext,
		OnUsageError:    usageErrorHandler,
		ExitErrHandler:  exitErrHandler,
		CommandNotFound: subcommandNotFoundHandler,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Aliases: []string{"c"}, DefaultText: "", Usage: "load configuration from `FILE` (YAML)"},
			&cli.StringFlag{Name: "store", Aliases: []string{"s"}, Usage: "use book database `FILE` instead of configured one"},
			&cli.BoolFlag{Name: "debug", Aliases: []string{"d"}, Usage: "changes program behavior to help troubleshooting, produces report archive"},
		},
		Commands: []*cli.Command{
			{
				Name:         "new",
				Usage:        "Creates book from configured defaults",
				OnUsageError: usageErrorHandler,
				Action:       commands.NewBook,
				ArgsUsage:    "BOOK",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "title", Usage: "book `TITLE`"},
					&cli.IntFlag{Name: "pages", Usage: "initial number of `PAGES`"},
					overwriteFlag(),
				},
			},
			{
				Name:         "list",
				Usage:        "Lists stored books",
				OnUsageError: usageErrorHandler,
				Action:       commands.List,
			},
			{
				Name:         "remove",
				Usage:        "Removes book from storage",
				OnUsageError: usageErrorHandler,
				Action:       commands.Remove,
				ArgsUsage:    "BOOK",
			},
			{
				Name:         "info",
				Usage:        "Prints book layout: sections, pagination and spreads",
				OnUsageError: usageErrorHandler,
				Action:       commands.Info,
				ArgsUsage:    "BOOK",
			},
			{
				Name:         "json",
				Usage:        "Writes recalculated book as JSON",
				OnUsageError: usageErrorHandler,
				Action:       commands.DumpJSON,
				ArgsUsage:    "BOOK [DESTINATION]",
				Flags:        []cli.Flag{overwriteFlag()},
			},
			{
				Name:  "page",
				Usage: "Adds, deletes and reorders pages",
				Commands: []*cli.Command{
					{
						Name: "add", Usage: "Inserts pages after AFTER (number or id), appends otherwise",
						Action: commands.PageAdd, ArgsUsage: "BOOK [AFTER]", OnUsageError: usageErrorHandler,
						Flags: []cli.Flag{&cli.IntFlag{Name: "count", Aliases: []string{"n"}, Value: 1, Usage: "number of pages to add"}},
					},
					{
						Name: "delete", Usage: "Deletes pages, book keeps at least one page",
						Action: commands.PageDelete, ArgsUsage: "BOOK PAGE...", OnUsageError: usageErrorHandler,
					},
					{
						Name: "move", Usage: "Moves page to POSITION (1-based)",
						Action: commands.PageMove, ArgsUsage: "BOOK PAGE POSITION", OnUsageError: usageErrorHandler,
					},
					{
						Name:  "imported",
						Usage: "Works with imported frames and background reference of a page",
						Commands: []*cli.Command{
							{
								Name: "remove", Usage: "Removes imported content from PAGE",
								Action: commands.ImportedRemove, ArgsUsage: "BOOK PAGE", OnUsageError: usageErrorHandler,
							},
							{
								Name: "center", Usage: "Centers imported frames on PAGE",
								Action: commands.ImportedCenter, ArgsUsage: "BOOK PAGE", OnUsageError: usageErrorHandler,
							},
							{
								Name: "copy", Usage: "Pastes imported content of FROM onto every TO page",
								Action: commands.ImportedCopy, ArgsUsage: "BOOK FROM TO...", OnUsageError: usageErrorHandler,
							},
						},
					},
				},
			},
			{
				Name:  "frame",
				Usage: "Places and edits frames",
				Commands: []*cli.Command{
					{
						Name: "add", Usage: "Places new frame on PAGE",
						Action: commands.FrameAdd, ArgsUsage: "BOOK PAGE", OnUsageError: usageErrorHandler,
						Flags: []cli.Flag{
							&cli.StringFlag{Name: "type", Value: common.FrameTypeText.String(), Usage: "frame `TYPE` (" + names(common.FrameTypeNames()) + ")"},
							&cli.StringFlag{Name: "content", Usage: "frame `TEXT`"},
						},
					},
					{
						Name: "edit", Usage: "Edits FRAME (number or id): geometry in page pixels, image crop, visibility and lock",
						Action: commands.FrameEdit, ArgsUsage: "BOOK PAGE FRAME", OnUsageError: usageErrorHandler,
						Flags: []cli.Flag{
							&cli.FloatFlag{Name: "x"},
							&cli.FloatFlag{Name: "y"},
							&cli.FloatFlag{Name: "width"},
							&cli.FloatFlag{Name: "height"},
							&cli.FloatFlag{Name: "rotate", Usage: "rotation in `DEGREES`"},
							&cli.StringFlag{Name: "content", Usage: "frame `TEXT`"},
							&cli.StringFlag{Name: "style", Usage: "paragraph or object style `ID`, empty clears it"},
							&cli.FloatFlag{Name: "crop-x", Usage: "visible part of image, left in `PERCENT`"},
							&cli.FloatFlag{Name: "crop-y", Usage: "visible part of image, top in `PERCENT`"},
							&cli.FloatFlag{Name: "crop-width", Usage: "visible part of image, width in `PERCENT`"},
							&cli.FloatFlag{Name: "crop-height", Usage: "visible part of image, height in `PERCENT`"},
							&cli.FloatFlag{Name: "zoom", Usage: "image `SCALE` inside frame (0.3 - 3)"},
							&cli.BoolFlag{Name: "hide", Usage: "hide frame, --hide=false shows it"},
							&cli.BoolFlag{Name: "lock"},
						},
					},
					{
						Name: "remove", Usage: "Removes FRAME from PAGE",
						Action: commands.FrameRemove, ArgsUsage: "BOOK PAGE FRAME", OnUsageError: usageErrorHandler,
					},
				},
			},
			{
				Name:  "section",
				Usage: "Manages sections and their numbering",
				Commands: []*cli.Command{
					{
						Name: "add", Usage: "Appends section",
						Action: commands.SectionAdd, ArgsUsage: "BOOK [NAME]", OnUsageError: usageErrorHandler,
						Flags: []cli.Flag{&cli.StringFlag{Name: "page", Usage: "move `PAGE` into new section"}},
					},
					{
						Name: "delete", Usage: "Deletes section, its pages move to the first remaining one",
						Action: commands.SectionDelete, ArgsUsage: "BOOK SECTION", OnUsageError: usageErrorHandler,
					},
					{
						Name: "assign", Usage: "Moves pages into section",
						Action: commands.SectionAssign, ArgsUsage: "BOOK SECTION PAGE...", OnUsageError: usageErrorHandler,
					},
					{
						Name: "update", Usage: "Changes section numbering, flags and name",
						Action: commands.SectionUpdate, ArgsUsage: "BOOK SECTION", OnUsageError: usageErrorHandler,
						Flags: []cli.Flag{
							&cli.StringFlag{Name: "style", Usage: "numbering `STYLE` (" + names(common.PaginationStyleNames()) + ")"},
							&cli.IntFlag{Name: "start", Usage: "first page `NUMBER`"},
							&cli.BoolFlag{Name: "independent"},
							&cli.BoolFlag{Name: "odd", Usage: "section should start on odd page"},
							&cli.BoolFlag{Name: "bookmark"},
							&cli.BoolFlag{Name: "toc"},
							&cli.StringFlag{Name: "name", Usage: "new section `NAME`"},
						},
					},
				},
			},
			{
				Name:  "master",
				Usage: "Manages master pages",
				Commands: []*cli.Command{
					{
						Name: "add", Usage: "Adds master inheriting from the last one",
						Action: commands.MasterAdd, ArgsUsage: "BOOK [NAME]", OnUsageError: usageErrorHandler,
						Flags: []cli.Flag{&cli.StringFlag{Name: "parent", Usage: "inherit from `MASTER`"}},
					},
					{
						Name: "remove", Usage: "Removes master, users fall back to the first master",
						Action: commands.MasterRemove, ArgsUsage: "BOOK MASTER", OnUsageError: usageErrorHandler,
					},
					{
						Name: "apply", Usage: "Applies master to section and pages",
						Action: commands.MasterApply, ArgsUsage: "BOOK MASTER [PAGE...]", OnUsageError: usageErrorHandler,
						Flags: []cli.Flag{&cli.StringFlag{Name: "section", Usage: "apply to `SECTION` and all its pages"}},
					},
					{
						Name: "update", Usage: "Changes master fields",
						Action: commands.MasterUpdate, ArgsUsage: "BOOK MASTER", OnUsageError: usageErrorHandler,
						Flags: []cli.Flag{
							&cli.StringFlag{Name: "name"},
							&cli.StringFlag{Name: "header"},
							&cli.StringFlag{Name: "footer"},
							&cli.StringFlag{Name: "background"},
							&cli.StringFlag{Name: "logo"},
							&cli.StringFlag{Name: "parent", Usage: "inherit from `MASTER`, \"none\" makes master a root"},
							&cli.BoolFlag{Name: "locked-columns"},
							&cli.BoolFlag{Name: "fixed-guides"},
						},
					},
				},
			},
			{
				Name:         "settings",
				Usage:        "Changes page format, margins, spreads and overlay settings",
				OnUsageError: usageErrorHandler,
				Action:       commands.Settings,
				ArgsUsage:    "BOOK",
				Flags:        settingsFlags(),
			},
			{
				Name:         "styles",
				Usage:        "Merges CSS stylesheet into book styles, prints book styles as CSS without one",
				OnUsageError: usageErrorHandler,
				Action:       commands.Styles,
				ArgsUsage:    "BOOK [FILE.css]",
			},
			{
				Name:         "import",
				Usage:        "Imports text, markdown, html, docx and image sources as new pages",
				OnUsageError: usageErrorHandler,
				Action:       commands.Import,
				ArgsUsage:    "BOOK SOURCE...",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "after", Usage: "insert after `PAGE`, at the end otherwise"},
					&cli.BoolFlag{Name: "section-per-file", Usage: "create section for every source file"},
					&cli.StringFlag{Name: "master", Usage: "assign `MASTER` to imported pages"},
					&cli.StringFlag{Name: "style", Usage: "paragraph style `ID` for imported text"},
					&cli.StringFlag{Name: "range", Usage: "import only `PAGES` of every source, e.g. 1-3,6"},
					&cli.BoolFlag{Name: "reference", Usage: "place images as non printable page references"},
					&cli.IntFlag{Name: "max-chars", Usage: "text characters per page"},
					&cli.StringFlag{Name: "force-cp",
						Usage: "Force `ENCODING` for ALL non UTF-8 texts and file names in archives (see IANA.org for character set names)"},
				},
				CustomHelpTemplate: fmt.Sprintf(`%s
SOURCE:
    path to a file, a directory (processed recursively in natural name order)
    or a zip archive with sources; archives inside archives are not supported.
`, cli.CommandHelpTemplate),
			},
			{
				Name:         "check",
				Usage:        "Runs export checklist",
				OnUsageError: usageErrorHandler,
				Action:       commands.Check,
				ArgsUsage:    "BOOK",
				Flags:        append(exportFlags(), &cli.BoolFlag{Name: "fix", Usage: "apply automatic fixes (bleed, margin guides)"}),
			},
			{
				Name:         "export",
				Usage:        "Writes export bundle: paginated HTML, book JSON and checklist",
				OnUsageError: usageErrorHandler,
				Action:       commands.Export,
				ArgsUsage:    "BOOK [DESTINATION]",
				Flags: append(exportFlags(), overwriteFlag(),
					&cli.StringFlag{Name: "missing-image", Usage: "SVG or raster image `FILE` drawn in place of missing images"}),
				CustomHelpTemplate: fmt.Sprintf(`%s
DESTINATION:
    file name or directory; when directory or absent output name is generated
    from export name template, current working directory is used by default
`, cli.CommandHelpTemplate),
			},
			{
				Name:  "dumpconfig",
				Usage: "Dumps either default or actual configuration (YAML)",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "default", Usage: "output default embedded configuration"},
				},
				OnUsageError: usageErrorHandler,
				Action:       outputConfiguration,
				ArgsUsage:    "DESTINATION",
				CustomHelpTemplate: fmt.Sprintf(`%s

DESTINATION:
    file name to write configuration to, if absent - STDOUT

Produces file with actual "active" configuration values which is composition of
default values and values specified in configuration file. To see default
configuration embedded into the program use --default flag.
`, cli.CommandHelpTemplate),
			},
		},
	}

	var err error
	// NOTE: os.Exit is called at the end of main to set exit code, make sure
	// there are no other deffered functions after that
	defer func() {
		stop()
		if err != nil {
			// It may happen that log is either not set yet (argument parsing) or already closed,
			// report errors to stderr directly
			if !errWasHandled {
				fmt.Fprintf(os.Stderr, "Program ended with error: %v\n", err)
			}
			os.Exit(1)
		}
	}()
	err = app.Run(ctx, os.Args)
}

func outputConfiguration(ctx context.Context, cmd *cli.Command) error {

	env := state.EnvFromContext(ctx)
	if cmd.Args().Len() > 1 {
		env.Log.Warn("Malformed command line, too many destinations", zap.Strings("ignoring", cmd.Args().Slice()[1:]))
	}

	fname := cmd.Args().Get(0)

	var (
		err   error
		data  []byte
		state string
	)

	out := os.Stdout
	if len(fname) > 0 {
		out, err = os.Create(fname)
		if err != nil {
			return fmt.Errorf("unable to create destination file '%s': %w", fname, err)
		}
		defer out.Close()

	}

	if cmd.Bool("default") {
		state = "default"
		data, err = config.Prepare()
	} else {
		state = "actual"
		data, err = config.Dump(env.Cfg)
	}
	if err != nil {
		return fmt.Errorf("unable to get configuration: %w", err)
	}

	if len(fname) == 0 {
		fname = "STDOUT"
	}
	env.Log.Info("Outputing configuration", zap.String("state", state), zap.String("file", fname))

	_, err = out.Write(data)
	if err != nil {
		return fmt.Errorf("unable to write configuration: %w", err)
	}
	return nil
}
