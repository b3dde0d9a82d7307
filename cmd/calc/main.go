// Copyright (c) 2025 Michael D Henderson. All rights reserved.

// Command calc lexes, parses and journals sums of numbers and identifiers.
package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/mdhender/calc"
	"github.com/mdhender/calc/batch"
	"github.com/mdhender/calc/config"
	"github.com/mdhender/calc/metrics"
	"github.com/mdhender/calc/renderer"
	store "github.com/mdhender/calc/stores/sqlite"
	"github.com/mdhender/calc/watch"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

// sampleExpression is parsed when no expression is given.
const sampleExpression = "10+foo+20-30"

// errRejected is returned after the diagnostics for rejected input have been printed.
var errRejected = errors.New("rejected")

var (
	cfg    = config.Default()
	logger = slog.Default()
)

func main() {
	var configFile string
	addFlags := func(cmd *cobra.Command) error {
		cmd.PersistentFlags().StringVarP(&configFile, "config", "c", configFile, "load configuration from file (yaml or toml)")
		cmd.PersistentFlags().Bool("debug", false, "log debugging information, including lexer and parser traces")
		cmd.PersistentFlags().Bool("log-with-default-flags", false, "log with default flags")
		cmd.PersistentFlags().Bool("log-with-shortfile", true, "log with short file name")
		cmd.PersistentFlags().Bool("log-with-timestamp", false, "log with timestamp")
		cmd.PersistentFlags().Bool("quiet", false, "log less information")
		cmd.PersistentFlags().Bool("show-version", false, "show version")
		cmd.PersistentFlags().Bool("verbose", false, "log more information (debug level for services)")
		return nil
	}
	var cmdRoot = &cobra.Command{
		Use:   "calc",
		Short: "calc expression utility",
		Long:  `Lex, parse and journal expressions like 10+foo+20-30.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logWithDefaultFlags, _ := cmd.Flags().GetBool("log-with-default-flags")
			logWithShortFileName, _ := cmd.Flags().GetBool("log-with-shortfile")
			logWithTimestamp, _ := cmd.Flags().GetBool("log-with-timestamp")
			logFlags := 0
			if logWithShortFileName {
				logFlags |= log.Lshortfile
			}
			if logWithTimestamp {
				logFlags |= log.Ltime
			}
			if logWithDefaultFlags || logFlags == 0 {
				logFlags = log.LstdFlags
			}
			log.SetFlags(logFlags)

			if showVersion, _ := cmd.Flags().GetBool("show-version"); showVersion {
				fmt.Printf("calc: version %q\n", calc.Version().Core())
			}

			var err error
			if cfg, err = config.Load(afero.NewOsFs(), configFile); err != nil {
				return err
			}
			quiet, _ := cmd.Flags().GetBool("quiet")
			verbose, _ := cmd.Flags().GetBool("verbose")
			debug, _ := cmd.Flags().GetBool("debug")
			cfg.Log.Level = logLevel(cfg.Log.Level, debug, quiet, verbose)
			logger = cfg.Log.Logger(os.Stderr)
			slog.SetDefault(logger)
			return nil
		},
	}
	cmdRoot.AddCommand(cmdLex())
	cmdRoot.AddCommand(cmdParse())
	cmdRoot.AddCommand(cmdBatch())
	cmdRoot.AddCommand(cmdRepl())
	cmdRoot.AddCommand(cmdServe())
	cmdRoot.AddCommand(cmdWatch())
	cmdRoot.AddCommand(cmdVersion())
	if err := addFlags(cmdRoot); err != nil {
		log.Fatal(err)
	}

	if err := cmdRoot.Execute(); err != nil {
		os.Exit(1)
	}
}

func cmdLex() *cobra.Command {
	var cmd = &cobra.Command{
		Use:           "lex [expression]",
		Short:         "print the tokens of an expression",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input := sampleExpression
			if len(args) == 1 {
				input = args[0]
			}
			lx := calc.NewLexer("cli", []byte(input), debugLogger(cmd))
			for tok, err := range lx.All() {
				if err != nil {
					printDiagnostic(err, "cli", input)
					return errRejected
				}
				fmt.Printf("%3d %-12s %q\n", tok.Column, tok.Kind, tok.Lexeme([]byte(input)))
			}
			return nil
		},
	}
	return cmd
}

func cmdParse() *cobra.Command {
	format := string(renderer.FormatDebug)
	var outputFile string
	addFlags := func(cmd *cobra.Command) error {
		cmd.Flags().StringVarP(&format, "format", "f", format, "output format (debug, infix, json, tree)")
		cmd.Flags().StringVarP(&outputFile, "output", "o", outputFile, "save parse to file")
		return nil
	}
	var cmd = &cobra.Command{
		Use:           "parse [expression]",
		Short:         "parse an expression and print its tree",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := renderer.ParseFormat(format)
			if err != nil {
				return err
			}
			r, err := renderer.New()
			if err != nil {
				return err
			}

			input := sampleExpression
			if len(args) == 1 {
				input = args[0]
			}
			p := calc.NewParser("cli", []byte(input), debugLogger(cmd))
			expr, err := p.Parse()
			if err != nil {
				printDiagnostic(err, "cli", input)
				return errRejected
			}

			buf := &bytes.Buffer{}
			if err := r.Render(buf, f, expr); err != nil {
				return err
			}
			if outputFile == "" {
				fmt.Print(buf.String())
			} else if err = os.WriteFile(outputFile, buf.Bytes(), 0o644); err != nil {
				return err
			} else {
				logger.Info("parse: wrote output", "path", outputFile, "bytes", buf.Len())
			}
			return nil
		},
	}
	if err := addFlags(cmd); err != nil {
		log.Fatal(err)
	}
	return cmd
}

func cmdBatch() *cobra.Command {
	var dbPath, pattern string
	addFlags := func(cmd *cobra.Command) error {
		cmd.Flags().StringVar(&dbPath, "db", dbPath, "journal runs to this SQLite file (default: store.path from config)")
		cmd.Flags().StringVar(&pattern, "pattern", pattern, "file name pattern for directories (default: batch.pattern from config)")
		return nil
	}
	var cmd = &cobra.Command{
		Use:           "batch <path> [<path>...]",
		Short:         "parse files of expressions, one per line",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if dbPath == "" {
				dbPath = cfg.Store.Path
			}
			if pattern == "" {
				pattern = cfg.Batch.Pattern
			}
			sqlStore, err := store.Open(dbPath)
			if err != nil {
				return err
			}
			defer sqlStore.Close()

			svc := batch.NewService(sqlStore, metrics.NewCollector(""), logger)
			if err := svc.SetPattern(pattern); err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			rejected := 0
			for _, path := range args {
				results, err := svc.ParsePath(ctx, path)
				for _, result := range results {
					rejected += result.Rejected
					printRejectedRuns(result)
				}
				if err != nil {
					logger.Error("batch: failed", "path", path, "code", batch.ErrorCode(err), "error", err)
					return err
				}
			}

			stats, err := sqlStore.Stats(ctx)
			if err != nil {
				return err
			}
			fmt.Printf("%d runs, %d accepted, %d rejected\n", stats.Runs, stats.Accepted, stats.Rejected)
			if rejected != 0 {
				return errRejected
			}
			return nil
		},
	}
	if err := addFlags(cmd); err != nil {
		log.Fatal(err)
	}
	return cmd
}

func cmdWatch() *cobra.Command {
	var cmd = &cobra.Command{
		Use:          "watch <file>",
		Short:        "parse a file of expressions every time it changes",
		SilenceUsage: true,
		Args:         cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			w, err := watch.New(args[0], cfg.Watch.Debounce, logger)
			if err != nil {
				return err
			}
			svc := batch.NewService(nil, nil, logger)

			check := func(ctx context.Context) error {
				result, err := svc.ParseFile(ctx, w.Path())
				if err != nil {
					return err
				}
				printRejectedRuns(result)
				fmt.Printf("%s: %d lines, %d accepted, %d rejected\n", args[0], result.Lines, result.Accepted, result.Rejected)
				return nil
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			if err := check(ctx); err != nil {
				return err
			}
			return w.Watch(ctx, check)
		},
	}
	return cmd
}

func cmdVersion() *cobra.Command {
	showBuildInfo := false
	addFlags := func(cmd *cobra.Command) error {
		cmd.Flags().BoolVar(&showBuildInfo, "build-info", showBuildInfo, "show build information")
		return nil
	}
	var cmd = &cobra.Command{
		Use:   "version",
		Short: "display the application's version number",
		RunE: func(cmd *cobra.Command, args []string) error {
			if showBuildInfo {
				fmt.Println(calc.Version().String())
				return nil
			}
			fmt.Println(calc.Version().Core())
			return nil
		},
	}
	if err := addFlags(cmd); err != nil {
		log.Fatal(err)
	}
	return cmd
}

// logLevel returns the log level selected by the command line flags.
// --debug wins over --quiet, which wins over --verbose.
// Only --debug turns on lexer and parser tracing (see debugLogger).
func logLevel(configured string, debug, quiet, verbose bool) string {
	switch {
	case debug:
		return "debug"
	case quiet:
		return "error"
	case verbose:
		return "debug"
	}
	return configured
}

// debugLogger returns the logger for the lexer and parser, which only log when --debug is set.
func debugLogger(cmd *cobra.Command) *slog.Logger {
	if debug, _ := cmd.Flags().GetBool("debug"); debug {
		return logger
	}
	return nil
}

// printDiagnostic writes the diagnostic for err to stderr.
func printDiagnostic(err error, filename, input string) {
	if diag, ok := calc.NewDiagnostic(err); ok {
		calc.PrintDiagnostic(os.Stderr, diag, filename, []byte(input))
		return
	}
	fmt.Fprintf(os.Stderr, "%s: %v\n", filename, err)
}

// printRejectedRuns writes one line per rejected expression in the result.
func printRejectedRuns(result *batch.Result) {
	for _, run := range result.Runs {
		if !run.OK {
			fmt.Fprintf(os.Stderr, "%s:%d:%d: %s: %s\n", run.Source, run.Line, run.Column, run.ErrorCode, run.ErrorMessage)
		}
	}
}
