// Copyright (c) 2025 Michael D Henderson. All rights reserved.

package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mdhender/calc"
	"github.com/mdhender/calc/batch"
	"github.com/mdhender/calc/metrics"
	"github.com/mdhender/calc/renderer"
	store "github.com/mdhender/calc/stores/sqlite"
	"github.com/peterh/liner"
	"github.com/spf13/cobra"
)

const replHelp = `Enter an expression such as 10+foo+20-30.
Commands:
  :help          show this message
  :format NAME   print accepted trees as debug, infix, json or tree
  :stats         show how many lines were accepted and rejected
  :quit          leave the prompt`

func cmdRepl() *cobra.Command {
	var dbPath string
	format := string(renderer.FormatDebug)
	addFlags := func(cmd *cobra.Command) error {
		cmd.Flags().StringVar(&dbPath, "db", dbPath, "journal runs to this SQLite file (default: store.path from config)")
		cmd.Flags().StringVarP(&format, "format", "f", format, "output format (debug, infix, json, tree)")
		return nil
	}
	var cmd = &cobra.Command{
		Use:          "repl",
		Short:        "parse expressions interactively",
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if dbPath == "" {
				dbPath = cfg.Store.Path
			}
			f, err := renderer.ParseFormat(format)
			if err != nil {
				return err
			}
			sqlStore, err := store.Open(dbPath)
			if err != nil {
				return err
			}
			defer sqlStore.Close()

			r, err := renderer.New()
			if err != nil {
				return err
			}
			s := &session{
				service:  batch.NewService(sqlStore, metrics.NewCollector(""), logger),
				renderer: r,
				format:   f,
				styles:   newStyles(cfg.Repl.NoColor),
			}
			return s.run(cmd.Context(), historyPath(cfg.Repl.HistoryFile), cfg.Repl.Prompt)
		},
	}
	if err := addFlags(cmd); err != nil {
		log.Fatal(err)
	}
	return cmd
}

// session is the state of one interactive prompt.
type session struct {
	service  *batch.Service
	renderer *renderer.Renderer
	format   renderer.Format
	styles   styles
	accepted int
	rejected int
}

type styles struct {
	ok, err, note lipgloss.Style
}

func newStyles(noColor bool) styles {
	if noColor {
		return styles{ok: lipgloss.NewStyle(), err: lipgloss.NewStyle(), note: lipgloss.NewStyle()}
	}
	return styles{
		ok:   lipgloss.NewStyle().Foreground(lipgloss.Color("#10B981")),
		err:  lipgloss.NewStyle().Foreground(lipgloss.Color("#EF4444")).Bold(true),
		note: lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280")),
	}
}

func (s *session) run(ctx context.Context, histPath, prompt string) error {
	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	if histPath != "" {
		if f, err := os.Open(histPath); err == nil {
			_, _ = ln.ReadHistory(f)
			_ = f.Close()
		}
		defer func() {
			if f, err := os.Create(histPath); err == nil {
				_, _ = ln.WriteHistory(f)
				_ = f.Close()
			}
		}()
	}

	fmt.Printf("calc %s. Type :help for help, :quit to exit.\n", calc.Version().Core())
	for line := 1; ; line++ {
		input, err := ln.Prompt(prompt)
		if errors.Is(err, io.EOF) || errors.Is(err, liner.ErrPromptAborted) {
			fmt.Println()
			return nil
		} else if err != nil {
			return err
		}
		if strings.TrimSpace(input) == "" {
			continue
		}
		ln.AppendHistory(input)

		out, quit := s.eval(ctx, line, input)
		fmt.Print(out)
		if quit {
			return nil
		}
	}
}

// eval handles one line of input and returns the text to print.
func (s *session) eval(ctx context.Context, line int, input string) (string, bool) {
	if strings.HasPrefix(input, ":") {
		return s.command(input)
	}

	out, err := s.service.Parse(ctx, "repl", line, input)
	if err != nil {
		return s.styles.err.Render(err.Error()) + "\n", false
	}
	if out.Expr == nil {
		s.rejected++
		diag, ok := calc.NewDiagnostic(out.Err)
		if !ok {
			return s.styles.err.Render(out.Err.Error()) + "\n", false
		}
		buf := &bytes.Buffer{}
		calc.PrintDiagnostic(buf, diag, "repl", []byte(input))
		sb := &strings.Builder{}
		for _, text := range strings.SplitAfter(buf.String(), "\n") {
			if text == "" {
				continue
			} else if strings.HasPrefix(strings.TrimSpace(text), "note:") {
				sb.WriteString(s.styles.note.Render(strings.TrimSuffix(text, "\n")) + "\n")
			} else if strings.HasPrefix(text, "repl:") {
				sb.WriteString(s.styles.err.Render(strings.TrimSuffix(text, "\n")) + "\n")
			} else {
				sb.WriteString(text)
			}
		}
		return sb.String(), false
	}

	s.accepted++
	buf := &bytes.Buffer{}
	if err := s.renderer.Render(buf, s.format, out.Expr); err != nil {
		return s.styles.err.Render(err.Error()) + "\n", false
	}
	return s.styles.ok.Render(strings.TrimSuffix(buf.String(), "\n")) + "\n", false
}

func (s *session) command(input string) (string, bool) {
	fields := strings.Fields(strings.ToLower(input))
	switch fields[0] {
	case ":quit", ":q", ":exit":
		return "", true
	case ":help":
		return replHelp + "\n", false
	case ":stats":
		return fmt.Sprintf("%d accepted, %d rejected\n", s.accepted, s.rejected), false
	case ":format":
		if len(fields) != 2 {
			return fmt.Sprintf("format is %s\n", s.format), false
		}
		f, err := renderer.ParseFormat(fields[1])
		if err != nil {
			return s.styles.err.Render(err.Error()) + "\n", false
		}
		s.format = f
		return "", false
	}
	return "unknown command. Type :help for help, :quit to exit.\n", false
}

// historyPath resolves a relative history file against the home directory.
func historyPath(name string) string {
	if name == "" || filepath.IsAbs(name) {
		return name
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, name)
}
