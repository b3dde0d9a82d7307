// Copyright (c) 2025 Michael D Henderson. All rights reserved.

package main

import (
	"context"
	"strings"
	"testing"

	"github.com/mdhender/calc/batch"
	"github.com/mdhender/calc/renderer"
)

func newTestSession(t *testing.T) *session {
	t.Helper()
	r, err := renderer.New()
	if err != nil {
		t.Fatalf("renderer: %v", err)
	}
	return &session{
		service:  batch.NewService(nil, nil, nil),
		renderer: r,
		format:   renderer.FormatDebug,
		styles:   newStyles(true),
	}
}

func TestSession_Eval(t *testing.T) {
	ctx := context.Background()
	s := newTestSession(t)

	out, quit := s.eval(ctx, 1, "10+foo+20-30")
	if quit {
		t.Fatalf("eval requested quit")
	}
	want := `Operation(Number(10), Add, Operation(Var("foo"), Add, Operation(Number(20), Sub, Number(30))))` + "\n"
	if out != want {
		t.Errorf("out = %q\nwant %q", out, want)
	}

	out, _ = s.eval(ctx, 2, "a+")
	wantDiag := "repl:1:3: ERROR: unexpected end of input\n" +
		"    a+\n" +
		"      ^\n" +
		"    note: expected a number or an identifier\n"
	if out != wantDiag {
		t.Errorf("out = %q\nwant %q", out, wantDiag)
	}

	if out, _ := s.eval(ctx, 3, ":stats"); out != "1 accepted, 1 rejected\n" {
		t.Errorf(":stats = %q", out)
	}
}

func TestSession_Commands(t *testing.T) {
	ctx := context.Background()
	s := newTestSession(t)

	if out, _ := s.eval(ctx, 1, ":format infix"); out != "" {
		t.Errorf(":format infix = %q, want empty", out)
	}
	if out, _ := s.eval(ctx, 2, "007+x"); out != "7+x\n" {
		t.Errorf("infix out = %q, want %q", out, "7+x\n")
	}
	if out, _ := s.eval(ctx, 3, ":format yaml"); !strings.Contains(out, "unknown format") {
		t.Errorf(":format yaml = %q", out)
	}
	if out, _ := s.eval(ctx, 4, ":bogus"); !strings.HasPrefix(out, "unknown command") {
		t.Errorf(":bogus = %q", out)
	}
	if _, quit := s.eval(ctx, 5, ":quit"); !quit {
		t.Errorf(":quit did not quit")
	}
}

func TestHistoryPath(t *testing.T) {
	if got := historyPath(""); got != "" {
		t.Errorf("historyPath(\"\") = %q", got)
	}
	if got := historyPath("/tmp/hist"); got != "/tmp/hist" {
		t.Errorf("historyPath(abs) = %q", got)
	}
}
