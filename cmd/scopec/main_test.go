package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dhamidi/scopec/config"
	"github.com/dhamidi/scopec/lang/grammar"
	"github.com/dhamidi/scopec/lang/parser"
)

func writeSource(t *testing.T, dir, name, src string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(src), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd(config.Config{BlockSize: 256, Jobs: 2})
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestParseCommand(t *testing.T) {
	dir := t.TempDir()
	file := writeSource(t, dir, "ok.sc", ": #x; .")

	out, err := run(t, "parse", file)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if !strings.Contains(out, `1 Identification Hash Declaration No "x"`) {
		t.Errorf("output missing identification:\n%s", out)
	}

	out, err = run(t, "parse", "--format", "json", file)
	if err != nil {
		t.Fatalf("parse --format json: %v", err)
	}
	if !strings.Contains(out, `"file": "`+file+`"`) {
		t.Errorf("json output missing file:\n%s", out)
	}
}

func TestParseCommandReportsSyntaxError(t *testing.T) {
	dir := t.TempDir()
	file := writeSource(t, dir, "bad.sc", ": #x # .")

	_, err := run(t, "parse", file)
	var synErr *parser.SyntaxError
	if !errors.As(err, &synErr) {
		t.Fatalf("err = %v, want *parser.SyntaxError", err)
	}
	if synErr.Index != 4 {
		t.Errorf("error index = %d, want 4", synErr.Index)
	}
}

func TestParseCommandRejectsUnknownFormat(t *testing.T) {
	dir := t.TempDir()
	file := writeSource(t, dir, "ok.sc", "#x;")
	if _, err := run(t, "parse", "--format", "yaml", file); err == nil {
		t.Error("parse --format yaml succeeded")
	}
}

func TestTokensCommand(t *testing.T) {
	dir := t.TempDir()
	file := writeSource(t, dir, "ok.sc", "@y = 'c';")

	out, err := run(t, "tokens", "--verify", file)
	if err != nil {
		t.Fatalf("tokens: %v", err)
	}
	if !strings.Contains(out, `Character "'c'"`) {
		t.Errorf("output missing character literal:\n%s", out)
	}

	bad := writeSource(t, dir, "bad.sc", "#x ^;")
	if _, err := run(t, "tokens", bad); err == nil {
		t.Error("tokens on lexical error succeeded")
	}
}

func TestGrammarCommand(t *testing.T) {
	out, err := run(t, "grammar")
	if err != nil {
		t.Fatalf("grammar: %v", err)
	}
	if !strings.HasPrefix(out, "Module = ") {
		t.Errorf("grammar output starts with %q", out[:min(len(out), 20)])
	}

	out, err = run(t, "grammar", "--verify")
	if err != nil {
		t.Fatalf("grammar --verify: %v\n%s", err, out)
	}
	if !strings.Contains(out, "all reachable from Module") {
		t.Errorf("verify output = %q", out)
	}

	dir := t.TempDir()
	file := writeSource(t, dir, "bad.ebnf", "Module = Missing .\n")
	if _, err := run(t, "grammar", "--verify", "--file", file); err == nil {
		t.Error("verify of a grammar with an undefined production succeeded")
	}
}

func TestCheckFiles(t *testing.T) {
	dir := t.TempDir()
	files := []string{
		writeSource(t, dir, "a.sc", ": #a; ."),
		writeSource(t, dir, "b.sc", ": #b;"),
		writeSource(t, dir, "c.sc", "x = 1 + 2;"),
		filepath.Join(dir, "missing.sc"),
	}

	results, err := checkFiles(context.Background(), files, 2, nil, nil)
	if err != nil {
		t.Fatalf("checkFiles: %v", err)
	}
	if len(results) != len(files) {
		t.Fatalf("got %d results, want %d", len(results), len(files))
	}
	for i, r := range results {
		if r.File != files[i] {
			t.Errorf("result %d is for %s, want %s", i, r.File, files[i])
		}
	}
	if results[0].Err != nil || results[0].Nodes != 3 {
		t.Errorf("a.sc = %+v, want 3 nodes", results[0])
	}
	if !errors.Is(results[1].Err, parser.ErrUnclosedScope) {
		t.Errorf("b.sc err = %v, want ErrUnclosedScope", results[1].Err)
	}
	if results[2].Err != nil || results[2].Nodes != 4 {
		t.Errorf("c.sc = %+v, want 4 nodes", results[2])
	}
	if !errors.Is(results[3].Err, os.ErrNotExist) {
		t.Errorf("missing.sc err = %v, want not exist", results[3].Err)
	}

	var out bytes.Buffer
	if failed := reportResults(&out, results); failed != 2 {
		t.Errorf("reportResults = %d, want 2", failed)
	}
	if lines := strings.Count(out.String(), "\n"); lines != 2 {
		t.Errorf("printed %d lines, want 2", lines)
	}
}

func TestCheckFilesCanceled(t *testing.T) {
	dir := t.TempDir()
	file := writeSource(t, dir, "a.sc", "#a;")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	files := make([]string, 8)
	for i := range files {
		files[i] = file
	}
	if _, err := checkFiles(ctx, files, 1, nil, nil); !errors.Is(err, context.Canceled) {
		t.Errorf("checkFiles = %v, want context.Canceled", err)
	}
}

func TestCheckCommandFails(t *testing.T) {
	dir := t.TempDir()
	good := writeSource(t, dir, "good.sc", "#a;")
	bad := writeSource(t, dir, "bad.sc", "#a")

	if _, err := run(t, "check", good); err != nil {
		t.Errorf("check good.sc: %v", err)
	}
	out, err := run(t, "check", "-j", "1", good, bad)
	if err == nil {
		t.Fatal("check with a bad file succeeded")
	}
	if !strings.Contains(out, "bad.sc:1:3") {
		t.Errorf("output does not locate the failure:\n%s", out)
	}
}

func TestCheckFileConformance(t *testing.T) {
	g, err := grammar.Parse("hash.ebnf", strings.NewReader(
		`Module = { "#" identifier ";" } . identifier = "a" … "z" .`))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	m := grammar.NewMatcher(g)
	dir := t.TempDir()

	if r := checkFile(writeSource(t, dir, "hash.sc", "#a; #b;"), nil, m); r.Err != nil || r.Nodes != 2 {
		t.Errorf("hash.sc = %+v, want 2 nodes", r)
	}

	r := checkFile(writeSource(t, dir, "at.sc", "#a; @b;"), nil, m)
	var cerr *grammar.ConformanceError
	if !errors.As(r.Err, &cerr) {
		t.Fatalf("at.sc err = %v, want *grammar.ConformanceError", r.Err)
	}
	if cerr.Token.Literal != "@" {
		t.Errorf("rejected %q, want @", cerr.Token.Literal)
	}
}

func TestCheckCommandWithGrammar(t *testing.T) {
	dir := t.TempDir()
	file := writeSource(t, dir, "ok.sc", ": pub !x[2] = (1 + 2) * 3; ~! @l(a b); . .")
	if out, err := run(t, "check", "--grammar", file); err != nil {
		t.Errorf("check --grammar: %v\n%s", err, out)
	}
}

func TestSourceFiles(t *testing.T) {
	dir := t.TempDir()
	a := writeSource(t, dir, "a.sc", "#a;")
	writeSource(t, dir, "notes.txt", "")

	got, err := sourceFiles(dir)
	if err != nil {
		t.Fatalf("sourceFiles(dir): %v", err)
	}
	if len(got) != 1 || got[0] != a {
		t.Errorf("sourceFiles(dir) = %v, want [%s]", got, a)
	}

	got, err = sourceFiles(a)
	if err != nil || len(got) != 1 || got[0] != a {
		t.Errorf("sourceFiles(file) = %v, %v", got, err)
	}

	if _, err := sourceFiles(filepath.Join(dir, "none")); err == nil {
		t.Error("sourceFiles on a missing path succeeded")
	}
}
