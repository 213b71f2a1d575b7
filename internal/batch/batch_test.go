package batch

import (
	"bufio"
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	kverror "github.com/msto63/keplerkv/foundation/core/error"
	"github.com/msto63/keplerkv/foundation/kql"
	"github.com/msto63/keplerkv/foundation/kql/store"
	"github.com/msto63/keplerkv/internal/console"
)

func TestScanStatements(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{"single", `\SET _a 1;`, []string{`\SET _a 1`}},
		{"several on one line", `\SET _a 1; \GET _a;`, []string{`\SET _a 1`, ` \GET _a`}},
		{"across lines", "\\SET _a\n  1;\n", []string{"\\SET _a\n  1", "\n"}},
		{"quoted semicolon", `\SET _a 'x;y'; \SET _b "p;q";`, []string{`\SET _a 'x;y'`, ` \SET _b "p;q"`}},
		{"other quote inside", `\SET _a "it's";`, []string{`\SET _a "it's"`}},
		{"trailing without terminator", `\SET _a 1; \GET _a`, []string{`\SET _a 1`, ` \GET _a`}},
		{"empty", "", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			scanner := bufio.NewScanner(strings.NewReader(tt.input))
			scanner.Split(ScanStatements)

			var got []string
			for scanner.Scan() {
				got = append(got, scanner.Text())
			}
			if err := scanner.Err(); err != nil {
				t.Fatalf("scan error: %v", err)
			}
			if diff := cmp.Diff(tt.expected, got); diff != "" {
				t.Errorf("statements mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"\\SET _a\n1", "\\SET _a 1"},
		{"\\SET _a\r\n1", "\\SET _a 1"},
		{"  \n  ", ""},
		{"\\GET _a", "\\GET _a"},
	}

	for _, tt := range tests {
		if got := Normalize(tt.input); got != tt.expected {
			t.Errorf("Normalize(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

type harness struct {
	engine *kql.Engine
	out    *bytes.Buffer
	errOut *bytes.Buffer
	opts   Options
	dir    string
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	h := &harness{out: &bytes.Buffer{}, errOut: &bytes.Buffer{}, dir: t.TempDir()}
	printer := console.New(console.Options{Out: h.out, Err: h.errOut})
	engine, err := kql.New(kql.Options{
		Store:   store.New(store.Options{}),
		Output:  printer,
		DataDir: h.dir,
	})
	if err != nil {
		t.Fatalf("kql.New() error = %v", err)
	}
	h.engine = engine
	h.opts = Options{Engine: engine, Printer: printer}
	return h
}

func (h *harness) write(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(h.dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestRun_Files(t *testing.T) {
	h := newHarness(t)
	first := h.write(t, "first.kep", "\\SET _a 1;\n\\SET _b\n  [1, 2];\n")
	second := h.write(t, "second.kep", "\\APPEND _b 3; \\GET _a _b")

	if err := Run(context.Background(), []string{first, second}, h.opts); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	expected := "OK\nOK\nOK\n_a | int: 1\n_b | list: [int: 1, int: 2, int: 3]\n"
	if diff := cmp.Diff(expected, h.out.String()); diff != "" {
		t.Errorf("output mismatch (-want +got):\n%s", diff)
	}
}

func TestRun_SkipsOtherExtensions(t *testing.T) {
	h := newHarness(t)
	notes := h.write(t, "notes.txt", "\\SET _a 1;")
	good := h.write(t, "good.kep", "\\SET _b 2;")

	if err := Run(context.Background(), []string{notes, good}, h.opts); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if !strings.HasPrefix(h.out.String(), "Warning: "+notes+" is not a valid .kep file, skipped\n") {
		t.Errorf("expected warning, got %q", h.out.String())
	}
	if h.engine.Store().Contains("_a") || !h.engine.Store().Contains("_b") {
		t.Error("only the .kep file must run")
	}
}

func TestRun_ErrorsContinue(t *testing.T) {
	h := newHarness(t)
	path := h.write(t, "errors.kep", "\\SET; \\NOPE; \\SET _ok 1;")

	if err := Run(context.Background(), []string{path}, h.opts); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if got := strings.Count(h.errOut.String(), "Error: "); got != 2 {
		t.Errorf("expected 2 printed errors, got %d: %q", got, h.errOut.String())
	}
	if !h.engine.Store().Contains("_ok") {
		t.Error("statements after errors must run")
	}
}

func TestRun_StopsOnQuit(t *testing.T) {
	h := newHarness(t)
	first := h.write(t, "first.kep", "\\SET _a 1; \\q; \\SET _b 2;")
	second := h.write(t, "second.kep", "\\SET _c 3;")

	if err := Run(context.Background(), []string{first, second}, h.opts); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if h.engine.Store().Contains("_b") || h.engine.Store().Contains("_c") {
		t.Error("nothing may run after quit")
	}
}

func TestRun_MissingFile(t *testing.T) {
	h := newHarness(t)
	missing := filepath.Join(h.dir, "missing.kep")

	err := Run(context.Background(), []string{missing}, h.opts)
	if !kverror.HasCode(err, kverror.CodeFileOpenFailure) {
		t.Errorf("expected file open failure, got %v", err)
	}
}
