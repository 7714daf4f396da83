package testsupport

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestLoadCases(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cases.yaml")
	doc := `
cases:
  - name: padded
    template: "{:>4}"
    args: [7]
    want: "   7"
  - name: broken
    template: "{"
    error: Unmatched opening brace.
`
	if err := os.WriteFile(path, []byte(doc), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}

	got := MustLoadCases(t, path)
	want := []Case{
		{Name: "padded", Template: "{:>4}", Args: []any{7}, Want: "   7"},
		{Name: "broken", Template: "{", Error: "Unmatched opening brace."},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("cases mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadCasesRejectsDuplicatesAndUnnamed(t *testing.T) {
	dir := t.TempDir()
	for name, doc := range map[string]string{
		"dup.yaml":     "cases:\n  - name: a\n  - name: a\n",
		"unnamed.yaml": "cases:\n  - template: x\n",
	} {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte(doc), 0o600); err != nil {
			t.Fatalf("write: %v", err)
		}
		if _, err := LoadCases(path); err == nil || !strings.HasPrefix(err.Error(), "testsupport: ") {
			t.Fatalf("%s: expected testsupport error, got %v", name, err)
		}
	}

	if _, err := LoadCases(""); err == nil {
		t.Fatalf("expected error for empty path")
	}
}

func TestWriteCasesWithoutUpdateFlag(t *testing.T) {
	if os.Getenv("UPDATE_GOLDENS") != "" {
		t.Skip("UPDATE_GOLDENS is set")
	}
	path := filepath.Join(t.TempDir(), "out.yaml")
	if WriteCases(t, path, []Case{{Name: "x"}}) {
		t.Fatalf("expected no write without UPDATE_GOLDENS")
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatalf("expected file to be absent, got %v", err)
	}
}

func TestCaptureOutput(t *testing.T) {
	out, written := CaptureOutput(t, func(w io.Writer) (string, error) {
		_, err := io.WriteString(w, "done")
		return "done", err
	})
	if out != written || out != "done" {
		t.Fatalf("unexpected capture %q / %q", out, written)
	}
}
