package testsupport

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"gopkg.in/yaml.v3"
)

// Case is one golden formatting case: a template, its arguments and either
// the expected output or a fragment of the expected error message.
type Case struct {
	Name     string `yaml:"name"`
	Template string `yaml:"template"`
	Args     []any  `yaml:"args,omitempty"`
	Locale   string `yaml:"locale,omitempty"`
	Want     string `yaml:"want,omitempty"`
	Error    string `yaml:"error,omitempty"`
}

// caseFile is the on-disk layout of a golden case document.
type caseFile struct {
	Cases []Case `yaml:"cases"`
}

// LoadCases reads a YAML golden case document.
func LoadCases(path string) ([]Case, error) {
	if path == "" {
		return nil, errors.New("testsupport: cases path is required")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("testsupport: read cases: %w", err)
	}
	var doc caseFile
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("testsupport: unmarshal cases %s: %w", path, err)
	}
	seen := make(map[string]struct{}, len(doc.Cases))
	for i, c := range doc.Cases {
		if c.Name == "" {
			return nil, fmt.Errorf("testsupport: %s: case %d has no name", path, i)
		}
		if _, dup := seen[c.Name]; dup {
			return nil, fmt.Errorf("testsupport: %s: duplicate case %q", path, c.Name)
		}
		seen[c.Name] = struct{}{}
	}
	return doc.Cases, nil
}

// MustLoadCases is LoadCases failing the test on error.
func MustLoadCases(t *testing.T, path string) []Case {
	t.Helper()

	cases, err := LoadCases(path)
	if err != nil {
		t.Fatalf("load cases: %v", err)
	}
	return cases
}

// WriteCases rewrites a golden case document when UPDATE_GOLDENS is set.
// Returns true if the document was written.
func WriteCases(t *testing.T, path string, cases []Case) bool {
	t.Helper()

	if os.Getenv("UPDATE_GOLDENS") == "" {
		return false
	}
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(caseFile{Cases: cases}); err != nil {
		t.Fatalf("marshal cases: %v", err)
	}
	if err := enc.Close(); err != nil {
		t.Fatalf("marshal cases: %v", err)
	}
	return WriteMaybeGolden(t, path, buf.Bytes())
}

// CompareGolden returns a diff string if the values differ.
func CompareGolden(want, got any) string {
	return cmp.Diff(want, got)
}

// MustReadGolden reads a golden file and returns its raw bytes.
func MustReadGolden(t *testing.T, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read golden: %v", err)
	}
	return data
}

// MustReadGoldenString reads a golden file and returns its string content.
func MustReadGoldenString(t *testing.T, path string) string {
	t.Helper()
	return string(MustReadGolden(t, path))
}

// WriteMaybeGolden updates a golden file when UPDATE_GOLDENS is set. Returns
// true if the golden was written (test should exit early).
func WriteMaybeGolden(t *testing.T, path string, data []byte) bool {
	t.Helper()
	if os.Getenv("UPDATE_GOLDENS") == "" {
		return false
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir golden dir: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write golden: %v", err)
	}
	return true
}

// CaptureOutput runs fn against a buffer and returns both the string result
// and what was written, failing the test on error.
func CaptureOutput(t *testing.T, fn func(io.Writer) (string, error)) (string, string) {
	t.Helper()

	var buf bytes.Buffer
	out, err := fn(&buf)
	if err != nil {
		t.Fatalf("capture output: %v", err)
	}

	return out, buf.String()
}
