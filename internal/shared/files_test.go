package shared

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestEnsureDir(t *testing.T) {
	t.Run("Creates Missing Directory", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "a", "b", "c")

		if err := EnsureDir(path); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		info, err := os.Stat(path)
		if err != nil {
			t.Fatalf("directory should exist: %v", err)
		}
		if !info.IsDir() {
			t.Error("expected a directory")
		}
	})

	t.Run("Existing Directory", func(t *testing.T) {
		path := t.TempDir()
		if err := EnsureDir(path); err != nil {
			t.Errorf("expected no error for existing directory, got %v", err)
		}
	})

	t.Run("Path Is A File", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "file")
		if err := os.WriteFile(path, []byte("x"), 0644); err != nil {
			t.Fatalf("failed to write file: %v", err)
		}

		if err := EnsureDir(path); !errors.Is(err, ErrInvalidArgument) {
			t.Errorf("expected ErrInvalidArgument, got %v", err)
		}
	})
}

func TestListFiles(t *testing.T) {
	tmpDir := t.TempDir()

	for _, name := range []string{"b.json", "a.json", "notes.txt"} {
		if err := os.WriteFile(filepath.Join(tmpDir, name), []byte("{}"), 0644); err != nil {
			t.Fatalf("failed to write file: %v", err)
		}
	}
	if err := os.Mkdir(filepath.Join(tmpDir, "sub.json"), 0755); err != nil {
		t.Fatalf("failed to create directory: %v", err)
	}

	t.Run("Filters And Sorts", func(t *testing.T) {
		files, err := ListFiles(tmpDir, ".json")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		if len(files) != 2 {
			t.Fatalf("expected 2 files, got %d: %v", len(files), files)
		}
		if filepath.Base(files[0]) != "a.json" || filepath.Base(files[1]) != "b.json" {
			t.Errorf("expected sorted json files, got %v", files)
		}
	})

	t.Run("Missing Directory", func(t *testing.T) {
		if _, err := ListFiles(filepath.Join(tmpDir, "missing"), ".json"); err == nil {
			t.Error("expected error for missing directory")
		}
	})
}

func TestVerifyAndReadFile(t *testing.T) {
	t.Run("Existing File", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "data.json")
		if err := os.WriteFile(path, []byte(`{"ok":true}`), 0644); err != nil {
			t.Fatalf("failed to write file: %v", err)
		}

		data, err := VerifyAndReadFile(path)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if string(data) != `{"ok":true}` {
			t.Errorf("unexpected contents: %s", data)
		}
	})

	t.Run("Missing File", func(t *testing.T) {
		_, err := VerifyAndReadFile(filepath.Join(t.TempDir(), "missing.json"))
		if !errors.Is(err, ErrInvalidArgument) {
			t.Errorf("expected ErrInvalidArgument, got %v", err)
		}
	})
}

func TestJSONHelpers(t *testing.T) {
	t.Run("IndentJSON", func(t *testing.T) {
		indented, err := IndentJSON([]byte(`{"a":1,"b":[2,3]}`))
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		expected := "{\n  \"a\": 1,\n  \"b\": [\n    2,\n    3\n  ]\n}"
		if string(indented) != expected {
			t.Errorf("unexpected indentation:\n%s", indented)
		}

		if _, err := IndentJSON([]byte(`{broken`)); !errors.Is(err, ErrInvalidInput) {
			t.Errorf("expected ErrInvalidInput, got %v", err)
		}
	})

	t.Run("MarshalJSON", func(t *testing.T) {
		compact, err := MarshalJSON(map[string]int{"a": 1}, false)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if string(compact) != `{"a":1}` {
			t.Errorf("unexpected compact output: %s", compact)
		}

		pretty, err := MarshalJSON(map[string]int{"a": 1}, true)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if string(pretty) != "{\n  \"a\": 1\n}" {
			t.Errorf("unexpected pretty output: %s", pretty)
		}
	})
}
