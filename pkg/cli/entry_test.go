package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"golang.org/x/tools/txtar"
)

// extract unpacks a txtar fixture into a fresh directory and returns
// the directory and the expected output.
func extract(t *testing.T, fixture string) (dir, want string) {
	t.Helper()

	archive, err := txtar.ParseFile(filepath.Join("testdata", fixture))
	if err != nil {
		t.Fatal(err)
	}
	dir = t.TempDir()
	for _, f := range archive.Files {
		if f.Name == "expected.js" {
			want = strings.TrimSuffix(string(f.Data), "\n")
			continue
		}
		if err := os.WriteFile(filepath.Join(dir, f.Name), f.Data, 0o644); err != nil {
			t.Fatal(err)
		}
	}
	if want == "" {
		t.Fatalf("fixture %s has no expected.js", fixture)
	}
	return dir, want
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	return string(data)
}

func TestRunFixtures(t *testing.T) {
	fixtures := []string{
		"basic.txt",
		"reserved.txt",
		"closures.txt",
		"patterns.txt",
	}

	for _, fixture := range fixtures {
		t.Run(fixture, func(t *testing.T) {
			dir, want := extract(t, fixture)
			out := filepath.Join(dir, "out.js")

			code := Run([]string{"-o", out, filepath.Join(dir, "input.js")})
			if code != 0 {
				t.Fatalf("exit code = %d, want 0", code)
			}
			if got := readFile(t, out); got != want {
				t.Fatalf("output mismatch\n got %q\nwant %q", got, want)
			}
		})
	}
}

func TestRunInPlace(t *testing.T) {
	dir, want := extract(t, "basic.txt")
	input := filepath.Join(dir, "input.js")

	if code := Run([]string{"-w", input}); code != 0 {
		t.Fatalf("exit code = %d, want 0", code)
	}
	if got := readFile(t, input); got != want {
		t.Fatalf("in-place output mismatch\n got %q\nwant %q", got, want)
	}
}

func TestRunNoMangle(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "input.js")
	if err := os.WriteFile(input, []byte("var longName = 1;\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	out := filepath.Join(dir, "out.js")

	if code := Run([]string{"-no-mangle", "-o", out, input}); code != 0 {
		t.Fatalf("exit code = %d, want 0", code)
	}
	if got := readFile(t, out); got != "var longName=1" {
		t.Fatalf("got %q, want the printed source without renames", got)
	}
}

func TestRunParseErrorFails(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "broken.js")
	if err := os.WriteFile(input, []byte("var = ;\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	out := filepath.Join(dir, "out.js")

	if code := Run([]string{"-o", out, input}); code != 1 {
		t.Fatalf("exit code = %d, want 1", code)
	}
	if _, err := os.Stat(out); !os.IsNotExist(err) {
		t.Fatal("no output should be written for a failed parse")
	}
}

func TestRunCacheRoundTrip(t *testing.T) {
	dir, want := extract(t, "basic.txt")
	input := filepath.Join(dir, "input.js")
	cacheDir := filepath.Join(dir, "artifact-cache")

	for i := 0; i < 2; i++ {
		out := filepath.Join(dir, "out.js")
		if code := Run([]string{"-cache-dir", cacheDir, "-o", out, input}); code != 0 {
			t.Fatalf("run %d: exit code = %d, want 0", i, code)
		}
		if got := readFile(t, out); got != want {
			t.Fatalf("run %d: output mismatch\n got %q\nwant %q", i, got, want)
		}
	}
}

func TestRunCacheKeyedByMangleMode(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "input.js")
	if err := os.WriteFile(input, []byte("var longName = 1;\ntouch(longName);\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cacheDir := filepath.Join(dir, "artifact-cache")
	out := filepath.Join(dir, "out.js")

	if code := Run([]string{"-cache-dir", cacheDir, "-o", out, input}); code != 0 {
		t.Fatalf("mangled run: exit code = %d, want 0", code)
	}
	if got := readFile(t, out); got != "var a=1;touch(a)" {
		t.Fatalf("mangled run output = %q", got)
	}

	// The same file with renaming off must not be served the mangled
	// artifact cached above.
	if code := Run([]string{"-no-mangle", "-cache-dir", cacheDir, "-o", out, input}); code != 0 {
		t.Fatalf("no-mangle run: exit code = %d, want 0", code)
	}
	if got := readFile(t, out); got != "var longName=1;touch(longName)" {
		t.Fatalf("no-mangle run output = %q", got)
	}

	// And the mangled entry is still there for the next mangled run.
	if code := Run([]string{"-cache-dir", cacheDir, "-o", out, input}); code != 0 {
		t.Fatalf("second mangled run: exit code = %d, want 0", code)
	}
	if got := readFile(t, out); got != "var a=1;touch(a)" {
		t.Fatalf("second mangled run output = %q", got)
	}
}

func TestRunRejectsBadFlagCombos(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.js")
	b := filepath.Join(dir, "b.js")
	for _, f := range []string{a, b} {
		if err := os.WriteFile(f, []byte("var x = 1;\n"), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	if code := Run([]string{"-o", filepath.Join(dir, "out.js"), a, b}); code != 2 {
		t.Fatal("-o with multiple inputs should be rejected")
	}
	if code := Run([]string{"-o", filepath.Join(dir, "out.js"), "-w", a}); code != 2 {
		t.Fatal("-o with -w should be rejected")
	}
	if code := Run(nil); code != 2 {
		t.Fatal("no inputs should be rejected")
	}
}

func TestIsSourceFile(t *testing.T) {
	for _, path := range []string{"app.js", "mod.mjs", "old.cjs"} {
		if !isSourceFile(path) {
			t.Fatalf("%s should be recognized", path)
		}
	}
	for _, path := range []string{"notes.txt", "style.css", "js"} {
		if isSourceFile(path) {
			t.Fatalf("%s should not be recognized", path)
		}
	}
}
