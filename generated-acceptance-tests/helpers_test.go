package acceptance_test

import (
	"bytes"
	"encoding/json"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
)

// runFmx executes the fmx binary and returns stdout, stderr, and exit code.
func runFmx(t *testing.T, dir string, args ...string) (string, string, int) {
	t.Helper()
	cmd := exec.Command(fmxBinary, args...)
	cmd.Dir = dir
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	err := cmd.Run()
	exitCode := 0
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			exitCode = exitErr.ExitCode()
		} else {
			t.Fatalf("failed to run fmx: %v", err)
		}
	}
	return stdout.String(), stderr.String(), exitCode
}

// runFmxSuccess runs fmx expecting exit code 0 and returns stdout.
func runFmxSuccess(t *testing.T, dir string, args ...string) string {
	t.Helper()
	stdout, stderr, exitCode := runFmx(t, dir, args...)
	if exitCode != 0 {
		t.Fatalf("expected exit 0, got %d\nargs: %v\nstdout: %s\nstderr: %s", exitCode, args, stdout, stderr)
	}
	return stdout
}

// runFmxJSON runs fmx with --json and parses the result.
func runFmxJSON(t *testing.T, dir string, args ...string) map[string]interface{} {
	t.Helper()
	stdout := runFmxSuccess(t, dir, append([]string{"--json"}, args...)...)
	var result map[string]interface{}
	if err := json.Unmarshal([]byte(stdout), &result); err != nil {
		t.Fatalf("failed to parse JSON: %v\noutput: %s", err, stdout)
	}
	return result
}

// initWorkspace creates a temp dir and initializes an fmx workspace. A
// non-empty extraConfig replaces the config file; unset keys keep their
// defaults.
func initWorkspace(t *testing.T, extraConfig string) string {
	t.Helper()
	dir := t.TempDir()
	runFmxSuccess(t, dir, "init")
	if extraConfig != "" {
		writeFile(t, dir, ".fmx/config.yaml", extraConfig)
	}
	return dir
}

// writeFile writes content to the slash-separated path under dir.
func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	p := filepath.Join(dir, filepath.FromSlash(name))
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

// readFile returns the content of the slash-separated path under dir.
func readFile(t *testing.T, dir, name string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(dir, filepath.FromSlash(name)))
	if err != nil {
		t.Fatalf("reading %s: %v", name, err)
	}
	return string(data)
}

// fileExists reports whether the slash-separated path exists under dir.
func fileExists(dir, name string) bool {
	_, err := os.Stat(filepath.Join(dir, filepath.FromSlash(name)))
	return err == nil
}
