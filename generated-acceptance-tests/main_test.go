package acceptance_test

import (
	"os"
	"os/exec"
	"path/filepath"
	"testing"
)

var fmxBinary string

func TestMain(m *testing.M) {
	tmpDir, err := os.MkdirTemp("", "fmx-acceptance-*")
	if err != nil {
		panic(err)
	}
	defer os.RemoveAll(tmpDir)

	fmxBinary = filepath.Join(tmpDir, "fmx")
	build := exec.Command("go", "build", "-o", fmxBinary, "github.com/eykd/fmx")
	build.Stderr = os.Stderr
	if err := build.Run(); err != nil {
		panic("failed to build fmx binary: " + err.Error())
	}

	os.Exit(m.Run())
}
