//go:build e2e

package e2e_test

import (
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/rogpeppe/go-internal/testscript"
)

var replayBinary string

// Backticks in the scripts below are escaped: inside shell double quotes they
// would run the quoted command instead of printing it.

// fakeCargo announces a compiler invocation the way `cargo build --verbose` does.
// Invoked as: cargo build [--release] --bin <entry> --verbose.
const fakeCargo = `#!/bin/sh
entry=""
prev=""
for arg in "$@"; do
	if [ "$prev" = "--bin" ]; then entry="$arg"; fi
	prev="$arg"
done
if [ -n "$FAKE_CARGO_SILENT" ]; then
	echo "    Finished dev target(s) in 0.01s" >&2
	exit 0
fi
echo "   Compiling demo v0.1.0 ($PWD)" >&2
echo "     Running \` + "`" + `rustc --crate-name build_script_build build.rs\` + "`" + `" >&2
echo "     Running \` + "`" + `rustc --crate-name $entry src/bin/$entry.rs $RUSTFLAGS\` + "`" + `" >&2
echo "    Finished dev target(s) in 0.52s" >&2
`

// fakeRustc compiles an entry into a shell script that greets and exits.
// Sources containing "broken" fail to compile; sources containing "panics" exit 101.
const fakeRustc = `#!/bin/sh
out=""
src=""
emit=""
prev=""
for arg in "$@"; do
	if [ "$prev" = "-o" ]; then out="$arg"; fi
	prev="$arg"
	case "$arg" in
		--emit=*) emit="${arg#--emit=}" ;;
		*.rs) src="$arg" ;;
	esac
done
case "$src" in
	*broken*)
		echo "error[E0425]: cannot find value \` + "`" + `x\` + "`" + ` in this scope" >&2
		exit 1
		;;
esac
if [ "$emit" = "link" ]; then
	code=0
	case "$src" in *panics*) code=101 ;; esac
	printf '#!/bin/sh\necho "hello from %s"\nexit %s\n' "$src" "$code" > "$out"
	chmod +x "$out"
fi
exit 0
`

func TestMain(m *testing.M) {
	tmpDir, err := os.MkdirTemp("", "replay-e2e-*")
	if err != nil {
		panic(err)
	}

	replayBinary = filepath.Join(tmpDir, "replay")

	//nolint:gosec // Building binary with static arguments, not user input
	cmd := exec.Command("go", "build", "-o", replayBinary, "./cmd/replay")
	cmd.Dir = ".."
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		panic("failed to build replay binary: " + err.Error())
	}

	exitCode := m.Run()

	_ = os.RemoveAll(tmpDir)

	os.Exit(exitCode)
}

func TestScripts(t *testing.T) {
	testscript.Run(t, testscript.Params{
		Dir:   "testdata",
		Setup: setupE2E,
	})
}

func setupE2E(env *testscript.Env) error {
	env.Setenv("NO_COLOR", "1")
	env.Setenv("CI", "true")

	toolDir := filepath.Join(env.WorkDir, ".tools")
	if err := os.MkdirAll(toolDir, 0o750); err != nil {
		return err
	}
	for name, script := range map[string]string{"cargo": fakeCargo, "rustc": fakeRustc} {
		//nolint:gosec // Fake toolchain scripts must be executable
		if err := os.WriteFile(filepath.Join(toolDir, name), []byte(script), 0o755); err != nil {
			return err
		}
	}

	binDir := filepath.Dir(replayBinary)
	currentPath := env.Getenv("PATH")
	env.Setenv("PATH", binDir+string(os.PathListSeparator)+toolDir+string(os.PathListSeparator)+currentPath)

	homeDir := filepath.Join(env.WorkDir, ".home")
	if err := os.MkdirAll(homeDir, 0o750); err != nil {
		return err
	}
	env.Setenv("HOME", homeDir)

	return nil
}
