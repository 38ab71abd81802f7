package argh

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
)

// Shell identifies a supported login shell for completion hookup.
type Shell string

const (
	Bash Shell = "bash"
	Zsh  Shell = "zsh"
	Fish Shell = "fish"
)

var supportedShells = map[Shell]bool{
	Bash: true,
	Zsh:  true,
	Fish: true,
}

// DetectShell returns the current shell, checking version env variables in
// order, then falling back to $SHELL.
func DetectShell() (Shell, error) {
	if os.Getenv("FISH_VERSION") != "" {
		return Fish, nil
	}
	if os.Getenv("ZSH_VERSION") != "" {
		return Zsh, nil
	}
	if os.Getenv("BASH_VERSION") != "" {
		return Bash, nil
	}

	shellPath := os.Getenv("SHELL")
	if shellPath == "" {
		return "", errors.New("could not detect current shell: $SHELL is not set")
	}
	name := Shell(strings.ToLower(filepath.Base(shellPath)))
	if !supportedShells[name] {
		return "", errors.Errorf("shell %q is not supported (supported: bash, zsh, fish)", name)
	}
	return name, nil
}

// ParseShell validates and returns a Shell from a user-provided string.
func ParseShell(s string) (Shell, error) {
	sh := Shell(strings.ToLower(s))
	if !supportedShells[sh] {
		return "", errors.Errorf("shell %q is not supported (supported: bash, zsh, fish)", s)
	}
	return sh, nil
}

// CompletionScript returns the shell snippet that wires the program's
// completion: the shell re-invokes the program with the completion env
// variable set and the partial line in COMP_LINE, and the program answers
// with one candidate per line.
func CompletionScript(sh Shell, program string) (string, error) {
	fname := strings.NewReplacer("-", "_", ".", "_").Replace(program)
	switch sh {
	case Bash:
		return fmt.Sprintf(`_%[1]s_complete() {
    local IFS=$'\n'
    COMPREPLY=( $(COMP_LINE="${COMP_LINE}" %[3]s=bash %[2]s) )
}
complete -F _%[1]s_complete %[2]s
`, fname, program, completionEnv), nil
	case Zsh:
		return fmt.Sprintf(`#compdef %[2]s
_%[1]s_complete() {
    local -a completions
    completions=("${(@f)$(COMP_LINE="${words[*]}" %[3]s=zsh %[2]s)}")
    compadd -a completions
}
compdef _%[1]s_complete %[2]s
`, fname, program, completionEnv), nil
	case Fish:
		return fmt.Sprintf(`complete -c %[1]s -f -a '(COMP_LINE=(commandline -cp) %[2]s=fish %[1]s)'
`, program, completionEnv), nil
	}
	return "", errors.Errorf("shell %q is not supported (supported: bash, zsh, fish)", sh)
}

// completionsDir returns the default install directory for the shell's
// completion files.
func completionsDir(sh Shell) string {
	home, _ := os.UserHomeDir()
	if home == "" {
		return ""
	}
	switch sh {
	case Bash:
		return filepath.Join(home, ".local", "share", "bash-completion", "completions")
	case Zsh:
		return filepath.Join(home, ".zsh", "completions")
	case Fish:
		return filepath.Join(home, ".config", "fish", "completions")
	}
	return ""
}

// completionsFileName returns the conventional file name for the shell.
func completionsFileName(sh Shell, program string) string {
	switch sh {
	case Zsh:
		return "_" + program
	case Fish:
		return program + ".fish"
	default:
		return program + ".bash"
	}
}

// InstallCompletionScript writes the program's completion snippet to the
// shell's conventional completions directory and returns the path.
func InstallCompletionScript(sh Shell, program string) (string, error) {
	content, err := CompletionScript(sh, program)
	if err != nil {
		return "", err
	}
	dir := completionsDir(sh)
	if dir == "" {
		return "", errors.Errorf("unknown install directory for shell %q", sh)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", errors.Wrapf(err, "could not create completions directory %q", dir)
	}
	path := filepath.Join(dir, completionsFileName(sh, program))
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return "", errors.Wrap(err, "could not write completions file")
	}
	return path, nil
}
