// Package shellscript emits the shell-specific fragments `env` prints:
// PATH setup, the MULTISHELL_PATH export, and the optional use-on-cd
// autoload hook. Out of the core per spec.md §1 — string formatting
// only, grounded on the original implementation's src/shell/*.rs.
package shellscript

import (
	"fmt"
	"strings"

	"github.com/kadena-community/pactup/internal/versionfile"
)

// Shell is one of the four shells pactup emits fragments for.
type Shell int

const (
	Bash Shell = iota
	Zsh
	Fish
	PowerShell
)

// Parse maps a --shell flag value to a Shell.
func Parse(name string) (Shell, bool) {
	switch strings.ToLower(name) {
	case "bash":
		return Bash, true
	case "zsh":
		return Zsh, true
	case "fish":
		return Fish, true
	case "powershell", "pwsh":
		return PowerShell, true
	default:
		return 0, false
	}
}

// PathExport renders "prepend binDir to PATH" in shell, honoring
// spec.md §4.10's "(a) prepend that path's bin/ to PATH".
func PathExport(sh Shell, binDir string) string {
	switch sh {
	case Fish:
		return fmt.Sprintf("set -gx PATH %s $PATH", binDir)
	case PowerShell:
		return fmt.Sprintf(`$env:PATH = "%s" + [System.IO.Path]::PathSeparator + $env:PATH`, binDir)
	default: // Bash, Zsh
		return fmt.Sprintf("export PATH=%q:$PATH", binDir)
	}
}

// SetEnvVar renders an export of name=value, used for MULTISHELL_PATH
// (spec.md §4.10's "(b) export a MULTISHELL_PATH variable").
func SetEnvVar(sh Shell, name, value string) string {
	switch sh {
	case Fish:
		return fmt.Sprintf("set -gx %s %q", name, value)
	case PowerShell:
		return fmt.Sprintf("$env:%s = %q", name, value)
	default:
		return fmt.Sprintf("export %s=%q", name, value)
	}
}

// UseOnCD renders the autoload-on-cd hook: a cd wrapper that calls
// `pactup use --silent-if-unchanged` whenever the new directory (or, for
// the Recursive strategy, any directory) carries a version file.
func UseOnCD(sh Shell, strategy versionfile.Strategy) string {
	switch sh {
	case Fish:
		return fishUseOnCD(strategy)
	case PowerShell:
		return powershellUseOnCD(strategy)
	default:
		return posixUseOnCD(strategy)
	}
}

func autoloadCondition(strategy versionfile.Strategy, posixGuard string) string {
	if strategy == versionfile.Local {
		return posixGuard
	}
	return "pactup use --silent-if-unchanged"
}

func posixUseOnCD(strategy versionfile.Strategy) string {
	hook := autoloadCondition(strategy,
		"if [ -f .pact-version ] || [ -f .pactrc ]; then\n    pactup use --silent-if-unchanged\nfi")

	return fmt.Sprintf(`__pactup_use_if_file_found() {
    %s
}

__pactup_cd() {
    \cd "$@" || return $?
    __pactup_use_if_file_found
}

alias cd=__pactup_cd
__pactup_use_if_file_found
`, indent(hook, "    "))
}

func fishUseOnCD(strategy versionfile.Strategy) string {
	hook := autoloadCondition(strategy,
		"if test -f .pact-version -o -f .pactrc\n    pactup use --silent-if-unchanged\nend")

	return fmt.Sprintf(`function __pactup_use_if_file_found --on-variable PWD
    %s
end

__pactup_use_if_file_found
`, indent(hook, "    "))
}

func powershellUseOnCD(strategy versionfile.Strategy) string {
	hook := autoloadCondition(strategy,
		"if ((Test-Path .pact-version) -or (Test-Path .pactrc)) {\n    pactup use --silent-if-unchanged\n}")

	return fmt.Sprintf(`function global:__pactup_use_if_file_found {
    %s
}

function global:__pactup_cd {
    param($path)
    if ($path -eq $null) { Set-Location } else { Set-Location $path }
    __pactup_use_if_file_found
}

Set-Alias -Scope global -Option AllScope cd __pactup_cd
__pactup_use_if_file_found
`, indent(hook, "    "))
}

func indent(s, prefix string) string {
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		if i == 0 || l == "" {
			continue
		}
		lines[i] = prefix + l
	}
	return strings.Join(lines, "\n")
}
