// Package cli provides shell completion script generation for various shells.
package cli

import (
	"fmt"
	"io"
)

// GenerateCompletion generates a shell completion script for the specified shell.
//
// Parameters:
//   - out: The writer to output the completion script.
//   - shell: The shell type ("bash", "zsh", "fish", "powershell").
//   - algorithms: List of available algorithm names.
//
// Returns:
//   - error: An error if the shell is not supported.
func GenerateCompletion(out io.Writer, shell string, algorithms []string) error {
	switch shell {
	case "bash":
		return generateBashCompletion(out, algorithms)
	case "zsh":
		return generateZshCompletion(out, algorithms)
	case "fish":
		return generateFishCompletion(out, algorithms)
	case "powershell", "ps":
		return generatePowerShellCompletion(out, algorithms)
	default:
		return fmt.Errorf("unsupported shell: %s (accepted values: bash, zsh, fish, powershell)", shell)
	}
}

// generateBashCompletion generates a Bash completion script.
func generateBashCompletion(out io.Writer, algorithms []string) error {
	script := `# Bash completion script for factorcalc
# Add this to your ~/.bashrc or ~/.bash_completion

_factorcalc_completions() {
    local cur prev opts algorithms
    COMPREPLY=()
    cur="${COMP_WORDS[COMP_CWORD]}"
    prev="${COMP_WORDS[COMP_CWORD-1]}"

    # Main options
    opts="--help -h --version -V -n -v -d --details --timeout --algo --workers --rounds --fermat-window --rho-iterations --isprime --nextprime --json --server --port --no-color --output -o --quiet -q --completion"

    # Available algorithms
    algorithms="%s all"

    case "${prev}" in
        --algo)
            COMPREPLY=( $(compgen -W "${algorithms}" -- "${cur}") )
            return 0
            ;;
        --completion)
            COMPREPLY=( $(compgen -W "bash zsh fish powershell" -- "${cur}") )
            return 0
            ;;
        --output|-o)
            # File/directory completion
            COMPREPLY=( $(compgen -f -- "${cur}") )
            return 0
            ;;
        --port)
            COMPREPLY=( $(compgen -W "8080 3000 5000 9000" -- "${cur}") )
            return 0
            ;;
        --timeout)
            COMPREPLY=( $(compgen -W "1m 5m 10m 30m 1h" -- "${cur}") )
            return 0
            ;;
        --workers)
            COMPREPLY=( $(compgen -W "0 2 4 8 16" -- "${cur}") )
            return 0
            ;;
        --rounds)
            COMPREPLY=( $(compgen -W "20 40 64 128" -- "${cur}") )
            return 0
            ;;
        --fermat-window)
            COMPREPLY=( $(compgen -W "100 1000 10000 100000" -- "${cur}") )
            return 0
            ;;
        --rho-iterations)
            COMPREPLY=( $(compgen -W "0 10000 100000 1000000" -- "${cur}") )
            return 0
            ;;
    esac

    if [[ "${cur}" == -* ]]; then
        COMPREPLY=( $(compgen -W "${opts}" -- "${cur}") )
        return 0
    fi
}

complete -F _factorcalc_completions factorcalc
`
	algoList := ""
	for i, algo := range algorithms {
		if i > 0 {
			algoList += " "
		}
		algoList += algo
	}

	_, err := fmt.Fprintf(out, script, algoList)
	return err
}

// generateZshCompletion generates a Zsh completion script.
func generateZshCompletion(out io.Writer, algorithms []string) error {
	script := `#compdef factorcalc

# Zsh completion script for factorcalc
# Add this to your ~/.zshrc or place in $fpath

_factorcalc() {
    local -a algorithms
    algorithms=(%s all)

    _arguments -s \
        '(-h --help)'{-h,--help}'[Show help message]' \
        '(-V --version)'{-V,--version}'[Show version information]' \
        '-n[Decimal integer to factorize]:number:' \
        '-v[Display the full factor list]' \
        '(-d --details)'{-d,--details}'[Show performance details]' \
        '--timeout[Maximum execution time]:duration:(1m 5m 10m 30m 1h)' \
        '--algo[Algorithm to use]:algorithm:($algorithms)' \
        '--workers[Goroutine count for parallel strategies]:count:(0 2 4 8 16)' \
        '--rounds[Miller-Rabin witness rounds]:rounds:(20 40 64 128)' \
        '--fermat-window[Difference-of-squares candidate window]:window:(100 1000 10000 100000)' \
        '--rho-iterations[Pollard rho iteration cap]:iterations:(0 10000 100000 1000000)' \
        '--isprime[Only test the number for primality]' \
        '--nextprime[Find the next prime greater than the number]' \
        '--json[Output in JSON format]' \
        '--server[Start HTTP server mode]' \
        '--port[Server port]:port:(8080 3000 5000 9000)' \
        '--no-color[Disable colored output]' \
        '(-o --output)'{-o,--output}'[Output file path]:file:_files' \
        '(-q --quiet)'{-q,--quiet}'[Quiet mode for scripts]' \
        '--completion[Generate completion script]:shell:(bash zsh fish powershell)'
}

_factorcalc "$@"
`
	algoList := ""
	for i, algo := range algorithms {
		if i > 0 {
			algoList += " "
		}
		algoList += algo
	}

	_, err := fmt.Fprintf(out, script, algoList)
	return err
}

// generateFishCompletion generates a Fish completion script.
func generateFishCompletion(out io.Writer, algorithms []string) error {
	script := `# Fish completion script for factorcalc
# Add this to ~/.config/fish/completions/factorcalc.fish

# Disable file completion by default
complete -c factorcalc -f

# Help and version
complete -c factorcalc -s h -l help -d 'Show help message'
complete -c factorcalc -s V -l version -d 'Show version information'

# Main options
complete -c factorcalc -s n -d 'Decimal integer to factorize' -x
complete -c factorcalc -s v -d 'Display the full factor list'
complete -c factorcalc -s d -l details -d 'Show performance details'
complete -c factorcalc -l timeout -d 'Maximum execution time' -xa '1m 5m 10m 30m 1h'
complete -c factorcalc -l algo -d 'Algorithm to use' -xa '%s all'
complete -c factorcalc -l workers -d 'Goroutine count for parallel strategies' -xa '0 2 4 8 16'
complete -c factorcalc -l rounds -d 'Miller-Rabin witness rounds' -xa '20 40 64 128'
complete -c factorcalc -l fermat-window -d 'Difference-of-squares candidate window' -xa '100 1000 10000 100000'
complete -c factorcalc -l rho-iterations -d 'Pollard rho iteration cap' -xa '0 10000 100000 1000000'

# Primality modes
complete -c factorcalc -l isprime -d 'Only test the number for primality'
complete -c factorcalc -l nextprime -d 'Find the next prime greater than the number'

# Output options
complete -c factorcalc -l json -d 'Output in JSON format'
complete -c factorcalc -s o -l output -d 'Output file path' -rF
complete -c factorcalc -s q -l quiet -d 'Quiet mode for scripts'
complete -c factorcalc -l no-color -d 'Disable colored output'

# Server mode
complete -c factorcalc -l server -d 'Start HTTP server mode'
complete -c factorcalc -l port -d 'Server port' -xa '8080 3000 5000 9000'

# Completion
complete -c factorcalc -l completion -d 'Generate completion script' -xa 'bash zsh fish powershell'
`
	algoList := ""
	for i, algo := range algorithms {
		if i > 0 {
			algoList += " "
		}
		algoList += algo
	}

	_, err := fmt.Fprintf(out, script, algoList)
	return err
}

// generatePowerShellCompletion generates a PowerShell completion script.
func generatePowerShellCompletion(out io.Writer, algorithms []string) error {
	script := `# PowerShell completion script for factorcalc
# Add this to your $PROFILE

$factorcalcAlgorithms = @(%s, 'all')

Register-ArgumentCompleter -CommandName 'factorcalc' -Native -ScriptBlock {
    param($wordToComplete, $commandAst, $cursorPosition)

    $options = @(
        @{Name = '-h'; Description = 'Show help message' }
        @{Name = '--help'; Description = 'Show help message' }
        @{Name = '-V'; Description = 'Show version information' }
        @{Name = '--version'; Description = 'Show version information' }
        @{Name = '-n'; Description = 'Decimal integer to factorize' }
        @{Name = '-v'; Description = 'Display the full factor list' }
        @{Name = '-d'; Description = 'Show performance details' }
        @{Name = '--details'; Description = 'Show performance details' }
        @{Name = '--timeout'; Description = 'Maximum execution time' }
        @{Name = '--algo'; Description = 'Algorithm to use' }
        @{Name = '--workers'; Description = 'Goroutine count for parallel strategies' }
        @{Name = '--rounds'; Description = 'Miller-Rabin witness rounds' }
        @{Name = '--fermat-window'; Description = 'Difference-of-squares candidate window' }
        @{Name = '--rho-iterations'; Description = 'Pollard rho iteration cap' }
        @{Name = '--isprime'; Description = 'Only test the number for primality' }
        @{Name = '--nextprime'; Description = 'Find the next prime greater than the number' }
        @{Name = '--json'; Description = 'Output in JSON format' }
        @{Name = '--server'; Description = 'Start HTTP server mode' }
        @{Name = '--port'; Description = 'Server port' }
        @{Name = '--no-color'; Description = 'Disable colored output' }
        @{Name = '-o'; Description = 'Output file path' }
        @{Name = '--output'; Description = 'Output file path' }
        @{Name = '-q'; Description = 'Quiet mode for scripts' }
        @{Name = '--quiet'; Description = 'Quiet mode for scripts' }
        @{Name = '--completion'; Description = 'Generate completion script' }
    )

    $elements = $commandAst.CommandElements
    $lastElement = if ($elements.Count -gt 1) { $elements[-1].ToString() } else { '' }
    $prevElement = if ($elements.Count -gt 2) { $elements[-2].ToString() } else { '' }

    # Context-aware completions
    switch ($prevElement) {
        '--algo' {
            $factorcalcAlgorithms | Where-Object { $_ -like "$wordToComplete*" } | ForEach-Object {
                [System.Management.Automation.CompletionResult]::new($_, $_, 'ParameterValue', $_)
            }
            return
        }
        '--completion' {
            @('bash', 'zsh', 'fish', 'powershell') | Where-Object { $_ -like "$wordToComplete*" } | ForEach-Object {
                [System.Management.Automation.CompletionResult]::new($_, $_, 'ParameterValue', $_)
            }
            return
        }
        '--timeout' {
            @('1m', '5m', '10m', '30m', '1h') | Where-Object { $_ -like "$wordToComplete*" } | ForEach-Object {
                [System.Management.Automation.CompletionResult]::new($_, $_, 'ParameterValue', $_)
            }
            return
        }
        '--port' {
            @('8080', '3000', '5000', '9000') | Where-Object { $_ -like "$wordToComplete*" } | ForEach-Object {
                [System.Management.Automation.CompletionResult]::new($_, $_, 'ParameterValue', $_)
            }
            return
        }
    }

    # Default: show options
    $options | Where-Object { $_.Name -like "$wordToComplete*" } | ForEach-Object {
        [System.Management.Automation.CompletionResult]::new($_.Name, $_.Name, 'ParameterName', $_.Description)
    }
}
`
	algoList := ""
	for i, algo := range algorithms {
		if i > 0 {
			algoList += ", "
		}
		algoList += fmt.Sprintf("'%s'", algo)
	}

	_, err := fmt.Fprintf(out, script, algoList)
	return err
}
