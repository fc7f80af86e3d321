package cli

import (
	"fmt"
	"io"
	"strings"
)

// FlagCompletion describes a CLI flag for shell completion generation.
// Every shell generator reads flagRegistry, so adding a flag only requires
// appending to it.
type FlagCompletion struct {
	Long      string   // long flag name without "-" (e.g., "threads")
	Short     string   // short alias without "-" (e.g., "t")
	Help      string   // description text
	Values    []string // suggested completion values (nil = boolean/no suggestions)
	ValueName string   // label for the value in zsh
	IsFile    bool     // true if the flag takes a file path
	Choice    string   // "mixer" or "aggregator" when values come from a registry
}

var flagRegistry = []FlagCompletion{
	{Long: "help", Short: "h", Help: "Show help message"},
	{Long: "version", Short: "V", Help: "Show version information"},
	{Long: "threads", Short: "t", Help: "Number of workers", Values: []string{"1", "2", "4", "8"}, ValueName: "count"},
	{Long: "loops", Short: "l", Help: "Mixing steps per worker", Values: []string{"1000", "100000", "1000000"}, ValueName: "count"},
	{Long: "seed", Short: "s", Help: "Initial worker state", ValueName: "seed"},
	{Long: "params", Short: "p", Help: "Shift pairs a:b,a:b", Values: []string{"13:7", "7:9", "17:11"}, ValueName: "pairs"},
	{Long: "mixer", Help: "Transform", Choice: "mixer", ValueName: "mixer"},
	{Long: "aggregator", Help: "Fold policy", Choice: "aggregator", ValueName: "aggregator"},
	{Long: "max-workers", Help: "Concurrent worker budget", ValueName: "count"},
	{Long: "format", Help: "Result format", Values: []string{"dec", "hex"}, ValueName: "format"},
	{Long: "verbose", Short: "v", Help: "Print each worker state"},
	{Long: "quiet", Short: "q", Help: "Print only the result"},
	{Long: "debug", Help: "Enable debug logging"},
	{Long: "log-json", Help: "Write logs as JSON"},
	{Long: "no-color", Help: "Disable colored output"},
	{Long: "metrics-file", Help: "Prometheus textfile output", IsFile: true, ValueName: "file"},
	{Long: "completion", Help: "Generate completion script", Values: []string{"bash", "zsh", "fish"}, ValueName: "shell"},
}

// Choices lists the registry-backed values offered for -mixer and -aggregator.
type Choices struct {
	Mixers      []string
	Aggregators []string
}

func (c Choices) valuesFor(f FlagCompletion) []string {
	switch f.Choice {
	case "mixer":
		return c.Mixers
	case "aggregator":
		return c.Aggregators
	}
	return f.Values
}

// GenerateCompletion writes a completion script for shell ("bash", "zsh" or "fish").
func GenerateCompletion(out io.Writer, shell string, choices Choices) error {
	var script string
	switch shell {
	case "bash":
		script = bashCompletion(choices)
	case "zsh":
		script = zshCompletion(choices)
	case "fish":
		script = fishCompletion(choices)
	default:
		return fmt.Errorf("unsupported shell: %s (accepted values: bash, zsh, fish)", shell)
	}
	if _, err := fmt.Fprint(out, script); err != nil {
		return fmt.Errorf("completion %s generation failed: %w", shell, err)
	}
	return nil
}

func flagNames(f FlagCompletion) []string {
	var names []string
	if f.Long != "" {
		names = append(names, "-"+f.Long)
	}
	if f.Short != "" {
		names = append(names, "-"+f.Short)
	}
	return names
}

func bashCompletion(choices Choices) string {
	var opts []string
	var cases strings.Builder
	for _, f := range flagRegistry {
		names := flagNames(f)
		opts = append(opts, names...)

		var body string
		switch {
		case f.IsFile:
			body = `COMPREPLY=( $(compgen -f -- "${cur}") )`
		case len(choices.valuesFor(f)) > 0:
			body = fmt.Sprintf(`COMPREPLY=( $(compgen -W "%s" -- "${cur}") )`, strings.Join(choices.valuesFor(f), " "))
		default:
			continue
		}
		fmt.Fprintf(&cases, "        %s)\n            %s\n            return 0\n            ;;\n", strings.Join(names, "|"), body)
	}

	return fmt.Sprintf(`# Bash completion script for mixrng
# Add this to your ~/.bashrc or ~/.bash_completion

_mixrng_completions() {
    local cur prev opts
    COMPREPLY=()
    cur="${COMP_WORDS[COMP_CWORD]}"
    prev="${COMP_WORDS[COMP_CWORD-1]}"
    opts="%s"

    case "${prev}" in
%s    esac

    if [[ "${cur}" == -* ]]; then
        COMPREPLY=( $(compgen -W "${opts}" -- "${cur}") )
        return 0
    fi
}

complete -F _mixrng_completions mixrng
`, strings.Join(opts, " "), cases.String())
}

// zshArgEntry formats a single FlagCompletion as a zsh _arguments entry.
func zshArgEntry(f FlagCompletion, choices Choices) string {
	valueSuffix := ""
	values := choices.valuesFor(f)
	switch {
	case f.IsFile:
		valueSuffix = fmt.Sprintf(":%s:_files", f.ValueName)
	case len(values) > 0:
		valueSuffix = fmt.Sprintf(":%s:(%s)", f.ValueName, strings.Join(values, " "))
	case f.ValueName != "":
		valueSuffix = fmt.Sprintf(":%s:", f.ValueName)
	}

	if f.Short != "" {
		return fmt.Sprintf("        '(-%s -%s)'{-%s,-%s}'[%s]%s'",
			f.Short, f.Long, f.Short, f.Long, f.Help, valueSuffix)
	}
	return fmt.Sprintf("        '-%s[%s]%s'", f.Long, f.Help, valueSuffix)
}

func zshCompletion(choices Choices) string {
	args := make([]string, 0, len(flagRegistry))
	for _, f := range flagRegistry {
		args = append(args, zshArgEntry(f, choices))
	}
	return fmt.Sprintf(`#compdef mixrng

# Zsh completion script for mixrng
# Add this to your ~/.zshrc or place in $fpath

_mixrng() {
    _arguments -s \
%s
}

_mixrng "$@"
`, strings.Join(args, " \\\n"))
}

// fishCompleteLine formats a single FlagCompletion as a fish complete command.
func fishCompleteLine(f FlagCompletion, choices Choices) string {
	parts := []string{"complete -c mixrng"}
	if f.Short != "" {
		parts = append(parts, "-s "+f.Short)
	}
	parts = append(parts, "-o "+f.Long, fmt.Sprintf("-d '%s'", f.Help))

	values := choices.valuesFor(f)
	switch {
	case f.IsFile:
		parts = append(parts, "-rF")
	case len(values) > 0:
		parts = append(parts, fmt.Sprintf("-xa '%s'", strings.Join(values, " ")))
	case f.ValueName != "":
		parts = append(parts, "-x")
	}
	return strings.Join(parts, " ")
}

func fishCompletion(choices Choices) string {
	lines := []string{
		"# Fish completion script for mixrng",
		"# Add this to ~/.config/fish/completions/mixrng.fish",
		"",
		"complete -c mixrng -f",
	}
	for _, f := range flagRegistry {
		lines = append(lines, fishCompleteLine(f, choices))
	}
	return strings.Join(lines, "\n") + "\n"
}
