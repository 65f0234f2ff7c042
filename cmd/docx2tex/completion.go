package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	flag "github.com/spf13/pflag"
)

// Shell represents a supported shell for completion generation.
type Shell string

// Supported shells for completion.
const (
	ShellBash       Shell = "bash"
	ShellZsh        Shell = "zsh"
	ShellFish       Shell = "fish"
	ShellPowerShell Shell = "powershell"
)

// ErrUnsupportedShell is returned when an unknown shell is requested.
var ErrUnsupportedShell = errors.New("unsupported shell")

// flagType represents the completion type for a flag.
type flagType int

const (
	flagString flagType = iota // default
	flagBool
	flagInt
	flagEnum // has predefined values
	flagFile // file with glob pattern
	flagDir  // directory
)

// flagDef describes a flag for completion purposes.
type flagDef struct {
	Long     string   // --output-dir
	Short    string   // -o (empty if none)
	Type     flagType // completion type
	Desc     string   // help text
	Values   []string // for enum flags
	FileGlob string   // for file flags
}

// commandDef describes a command for completion.
type commandDef struct {
	Name        string
	Desc        string
	Flags       []flagDef
	TakesFiles  bool   // accepts file arguments
	FilePattern string // glob for file arguments (e.g., "*.docx")
}

// completionMeta holds completion-specific metadata for flags.
// This is the ONLY place where completion hints are defined.
// Flag names, types, and descriptions come from the FlagSet.
type completionMeta struct {
	Values   []string // enum values
	FileGlob string   // file glob pattern
	IsDir    bool     // directory completion
}

// flagCompletionMeta maps flag names to their completion metadata.
var flagCompletionMeta = map[string]completionMeta{
	"config":     {FileGlob: "*.yaml,*.yml"},
	"output-dir": {IsDir: true},
	"resources":  {IsDir: true},
}

// buildConvertFlagSet creates a FlagSet with all convert command flags.
// This reuses the same flag registration as parseConvertFlags.
func buildConvertFlagSet() *flag.FlagSet {
	fs := flag.NewFlagSet("convert", flag.ContinueOnError)
	f := &convertFlags{}

	fs.IntVarP(&f.workers, "workers", "w", 0, "parallel workers (0 = auto)")
	fs.BoolVar(&f.recursive, "recursive", false, "descend into subdirectories of a directory input")

	addCommonFlags(fs, &f.common)
	addOutputFlags(fs, &f.output)
	addCorrectionFlags(fs, &f.correction)
	addResourceFlags(fs, &f.resources)

	return fs
}

// extractFlagsFromFlagSet extracts flag definitions from a pflag.FlagSet.
// Enriches with completion metadata from flagCompletionMeta.
func extractFlagsFromFlagSet(fs *flag.FlagSet) []flagDef {
	var flags []flagDef

	fs.VisitAll(func(f *flag.Flag) {
		fd := flagDef{
			Long:  f.Name,
			Short: f.Shorthand,
			Desc:  f.Usage,
		}

		switch f.Value.Type() {
		case "bool":
			fd.Type = flagBool
		case "int", "int8", "int16", "int32", "int64", "uint", "uint8", "uint16", "uint32", "uint64":
			fd.Type = flagInt
		default:
			fd.Type = flagString
		}

		if meta, ok := flagCompletionMeta[f.Name]; ok {
			if len(meta.Values) > 0 {
				fd.Type = flagEnum
				fd.Values = meta.Values
			} else if meta.FileGlob != "" {
				fd.Type = flagFile
				fd.FileGlob = meta.FileGlob
			} else if meta.IsDir {
				fd.Type = flagDir
			}
		}

		flags = append(flags, fd)
	})

	return flags
}

// getCommands returns the command registry for completion.
// Flags are extracted from the actual FlagSet - single source of truth.
func getCommands() []commandDef {
	convertFlags := extractFlagsFromFlagSet(buildConvertFlagSet())

	return []commandDef{
		{
			Name:        "convert",
			Desc:        "Convert .docx meeting minutes to LaTeX and PDF",
			Flags:       convertFlags,
			TakesFiles:  true,
			FilePattern: "*.docx",
		},
		{
			Name: "doctor",
			Desc: "Check the installation",
			Flags: []flagDef{
				{Long: "json", Type: flagBool, Desc: "machine-readable output"},
			},
		},
		{
			Name: "completion",
			Desc: "Generate shell completion script",
		},
		{
			Name: "version",
			Desc: "Show version information",
		},
		{
			Name: "help",
			Desc: "Show help for a command",
		},
	}
}

// commandNames returns the space-separated command list.
func commandNames(commands []commandDef) string {
	names := make([]string, len(commands))
	for i, cmd := range commands {
		names[i] = cmd.Name
	}
	return strings.Join(names, " ")
}

// flagWords returns the space-separated flag spellings for a command.
func flagWords(cmd commandDef) string {
	var words []string
	for _, f := range cmd.Flags {
		words = append(words, "--"+f.Long)
		if f.Short != "" {
			words = append(words, "-"+f.Short)
		}
	}
	return strings.Join(words, " ")
}

// GenerateCompletion writes a shell completion script to w.
// Returns an error if the shell is unsupported or the write fails.
func GenerateCompletion(w io.Writer, shell Shell) error {
	switch shell {
	case ShellBash:
		return generateBash(w)
	case ShellZsh:
		return generateZsh(w)
	case ShellFish:
		return generateFish(w)
	case ShellPowerShell:
		return generatePowerShell(w)
	default:
		return fmt.Errorf("%w: %q (supported: bash, zsh, fish, powershell)", ErrUnsupportedShell, shell)
	}
}

// generateBash writes the bash completion script.
func generateBash(w io.Writer) error {
	commands := getCommands()

	var b strings.Builder
	b.WriteString("# bash completion for docx2tex\n")
	b.WriteString("_docx2tex_completions() {\n")
	b.WriteString("    local cur prev commands\n")
	b.WriteString("    COMPREPLY=()\n")
	b.WriteString("    cur=\"${COMP_WORDS[COMP_CWORD]}\"\n")
	b.WriteString("    prev=\"${COMP_WORDS[COMP_CWORD-1]}\"\n")
	fmt.Fprintf(&b, "    commands=%q\n", commandNames(commands))
	b.WriteString("\n")
	b.WriteString("    if [[ ${COMP_CWORD} -eq 1 ]]; then\n")
	b.WriteString("        COMPREPLY=( $(compgen -W \"${commands}\" -- \"${cur}\") )\n")
	b.WriteString("        return 0\n")
	b.WriteString("    fi\n")
	b.WriteString("\n")
	b.WriteString("    case \"${COMP_WORDS[1]}\" in\n")

	for _, cmd := range commands {
		fmt.Fprintf(&b, "        %s)\n", cmd.Name)
		switch cmd.Name {
		case "completion":
			b.WriteString("            COMPREPLY=( $(compgen -W \"bash zsh fish powershell\" -- \"${cur}\") )\n")
		case "help":
			b.WriteString("            COMPREPLY=( $(compgen -W \"${commands}\" -- \"${cur}\") )\n")
		default:
			writeBashFlagDispatch(&b, cmd)
		}
		b.WriteString("            ;;\n")
	}

	b.WriteString("    esac\n")
	b.WriteString("    return 0\n")
	b.WriteString("}\n")
	b.WriteString("complete -F _docx2tex_completions docx2tex\n")

	_, err := io.WriteString(w, b.String())
	return err
}

// writeBashFlagDispatch emits value completion for flags that take paths,
// then the flag word list, then the positional file pattern.
func writeBashFlagDispatch(b *strings.Builder, cmd commandDef) {
	var dirSpellings, fileSpellings []string
	fileGlob := ""
	for _, f := range cmd.Flags {
		spellings := "--" + f.Long
		if f.Short != "" {
			spellings = "-" + f.Short + "|" + spellings
		}
		switch f.Type {
		case flagDir:
			dirSpellings = append(dirSpellings, spellings)
		case flagFile:
			fileSpellings = append(fileSpellings, spellings)
			fileGlob = f.FileGlob
		}
	}

	if len(dirSpellings) > 0 || len(fileSpellings) > 0 {
		b.WriteString("            case \"${prev}\" in\n")
		if len(fileSpellings) > 0 {
			pattern := strings.ReplaceAll(strings.TrimPrefix(fileGlob, "*."), ",*.", "|")
			fmt.Fprintf(b, "                %s)\n", strings.Join(fileSpellings, "|"))
			fmt.Fprintf(b, "                    COMPREPLY=( $(compgen -f -X '!*.@(%s)' -- \"${cur}\") )\n", pattern)
			b.WriteString("                    return 0 ;;\n")
		}
		if len(dirSpellings) > 0 {
			fmt.Fprintf(b, "                %s)\n", strings.Join(dirSpellings, "|"))
			b.WriteString("                    COMPREPLY=( $(compgen -d -- \"${cur}\") )\n")
			b.WriteString("                    return 0 ;;\n")
		}
		b.WriteString("            esac\n")
	}

	b.WriteString("            if [[ ${cur} == -* ]]; then\n")
	fmt.Fprintf(b, "                COMPREPLY=( $(compgen -W %q -- \"${cur}\") )\n", flagWords(cmd))
	if cmd.TakesFiles {
		b.WriteString("            else\n")
		pattern := strings.TrimPrefix(cmd.FilePattern, "*.")
		fmt.Fprintf(b, "                COMPREPLY=( $(compgen -f -X '!*.@(%s)' -- \"${cur}\") )\n", pattern)
	}
	b.WriteString("            fi\n")
}

// generateZsh writes the zsh completion script.
func generateZsh(w io.Writer) error {
	commands := getCommands()

	var b strings.Builder
	b.WriteString("#compdef docx2tex\n\n")
	b.WriteString("_docx2tex() {\n")
	b.WriteString("    local -a commands\n")
	b.WriteString("    commands=(\n")
	for _, cmd := range commands {
		fmt.Fprintf(&b, "        '%s:%s'\n", cmd.Name, cmd.Desc)
	}
	b.WriteString("    )\n\n")
	b.WriteString("    _arguments -C \\\n")
	b.WriteString("        '1: :->command' \\\n")
	b.WriteString("        '*:: :->args'\n\n")
	b.WriteString("    case $state in\n")
	b.WriteString("        command)\n")
	b.WriteString("            _describe 'command' commands\n")
	b.WriteString("            ;;\n")
	b.WriteString("        args)\n")
	b.WriteString("            case $words[1] in\n")

	for _, cmd := range commands {
		if len(cmd.Flags) == 0 && !cmd.TakesFiles && cmd.Name != "completion" {
			continue
		}
		fmt.Fprintf(&b, "                %s)\n", cmd.Name)
		if cmd.Name == "completion" {
			b.WriteString("                    _arguments '1:shell:(bash zsh fish powershell)'\n")
		} else {
			b.WriteString("                    _arguments \\\n")
			var specs []string
			for _, f := range cmd.Flags {
				specs = append(specs, "                        "+zshFlagSpec(f))
			}
			if cmd.TakesFiles {
				specs = append(specs, fmt.Sprintf("                        '*:file:_files -g \"%s\"'", cmd.FilePattern))
			}
			b.WriteString(strings.Join(specs, " \\\n"))
			b.WriteString("\n")
		}
		b.WriteString("                    ;;\n")
	}

	b.WriteString("            esac\n")
	b.WriteString("            ;;\n")
	b.WriteString("    esac\n")
	b.WriteString("}\n\n")
	b.WriteString("_docx2tex \"$@\"\n")

	_, err := io.WriteString(w, b.String())
	return err
}

// zshFlagSpec renders one _arguments spec for a flag.
func zshFlagSpec(f flagDef) string {
	action := ""
	switch f.Type {
	case flagFile:
		action = fmt.Sprintf(":file:_files -g \"%s\"", strings.ReplaceAll(f.FileGlob, ",", " "))
	case flagDir:
		action = ":directory:_directories"
	case flagEnum:
		action = fmt.Sprintf(":value:(%s)", strings.Join(f.Values, " "))
	case flagString, flagInt:
		action = ":value:"
	}

	if f.Short != "" {
		return fmt.Sprintf("'(-%s --%s)'{-%s,--%s}'[%s]%s'", f.Short, f.Long, f.Short, f.Long, f.Desc, action)
	}
	return fmt.Sprintf("'--%s[%s]%s'", f.Long, f.Desc, action)
}

// generateFish writes the fish completion script.
func generateFish(w io.Writer) error {
	commands := getCommands()

	var b strings.Builder
	b.WriteString("# fish completion for docx2tex\n")
	b.WriteString("function __fish_docx2tex_needs_command\n")
	b.WriteString("    set -l cmd (commandline -opc)\n")
	b.WriteString("    test (count $cmd) -eq 1\n")
	b.WriteString("end\n\n")
	b.WriteString("function __fish_docx2tex_using_command\n")
	b.WriteString("    set -l cmd (commandline -opc)\n")
	b.WriteString("    test (count $cmd) -gt 1; and test $cmd[2] = $argv[1]\n")
	b.WriteString("end\n\n")

	for _, cmd := range commands {
		fmt.Fprintf(&b, "complete -c docx2tex -n __fish_docx2tex_needs_command -f -a %s -d '%s'\n", cmd.Name, cmd.Desc)
	}
	b.WriteString("\n")

	for _, cmd := range commands {
		for _, f := range cmd.Flags {
			line := fmt.Sprintf("complete -c docx2tex -n '__fish_docx2tex_using_command %s' -l %s", cmd.Name, f.Long)
			if f.Short != "" {
				line += " -s " + f.Short
			}
			switch f.Type {
			case flagDir:
				line += " -xa '(__fish_complete_directories)'"
			case flagEnum:
				line += fmt.Sprintf(" -xa '%s'", strings.Join(f.Values, " "))
			case flagString, flagInt, flagFile:
				line += " -r"
			}
			line += fmt.Sprintf(" -d '%s'", f.Desc)
			b.WriteString(line + "\n")
		}
		if cmd.Name == "completion" {
			fmt.Fprintf(&b, "complete -c docx2tex -n '__fish_docx2tex_using_command completion' -f -a 'bash zsh fish powershell'\n")
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// generatePowerShell writes the PowerShell completion script.
func generatePowerShell(w io.Writer) error {
	commands := getCommands()

	var b strings.Builder
	b.WriteString("Register-ArgumentCompleter -Native -CommandName docx2tex -ScriptBlock {\n")
	b.WriteString("    param($wordToComplete, $commandAst, $cursorPosition)\n\n")
	b.WriteString("    $commands = @(\n")
	for _, cmd := range commands {
		fmt.Fprintf(&b, "        @{ Name = '%s'; Desc = '%s' }\n", cmd.Name, cmd.Desc)
	}
	b.WriteString("    )\n\n")
	b.WriteString("    $flags = @{\n")
	for _, cmd := range commands {
		if len(cmd.Flags) == 0 {
			continue
		}
		fmt.Fprintf(&b, "        '%s' = @(%s)\n", cmd.Name, powerShellFlagList(cmd))
	}
	b.WriteString("    }\n\n")
	b.WriteString("    $tokens = $commandAst.CommandElements | ForEach-Object { $_.ToString() }\n")
	b.WriteString("    if ($tokens.Count -le 1 -or ($tokens.Count -eq 2 -and $wordToComplete)) {\n")
	b.WriteString("        $commands | Where-Object { $_.Name -like \"$wordToComplete*\" } | ForEach-Object {\n")
	b.WriteString("            [System.Management.Automation.CompletionResult]::new($_.Name, $_.Name, 'ParameterValue', $_.Desc)\n")
	b.WriteString("        }\n")
	b.WriteString("        return\n")
	b.WriteString("    }\n\n")
	b.WriteString("    $command = $tokens[1]\n")
	b.WriteString("    if ($flags.ContainsKey($command)) {\n")
	b.WriteString("        $flags[$command] | Where-Object { $_ -like \"$wordToComplete*\" } | ForEach-Object {\n")
	b.WriteString("            [System.Management.Automation.CompletionResult]::new($_, $_, 'ParameterName', $_)\n")
	b.WriteString("        }\n")
	b.WriteString("    }\n")
	b.WriteString("}\n")

	_, err := io.WriteString(w, b.String())
	return err
}

// powerShellFlagList renders the quoted flag spellings for a command.
func powerShellFlagList(cmd commandDef) string {
	var words []string
	for _, f := range cmd.Flags {
		words = append(words, "'--"+f.Long+"'")
		if f.Short != "" {
			words = append(words, "'-"+f.Short+"'")
		}
	}
	return strings.Join(words, ", ")
}

// runCompletion handles the completion command.
func runCompletion(args []string, env *Environment) error {
	if len(args) == 0 {
		printCompletionUsage(env.Stdout)
		return nil
	}

	shell := Shell(args[0])
	return GenerateCompletion(env.Stdout, shell)
}

// printCompletionUsage prints help for the completion command.
func printCompletionUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: docx2tex completion <shell>")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Generate shell completion script for the specified shell.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Supported shells:")
	fmt.Fprintln(w, "  bash        Bash completion script")
	fmt.Fprintln(w, "  zsh         Zsh completion script")
	fmt.Fprintln(w, "  fish        Fish completion script")
	fmt.Fprintln(w, "  powershell  PowerShell completion script")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Installation:")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  Bash:")
	fmt.Fprintln(w, "    # Add to ~/.bashrc:")
	fmt.Fprintln(w, "    eval \"$(docx2tex completion bash)\"")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  Zsh:")
	fmt.Fprintln(w, "    # Add to ~/.zshrc (before compinit):")
	fmt.Fprintln(w, "    eval \"$(docx2tex completion zsh)\"")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  Fish:")
	fmt.Fprintln(w, "    docx2tex completion fish > ~/.config/fish/completions/docx2tex.fish")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  PowerShell:")
	fmt.Fprintln(w, "    # Add to $PROFILE:")
	fmt.Fprintln(w, "    docx2tex completion powershell | Out-String | Invoke-Expression")
}
