package app

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/chzyer/readline"
	"github.com/spf13/cobra"

	"github.com/justyntemme/roulette/internal/config"
	"github.com/justyntemme/roulette/internal/debug"
	"github.com/justyntemme/roulette/internal/session"
)

type shellCommand struct {
	name    string
	aliases []string
	usage   string
	help    string
}

var shellCommands = []shellCommand{
	{name: "pick", aliases: []string{"p", ""}, help: "pick a random file (also: empty line)"},
	{name: "play", aliases: []string{"go"}, help: "pick a random file and open it"},
	{name: "open", aliases: []string{"o"}, help: "open the picked file"},
	{name: "reveal", aliases: []string{"show"}, help: "show the picked file in the file manager"},
	{name: "delete", aliases: []string{"rm"}, help: "move the picked file to the trash"},
	{name: "scan", aliases: []string{"refresh"}, help: "rescan and print the file count"},
	{name: "dir", usage: "PATH", help: "change the root directory"},
	{name: "ext", usage: "EXTENSIONS", help: `set extensions, e.g. "mp4, mkv"`},
	{name: "recursive", usage: "on|off", help: "search subdirectories or not"},
	{name: "subdir", usage: "[NAME]", help: "limit picking to a subdirectory, no name for everywhere"},
	{name: "subdirs", usage: "[all]", help: "list subdirectories, all includes nested ones"},
	{name: "status", help: "print the current settings and selection"},
	{name: "help", aliases: []string{"?"}, help: "print this help"},
	{name: "quit", aliases: []string{"exit", "q"}, help: "leave the shell"},
}

func lookupShellCommand(word string) (string, bool) {
	for _, c := range shellCommands {
		if c.name == word {
			return c.name, true
		}
		for _, alias := range c.aliases {
			if alias == word {
				return c.name, true
			}
		}
	}
	return "", false
}

func printShellHelp(out io.Writer) {
	fmt.Fprintln(out, "commands:")
	for _, c := range shellCommands {
		name := c.name
		if c.usage != "" {
			name += " " + c.usage
		}
		fmt.Fprintf(out, "  %-22s %s\n", name, dimStyle.Render(c.help))
	}
}

func runShellCommand(cmd *cobra.Command, opts *Options) error {
	s, closer, err := opts.newSession()
	if err != nil {
		return err
	}
	defer closer.Close()

	out := cmd.OutOrStdout()
	input, err := newLineInput(cmd.InOrStdin(), out, filepath.Join(config.Dir(), "history"))
	if err != nil {
		debug.Warn(debug.APP, "readline unavailable, using plain input: %v", err)
	}
	defer input.Close()

	return runShell(s, input, out)
}

// runShell reads commands until quit or end of input.
func runShell(s *session.Session, input lineInput, out io.Writer) error {
	p := printer{out: out}
	p.status(s)
	p.scan(s.Refresh())
	printShellHelp(out)

	for {
		line, err := input.ReadLine("> ")
		if err != nil {
			switch {
			case errors.Is(err, readline.ErrInterrupt):
				fmt.Fprintln(out)
				continue
			case errors.Is(err, io.EOF):
				return nil
			default:
				return fmt.Errorf("read input: %w", err)
			}
		}
		if quit := execShellLine(s, p, line); quit {
			return nil
		}
	}
}

// execShellLine runs one shell line and reports whether the shell should exit.
func execShellLine(s *session.Session, p printer, line string) bool {
	line = strings.TrimSpace(line)
	word, rest, _ := strings.Cut(line, " ")
	rest = strings.TrimSpace(rest)

	name, ok := lookupShellCommand(word)
	if !ok {
		p.err(fmt.Errorf("unknown command %q, type help", word))
		return false
	}
	debug.Log(debug.APP, "shell: %s %q", name, rest)

	switch name {
	case "pick", "play":
		path, msg, ok := s.PickRandom()
		if !ok {
			p.info(msg)
			return false
		}
		p.success(msg)
		p.path(path)
		if name == "play" {
			if err := s.OpenActive(); err != nil {
				p.err(err)
			}
		}
	case "open":
		if err := s.OpenActive(); err != nil {
			p.err(err)
		}
	case "reveal":
		if err := s.RevealActive(); err != nil {
			p.err(err)
		}
	case "delete":
		p.outcome(s.DeleteActive())
	case "scan":
		s.RefreshSubdirectories()
		p.scan(s.Refresh())
	case "dir":
		if rest == "" {
			p.info(s.Config().Directory)
			return false
		}
		if err := setDirectory(s, p, rest); err != nil {
			p.err(err)
		}
	case "ext":
		if rest == "" {
			p.info("Extensions: " + s.ExtensionsText())
			return false
		}
		setExtensions(s, p, rest)
	case "recursive":
		if rest == "" {
			p.info(fmt.Sprintf("Recursive search: %v", s.Config().Recursive))
			return false
		}
		if err := setRecursive(s, p, rest); err != nil {
			p.err(err)
		}
	case "subdir":
		scope := session.All
		if rest != "" && rest != "-" {
			scope = session.Subdir(rest)
		}
		result, changed := s.SetSubdirectoryScope(scope)
		if !changed {
			p.info("Scope unchanged: " + s.Scope().String())
			return false
		}
		p.scan(result)
	case "subdirs":
		subdirs := s.SetTopLevelOnly(rest != "all")
		if len(subdirs) == 0 {
			p.info("No subdirectories.")
		}
		for _, name := range subdirs {
			fmt.Fprintln(p.out, name)
		}
	case "status":
		p.status(s)
	case "help":
		printShellHelp(p.out)
	case "quit":
		return true
	}
	return false
}
