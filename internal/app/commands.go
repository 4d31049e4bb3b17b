// Package app wires the session to its command line and interactive shell.
package app

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/justyntemme/roulette/internal/config"
	"github.com/justyntemme/roulette/internal/debug"
	"github.com/justyntemme/roulette/internal/session"
)

// NewRootCommand builds the roulette command tree. Without a subcommand it
// starts the interactive shell.
func NewRootCommand() *cobra.Command {
	return newRootCommand(&Options{})
}

func newRootCommand(opts *Options) *cobra.Command {
	root := &cobra.Command{
		Use:           "roulette",
		Short:         "Open a random file from your collection",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			debug.SetOutput(cmd.ErrOrStderr())
			debug.ApplyEnv()
			if opts.Verbose {
				debug.SetVerbose(true)
			}
			debug.SetJSON(opts.JSONLogs)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShellCommand(cmd, opts)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVarP(&opts.ConfigPath, "config", "c", "", "Path to the settings file (or database with --store sqlite)")
	flags.StringVar(&opts.Store, "store", StoreFile, "Settings backend: file or sqlite")
	flags.BoolVarP(&opts.Verbose, "verbose", "v", false, "Enable verbose logging")
	flags.BoolVar(&opts.JSONLogs, "json-logs", false, "Emit logs as JSON")

	root.AddCommand(
		newShellCommand(opts),
		newPickCommand(opts),
		newScanCommand(opts),
		newSubdirsCommand(opts),
		newConfigCommand(opts),
	)
	return root
}

func newShellCommand(opts *Options) *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "Pick, open and delete files interactively",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShellCommand(cmd, opts)
		},
	}
}

func newPickCommand(opts *Options) *cobra.Command {
	var (
		subdir string
		open   bool
		reveal bool
	)
	cmd := &cobra.Command{
		Use:   "pick",
		Short: "Pick a random matching file and print its path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, closer, err := opts.newSession()
			if err != nil {
				return err
			}
			defer closer.Close()

			p := printer{out: cmd.OutOrStdout()}
			if subdir != "" {
				result, _ := s.SetSubdirectoryScope(session.Subdir(subdir))
				if result.Status == session.ScanNotFound {
					return result.Err
				}
			}

			path, msg, ok := s.PickRandom()
			if !ok {
				return errors.New(msg)
			}
			p.path(path)

			if open {
				if err := s.OpenActive(); err != nil {
					return err
				}
			}
			if reveal {
				if err := s.RevealActive(); err != nil {
					return err
				}
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&subdir, "subdir", "s", "", "Only pick from this subdirectory of the root")
	cmd.Flags().BoolVarP(&open, "open", "o", false, "Open the file with the default application")
	cmd.Flags().BoolVarP(&reveal, "reveal", "r", false, "Show the file in the file manager")
	return cmd
}

func newScanCommand(opts *Options) *cobra.Command {
	var subdir string
	cmd := &cobra.Command{
		Use:   "scan",
		Short: "Count the files matching the current settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, closer, err := opts.newSession()
			if err != nil {
				return err
			}
			defer closer.Close()

			var result session.ScanResult
			changed := false
			if subdir != "" {
				result, changed = s.SetSubdirectoryScope(session.Subdir(subdir))
			}
			if !changed {
				result = s.Refresh()
			}
			printer{out: cmd.OutOrStdout()}.scan(result)
			return result.Err
		},
	}
	cmd.Flags().StringVarP(&subdir, "subdir", "s", "", "Only scan this subdirectory of the root")
	return cmd
}

func newSubdirsCommand(opts *Options) *cobra.Command {
	var all bool
	cmd := &cobra.Command{
		Use:   "subdirs",
		Short: "List the subdirectories of the root that can be used with --subdir",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, closer, err := opts.newSession()
			if err != nil {
				return err
			}
			defer closer.Close()

			subdirs := s.Subdirectories()
			if all {
				subdirs = s.SetTopLevelOnly(false)
			}
			for _, name := range subdirs {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return nil
		},
	}
	cmd.Flags().BoolVarP(&all, "all", "a", false, "Include nested directories")
	return cmd
}

func newConfigCommand(opts *Options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or change the persisted settings",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the current settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, closer, err := opts.newSession()
			if err != nil {
				return err
			}
			defer closer.Close()
			printer{out: cmd.OutOrStdout()}.status(s)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "dir PATH",
		Short: "Set the directory to pick files from",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, opts, func(s *session.Session, p printer) error {
				return setDirectory(s, p, args[0])
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "ext EXTENSIONS...",
		Short: `Set the file extensions, e.g. "mp4, mkv"`,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, opts, func(s *session.Session, p printer) error {
				setExtensions(s, p, strings.Join(args, " "))
				return nil
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "recursive BOOL",
		Short: "Choose whether subdirectories are searched",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, opts, func(s *session.Session, p printer) error {
				return setRecursive(s, p, args[0])
			})
		},
	})
	return cmd
}

func withSession(cmd *cobra.Command, opts *Options, fn func(*session.Session, printer) error) error {
	s, closer, err := opts.newSession()
	if err != nil {
		return err
	}
	defer closer.Close()
	return fn(s, printer{out: cmd.OutOrStdout()})
}

// setDirectory, setExtensions and setRecursive are shared by the config
// subcommands and the shell.

func setDirectory(s *session.Session, p printer, raw string) error {
	path, err := config.ExpandPath(raw)
	if err != nil {
		return err
	}
	result, changed := s.SetRootDirectory(path)
	if !changed {
		p.info("Directory unchanged.")
		return nil
	}
	p.scan(result)
	return nil
}

func setExtensions(s *session.Session, p printer, raw string) {
	normalized, result, changed := s.SetExtensions(raw)
	p.info("Extensions: " + normalized)
	if changed {
		p.scan(result)
	}
}

func setRecursive(s *session.Session, p printer, raw string) error {
	recursive, err := config.ParseBool(raw)
	if err != nil {
		return err
	}
	result, changed := s.SetRecursive(recursive)
	if !changed {
		p.info(fmt.Sprintf("Recursive search already %v.", recursive))
		return nil
	}
	p.scan(result)
	return nil
}
