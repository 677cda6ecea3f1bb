// Package commands is a small subcommand registry for the CLI: each
// subcommand owns a flag set and a run function over its positional
// arguments.
package commands

import (
	"flag"
	"fmt"
	"sort"
	"strings"
)

// Command is a subcommand with its own flags and a Run function.
// Run is called after Parse with the remaining positional arguments.
type Command struct {
	Name    string
	Summary string
	FlagSet *flag.FlagSet
	Run     func(args []string) error
}

// Registry holds subcommands by name.
type Registry struct {
	cmds map[string]*Command
}

// NewRegistry returns an empty command registry.
func NewRegistry() *Registry {
	return &Registry{cmds: make(map[string]*Command)}
}

// Register adds a subcommand. name is the first CLI token (e.g. "run");
// run is called with fs already parsed.
func (r *Registry) Register(name, summary string, fs *flag.FlagSet, run func(args []string) error) {
	r.cmds[name] = &Command{Name: name, Summary: summary, FlagSet: fs, Run: run}
}

// Execute runs the subcommand in args[0] with args[1:] as flag/positional
// arguments. Returns an error for a missing or unknown command, a parse
// error, or from Run.
func (r *Registry) Execute(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("missing subcommand\n%s", r.Usage())
	}
	name := args[0]
	cmd, ok := r.cmds[name]
	if !ok {
		return fmt.Errorf("unknown command: %s\n%s", name, r.Usage())
	}
	if err := cmd.FlagSet.Parse(args[1:]); err != nil {
		return err
	}
	return cmd.Run(cmd.FlagSet.Args())
}

// Usage returns a one-line-per-command summary, sorted by name.
func (r *Registry) Usage() string {
	names := make([]string, 0, len(r.cmds))
	for name := range r.cmds {
		names = append(names, name)
	}
	sort.Strings(names)
	var b strings.Builder
	b.WriteString("commands:\n")
	for _, name := range names {
		fmt.Fprintf(&b, "  %-8s %s\n", name, r.cmds[name].Summary)
	}
	return strings.TrimRight(b.String(), "\n")
}
