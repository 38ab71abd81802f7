package argh

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"text/tabwriter"
)

// writeUsage renders the parser's help: a summary line, the description, a
// usage line, then the positional, command and flag sections.
func (p *Parser) writeUsage(w io.Writer) {
	if s := p.summaryLine(); s != "" {
		fmt.Fprintf(w, "%s - %s\n", p.name, s)
	} else {
		fmt.Fprintln(w, p.name)
	}
	if d := strings.TrimSpace(p.description); d != "" && d != p.summaryLine() {
		fmt.Fprintf(w, "\n%s\n", d)
	}

	fmt.Fprintf(w, "\nusage: %s", p.name)
	if p.flags.HasAvailableFlags() {
		fmt.Fprint(w, " [flags]")
	}
	if len(p.commands) > 0 {
		fmt.Fprint(w, " <command>")
	}
	for _, arg := range p.positionals {
		if arg.spec.ZeroOrMore {
			fmt.Fprintf(w, " [%s ...]", arg.spec.Names[0])
		} else {
			fmt.Fprintf(w, " <%s>", arg.spec.Names[0])
		}
	}
	fmt.Fprintln(w)

	if len(p.positionals) > 0 {
		fmt.Fprintln(w, "\nArguments")
		tw := tabwriter.NewWriter(w, 0, 4, 1, ' ', 0)
		for _, arg := range p.positionals {
			fmt.Fprintf(tw, "\t\t%s\t%s\n", arg.spec.Names[0], arg.spec.Help)
		}
		tw.Flush()
	}

	p.printSubcommands(w)

	if p.flags.HasAvailableFlags() {
		fmt.Fprintln(w, "\nFlags")
		fmt.Fprint(w, p.flags.FlagUsages())
	}
}

// printSubcommands prints the registered subcommands of p, if any, sorted
// for consistent output.
func (p *Parser) printSubcommands(w io.Writer) {
	if len(p.commands) == 0 {
		return
	}

	fmt.Fprintln(w, "\nCommands")

	var subNames []string
	for name := range p.commands {
		subNames = append(subNames, name)
	}
	sort.Strings(subNames)

	tw := tabwriter.NewWriter(w, 0, 4, 1, ' ', 0)
	defer tw.Flush()
	for _, name := range subNames {
		fmt.Fprintf(tw, "\t\t%s\t%s\n", name, p.commands[name].summaryLine())
	}
}
