package argh

import (
	"os"
	"sort"
	"strings"

	"github.com/spf13/pflag"
)

// completionEnv is set by the generated shell snippets when the shell asks
// for candidates instead of a normal run.
const completionEnv = "_ARGH_COMPLETE"

func completionRequested() bool {
	return os.Getenv(completionEnv) != ""
}

// completeLine proposes completion candidates for a partial command line as
// typed so far, program name included. Candidates are subcommand names and
// aliases, flag forms, and whatever the next positional argument's completer
// returns.
func (p *Parser) completeLine(line string) []string {
	fields := strings.Fields(line)

	current := ""
	if len(fields) > 0 && !strings.HasSuffix(line, " ") {
		current = fields[len(fields)-1]
		fields = fields[:len(fields)-1]
	}
	if len(fields) > 0 {
		// drop the program name
		fields = fields[1:]
	}

	node := p
	consumed := 0
	for _, tok := range fields {
		if strings.HasPrefix(tok, "-") {
			continue
		}
		if sub := node.resolve(tok); sub != nil {
			node = sub
			consumed = 0
			continue
		}
		consumed++
	}

	var out []string
	if strings.HasPrefix(current, "-") {
		node.flags.VisitAll(func(f *pflag.Flag) {
			if f.Hidden {
				return
			}
			out = append(out, "--"+f.Name)
			if f.Shorthand != "" {
				out = append(out, "-"+f.Shorthand)
			}
		})
	} else {
		for name := range node.commands {
			out = append(out, name)
		}
		for alias := range node.aliases {
			out = append(out, alias)
		}
		if consumed < len(node.positionals) {
			if c := node.positionals[consumed].spec.Completer; c != nil {
				out = append(out, c(current, newNamespace())...)
			}
		}
	}

	matched := out[:0]
	seen := make(map[string]bool)
	for _, c := range out {
		if strings.HasPrefix(c, current) && !seen[c] {
			seen[c] = true
			matched = append(matched, c)
		}
	}
	sort.Strings(matched)
	return matched
}
