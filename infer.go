package argh

import "strings"

// argsFromSignature derives argument specs purely from a function's
// signature facts.
//
// Parameters with a default (or keyword-only ones, which become required)
// turn into flag-style arguments with a short and a long form; the short
// form is suppressed when its first letter collides with another flag-style
// parameter's. All other parameters become positional arguments in
// declaration order. A trailing collector appends one zero-or-more
// positional. A function that expects a pre-built Namespace yields nothing.
func argsFromSignature(facts SignatureFacts) []ArgSpec {
	if facts.NamespaceOnly {
		return nil
	}

	// Collect the set of conflicting short forms up front, over the
	// first letters of all flag-style parameter names (case-sensitive,
	// single pass).
	counts := make(map[byte]int)
	for _, p := range facts.Params {
		if (p.HasDefault || p.KeywordOnly) && p.Name != "" {
			counts[p.Name[0]]++
		}
	}

	var specs []ArgSpec
	for _, p := range facts.Params {
		if p.Name == "" {
			continue
		}
		spec := ArgSpec{
			Help:    p.Help,
			Choices: p.Choices,
		}
		if p.HasDefault || p.KeywordOnly {
			long := "--" + strings.ReplaceAll(p.Name, "_", "-")
			if counts[p.Name[0]] > 1 {
				spec.Names = []string{long}
			} else {
				spec.Names = []string{"-" + p.Name[:1], long}
			}
			if p.HasDefault {
				spec.Default = p.Default
				spec.HasDefault = true
			} else {
				spec.Required = true
			}
		} else {
			spec.Names = []string{strings.ReplaceAll(p.Name, "_", "-")}
		}
		specs = append(specs, spec)
	}

	if facts.Trailing != "" {
		specs = append(specs, ArgSpec{
			Names:      []string{strings.ReplaceAll(facts.Trailing, "_", "-")},
			ZeroOrMore: true,
		})
	}
	return specs
}
