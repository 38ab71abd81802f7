package argh

// addConfig carries the options for one AddCommands batch.
type addConfig struct {
	group            string
	groupTitle       string
	groupDescription string

	// batch-wide overrides, taking precedence over per-function metadata
	summaryOverride     string
	descriptionOverride string

	registry  *Registry
	extractor FactsExtractor
}

// AddOption configures a call to AddCommands or AddSubcommands.
type AddOption func(*addConfig)

// WithGroup nests the whole batch one level under the named group. The
// group itself is not runnable; invoking it bare shows its usage.
func WithGroup(name string) AddOption {
	return func(c *addConfig) { c.group = name }
}

// WithGroupTitle sets the one-line text shown beside the group's name in the
// root command listing.
func WithGroupTitle(title string) AddOption {
	return func(c *addConfig) { c.groupTitle = title }
}

// WithGroupDescription sets the text shown at the top of the group's own
// help.
func WithGroupDescription(text string) AddOption {
	return func(c *addConfig) { c.groupDescription = text }
}

// OverrideSummary replaces every command's listing text for the batch; it
// takes precedence over per-function doc text.
func OverrideSummary(text string) AddOption {
	return func(c *addConfig) { c.summaryOverride = text }
}

// OverrideDescription replaces every command's description for the batch.
func OverrideDescription(text string) AddOption {
	return func(c *addConfig) { c.descriptionOverride = text }
}

// WithRegistry uses the given metadata registry instead of the
// package-level one.
func WithRegistry(r *Registry) AddOption {
	return func(c *addConfig) { c.registry = r }
}

// WithExtractor substitutes the strategy used to derive signature facts.
func WithExtractor(e FactsExtractor) AddOption {
	return func(c *addConfig) { c.extractor = e }
}

// WithNamespace nests the batch under the named group.
//
// Deprecated: use WithGroup.
func WithNamespace(name string) AddOption {
	return func(c *addConfig) {
		deprecate("add option", "WithNamespace", "WithGroup")
		c.group = name
	}
}

// WithTitle sets the group's listing text.
//
// Deprecated: use WithGroupTitle.
func WithTitle(title string) AddOption {
	return func(c *addConfig) {
		deprecate("add option", "WithTitle", "WithGroupTitle")
		c.groupTitle = title
	}
}

// AddCommands registers each function as a subcommand of the parser,
// optionally nested one level under a named group. Command names default to
// the kebab-cased function name; an explicit name and aliases may be
// attached through the registry beforehand.
//
// Adding commands to a parser that already has a default command bound is
// an error: the two registration modes are mutually exclusive on a single
// parser node.
func AddCommands(p *Parser, fns []any, opts ...AddOption) error {
	cfg := addConfig{registry: defaultRegistry, extractor: StructFacts{}}
	for _, opt := range opts {
		opt(&cfg)
	}

	if cfg.group == "" && (cfg.groupTitle != "" || cfg.groupDescription != "") {
		return &AssemblingError{Reason: "group options only make sense with a group name"}
	}
	if p.handler != nil {
		return assemblingErrorf(p.name, "cannot add commands: parser already has a default command")
	}

	target := p
	if cfg.group != "" {
		group := New(cfg.group,
			WithSummary(cfg.groupTitle),
			WithDescription(cfg.groupDescription),
			WithOutput(p.out),
		)
		p.addCommand(cfg.group, group)
		target = group
	}

	for _, fn := range fns {
		meta := cfg.registry.lookup(fn)
		name := meta.name
		if name == "" {
			name = functionName(fn)
		}

		cmd := New(name, WithSummary(cfg.summaryOverride), WithOutput(p.out))
		if err := setDefaultCommand(cmd, fn, meta, cfg.extractor); err != nil {
			return err
		}
		if cfg.descriptionOverride != "" {
			cmd.SetDescription(cfg.descriptionOverride)
		}
		target.addCommand(name, cmd, meta.aliases...)
	}
	return nil
}

// AddSubcommands is shorthand for AddCommands with a group name:
//
//	AddSubcommands(parser, "db", []any{get, put},
//	    WithGroupTitle("database commands"))
//
// registers "db get" and "db put".
func AddSubcommands(p *Parser, group string, fns []any, opts ...AddOption) error {
	return AddCommands(p, fns, append(opts, WithGroup(group))...)
}
