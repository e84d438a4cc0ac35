package command

import "sort"

// Middleware wraps a command (permission check, logging, guild gate).
type Middleware func(Command) Command

type wrappedCommand struct {
	Command
	wrap func(ctx interface{}) error
}

func (w *wrappedCommand) Run(ctx interface{}) error {
	return w.wrap(ctx)
}

// Wrap builds a middleware-style command that runs fn instead of c.Run.
func Wrap(c Command, fn func(ctx interface{}) error) Command {
	return &wrappedCommand{Command: c, wrap: fn}
}

// entry keeps both the root command (for slash definitions and metadata)
// and the middleware-wrapped one (for execution).
type entry struct {
	root    Command
	wrapped Command
}

var registry = map[string]*entry{}

// Register adds a command to the global registry, applying middlewares
// outermost-last. Called from init() in each command package.
func Register(c Command, mws ...Middleware) {
	w := c
	for _, mw := range mws {
		w = mw(w)
	}
	registry[c.Name()] = &entry{root: c, wrapped: w}
}

// Get returns the executable (wrapped) command.
func Get(name string) (Command, bool) {
	e, ok := registry[name]
	if !ok {
		return nil, false
	}
	return e.wrapped, true
}

// Root returns the unwrapped command, for slash definition lookups.
func Root(name string) (Command, bool) {
	e, ok := registry[name]
	if !ok {
		return nil, false
	}
	return e.root, true
}

// All returns every registered root command, sorted by name.
func All() []Command {
	list := make([]Command, 0, len(registry))
	for _, e := range registry {
		list = append(list, e.root)
	}
	sort.Slice(list, func(i, j int) bool {
		return list[i].Name() < list[j].Name()
	})
	return list
}

// Runnable returns every registered wrapped command, sorted by name.
func Runnable() []Command {
	list := make([]Command, 0, len(registry))
	for _, e := range registry {
		list = append(list, e.wrapped)
	}
	sort.Slice(list, func(i, j int) bool {
		return list[i].Name() < list[j].Name()
	})
	return list
}
