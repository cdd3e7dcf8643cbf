package command

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"github.com/rs/zerolog/log"
	"github.com/skwair/harmony/discord"
	"go.uber.org/atomic"
)

const genericErrorMessage = "Something went wrong, please try again later."

// SetupFunc registers the commands of a module.
type SetupFunc func(m *Module) error

// Module is a loaded set of commands.
type Module struct {
	id        string
	commands  []*Command
	teardowns []func()
}

// ID returns the identifier of the module.
func (m *Module) ID() string { return m.id }

// AddCommand registers commands for the module.
func (m *Module) AddCommand(cmds ...*Command) {
	m.commands = append(m.commands, cmds...)
}

// OnUnload registers a function run when the module is unloaded.
func (m *Module) OnUnload(fn func()) {
	m.teardowns = append(m.teardowns, fn)
}

func (m *Module) teardown() {
	for i := len(m.teardowns) - 1; i >= 0; i-- {
		m.teardowns[i]()
	}
}

// Router dispatches chat messages to the commands of the loaded modules.
type Router struct {
	prefix string
	sender Sender

	// lifecycle serializes Load, Unload and Reload, setup and teardown included.
	lifecycle sync.Mutex

	mu       sync.RWMutex
	setups   map[string]SetupFunc
	loaded   map[string]*Module
	commands map[string]*Command
	owners   map[string]string

	dispatched *atomic.Int64
}

// NewRouter creates a new Router.
func NewRouter(prefix string, sender Sender) *Router {
	return &Router{
		prefix:     prefix,
		sender:     sender,
		setups:     make(map[string]SetupFunc),
		loaded:     make(map[string]*Module),
		commands:   make(map[string]*Command),
		owners:     make(map[string]string),
		dispatched: atomic.NewInt64(0),
	}
}

// Prefix returns the command prefix.
func (r *Router) Prefix() string { return r.prefix }

// Register makes the module with the given ID loadable.
func (r *Router) Register(id string, setup SetupFunc) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.setups[id] = setup
}

// Has returns whether a setup function is registered for the given module.
func (r *Router) Has(id string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.setups[id]

	return ok
}

// IsLoaded returns whether the given module is loaded.
func (r *Router) IsLoaded(id string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.loaded[id]

	return ok
}

// Loaded returns the sorted IDs of the loaded modules.
func (r *Router) Loaded() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := make([]string, 0, len(r.loaded))
	for id := range r.loaded {
		ids = append(ids, id)
	}

	sort.Strings(ids)

	return ids
}

// Load runs the setup function of the given module and installs its commands.
func (r *Router) Load(id string) error {
	r.lifecycle.Lock()
	defer r.lifecycle.Unlock()

	return r.load(id)
}

// Unload removes the commands of the given module and runs its teardown functions.
func (r *Router) Unload(id string) error {
	r.lifecycle.Lock()
	defer r.lifecycle.Unlock()

	return r.unload(id)
}

// Reload unloads then loads the given module again. A module whose setup
// fails during a reload stays unloaded.
func (r *Router) Reload(id string) error {
	r.lifecycle.Lock()
	defer r.lifecycle.Unlock()

	if err := r.unload(id); err != nil {
		return err
	}

	return r.load(id)
}

// load must be called with the lifecycle lock held.
func (r *Router) load(id string) error {
	r.mu.RLock()
	setup, known := r.setups[id]
	_, loaded := r.loaded[id]
	r.mu.RUnlock()

	if loaded {
		return &AlreadyLoadedError{ID: id}
	}

	if !known {
		return &UnknownModuleError{ID: id}
	}

	m, err := build(id, setup)
	if err != nil {
		return err
	}

	r.mu.Lock()
	err = r.install(m)
	r.mu.Unlock()

	if err != nil {
		m.teardown()

		return err
	}

	log.Debug().Str("module", id).Int("commands", len(m.commands)).Msg("Module loaded")

	return nil
}

// unload must be called with the lifecycle lock held.
func (r *Router) unload(id string) error {
	r.mu.Lock()
	m, ok := r.loaded[id]
	if !ok {
		r.mu.Unlock()

		return &NotLoadedError{ID: id}
	}

	r.uninstall(m)
	r.mu.Unlock()

	m.teardown()

	log.Debug().Str("module", id).Msg("Module unloaded")

	return nil
}

// install must be called with the write lock held.
func (r *Router) install(m *Module) error {
	var names, owners []string

	for _, cmd := range m.commands {
		for _, name := range cmd.names() {
			if owner, ok := r.owners[strings.ToLower(name)]; ok {
				names = append(names, name)
				owners = append(owners, owner)
			}
		}
	}

	if len(names) > 0 {
		return &ConflictError{ID: m.id, Names: names, OwnerIDs: owners}
	}

	for _, cmd := range m.commands {
		for _, name := range cmd.names() {
			key := strings.ToLower(name)
			r.commands[key] = cmd
			r.owners[key] = m.id
		}
	}

	r.loaded[m.id] = m

	return nil
}

// uninstall must be called with the write lock held.
func (r *Router) uninstall(m *Module) {
	for _, cmd := range m.commands {
		for _, name := range cmd.names() {
			key := strings.ToLower(name)
			if r.owners[key] == m.id {
				delete(r.commands, key)
				delete(r.owners, key)
			}
		}
	}

	delete(r.loaded, m.id)
}

func build(id string, setup SetupFunc) (m *Module, err error) {
	m = &Module{id: id}

	defer func() {
		if rec := recover(); rec != nil {
			m.teardown()
			m, err = nil, &SetupError{ID: id, Err: &PanicError{Value: rec}}
		}
	}()

	if err = setup(m); err != nil {
		m.teardown()

		return nil, &SetupError{ID: id, Err: err}
	}

	return m, nil
}

// Dispatched returns the number of commands dispatched so far.
func (r *Router) Dispatched() int64 {
	return r.dispatched.Load()
}

// Dispatch routes the given message to the matching command, if any.
func (r *Router) Dispatch(ctx context.Context, m *discord.Message) {
	content := strings.TrimSpace(m.Content)
	if !strings.HasPrefix(content, r.prefix) {
		return
	}

	body := strings.TrimPrefix(content, r.prefix)

	fields := strings.Fields(body)
	if len(fields) == 0 {
		return
	}

	r.mu.RLock()
	cmd, ok := r.commands[strings.ToLower(fields[0])]
	r.mu.RUnlock()

	if !ok {
		log.Debug().Str("command", fields[0]).Msg("Unknown command")

		return
	}

	path := []string{cmd.Name}
	consumed := 1

	for consumed < len(fields) {
		sub := cmd.subcommand(fields[consumed])
		if sub == nil {
			break
		}

		cmd = sub
		path = append(path, sub.Name)
		consumed++
	}

	req := &Request{
		Message: m,
		Path:    strings.Join(path, " "),
		Args:    fields[consumed:],
		Raw:     skipFields(body, consumed),
		sender:  r.sender,
	}

	r.dispatched.Inc()

	logger := log.With().
		Str("command", req.Path).
		Str("author", m.Author.ID).
		Str("channel", m.ChannelID).
		Logger()

	if cmd.Handler == nil {
		if _, err := req.Reply(ctx, cmd.help(r.prefix, req.Path)); err != nil {
			logger.Error().Err(err).Msg("Unable to send message")
		}

		return
	}

	err := r.run(ctx, cmd, req)
	if err == nil {
		return
	}

	message := genericErrorMessage

	var userErr *UserError
	if errors.As(err, &userErr) {
		logger.Debug().Err(err).Msg("Invalid command usage")
		message = userErr.Message
	} else {
		logger.Error().Err(err).Msg("Command failed")
	}

	if _, err = req.Reply(ctx, message); err != nil {
		logger.Error().Err(err).Msg("Unable to send message")
	}
}

func (r *Router) run(ctx context.Context, cmd *Command, req *Request) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = &PanicError{Value: rec}
		}
	}()

	if cmd.Check != nil {
		if err = cmd.Check(req); err != nil {
			return err
		}
	}

	return cmd.Handler(ctx, req)
}
