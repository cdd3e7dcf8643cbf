package extension

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/gurkult/gurkbot/pkg/command"
	"github.com/rs/zerolog/log"
)

// Wildcard stands for every extension relevant to the action.
const Wildcard = "*"

// Action is an action applied to an extension.
type Action int

// Actions.
const (
	Load Action = iota
	Unload
	Reload
)

// String returns the verb of the action.
func (a Action) String() string {
	switch a {
	case Load:
		return "load"
	case Unload:
		return "unload"
	case Reload:
		return "reload"
	default:
		return fmt.Sprintf("action(%d)", int(a))
	}
}

// Host is capable of loading and unloading modules.
type Host interface {
	Load(id string) error
	Unload(id string) error
	Reload(id string) error
	IsLoaded(id string) bool
	Loaded() []string
}

// Manager manages the extensions of a Host.
type Manager struct {
	registry  Registry
	host      Host
	protected map[string]struct{}
}

// NewManager creates a new Manager. Protected extensions can be neither
// unloaded nor reloaded.
func NewManager(registry Registry, host Host, protected ...string) *Manager {
	p := make(map[string]struct{}, len(protected))
	for _, id := range protected {
		p[id] = struct{}{}
	}

	return &Manager{
		registry:  registry,
		host:      host,
		protected: p,
	}
}

// Registry returns the registry of the manager.
func (m *Manager) Registry() Registry { return m.registry }

// Resolve fully qualifies the given extension name. The wildcard is returned as is.
func (m *Manager) Resolve(raw string) (string, error) {
	if raw == Wildcard {
		return Wildcard, nil
	}

	if m.registry.Contains(raw) {
		return raw, nil
	}

	if lower := strings.ToLower(raw); m.registry.Contains(lower) {
		return lower, nil
	}

	var matches []string

	for _, id := range m.registry.ids {
		if strings.EqualFold(Unqualify(id), raw) {
			matches = append(matches, id)
		}
	}

	switch len(matches) {
	case 0:
		return "", &NotFoundError{Name: raw}
	case 1:
		return matches[0], nil
	default:
		sort.Strings(matches)

		return "", &AmbiguousError{Name: raw, Matches: matches}
	}
}

// Expand resolves the given names for the given action and expands the
// wildcard. The result is sorted and free of duplicates.
func (m *Manager) Expand(action Action, names []string) ([]string, error) {
	ids := make(map[string]struct{})

	var wildcard bool

	for _, name := range names {
		id, err := m.Resolve(name)
		if err != nil {
			return nil, err
		}

		if id == Wildcard {
			wildcard = true
			continue
		}

		ids[id] = struct{}{}
	}

	if action != Load {
		var protected []string

		for id := range ids {
			if m.isProtected(id) {
				protected = append(protected, id)
			}
		}

		if len(protected) > 0 {
			sort.Strings(protected)

			return nil, &ProtectedError{Action: action, Names: protected}
		}
	}

	if wildcard {
		for _, id := range m.wildcard(action) {
			ids[id] = struct{}{}
		}
	}

	expanded := make([]string, 0, len(ids))
	for id := range ids {
		expanded = append(expanded, id)
	}

	sort.Strings(expanded)

	return expanded, nil
}

func (m *Manager) wildcard(action Action) []string {
	var ids []string

	for _, id := range m.registry.ids {
		loaded := m.host.IsLoaded(id)

		switch action {
		case Load:
			if !loaded {
				ids = append(ids, id)
			}
		default:
			if loaded && !m.isProtected(id) {
				ids = append(ids, id)
			}
		}
	}

	return ids
}

func (m *Manager) isProtected(id string) bool {
	_, ok := m.protected[id]

	return ok
}

// Apply applies the action to the given extension.
func (m *Manager) Apply(action Action, id string) (res Result) {
	res = Result{ID: id, Action: action}

	logger := log.With().Str("extension", id).Str("action", action.String()).Logger()

	defer func() {
		if rec := recover(); rec != nil {
			res.Success = false
			res.Kind = KindInternal
			res.Detail = describe(&command.PanicError{Value: rec})

			logger.Error().Str("detail", res.Detail).Msg("Extension action panicked")
		}
	}()

	var err error

	switch action {
	case Load:
		err = m.host.Load(id)
	case Unload:
		err = m.host.Unload(id)
	case Reload:
		err = m.host.Reload(id)
	default:
		err = fmt.Errorf("unknown action %d", int(action))
	}

	var (
		alreadyLoaded *command.AlreadyLoadedError
		notLoaded     *command.NotLoadedError
	)

	switch {
	case err == nil:
		res.Success = true
	case errors.As(err, &alreadyLoaded):
		res.Kind = KindAlreadyLoaded
		res.Detail = "already loaded"
	case errors.As(err, &notLoaded):
		res.Kind = KindNotLoaded
		res.Detail = "not loaded"
	default:
		res.Kind = KindInternal
		res.Detail = describe(err)

		logger.Error().Err(err).Msg("Extension action failed")
	}

	logger.Debug().Bool("success", res.Success).Msg(res.Message())

	return res
}

// BatchApply applies the action to every given extension in sorted order.
func (m *Manager) BatchApply(action Action, ids []string) Report {
	sorted := make([]string, len(ids))
	copy(sorted, ids)
	sort.Strings(sorted)

	report := Report{Action: action, Results: make([]Result, 0, len(sorted))}
	for _, id := range sorted {
		report.Results = append(report.Results, m.Apply(action, id))
	}

	log.Debug().
		Str("action", action.String()).
		Int("succeeded", report.Succeeded()).
		Int("total", report.Total()).
		Msg("Batch applied")

	return report
}

// Status is the loaded state of an extension.
type Status struct {
	Name   string
	Loaded bool
}

// ListStatus groups every extension of the registry by category.
func (m *Manager) ListStatus() map[string][]Status {
	categories := make(map[string][]Status)

	for _, id := range m.registry.ids {
		category := Category(id)
		categories[category] = append(categories[category], Status{
			Name:   Unqualify(id),
			Loaded: m.host.IsLoaded(id),
		})
	}

	for _, statuses := range categories {
		sort.Slice(statuses, func(i, j int) bool { return statuses[i].Name < statuses[j].Name })
	}

	return categories
}

// describe returns the type and message of the error at the origin of err.
func describe(err error) string {
	var setupErr *command.SetupError
	if errors.As(err, &setupErr) {
		err = setupErr.Err
	}

	return fmt.Sprintf("%s: %v", strings.TrimPrefix(fmt.Sprintf("%T", err), "*"), err)
}
