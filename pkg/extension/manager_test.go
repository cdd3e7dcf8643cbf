package extension

import (
	"errors"
	"testing"

	"github.com/gurkult/gurkbot/pkg/command"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const managerID = "exts.backend.extension_manager"

func newRouter(t *testing.T, ids ...string) *command.Router {
	t.Helper()

	r := command.NewRouter("!", nil)
	for _, id := range ids {
		r.Register(id, func(m *command.Module) error { return nil })
	}

	return r
}

func TestManager_Resolve(t *testing.T) {
	registry := NewRegistry(
		"fun.coinflip",
		"util.coinflip2",
		"fun.color",
		"admin.color",
		"exts.fun.magic_8ball",
	)
	m := NewManager(registry, nil)

	tests := []struct {
		desc    string
		raw     string
		want    string
		wantErr error
	}{
		{
			desc: "wildcard",
			raw:  "*",
			want: Wildcard,
		},
		{
			desc: "fully qualified",
			raw:  "fun.color",
			want: "fun.color",
		},
		{
			desc: "fully qualified with another case",
			raw:  "FUN.Color",
			want: "fun.color",
		},
		{
			desc: "unique suffix",
			raw:  "coinflip",
			want: "fun.coinflip",
		},
		{
			desc: "unique suffix ignoring case",
			raw:  "Magic_8Ball",
			want: "exts.fun.magic_8ball",
		},
		{
			desc:    "ambiguous suffix",
			raw:     "color",
			wantErr: &AmbiguousError{Name: "color", Matches: []string{"admin.color", "fun.color"}},
		},
		{
			desc:    "unknown",
			raw:     "wolfram",
			wantErr: &NotFoundError{Name: "wolfram"},
		},
		{
			desc:    "partial suffix",
			raw:     "coin",
			wantErr: &NotFoundError{Name: "coin"},
		},
	}

	for _, test := range tests {
		test := test
		t.Run(test.desc, func(t *testing.T) {
			t.Parallel()

			got, err := m.Resolve(test.raw)
			if test.wantErr != nil {
				assert.Equal(t, test.wantErr, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, test.want, got)
		})
	}
}

func TestManager_Resolve_uniqueSuffixes(t *testing.T) {
	ids := []string{"exts.fun.coinflip", "exts.fun.magic_8ball", "exts.utils.reminder", managerID}
	m := NewManager(NewRegistry(ids...), nil)

	for _, id := range ids {
		got, err := m.Resolve(Unqualify(id))
		require.NoError(t, err)
		assert.Equal(t, id, got)
	}
}

func TestManager_Expand(t *testing.T) {
	ids := []string{"exts.fun.coinflip", "exts.fun.magic_8ball", "exts.utils.reminder", managerID}

	tests := []struct {
		desc    string
		action  Action
		names   []string
		want    []string
		wantErr error
	}{
		{
			desc:   "load wildcard expands to unloaded extensions",
			action: Load,
			names:  []string{"*"},
			want:   []string{"exts.fun.magic_8ball", "exts.utils.reminder"},
		},
		{
			desc:   "unload wildcard expands to loaded extensions minus protected",
			action: Unload,
			names:  []string{"*"},
			want:   []string{"exts.fun.coinflip"},
		},
		{
			desc:   "reload wildcard expands to loaded extensions minus protected",
			action: Reload,
			names:  []string{"*"},
			want:   []string{"exts.fun.coinflip"},
		},
		{
			desc:   "names are sorted and deduplicated",
			action: Load,
			names:  []string{"reminder", "coinflip", "exts.fun.coinflip"},
			want:   []string{"exts.fun.coinflip", "exts.utils.reminder"},
		},
		{
			desc:    "unload protected",
			action:  Unload,
			names:   []string{"coinflip", "extension_manager"},
			wantErr: &ProtectedError{Action: Unload, Names: []string{managerID}},
		},
		{
			desc:    "reload protected",
			action:  Reload,
			names:   []string{"extension_manager"},
			wantErr: &ProtectedError{Action: Reload, Names: []string{managerID}},
		},
		{
			desc:    "unknown name",
			action:  Load,
			names:   []string{"coinflip", "wolfram"},
			wantErr: &NotFoundError{Name: "wolfram"},
		},
	}

	for _, test := range tests {
		test := test
		t.Run(test.desc, func(t *testing.T) {
			t.Parallel()

			r := newRouter(t, ids...)
			require.NoError(t, r.Load("exts.fun.coinflip"))
			require.NoError(t, r.Load(managerID))

			m := NewManager(NewRegistry(ids...), r, managerID)

			got, err := m.Expand(test.action, test.names)
			if test.wantErr != nil {
				assert.Equal(t, test.wantErr, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, test.want, got)
		})
	}
}

func TestManager_Apply(t *testing.T) {
	tests := []struct {
		desc    string
		action  Action
		hostErr error
		want    Result
		message string
	}{
		{
			desc:    "load",
			action:  Load,
			want:    Result{ID: "exts.fun.coinflip", Action: Load, Success: true},
			message: ":thumbsup: Extension successfully loaded: `exts.fun.coinflip`.",
		},
		{
			desc:    "load already loaded",
			action:  Load,
			hostErr: &command.AlreadyLoadedError{ID: "exts.fun.coinflip"},
			want:    Result{ID: "exts.fun.coinflip", Action: Load, Kind: KindAlreadyLoaded, Detail: "already loaded"},
			message: ":x: Extension `exts.fun.coinflip` is already loaded.",
		},
		{
			desc:    "unload not loaded",
			action:  Unload,
			hostErr: &command.NotLoadedError{ID: "exts.fun.coinflip"},
			want:    Result{ID: "exts.fun.coinflip", Action: Unload, Kind: KindNotLoaded, Detail: "not loaded"},
			message: ":x: Extension `exts.fun.coinflip` is not loaded.",
		},
		{
			desc:    "reload not loaded",
			action:  Reload,
			hostErr: &command.NotLoadedError{ID: "exts.fun.coinflip"},
			want:    Result{ID: "exts.fun.coinflip", Action: Reload, Kind: KindNotLoaded, Detail: "not loaded"},
			message: ":x: Extension `exts.fun.coinflip` is not loaded, so it was not reloaded.",
		},
		{
			desc:    "setup failure",
			action:  Load,
			hostErr: &command.SetupError{ID: "exts.fun.coinflip", Err: errors.New("boom")},
			want:    Result{ID: "exts.fun.coinflip", Action: Load, Kind: KindInternal, Detail: "errors.errorString: boom"},
			message: ":x: Failed to load extension `exts.fun.coinflip`:\n```\nerrors.errorString: boom```",
		},
	}

	for _, test := range tests {
		test := test
		t.Run(test.desc, func(t *testing.T) {
			t.Parallel()

			h := &hostMock{}
			switch test.action {
			case Load:
				h.On("Load", "exts.fun.coinflip").Return(test.hostErr).Once()
			case Unload:
				h.On("Unload", "exts.fun.coinflip").Return(test.hostErr).Once()
			case Reload:
				h.On("Reload", "exts.fun.coinflip").Return(test.hostErr).Once()
			}

			m := NewManager(NewRegistry("exts.fun.coinflip"), h)

			got := m.Apply(test.action, "exts.fun.coinflip")

			assert.Equal(t, test.want, got)
			assert.Equal(t, test.message, got.Message())
			h.AssertExpectations(t)
		})
	}
}

func TestManager_Apply_alreadyLoadedLeavesHostUnchanged(t *testing.T) {
	r := newRouter(t, "fun.coinflip")
	require.NoError(t, r.Load("fun.coinflip"))

	m := NewManager(NewRegistry("fun.coinflip"), r)

	got := m.Apply(Load, "fun.coinflip")

	assert.False(t, got.Success)
	assert.Equal(t, KindAlreadyLoaded, got.Kind)
	assert.Equal(t, []string{"fun.coinflip"}, r.Loaded())
}

func TestManager_Apply_unloadTwice(t *testing.T) {
	r := newRouter(t, "fun.coinflip")
	require.NoError(t, r.Load("fun.coinflip"))

	m := NewManager(NewRegistry("fun.coinflip"), r)

	first := m.Apply(Unload, "fun.coinflip")
	second := m.Apply(Unload, "fun.coinflip")

	assert.True(t, first.Success)
	assert.False(t, second.Success)
	assert.Equal(t, KindNotLoaded, second.Kind)
}

func TestManager_Apply_panic(t *testing.T) {
	r := command.NewRouter("!", nil)
	r.Register("fun.broken", func(m *command.Module) error { panic("boom") })

	m := NewManager(NewRegistry("fun.broken"), r)

	got := m.Apply(Load, "fun.broken")

	assert.False(t, got.Success)
	assert.Equal(t, KindInternal, got.Kind)
	assert.Equal(t, "command.PanicError: panic: boom", got.Detail)
}

func TestManager_BatchApply(t *testing.T) {
	r := command.NewRouter("!", nil)
	r.Register("fun.coinflip", func(m *command.Module) error { return nil })
	r.Register("fun.magic_8ball", func(m *command.Module) error { return nil })
	r.Register("utils.broken", func(m *command.Module) error { return errors.New("boom") })

	require.NoError(t, r.Load("fun.magic_8ball"))

	m := NewManager(NewRegistry("fun.coinflip", "fun.magic_8ball", "utils.broken"), r)

	report := m.BatchApply(Load, []string{"utils.broken", "fun.magic_8ball", "fun.coinflip"})

	require.Len(t, report.Results, 3)
	assert.Equal(t, "fun.coinflip", report.Results[0].ID)
	assert.Equal(t, "fun.magic_8ball", report.Results[1].ID)
	assert.Equal(t, "utils.broken", report.Results[2].ID)

	assert.Equal(t, 1, report.Succeeded())
	assert.Equal(t, 3, report.Total())
	assert.Equal(t, map[string]string{
		"fun.magic_8ball": "already loaded",
		"utils.broken":    "errors.errorString: boom",
	}, report.Failures())

	assert.Equal(t,
		":x: 1 / 3 extensions loaded.\nFailures:```\nfun.magic_8ball\n    already loaded\nutils.broken\n    errors.errorString: boom\n```",
		report.String(),
	)

	assert.True(t, r.IsLoaded("fun.coinflip"))
	assert.False(t, r.IsLoaded("utils.broken"))
}

func TestManager_BatchApply_single(t *testing.T) {
	r := newRouter(t, "fun.coinflip")
	m := NewManager(NewRegistry("fun.coinflip"), r)

	report := m.BatchApply(Load, []string{"fun.coinflip"})

	assert.Equal(t, ":thumbsup: Extension successfully loaded: `fun.coinflip`.", report.String())
}

func TestManager_BatchApply_allSucceeded(t *testing.T) {
	r := newRouter(t, "fun.coinflip", "fun.magic_8ball")
	m := NewManager(NewRegistry("fun.coinflip", "fun.magic_8ball"), r)

	report := m.BatchApply(Load, []string{"fun.coinflip", "fun.magic_8ball"})

	assert.Equal(t, ":thumbsup: 2 / 2 extensions loaded.", report.String())
}

func TestManager_ListStatus(t *testing.T) {
	r := newRouter(t, "exts.fun.coinflip", "exts.fun.magic_8ball", "exts.utils.reminder")
	require.NoError(t, r.Load("exts.fun.magic_8ball"))

	m := NewManager(NewRegistry("exts.fun.magic_8ball", "exts.fun.coinflip", "exts.utils.reminder"), r)

	got := m.ListStatus()

	assert.Equal(t, map[string][]Status{
		"fun": {
			{Name: "coinflip", Loaded: false},
			{Name: "magic_8ball", Loaded: true},
		},
		"utils": {
			{Name: "reminder", Loaded: false},
		},
	}, got)

	assert.Equal(t,
		"**Fun**\n:red_circle:  coinflip\n:green_circle:  magic_8ball\n\n**Utils**\n:red_circle:  reminder\n",
		RenderStatus(got),
	)
}

func TestRenderStatus_empty(t *testing.T) {
	assert.Equal(t, "There are no extensions installed.", RenderStatus(nil))
}
