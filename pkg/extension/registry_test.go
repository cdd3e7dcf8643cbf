package extension

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFiles(t *testing.T, root string, files ...string) {
	t.Helper()

	for _, file := range files {
		path := filepath.Join(root, file)

		err := os.MkdirAll(filepath.Dir(path), 0o755)
		require.NoError(t, err)

		err = os.WriteFile(path, []byte("package x\n"), 0o600)
		require.NoError(t, err)
	}
}

func TestDiscover(t *testing.T) {
	root := filepath.Join(t.TempDir(), "exts")

	writeFiles(t, root,
		"root.go",
		"fun/coinflip.go",
		"fun/magic_8ball.go",
		"fun/_helpers.go",
		"fun/doc.go",
		"fun/coinflip_test.go",
		"fun/README.md",
		"fun/nested/deep.go",
		"utils/reminder.go",
		"_private/hidden.go",
	)

	got, err := Discover(root)
	require.NoError(t, err)

	assert.Equal(t, []string{
		"exts.fun.coinflip",
		"exts.fun.magic_8ball",
		"exts.utils.reminder",
	}, got.IDs())
}

func TestDiscover_missingDirectory(t *testing.T) {
	_, err := Discover(filepath.Join(t.TempDir(), "missing"))
	require.Error(t, err)
}

func TestRegistry_Filter(t *testing.T) {
	r := NewRegistry("exts.fun.coinflip", "exts.fun.color", "exts.fun.coinflip")
	require.Equal(t, 2, r.Len())

	kept, dropped := r.Filter(func(id string) bool { return id == "exts.fun.color" })

	assert.Equal(t, []string{"exts.fun.color"}, kept.IDs())
	assert.Equal(t, []string{"exts.fun.coinflip"}, dropped)
	assert.True(t, kept.Contains("exts.fun.color"))
	assert.False(t, kept.Contains("exts.fun.coinflip"))
}

func TestCategory(t *testing.T) {
	tests := []struct {
		id   string
		want string
	}{
		{id: "exts.fun.coinflip", want: "fun"},
		{id: "exts.moderation.logs.audit", want: "moderation - logs"},
		{id: "fun.coinflip", want: "fun"},
		{id: "coinflip", want: ""},
	}

	for _, test := range tests {
		assert.Equal(t, test.want, Category(test.id), test.id)
	}
}

func TestUnqualify(t *testing.T) {
	assert.Equal(t, "coinflip", Unqualify("exts.fun.coinflip"))
	assert.Equal(t, "coinflip", Unqualify("coinflip"))
}
