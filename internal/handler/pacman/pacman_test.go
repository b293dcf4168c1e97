package pacman

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/open-edge-platform/minfs-builder/internal/config"
)

// fakeToolchain stands in for the pacman toolchain. It answers the same
// textual contract the backend parses and counts every invocation so
// tests can assert memoization.
type fakeToolchain struct {
	installed map[string]string // name -> version field of the -Qi output
	arch      map[string]string // optional per-name arch, default x86_64
	tree      map[string][]string
	files     string // raw -Ql output

	calls []string
}

func (f *fakeToolchain) exec(cmdStr string, sudo bool, envVal []string) (string, error) {
	f.calls = append(f.calls, cmdStr)

	switch {
	case strings.HasPrefix(cmdStr, "pacman -Qi "):
		name := unquoteArg(cmdStr, "pacman -Qi ")
		ver, ok := f.installed[name]
		if !ok {
			return "error: package '" + name + "' was not found", fmt.Errorf("exit status 1")
		}
		arch := f.arch[name]
		if arch == "" {
			arch = "x86_64"
		}
		return fmt.Sprintf("Name            : %s\nVersion         : %s\nArchitecture    : %s\nURL             : none\n", name, ver, arch), nil

	case strings.HasPrefix(cmdStr, "pacman -Q "):
		name := unquoteArg(cmdStr, "pacman -Q ")
		if _, ok := f.installed[name]; !ok {
			return "", fmt.Errorf("exit status 1")
		}
		return name + " " + f.installed[name] + "\n", nil

	case strings.Contains(cmdStr, "pactree"):
		seen := map[string]struct{}{}
		var lines []string
		for name, deps := range f.tree {
			if !strings.Contains(cmdStr, "'"+name+"'") {
				continue
			}
			for _, d := range append([]string{name}, deps...) {
				if _, dup := seen[d]; !dup {
					seen[d] = struct{}{}
					lines = append(lines, d)
				}
			}
		}
		return strings.Join(lines, "\n") + "\n", nil

	case strings.HasPrefix(cmdStr, "pacman -Ql "):
		return f.files, nil
	}

	return "", nil
}

// count returns how many recorded calls contain every given fragment.
func (f *fakeToolchain) count(fragments ...string) int {
	n := 0
	for _, c := range f.calls {
		all := true
		for _, frag := range fragments {
			if !strings.Contains(c, frag) {
				all = false
				break
			}
		}
		if all {
			n++
		}
	}
	return n
}

func unquoteArg(cmdStr, prefix string) string {
	return strings.Trim(strings.TrimPrefix(cmdStr, prefix), "'")
}

func newTestBackend(t *testing.T, tc *fakeToolchain) *Pacman {
	t.Helper()
	p := New()
	p.exec = tc.exec
	require.NoError(t, p.Init(&config.Settings{TmpDir: t.TempDir()}))
	return p
}

func TestUseBeforeInitIsAnError(t *testing.T) {
	p := New()
	p.exec = (&fakeToolchain{}).exec

	if _, _, err := p.Resolve("bash"); err == nil {
		t.Error("Resolve before Init succeeded")
	}
	if _, err := p.CloseRequires(nil); err == nil {
		t.Error("CloseRequires before Init succeeded")
	}
	if _, err := p.ListFiles(nil); err == nil {
		t.Error("ListFiles before Init succeeded")
	}
	if err := p.Download(nil, t.TempDir()); err == nil {
		t.Error("Download before Init succeeded")
	}
}

func TestResolveInstalledPackage(t *testing.T) {
	tc := &fakeToolchain{installed: map[string]string{"bash": "5.2.026-2"}}
	p := newTestBackend(t, tc)

	h, ok, err := p.Resolve("bash")
	require.NoError(t, err)
	require.True(t, ok)

	id := p.arena.Identity(h)
	assert.Equal(t, "bash", id.Name)
	assert.Equal(t, 0, id.Epoch)
	assert.Equal(t, "5.2.026", id.Version)
	assert.Equal(t, 2, id.Release)
	assert.Equal(t, "x86_64", id.Arch)

	assert.Equal(t, "bash", p.PackageName(h))
	assert.Equal(t, "bash-5.2.026-2.x86_64", p.Format(h))
}

func TestResolveEpochQualifiedVersion(t *testing.T) {
	tc := &fakeToolchain{installed: map[string]string{"vim": "2:1.8.3-4"}}
	p := newTestBackend(t, tc)

	h, ok, err := p.Resolve("vim")
	require.NoError(t, err)
	require.True(t, ok)

	id := p.arena.Identity(h)
	assert.Equal(t, 2, id.Epoch)
	assert.Equal(t, "1.8.3", id.Version)
	assert.Equal(t, 4, id.Release)
	assert.Equal(t, "vim-2:1.8.3-4.x86_64", p.Format(h))
}

func TestResolveAbsentPackage(t *testing.T) {
	tc := &fakeToolchain{installed: map[string]string{}}
	p := newTestBackend(t, tc)

	_, ok, err := p.Resolve("ghost")
	require.NoError(t, err)
	assert.False(t, ok, "absent package must resolve to nothing, not an error")
}

func TestResolveMemoizesSideEffects(t *testing.T) {
	tc := &fakeToolchain{installed: map[string]string{"bash": "5.2.026-2"}}
	p := newTestBackend(t, tc)

	for i := 0; i < 3; i++ {
		_, ok, err := p.Resolve("bash")
		require.NoError(t, err)
		require.True(t, ok)

		_, ok, err = p.Resolve("ghost")
		require.NoError(t, err)
		require.False(t, ok)
	}

	assert.Equal(t, 1, tc.count("pacman -Q 'bash'"), "existence check must run once")
	assert.Equal(t, 1, tc.count("pacman -Qi 'bash'"), "info query must run once")
	assert.Equal(t, 1, tc.count("pacman -Q 'ghost'"), "absence must be cached too")
	assert.Equal(t, 0, tc.count("pacman -Qi 'ghost'"))
}

func TestResolveSameIdentitySharesHandle(t *testing.T) {
	tc := &fakeToolchain{installed: map[string]string{"bash": "5.2.026-2"}}
	p := newTestBackend(t, tc)

	h1, _, err := p.Resolve("bash")
	require.NoError(t, err)
	h2, _, err := p.Resolve("bash")
	require.NoError(t, err)
	assert.Equal(t, h1, h2)
}

func TestQueryIdentityMissingFieldIsFatal(t *testing.T) {
	p := New()
	p.exec = func(cmdStr string, sudo bool, envVal []string) (string, error) {
		if strings.HasPrefix(cmdStr, "pacman -Qi ") {
			return "Name            : broken\nArchitecture    : x86_64\n", nil
		}
		return "", nil
	}
	require.NoError(t, p.Init(&config.Settings{TmpDir: t.TempDir()}))

	_, _, err := p.Resolve("broken")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Version")
}

func TestQueryIdentityMalformedRelease(t *testing.T) {
	tc := &fakeToolchain{installed: map[string]string{"odd": "1.0-beta"}}
	p := newTestBackend(t, tc)

	_, _, err := p.Resolve("odd")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1.0-beta")
}

func TestCloseRequires(t *testing.T) {
	tc := &fakeToolchain{
		installed: map[string]string{
			"a": "1.0-1",
			"b": "2.0-1",
			"c": "3.0-1",
		},
		tree: map[string][]string{
			"a": {"b", "c", "not-installed"},
		},
	}
	p := newTestBackend(t, tc)

	ha, _, err := p.Resolve("a")
	require.NoError(t, err)

	closed, err := p.CloseRequires(newSetOf(ha))
	require.NoError(t, err)

	// Monotone: the initial set is a subset of its closure.
	assert.True(t, closed.Has(ha))

	hb, _, _ := p.Resolve("b")
	hc, _, _ := p.Resolve("c")
	assert.True(t, closed.Has(hb))
	assert.True(t, closed.Has(hc))
	// Unresolvable listed names are dropped, not an error.
	assert.Len(t, closed, 3)
}

func TestCloseRequiresIdempotent(t *testing.T) {
	tc := &fakeToolchain{
		installed: map[string]string{"a": "1.0-1", "b": "2.0-1"},
		tree: map[string][]string{
			"a": {"b"},
			"b": {},
		},
	}
	p := newTestBackend(t, tc)

	ha, _, err := p.Resolve("a")
	require.NoError(t, err)

	once, err := p.CloseRequires(newSetOf(ha))
	require.NoError(t, err)
	twice, err := p.CloseRequires(once)
	require.NoError(t, err)

	assert.True(t, once.Equal(twice), "closure must be idempotent")
}

func TestCloseRequiresCommandIsDeterministic(t *testing.T) {
	tc := &fakeToolchain{
		installed: map[string]string{"zsh": "5.9-1", "bash": "5.2.026-2"},
		tree:      map[string][]string{"zsh": {}, "bash": {}},
	}
	p := newTestBackend(t, tc)

	hz, _, err := p.Resolve("zsh")
	require.NoError(t, err)
	hb, _, err := p.Resolve("bash")
	require.NoError(t, err)

	_, err = p.CloseRequires(newSetOf(hz, hb))
	require.NoError(t, err)

	var treeCmd string
	for _, c := range tc.calls {
		if strings.Contains(c, "pactree") {
			treeCmd = c
		}
	}
	require.NotEmpty(t, treeCmd)
	// Names are materialized sorted, so bash precedes zsh.
	assert.Less(t, strings.Index(treeCmd, "'bash'"), strings.Index(treeCmd, "'zsh'"))
}

func TestCloseRequiresEmptySet(t *testing.T) {
	p := newTestBackend(t, &fakeToolchain{})
	closed, err := p.CloseRequires(newSetOf())
	require.NoError(t, err)
	assert.Empty(t, closed)
}
