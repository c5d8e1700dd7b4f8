package policy

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/git-pkgs/aptcache/internal/core"
)

var (
	stableMain = core.PackageFileInfo{
		FileName: "stable_main", Archive: "stable", Codename: "bookworm",
		Origin: "Debian", Label: "Debian", Site: "deb.debian.org",
		Component: "main", Architecture: "amd64", IndexType: core.IndexTypePackages,
	}
	backports = core.PackageFileInfo{
		FileName: "backports_main", Archive: "stable-backports", Codename: "bookworm-backports",
		Origin: "Debian Backports", Label: "Debian Backports", Site: "deb.debian.org",
		Component: "main", Architecture: "amd64", IndexType: core.IndexTypePackages,
		NotAutomatic: true, ButAutomaticUpgrades: true,
	}
	experimental = core.PackageFileInfo{
		FileName: "experimental_main", Archive: "experimental", Codename: "rc-buggy",
		Origin: "Debian", Label: "Debian", Site: "deb.debian.org",
		Component: "main", Architecture: "amd64", IndexType: core.IndexTypePackages,
		NotAutomatic: true,
	}
	status = core.PackageFileInfo{FileName: "/var/lib/dpkg/status", IndexType: core.IndexTypeStatus}
)

// universe is a small helper for building test universes where only
// provenance matters.
type universe struct {
	b     *core.Builder
	files map[string]core.FileID
}

func newUniverse(infos ...core.PackageFileInfo) *universe {
	u := &universe{b: core.NewBuilder(), files: map[string]core.FileID{}}
	for _, info := range infos {
		u.files[info.FileName] = u.b.AddPackageFile(info, nil)
	}
	return u
}

// add registers version ver of name in the named files and returns its ID.
func (u *universe) add(name, ver string, files ...string) core.VersionID {
	pkg := u.b.Package(name, "")
	id, _ := u.b.AddVersion(pkg, core.VersionSpec{Version: ver})
	for _, f := range files {
		u.b.AddVersionFile(id, u.files[f], 0, 0)
	}
	return id
}

func (u *universe) pkg(t *testing.T, built *core.Universe, name string) core.Package {
	t.Helper()
	p, ok := built.FindByName(name)
	require.True(t, ok, name)
	return p
}

func TestCandidateVersion_PinBeatsTrust(t *testing.T) {
	low := core.PackageFileInfo{FileName: "low", Archive: "a", IndexType: core.IndexTypePackages}
	high := core.PackageFileInfo{FileName: "high", Archive: "b", IndexType: core.IndexTypePackages}
	u := newUniverse(high, low)
	u.add("foo", "1.0", "high")
	u.add("foo", "2.0", "low")
	u.b.Package("bar", "")
	built := u.b.Build()

	pol := New(StaticPins{
		Trust: map[string]core.Priority{"high": 500, "low": 100},
		Pins:  map[PinKey]core.Priority{{Name: "foo", Version: "2.0"}: 900},
	})

	foo := u.pkg(t, built, "foo")
	cand, ok := pol.CandidateVersion(foo)
	require.True(t, ok)
	assert.Equal(t, "2.0", cand.VerStr())

	v1, _ := foo.FindVersion("1.0")
	assert.Equal(t, core.Priority(500), pol.Priority(v1))
	assert.Equal(t, core.Priority(900), pol.Priority(cand))

	bar := u.pkg(t, built, "bar")
	_, ok = pol.CandidateVersion(bar)
	assert.False(t, ok, "a package without versions has no candidate")

	t.Run("idempotent", func(t *testing.T) {
		for range 5 {
			again, ok := pol.CandidateVersion(foo)
			require.True(t, ok)
			assert.Equal(t, cand.ID(), again.ID())
		}
	})
}

func TestFilePriority_Intrinsic(t *testing.T) {
	u := newUniverse(stableMain, backports, experimental, status)
	u.add("a", "1", "stable_main")
	u.add("c", "1", "backports_main")
	u.add("d", "1", "experimental_main")
	u.add("e", "1", "/var/lib/dpkg/status")
	built := u.b.Build()

	tests := []struct {
		name           string
		pkg            string
		defaultRelease string
		want           core.Priority
	}{
		{"plain archive", "a", "", DefaultPriority},
		{"default release by archive", "a", "stable", DefaultReleasePriority},
		{"default release by codename", "a", "bookworm", DefaultReleasePriority},
		{"other default release", "a", "trixie", DefaultPriority},
		{"but automatic upgrades", "c", "", ButAutomaticUpgradePriority},
		{"not automatic", "d", "", NotAutomaticPriority},
		{"not automatic as default release", "d", "experimental", DefaultReleasePriority},
		{"status file", "e", "stable", StatusPriority},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pol := New(nil, WithDefaultRelease(tt.defaultRelease))
			v, err := u.pkg(t, built, tt.pkg).Versions().Current()
			require.NoError(t, err)
			assert.Equal(t, tt.want, pol.Priority(v))
			assert.Equal(t, tt.defaultRelease, pol.DefaultRelease())
		})
	}
}

func TestPriority_ZeroAndFileless(t *testing.T) {
	pol := New(NoPins{})
	assert.Equal(t, core.MinPriority, pol.Priority(core.Version{}))

	b := core.NewBuilder()
	id, _ := b.AddVersion(b.Package("ghost", ""), core.VersionSpec{Version: "1"})
	built := b.Build()
	v, _ := built.Version(id)
	assert.Equal(t, core.MinPriority, pol.Priority(v))

	_, ok := pol.CandidateVersion(v.Package())
	assert.False(t, ok, "nothing vouches for a version without files")
}

func TestPriority_MaxOverFiles(t *testing.T) {
	u := newUniverse(stableMain, experimental, status)
	u.add("curl", "8.0", "experimental_main", "stable_main", "/var/lib/dpkg/status")
	built := u.b.Build()

	v, err := u.pkg(t, built, "curl").Versions().Current()
	require.NoError(t, err)
	assert.Equal(t, DefaultPriority, New(nil).Priority(v))
}

func TestCandidateVersion_HigherVersionWins(t *testing.T) {
	u := newUniverse(stableMain, backports)
	u.add("curl", "7.88.1-10", "stable_main")
	u.add("curl", "8.5.0-2~bpo12+1", "stable_main")
	u.add("curl", "8.9.0-1~bpo12+1", "backports_main")
	built := u.b.Build()

	cand, ok := New(nil).CandidateVersion(u.pkg(t, built, "curl"))
	require.True(t, ok)
	assert.Equal(t, "8.5.0-2~bpo12+1", cand.VerStr(), "priority before version")
}

func TestCandidateVersion_TieBreaks(t *testing.T) {
	zeta := core.PackageFileInfo{FileName: "zeta", Origin: "Zeta", Site: "a.example.org", IndexType: core.IndexTypePackages}
	alpha := core.PackageFileInfo{FileName: "alpha", Origin: "Alpha", Site: "z.example.org", IndexType: core.IndexTypePackages}
	alphaB := core.PackageFileInfo{FileName: "alpha-b", Origin: "Alpha", Site: "b.example.org", IndexType: core.IndexTypePackages}

	t.Run("origin", func(t *testing.T) {
		u := newUniverse(zeta, alpha)
		u.add("x", "1.0", "zeta")
		u.add("x", "1.00", "alpha")
		built := u.b.Build()

		cand, ok := New(nil).CandidateVersion(u.pkg(t, built, "x"))
		require.True(t, ok)
		assert.Equal(t, "1.00", cand.VerStr())
	})

	t.Run("site", func(t *testing.T) {
		u := newUniverse(alpha, alphaB)
		u.add("x", "1.0", "alpha")
		u.add("x", "1.00", "alpha-b")
		built := u.b.Build()

		cand, ok := New(nil).CandidateVersion(u.pkg(t, built, "x"))
		require.True(t, ok)
		assert.Equal(t, "1.00", cand.VerStr())
	})

	t.Run("best file of several", func(t *testing.T) {
		beta := core.PackageFileInfo{FileName: "beta", Origin: "Beta", Site: "a.example.org", IndexType: core.IndexTypePackages}
		u := newUniverse(zeta, alpha, beta)
		u.add("x", "1.0", "zeta", "alpha")
		u.add("x", "1.00", "beta")
		built := u.b.Build()

		cand, ok := New(nil).CandidateVersion(u.pkg(t, built, "x"))
		require.True(t, ok)
		assert.Equal(t, "1.0", cand.VerStr(), "Alpha outranks Beta even when listed second")
	})

	t.Run("build order", func(t *testing.T) {
		u := newUniverse(alpha)
		u.add("x", "1.00", "alpha")
		u.add("x", "1.0", "alpha")
		built := u.b.Build()

		cand, ok := New(nil).CandidateVersion(u.pkg(t, built, "x"))
		require.True(t, ok)
		assert.Equal(t, "1.00", cand.VerStr())
	})
}

func TestCandidateVersion_NegativePriority(t *testing.T) {
	u := newUniverse(stableMain, status)
	u.add("blocked", "1.0", "stable_main")
	kept := u.add("held", "1.0", "stable_main", "/var/lib/dpkg/status")
	u.b.SetCurrent(kept)
	built := u.b.Build()

	pol := New(StaticPins{Pins: map[PinKey]core.Priority{
		{Name: "blocked"}: -1,
		{Name: "held"}:    -10,
	}})

	_, ok := pol.CandidateVersion(u.pkg(t, built, "blocked"))
	assert.False(t, ok)

	cand, ok := pol.CandidateVersion(u.pkg(t, built, "held"))
	require.True(t, ok, "installed versions stay candidates")
	assert.Equal(t, "1.0", cand.VerStr())
}

func TestCandidateVersion_StatusOnly(t *testing.T) {
	u := newUniverse(stableMain, status)
	u.add("gone", "1.0", "/var/lib/dpkg/status")
	u.add("purged", "1.0", "/var/lib/dpkg/status")
	u.add("purged", "0.9", "stable_main")
	kept := u.add("local", "1.0+local", "/var/lib/dpkg/status")
	u.b.SetCurrent(kept)
	built := u.b.Build()
	pol := New(nil)

	_, ok := pol.CandidateVersion(u.pkg(t, built, "gone"))
	assert.False(t, ok, "config-files leftovers are not installable")

	cand, ok := pol.CandidateVersion(u.pkg(t, built, "purged"))
	require.True(t, ok)
	assert.Equal(t, "0.9", cand.VerStr())

	cand, ok = pol.CandidateVersion(u.pkg(t, built, "local"))
	require.True(t, ok)
	assert.Equal(t, "1.0+local", cand.VerStr())
}

func TestCandidateVersion_Downgrade(t *testing.T) {
	u := newUniverse(stableMain, status)
	u.add("curl", "7.88.1-10", "stable_main")
	cur := u.add("curl", "8.5.0-2", "/var/lib/dpkg/status")
	u.b.SetCurrent(cur)
	built := u.b.Build()
	curl := u.pkg(t, built, "curl")

	tests := []struct {
		name string
		pins PinStore
		want string
	}{
		{"installed newer wins over default release", nil, "8.5.0-2"},
		{"pinned below 1000 does not downgrade", StaticPins{Pins: map[PinKey]core.Priority{{Name: "curl", Version: "7.88.1-10"}: 999}}, "8.5.0-2"},
		{"pinned at 1000 downgrades", StaticPins{Pins: map[PinKey]core.Priority{{Name: "curl", Version: "7.88.1-10"}: 1000}}, "7.88.1-10"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pol := New(tt.pins, WithDefaultRelease("stable"))
			cand, ok := pol.CandidateVersion(curl)
			require.True(t, ok)
			assert.Equal(t, tt.want, cand.VerStr())
		})
	}
}

func TestCandidatesAndUpgradable(t *testing.T) {
	u := newUniverse(stableMain, status)
	u.add("curl", "8.5.0-2", "stable_main")
	old := u.add("curl", "7.88.1-10", "/var/lib/dpkg/status")
	u.b.SetCurrent(old)
	same := u.add("bash", "5.2.15-2", "stable_main", "/var/lib/dpkg/status")
	u.b.SetCurrent(same)
	u.add("zsh", "5.9-4", "stable_main")
	u.b.Package("mail-transport-agent", "")
	built := u.b.Build()

	pol := New(nil)
	ctx := context.Background()

	cands := pol.Candidates(ctx, built)
	assert.Len(t, cands, 3)
	for id, v := range cands {
		p, _ := built.Package(id)
		want, ok := pol.CandidateVersion(p)
		require.True(t, ok)
		assert.Equal(t, want.ID(), v.ID(), p.FullName())
	}

	up := pol.Upgradable(ctx, built)
	require.Len(t, up, 1)
	assert.Equal(t, "curl:amd64 @ 7.88.1-10 -> 8.5.0-2", up[0].String())
}
