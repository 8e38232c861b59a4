package bintest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWith_Defaults(t *testing.T) {
	c := With()

	assert.Equal(t, defaultRelease(), c.IsRelease())
	assert.True(t, c.Equal(Config{release: defaultRelease()}))
	assert.True(t, c.Debug().Equal(Config{}))
	assert.Equal(t, "default", c.Debug().String())
}

func TestConfig_SingleUseOptions(t *testing.T) {
	cases := map[string]func(Config) Config{
		"features": func(c Config) Config { return c.Features("x") },
		"profile":  func(c Config) Config { return c.Profile("ci") },
		"binaries": func(c Config) Config { return c.Binaries("a") },
		"examples": func(c Config) Config { return c.Examples("e") },
	}
	for name, set := range cases {
		t.Run(name, func(t *testing.T) {
			once := set(With())
			err := panicError(t, func() { set(once) })
			require.ErrorIs(t, err, ErrOptionReused)
			assert.Contains(t, err.Error(), name+"()")
		})
	}
}

func TestConfig_BooleansAreIdempotent(t *testing.T) {
	assert.True(t, With().Quiet().Quiet().Equal(With().Quiet()))
	assert.True(t, With().Workspace().Workspace().Equal(With().Workspace()))
	assert.True(t, With().Release().Debug().Equal(With().Debug()))
	assert.True(t, With().Debug().Release().Equal(With().Release()))
}

func TestConfig_SettersDoNotModifyReceiver(t *testing.T) {
	base := With().Debug()
	_ = base.Quiet().Workspace().Features("f").Binaries("a")

	assert.True(t, base.Equal(With().Debug()))
	assert.NotPanics(t, func() { base.Features("other") })
}

func TestConfig_ListsAreCopied(t *testing.T) {
	names := []string{"a", "b"}
	c := With().Debug().Binaries(names...)
	names[0] = "z"

	assert.Equal(t, []string{"build", "--message-format", "json", "--bin", "a", "--bin", "b"}, c.Args())
}

func TestConfig_Equal(t *testing.T) {
	base := With().Debug()

	cases := []struct {
		name  string
		a, b  Config
		equal bool
	}{
		{"same", base.Quiet(), base.Quiet(), true},
		{"quiet differs", base, base.Quiet(), false},
		{"release differs", base, base.Release(), false},
		{"unset vs empty features", base, base.Features(""), false},
		{"unset vs empty binaries", base, base.Binaries(), false},
		{"binary order", base.Binaries("a", "b"), base.Binaries("b", "a"), false},
		{"same binaries", base.Binaries("a", "b"), base.Binaries("a", "b"), true},
		{"examples vs binaries", base.Binaries("a"), base.Examples("a"), false},
		{"order of setters", base.Offline().AllTargets(), base.AllTargets().Offline(), true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.equal, tc.a.Equal(tc.b))
			assert.Equal(t, tc.equal, tc.b.Equal(tc.a))
		})
	}
}

func TestGcflagsDisableOptimizations(t *testing.T) {
	cases := map[string]bool{
		"":              false,
		"-l":            false,
		"-N -l":         true,
		"all=-N -l":     true,
		"-m=2":          false,
		"all=-l all=-N": true,
	}
	for flags, want := range cases {
		assert.Equal(t, want, gcflagsDisableOptimizations(flags), "gcflags %q", flags)
	}
}
