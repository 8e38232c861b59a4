// Package bintest gives integration tests the executables produced by the
// current Cargo build.
//
// The first call to New, Config.Build, Config.Setup or Config.Acquire runs
//
//	$CARGO build --message-format json [flags]
//
// (plain "cargo" when $CARGO is unset), reads the JSON messages it prints and
// records every compiler artifact that has an executable. The result is a
// process-wide Registry from executable name (file name without directory or
// ".exe") to absolute path. Later calls return the same Registry without
// building again.
//
//	func TestHelp(t *testing.T) {
//		bins := bintest.With().Quiet().Setup(t)
//		for name, path := range bins.List() {
//			t.Logf("%s @ %s", name, path)
//		}
//		out, err := bins.Command("mytool").Output()
//		...
//	}
//
// All callers in a process must use equal configurations. A call with a
// different Config fails with ErrConfigConflict instead of silently testing a
// different build, so packages with several test files usually keep the
// Config in one package-level variable.
//
// Build output from cargo goes to the test's stderr. Progress is logged with
// log/slog; BINTEST_LOG and BINTEST_LOG_FORMAT configure the default logger and
// SetLogger replaces it.
package bintest
