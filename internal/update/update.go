// Package update checks GitHub releases of cartling and replaces the running
// binary in place. Wired to the /update slash command, the --update flag, and
// the background check the list runs on startup.
package update

import (
	"context"
	"fmt"
	"runtime"

	"github.com/Masterminds/semver/v3"
	"github.com/creativeprojects/go-selfupdate"
)

const releaseSlug = "cartling/cartling"

// Result holds the outcome of an update check or apply.
type Result struct {
	CurrentVersion  string
	LatestVersion   string
	UpdateAvailable bool
	Applied         bool
}

func newUpdater() (*selfupdate.Updater, error) {
	source, err := selfupdate.NewGitHubSource(selfupdate.GitHubConfig{})
	if err != nil {
		return nil, fmt.Errorf("creating github source: %w", err)
	}

	updater, err := selfupdate.NewUpdater(selfupdate.Config{
		Source: source,
		OS:     runtime.GOOS,
		Arch:   runtime.GOARCH,
	})
	if err != nil {
		return nil, fmt.Errorf("creating updater: %w", err)
	}
	return updater, nil
}

// needsUpdate reports whether latest should replace current. A current
// version that isn't valid semver (a "dev" build) takes any release; a
// latest that isn't valid semver is never installed.
func needsUpdate(current, latest string) bool {
	cur, err := semver.NewVersion(current)
	if err != nil {
		return true
	}
	lat, err := semver.NewVersion(latest)
	if err != nil {
		return false
	}
	return lat.GreaterThan(cur)
}

// Check reports whether a newer release exists. It never downloads anything.
func Check(ctx context.Context, currentVersion string) (*Result, error) {
	updater, err := newUpdater()
	if err != nil {
		return nil, err
	}

	latest, found, err := updater.DetectLatest(ctx, selfupdate.ParseSlug(releaseSlug))
	if err != nil {
		return nil, fmt.Errorf("checking for updates: %w", err)
	}

	res := &Result{CurrentVersion: currentVersion}
	if found {
		res.LatestVersion = latest.Version()
		res.UpdateAvailable = needsUpdate(currentVersion, latest.Version())
	}
	return res, nil
}

// Apply downloads the newest release and swaps it in for the running binary.
// When the binary is already current, it returns with Applied false.
func Apply(ctx context.Context, currentVersion string) (*Result, error) {
	updater, err := newUpdater()
	if err != nil {
		return nil, err
	}

	latest, found, err := updater.DetectLatest(ctx, selfupdate.ParseSlug(releaseSlug))
	if err != nil {
		return nil, fmt.Errorf("checking for updates: %w", err)
	}

	res := &Result{CurrentVersion: currentVersion}
	if !found {
		return res, nil
	}
	res.LatestVersion = latest.Version()
	if !needsUpdate(currentVersion, latest.Version()) {
		return res, nil
	}

	exe, err := selfupdate.ExecutablePath()
	if err != nil {
		return nil, fmt.Errorf("finding executable path: %w", err)
	}
	if err := updater.UpdateTo(ctx, latest, exe); err != nil {
		return nil, fmt.Errorf("applying update: %w", err)
	}

	res.UpdateAvailable = true
	res.Applied = true
	return res, nil
}
