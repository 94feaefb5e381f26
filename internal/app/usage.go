package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/google/go-github/v45/github"
	"github.com/pouriyajamshidi/optrun/scenarios"
)

// Version is set at compile time
var Version = ""

const (
	Owner = "pouriyajamshidi"
	Repo  = "optrun"
)

// ErrNoReleases is returned by CheckForUpdates when the repository has no published release.
var ErrNoReleases = errors.New("no published releases")

// PrintUsage prints how optrun should be run
func PrintUsage(w io.Writer) {
	executableName := os.Args[0]

	fmt.Fprintf(w, "\nOPTRUN version %s\n\n", Version)
	fmt.Fprintf(w, "Try running %s like:\n", executableName)
	fmt.Fprintf(w, "%s [scenario ...]. For example:\n", executableName)
	fmt.Fprintf(w, "%s inner-fn accumulate\n", executableName)
	fmt.Fprintf(w, "%s -e 'i %% 3 == 0' -x althex\n", executableName)
	fmt.Fprintf(w, "\n[optional flags]\n")
	fmt.Fprintf(w, "  (-u compares against the latest release published at https://github.com/%s/%s)\n", Owner, Repo)

	fs, _ := newFlagSet()
	fs.VisitAll(func(f *flag.Flag) {
		flagName := f.Name
		if len(f.Name) > 1 {
			flagName = "-" + flagName
		}

		fmt.Fprintf(w, "  -%s : %s\n", flagName, f.Usage)
	})
}

// PrintScenarios lists the built-in scenarios with their descriptions
func PrintScenarios(w io.Writer) {
	for _, sc := range scenarios.Builtin() {
		fmt.Fprintf(w, "  %-14s %s\n", sc.Name, sc.Description)
	}
}

func compareVersions(v1, v2 string) int {
	parts1 := strings.Split(v1, ".")
	parts2 := strings.Split(v2, ".")

	for i := range min(len(parts1), len(parts2)) {
		n1, _ := strconv.Atoi(parts1[i])
		n2, _ := strconv.Atoi(parts2[i])

		if n1 < n2 {
			return -1
		}
		if n1 > n2 {
			return 1
		}
	}

	// for cases in which version numbers differ in length
	if len(parts1) < len(parts2) {
		return -1
	}

	if len(parts1) > len(parts2) {
		return 1
	}

	return 0
}

// PrintVersion displays the version
func PrintVersion(w io.Writer) {
	fmt.Fprintf(w, "OPTRUN version %s\n", Version)
}

var versionPattern = regexp.MustCompile(`^v?(\d+\.\d+\.\d+)$`)

// updateMessage compares the running version with the latest release tag.
func updateMessage(current, latestTagName string) (string, error) {
	latestVersion := versionPattern.FindStringSubmatch(latestTagName)

	if len(latestVersion) == 0 {
		return "", fmt.Errorf("version name does not match expected format: %s", latestTagName)
	}

	switch compareVersions(current, latestVersion[1]) {
	case -1:
		return fmt.Sprintf("Found newer version %s\nPlease update OPTRUN from the URL below:\nhttps://github.com/%s/%s/releases/tag/%s",
			latestVersion[1], Owner, Repo, latestTagName), nil
	case 1:
		return fmt.Sprintf("Current version %s is newer than the latest release %s",
			current, latestVersion[1]), nil
	default:
		return fmt.Sprintf("OPTRUN is on the latest version: %s", current), nil
	}
}

// CheckForUpdates checks for newer versions of optrun and returns update message
func CheckForUpdates(ctx context.Context) (string, error) {
	c := github.NewClient(nil)

	// unauthenticated requests from the same IP are limited to 60 per hour
	latestRelease, _, err := c.Repositories.GetLatestRelease(ctx, Owner, Repo)
	if err != nil {
		return "", releaseLookupError(err)
	}

	return updateMessage(Version, latestRelease.GetTagName())
}

// releaseLookupError turns a missing latest release into ErrNoReleases.
func releaseLookupError(err error) error {
	var ghErr *github.ErrorResponse
	if errors.As(err, &ghErr) && ghErr.Response != nil && ghErr.Response.StatusCode == http.StatusNotFound {
		return fmt.Errorf("check for updates: %w for %s/%s", ErrNoReleases, Owner, Repo)
	}

	return fmt.Errorf("check for updates: %w", err)
}
