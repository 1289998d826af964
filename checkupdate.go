package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/avast/retry-go"
	"github.com/spf13/cobra"
)

// releaseURL is the GitHub API endpoint reporting the latest release.
const releaseURL = "https://api.github.com/repos/dsmtools/syno-photos-util/releases/latest"

// releaseFetchAttempts bounds the retries around transient fetch failures.
const releaseFetchAttempts = 3

func newCheckUpdateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check-update",
		Short: "Check if a new version is available",
		Args:  cobra.NoArgs,
		RunE:  runCheckUpdate,
	}
}

// release is the subset of the GitHub release response we read.
type release struct {
	TagName string `json:"tag_name"`
}

func runCheckUpdate(_ *cobra.Command, _ []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}

	httpClient := a.httpClient()

	var latest release

	err = retry.Do(
		func() error {
			return fetchLatestRelease(httpClient, releaseURL, &latest)
		},
		retry.Attempts(releaseFetchAttempts),
		retry.OnRetry(func(n uint, err error) {
			a.logger.Warn("release check failed, retrying", "attempt", n+1, "error", err.Error())
		}),
	)
	if err != nil {
		return fmt.Errorf("checking for updates: %w", err)
	}

	installed := strings.TrimPrefix(version, "v")
	remote := strings.TrimPrefix(latest.TagName, "v")

	if remote != "" && remote != installed {
		fmt.Printf("Version %s is available!\n", remote)
	} else {
		fmt.Println("Everything up to date")
	}

	return nil
}

func fetchLatestRelease(client *http.Client, url string, out *release) error {
	resp, err := client.Get(url)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %s", resp.Status)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding release response: %w", err)
	}

	return nil
}
