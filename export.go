package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dsmtools/syno-photos-util/internal/album"
	"github.com/dsmtools/syno-photos-util/internal/export"
)

var flagExportCreate bool

func newExportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export <album-name> <folder-path>",
		Short: "Export (accessible) album photos to a folder in the Personal Space",
		Long: `Export an album's photos to a folder in the user's Personal Space.

Requires that the home service is enabled on DSM. The album name can be a
person name in the "People" auto-albums. The copy happens server-side via
asynchronous tasks that are polled until completion; existing files are
skipped, not overwritten.`,
		Args: cobra.ExactArgs(2),
		RunE: runExport,
	}

	cmd.Flags().BoolVar(&flagExportCreate, "create", false,
		"create the target folder (and missing parents) when it does not exist")

	return cmd
}

func runExport(cmd *cobra.Command, args []string) error {
	albumName, folderPath := args[0], args[1]
	ctx := cmd.Context()

	a, err := newApp()
	if err != nil {
		return err
	}

	client, err := a.sessionClient()
	if err != nil {
		return err
	}

	userSettings, err := client.GetUserSettings(ctx)
	if err != nil {
		return err
	}

	if !userSettings.EnableHomeService {
		return fmt.Errorf("home service not enabled on DSM, Personal Space not available in Synology Photos")
	}

	teamSettings, err := client.GetTeamSpaceSettings(ctx)
	if err != nil {
		return err
	}

	orchestrator := export.NewOrchestrator(client, os.Stdout, a.logger)

	target, err := orchestrator.EnsureFolder(ctx, folderPath, flagExportCreate)
	if err != nil {
		return err
	}

	resolver := album.NewResolver(client, a.logger)

	found, err := findAlbumOrReport(ctx, resolver, albumName, userSettings, teamSettings, os.Stdout)
	if err != nil || found == nil {
		return err
	}

	summary, err := orchestrator.Run(ctx, found, target, userSettings)
	if err != nil {
		return err
	}

	fmt.Printf("Export summary: %s\n", summary)

	return nil
}
