package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dsmtools/syno-photos-util/internal/album"
	"github.com/dsmtools/syno-photos-util/internal/locate"
)

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list <album-name>",
		Short: "List file locations (folders) of photos in an album",
		Long: `List the on-disk locations of an album's photos.

The album name can also be a person name in the "People" auto-albums.
Folders the account cannot access are reported inline without aborting the
rest of the listing.`,
		Args: cobra.ExactArgs(1),
		RunE: runList,
	}
}

func runList(cmd *cobra.Command, args []string) error {
	albumName := args[0]
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

	teamSettings, err := client.GetTeamSpaceSettings(ctx)
	if err != nil {
		return err
	}

	resolver := album.NewResolver(client, a.logger)

	found, err := findAlbumOrReport(ctx, resolver, albumName, userSettings, teamSettings, os.Stdout)
	if err != nil || found == nil {
		return err
	}

	idKey, idValue := found.IDParam()

	photos, err := client.ListItems(ctx, idKey, idValue, found.ItemCount())
	if err != nil {
		return fmt.Errorf("listing album contents failed: %w", err)
	}

	folderIDs := make(map[int]struct{})
	ownerIDs := make(map[int]struct{})

	for _, p := range photos {
		folderIDs[p.FolderID] = struct{}{}
		ownerIDs[p.OwnerUserID] = struct{}{}
	}

	ownerNames, err := locate.OwnerNames(ctx, client, ownerIDs)
	if err != nil {
		return err
	}

	folders := locate.ResolveFolders(ctx, client, folderIDs, userSettings)

	for _, photo := range photos {
		line := locate.FormatLine(photo, folders[photo.FolderID], ownerNames[photo.OwnerUserID])
		fmt.Println(line)
	}

	return nil
}
