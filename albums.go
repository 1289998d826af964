package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dsmtools/syno-photos-util/internal/syno"
)

// sharedAlbumsPageSize is the chunk size used to drain the shared-with-me
// collection, which has no count method.
const sharedAlbumsPageSize = 50

var (
	flagAlbumsOwned  bool
	flagAlbumsShared bool
)

func newAlbumsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "albums",
		Short: "List album names",
		Long: `List the names of albums visible to the account.

By default both owned albums and albums shared by other users are listed;
--owned and --shared restrict the output to one collection.`,
		Args: cobra.NoArgs,
		RunE: runAlbums,
	}

	cmd.Flags().BoolVar(&flagAlbumsOwned, "owned", false, "list only albums owned by the account")
	cmd.Flags().BoolVar(&flagAlbumsShared, "shared", false, "list only albums shared with the account")

	return cmd
}

func runAlbums(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	a, err := newApp()
	if err != nil {
		return err
	}

	client, err := a.sessionClient()
	if err != nil {
		return err
	}

	showAll := !flagAlbumsOwned && !flagAlbumsShared

	if flagAlbumsOwned || showAll {
		count, err := client.CountOwnedAlbums(ctx)
		if err != nil {
			return err
		}

		if count > 0 {
			owned, err := client.ListOwnedAlbums(ctx, count)
			if err != nil {
				return err
			}

			for _, al := range owned {
				fmt.Println(al.Name)
			}
		}
	}

	if flagAlbumsShared || showAll {
		shared, err := listAllSharedAlbums(ctx, client)
		if err != nil {
			return err
		}

		for _, al := range shared {
			fmt.Println(al.Name)
		}
	}

	return nil
}

// listAllSharedAlbums drains the shared-with-me collection chunk by chunk
// until a short page confirms exhaustion.
func listAllSharedAlbums(ctx context.Context, client *syno.Client) ([]syno.Album, error) {
	var albums []syno.Album

	for offset := 0; ; offset += sharedAlbumsPageSize {
		page, err := client.ListSharedWithMeAlbums(ctx, offset, sharedAlbumsPageSize)
		if err != nil {
			return nil, err
		}

		albums = append(albums, page...)

		if len(page) < sharedAlbumsPageSize {
			return albums, nil
		}
	}
}
