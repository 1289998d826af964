package main

import (
	"context"
	"fmt"
	"io"

	"github.com/dsmtools/syno-photos-util/internal/album"
	"github.com/dsmtools/syno-photos-util/internal/syno"
)

// findAlbumOrReport resolves the named album. When no collection contains
// the name, a not-found report with best-effort suggestions is written to
// out and (nil, nil) is returned; the command then finishes successfully.
func findAlbumOrReport(
	ctx context.Context,
	resolver *album.Resolver,
	name string,
	user syno.UserSettings,
	team syno.TeamSpaceSettings,
	out io.Writer,
) (album.Album, error) {
	found, err := resolver.Find(ctx, name, user, team)
	if err != nil {
		return nil, err
	}

	if found != nil {
		return found, nil
	}

	fmt.Fprintf(out, "Album '%s' not found.\n", name)

	suggestions := resolver.Suggest(ctx, name)
	if len(suggestions) > 0 {
		fmt.Fprintf(out, "Other album names containing '%s':\n", name)

		for _, s := range suggestions {
			fmt.Fprintf(out, "- %q (%s)\n", s.Name, s.Type)
		}
	}

	return nil, nil
}
