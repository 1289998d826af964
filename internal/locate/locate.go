// Package locate resolves the folder ids referenced by a photo set to their
// on-disk locations, using a bounded concurrent fan-out, and renders the
// per-photo result lines of the list workflow.
package locate

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/dsmtools/syno-photos-util/internal/syno"
)

// concurrentLookups bounds the number of outstanding folder requests.
const concurrentLookups = 8

// sharedSpaceOwner is the display name substituted for the pseudo-user that
// owns Shared Space photos.
const sharedSpaceOwner = "Shared Space"

// ErrNoAccess is recorded for folder ids when the account has access to
// neither space.
var ErrNoAccess = errors.New("no access")

// API is the subset of the session client the locator needs.
type API interface {
	GetFolderByID(ctx context.Context, id int, space syno.Space) (syno.Folder, error)
	GetUserInfo(ctx context.Context, ids []int) ([]syno.UserInfo, error)
}

// Outcome is the result of one folder lookup. Exactly one of Folder and Err
// is meaningful.
type Outcome struct {
	Folder syno.Folder
	Err    error
}

// ResolveFolders looks up every distinct folder id with at most eight
// concurrent requests. Each id's outcome is preserved; a failed lookup never
// aborts the others. The returned map has exactly the input ids as keys.
func ResolveFolders(
	ctx context.Context,
	api API,
	folderIDs map[int]struct{},
	settings syno.UserSettings,
) map[int]Outcome {
	results := make(map[int]Outcome, len(folderIDs))

	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrentLookups)

	for id := range folderIDs {
		id := id
		g.Go(func() error {
			outcome := lookupFolder(gctx, api, id, settings)

			mu.Lock()
			results[id] = outcome
			mu.Unlock()

			return nil
		})
	}

	// Workers only record outcomes, they never fail the group.
	_ = g.Wait()

	return results
}

// lookupFolder resolves a single folder id according to the account's space
// entitlements: Personal only, Shared only, or Personal with a fallback to
// Shared when the account can reach both.
func lookupFolder(ctx context.Context, api API, id int, settings syno.UserSettings) Outcome {
	home := settings.EnableHomeService
	team := settings.HasTeamSpaceAccess()

	switch {
	case !home && !team:
		return Outcome{Err: ErrNoAccess}
	case home && !team:
		folder, err := api.GetFolderByID(ctx, id, syno.SpacePersonal)
		return Outcome{Folder: folder, Err: err}
	case !home && team:
		folder, err := api.GetFolderByID(ctx, id, syno.SpaceShared)
		return Outcome{Folder: folder, Err: err}
	default:
		folder, err := api.GetFolderByID(ctx, id, syno.SpacePersonal)
		if err == nil {
			return Outcome{Folder: folder}
		}

		folder, err = api.GetFolderByID(ctx, id, syno.SpaceShared)

		return Outcome{Folder: folder, Err: err}
	}
}

// OwnerNames resolves the owner user ids of the photo set to display names.
// The Shared Space pseudo-user reports its name as a volume path like
// "/volume1/photo"; it is mapped to a friendly label.
func OwnerNames(ctx context.Context, api API, ownerIDs map[int]struct{}) (map[int]string, error) {
	ids := make([]int, 0, len(ownerIDs))
	for id := range ownerIDs {
		ids = append(ids, id)
	}

	users, err := api.GetUserInfo(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("resolving photo owners: %w", err)
	}

	names := make(map[int]string, len(users))
	for _, u := range users {
		name := u.Name
		if strings.HasPrefix(name, "/volume") && strings.HasSuffix(name, "/photo") {
			name = sharedSpaceOwner
		}

		names[u.ID] = name
	}

	return names, nil
}

// FormatLine renders the list-workflow output line for one photo: the
// assembled on-disk path on success, or an inline error line that lets the
// remaining photos still be reported.
//
// The path prefixes assume the standard DSM service-folder locations:
// Personal Space photos live under the owner's home, Shared Space photos
// under the shared photo service folder.
func FormatLine(item syno.Item, outcome Outcome, owner string) string {
	if outcome.Err != nil {
		if errors.Is(outcome.Err, syno.ErrNoAccessOrNotFound) {
			return fmt.Sprintf("Error: no access (owned by %s) '%s'", owner, item.Filename)
		}

		return fmt.Sprintf("Error: %v '%s'", outcome.Err, item.Filename)
	}

	prefix := fmt.Sprintf("/var/services/homes/%s/Photos", owner)
	if owner == sharedSpaceOwner {
		prefix = "/var/services/photo"
	}

	subFolder := strings.TrimRight(outcome.Folder.Name, "/")

	return fmt.Sprintf("%s%s/%s", prefix, subFolder, item.Filename)
}
