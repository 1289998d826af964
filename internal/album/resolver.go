package album

import (
	"context"
	"log/slog"
	"strings"

	"github.com/dsmtools/syno-photos-util/internal/syno"
)

// sharedPageSize is the chunk size used to scan shared-with-me albums.
// There is no count method for that collection, so pages are fetched until
// a short page confirms exhaustion.
const sharedPageSize = 50

// API is the subset of the session client the resolver needs.
type API interface {
	CountOwnedAlbums(ctx context.Context) (int, error)
	ListOwnedAlbums(ctx context.Context, limit int) ([]syno.Album, error)
	ListSharedWithMeAlbums(ctx context.Context, offset, limit int) ([]syno.Album, error)
	CountPeople(ctx context.Context, space syno.Space) (int, error)
	ListPeople(ctx context.Context, space syno.Space, limit int) ([]syno.Person, error)
	SuggestAlbums(ctx context.Context, keyword string) ([]syno.Suggestion, error)
}

// Resolver finds albums by name across the collections the account can see.
type Resolver struct {
	api    API
	logger *slog.Logger
}

// NewResolver creates a resolver on top of the given session client.
func NewResolver(api API, logger *slog.Logger) *Resolver {
	if logger == nil {
		logger = slog.Default()
	}

	return &Resolver{api: api, logger: logger}
}

// Find searches for an album named name, case-insensitively, in strict
// priority order: owned albums, then shared-with-me albums, then person
// albums in the Personal Space (when enabled for the user), then person
// albums in the Shared Space (when enabled for the team). The first match
// wins. Returns (nil, nil) when no collection contains the name.
func (r *Resolver) Find(
	ctx context.Context,
	name string,
	user syno.UserSettings,
	team syno.TeamSpaceSettings,
) (Album, error) {
	owned, err := r.findOwned(ctx, name)
	if err != nil {
		return nil, err
	}

	if owned != nil {
		return owned, nil
	}

	shared, err := r.findShared(ctx, name)
	if err != nil {
		return nil, err
	}

	if shared != nil {
		return shared, nil
	}

	if user.EnablePerson {
		person, err := r.findPerson(ctx, name, syno.SpacePersonal)
		if err != nil {
			return nil, err
		}

		if person != nil {
			return person, nil
		}
	}

	if team.PersonAlbumsEnabled() {
		person, err := r.findPerson(ctx, name, syno.SpaceShared)
		if err != nil {
			return nil, err
		}

		if person != nil {
			return person, nil
		}
	}

	return nil, nil
}

func (r *Resolver) findOwned(ctx context.Context, name string) (Album, error) {
	count, err := r.api.CountOwnedAlbums(ctx)
	if err != nil {
		return nil, err
	}

	if count == 0 {
		return nil, nil
	}

	albums, err := r.api.ListOwnedAlbums(ctx, count)
	if err != nil {
		return nil, err
	}

	for _, a := range albums {
		if strings.EqualFold(a.Name, name) {
			return Normal{Album: a}, nil
		}
	}

	return nil, nil
}

// findShared scans the shared-with-me collection page by page, returning as
// soon as a page contains the name.
func (r *Resolver) findShared(ctx context.Context, name string) (Album, error) {
	for offset := 0; ; offset += sharedPageSize {
		page, err := r.api.ListSharedWithMeAlbums(ctx, offset, sharedPageSize)
		if err != nil {
			return nil, err
		}

		for _, a := range page {
			if strings.EqualFold(a.Name, name) {
				return Normal{Album: a}, nil
			}
		}

		if len(page) < sharedPageSize {
			return nil, nil
		}
	}
}

func (r *Resolver) findPerson(ctx context.Context, name string, space syno.Space) (Album, error) {
	count, err := r.api.CountPeople(ctx, space)
	if err != nil {
		return nil, err
	}

	if count == 0 {
		return nil, nil
	}

	people, err := r.api.ListPeople(ctx, space, count)
	if err != nil {
		return nil, err
	}

	for _, p := range people {
		if strings.EqualFold(p.Name, name) {
			return PersonAlbum{Person: p, Space: space}, nil
		}
	}

	return nil, nil
}

// Suggest returns name suggestions for a keyword that failed to resolve.
// The underlying endpoint is unreliable; failures are logged and mapped to
// an empty list so the caller's not-found report still goes out.
func (r *Resolver) Suggest(ctx context.Context, keyword string) []syno.Suggestion {
	suggestions, err := r.api.SuggestAlbums(ctx, keyword)
	if err != nil {
		r.logger.Warn("album suggestion lookup failed", slog.String("error", err.Error()))

		return nil
	}

	return suggestions
}
