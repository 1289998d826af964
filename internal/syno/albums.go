package syno

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
)

// CountOwnedAlbums returns the number of albums owned by the account.
func (c *Client) CountOwnedAlbums(ctx context.Context) (int, error) {
	var data countData
	if err := c.get(ctx, apiBrowseAlbum, "count", 2, nil, &data); err != nil {
		return 0, err
	}

	return data.Count, nil
}

// ListOwnedAlbums returns up to limit albums owned by the account.
func (c *Client) ListOwnedAlbums(ctx context.Context, limit int) ([]Album, error) {
	params := url.Values{}
	params.Set("offset", "0")
	params.Set("limit", strconv.Itoa(limit))

	var data listData[Album]
	if err := c.get(ctx, apiBrowseAlbum, "list", 2, params, &data); err != nil {
		return nil, err
	}

	return data.List, nil
}

// ListSharedWithMeAlbums returns one page of albums shared with the account
// by other users. There is no count method for this collection; callers page
// until a short page confirms exhaustion.
func (c *Client) ListSharedWithMeAlbums(ctx context.Context, offset, limit int) ([]Album, error) {
	params := url.Values{}
	params.Set("offset", strconv.Itoa(offset))
	params.Set("limit", strconv.Itoa(limit))

	var data listData[Album]
	if err := c.get(ctx, apiSharingMisc, "list_shared_with_me_album", 2, params, &data); err != nil {
		return nil, err
	}

	return data.List, nil
}

// CountPeople returns the number of person albums in the given space.
func (c *Client) CountPeople(ctx context.Context, space Space) (int, error) {
	params := url.Values{}
	params.Set("show_more", "true")

	var data countData
	if err := c.get(ctx, apiBrowsePerson.forSpace(space), "count", 2, params, &data); err != nil {
		return 0, err
	}

	return data.Count, nil
}

// ListPeople returns up to limit person albums in the given space.
func (c *Client) ListPeople(ctx context.Context, space Space, limit int) ([]Person, error) {
	params := url.Values{}
	params.Set("offset", "0")
	params.Set("limit", strconv.Itoa(limit))

	var data listData[Person]
	if err := c.get(ctx, apiBrowsePerson.forSpace(space), "list", 1, params, &data); err != nil {
		return nil, err
	}

	return data.List, nil
}

// ListItems returns up to limit photos of the collection identified by the
// given id parameter (album_id, passphrase, or person_id with its key).
func (c *Client) ListItems(ctx context.Context, idKey, idValue string, limit int) ([]Item, error) {
	params := url.Values{}
	params.Set(idKey, idValue)
	params.Set("offset", "0")
	params.Set("limit", strconv.Itoa(limit))

	var data listData[Item]
	if err := c.get(ctx, apiBrowseItem, "list", 1, params, &data); err != nil {
		return nil, fmt.Errorf("listing items: %w", err)
	}

	return data.List, nil
}

// SuggestAlbums searches album names by keyword, filtered to the album types
// this tool understands. The endpoint is unreliable on the API side (errors
// on certain keyword shapes); callers must treat failures as non-fatal.
func (c *Client) SuggestAlbums(ctx context.Context, keyword string) ([]Suggestion, error) {
	params := url.Values{}
	params.Set("keyword", keyword)

	var data listData[Suggestion]
	if err := c.get(ctx, apiSearch, "suggest", 6, params, &data); err != nil {
		return nil, err
	}

	supported := map[string]bool{"album": true, "person": true, "shared_with_me": true}

	var out []Suggestion
	for _, s := range data.List {
		if supported[s.Type] {
			out = append(out, s)
		}
	}

	return out, nil
}
