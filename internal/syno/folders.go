package syno

import (
	"context"
	"net/url"
	"strconv"
)

// folderData wraps the single-folder responses of the Browse.Folder family.
type folderData struct {
	Folder Folder `json:"folder"`
}

// GetFolderByID resolves a folder id to a Folder in the given space.
// A folder id belongs to exactly one space; looking it up in the wrong one
// fails with ErrNoAccessOrNotFound.
func (c *Client) GetFolderByID(ctx context.Context, id int, space Space) (Folder, error) {
	params := url.Values{}
	params.Set("id", strconv.Itoa(id))

	var data folderData
	if err := c.get(ctx, apiBrowseFolder.forSpace(space), "get", 1, params, &data); err != nil {
		return Folder{}, err
	}

	return data.Folder, nil
}

// GetFolderByName resolves an absolute folder path in the Personal Space.
func (c *Client) GetFolderByName(ctx context.Context, name string) (Folder, error) {
	params := url.Values{}
	params.Set("name", name)

	var data folderData
	if err := c.get(ctx, apiBrowseFolder.forSpace(SpacePersonal), "get", 1, params, &data); err != nil {
		return Folder{}, err
	}

	return data.Folder, nil
}

// CreateFolder creates a folder named name under the parent folder in the
// Personal Space and returns it.
func (c *Client) CreateFolder(ctx context.Context, name string, parentID int) (Folder, error) {
	form := url.Values{}
	form.Set("name", name)
	form.Set("target_id", strconv.Itoa(parentID))

	var data folderData
	if err := c.post(ctx, apiBrowseFolder.forSpace(SpacePersonal), "create", 1, form, &data); err != nil {
		return Folder{}, err
	}

	return data.Folder, nil
}

// GetUserInfo resolves user ids to account names. ids must not be empty.
func (c *Client) GetUserInfo(ctx context.Context, ids []int) ([]UserInfo, error) {
	params := url.Values{}
	params.Set("id", joinIDs(ids))

	var data listData[UserInfo]
	if err := c.get(ctx, apiUserInfo, "get", 1, params, &data); err != nil {
		return nil, err
	}

	return data.List, nil
}
