package syno

import (
	"context"
	"net/url"
	"strconv"
)

// taskData wraps the copy response of the BackgroundTask.File family.
type taskData struct {
	TaskInfo TaskInfo `json:"task_info"`
}

// CopyPhotos submits an asynchronous job copying the given photos into the
// target Personal Space folder. space selects which API family owns the
// photos, not where they land. Existing files are skipped, not overwritten.
func (c *Client) CopyPhotos(ctx context.Context, photoIDs []int, space Space, targetFolderID int) (TaskInfo, error) {
	form := url.Values{}
	form.Set("target_folder_id", strconv.Itoa(targetFolderID))
	form.Set("item_id", joinIDs(photoIDs))
	form.Set("action", "skip")
	form.Set("folder_id", "[]")

	var data taskData
	if err := c.post(ctx, apiTaskFile.forSpace(space), "copy", 1, form, &data); err != nil {
		return TaskInfo{}, err
	}

	return data.TaskInfo, nil
}

// GetTaskStatus fetches the current state of the given copy tasks.
// ids must not be empty.
func (c *Client) GetTaskStatus(ctx context.Context, ids []int) ([]TaskInfo, error) {
	params := url.Values{}
	params.Set("id", joinIDs(ids))

	var data listData[TaskInfo]
	if err := c.get(ctx, apiTaskInfo, "get_status", 1, params, &data); err != nil {
		return nil, err
	}

	return data.List, nil
}
