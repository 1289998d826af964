package syno

import "context"

// GetUserSettings fetches the per-account Photos settings.
func (c *Client) GetUserSettings(ctx context.Context) (UserSettings, error) {
	var data UserSettings
	if err := c.get(ctx, apiSettingUser, "get", 1, nil, &data); err != nil {
		return UserSettings{}, err
	}

	return data, nil
}

// GetTeamSpaceSettings fetches the team-wide Photos settings.
func (c *Client) GetTeamSpaceSettings(ctx context.Context) (TeamSpaceSettings, error) {
	var data TeamSpaceSettings
	if err := c.get(ctx, apiSettingTeamSpace, "get", 1, nil, &data); err != nil {
		return TeamSpaceSettings{}, err
	}

	return data, nil
}
