package syno

import "encoding/json"

// envelope is the generic DSM response wrapper. Data stays raw until the
// per-operation method decodes it into its own shape.
type envelope struct {
	Success bool             `json:"success"`
	Error   *envelopeError   `json:"error,omitempty"`
	Data    *json.RawMessage `json:"data,omitempty"`
}

type envelopeError struct {
	Code int `json:"code"`
}

// listData wraps the "list" array most browse endpoints return.
type listData[T any] struct {
	List []T `json:"list"`
}

// countData wraps the "count" integer of the count methods.
type countData struct {
	Count int `json:"count"`
}

// Album is a regular (user-created or shared) album. A non-empty Passphrase
// identifies a shared album and replaces the id in item queries.
type Album struct {
	ID         int    `json:"id"`
	Name       string `json:"name"`
	ItemCount  int    `json:"item_count"`
	Passphrase string `json:"passphrase"`
}

// Person is an automatically generated "people" album entry.
type Person struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	ItemCount int    `json:"item_count"`
}

// Item is a single photo. OwnerUserID 0 means the photo lives in the Shared
// Space rather than in a user's Personal Space.
type Item struct {
	ID          int    `json:"id"`
	Filename    string `json:"filename"`
	FolderID    int    `json:"folder_id"`
	OwnerUserID int    `json:"owner_user_id"`
}

// Folder is a directory in one of the photo spaces. Name is the full path
// relative to the space root, e.g. "/Trips/2024".
type Folder struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// UserInfo maps a user id to an account name. Shared Space photos report a
// pseudo-user whose name is the volume path (e.g. "/volume1/photo").
type UserInfo struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// UserSettings are the per-account Photos settings that gate which spaces
// and album collections are reachable.
type UserSettings struct {
	EnableHomeService   bool   `json:"enable_home_service"`
	EnablePerson        bool   `json:"enable_person"`
	TeamSpacePermission string `json:"team_space_permission"`
}

// HasTeamSpaceAccess reports whether the account can reach the Shared Space.
func (s UserSettings) HasTeamSpaceAccess() bool {
	return s.TeamSpacePermission != "none"
}

// TeamSpaceSettings are the team-wide Photos settings. EnablePerson is a
// pointer because older DSM versions omit the field entirely.
type TeamSpaceSettings struct {
	EnablePerson *bool `json:"enable_person,omitempty"`
}

// PersonAlbumsEnabled reports whether Shared Space person albums exist.
func (s TeamSpaceSettings) PersonAlbumsEnabled() bool {
	return s.EnablePerson != nil && *s.EnablePerson
}

// Suggestion is one result of the best-effort album search.
type Suggestion struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	Type string `json:"type"`
}

// TaskInfo describes an asynchronous server-side copy job. The per-item
// outcome counters only become meaningful once Status leaves the pending
// states (waiting, processing, aborting).
type TaskInfo struct {
	ID         int    `json:"id"`
	Status     string `json:"status"`
	Total      int    `json:"total"`
	Completion int    `json:"completion"`
	Skip       int    `json:"skip"`
	Error      int    `json:"error"`
}

// Pending reports whether the task is still being worked on by the server.
func (t TaskInfo) Pending() bool {
	switch t.Status {
	case "waiting", "processing", "aborting":
		return true
	default:
		return false
	}
}

// LoginData is the SYNO.API.Auth login response. DID is only populated when
// the device token was requested.
type LoginData struct {
	SID string `json:"sid"`
	DID string `json:"did"`
}
