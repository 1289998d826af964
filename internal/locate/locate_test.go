package locate

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dsmtools/syno-photos-util/internal/syno"
)

// fakeAPI resolves folders from per-space maps and records lookups.
type fakeAPI struct {
	personal map[int]syno.Folder
	shared   map[int]syno.Folder
	users    []syno.UserInfo

	mu      sync.Mutex
	lookups []lookup

	inFlight    atomic.Int32
	maxInFlight atomic.Int32
}

type lookup struct {
	id    int
	space syno.Space
}

func (f *fakeAPI) GetFolderByID(_ context.Context, id int, space syno.Space) (syno.Folder, error) {
	cur := f.inFlight.Add(1)
	defer f.inFlight.Add(-1)

	for {
		maxSeen := f.maxInFlight.Load()
		if cur <= maxSeen || f.maxInFlight.CompareAndSwap(maxSeen, cur) {
			break
		}
	}

	f.mu.Lock()
	f.lookups = append(f.lookups, lookup{id: id, space: space})
	f.mu.Unlock()

	var folders map[int]syno.Folder
	if space == syno.SpaceShared {
		folders = f.shared
	} else {
		folders = f.personal
	}

	folder, ok := folders[id]
	if !ok {
		return syno.Folder{}, &syno.APIError{Code: 642, Err: syno.ErrNoAccessOrNotFound}
	}

	return folder, nil
}

func (f *fakeAPI) GetUserInfo(context.Context, []int) ([]syno.UserInfo, error) {
	return f.users, nil
}

func ids(values ...int) map[int]struct{} {
	set := make(map[int]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}

	return set
}

func TestResolveFolders_PreservesEveryID(t *testing.T) {
	api := &fakeAPI{
		personal: map[int]syno.Folder{1: {ID: 1, Name: "/A"}},
		shared:   map[int]syno.Folder{2: {ID: 2, Name: "/B"}},
	}

	settings := syno.UserSettings{EnableHomeService: true, TeamSpacePermission: "view"}

	input := ids(1, 2, 3)
	results := ResolveFolders(context.Background(), api, input, settings)

	require.Len(t, results, len(input))

	for id := range input {
		_, present := results[id]
		assert.True(t, present, "folder id %d lost", id)
	}

	assert.NoError(t, results[1].Err)
	assert.Equal(t, "/A", results[1].Folder.Name)
	assert.NoError(t, results[2].Err)
	assert.Equal(t, "/B", results[2].Folder.Name)
	// 3 exists in neither space; its failure is recorded, not propagated.
	assert.ErrorIs(t, results[3].Err, syno.ErrNoAccessOrNotFound)
}

func TestResolveFolders_NoSpaceAvailable(t *testing.T) {
	api := &fakeAPI{}
	settings := syno.UserSettings{EnableHomeService: false, TeamSpacePermission: "none"}

	results := ResolveFolders(context.Background(), api, ids(7), settings)

	require.Len(t, results, 1)
	assert.ErrorIs(t, results[7].Err, ErrNoAccess)
	assert.Empty(t, api.lookups)
}

func TestResolveFolders_PersonalOnly(t *testing.T) {
	api := &fakeAPI{personal: map[int]syno.Folder{1: {ID: 1, Name: "/A"}}}
	settings := syno.UserSettings{EnableHomeService: true, TeamSpacePermission: "none"}

	results := ResolveFolders(context.Background(), api, ids(1), settings)

	require.NoError(t, results[1].Err)
	require.Len(t, api.lookups, 1)
	assert.Equal(t, syno.SpacePersonal, api.lookups[0].space)
}

func TestResolveFolders_SharedOnly(t *testing.T) {
	api := &fakeAPI{shared: map[int]syno.Folder{1: {ID: 1, Name: "/S"}}}
	settings := syno.UserSettings{EnableHomeService: false, TeamSpacePermission: "view"}

	results := ResolveFolders(context.Background(), api, ids(1), settings)

	require.NoError(t, results[1].Err)
	require.Len(t, api.lookups, 1)
	assert.Equal(t, syno.SpaceShared, api.lookups[0].space)
}

func TestResolveFolders_PersonalFallsBackToShared(t *testing.T) {
	api := &fakeAPI{shared: map[int]syno.Folder{1: {ID: 1, Name: "/S"}}}
	settings := syno.UserSettings{EnableHomeService: true, TeamSpacePermission: "view"}

	results := ResolveFolders(context.Background(), api, ids(1), settings)

	require.NoError(t, results[1].Err)
	assert.Equal(t, "/S", results[1].Folder.Name)

	require.Len(t, api.lookups, 2)
	assert.Equal(t, syno.SpacePersonal, api.lookups[0].space)
	assert.Equal(t, syno.SpaceShared, api.lookups[1].space)
}

func TestResolveFolders_BoundsConcurrency(t *testing.T) {
	folders := make(map[int]syno.Folder)
	input := make(map[int]struct{})

	for i := 1; i <= 64; i++ {
		folders[i] = syno.Folder{ID: i}
		input[i] = struct{}{}
	}

	api := &fakeAPI{personal: folders}
	settings := syno.UserSettings{EnableHomeService: true, TeamSpacePermission: "none"}

	results := ResolveFolders(context.Background(), api, input, settings)

	require.Len(t, results, 64)
	assert.LessOrEqual(t, api.maxInFlight.Load(), int32(concurrentLookups))
}

func TestOwnerNames_SharedSpaceHeuristic(t *testing.T) {
	api := &fakeAPI{users: []syno.UserInfo{
		{ID: 2, Name: "bob"},
		{ID: 0, Name: "/volume1/photo"},
	}}

	names, err := OwnerNames(context.Background(), api, ids(0, 2))
	require.NoError(t, err)

	assert.Equal(t, "bob", names[2])
	assert.Equal(t, "Shared Space", names[0])
}

func TestFormatLine(t *testing.T) {
	item := syno.Item{Filename: "beach.jpg", FolderID: 5}

	tests := []struct {
		name    string
		outcome Outcome
		owner   string
		want    string
	}{
		{
			name:    "personal space path",
			outcome: Outcome{Folder: syno.Folder{Name: "/Trips/2024"}},
			owner:   "bob",
			want:    "/var/services/homes/bob/Photos/Trips/2024/beach.jpg",
		},
		{
			name:    "shared space path",
			outcome: Outcome{Folder: syno.Folder{Name: "/Events/"}},
			owner:   "Shared Space",
			want:    "/var/services/photo/Events/beach.jpg",
		},
		{
			name:    "no access error",
			outcome: Outcome{Err: &syno.APIError{Code: 642, Err: syno.ErrNoAccessOrNotFound}},
			owner:   "alice",
			want:    "Error: no access (owned by alice) 'beach.jpg'",
		},
		{
			name:    "other error",
			outcome: Outcome{Err: errors.New("boom")},
			owner:   "bob",
			want:    "Error: boom 'beach.jpg'",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatLine(item, tt.outcome, tt.owner))
		})
	}
}
