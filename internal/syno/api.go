package syno

// Space selects between the two disjoint photo ownership domains. Almost
// every browse endpoint exists twice, once per space, under the SYNO.Foto
// and SYNO.FotoTeam API families.
type Space int

const (
	SpacePersonal Space = iota
	SpaceShared
)

func (s Space) String() string {
	if s == SpaceShared {
		return "shared"
	}

	return "personal"
}

// API names of the endpoints this client uses. Space-agnostic endpoints only
// exist in the SYNO.Foto family.
const (
	apiAuth             = "SYNO.API.Auth"
	apiBrowseAlbum      = "SYNO.Foto.Browse.Album"
	apiBrowseItem       = "SYNO.Foto.Browse.Item"
	apiSharingMisc      = "SYNO.Foto.Sharing.Misc"
	apiSearch           = "SYNO.Foto.Search.Search"
	apiSettingUser      = "SYNO.Foto.Setting.User"
	apiSettingTeamSpace = "SYNO.Foto.Setting.TeamSpace"
	apiTaskInfo         = "SYNO.Foto.BackgroundTask.Info"
	apiUserInfo         = "SYNO.Foto.UserInfo"
)

// spacedAPI holds the per-space endpoint names of an API family pair.
type spacedAPI struct {
	personal string
	shared   string
}

func (a spacedAPI) forSpace(s Space) string {
	if s == SpaceShared {
		return a.shared
	}

	return a.personal
}

// Endpoint pairs keyed by Space, to keep call sites free of duplicated
// personal/shared branches.
var (
	apiBrowsePerson = spacedAPI{
		personal: "SYNO.Foto.Browse.Person",
		shared:   "SYNO.FotoTeam.Browse.Person",
	}
	apiBrowseFolder = spacedAPI{
		personal: "SYNO.Foto.Browse.Folder",
		shared:   "SYNO.FotoTeam.Browse.Folder",
	}
	apiTaskFile = spacedAPI{
		personal: "SYNO.Foto.BackgroundTask.File",
		shared:   "SYNO.FotoTeam.BackgroundTask.File",
	}
)
