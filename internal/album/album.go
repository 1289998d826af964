// Package album models the album variants of the Photos API and resolves an
// album by name across the disjoint collections an account can see.
package album

import (
	"strconv"

	"github.com/dsmtools/syno-photos-util/internal/syno"
)

// Album is a resolved album of any variant. The identification parameter for
// item queries differs per variant, so it is exposed as a key/value pair.
type Album interface {
	Name() string
	ItemCount() int
	// IDParam returns the request parameter identifying the album in item
	// queries. Never empty for a resolved album.
	IDParam() (key, value string)
}

// Normal is a regular album, owned or shared with the account. A shared
// album is identified by its passphrase instead of its id.
type Normal struct {
	Album syno.Album
}

func (a Normal) Name() string   { return a.Album.Name }
func (a Normal) ItemCount() int { return a.Album.ItemCount }

func (a Normal) IDParam() (string, string) {
	if a.Album.Passphrase != "" {
		return "passphrase", a.Album.Passphrase
	}

	return "album_id", strconv.Itoa(a.Album.ID)
}

// PersonAlbum is an automatically generated "people" album, living in either
// the Personal or the Shared Space person collection.
type PersonAlbum struct {
	Person syno.Person
	Space  syno.Space
}

func (a PersonAlbum) Name() string   { return a.Person.Name }
func (a PersonAlbum) ItemCount() int { return a.Person.ItemCount }

func (a PersonAlbum) IDParam() (string, string) {
	return "person_id", strconv.Itoa(a.Person.ID)
}
