package store

import (
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gitlab.com/dirk.krummacker/contacts-desk/internal/model"
)

// openTestStore creates a fresh database file in a temporary directory.
func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "contacts.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

// TestCreateAndListRoundTrip checks that a created contact comes back from
// List with the id the database assigned and every field intact.
func TestCreateAndListRoundTrip(t *testing.T) {
	s := openTestStore(t)

	created, err := s.Create(model.Fields{
		Name:    "Ann",
		Email:   "ann@example.com",
		Phone:   "555-0100",
		Company: "Acme",
		Tags:    "vip, friend",
		Notes:   "met at the conference",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), created.Id)
	assert.False(t, created.CreatedAt.IsZero())

	contacts, err := s.List("")
	require.NoError(t, err)
	require.Len(t, contacts, 1)
	got := contacts[0]
	assert.Equal(t, created.Id, got.Id)
	assert.Equal(t, "Ann", got.Name)
	assert.Equal(t, "ann@example.com", got.Email)
	assert.Equal(t, "555-0100", got.Phone)
	assert.Equal(t, "Acme", got.Company)
	assert.Equal(t, "vip, friend", got.Tags)
	assert.Equal(t, "met at the conference", got.Notes)
	assert.WithinDuration(t, created.CreatedAt, got.CreatedAt, time.Second)
}

// TestListOrder checks that contacts come back in insertion order.
func TestListOrder(t *testing.T) {
	s := openTestStore(t)

	for _, name := range []string{"Zoe", "Ann", "Mia"} {
		_, err := s.Create(model.Fields{Name: name})
		require.NoError(t, err)
	}

	contacts, err := s.List("")
	require.NoError(t, err)
	require.Len(t, contacts, 3)
	assert.Equal(t, "Zoe", contacts[0].Name)
	assert.Equal(t, "Ann", contacts[1].Name)
	assert.Equal(t, "Mia", contacts[2].Name)
}

// TestUpdatePreservesIdentity checks that an update replaces the field set
// but never touches the id or the creation timestamp.
func TestUpdatePreservesIdentity(t *testing.T) {
	s := openTestStore(t)

	created, err := s.Create(model.Fields{Name: "Ann", Email: "ann@example.com"})
	require.NoError(t, err)

	updated, err := s.Update(created.Id, model.Fields{
		Name:  "Ann K.",
		Email: "ann.k@example.com",
		Notes: "changed",
	})
	require.NoError(t, err)
	assert.Equal(t, created.Id, updated.Id)
	assert.Equal(t, "Ann K.", updated.Name)
	assert.Equal(t, "ann.k@example.com", updated.Email)
	assert.Equal(t, "changed", updated.Notes)
	assert.WithinDuration(t, created.CreatedAt, updated.CreatedAt, time.Second)

	// A field omitted from the update payload is cleared, not kept.
	assert.Equal(t, "", updated.Phone)
}

// TestUpdateSameFields checks that re-submitting an unchanged field set
// leaves the row identical, including the creation timestamp.
func TestUpdateSameFields(t *testing.T) {
	s := openTestStore(t)

	f := model.Fields{Name: "Ann", Email: "ann@example.com", Phone: "555-0100"}
	created, err := s.Create(f)
	require.NoError(t, err)

	updated, err := s.Update(created.Id, f)
	require.NoError(t, err)
	assert.Equal(t, created.Id, updated.Id)
	assert.Equal(t, f, updated.Fields())
	assert.WithinDuration(t, created.CreatedAt, updated.CreatedAt, time.Second)
}

// TestUpdateMissing checks that updating a deleted contact reports not found
// and leaves the store unchanged.
func TestUpdateMissing(t *testing.T) {
	s := openTestStore(t)

	created, err := s.Create(model.Fields{Name: "Ann"})
	require.NoError(t, err)
	require.NoError(t, s.Delete(created.Id))

	_, err = s.Update(created.Id, model.Fields{Name: "Ann K."})
	assert.ErrorIs(t, err, ErrNotFound)

	contacts, err := s.List("")
	require.NoError(t, err)
	assert.Empty(t, contacts)
}

// TestDeleteIdempotent checks that deleting the same id twice is harmless.
func TestDeleteIdempotent(t *testing.T) {
	s := openTestStore(t)

	created, err := s.Create(model.Fields{Name: "Ann"})
	require.NoError(t, err)

	assert.NoError(t, s.Delete(created.Id))
	assert.NoError(t, s.Delete(created.Id))

	contacts, err := s.List("")
	require.NoError(t, err)
	assert.Empty(t, contacts)
}

// TestDeleteMany checks bulk deletion, including ids that are already gone.
func TestDeleteMany(t *testing.T) {
	s := openTestStore(t)

	var ids []int64
	for _, name := range []string{"Ann", "Bob", "Cleo"} {
		c, err := s.Create(model.Fields{Name: name})
		require.NoError(t, err)
		ids = append(ids, c.Id)
	}

	deleted, err := s.DeleteMany([]int64{ids[0], ids[2], 999})
	require.NoError(t, err)
	assert.Equal(t, int64(2), deleted)

	contacts, err := s.List("")
	require.NoError(t, err)
	require.Len(t, contacts, 1)
	assert.Equal(t, "Bob", contacts[0].Name)

	deleted, err = s.DeleteMany(nil)
	require.NoError(t, err)
	assert.Zero(t, deleted)
}

// TestSearch checks the case-insensitive substring match across the five
// searchable fields. Notes are deliberately not searched.
func TestSearch(t *testing.T) {
	s := openTestStore(t)

	seed := []model.Fields{
		{Name: "Ann Lee", Email: "ann@acme.com", Phone: "555-0100", Company: "Acme", Tags: "vip"},
		{Name: "Bob Roe", Email: "bob@globex.io", Phone: "555-0200", Company: "Globex", Tags: "client"},
		{Name: "Cleo Fox", Email: "cleo@initech.dev", Phone: "777-0300", Company: "Initech", Tags: "", Notes: "mentions acme here"},
	}
	for _, f := range seed {
		_, err := s.Create(f)
		require.NoError(t, err)
	}

	names := func(term string) []string {
		t.Helper()
		contacts, err := s.List(term)
		require.NoError(t, err)
		var out []string
		for _, c := range contacts {
			out = append(out, c.Name)
		}
		return out
	}

	assert.Equal(t, []string{"Ann Lee"}, names("ANN"))
	assert.Equal(t, []string{"Ann Lee"}, names("aCmE"))
	assert.Equal(t, []string{"Bob Roe"}, names("globex.io"))
	assert.Equal(t, []string{"Ann Lee", "Bob Roe"}, names("555"))
	assert.Equal(t, []string{"Bob Roe"}, names("client"))
	assert.Empty(t, names("zzz"))

	// The term matches literally: LIKE metacharacters have no effect.
	assert.Empty(t, names("%"))
	assert.Empty(t, names("a_n"))
}

// TestEditScenario walks the full lifecycle: create, find by search, rename,
// confirm the rename is visible under the new name only, then delete.
func TestEditScenario(t *testing.T) {
	s := openTestStore(t)

	ann, err := s.Create(model.Fields{Name: "Ann", Email: "ann@example.com"})
	require.NoError(t, err)
	_, err = s.Create(model.Fields{Name: "Bob"})
	require.NoError(t, err)

	found, err := s.List("ann")
	require.NoError(t, err)
	require.Len(t, found, 1)

	f := found[0].Fields()
	f.Name = "Ann K."
	_, err = s.Update(found[0].Id, f)
	require.NoError(t, err)

	renamed, err := s.List("Ann K.")
	require.NoError(t, err)
	require.Len(t, renamed, 1)
	assert.Equal(t, ann.Id, renamed[0].Id)
	assert.Equal(t, "ann@example.com", renamed[0].Email)

	require.NoError(t, s.Delete(ann.Id))
	remaining, err := s.List("")
	require.NoError(t, err)
	require.Len(t, remaining, 1)
	assert.Equal(t, "Bob", remaining[0].Name)
}

// TestOpenMigratesOldFile checks that a database file created before the
// company, tags and notes columns existed is upgraded in place without
// losing rows.
func TestOpenMigratesOldFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "contacts.db")

	old, err := sql.Open("sqlite", "file:"+path)
	require.NoError(t, err)
	_, err = old.Exec(`
		CREATE TABLE contacts (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL,
			email TEXT NOT NULL DEFAULT '',
			phone TEXT NOT NULL DEFAULT '',
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`)
	require.NoError(t, err)
	_, err = old.Exec(`INSERT INTO contacts (name, email) VALUES ('Ann', 'ann@example.com')`)
	require.NoError(t, err)
	require.NoError(t, old.Close())

	s, err := Open(path)
	require.NoError(t, err)
	defer s.Close()

	contacts, err := s.List("")
	require.NoError(t, err)
	require.Len(t, contacts, 1)
	assert.Equal(t, "Ann", contacts[0].Name)
	assert.Equal(t, "", contacts[0].Company)
	assert.Equal(t, "", contacts[0].Tags)
	assert.Equal(t, "", contacts[0].Notes)

	// The upgraded file accepts writes to the new columns.
	updated, err := s.Update(contacts[0].Id, model.Fields{
		Name: "Ann", Email: "ann@example.com", Company: "Acme",
	})
	require.NoError(t, err)
	assert.Equal(t, "Acme", updated.Company)
}

// TestOpenTwice checks that reopening an existing file keeps its contents.
func TestOpenTwice(t *testing.T) {
	path := filepath.Join(t.TempDir(), "contacts.db")

	s, err := Open(path)
	require.NoError(t, err)
	_, err = s.Create(model.Fields{Name: "Ann"})
	require.NoError(t, err)
	require.NoError(t, s.Close())

	s, err = Open(path)
	require.NoError(t, err)
	defer s.Close()

	contacts, err := s.List("")
	require.NoError(t, err)
	require.Len(t, contacts, 1)
	assert.Equal(t, "Ann", contacts[0].Name)
}

// TestEscapeLike pins the metacharacter escaping used by List.
func TestEscapeLike(t *testing.T) {
	assert.Equal(t, `100\%`, escapeLike("100%"))
	assert.Equal(t, `a\_b`, escapeLike("a_b"))
	assert.Equal(t, `c:\\temp`, escapeLike(`c:\temp`))
	assert.Equal(t, "plain", escapeLike("plain"))
}
