// Package store owns the SQLite database file and the contacts table schema.
// It is the only writer of persisted state; the editor talks to it through
// the operations below and nothing else.
package store

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"gitlab.com/dirk.krummacker/contacts-desk/internal/model"
	"gitlab.com/dirk.krummacker/contacts-desk/internal/validate"
)

// ErrNotFound is returned when an operation targets an id that does not
// exist. Delete deliberately does not return it: removing a missing row is a
// no-op, not an error.
var ErrNotFound = errors.New("contact not found")

func init() {
	// The modernc driver registers as "sqlite", which sqlx does not know the
	// placeholder style for out of the box.
	sqlx.BindDriver("sqlite", sqlx.QUESTION)
}

// Store is a handle to the contacts database. Construct one with Open (or New
// in tests), pass it by reference to the editor, and Close it on shutdown.
type Store struct {
	db *sqlx.DB

	// Prepared statements for the hot paths.
	insert        *sqlx.NamedStmt
	update        *sqlx.NamedStmt
	selectWhereId *sqlx.Stmt
	deleteWhereId *sqlx.Stmt
}

// insertRow is the named-parameter payload for the insert statement.
type insertRow struct {
	model.Fields
	CreatedAt time.Time `db:"created_at"`
}

// updateRow is the named-parameter payload for the update statement.
type updateRow struct {
	model.Fields
	Id int64 `db:"id"`
}

// Open opens (creating if absent) the database file at path, ensures the
// contacts table exists with all current columns, and prepares the
// statements. Safe to call on every startup.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
	}
	dsn := "file:" + path + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&_time_format=sqlite"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := ensureSchema(sqlDB); err != nil {
		sqlDB.Close()
		return nil, err
	}
	s, err := New(sqlDB)
	if err != nil {
		sqlDB.Close()
		return nil, err
	}
	return s, nil
}

// New wraps an existing database handle and prepares all statements. The
// handle can be a real database for production use or a mock database within
// unit tests; New does not touch the schema.
func New(sqlDB *sql.DB) (*Store, error) {
	s := &Store{db: sqlx.NewDb(sqlDB, "sqlite")}

	// Prepared statements offer a significant speed increase if executed many
	// times.
	var err error
	s.insert, err = s.db.PrepareNamed(`
		INSERT INTO contacts (name, email, phone, company, tags, notes, created_at)
		VALUES (:name, :email, :phone, :company, :tags, :notes, :created_at)
	`)
	if err != nil {
		return nil, fmt.Errorf("prepare insert: %w", err)
	}
	s.update, err = s.db.PrepareNamed(`
		UPDATE contacts
		SET name = :name, email = :email, phone = :phone,
			company = :company, tags = :tags, notes = :notes
		WHERE id = :id
	`)
	if err != nil {
		return nil, fmt.Errorf("prepare update: %w", err)
	}
	s.selectWhereId, err = s.db.Preparex(`
		SELECT * FROM contacts WHERE id = ?
	`)
	if err != nil {
		return nil, fmt.Errorf("prepare select: %w", err)
	}
	s.deleteWhereId, err = s.db.Preparex(`
		DELETE FROM contacts WHERE id = ?
	`)
	if err != nil {
		return nil, fmt.Errorf("prepare delete: %w", err)
	}
	return s, nil
}

// Close releases the database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// Create validates the name, stamps the creation time from the store's clock,
// persists the row and returns the fully populated contact including the
// newly assigned id. Primary validation is the editor's responsibility; the
// name check here is defense in depth.
func (s *Store) Create(f model.Fields) (model.Contact, error) {
	if err := validate.Name(f.Name); err != nil {
		return model.Contact{}, err
	}
	row := insertRow{Fields: f, CreatedAt: time.Now().UTC()}
	result, err := s.insert.Exec(row)
	if err != nil {
		return model.Contact{}, fmt.Errorf("insert contact: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return model.Contact{}, fmt.Errorf("read inserted id: %w", err)
	}
	return model.Contact{
		Id:        id,
		Name:      f.Name,
		Email:     f.Email,
		Phone:     f.Phone,
		Company:   f.Company,
		Tags:      f.Tags,
		Notes:     f.Notes,
		CreatedAt: row.CreatedAt,
	}, nil
}

// Update replaces the mutable field set of the contact with the given id and
// returns the updated row. Id and created_at are never touched. Returns
// ErrNotFound if the id does not exist; the store is left unchanged.
func (s *Store) Update(id int64, f model.Fields) (model.Contact, error) {
	if err := validate.Name(f.Name); err != nil {
		return model.Contact{}, err
	}
	result, err := s.update.Exec(updateRow{Fields: f, Id: id})
	if err != nil {
		return model.Contact{}, fmt.Errorf("update contact %d: %w", id, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return model.Contact{}, fmt.Errorf("update contact %d: %w", id, err)
	}
	if rowsAffected == 0 {
		return model.Contact{}, ErrNotFound
	}
	return s.byId(id)
}

// Delete removes the contact with the given id. Deleting a missing id is a
// silent no-op, so the operation is idempotent.
func (s *Store) Delete(id int64) error {
	if _, err := s.deleteWhereId.Exec(id); err != nil {
		return fmt.Errorf("delete contact %d: %w", id, err)
	}
	return nil
}

// DeleteMany removes all contacts whose ids appear in the list and returns
// the number of rows actually deleted (which may be smaller than len(ids) if
// some were already gone). An empty list is a no-op.
func (s *Store) DeleteMany(ids []int64) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	query, args, err := sqlx.In("DELETE FROM contacts WHERE id IN (?)", ids)
	if err != nil {
		return 0, fmt.Errorf("build bulk delete: %w", err)
	}
	result, err := s.db.Exec(s.db.Rebind(query), args...)
	if err != nil {
		return 0, fmt.Errorf("bulk delete contacts: %w", err)
	}
	return result.RowsAffected()
}

// List returns contacts ordered by id ascending (insertion order). With a
// non-empty term it returns only contacts where the term appears,
// case-insensitively, as a substring of the name, email, phone, company or
// tags. No matches is an empty result, never an error.
func (s *Store) List(term string) ([]model.Contact, error) {
	contacts := []model.Contact{}
	var err error
	if term == "" {
		err = s.db.Select(&contacts, `SELECT * FROM contacts ORDER BY id`)
	} else {
		like := "%" + escapeLike(term) + "%"
		err = s.db.Select(&contacts, `
			SELECT *
			FROM contacts
			WHERE name LIKE ? ESCAPE '\'
				OR email LIKE ? ESCAPE '\'
				OR phone LIKE ? ESCAPE '\'
				OR company LIKE ? ESCAPE '\'
				OR tags LIKE ? ESCAPE '\'
			ORDER BY id`,
			like, like, like, like, like)
	}
	if err != nil {
		return nil, fmt.Errorf("list contacts: %w", err)
	}
	return contacts, nil
}

// byId fetches a single contact after a successful write.
func (s *Store) byId(id int64) (model.Contact, error) {
	var contacts []model.Contact
	if err := s.selectWhereId.Select(&contacts, id); err != nil {
		return model.Contact{}, fmt.Errorf("select contact %d: %w", id, err)
	}
	if len(contacts) == 0 {
		return model.Contact{}, ErrNotFound
	}
	return contacts[0], nil
}

// escapeLike neutralizes LIKE metacharacters so a search term always matches
// as a literal substring.
func escapeLike(term string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(term)
}
