package contentstore

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
	"github.com/sbochoun/folio/internal/boot"
	"github.com/sbochoun/folio/internal/model"
)

// Store persists projects and contact messages in a single sqlite database
// under the configured data directory.
type Store struct {
	db *sqlx.DB
}

func Open(config *boot.Config) (*Store, error) {
	if err := os.MkdirAll(config.DataDirectory, 0o755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbName := path.Join(config.DataDirectory, "portfolio.db")

	isCreating := false
	_, err := os.Stat(dbName)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			isCreating = true
		}
	}

	db, err := sqlx.Connect("sqlite3", "file:"+dbName)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	store := &Store{db}
	if isCreating {
		if err := store.createTables(); err != nil {
			db.Close()
			return nil, fmt.Errorf("creating tables: %w", err)
		}
	}

	return store, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createTables() error {
	_, err := s.db.Exec(`create table project(
		ID            text not null primary key,
		CreatedAt     DATETIME not null,
		UpdatedAt     DATETIME not null,
		Title         text not null,
		Description   text not null,
		MainImage     text not null default '',
		GalleryImages text not null default '[]',
		Frameworks    text not null default '[]',
		Languages     text not null default '[]',
		ProjectType   text not null,
		GithubURL     text not null default '',
		LiveDemoURL   text not null default '',
		Status        text not null default 'draft',
		SortOrder     integer not null default 0
	)`)
	if err != nil {
		return fmt.Errorf("creating project table: %w", err)
	}

	_, err = s.db.Exec(`create table contact(
		ID         text not null primary key,
		CreatedAt  DATETIME not null,
		Name       text not null,
		Email      text not null,
		Subjects   text not null,
		Message    text not null,
		Status     text not null default 'unread',
		AdminReply text not null default '',
		RepliedAt  DATETIME null
	)`)
	if err != nil {
		return fmt.Errorf("creating contact table: %w", err)
	}

	return nil
}

func (s *Store) CreateProject(project *model.Project) error {
	res, err := s.db.NamedExec(`insert into project
		(ID, CreatedAt, UpdatedAt, Title, Description, MainImage, GalleryImages,
		 Frameworks, Languages, ProjectType, GithubURL, LiveDemoURL, Status, SortOrder)
		values(:ID, :CreatedAt, :UpdatedAt, :Title, :Description, :MainImage, :GalleryImages,
		 :Frameworks, :Languages, :ProjectType, :GithubURL, :LiveDemoURL, :Status, :SortOrder)`, project)
	if err != nil {
		return fmt.Errorf("inserting project: %w", err)
	}
	if rows, err := res.RowsAffected(); rows != 1 {
		return fmt.Errorf("expected 1 row to be affected, got %d", rows)
	} else if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}
	return nil
}

func (s *Store) UpdateProject(project *model.Project) error {
	res, err := s.db.NamedExec(`update project set
		UpdatedAt = :UpdatedAt,
		Title = :Title,
		Description = :Description,
		MainImage = :MainImage,
		GalleryImages = :GalleryImages,
		Frameworks = :Frameworks,
		Languages = :Languages,
		ProjectType = :ProjectType,
		GithubURL = :GithubURL,
		LiveDemoURL = :LiveDemoURL,
		Status = :Status,
		SortOrder = :SortOrder
		where ID = :ID`, project)
	if err != nil {
		return fmt.Errorf("updating project: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}
	if rows == 0 {
		return model.ErrProjectNotFound
	}
	return nil
}

func (s *Store) GetProject(id string) (*model.Project, error) {
	project := &model.Project{}
	err := s.db.Get(project, `select * from project where ID = ?`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.ErrProjectNotFound
		}
		return nil, fmt.Errorf("fetching project: %w", err)
	}
	return project, nil
}

// ListProjects returns every project ordered by SortOrder ascending, ties
// broken by most recently created first.
func (s *Store) ListProjects() ([]model.Project, error) {
	projects := []model.Project{}
	err := s.db.Select(&projects, `select * from project order by SortOrder asc, CreatedAt desc`)
	if err != nil {
		return nil, fmt.Errorf("listing projects: %w", err)
	}
	return projects, nil
}

func (s *Store) ListProjectsByStatus(status model.ProjectStatus) ([]model.Project, error) {
	projects := []model.Project{}
	err := s.db.Select(&projects,
		`select * from project where Status = ? order by SortOrder asc, CreatedAt desc`, status)
	if err != nil {
		return nil, fmt.Errorf("listing projects by status: %w", err)
	}
	return projects, nil
}

func (s *Store) RecentProjects(limit int) ([]model.Project, error) {
	projects := []model.Project{}
	err := s.db.Select(&projects, `select * from project order by UpdatedAt desc limit ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("listing recent projects: %w", err)
	}
	return projects, nil
}

func (s *Store) DeleteProject(id string) error {
	res, err := s.db.Exec(`delete from project where ID = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting project: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}
	if rows == 0 {
		return model.ErrProjectNotFound
	}
	return nil
}

// DeleteProjects removes the given ids, skipping any that do not exist, and
// returns the number actually removed.
func (s *Store) DeleteProjects(ids []string) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	query, args, err := sqlx.In(`delete from project where ID in (?)`, ids)
	if err != nil {
		return 0, fmt.Errorf("building bulk delete query: %w", err)
	}
	res, err := s.db.Exec(query, args...)
	if err != nil {
		return 0, fmt.Errorf("bulk deleting projects: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("getting rows affected: %w", err)
	}
	return rows, nil
}

func (s *Store) CountProjects() (int, error) {
	var count int
	err := s.db.Get(&count, `select count(*) from project`)
	if err != nil {
		return 0, fmt.Errorf("counting projects: %w", err)
	}
	return count, nil
}

func (s *Store) CountProjectsByStatus(status model.ProjectStatus) (int, error) {
	var count int
	err := s.db.Get(&count, `select count(*) from project where Status = ?`, status)
	if err != nil {
		return 0, fmt.Errorf("counting projects by status: %w", err)
	}
	return count, nil
}

func (s *Store) CreateContact(contact *model.Contact) error {
	res, err := s.db.NamedExec(`insert into contact
		(ID, CreatedAt, Name, Email, Subjects, Message, Status, AdminReply, RepliedAt)
		values(:ID, :CreatedAt, :Name, :Email, :Subjects, :Message, :Status, :AdminReply, :RepliedAt)`, contact)
	if err != nil {
		return fmt.Errorf("inserting contact: %w", err)
	}
	if rows, err := res.RowsAffected(); rows != 1 {
		return fmt.Errorf("expected 1 row to be affected, got %d", rows)
	} else if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}
	return nil
}

func (s *Store) GetContact(id string) (*model.Contact, error) {
	contact := &model.Contact{}
	err := s.db.Get(contact, `select * from contact where ID = ?`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.ErrContactNotFound
		}
		return nil, fmt.Errorf("fetching contact: %w", err)
	}
	return contact, nil
}

func (s *Store) ListContacts() ([]model.Contact, error) {
	contacts := []model.Contact{}
	err := s.db.Select(&contacts, `select * from contact order by CreatedAt desc`)
	if err != nil {
		return nil, fmt.Errorf("listing contacts: %w", err)
	}
	return contacts, nil
}

func (s *Store) RecentContacts(limit int) ([]model.Contact, error) {
	contacts := []model.Contact{}
	err := s.db.Select(&contacts, `select * from contact order by CreatedAt desc limit ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("listing recent contacts: %w", err)
	}
	return contacts, nil
}

func (s *Store) UpdateContactStatus(id string, status model.ContactStatus) error {
	res, err := s.db.Exec(`update contact set Status = ? where ID = ?`, status, id)
	if err != nil {
		return fmt.Errorf("updating contact status: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}
	if rows == 0 {
		return model.ErrContactNotFound
	}
	return nil
}

func (s *Store) RecordReply(id string, reply string, at time.Time) error {
	res, err := s.db.Exec(`update contact set AdminReply = ?, Status = ?, RepliedAt = ? where ID = ?`,
		reply, model.ContactStatusReplied, at, id)
	if err != nil {
		return fmt.Errorf("recording reply: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}
	if rows == 0 {
		return model.ErrContactNotFound
	}
	return nil
}

func (s *Store) DeleteContact(id string) error {
	res, err := s.db.Exec(`delete from contact where ID = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting contact: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}
	if rows == 0 {
		return model.ErrContactNotFound
	}
	return nil
}

func (s *Store) DeleteContacts(ids []string) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	query, args, err := sqlx.In(`delete from contact where ID in (?)`, ids)
	if err != nil {
		return 0, fmt.Errorf("building bulk delete query: %w", err)
	}
	res, err := s.db.Exec(query, args...)
	if err != nil {
		return 0, fmt.Errorf("bulk deleting contacts: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("getting rows affected: %w", err)
	}
	return rows, nil
}

func (s *Store) CountContacts() (int, error) {
	var count int
	err := s.db.Get(&count, `select count(*) from contact`)
	if err != nil {
		return 0, fmt.Errorf("counting contacts: %w", err)
	}
	return count, nil
}

func (s *Store) CountContactsByStatus(status model.ContactStatus) (int, error) {
	var count int
	err := s.db.Get(&count, `select count(*) from contact where Status = ?`, status)
	if err != nil {
		return 0, fmt.Errorf("counting contacts by status: %w", err)
	}
	return count, nil
}
