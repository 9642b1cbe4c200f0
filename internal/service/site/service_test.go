package site

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/sbochoun/folio/internal/boot"
	"github.com/sbochoun/folio/internal/contentstore"
	"github.com/sbochoun/folio/internal/model"
)

func newTestService(t *testing.T) (*service, *contentstore.Store) {
	t.Helper()
	config := &boot.Config{DataDirectory: t.TempDir()}
	store, err := contentstore.Open(config)
	if err != nil {
		t.Fatalf("opening store: %+v", err)
	}
	t.Cleanup(func() { store.Close() })
	return New(store), store
}

func TestPageMeta(t *testing.T) {
	assert := assert.New(t)
	service, _ := newTestService(t)

	t.Run("known pages have their own metadata", func(t *testing.T) {
		meta := service.PageMeta("portfolio")
		assert.Equal("Portfolio", meta.Title)
		assert.Equal("portfolio-page", meta.BodyClass)
	})

	t.Run("unknown pages fall back to the 404 metadata", func(t *testing.T) {
		meta := service.PageMeta("nonsense")
		assert.Equal("404", meta.CurrentPage)
	})
}

func TestPublishedProjects(t *testing.T) {
	assert := assert.New(t)
	service, store := newTestService(t)

	base := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	add := func(id string, order int, createdAt time.Time, status model.ProjectStatus) {
		err := store.CreateProject(&model.Project{
			ID:          id,
			CreatedAt:   createdAt,
			UpdatedAt:   createdAt,
			Title:       "Project " + id,
			Description: "description",
			Technologies: model.Technologies{
				ProjectType: model.ProjectTypeWebsite,
			},
			ProjectLinks: model.ProjectLinks{
				Github:   "https://github.com/example/" + id,
				LiveDemo: "https://example.com/" + id,
			},
			Status: status,
			Order:  order,
		})
		assert.Nil(err)
	}

	add("draft", 0, base, model.ProjectStatusDraft)
	add("hidden", 0, base, model.ProjectStatusHidden)
	add("old", 1, base, model.ProjectStatusPublished)
	add("new", 1, base.Add(time.Hour), model.ProjectStatusPublished)
	add("first", 0, base, model.ProjectStatusPublished)

	projects, err := service.PublishedProjects()
	assert.Nil(err)

	ids := []string{}
	for _, p := range projects {
		ids = append(ids, p.ID)
	}
	assert.Equal([]string{"first", "new", "old"}, ids)
}

func TestSubmitContact(t *testing.T) {
	assert := assert.New(t)
	service, store := newTestService(t)

	t.Run("a valid submission persists an unread contact", func(t *testing.T) {
		contact, err := service.SubmitContact(model.ContactSubmission{
			Name:    "  Visitor ",
			Email:   "Visitor@Example.com",
			Subject: "Project inquiry",
			Message: "Can you build a website?",
		})
		assert.Nil(err)
		assert.Equal(model.ContactStatusUnread, contact.Status)
		assert.Equal("Visitor", contact.Name)
		assert.Equal("visitor@example.com", contact.Email)

		stored, err := store.GetContact(contact.ID)
		assert.Nil(err)
		assert.Equal("Project inquiry", stored.Subjects)
	})

	t.Run("missing fields reject the submission without persisting", func(t *testing.T) {
		before, err := store.CountContacts()
		assert.Nil(err)

		for _, submission := range []model.ContactSubmission{
			{Email: "a@b.c", Subject: "s", Message: "m"},
			{Name: "n", Subject: "s", Message: "m"},
			{Name: "n", Email: "a@b.c", Message: "m"},
			{Name: "n", Email: "a@b.c", Subject: "s"},
		} {
			_, err := service.SubmitContact(submission)
			var verr *model.ValidationError
			assert.True(errors.As(err, &verr))
		}

		after, err := store.CountContacts()
		assert.Nil(err)
		assert.Equal(before, after)
	})
}
