package content

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/sbochoun/folio/internal/boot"
	"github.com/sbochoun/folio/internal/contentstore"
	"github.com/sbochoun/folio/internal/model"
)

type fakeMailer struct {
	err   error
	sent  int
	to    string
	reply string
}

func (m *fakeMailer) SendReply(to, name, subject, reply, original string) error {
	m.sent++
	m.to = to
	m.reply = reply
	return m.err
}

func newTestService(t *testing.T, mailer *fakeMailer) (*service, *contentstore.Store) {
	t.Helper()
	config := &boot.Config{DataDirectory: t.TempDir()}
	store, err := contentstore.Open(config)
	if err != nil {
		t.Fatalf("opening store: %+v", err)
	}
	t.Cleanup(func() { store.Close() })
	return New(store, mailer), store
}

func validInput() ProjectInput {
	return ProjectInput{
		Title:       "Portfolio Site",
		Description: "A personal portfolio website",
		MainImage:   []string{"main.jpg"},
		Frameworks:  []string{"nextjs"},
		Languages:   []string{"typescript"},
		ProjectType: "website",
		Github:      "https://github.com/example/site",
		LiveDemo:    "https://example.com",
		Status:      "published",
		Order:       1,
	}
}

func TestUpsertProject(t *testing.T) {
	assert := assert.New(t)
	service, _ := newTestService(t, &fakeMailer{})

	t.Run("multi-valued main image collapses to the last non-empty entry", func(t *testing.T) {
		input := validInput()
		input.MainImage = []string{"", "a.jpg", "b.jpg"}

		project, err := service.UpsertProject("new", input)
		assert.Nil(err)
		assert.Equal("b.jpg", project.MainImage)

		stored, err := service.GetProject(project.ID)
		assert.Nil(err)
		assert.Equal("b.jpg", stored.MainImage)
	})

	t.Run("empty gallery entries are dropped, order preserved", func(t *testing.T) {
		input := validInput()
		input.GalleryImages = []string{"", "one.jpg", " ", "two.jpg"}

		project, err := service.UpsertProject("new", input)
		assert.Nil(err)
		assert.Equal(model.StringList{"one.jpg", "two.jpg"}, project.GalleryImages)
	})

	t.Run("comma separated technology selections are split and validated", func(t *testing.T) {
		input := validInput()
		input.Frameworks = []string{"react, nextjs"}
		input.Languages = []string{"typescript", "go"}

		project, err := service.UpsertProject("new", input)
		assert.Nil(err)
		assert.Equal(model.StringList{"react", "nextjs"}, project.Frameworks)
		assert.Equal(model.StringList{"typescript", "go"}, project.Languages)
	})

	t.Run("unknown framework is rejected", func(t *testing.T) {
		input := validInput()
		input.Frameworks = []string{"angular"}

		_, err := service.UpsertProject("new", input)
		var verr *model.ValidationError
		assert.True(errors.As(err, &verr))
	})

	t.Run("missing required fields are rejected", func(t *testing.T) {
		input := validInput()
		input.Title = "  "
		_, err := service.UpsertProject("new", input)
		var verr *model.ValidationError
		assert.True(errors.As(err, &verr))

		input = validInput()
		input.ProjectType = "desktop"
		_, err = service.UpsertProject("new", input)
		assert.True(errors.As(err, &verr))
	})

	t.Run("update merges onto the stored project", func(t *testing.T) {
		project, err := service.UpsertProject("new", validInput())
		assert.Nil(err)

		input := validInput()
		input.Title = "Renamed"
		input.Status = "hidden"

		updated, err := service.UpsertProject(project.ID, input)
		assert.Nil(err)
		assert.Equal("Renamed", updated.Title)
		assert.Equal(model.ProjectStatusHidden, updated.Status)
		assert.Equal(project.CreatedAt, updated.CreatedAt)
		assert.True(updated.UpdatedAt.After(project.CreatedAt) || updated.UpdatedAt.Equal(project.CreatedAt))
	})

	t.Run("update of a missing id reports not found", func(t *testing.T) {
		_, err := service.UpsertProject("missing", validInput())
		assert.ErrorIs(err, model.ErrProjectNotFound)
	})

	t.Run("bulk delete reports only the removed count", func(t *testing.T) {
		project, err := service.UpsertProject("new", validInput())
		assert.Nil(err)

		deleted, err := service.BulkDeleteProjects([]string{project.ID, "missing"})
		assert.Nil(err)
		assert.Equal(int64(1), deleted)
	})
}

func TestReply(t *testing.T) {
	assert := assert.New(t)

	newContact := func(store *contentstore.Store, id string) {
		err := store.CreateContact(&model.Contact{
			ID:        id,
			CreatedAt: time.Now().UTC(),
			Name:      "Visitor",
			Email:     "visitor@example.com",
			Subjects:  "Project inquiry",
			Message:   "Can you build a website?",
			Status:    model.ContactStatusUnread,
		})
		assert.Nil(err)
	}

	t.Run("reply persists and sends the notification email", func(t *testing.T) {
		mailer := &fakeMailer{}
		service, store := newTestService(t, mailer)
		newContact(store, "c1")

		contact, err := service.Reply("c1", "Yes, happy to help.")
		assert.Nil(err)
		assert.Equal(model.ContactStatusReplied, contact.Status)
		assert.NotNil(contact.RepliedAt)
		assert.Equal(1, mailer.sent)
		assert.Equal("visitor@example.com", mailer.to)
	})

	t.Run("email failure does not roll back the persisted reply", func(t *testing.T) {
		mailer := &fakeMailer{err: errors.New("smtp unavailable")}
		service, store := newTestService(t, mailer)
		newContact(store, "c1")

		contact, err := service.Reply("c1", "Yes, happy to help.")
		assert.Nil(err)
		assert.Equal(model.ContactStatusReplied, contact.Status)

		stored, err := store.GetContact("c1")
		assert.Nil(err)
		assert.Equal(model.ContactStatusReplied, stored.Status)
		assert.Equal("Yes, happy to help.", stored.AdminReply)
		assert.NotNil(stored.RepliedAt)
	})

	t.Run("replying to a missing contact reports not found", func(t *testing.T) {
		mailer := &fakeMailer{}
		service, _ := newTestService(t, mailer)

		_, err := service.Reply("missing", "hello")
		assert.ErrorIs(err, model.ErrContactNotFound)
		assert.Equal(0, mailer.sent)
	})

	t.Run("empty reply is rejected", func(t *testing.T) {
		mailer := &fakeMailer{}
		service, store := newTestService(t, mailer)
		newContact(store, "c1")

		_, err := service.Reply("c1", "   ")
		var verr *model.ValidationError
		assert.True(errors.As(err, &verr))
	})
}

func TestContactStatusAndDashboard(t *testing.T) {
	assert := assert.New(t)
	service, store := newTestService(t, &fakeMailer{})

	err := store.CreateContact(&model.Contact{
		ID:        "c1",
		CreatedAt: time.Now().UTC(),
		Name:      "Visitor",
		Email:     "visitor@example.com",
		Subjects:  "hello",
		Message:   "message",
		Status:    model.ContactStatusUnread,
	})
	assert.Nil(err)

	t.Run("status transitions validate the enum", func(t *testing.T) {
		assert.Nil(service.SetContactStatus("c1", model.ContactStatusRead))

		var verr *model.ValidationError
		err := service.SetContactStatus("c1", model.ContactStatus("archived"))
		assert.True(errors.As(err, &verr))
	})

	t.Run("dashboard aggregates counts and recents", func(t *testing.T) {
		_, err := service.UpsertProject("new", validInput())
		assert.Nil(err)

		stats, recentProjects, recentContacts, err := service.Dashboard()
		assert.Nil(err)
		assert.Equal(1, stats.TotalProjects)
		assert.Equal(1, stats.PublishedProjects)
		assert.Equal(0, stats.DraftProjects)
		assert.Equal(1, stats.TotalContacts)
		assert.Equal(0, stats.UnreadContacts)
		assert.Len(recentProjects, 1)
		assert.Len(recentContacts, 1)
	})
}
