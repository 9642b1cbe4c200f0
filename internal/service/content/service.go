package content

import (
	"fmt"
	"strings"
	"time"

	"github.com/labstack/gommon/log"
	"github.com/sbochoun/folio/internal/model"
)

// Store is the slice of the content store this service depends on.
type Store interface {
	CreateProject(project *model.Project) error
	UpdateProject(project *model.Project) error
	GetProject(id string) (*model.Project, error)
	ListProjects() ([]model.Project, error)
	RecentProjects(limit int) ([]model.Project, error)
	DeleteProject(id string) error
	DeleteProjects(ids []string) (int64, error)
	CountProjects() (int, error)
	CountProjectsByStatus(status model.ProjectStatus) (int, error)

	GetContact(id string) (*model.Contact, error)
	ListContacts() ([]model.Contact, error)
	RecentContacts(limit int) ([]model.Contact, error)
	UpdateContactStatus(id string, status model.ContactStatus) error
	RecordReply(id string, reply string, at time.Time) error
	DeleteContact(id string) error
	DeleteContacts(ids []string) (int64, error)
	CountContacts() (int, error)
	CountContactsByStatus(status model.ContactStatus) (int, error)
}

// Mailer delivers the reply notification. Failures are logged, never
// propagated: the persisted reply is the operation, the email is a courtesy.
type Mailer interface {
	SendReply(to, name, subject, reply, original string) error
}

// ProjectInput is the raw admin form payload before normalization. Multi
// value fields arrive as slices because the form can post the same name more
// than once.
type ProjectInput struct {
	Title         string
	Description   string
	MainImage     []string
	GalleryImages []string
	Frameworks    []string
	Languages     []string
	ProjectType   string
	Github        string
	LiveDemo      string
	Status        string
	Order         int
}

type DashboardStats struct {
	TotalProjects     int
	PublishedProjects int
	DraftProjects     int
	TotalContacts     int
	UnreadContacts    int
}

type service struct {
	store  Store
	mailer Mailer
	now    func() time.Time
}

func New(store Store, mailer Mailer) *service {
	return &service{store: store, mailer: mailer, now: time.Now}
}

func (s *service) ListProjects() ([]model.Project, error) {
	return s.store.ListProjects()
}

func (s *service) GetProject(id string) (*model.Project, error) {
	return s.store.GetProject(id)
}

// UpsertProject normalizes the form payload and creates the project when id
// is empty or the "new" sentinel, otherwise updates it in place.
func (s *service) UpsertProject(id string, input ProjectInput) (*model.Project, error) {
	now := s.now().UTC()

	if id == "" || id == "new" {
		project := &model.Project{
			ID:        model.CreateID(),
			CreatedAt: now,
			UpdatedAt: now,
			Status:    model.ProjectStatusDraft,
		}
		if err := applyInput(project, input); err != nil {
			return nil, err
		}
		if err := s.store.CreateProject(project); err != nil {
			return nil, fmt.Errorf("creating project: %w", err)
		}
		return project, nil
	}

	project, err := s.store.GetProject(id)
	if err != nil {
		return nil, err
	}
	if err := applyInput(project, input); err != nil {
		return nil, err
	}
	project.UpdatedAt = now
	if err := s.store.UpdateProject(project); err != nil {
		return nil, err
	}
	return project, nil
}

func (s *service) DeleteProject(id string) error {
	return s.store.DeleteProject(id)
}

func (s *service) BulkDeleteProjects(ids []string) (int64, error) {
	return s.store.DeleteProjects(ids)
}

func (s *service) ListContacts() ([]model.Contact, error) {
	return s.store.ListContacts()
}

// Reply persists the admin reply and marks the contact replied, then sends
// the notification email best-effort.
func (s *service) Reply(id, replyText string) (*model.Contact, error) {
	if strings.TrimSpace(replyText) == "" {
		return nil, model.Invalid("reply", "must not be empty")
	}

	contact, err := s.store.GetContact(id)
	if err != nil {
		return nil, err
	}

	repliedAt := s.now().UTC()
	if err := s.store.RecordReply(id, replyText, repliedAt); err != nil {
		return nil, err
	}
	contact.AdminReply = replyText
	contact.Status = model.ContactStatusReplied
	contact.RepliedAt = &repliedAt

	if err := s.mailer.SendReply(contact.Email, contact.Name, contact.Subjects, replyText, contact.Message); err != nil {
		log.Errorf("sending reply email to %s: %+v", contact.Email, err)
	}

	return contact, nil
}

func (s *service) SetContactStatus(id string, status model.ContactStatus) error {
	if !status.Valid() {
		return model.Invalid("status", "unknown contact status")
	}
	return s.store.UpdateContactStatus(id, status)
}

func (s *service) DeleteContact(id string) error {
	return s.store.DeleteContact(id)
}

func (s *service) BulkDeleteContacts(ids []string) (int64, error) {
	return s.store.DeleteContacts(ids)
}

func (s *service) Dashboard() (*DashboardStats, []model.Project, []model.Contact, error) {
	stats := &DashboardStats{}
	var err error

	if stats.TotalProjects, err = s.store.CountProjects(); err != nil {
		return nil, nil, nil, err
	}
	if stats.PublishedProjects, err = s.store.CountProjectsByStatus(model.ProjectStatusPublished); err != nil {
		return nil, nil, nil, err
	}
	if stats.DraftProjects, err = s.store.CountProjectsByStatus(model.ProjectStatusDraft); err != nil {
		return nil, nil, nil, err
	}
	if stats.TotalContacts, err = s.store.CountContacts(); err != nil {
		return nil, nil, nil, err
	}
	if stats.UnreadContacts, err = s.store.CountContactsByStatus(model.ContactStatusUnread); err != nil {
		return nil, nil, nil, err
	}

	recentProjects, err := s.store.RecentProjects(5)
	if err != nil {
		return nil, nil, nil, err
	}
	recentContacts, err := s.store.RecentContacts(5)
	if err != nil {
		return nil, nil, nil, err
	}

	return stats, recentProjects, recentContacts, nil
}

// applyInput copies the normalized payload onto project. The main image
// collapses to the last non-empty value, gallery entries and technology
// selections are filtered, enums validated.
func applyInput(project *model.Project, input ProjectInput) error {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return model.Invalid("title", "required")
	}
	description := strings.TrimSpace(input.Description)
	if description == "" {
		return model.Invalid("description", "required")
	}

	projectType := model.ProjectType(strings.TrimSpace(input.ProjectType))
	if !projectType.Valid() {
		return model.Invalid("projectType", "must be one of app, website, mobileapp")
	}

	github := strings.TrimSpace(input.Github)
	if github == "" {
		return model.Invalid("links.github", "required")
	}
	liveDemo := strings.TrimSpace(input.LiveDemo)
	if liveDemo == "" {
		return model.Invalid("links.liveDemo", "required")
	}

	frameworks, err := selection(input.Frameworks, model.KnownFrameworks, "technologies.frameworks")
	if err != nil {
		return err
	}
	languages, err := selection(input.Languages, model.KnownLanguages, "technologies.languages")
	if err != nil {
		return err
	}

	status := project.Status
	if input.Status != "" {
		status = model.ProjectStatus(input.Status)
		if !status.Valid() {
			return model.Invalid("status", "must be one of draft, published, hidden")
		}
	}

	project.Title = title
	project.Description = description
	project.MainImage = collapseMainImage(input.MainImage)
	project.GalleryImages = filterEmpty(input.GalleryImages)
	project.Frameworks = frameworks
	project.Languages = languages
	project.ProjectType = projectType
	project.Github = github
	project.LiveDemo = liveDemo
	project.Status = status
	project.Order = input.Order

	return nil
}

// collapseMainImage reduces a possibly multi-valued form field to the last
// non-empty entry; the stored value is always a scalar.
func collapseMainImage(values []string) string {
	last := ""
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			last = v
		}
	}
	return last
}

func filterEmpty(values []string) model.StringList {
	out := model.StringList{}
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			out = append(out, v)
		}
	}
	return out
}

// selection flattens comma-separated form entries into a clean list and
// checks every value against the known set.
func selection(values []string, known map[string]bool, field string) (model.StringList, error) {
	out := model.StringList{}
	for _, entry := range values {
		for _, v := range strings.Split(entry, ",") {
			v = strings.TrimSpace(v)
			if v == "" {
				continue
			}
			if !known[v] {
				return nil, model.Invalid(field, fmt.Sprintf("unknown value %q", v))
			}
			out = append(out, v)
		}
	}
	return out, nil
}
