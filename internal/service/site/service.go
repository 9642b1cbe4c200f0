package site

import (
	"fmt"
	"strings"
	"time"

	"github.com/sbochoun/folio/internal/model"
)

type Store interface {
	ListProjectsByStatus(status model.ProjectStatus) ([]model.Project, error)
	CreateContact(contact *model.Contact) error
}

var pages = map[string]model.PageMeta{
	"home": {
		Title:       "Home",
		Description: "Full Stack Developer & Civil Engineer Portfolio - Sanya Bochoun",
		Keywords:    "full stack developer, civil engineer, portfolio, web development, bangkok",
		CurrentPage: "home",
		BodyClass:   "index-page",
	},
	"about": {
		Title:       "About Me",
		Description: "Learn more about Sanya Bochoun - Full Stack Developer and Civil Engineer with 5+ years experience",
		Keywords:    "about, full stack developer, civil engineer, skills, experience",
		CurrentPage: "about",
		BodyClass:   "about-page",
	},
	"resume": {
		Title:       "Resume",
		Description: "Professional resume and work experience of Sanya Bochoun - Full Stack Developer & Civil Engineer",
		Keywords:    "resume, cv, experience, education, certifications, skills",
		CurrentPage: "resume",
		BodyClass:   "resume-page",
	},
	"portfolio": {
		Title:       "Portfolio",
		Description: "View my latest projects and portfolio showcasing web development, mobile apps, and engineering solutions",
		Keywords:    "portfolio, projects, web development, mobile apps, engineering, examples",
		CurrentPage: "portfolio",
		BodyClass:   "portfolio-page",
	},
	"services": {
		Title:       "Services",
		Description: "Professional web development, mobile app development, and engineering consulting services",
		Keywords:    "services, web development, mobile app, consulting, packages, pricing",
		CurrentPage: "services",
		BodyClass:   "services-page",
	},
	"contact": {
		Title:       "Contact",
		Description: "Get in touch with Sanya Bochoun for your next project. Free consultation and quotes available",
		Keywords:    "contact, consultation, quote, project, hire developer",
		CurrentPage: "contact",
		BodyClass:   "contact-page",
	},
	"404": {
		Title:       "404 - Page Not Found",
		Description: "Sorry, the page you are looking for could not be found.",
		Keywords:    "404, not found, error",
		CurrentPage: "404",
		BodyClass:   "error-page",
	},
}

type service struct {
	store Store
	now   func() time.Time
}

func New(store Store) *service {
	return &service{store: store, now: time.Now}
}

// PageMeta returns the metadata for a public page, falling back to the 404
// metadata for unknown names.
func (s *service) PageMeta(name string) model.PageMeta {
	if meta, ok := pages[name]; ok {
		return meta
	}
	return pages["404"]
}

// PublishedProjects lists the projects visible on the public portfolio page,
// ordered by display order ascending then newest first.
func (s *service) PublishedProjects() ([]model.Project, error) {
	return s.store.ListProjectsByStatus(model.ProjectStatusPublished)
}

// SubmitContact validates the contact form and persists a new unread
// contact. Nothing is persisted on validation failure.
func (s *service) SubmitContact(submission model.ContactSubmission) (*model.Contact, error) {
	name := strings.TrimSpace(submission.Name)
	email := strings.TrimSpace(submission.Email)
	subject := strings.TrimSpace(submission.Subject)
	message := strings.TrimSpace(submission.Message)

	if name == "" {
		return nil, model.Invalid("name", "required")
	}
	if email == "" {
		return nil, model.Invalid("email", "required")
	}
	if subject == "" {
		return nil, model.Invalid("subject", "required")
	}
	if message == "" {
		return nil, model.Invalid("message", "required")
	}

	contact := &model.Contact{
		ID:        model.CreateID(),
		CreatedAt: s.now().UTC(),
		Name:      name,
		Email:     strings.ToLower(email),
		Subjects:  subject,
		Message:   message,
		Status:    model.ContactStatusUnread,
	}

	if err := s.store.CreateContact(contact); err != nil {
		return nil, fmt.Errorf("saving contact: %w", err)
	}

	return contact, nil
}
