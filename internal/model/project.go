package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

type ProjectStatus string

const (
	ProjectStatusDraft     ProjectStatus = "draft"
	ProjectStatusPublished ProjectStatus = "published"
	ProjectStatusHidden    ProjectStatus = "hidden"
)

func (s ProjectStatus) Valid() bool {
	switch s {
	case ProjectStatusDraft, ProjectStatusPublished, ProjectStatusHidden:
		return true
	}
	return false
}

type ProjectType string

const (
	ProjectTypeApp       ProjectType = "app"
	ProjectTypeWebsite   ProjectType = "website"
	ProjectTypeMobileApp ProjectType = "mobileapp"
)

func (t ProjectType) Valid() bool {
	switch t {
	case ProjectTypeApp, ProjectTypeWebsite, ProjectTypeMobileApp:
		return true
	}
	return false
}

var KnownFrameworks = map[string]bool{
	"react":       true,
	"nextjs":      true,
	"aspnet":      true,
	"reactnative": true,
	"django":      true,
	"ejs":         true,
}

var KnownLanguages = map[string]bool{
	"javascript": true,
	"typescript": true,
	"nodejs":     true,
	"csharp":     true,
	"python":     true,
	"go":         true,
	"bun":        true,
}

// StringList is an ordered list of strings persisted as a JSON text column.
type StringList []string

func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		l = StringList{}
	}
	data, err := json.Marshal(l)
	if err != nil {
		return nil, fmt.Errorf("marshalling string list: %w", err)
	}
	return string(data), nil
}

func (l *StringList) Scan(src interface{}) error {
	var data []byte
	switch v := src.(type) {
	case nil:
		*l = StringList{}
		return nil
	case string:
		data = []byte(v)
	case []byte:
		data = v
	default:
		return fmt.Errorf("scanning string list: unsupported type %T", src)
	}
	if len(data) == 0 {
		*l = StringList{}
		return nil
	}
	return json.Unmarshal(data, l)
}

type Technologies struct {
	Frameworks  StringList  `db:"Frameworks" json:"frameworks"`
	Languages   StringList  `db:"Languages" json:"languages"`
	ProjectType ProjectType `db:"ProjectType" json:"projectType"`
}

type ProjectLinks struct {
	Github   string `db:"GithubURL" json:"github"`
	LiveDemo string `db:"LiveDemoURL" json:"liveDemo"`
}

type Project struct {
	ID            string        `db:"ID" json:"id"`
	CreatedAt     time.Time     `db:"CreatedAt" json:"createdAt"`
	UpdatedAt     time.Time     `db:"UpdatedAt" json:"updatedAt"`
	Title         string        `db:"Title" json:"title"`
	Description   string        `db:"Description" json:"description"`
	MainImage     string        `db:"MainImage" json:"mainImage"`
	GalleryImages StringList    `db:"GalleryImages" json:"galleryImages"`
	Technologies  `json:"technologies"`
	ProjectLinks  `json:"links"`
	Status        ProjectStatus `db:"Status" json:"status"`
	Order         int           `db:"SortOrder" json:"order"`
}
