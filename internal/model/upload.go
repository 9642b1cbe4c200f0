package model

import "time"

// UploadedFile describes an image stored under the public upload directory.
type UploadedFile struct {
	Filename     string    `json:"filename"`
	OriginalName string    `json:"originalname,omitempty"`
	Path         string    `json:"path"`
	URL          string    `json:"url"`
	Size         int64     `json:"size"`
	Modified     time.Time `json:"modified"`
}
