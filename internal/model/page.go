package model

// PageMeta carries the per-route metadata handed to the layout template.
type PageMeta struct {
	Title       string
	Description string
	Keywords    string
	CurrentPage string
	BodyClass   string
}
