package entity

// Source identifies the publisher an article came from.
// ID is optional; the upstream provider leaves it empty for many publishers.
type Source struct {
	ID   string
	Name string
}
