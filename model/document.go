package model

// Document is one resume as read from the corpus directory.
// ID is the filename, which is unique within a corpus.
type Document struct {
	ID      string `json:"id"`
	Content string `json:"content"`
}
