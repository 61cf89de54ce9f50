package inkwell

import "time"

// Category groups articles under a display name. The numeric ID is the stable
// identity articles reference; Name is unique but mutable via RenameCategory.
type Category struct {
	ID   int64
	Name string
}

// Article is the core content type stored in SQLite. Category carries the
// display name of the owning category as of read time; DatePosted is set once
// on creation and survives every edit.
type Article struct {
	ID         int64
	Title      string
	Content    string
	Category   string
	DatePosted time.Time
}

// ArticleView is an Article prepared for rendering: ReadableDate is the
// human-readable posting date and Excerpt the first words of the content.
// Both are derived at read time and never stored.
type ArticleView struct {
	Article
	ReadableDate string
	Excerpt      string
}

// Image is metadata for an uploaded image in the static uploads directory.
type Image struct {
	Filename string
	Size     int64
	URL      string
}
