package inkpress

// Post is the core content record: Jekyll-style front-matter fields plus the
// markdown body. The slug doubles as the stable identifier and is derived
// from the publication date and the slugified title, e.g.
// "2021-10-29-background-jobs-in-rails".
type Post struct {
	Slug        string
	Layout      string
	Title       string
	Date        string // ISO calendar date, YYYY-MM-DD
	Description string
	Img         string
	Tags        []string
	Body        string
	Link        string
	Published   bool
}

// Image is the metadata record for an uploaded image referenced by the
// front-matter img field.
type Image struct {
	Filename     string
	OriginalName string
	Width        int
	Height       int
	Size         int
	UploadedAt   string
}

// PageMeta carries per-page OpenGraph and SEO metadata into the <head> template.
type PageMeta struct {
	Title       string
	Description string
	URL         string // canonical + og:url
	OGType      string // "website" or "article"
}
