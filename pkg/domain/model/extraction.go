package model

// PostType discriminates the kind of asset an extraction returned
type PostType string

const (
	PostTypeSlideshow PostType = "slideshow"
	PostTypeVideo     PostType = "video"
	PostTypeUnknown   PostType = "unknown"
)

// ExtractionResult is the metadata and asset URLs returned by the extraction
// backend for a single post
type ExtractionResult struct {
	ID        string   `json:"id,omitempty"`
	Author    string   `json:"author"`
	Title     string   `json:"title"`
	Thumbnail string   `json:"thumbnail,omitempty"`
	Type      PostType `json:"type"`
	Images    []string `json:"images"`
	Video     string   `json:"video,omitempty"`
	Music     string   `json:"music,omitempty"`
}

// IsSlideshow reports whether the post is an image slideshow
func (r *ExtractionResult) IsSlideshow() bool {
	return r != nil && r.Type == PostTypeSlideshow
}

// HasImages reports whether the result carries at least one image URL
func (r *ExtractionResult) HasImages() bool {
	return r != nil && len(r.Images) > 0
}

// HasVideo reports whether the result carries a single video URL
func (r *ExtractionResult) HasVideo() bool {
	return r != nil && r.Video != ""
}
