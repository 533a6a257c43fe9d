package model

// GalleryItem is one rendered slideshow image with its proxy download link
type GalleryItem struct {
	Index       int    `json:"index"`
	ImageURL    string `json:"image_url"`
	Filename    string `json:"filename"`
	DownloadURL string `json:"download_url"`
}

// View is the rendered result panel
type View struct {
	Author    string `json:"author"`
	Title     string `json:"title"`
	Thumbnail string `json:"thumbnail,omitempty"`

	ShowGallery bool          `json:"show_gallery"`
	Gallery     []GalleryItem `json:"gallery,omitempty"`

	ShowVideo bool   `json:"show_video"`
	VideoURL  string `json:"video_url,omitempty"`

	ShowAudio bool `json:"show_audio"`
	ShowZip   bool `json:"show_zip"`

	// Error is set when nothing could be rendered for the current mode
	Error string `json:"error,omitempty"`
}

// Visible reports whether the result panel should be revealed
func (v *View) Visible() bool {
	return v != nil && v.Error == ""
}

// Trigger is the state of a button-like control that starts an operation
type Trigger struct {
	Label    string `json:"label"`
	InFlight bool   `json:"in_flight"`
}

// UIState is everything the page kept outside of the session state
type UIState struct {
	Input        string  `json:"input"`
	PanelVisible bool    `json:"panel_visible"`
	Error        string  `json:"error,omitempty"`
	Loading      bool    `json:"loading"`
	Zip          Trigger `json:"zip"`
	Convert      Trigger `json:"convert"`
	Alert        string  `json:"alert,omitempty"`
	Revision     int     `json:"revision"`
}

// Screen is an immutable snapshot handed to presenters
type Screen struct {
	Session Session `json:"session"`
	UI      UIState `json:"ui"`
	View    *View   `json:"view,omitempty"`
}
