package usecase

import (
	"strconv"

	"github.com/tiksnap/tiksnap/pkg/domain/model"
	"github.com/tiksnap/tiksnap/pkg/utils/filename"
)

// LinkFunc builds the proxy download link of a single asset
type LinkFunc func(assetURL, filename string) string

// ImageFilename returns the per-item save name of the image at a 0-based index
func ImageFilename(title string, index int) string {
	return filename.Sanitize(title) + "_" + strconv.Itoa(index+1) + ".jpg"
}

// ZipFilename returns the save name of the bulk archive
func ZipFilename(title string) string {
	return filename.Sanitize(title) + ".zip"
}

// Render builds the result panel for a session. It has no side effects and
// accepts any session, including one without a result.
func Render(s model.Session, link LinkFunc) *model.View {
	result := s.Result
	if result == nil {
		result = &model.ExtractionResult{}
	}

	view := &model.View{
		Author:    result.Author,
		Title:     result.Title,
		Thumbnail: result.Thumbnail,
	}

	switch s.Mode {
	case model.ModeAudio:
		// Conversion only needs the source URL, so the asset type is not checked
		view.ShowAudio = true

	default:
		switch {
		case result.IsSlideshow() && result.HasImages():
			view.ShowGallery = true
			view.ShowZip = true
			view.Gallery = make([]model.GalleryItem, 0, len(result.Images))
			for i, imgURL := range result.Images {
				name := ImageFilename(result.Title, i)
				item := model.GalleryItem{
					Index:    i,
					ImageURL: imgURL,
					Filename: name,
				}
				if link != nil {
					item.DownloadURL = link(imgURL, name)
				}
				view.Gallery = append(view.Gallery, item)
			}

		case result.HasVideo():
			view.ShowVideo = true
			view.VideoURL = result.Video

		default:
			view.Error = msgNoImages
		}
	}

	return view
}
