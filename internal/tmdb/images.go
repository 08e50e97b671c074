package tmdb

// ImageBaseURL is the TMDB image CDN root.
const ImageBaseURL = "https://image.tmdb.org/t/p/"

// PlaceholderImage is returned for movies without artwork.
const PlaceholderImage = "/placeholder-movie.jpg"

// ImageSize is a TMDB image rendition.
type ImageSize string

const (
	SizeW200     ImageSize = "w200"
	SizeW300     ImageSize = "w300"
	SizeW500     ImageSize = "w500"
	SizeW780     ImageSize = "w780"
	SizeOriginal ImageSize = "original"
)

// ImageURL builds the CDN URL for path at size. A nil or empty path yields
// PlaceholderImage and an unknown size falls back to w500.
func ImageURL(path *string, size ImageSize) string {
	if path == nil || *path == "" {
		return PlaceholderImage
	}
	switch size {
	case SizeW200, SizeW300, SizeW500, SizeW780, SizeOriginal:
	default:
		size = SizeW500
	}
	return ImageBaseURL + string(size) + *path
}
