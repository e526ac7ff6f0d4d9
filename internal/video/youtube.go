package video

import (
	"regexp"
	"strings"
)

// IDLength is the fixed length of a YouTube video identifier.
const IDLength = 11

var (
	idPattern  = regexp.MustCompile(`^.*(youtu\.be/|v/|u/\w/|embed/|watch\?v=|\?v=|&v=)([^#&?]*).*`)
	urlPattern = regexp.MustCompile(`^(https?://)?(www\.)?(youtube\.com|youtu\.?be)/.+$`)
)

// ResolveID extracts the video identifier from a stored YouTube URL.
// It reports false for an empty URL, an unrecognised shape, or a capture
// that is not exactly IDLength characters.
func ResolveID(rawURL string) (string, bool) {
	rawURL = strings.TrimSpace(rawURL)
	if rawURL == "" {
		return "", false
	}
	m := idPattern.FindStringSubmatch(rawURL)
	if m == nil || len(m[2]) != IDLength {
		return "", false
	}
	return m[2], true
}

// IsYouTubeURL is the admin-side check applied before a video lesson is saved.
func IsYouTubeURL(rawURL string) bool {
	return urlPattern.MatchString(strings.TrimSpace(rawURL))
}

func EmbedURL(id string) string {
	return "https://www.youtube.com/embed/" + id
}

func ThumbnailURL(id string) string {
	return "https://img.youtube.com/vi/" + id + "/hqdefault.jpg"
}
