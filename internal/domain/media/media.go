// Package media derives embeddable player links from verification videos.
package media

import (
	"regexp"
	"strings"
)

var (
	youtubeID = regexp.MustCompile(`.*(?:youtu\.be/|v/|u/\w/|embed/|watch\?v=)([^#&?]*).*`)
	medalID   = regexp.MustCompile(`medal\.tv/clip/([^/?#]+)`)
)

// YouTubeID extracts the video id from any common YouTube link shape.
func YouTubeID(url string) string {
	m := youtubeID.FindStringSubmatch(url)
	if m == nil {
		return ""
	}
	return m[1]
}

// MedalID extracts the clip id from a medal.tv clip link.
func MedalID(url string) string {
	m := medalID.FindStringSubmatch(url)
	if m == nil {
		return ""
	}
	return m[1]
}

// Embed returns a player URL for a video link. Medal clips without an id are
// returned unchanged; everything else is treated as YouTube.
func Embed(url string) string {
	if strings.Contains(url, "medal.tv") {
		if id := MedalID(url); id != "" {
			return "https://medal.tv/clip/" + id + "?embed=true"
		}
		return url
	}
	return "https://www.youtube.com/embed/" + YouTubeID(url)
}

// Thumbnail returns a preview image URL. Medal has no thumbnail endpoint, so
// the clip page is used instead.
func Thumbnail(url string) string {
	if strings.Contains(url, "medal.tv") {
		if id := MedalID(url); id != "" {
			return "https://medal.tv/clip/" + id
		}
		return url
	}
	return "https://img.youtube.com/vi/" + YouTubeID(url) + "/mqdefault.jpg"
}
