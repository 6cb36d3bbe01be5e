// Package ytref reduces a YouTube watch URL to its 11-character video id.
package ytref

import (
	"errors"
	"net/url"
	"regexp"
	"strings"
)

var (
	ErrInvalidURL         = errors.New("invalid url")
	ErrPlaylistNotAllowed = errors.New("playlist urls are not allowed")
	ErrLiveNotAllowed     = errors.New("live urls are not allowed")
	ErrUnsupportedURL     = errors.New("unsupported or invalid youtube url")
)

var videoIDRegex = regexp.MustCompile(`^[a-zA-Z0-9_-]{11}$`)

func Parse(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return "", ErrInvalidURL
	}

	hostname := strings.ToLower(strings.TrimPrefix(u.Hostname(), "www."))
	if u.Query().Has("list") {
		return "", ErrPlaylistNotAllowed
	}

	var videoID string
	switch hostname {
	case "youtube.com", "m.youtube.com":
		if u.Path == "/live" || strings.HasPrefix(u.Path, "/live/") {
			return "", ErrLiveNotAllowed
		}
		if u.Path == "/watch" {
			videoID = u.Query().Get("v")
		}
	case "youtu.be":
		parts := strings.Split(strings.Trim(u.Path, "/"), "/")
		if len(parts) > 0 {
			videoID = parts[0]
		}
	}

	if videoID == "" || !videoIDRegex.MatchString(videoID) {
		return "", ErrUnsupportedURL
	}

	return videoID, nil
}
