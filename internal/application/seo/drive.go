package seo

import (
	"net/url"
	"strings"
)

const driveImageHost = "https://lh3.googleusercontent.com/d/"

// NormalizeDriveLink rewrites Google Drive share links into direct image
// URLs. Other URLs are returned unchanged.
func NormalizeDriveLink(link string) string {
	if link == "" {
		return ""
	}

	var id string
	if _, rest, ok := strings.Cut(link, "/file/d/"); ok {
		id, _, _ = strings.Cut(rest, "/")
	} else if strings.Contains(link, "id=") {
		_, rawQuery, _ := strings.Cut(link, "?")
		if values, err := url.ParseQuery(rawQuery); err == nil {
			id = values.Get("id")
		}
	}

	if id == "" {
		return link
	}
	return driveImageHost + id
}
