package media

import (
	"strconv"
	"strings"
)

const uploadMarker = "/image/upload/"

// PublicIDFromURL extracts the Cloudinary public id from a delivery URL:
// everything after /image/upload/, minus the v<digits>/ version segment and
// the file extension. Returns "" when the URL is not a delivery URL.
//
//	https://res.cloudinary.com/demo/image/upload/v1700000000/properties/casa.jpg
//	-> properties/casa
func PublicIDFromURL(rawURL string) string {
	idx := strings.Index(rawURL, uploadMarker)
	if idx < 0 {
		return ""
	}
	rest := rawURL[idx+len(uploadMarker):]

	if strings.HasPrefix(rest, "v") {
		if slash := strings.Index(rest, "/"); slash > 1 {
			if _, err := strconv.Atoi(rest[1:slash]); err == nil {
				rest = rest[slash+1:]
			}
		}
	}

	if dot := strings.LastIndex(rest, "."); dot >= 0 {
		rest = rest[:dot]
	}
	return rest
}
