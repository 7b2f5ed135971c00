package upload

import (
	"crypto/md5"
	"fmt"
	"strings"
)

// GravatarURL returns the Gravatar image URL for an email address, used as
// the default avatar at registration.
func GravatarURL(email string) string {
	normalized := strings.ToLower(strings.TrimSpace(email))
	return fmt.Sprintf("https://www.gravatar.com/avatar/%x", md5.Sum([]byte(normalized)))
}
