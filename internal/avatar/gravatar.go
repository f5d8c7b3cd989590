// AngelaMos | 2026
// gravatar.go

package avatar

import (
	"crypto/md5" //nolint:gosec // G501: gravatar addresses are md5 by protocol
	"encoding/hex"
	"strings"
)

const gravatarBase = "//www.gravatar.com/avatar/"

// GravatarURL is the default avatar given to every new account.
func GravatarURL(email string) string {
	sum := md5.Sum([]byte(strings.ToLower(strings.TrimSpace(email)))) //nolint:gosec // G401
	return gravatarBase + hex.EncodeToString(sum[:])
}
