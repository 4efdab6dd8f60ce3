package id

import (
	"strings"

	"github.com/google/uuid"
)

var integrityNamespace = uuid.MustParse("7b1f6c2e-4a8d-5e39-9c0f-2d6a1b3e8f45")

// Fingerprint derives the integrity hash stored on loans and receipts:
// "0x" followed by 32 lowercase hex chars of a name-based (MD5) UUID over the
// joined parts. Same parts, same hash.
func Fingerprint(parts ...string) string {
	u := uuid.NewMD5(integrityNamespace, []byte(strings.Join(parts, "_")))
	return "0x" + strings.ReplaceAll(u.String(), "-", "")
}
