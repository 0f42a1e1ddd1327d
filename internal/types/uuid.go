package types

import (
	"fmt"
	"strings"

	"github.com/oklog/ulid/v2"
)

const (
	UUID_PREFIX_ORGANIZATION   = "org"
	UUID_PREFIX_USER           = "user"
	UUID_PREFIX_CLIENT         = "clnt"
	UUID_PREFIX_INSURER        = "insr"
	UUID_PREFIX_AFFILIATE      = "affl"
	UUID_PREFIX_ASSIGNMENT     = "asgn"
	UUID_PREFIX_POLICY         = "poly"
	UUID_PREFIX_POLICY_HISTORY = "hist"
	UUID_PREFIX_AUDIT_LOG      = "audt"
	UUID_PREFIX_REQUEST        = "req"
)

// GenerateUUID returns a lowercase ULID. Lexicographic order follows
// creation time, which keeps index pages warm on append-heavy tables.
func GenerateUUID() string {
	return strings.ToLower(ulid.Make().String())
}

// GenerateUUIDWithPrefix returns a ULID prefixed with the entity tag,
// e.g. poly_01jk....
func GenerateUUIDWithPrefix(prefix string) string {
	if prefix == "" {
		return GenerateUUID()
	}
	return fmt.Sprintf("%s_%s", prefix, GenerateUUID())
}
