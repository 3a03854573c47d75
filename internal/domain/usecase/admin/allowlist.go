package admin

import (
	"strings"

	"github.com/badoux/checkmail"
)

// AllowList is the set of administrator emails, normalized to lower case
type AllowList map[string]struct{}

// ParseAllowList parses the comma-separated administrator email
// configuration value. Entries are trimmed and lowercased; empties are
// dropped. Evaluated once at process start.
func ParseAllowList(raw string) AllowList {
	list := make(AllowList)
	for _, entry := range strings.Split(raw, ",") {
		email := strings.ToLower(strings.TrimSpace(entry))
		if email == "" {
			continue
		}
		list[email] = struct{}{}
	}
	return list
}

// Contains reports whether the email is on the allow-list,
// case-insensitively
func (l AllowList) Contains(email string) bool {
	_, ok := l[strings.ToLower(strings.TrimSpace(email))]
	return ok
}

// Malformed returns the entries that do not look like email addresses.
// The check is advisory: malformed entries stay on the list, callers only
// log them.
func (l AllowList) Malformed() []string {
	var bad []string
	for email := range l {
		if err := checkmail.ValidateFormat(email); err != nil {
			bad = append(bad, email)
		}
	}
	return bad
}
