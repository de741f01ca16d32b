package common

import (
	"regexp"
	"strings"
)

// Pattern to extract @username mentions from content. Usernames follow the
// registration rules: 3-20 word characters.
var mentionPattern = regexp.MustCompile(`(^|[^\w@])@(\w{3,20})`)

// ExtractMentions returns the distinct usernames mentioned in content, in
// order of first appearance. The author's own username is kept; callers
// decide whether self-mentions notify.
func ExtractMentions(content string) []string {
	matches := mentionPattern.FindAllStringSubmatch(content, -1)
	if len(matches) == 0 {
		return nil
	}

	seen := make(map[string]bool, len(matches))
	usernames := make([]string, 0, len(matches))
	for _, m := range matches {
		username := m[2]
		key := strings.ToLower(username)
		if seen[key] {
			continue
		}
		seen[key] = true
		usernames = append(usernames, username)
	}
	return usernames
}
