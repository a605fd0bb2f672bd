package application

import (
	"fmt"
	"regexp"
	"strings"
)

var usernameRegex = regexp.MustCompile(`^[a-z0-9._]+$`)

// NormalizeUsername lower-cases a username and checks it only uses letters,
// digits, dots and underscores. The result is the account's user id.
func NormalizeUsername(name string) (string, error) {
	name = strings.ToLower(strings.TrimSpace(name))

	switch {
	case len(name) < minUsernameLength || len(name) > maxUsernameLength:
		return "", fmt.Errorf("%w: username must be %d-%d characters", ErrInvalidSignup, minUsernameLength, maxUsernameLength)
	case !usernameRegex.MatchString(name):
		return "", fmt.Errorf("%w: username may only contain letters, numbers, '.' and '_'", ErrInvalidSignup)
	}
	return name, nil
}
