package service

const (
	usernameMinLen = 3
	usernameMaxLen = 64
	passwordMinLen = 8
	// bcrypt ignores input beyond 72 bytes, so longer passwords would
	// silently verify against their truncation. Reject them instead.
	passwordMaxLen = 72
)

// ValidateSignupFields checks the registration field rules for username and
// password. Pure function of its inputs; uniqueness is deliberately not
// checked here — the store's constraint is the arbiter for that. Returns nil
// when all rules pass.
func ValidateSignupFields(username, password string) *ValidationError {
	verr := &ValidationError{}

	switch {
	case username == "":
		verr.add("username", "required")
	case len(username) < usernameMinLen:
		verr.add("username", "must be at least 3 characters")
	case len(username) > usernameMaxLen:
		verr.add("username", "must be at most 64 characters")
	}
	if username != "" && !validUsernameCharset(username) {
		verr.add("username", "may only contain letters, digits, dots, dashes and underscores")
	}

	switch {
	case password == "":
		verr.add("password", "required")
	case len(password) < passwordMinLen:
		verr.add("password", "must be at least 8 characters")
	case len(password) > passwordMaxLen:
		verr.add("password", "must be at most 72 characters")
	}

	if verr.empty() {
		return nil
	}
	return verr
}

func validUsernameCharset(username string) bool {
	for _, r := range username {
		switch {
		case r >= 'a' && r <= 'z':
		case r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9':
		case r == '.' || r == '-' || r == '_':
		default:
			return false
		}
	}
	return true
}
