package validation

const (
	// Account limits
	MinUsernameLength = 3
	MaxUsernameLength = 30
	MinPasswordLength = 8
	MaxPasswordLength = 72 // bcrypt ignores anything longer

	// String lengths
	MaxTitleLength       = 200
	MaxDescriptionLength = 5000
	MaxCommentLength     = 1000
)
