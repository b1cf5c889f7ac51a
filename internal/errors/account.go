package errors

var (
	ErrAccountNotFound = &DomainError{
		Kind:    KindNotFound,
		Code:    "ACCOUNT_NOT_FOUND",
		Message: "user not found",
	}
	ErrUsernameTaken = &DomainError{
		Kind:    KindConflict,
		Code:    "USERNAME_TAKEN",
		Message: "username already taken",
	}
	ErrInvalidCredentials = &DomainError{
		Kind:    KindUnauthorized,
		Code:    "INVALID_CREDENTIALS",
		Message: "invalid username or password",
	}
	ErrSessionExpired = &DomainError{
		Kind:    KindUnauthorized,
		Code:    "SESSION_EXPIRED",
		Message: "session expired",
	}
	ErrNegativeBalance = &DomainError{
		Kind:    KindBusinessRule,
		Code:    "NEGATIVE_BALANCE",
		Message: "adjustment would make the balance negative",
	}
)
