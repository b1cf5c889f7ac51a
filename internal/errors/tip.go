package errors

var (
	ErrInvalidTipAmount = &DomainError{
		Kind:    KindValidation,
		Code:    "INVALID_TIP_AMOUNT",
		Message: "Invalid tip amount",
	}
	ErrSenderNotFound = &DomainError{
		Kind:    KindNotFound,
		Code:    "SENDER_NOT_FOUND",
		Message: "Sender not found",
	}
	ErrReceiverNotFound = &DomainError{
		Kind:    KindNotFound,
		Code:    "RECEIVER_NOT_FOUND",
		Message: "Video owner not found",
	}
	ErrInsufficientTokens = &DomainError{
		Kind:    KindBusinessRule,
		Code:    "INSUFFICIENT_TOKENS",
		Message: "Insufficient tokens",
	}
	ErrSelfTip = &DomainError{
		Kind:    KindBusinessRule,
		Code:    "SELF_TIP_NOT_ALLOWED",
		Message: "You cannot tip your own video",
	}
	ErrIdempotencyKeyReused = &DomainError{
		Kind:    KindConflict,
		Code:    "IDEMPOTENCY_KEY_REUSED",
		Message: "Idempotency key was already used for a different tip",
	}
)
