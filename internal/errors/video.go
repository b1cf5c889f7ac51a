package errors

var (
	ErrVideoNotFound = &DomainError{
		Kind:    KindNotFound,
		Code:    "VIDEO_NOT_FOUND",
		Message: "Video not found",
	}
	ErrNotVideoOwner = &DomainError{
		Kind:    KindForbidden,
		Code:    "NOT_VIDEO_OWNER",
		Message: "You are not authorized to delete this video",
	}
	ErrNoVideoFile = &DomainError{
		Kind:    KindValidation,
		Code:    "NO_VIDEO_FILE",
		Message: "No video file uploaded",
	}
	ErrCommentNotFound = &DomainError{
		Kind:    KindNotFound,
		Code:    "COMMENT_NOT_FOUND",
		Message: "Comment not found",
	}
	ErrNotCommentAuthor = &DomainError{
		Kind:    KindForbidden,
		Code:    "NOT_COMMENT_AUTHOR",
		Message: "You are not authorized to delete this comment",
	}
)
