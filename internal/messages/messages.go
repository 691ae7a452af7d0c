// Fixed user-facing messages. Handlers return these verbatim so clients can
// rely on exact strings; internal error details never leak through them.
package messages

const (
	TokenDecodeError     = "Invalid or expired token"
	NotAuthenticated     = "Invalid authorization code."
	InvalidAuthScheme    = "Invalid authentication scheme."
	CredentialsIncorrect = "Could not validate credentials"

	IncorrectLoginInput = "Please enter the correct email and password"

	PostNotFound         = "Post not found"
	PostAlreadyExists    = "You already created post with given title"
	PostEditNotAllowed   = "You can't edit someone else`s post"
	PostDeleteNotAllowed = "You can't delete someone else`s post"

	UserAlreadyExists   = "User with this email already exists"
	UserNotFound        = "User not found"
	SettingsNotAllowed  = "You can't access someone else`s settings"
	EmptyPasswordField  = "Empty field"
	InvalidPagination   = "Invalid pagination parameters"
	InvalidDateRange    = "Invalid date range"

	CommentNotFound         = "Comment not found"
	CommentUpdateNotAllowed = "You can't update someone else`s comment"
	CommentDeleteNotAllowed = "You can't delete someone else`s comment"

	OffensiveContent = "Text contains offensive language"

	AIRequestQuotaExceeded = "AI Request quota exceeded. Please try again later"
	AIValidationError      = "AI validation currently unavailable. Please try again later"
)
