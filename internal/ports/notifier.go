package ports

import "github.com/thumlify/thumlify-cli/internal/domain"

// Notifier is the toast surface. Implementations must tolerate calls from
// deferred callbacks after the invoking view has been dismissed.
type Notifier interface {
	Success(msg string)
	Error(msg string)
	Warning(msg string)
}

// Navigator routes the user between surfaces after an operation settles.
type Navigator interface {
	GoToPricing()
	GoToResult(id domain.ThumbnailID)
}
