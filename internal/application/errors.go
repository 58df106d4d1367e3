package application

import "errors"

// serverMessager is implemented by transport errors that carry a
// human-readable reason from the server. Keeping it structural avoids a
// dependency from the application core onto the HTTP adapter.
type serverMessager interface {
	ServerMessage() string
}

func serverMessage(err error) string {
	var sm serverMessager
	if errors.As(err, &sm) {
		return sm.ServerMessage()
	}
	return ""
}

// isServerError reports whether the request produced any response at all,
// as opposed to a transport failure.
func isServerError(err error) bool {
	var sm serverMessager
	return errors.As(err, &sm)
}
