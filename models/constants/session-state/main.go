package sessionState

import "varanno/api/models/constants"

const (
	Queued     constants.SessionState = "Queued"
	Intake     constants.SessionState = "Intake"
	Aligning   constants.SessionState = "Aligning"
	Calling    constants.SessionState = "Calling"
	Annotating constants.SessionState = "Annotating"
	Done       constants.SessionState = "Done"
	Error      constants.SessionState = "Error"
)

// IsTerminal reports whether a session in this state will not change again.
func IsTerminal(state constants.SessionState) bool {
	return state == Done || state == Error
}
