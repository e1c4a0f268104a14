package domain

// UserState represents user's current interaction state
type UserState string

const (
	StateIdle            UserState = "idle"
	StateWaitingQuestion UserState = "waiting_question"
	StateWaitingAnswer   UserState = "waiting_answer"
	StateWaitingCategory UserState = "waiting_category"
	StateReviewing       UserState = "reviewing"
)

// StateData holds temporary data for user's current state
type StateData struct {
	State    UserState
	Question string
	Answer   string
}
