package constant

// Turn protocol commands. Anything else arriving in the command slot is
// treated as a free-form answer for the pending field.
const (
	CommandStart   = "start"
	CommandBack    = "back"
	CommandRestart = "restart"
	CommandSubmit  = "submit"
)

// Turn response types.
const (
	TurnTypeAsk    = "ask"
	TurnTypeReview = "review"
	TurnTypeDone   = "done"
)

// Event types published on the bus.
const (
	EventSubmissionCreated = "SUBMISSION_CREATED"
)

// Redis channel used by the websocket hub for cross-instance fan-out.
const ClusterEventsChannel = "cluster_events"
