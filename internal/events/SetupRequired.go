package events

var SetupRequiredTopic = "SetupRequiredEvent"

// SetupRequired asks the UI to send the user back to credential setup.
type SetupRequired struct {
	Reason string
}
