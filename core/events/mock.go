package events

// MockEvents is a no-op store for tests.
type MockEvents struct{}

func (e MockEvents) AddEvent(event Event)             {}
func (e MockEvents) LoadEvents(height uint32) Events  { return Events{} }
func (e MockEvents) CommitEvents(height uint32) error { return nil }
func (e MockEvents) Close() error                     { return nil }
