package domain

// EventType represents the type of domain event
type EventType string

// Event types
const (
	EventQuerySubmitted         EventType = "QuerySubmitted"
	EventFetchIssued            EventType = "FetchIssued"
	EventPageFolded             EventType = "PageFolded"
	EventQueryExhausted         EventType = "QueryExhausted"
	EventFetchFailed            EventType = "FetchFailed"
	EventStaleResponseDiscarded EventType = "StaleResponseDiscarded"
	EventResultsCleared         EventType = "ResultsCleared"
)

// DomainEvent is the interface for all domain events
type DomainEvent interface {
	Type() EventType
}

// QuerySubmittedEvent is emitted when the user submits a query
type QuerySubmittedEvent struct {
	Identity Identity
	Empty    bool // an all-empty submit clears results without fetching
}

func (e QuerySubmittedEvent) Type() EventType { return EventQuerySubmitted }

// FetchIssuedEvent is emitted when a page request leaves the coordinator
type FetchIssuedEvent struct {
	Request FetchRequest
	Trigger string
}

func (e FetchIssuedEvent) Type() EventType { return EventFetchIssued }

// PageFoldedEvent is emitted when a page is appended to the results
type PageFoldedEvent struct {
	Request FetchRequest
	Count   int
	Total   int
}

func (e PageFoldedEvent) Type() EventType { return EventPageFolded }

// QueryExhaustedEvent is emitted when a short page ends the result stream
type QueryExhaustedEvent struct {
	Identity Identity
	Total    int
}

func (e QueryExhaustedEvent) Type() EventType { return EventQueryExhausted }

// FetchFailedEvent is emitted when a request fails or the response is malformed
type FetchFailedEvent struct {
	Request FetchRequest
	Err     error
}

func (e FetchFailedEvent) Type() EventType { return EventFetchFailed }

// StaleResponseDiscardedEvent is emitted when a response arrives for a superseded query
type StaleResponseDiscardedEvent struct {
	Request FetchRequest
}

func (e StaleResponseDiscardedEvent) Type() EventType { return EventStaleResponseDiscarded }

// ResultsClearedEvent is emitted whenever accumulated results are dropped
type ResultsClearedEvent struct {
	Reason string
}

func (e ResultsClearedEvent) Type() EventType { return EventResultsCleared }
