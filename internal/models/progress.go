package models

type ProgressEventType string

const (
	ProgressSubjectResolved ProgressEventType = "subject_resolved"
	ProgressCardsFetched    ProgressEventType = "cards_fetched"
	ProgressCardRemoved     ProgressEventType = "card_removed"
	ProgressCardNotFound    ProgressEventType = "card_not_found"
)

// ProgressEvent reports a finished step of a run to whoever renders it.
type ProgressEvent struct {
	Type ProgressEventType
	Data map[string]interface{}
}
