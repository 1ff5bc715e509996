package models

type (
	// Subject is the issue or pull request whose card should be removed.
	Subject struct {
		Owner      string
		Repository string
		Number     int
		Kind       ContentKind
		DatabaseID int64
	}

	// RemovalResult describes how a run ended when it did not fail.
	RemovalResult struct {
		Subject Subject
		Project Project
		Removed bool
		CardID  int64
		Scanned int
	}
)
