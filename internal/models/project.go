package models

// ContentKind identifies what a project card points to. The values match the
// GraphQL __typename of the card content.
type ContentKind string

const (
	ContentKindIssue       ContentKind = "Issue"
	ContentKindPullRequest ContentKind = "PullRequest"
	// ContentKindNone is used for note cards and any content type we do not handle.
	ContentKindNone ContentKind = ""
)

// ParseContentKind maps a GraphQL typename to a ContentKind.
func ParseContentKind(typename string) ContentKind {
	switch ContentKind(typename) {
	case ContentKindIssue:
		return ContentKindIssue
	case ContentKindPullRequest:
		return ContentKindPullRequest
	default:
		return ContentKindNone
	}
}

func (k ContentKind) String() string {
	if k == ContentKindNone {
		return "None"
	}
	return string(k)
}

type (
	// Project is a classic project board.
	Project struct {
		Owner      string
		Number     int
		DatabaseID int64
		Name       string
		URL        string
		Columns    []Column
		// Truncated is set when the board has more columns or cards than one
		// query page returns.
		Truncated bool
	}

	// Column is an ordered group of cards within a project.
	Column struct {
		DatabaseID int64
		Name       string
		Cards      []Card
	}

	// Card is a project card. DatabaseID is the card's own id, which is what
	// the delete endpoint expects.
	Card struct {
		DatabaseID int64
		Content    CardContent
	}

	// CardContent is the issue or pull request a card references. Both kinds
	// carry the same fields, Kind tells them apart.
	CardContent struct {
		Kind       ContentKind
		DatabaseID int64
		Number     int
	}
)

// Cards flattens the project in column-major order.
func (p *Project) Cards() []Card {
	var cards []Card
	for _, column := range p.Columns {
		cards = append(cards, column.Cards...)
	}
	return cards
}

// Matches reports whether the card references the subject. Numbers are shared
// between issues and pull requests, so kind and database id are both compared.
func (c Card) Matches(subject Subject) bool {
	if c.Content.Kind == ContentKindNone {
		return false
	}
	return c.Content.Kind == subject.Kind && c.Content.DatabaseID == subject.DatabaseID
}
