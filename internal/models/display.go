package models

type PresenterState string

const (
	StateIdle    PresenterState = "idle"
	StateLoading PresenterState = "loading"
	StateError   PresenterState = "error"
	StateShowing PresenterState = "showing"
)

type Layout string

const (
	LayoutFullWidth Layout = "full-width"
	LayoutTwoColumn Layout = "two-column"
)

// RankedRecord is one row of the ranked sidebar. Rank is zero-based.
type RankedRecord struct {
	Rank    int          `json:"rank"`
	Record  ResultRecord `json:"record"`
	Current bool         `json:"current"`
}

// DisplayState is everything a renderer needs for one paint. Pending is set
// while any submission is still awaiting its response, whatever State says.
type DisplayState struct {
	State   PresenterState `json:"state"`
	Message string         `json:"message,omitempty"`
	Current *ResultRecord  `json:"current,omitempty"`
	Ranked  []RankedRecord `json:"ranked"`
	Layout  Layout         `json:"layout"`
	Notices []FailedResult `json:"notices,omitempty"`
	Pending bool           `json:"pending"`
}

func (d DisplayState) ShowSidebar() bool {
	return d.Layout == LayoutTwoColumn
}
