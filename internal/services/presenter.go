package services

import (
	"alfredoptarigan/resume-screener/internal/models"
)

// NoResultsMessage is shown when a success body carries no analyzable
// candidate.
const NoResultsMessage = "No resumes could be analyzed. Please check the files and try again."

// AnalysisPresenter decides which record occupies the primary pane and
// which records live in history. It is not safe for concurrent use.
type AnalysisPresenter interface {
	BeginSubmission()
	ApplyResponse(resp *models.AnalysisResponse)
	ApplyFailure(message string)
	SelectRank(rank int) error
	View() models.DisplayState
	State() models.PresenterState
	Current() *models.ResultRecord
	History() []models.ResultRecord
}

type analysisPresenter struct {
	state   models.PresenterState
	message string
	current *models.ResultRecord
	history *ResultHistory
	notices []models.FailedResult
	pending int
}

func NewAnalysisPresenter() AnalysisPresenter {
	return &analysisPresenter{
		state:   models.StateIdle,
		history: NewResultHistory(),
	}
}

// BeginSubmission moves the shown record into history and enters Loading.
func (p *analysisPresenter) BeginSubmission() {
	p.pending++
	p.demoteCurrent()
	p.state = models.StateLoading
	p.message = ""
	p.notices = nil
}

// ApplyResponse implements AnalysisPresenter. The response is applied to
// whatever state is current when it arrives.
func (p *analysisPresenter) ApplyResponse(resp *models.AnalysisResponse) {
	p.settle()
	if !resp.IsSuccess() {
		message := ""
		if resp != nil {
			message = resp.Message
		}
		p.fail(message)
		return
	}
	if len(resp.Results) == 0 {
		p.fail(NoResultsMessage)
		p.notices = resp.FailedResults
		return
	}

	p.demoteCurrent()
	next := resp.Results[0]
	p.current = &next
	p.history.Insert(resp.Results[1:]...)
	p.state = models.StateShowing
	p.message = ""
	p.notices = resp.FailedResults
}

// ApplyFailure enters Error. History keeps whatever it held at dispatch;
// a record selected while loading is kept as history too.
func (p *analysisPresenter) ApplyFailure(message string) {
	p.settle()
	p.fail(message)
}

func (p *analysisPresenter) fail(message string) {
	if message == "" {
		message = GenericFailureMessage
	}
	p.demoteCurrent()
	p.state = models.StateError
	p.message = message
	p.notices = nil
}

// SelectRank swaps the entry at the given rank of current ∪ history into
// the primary pane. Selecting the current record is a no-op.
func (p *analysisPresenter) SelectRank(rank int) error {
	ranked := p.ranked()
	if rank < 0 || rank >= len(ranked) {
		return ErrRankOutOfRange
	}
	if ranked[rank].Current {
		return nil
	}

	selected := ranked[rank].Record
	p.demoteCurrent()
	p.history.RemoveByIdentity(selected.Identity())
	p.current = &selected
	p.state = models.StateShowing
	p.message = ""
	return nil
}

func (p *analysisPresenter) View() models.DisplayState {
	ranked := p.ranked()

	layout := models.LayoutFullWidth
	if len(ranked) > 1 || (p.current == nil && len(ranked) > 0) {
		layout = models.LayoutTwoColumn
	}

	view := models.DisplayState{
		State:   p.state,
		Message: p.message,
		Ranked:  ranked,
		Layout:  layout,
		Notices: append([]models.FailedResult(nil), p.notices...),
		Pending: p.pending > 0,
	}
	if p.current != nil {
		current := *p.current
		view.Current = &current
	}
	return view
}

func (p *analysisPresenter) State() models.PresenterState {
	return p.state
}

func (p *analysisPresenter) Current() *models.ResultRecord {
	if p.current == nil {
		return nil
	}
	current := *p.current
	return &current
}

func (p *analysisPresenter) History() []models.ResultRecord {
	return p.history.Records()
}

// settle marks one dispatched submission as answered.
func (p *analysisPresenter) settle() {
	if p.pending > 0 {
		p.pending--
	}
}

// demoteCurrent pushes a genuine shown record into history.
func (p *analysisPresenter) demoteCurrent() {
	if p.current == nil {
		return
	}
	p.history.Insert(*p.current)
	p.current = nil
}

func (p *analysisPresenter) ranked() []models.RankedRecord {
	union := p.history.Records()
	if p.current != nil {
		union = append(union, *p.current)
	}

	// The current record is appended last, so under a stable sort it is the
	// last entry matching its identity.
	out := make([]models.RankedRecord, 0, len(union))
	currentAt := -1
	for i, r := range Rank(union) {
		if p.current != nil && p.current.Identity().Matches(r) {
			currentAt = i
		}
		out = append(out, models.RankedRecord{Rank: i, Record: r})
	}
	if currentAt >= 0 {
		out[currentAt].Current = true
	}
	return out
}
