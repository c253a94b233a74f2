package review

// The blind-review protocol for one (employee, week) pair. Manager review and
// self-reflection are drafted and committed independently; numeric ratings
// stay hidden from both parties until both sides are committed. The state is
// modelled explicitly here instead of being inferred from boolean columns at
// every call site.

type Side int

const (
	SideManager Side = iota
	SideSelf
)

func (s Side) String() string {
	if s == SideSelf {
		return "self"
	}
	return "manager"
}

// SideState is the lifecycle of one half of the pair.
type SideState int

const (
	SideAbsent SideState = iota
	SideDraft
	SideCommitted
)

// WeekState is the combined protocol state for one (employee, week).
type WeekState struct {
	Manager SideState
	Self    SideState
}

// DeriveWeekState builds the protocol state from the stored pair. Either
// review may be nil.
func DeriveWeekState(manager, self *Review) WeekState {
	st := WeekState{}
	if manager != nil {
		st.Manager = SideDraft
		if manager.IsCommitted {
			st.Manager = SideCommitted
		}
	}
	if self != nil {
		st.Self = SideDraft
		if self.IsCommitted {
			st.Self = SideCommitted
		}
	}
	return st
}

func (s WeekState) side(side Side) SideState {
	if side == SideSelf {
		return s.Self
	}
	return s.Manager
}

func (s WeekState) withSide(side Side, st SideState) WeekState {
	if side == SideSelf {
		s.Self = st
	} else {
		s.Manager = st
	}
	return s
}

// Revealed reports whether numeric ratings may be shown to either party.
func (s WeekState) Revealed() bool {
	return s.Manager == SideCommitted && s.Self == SideCommitted
}

// Label renders the state for API responses and logs.
func (s WeekState) Label() string {
	switch {
	case s.Revealed():
		return "both_committed"
	case s.Manager == SideCommitted:
		return "manager_committed"
	case s.Self == SideCommitted:
		return "self_committed"
	case s.Manager == SideDraft && s.Self == SideDraft:
		return "both_draft"
	case s.Manager == SideDraft:
		return "manager_draft"
	case s.Self == SideDraft:
		return "self_draft"
	default:
		return "no_review"
	}
}

// CanCreate checks whether a new draft may be created on the given side.
// A committed review blocks re-creation for the week; an uncommitted draft
// does too (it must be updated, not duplicated).
func (s WeekState) CanCreate(side Side) error {
	switch s.side(side) {
	case SideCommitted:
		return ErrCommittedReviewExists
	case SideDraft:
		return ErrDraftExists
	default:
		return nil
	}
}

// Commit transitions one side from draft to committed and returns the next
// state plus the notification effects the transition produces.
func (s WeekState) Commit(side Side) (WeekState, []Effect, error) {
	switch s.side(side) {
	case SideAbsent:
		return s, nil, ErrReviewNotFound
	case SideCommitted:
		return s, nil, ErrAlreadyCommitted
	}

	next := s.withSide(side, SideCommitted)

	// Committing the second side reveals the pair to both parties.
	// Committing the first side nudges the counterpart.
	var effects []Effect
	if next.Revealed() {
		effects = append(effects, EffectRevealed)
	} else {
		effects = append(effects, EffectCounterpartAwaited)
	}
	return next, effects, nil
}

// Uncommit reverses a commit (admin correction path). Only a committed side
// can be uncommitted; the pair drops out of the revealed state.
func (s WeekState) Uncommit(side Side) (WeekState, []Effect, error) {
	switch s.side(side) {
	case SideAbsent:
		return s, nil, ErrReviewNotFound
	case SideDraft:
		return s, nil, ErrNotCommitted
	}

	wasRevealed := s.Revealed()
	next := s.withSide(side, SideDraft)

	var effects []Effect
	if wasRevealed {
		effects = append(effects, EffectHiddenAgain)
	}
	return next, effects, nil
}

// Effect is a side effect a transition asks the caller to perform.
type Effect int

const (
	// EffectCounterpartAwaited: one side committed, the other has not; notify
	// the counterpart that their submission is awaited.
	EffectCounterpartAwaited Effect = iota
	// EffectRevealed: both sides committed; notify both parties that ratings
	// are now visible.
	EffectRevealed
	// EffectHiddenAgain: an admin uncommit removed the revealed state.
	EffectHiddenAgain
)
