package review

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeriveWeekState(t *testing.T) {
	committed := &Review{IsCommitted: true}
	draft := &Review{}

	cases := []struct {
		name    string
		manager *Review
		self    *Review
		want    WeekState
	}{
		{"empty week", nil, nil, WeekState{SideAbsent, SideAbsent}},
		{"manager draft only", draft, nil, WeekState{SideDraft, SideAbsent}},
		{"self committed only", nil, committed, WeekState{SideAbsent, SideCommitted}},
		{"both draft", draft, draft, WeekState{SideDraft, SideDraft}},
		{"both committed", committed, committed, WeekState{SideCommitted, SideCommitted}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, DeriveWeekState(c.manager, c.self))
		})
	}
}

func TestWeekState_CanCreate(t *testing.T) {
	assert.NoError(t, WeekState{}.CanCreate(SideManager))
	assert.NoError(t, WeekState{Manager: SideCommitted}.CanCreate(SideSelf))

	err := WeekState{Manager: SideDraft}.CanCreate(SideManager)
	assert.ErrorIs(t, err, ErrDraftExists)

	err = WeekState{Self: SideCommitted}.CanCreate(SideSelf)
	assert.ErrorIs(t, err, ErrCommittedReviewExists)
}

func TestWeekState_Commit_FirstSide(t *testing.T) {
	st := WeekState{Manager: SideDraft, Self: SideDraft}

	next, effects, err := st.Commit(SideManager)
	require.NoError(t, err)

	assert.Equal(t, SideCommitted, next.Manager)
	assert.Equal(t, SideDraft, next.Self)
	assert.False(t, next.Revealed())
	assert.Equal(t, []Effect{EffectCounterpartAwaited}, effects)
}

func TestWeekState_Commit_SecondSideReveals(t *testing.T) {
	st := WeekState{Manager: SideCommitted, Self: SideDraft}

	next, effects, err := st.Commit(SideSelf)
	require.NoError(t, err)

	assert.True(t, next.Revealed())
	assert.Equal(t, []Effect{EffectRevealed}, effects)
	assert.Equal(t, "both_committed", next.Label())
}

func TestWeekState_Commit_Errors(t *testing.T) {
	_, _, err := WeekState{}.Commit(SideManager)
	assert.ErrorIs(t, err, ErrReviewNotFound)

	_, _, err = WeekState{Self: SideCommitted}.Commit(SideSelf)
	assert.ErrorIs(t, err, ErrAlreadyCommitted)
}

func TestWeekState_Uncommit(t *testing.T) {
	st := WeekState{Manager: SideCommitted, Self: SideCommitted}

	next, effects, err := st.Uncommit(SideManager)
	require.NoError(t, err)

	assert.Equal(t, SideDraft, next.Manager)
	assert.False(t, next.Revealed())
	assert.Equal(t, []Effect{EffectHiddenAgain}, effects)
}

func TestWeekState_Uncommit_NotRevealedHasNoEffect(t *testing.T) {
	st := WeekState{Manager: SideCommitted, Self: SideDraft}

	next, effects, err := st.Uncommit(SideManager)
	require.NoError(t, err)

	assert.Equal(t, SideDraft, next.Manager)
	assert.Empty(t, effects)
}

func TestWeekState_Uncommit_Errors(t *testing.T) {
	_, _, err := WeekState{}.Uncommit(SideSelf)
	assert.ErrorIs(t, err, ErrReviewNotFound)

	_, _, err = WeekState{Manager: SideDraft}.Uncommit(SideManager)
	assert.ErrorIs(t, err, ErrNotCommitted)
}

func TestWeekState_Label(t *testing.T) {
	cases := []struct {
		state WeekState
		want  string
	}{
		{WeekState{}, "no_review"},
		{WeekState{Manager: SideDraft}, "manager_draft"},
		{WeekState{Self: SideDraft}, "self_draft"},
		{WeekState{Manager: SideDraft, Self: SideDraft}, "both_draft"},
		{WeekState{Manager: SideCommitted}, "manager_committed"},
		{WeekState{Self: SideCommitted, Manager: SideDraft}, "self_committed"},
		{WeekState{Manager: SideCommitted, Self: SideCommitted}, "both_committed"},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, c.state.Label())
	}
}

func TestRatings_Validate(t *testing.T) {
	valid := Ratings{TasksCompleted: 7, WorkVolume: 5, ProblemSolving: 10, Communication: 1, Leadership: 4}
	assert.Empty(t, valid.Validate())

	invalid := Ratings{TasksCompleted: 0, WorkVolume: 11, ProblemSolving: 5, Communication: 5, Leadership: 5}
	errs := invalid.Validate()
	require.Len(t, errs, 2)
	assert.Equal(t, "tasks_completed", errs[0].Field)
	assert.Equal(t, "work_volume", errs[1].Field)
}
