package offboarding

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWorkflow_Active(t *testing.T) {
	assert.True(t, (&Workflow{Status: StatusPending}).Active())
	assert.True(t, (&Workflow{Status: StatusInProgress}).Active())
	assert.False(t, (&Workflow{Status: StatusCompleted}).Active())
	assert.False(t, (&Workflow{Status: StatusCancelled}).Active())
}

func TestDefaultChecklist(t *testing.T) {
	n := 0
	items := DefaultChecklist("wf-1", func() string {
		n++
		return fmt.Sprintf("item-%d", n)
	})

	require.Len(t, items, 13)

	seenTypes := map[string]bool{}
	for i, item := range items {
		assert.Equal(t, "wf-1", item.WorkflowID)
		assert.Equal(t, i+1, item.SortOrder)
		assert.False(t, item.Completed)
		assert.NotEmpty(t, item.Title)
		seenTypes[item.ItemType] = true
	}
	assert.Equal(t, map[string]bool{"access": true, "equipment": true, "knowledge": true, "hr": true}, seenTypes)
	assert.Equal(t, "item-1", items[0].ID)
	assert.Equal(t, "item-13", items[12].ID)
}

func TestIsValidTerminationType(t *testing.T) {
	for _, tt := range []TerminationType{
		TerminationResignation, TerminationDismissal, TerminationRedundancy,
		TerminationRetirement, TerminationEndOfContract,
	} {
		assert.True(t, IsValidTerminationType(tt))
	}
	assert.False(t, IsValidTerminationType(TerminationType("fired")))
}
