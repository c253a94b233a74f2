package absence

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCanTransition(t *testing.T) {
	allowed := []struct {
		from, next InsightStatus
	}{
		{InsightStatusNew, InsightStatusPendingReview},
		{InsightStatusNew, InsightStatusDismissed},
		{InsightStatusPendingReview, InsightStatusReviewed},
		{InsightStatusPendingReview, InsightStatusActionTaken},
		{InsightStatusPendingReview, InsightStatusDismissed},
		{InsightStatusReviewed, InsightStatusActionTaken},
		{InsightStatusReviewed, InsightStatusDismissed},
	}
	for _, c := range allowed {
		assert.True(t, CanTransition(c.from, c.next), "%s -> %s should be allowed", c.from, c.next)
	}

	denied := []struct {
		from, next InsightStatus
	}{
		{InsightStatusNew, InsightStatusReviewed},
		{InsightStatusNew, InsightStatusActionTaken},
		{InsightStatusPendingReview, InsightStatusNew},
		{InsightStatusDismissed, InsightStatusNew},
		{InsightStatusDismissed, InsightStatusPendingReview},
		{InsightStatusActionTaken, InsightStatusDismissed},
		{InsightStatusReviewed, InsightStatusNew},
	}
	for _, c := range denied {
		assert.False(t, CanTransition(c.from, c.next), "%s -> %s should be denied", c.from, c.next)
	}
}

func TestInsightStatus_Open(t *testing.T) {
	assert.True(t, InsightStatusNew.Open())
	assert.True(t, InsightStatusPendingReview.Open())
	assert.True(t, InsightStatusReviewed.Open())
	assert.False(t, InsightStatusActionTaken.Open())
	assert.False(t, InsightStatusDismissed.Open())
}

func TestLeaveRequest_NoticeDays(t *testing.T) {
	start := time.Date(2026, 4, 13, 0, 0, 0, 0, time.UTC)

	planned := &LeaveRequest{StartDate: start, RequestedAt: start.AddDate(0, 0, -10)}
	assert.Equal(t, 10, planned.NoticeDays())

	sameDay := &LeaveRequest{StartDate: start, RequestedAt: start}
	assert.Equal(t, 0, sameDay.NoticeDays())

	afterFact := &LeaveRequest{StartDate: start, RequestedAt: start.AddDate(0, 0, 2)}
	assert.Equal(t, -2, afterFact.NoticeDays())
}
