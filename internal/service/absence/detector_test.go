package absence

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voidstaffos/headoffice-backend-go/internal/domain/absence"
)

func sickSpell(id string, start time.Time, days int, noticeDays int) *absence.LeaveRequest {
	return &absence.LeaveRequest{
		ID:          id,
		Type:        absence.LeaveSick,
		Status:      absence.LeaveStatusApproved,
		StartDate:   start,
		EndDate:     start.AddDate(0, 0, days-1),
		TotalDays:   days,
		RequestedAt: start.AddDate(0, 0, -noticeDays),
	}
}

// spreadSpells produces n approved sick spells on consecutive Wednesdays with
// generous notice, so only the Bradford detector can fire on them.
func spreadSpells(n, daysEach int) []*absence.LeaveRequest {
	wednesday := time.Date(2026, 1, 7, 0, 0, 0, 0, time.UTC)
	spells := make([]*absence.LeaveRequest, n)
	for i := range spells {
		spells[i] = sickSpell(fmt.Sprintf("leave-%d", i), wednesday.AddDate(0, 0, 14*i), daysEach, 10)
	}
	return spells
}

func TestDetectBradford_Thresholds(t *testing.T) {
	cases := []struct {
		name   string
		spells int
		days   int
		want   *absence.InsightPriority
	}{
		{"two spells of ten days score below the floor", 2, 10, nil},
		{"score exactly at the low threshold", 3, 5, ptr(absence.PriorityLow)},
		{"score at the medium threshold", 5, 8, ptr(absence.PriorityMedium)},
		{"score above the high threshold", 8, 8, ptr(absence.PriorityHigh)},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			spells := spreadSpells(c.spells, c.days/c.spells+1)
			// Rebuild with exact totals: give every spell the same share and
			// put the remainder on the first one.
			total := 0
			for _, s := range spells {
				s.TotalDays = c.days / c.spells
				total += s.TotalDays
			}
			spells[0].TotalDays += c.days - total

			got := detectBradford(spells)
			if c.want == nil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, *c.want, got.Priority)
			assert.Equal(t, absence.PatternBradfordFactor, got.PatternType)
			require.NotNil(t, got.BradfordScore)
			assert.Equal(t, c.spells*c.spells*c.days, *got.BradfordScore)
			assert.Len(t, got.RelatedAbsenceIDs, c.spells)
		})
	}
}

func TestDetectDayOfWeekCluster(t *testing.T) {
	monday := time.Date(2026, 4, 13, 0, 0, 0, 0, time.UTC)
	wednesday := monday.AddDate(0, 0, 2)

	spells := []*absence.LeaveRequest{
		sickSpell("a", monday, 1, 10),
		sickSpell("b", monday.AddDate(0, 0, 7), 1, 10),
		sickSpell("c", monday.AddDate(0, 0, 21), 1, 10),
		sickSpell("d", wednesday, 1, 10),
	}

	got := detectDayOfWeekCluster(spells)
	require.NotNil(t, got)
	assert.Equal(t, absence.PatternDayOfWeekCluster, got.PatternType)
	assert.Equal(t, absence.PriorityMedium, got.Priority)
	assert.ElementsMatch(t, []string{"a", "b", "c"}, got.RelatedAbsenceIDs)
}

func TestDetectDayOfWeekCluster_BelowFraction(t *testing.T) {
	// Three Monday starts out of eight spells is under the 40% bar.
	monday := time.Date(2026, 4, 13, 0, 0, 0, 0, time.UTC)
	var spells []*absence.LeaveRequest
	for i := 0; i < 3; i++ {
		spells = append(spells, sickSpell(fmt.Sprintf("mon-%d", i), monday.AddDate(0, 0, 7*i), 1, 10))
	}
	for i := 0; i < 5; i++ {
		day := monday.AddDate(0, 0, 7*i+1+i%3)
		spells = append(spells, sickSpell(fmt.Sprintf("other-%d", i), day, 1, 10))
	}

	assert.Nil(t, detectDayOfWeekCluster(spells))
}

func TestDetectShortNotice(t *testing.T) {
	wednesday := time.Date(2026, 1, 7, 0, 0, 0, 0, time.UTC)

	spells := []*absence.LeaveRequest{
		sickSpell("a", wednesday, 1, 0),
		sickSpell("b", wednesday.AddDate(0, 0, 14), 1, 1),
		sickSpell("c", wednesday.AddDate(0, 0, 28), 1, 0),
		sickSpell("d", wednesday.AddDate(0, 0, 42), 1, 10),
	}

	got := detectShortNotice(spells)
	require.NotNil(t, got)
	assert.Equal(t, absence.PatternShortNotice, got.PatternType)
	assert.ElementsMatch(t, []string{"a", "b", "c"}, got.RelatedAbsenceIDs)

	assert.Nil(t, detectShortNotice(spells[:2]), "two short-notice spells are not enough")
}

func TestDetectPostWeekend(t *testing.T) {
	monday := time.Date(2026, 4, 13, 0, 0, 0, 0, time.UTC)
	thursday := monday.AddDate(0, 0, 3)

	spells := []*absence.LeaveRequest{
		sickSpell("mon", monday, 1, 10),
		sickSpell("thu-fri", thursday, 2, 10), // ends Friday
		sickSpell("midweek", monday.AddDate(0, 0, 8), 1, 10),
	}

	got := detectPostWeekend(spells)
	require.NotNil(t, got)
	assert.Equal(t, absence.PatternPostWeekend, got.PatternType)
	assert.Equal(t, absence.PriorityLow, got.Priority)
	assert.ElementsMatch(t, []string{"mon", "thu-fri"}, got.RelatedAbsenceIDs)
}

func TestDetectPatterns_IgnoresPlannedAndPendingLeave(t *testing.T) {
	monday := time.Date(2026, 4, 13, 0, 0, 0, 0, time.UTC)

	annual := sickSpell("annual", monday, 10, 0)
	annual.Type = absence.LeaveAnnual

	pending := sickSpell("pending", monday.AddDate(0, 0, 7), 10, 0)
	pending.Status = absence.LeaveStatusWaitingApproval

	assert.Empty(t, DetectPatterns("t1", "e1", []*absence.LeaveRequest{annual, pending}))
}

func TestDetectPatterns_StampsInsightIdentity(t *testing.T) {
	insights := DetectPatterns("t1", "e1", spreadSpells(8, 8))
	require.NotEmpty(t, insights)
	for _, i := range insights {
		assert.Equal(t, "t1", i.TenantID)
		assert.Equal(t, "e1", i.EmployeeID)
		assert.Equal(t, absence.InsightStatusNew, i.Status)
	}
}

func ptr[T any](v T) *T {
	return &v
}
