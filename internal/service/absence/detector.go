package absence

import (
	"fmt"
	"time"

	"github.com/voidstaffos/headoffice-backend-go/internal/domain/absence"
)

// Detection thresholds. The Bradford factor is spells squared times total
// days over a rolling window; the standard triggers used in UK HR practice.
const (
	bradfordHigh   = 500
	bradfordMedium = 200
	bradfordLow    = 45

	clusterMinSpells   = 3
	clusterMinFraction = 0.4

	shortNoticeDays      = 2
	shortNoticeMinSpells = 3

	postWeekendMinSpells = 2
)

// DetectPatterns runs every heuristic over one employee's sick leave history
// and returns candidate insights. Only approved sick leave counts as an
// absence spell; planned leave types carry no signal.
func DetectPatterns(tenantID, employeeID string, requests []*absence.LeaveRequest) []*absence.AbsenceInsight {
	spells := sickSpells(requests)
	if len(spells) == 0 {
		return nil
	}

	var insights []*absence.AbsenceInsight

	if i := detectBradford(spells); i != nil {
		insights = append(insights, i)
	}
	if i := detectDayOfWeekCluster(spells); i != nil {
		insights = append(insights, i)
	}
	if i := detectShortNotice(spells); i != nil {
		insights = append(insights, i)
	}
	if i := detectPostWeekend(spells); i != nil {
		insights = append(insights, i)
	}

	for _, i := range insights {
		i.TenantID = tenantID
		i.EmployeeID = employeeID
		i.Status = absence.InsightStatusNew
	}

	return insights
}

func sickSpells(requests []*absence.LeaveRequest) []*absence.LeaveRequest {
	var spells []*absence.LeaveRequest
	for _, r := range requests {
		if r.Type == absence.LeaveSick && r.Status == absence.LeaveStatusApproved {
			spells = append(spells, r)
		}
	}
	return spells
}

func relatedIDs(spells []*absence.LeaveRequest) []string {
	ids := make([]string, len(spells))
	for i, s := range spells {
		ids[i] = s.ID
	}
	return ids
}

// detectBradford scores frequency-weighted absence: S squared times D.
// Frequent short spells score far higher than one long one.
func detectBradford(spells []*absence.LeaveRequest) *absence.AbsenceInsight {
	s := len(spells)
	d := 0
	for _, spell := range spells {
		d += spell.TotalDays
	}
	score := s * s * d

	var priority absence.InsightPriority
	switch {
	case score >= bradfordHigh:
		priority = absence.PriorityHigh
	case score >= bradfordMedium:
		priority = absence.PriorityMedium
	case score >= bradfordLow:
		priority = absence.PriorityLow
	default:
		return nil
	}

	return &absence.AbsenceInsight{
		PatternType:       absence.PatternBradfordFactor,
		Priority:          priority,
		Summary:           fmt.Sprintf("Bradford factor %d: %d spells totalling %d days in the last year", score, s, d),
		BradfordScore:     &score,
		RelatedAbsenceIDs: relatedIDs(spells),
	}
}

// detectDayOfWeekCluster looks for spells that repeatedly start on the same
// weekday.
func detectDayOfWeekCluster(spells []*absence.LeaveRequest) *absence.AbsenceInsight {
	byDay := map[time.Weekday][]*absence.LeaveRequest{}
	for _, spell := range spells {
		day := spell.StartDate.Weekday()
		byDay[day] = append(byDay[day], spell)
	}

	for day, clustered := range byDay {
		if len(clustered) >= clusterMinSpells &&
			float64(len(clustered)) >= clusterMinFraction*float64(len(spells)) {
			return &absence.AbsenceInsight{
				PatternType:       absence.PatternDayOfWeekCluster,
				Priority:          absence.PriorityMedium,
				Summary:           fmt.Sprintf("%d of %d sick spells started on a %s", len(clustered), len(spells), day),
				RelatedAbsenceIDs: relatedIDs(clustered),
			}
		}
	}
	return nil
}

// detectShortNotice flags repeated same-day or next-day sick reports.
func detectShortNotice(spells []*absence.LeaveRequest) *absence.AbsenceInsight {
	var short []*absence.LeaveRequest
	for _, spell := range spells {
		if spell.NoticeDays() < shortNoticeDays {
			short = append(short, spell)
		}
	}
	if len(short) < shortNoticeMinSpells {
		return nil
	}

	return &absence.AbsenceInsight{
		PatternType:       absence.PatternShortNotice,
		Priority:          absence.PriorityMedium,
		Summary:           fmt.Sprintf("%d sick spells reported with less than %d days notice", len(short), shortNoticeDays),
		RelatedAbsenceIDs: relatedIDs(short),
	}
}

// detectPostWeekend flags spells hugging the weekend: starting Monday or
// ending Friday.
func detectPostWeekend(spells []*absence.LeaveRequest) *absence.AbsenceInsight {
	var adjacent []*absence.LeaveRequest
	for _, spell := range spells {
		if spell.StartDate.Weekday() == time.Monday || spell.EndDate.Weekday() == time.Friday {
			adjacent = append(adjacent, spell)
		}
	}
	if len(adjacent) < postWeekendMinSpells {
		return nil
	}

	return &absence.AbsenceInsight{
		PatternType:       absence.PatternPostWeekend,
		Priority:          absence.PriorityLow,
		Summary:           fmt.Sprintf("%d sick spells adjacent to a weekend", len(adjacent)),
		RelatedAbsenceIDs: relatedIDs(adjacent),
	}
}
