package recruitment

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanAdvance(t *testing.T) {
	allowed := []struct {
		from, next ApplicationStage
	}{
		{StageApplied, StageScreening},
		{StageScreening, StageInterview},
		{StageInterview, StageOffer},
		{StageOffer, StageHired},
		{StageApplied, StageRejected},
		{StageScreening, StageRejected},
		{StageInterview, StageRejected},
		{StageOffer, StageRejected},
	}
	for _, c := range allowed {
		assert.True(t, CanAdvance(c.from, c.next), "%s -> %s should be allowed", c.from, c.next)
	}

	denied := []struct {
		from, next ApplicationStage
	}{
		{StageApplied, StageInterview},
		{StageApplied, StageOffer},
		{StageApplied, StageHired},
		{StageScreening, StageHired},
		{StageInterview, StageHired},
		{StageRejected, StageApplied},
		{StageRejected, StageScreening},
		{StageHired, StageRejected},
		{StageOffer, StageApplied},
		{StageApplied, StageApplied},
	}
	for _, c := range denied {
		assert.False(t, CanAdvance(c.from, c.next), "%s -> %s should be denied", c.from, c.next)
	}
}
