package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSession_Expired(t *testing.T) {
	now := time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC)
	sess := &Session{ExpiresAt: now.Add(time.Hour)}

	assert.False(t, sess.Expired(now))
	assert.False(t, sess.Expired(now.Add(time.Hour)))
	assert.True(t, sess.Expired(now.Add(time.Hour+time.Second)))
}

func TestSession_AuditVerified(t *testing.T) {
	now := time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC)
	window := 15 * time.Minute

	sess := &Session{}
	assert.False(t, sess.AuditVerified(now, window), "never verified")

	verified := now.Add(-10 * time.Minute)
	sess.AuditVerifiedAt = &verified
	assert.True(t, sess.AuditVerified(now, window), "verified 10m ago inside a 15m window")

	stale := now.Add(-16 * time.Minute)
	sess.AuditVerifiedAt = &stale
	assert.False(t, sess.AuditVerified(now, window), "verified 16m ago outside a 15m window")

	exact := now.Add(-window)
	sess.AuditVerifiedAt = &exact
	assert.True(t, sess.AuditVerified(now, window), "boundary is inclusive")
}
