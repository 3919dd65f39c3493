package dispatch

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRetentionScheduler_PopsInDeadlineOrder(t *testing.T) {
	s := newRetentionScheduler()
	base := time.Unix(1000, 0)

	s.push(2, base.Add(2*time.Second))
	s.push(1, base.Add(1*time.Second))
	s.push(3, base.Add(3*time.Second))

	assert.Empty(t, s.popDue(base))

	due := s.popDue(base.Add(2 * time.Second))
	assert.Equal(t, []int{1, 2}, due)

	due = s.popDue(base.Add(10 * time.Second))
	assert.Equal(t, []int{3}, due)
}

func TestRetentionScheduler_RepushReplacesDeadline(t *testing.T) {
	s := newRetentionScheduler()
	base := time.Unix(1000, 0)

	s.push(1, base.Add(1*time.Second))
	s.push(1, base.Add(5*time.Second)) // supersedes the earlier deadline

	assert.Empty(t, s.popDue(base.Add(2*time.Second)))
	assert.Equal(t, []int{1}, s.popDue(base.Add(5*time.Second)))
}

func TestRetentionScheduler_Remove(t *testing.T) {
	s := newRetentionScheduler()
	base := time.Unix(1000, 0)

	s.push(1, base.Add(time.Second))
	s.remove(1)

	assert.Empty(t, s.popDue(base.Add(time.Hour)))
}
