package navigator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSignalSubscribeReplaysCurrent(t *testing.T) {
	s := NewSignal(42)

	var got []int
	unsub := s.Subscribe(func(v int) { got = append(got, v) })
	defer unsub()

	assert.Equal(t, []int{42}, got)
	assert.Equal(t, 42, s.Current())
}

func TestSignalPublishOrder(t *testing.T) {
	s := NewSignal("a")

	var first, second []string
	s.Subscribe(func(v string) { first = append(first, v) })
	s.Subscribe(func(v string) { second = append(second, v) })

	s.publish("b")
	s.publish("c")

	assert.Equal(t, []string{"a", "b", "c"}, first)
	assert.Equal(t, []string{"a", "b", "c"}, second)
	assert.Equal(t, "c", s.Current())
}

func TestSignalUnsubscribe(t *testing.T) {
	s := NewSignal(0)

	var count int
	unsub := s.Subscribe(func(int) { count++ })
	unsub()
	unsub() // idempotent
	s.publish(1)

	assert.Equal(t, 1, count, "only the subscription replay fired")
}
