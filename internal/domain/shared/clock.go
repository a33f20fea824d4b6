package shared

import "time"

// Clock supplies the current time; tests inject a MockClock
type Clock interface {
	Now() time.Time
}

// RealClock reads the system clock in UTC
type RealClock struct{}

func (RealClock) Now() time.Time {
	return time.Now().UTC()
}

// NewRealClock creates a RealClock
func NewRealClock() Clock {
	return RealClock{}
}

// MockClock is a Clock frozen at CurrentTime until advanced
type MockClock struct {
	CurrentTime time.Time
}

// NewMockClock creates a MockClock at start, or at a fixed date when start is zero
func NewMockClock(start time.Time) *MockClock {
	if start.IsZero() {
		start = time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	}
	return &MockClock{CurrentTime: start}
}

func (m *MockClock) Now() time.Time {
	return m.CurrentTime
}

// Advance moves the clock forward
func (m *MockClock) Advance(d time.Duration) {
	m.CurrentTime = m.CurrentTime.Add(d)
}
