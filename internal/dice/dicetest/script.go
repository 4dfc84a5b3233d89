// Package dicetest provides a scripted dice.Source for deterministic tests.
package dicetest

import "fmt"

// Script is a dice.Source that replays queued values in order.
// An exhausted queue yields 0 from Intn and 0.0 from Float64.
type Script struct {
	ints   []int
	floats []float64
}

// New returns an empty Script.
func New() *Script {
	return &Script{}
}

// Faces queues die faces for d6-style rolls (face 4 is queued as Intn result 3).
func (s *Script) Faces(faces ...int) *Script {
	for _, f := range faces {
		s.ints = append(s.ints, f-1)
	}
	return s
}

// Ints queues raw Intn results.
func (s *Script) Ints(values ...int) *Script {
	s.ints = append(s.ints, values...)
	return s
}

// Floats queues raw Float64 results.
func (s *Script) Floats(values ...float64) *Script {
	s.floats = append(s.floats, values...)
	return s
}

// Intn pops the next queued integer. It panics when the value is outside [0, n)
// so a mis-scripted test fails loudly instead of silently rolling garbage.
func (s *Script) Intn(n int) int {
	if len(s.ints) == 0 {
		return 0
	}
	v := s.ints[0]
	s.ints = s.ints[1:]
	if v < 0 || v >= n {
		panic(fmt.Sprintf("dicetest: scripted value %d out of range [0,%d)", v, n))
	}
	return v
}

// Float64 pops the next queued float.
func (s *Script) Float64() float64 {
	if len(s.floats) == 0 {
		return 0
	}
	v := s.floats[0]
	s.floats = s.floats[1:]
	return v
}

// Remaining reports how many integer and float values are still queued.
func (s *Script) Remaining() (ints, floats int) {
	return len(s.ints), len(s.floats)
}
