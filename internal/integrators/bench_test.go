package integrators

import (
	"testing"

	"gonum.org/v1/gonum/spatial/r3"
)

func benchPusher(b *testing.B, p Pusher) {
	pos := r3.Vec{X: 5}
	vel := r3.Vec{Z: 5}
	field := r3.Vec{Y: 1}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		pos, vel = p.Push(pos, vel, 1, field, 0.01)
	}
}

func BenchmarkEuler(b *testing.B)    { benchPusher(b, NewEuler()) }
func BenchmarkLeapfrog(b *testing.B) { benchPusher(b, NewLeapfrog()) }
func BenchmarkBoris(b *testing.B)    { benchPusher(b, NewBoris()) }
func BenchmarkRK4(b *testing.B)      { benchPusher(b, NewRK4()) }
