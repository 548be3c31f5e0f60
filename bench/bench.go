// Package bench compares stockroom's dispatch loop against arche on the same
// Position/Velocity integration workload.
package bench

const (
	nPos    = 9000
	nPosVel = 1000
)

type Position struct {
	X float64
	Y float64
}

type Velocity struct {
	X float64
	Y float64
}
