package sink

import (
	"math"
	"testing"
	"time"

	"github.com/milosgajdos/go-odometry/estimate"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
)

func newEstimate(t *testing.T, pose estimate.Pose) *estimate.PoseEstimate {
	e, err := estimate.New(time.Unix(0, 0), pose, nil, estimate.Twist{Linear: 0.05}, false)
	if err != nil {
		t.Fatalf("failed to create estimate: %v", err)
	}

	return e
}

func TestFuncTee(t *testing.T) {
	assert := assert.New(t)

	var got []*estimate.PoseEstimate
	f := Func(func(e *estimate.PoseEstimate) { got = append(got, e) })

	e := newEstimate(t, estimate.Pose{X: 1})
	Tee{f, Discard, f}.Publish(e)

	assert.Len(got, 2)
	assert.Same(e, got[0])
	assert.Same(e, got[1])
}

func TestWrapHeading(t *testing.T) {
	assert := assert.New(t)

	r := NewRecorder()
	s := WrapHeading(r)

	e := newEstimate(t, estimate.Pose{Theta: 3 * math.Pi})
	s.Publish(e)

	assert.Equal(1, r.Len())
	assert.InDelta(math.Pi, math.Abs(r.Last().Pose().Theta), 1e-9)
	assert.Equal(3*math.Pi, e.Pose().Theta)
}

func TestChannel(t *testing.T) {
	assert := assert.New(t)

	c := NewChannel(2)
	for i := 0; i < 5; i++ {
		c.Publish(newEstimate(t, estimate.Pose{X: float64(i)}))
	}
	assert.Equal(uint64(3), c.Dropped())

	c.Close()

	var xs []float64
	for e := range c.C() {
		xs = append(xs, e.Pose().X)
	}
	assert.Equal([]float64{0, 1}, xs)

	// unbuffered channel without a receiver drops everything
	c = NewChannel(-1)
	c.Publish(newEstimate(t, estimate.Pose{}))
	assert.Equal(uint64(1), c.Dropped())
}

func TestRecorder(t *testing.T) {
	assert := assert.New(t)

	r := NewRecorder()
	assert.Equal(0, r.Len())
	assert.Nil(r.Last())
	assert.Nil(r.Trajectory())

	for i := 0; i < 3; i++ {
		r.Publish(newEstimate(t, estimate.Pose{X: float64(i), Y: float64(-i)}))
	}

	assert.Equal(3, r.Len())
	assert.Len(r.Estimates(), 3)
	assert.Equal(2.0, r.Last().Pose().X)

	traj := r.Trajectory()
	rows, cols := traj.Dims()
	assert.Equal(3, rows)
	assert.Equal(2, cols)
	for i := 0; i < rows; i++ {
		assert.Equal(float64(i), traj.At(i, 0))
		assert.Equal(float64(-i), traj.At(i, 1))
	}
}

func TestLogger(t *testing.T) {
	assert := assert.New(t)

	l, hook := test.NewNullLogger()
	l.SetLevel(logrus.DebugLevel)

	s := NewLogger(l, logrus.DebugLevel)
	s.Publish(newEstimate(t, estimate.Pose{X: 1, Y: 2, Theta: 3}))

	assert.Len(hook.Entries, 1)
	entry := hook.LastEntry()
	assert.Equal(logrus.DebugLevel, entry.Level)
	assert.Equal("pose", entry.Message)
	assert.Equal(1.0, entry.Data["x"])
	assert.Equal(2.0, entry.Data["y"])
	assert.Equal(3.0, entry.Data["theta"])
	assert.Equal(0.05, entry.Data["linear"])
	assert.Equal(false, entry.Data["stale"])

	// entries below logger level are not logged
	l.SetLevel(logrus.InfoLevel)
	s.Publish(newEstimate(t, estimate.Pose{}))
	assert.Len(hook.Entries, 1)
}
