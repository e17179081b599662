// Package wave turns a textual expression f(t) into the sample series
// streamed to the device. Expressions are compiled once and evaluated
// per sample over a uniform time grid.
package wave

import (
	"fmt"
	"math"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// env is the evaluation scope: the time variable plus the helpers the
// setup screen advertises.
func env(t float64) map[string]any {
	return map[string]any{
		"t":   t,
		"pi":  math.Pi,
		"sin": math.Sin,
		"cos": math.Cos,
		"abs": math.Abs,
	}
}

// Program is a validated waveform expression.
type Program struct {
	src  string
	prog *vm.Program
}

// Compile validates the expression and returns a reusable program. A
// compile error blocks progression to streaming; the caller surfaces it
// as a validity flag.
func Compile(src string) (*Program, error) {
	prog, err := expr.Compile(src, expr.Env(env(0)), expr.AsFloat64())
	if err != nil {
		return nil, fmt.Errorf("compile %q: %w", src, err)
	}
	return &Program{src: src, prog: prog}, nil
}

// Source returns the expression text.
func (p *Program) Source() string { return p.src }

// Sample evaluates the program over t ∈ [0, stopTime) stepped by
// interval, returning equal-length time and amplitude series.
func (p *Program) Sample(stopTime, interval float32) (times, amps []float32, err error) {
	if interval <= 0 {
		return nil, nil, fmt.Errorf("sampling interval must be positive, got %v", interval)
	}
	if stopTime <= 0 {
		return nil, nil, fmt.Errorf("stop time must be positive, got %v", stopTime)
	}

	// Count matches a half-open [0, stopTime) grid: the last sample
	// falls strictly before the stop time.
	n := int(math.Ceil(float64(stopTime) / float64(interval)))
	if n < 1 {
		n = 1
	}

	times = make([]float32, 0, n)
	amps = make([]float32, 0, n)
	for i := 0; i < n; i++ {
		t := float64(i) * float64(interval)
		out, err := expr.Run(p.prog, env(t))
		if err != nil {
			return nil, nil, fmt.Errorf("evaluate %q at t=%v: %w", p.src, t, err)
		}
		v, ok := out.(float64)
		if !ok {
			return nil, nil, fmt.Errorf("evaluate %q: result is %T, want number", p.src, out)
		}
		times = append(times, float32(t))
		amps = append(amps, float32(v))
	}
	return times, amps, nil
}
