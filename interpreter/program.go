package interpreter

import (
	"errors"
	"fmt"
	"sync"
)

// Yield hands an instruction to the driver and returns the value the driver
// resumes the program with.
type Yield[I any] func(instr I) any

// Body is the definition of a program.
type Body[I, R any] func(yield Yield[I]) (R, error)

// ErrProgramPanicked wraps a panic raised inside a program body.
var ErrProgramPanicked = errors.New("program panicked")

// ErrProgramStopped is the Result error of a program stopped before its
// body returned.
var ErrProgramStopped = errors.New("program stopped")

// Program is a single-pass coroutine over a Body.
//
// The body runs on its own goroutine but never concurrently with its driver:
// control passes back and forth through unbuffered channels at every yield.
// A Program is meant to be driven from a single goroutine.
type Program[I, R any] struct {
	body Body[I, R]

	instrCh  chan I
	resumeCh chan any
	doneCh   chan struct{}
	stopCh   chan struct{}
	stopOnce sync.Once

	started  bool
	finished bool

	result R
	err    error
}

// New creates a program that has not started yet.
func New[I, R any](body Body[I, R]) *Program[I, R] {
	return &Program[I, R]{
		body:     body,
		instrCh:  make(chan I),
		resumeCh: make(chan any),
		doneCh:   make(chan struct{}),
		stopCh:   make(chan struct{}),
	}
}

// Next resumes the program and returns its next instruction.
//
// The resumed value becomes the return value of the pending yield; it is
// ignored on the first call. ok is false once the body has returned.
func (p *Program[I, R]) Next(resumed any) (instr I, ok bool) {
	if p.finished {
		return instr, false
	}
	if !p.started {
		p.started = true
		go p.run()
	} else {
		select {
		case p.resumeCh <- resumed:
		case <-p.doneCh:
		}
	}

	select {
	case instr = <-p.instrCh:
		return instr, true
	case <-p.doneCh:
		p.finished = true
		return instr, false
	}
}

// Result returns what the body returned. It is only meaningful after Next
// has reported that the program finished.
func (p *Program[I, R]) Result() (R, error) {
	return p.result, p.err
}

// Done reports whether the body has returned or the program was stopped.
func (p *Program[I, R]) Done() bool {
	return p.finished
}

// Stop abandons the program. A suspended body is unwound and its goroutine
// exits before Stop returns; Result then reports ErrProgramStopped.
// Stopping a finished program does nothing.
func (p *Program[I, R]) Stop() {
	if p.finished {
		return
	}
	p.finished = true
	if !p.started {
		p.err = ErrProgramStopped
		return
	}
	p.stopOnce.Do(func() { close(p.stopCh) })
	<-p.doneCh
}

func (p *Program[I, R]) run() {
	defer close(p.doneCh)
	defer func() {
		if r := recover(); r != nil {
			if err, ok := r.(error); ok && errors.Is(err, ErrProgramStopped) {
				p.err = ErrProgramStopped
				return
			}
			p.err = fmt.Errorf("%w: %v", ErrProgramPanicked, r)
		}
	}()

	p.result, p.err = p.body(p.yield)
}

func (p *Program[I, R]) yield(instr I) any {
	select {
	case p.instrCh <- instr:
	case <-p.stopCh:
		panic(ErrProgramStopped)
	}

	select {
	case v := <-p.resumeCh:
		return v
	case <-p.stopCh:
		panic(ErrProgramStopped)
	}
}
