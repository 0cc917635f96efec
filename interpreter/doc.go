// Package interpreter runs programs that describe their side effects as data.
//
// A program is written as straight-line Go code that calls yield for every
// effect it needs. Each call suspends the program until the driver has
// handled the instruction and resumes it with the handler's result:
//
//	program := interpreter.New(func(yield interpreter.Yield[Instr]) (int, error) {
//	    n := yield(ReadNumber{}).(int)
//	    yield(Print{Value: n * 2})
//	    return n, nil
//	})
//	result, trace, err := interpreter.Run(ctx, program, handle)
//
// The driver knows nothing about the instructions. Only the handler gives
// them meaning, so the same program can be run against production
// collaborators, context-scoped effect handlers or test doubles.
//
// Instructions are handled one at a time and in the order they are yielded;
// a program never has two instructions in flight.
package interpreter
