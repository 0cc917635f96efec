// Package approaches groups five ways of wiring the profile update to its
// collaborators. The fifth, instruction interpretation, is package workflow.
//
//   - retention: the use case builds and keeps its own collaborators; decision
//     and I/O are interleaved.
//   - rejection: I/O is pushed to the edges around pure.Decide; collaborators
//     are still fixed at construction.
//   - parameterization: collaborators are passed in on every call.
//   - reader: the use case is a value waiting for its environment.
//   - monadmix: the decision is a Reader over the logger, wrapped in a
//     program that yields the outcome of every collaborator call.
package approaches
