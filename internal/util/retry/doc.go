// Package retry provides bounded retry with a configurable interval strategy.
//
// The [Do] function retries an operation with a fixed number of attempts and
// either a fixed or exponentially increasing delay between them. It backs the
// role-assignment propagation retry and the deployment polling loops, so all
// three call sites share one policy instead of hand-rolled sleep loops.
package retry
