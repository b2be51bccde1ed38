// Package compute provides the summation backends for Coulomb
// superposition.
//
// The CPU backend runs the element sum serially for small element
// counts and splits it into fixed worker chunks above a threshold.
// Partial sums are combined in chunk order, so a given process always
// returns bit-identical results for identical inputs. Parallelism is
// purely a performance concern; the degenerate-distance exclusion is
// applied per element in either path.
package compute
