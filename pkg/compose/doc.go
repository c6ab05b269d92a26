// Package compose lays card images out onto duplex page pairs.
//
// Pairs are cut into batches of one page's worth ([Batches]). Each batch
// produces two pages: the fronts, then the backs. Pair i of a batch occupies
// slot i on both pages, so after duplex printing the front and back of one
// card line up. Backs are not mirrored; the printer's duplex flip does that.
//
// Images are placed with [Fit]: scaled uniformly to fit the slot and centred,
// leaving empty bands where the aspect ratios differ.
//
// Drawing goes through the [Canvas] interface. The PDF implementation lives
// in package sink; tests use an in-memory recorder.
package compose
