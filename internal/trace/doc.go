// Package trace records algorithm progress as an ordered, append-only
// history of immutable snapshots.
//
// A [Snapshot] has a common base (label, explanation, highlighted listing
// lines) and a typed [Payload]. Payloads form a closed set, one variant per
// algorithm family:
//
//   - sequence: [Array] for the sorts, [Subarray] for Kadane's scan
//   - interval: [Schedule], [Knapsack], [Activities]
//   - event:    [Coloring] for the sweep-line room allocation
//
// Renderers type-switch on the payload instead of probing optional fields.
//
// # Copy on record
//
// [Recorder.Record] clones the payload before appending it, so the caller
// may keep mutating its working data without touching recorded history:
//
//	rec := trace.NewRecorder("bubble")
//	rec.Record(trace.LabelSwap, &trace.Array{Values: work}, lines, "swap 3 and 1")
//	work[0] = 42 // history is unaffected
package trace
