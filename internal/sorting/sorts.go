package sorting

import (
	"slices"

	"github.com/san-kum/algoviz/internal/trace"
)

// Quick sorts with Lomuto partitioning around the last element of each range.
// Every comparison against the pivot and every swap, including self swaps,
// is recorded.
func Quick(input []float64) (*trace.History, Result) {
	t := begin("quick", input)
	if t == nil {
		return empty("quick")
	}
	var sort func(lo, hi int)
	sort = func(lo, hi int) {
		if lo >= hi {
			if lo == hi {
				t.markSorted(lo)
			}
			return
		}
		t.record(trace.LabelDivide, trace.Markers{trace.MarkRange: span(lo, hi)}, "divide",
			"partition range [%d, %d]", lo, hi)
		p := t.partition(lo, hi)
		t.markSorted(p)
		sort(lo, p-1)
		sort(p+1, hi)
	}
	sort(0, len(t.a)-1)
	return t.finish()
}

func (t *tracer) partition(lo, hi int) int {
	pivot := t.a[hi]
	t.record(trace.LabelPivot, trace.Markers{trace.MarkPivot: {hi}, trace.MarkRange: span(lo, hi)}, "pivot",
		"pivot is %s at index %d", fmtNum(pivot), hi)
	i := lo
	for j := lo; j < hi; j++ {
		t.record(trace.LabelCompare, trace.Markers{trace.MarkComparing: {j, hi}, trace.MarkPivot: {hi}}, "compare",
			"is %s <= pivot %s?", fmtNum(t.a[j]), fmtNum(pivot))
		if t.a[j] <= pivot {
			t.swap(i, j)
			t.record(trace.LabelSwap, trace.Markers{trace.MarkSwapping: {i, j}, trace.MarkPivot: {hi}}, "swap",
				"move %s left: swap indices %d and %d", fmtNum(t.a[i]), i, j)
			i++
		}
	}
	t.swap(i, hi)
	t.record(trace.LabelPlace, trace.Markers{trace.MarkSwapping: {i, hi}, trace.MarkPivot: {i}}, "place",
		"pivot %s lands at its final index %d", fmtNum(pivot), i)
	return i
}

// Merge is a top-down merge sort. Ties take the left element, so the sort is stable.
func Merge(input []float64) (*trace.History, Result) {
	t := begin("merge", input)
	if t == nil {
		return empty("merge")
	}
	var sort func(lo, hi int)
	sort = func(lo, hi int) {
		if hi-lo < 1 {
			return
		}
		// left half holds floor(n/2) elements
		mid := lo + (hi-lo+1)/2 - 1
		t.record(trace.LabelDivide, trace.Markers{trace.MarkRange: span(lo, hi)}, "divide",
			"split [%d, %d] into [%d, %d] and [%d, %d]", lo, hi, lo, mid, mid+1, hi)
		sort(lo, mid)
		sort(mid+1, hi)
		t.merge(lo, mid, hi)
	}
	sort(0, len(t.a)-1)
	return t.finish()
}

func (t *tracer) merge(lo, mid, hi int) {
	left := slices.Clone(t.a[lo : mid+1])
	right := slices.Clone(t.a[mid+1 : hi+1])
	merging := span(lo, hi)
	i, j, k := 0, 0, lo
	for i < len(left) && j < len(right) {
		t.record(trace.LabelCompare, trace.Markers{trace.MarkMerging: merging, trace.MarkComparing: {k}}, "compare",
			"is %s <= %s?", fmtNum(left[i]), fmtNum(right[j]))
		// ties take the left run first
		side := "left"
		if left[i] <= right[j] {
			t.a[k] = left[i]
			i++
		} else {
			t.a[k] = right[j]
			j++
			side = "right"
		}
		t.record(trace.LabelWrite, trace.Markers{trace.MarkMerging: merging, trace.MarkSwapping: {k}}, "write",
			"write %s from the %s run to index %d", fmtNum(t.a[k]), side, k)
		k++
	}
	for ; i < len(left); i, k = i+1, k+1 {
		t.a[k] = left[i]
		t.record(trace.LabelWrite, trace.Markers{trace.MarkMerging: merging, trace.MarkSwapping: {k}}, "drain",
			"copy remaining %s to index %d", fmtNum(t.a[k]), k)
	}
	for ; j < len(right); j, k = j+1, k+1 {
		t.a[k] = right[j]
		t.record(trace.LabelWrite, trace.Markers{trace.MarkMerging: merging, trace.MarkSwapping: {k}}, "drain",
			"copy remaining %s to index %d", fmtNum(t.a[k]), k)
	}
}

// Heap builds a max-heap bottom up, then repeatedly swaps the root behind
// the unsorted region and sifts the new root down.
func Heap(input []float64) (*trace.History, Result) {
	t := begin("heap", input)
	if t == nil {
		return empty("heap")
	}
	n := len(t.a)
	for i := n/2 - 1; i >= 0; i-- {
		t.record(trace.LabelHeapify, trace.Markers{trace.MarkKey: {i}, trace.MarkRange: span(i, n-1)}, "build",
			"heapify the subtree rooted at %d", i)
		t.siftDown(i, n)
	}
	for end := n - 1; end > 0; end-- {
		t.swap(0, end)
		t.markSorted(end)
		t.record(trace.LabelExtract, trace.Markers{trace.MarkSwapping: {0, end}}, "extract",
			"move max %s to index %d", fmtNum(t.a[end]), end)
		t.siftDown(0, end)
	}
	return t.finish()
}

func (t *tracer) siftDown(root, n int) {
	for {
		largest := root
		l, r := 2*root+1, 2*root+2
		if l < n {
			t.record(trace.LabelCompare, trace.Markers{trace.MarkComparing: {l, largest}}, "compare",
				"is child %s > %s?", fmtNum(t.a[l]), fmtNum(t.a[largest]))
			if t.a[l] > t.a[largest] {
				largest = l
			}
		}
		if r < n {
			t.record(trace.LabelCompare, trace.Markers{trace.MarkComparing: {r, largest}}, "compare",
				"is child %s > %s?", fmtNum(t.a[r]), fmtNum(t.a[largest]))
			if t.a[r] > t.a[largest] {
				largest = r
			}
		}
		if largest == root {
			return
		}
		t.swap(root, largest)
		t.record(trace.LabelSwap, trace.Markers{trace.MarkSwapping: {root, largest}}, "swap",
			"sift %s down to index %d", fmtNum(t.a[largest]), largest)
		root = largest
	}
}

// Bubble swaps adjacent out-of-order pairs and stops after a pass with no swaps.
func Bubble(input []float64) (*trace.History, Result) {
	t := begin("bubble", input)
	if t == nil {
		return empty("bubble")
	}
	n := len(t.a)
	for pass := 0; pass < n-1; pass++ {
		swapped := false
		for j := 0; j < n-1-pass; j++ {
			t.record(trace.LabelCompare, trace.Markers{trace.MarkComparing: {j, j + 1}}, "compare",
				"is %s > %s?", fmtNum(t.a[j]), fmtNum(t.a[j+1]))
			if t.a[j] > t.a[j+1] {
				t.swap(j, j+1)
				t.record(trace.LabelSwap, trace.Markers{trace.MarkSwapping: {j, j + 1}}, "swap",
					"swap indices %d and %d", j, j+1)
				swapped = true
			}
		}
		t.markSorted(n - 1 - pass)
		if !swapped {
			t.record(trace.LabelEarlyExit, nil, "early",
				"pass %d made no swaps, so the array is sorted", pass+1)
			break
		}
	}
	return t.finish()
}

// Insertion grows a sorted prefix by shifting larger elements right of each key.
func Insertion(input []float64) (*trace.History, Result) {
	t := begin("insertion", input)
	if t == nil {
		return empty("insertion")
	}
	for i := 1; i < len(t.a); i++ {
		key := t.a[i]
		t.record(trace.LabelKey, trace.Markers{trace.MarkKey: {i}, trace.MarkRange: span(0, i-1)}, "key",
			"take key %s from index %d", fmtNum(key), i)
		j := i - 1
		for j >= 0 {
			t.record(trace.LabelCompare, trace.Markers{trace.MarkComparing: {j}, trace.MarkKey: {j + 1}}, "compare",
				"is %s > key %s?", fmtNum(t.a[j]), fmtNum(key))
			if t.a[j] <= key {
				break
			}
			t.a[j+1] = t.a[j]
			t.record(trace.LabelShift, trace.Markers{trace.MarkSwapping: {j, j + 1}}, "shift",
				"shift %s right to index %d", fmtNum(t.a[j]), j+1)
			j--
		}
		t.a[j+1] = key
		t.record(trace.LabelPlace, trace.Markers{trace.MarkKey: {j + 1}}, "place",
			"place key %s at index %d", fmtNum(key), j+1)
	}
	return t.finish()
}
