package sorting

import "slices"

// The plain variants sort a private copy without recording anything.

func QuickPlain(input []float64) Result {
	a := slices.Clone(input)
	quickSort(a, 0, len(a)-1)
	return Result{Sorted: nonNil(a)}
}

func quickSort(a []float64, lo, hi int) {
	for lo < hi {
		pivot := a[hi]
		i := lo
		for j := lo; j < hi; j++ {
			if a[j] <= pivot {
				a[i], a[j] = a[j], a[i]
				i++
			}
		}
		a[i], a[hi] = a[hi], a[i]
		// recurse into the smaller side
		if i-lo < hi-i {
			quickSort(a, lo, i-1)
			lo = i + 1
		} else {
			quickSort(a, i+1, hi)
			hi = i - 1
		}
	}
}

func MergePlain(input []float64) Result {
	a := slices.Clone(input)
	buf := make([]float64, len(a))
	mergeSort(a, buf, 0, len(a)-1)
	return Result{Sorted: nonNil(a)}
}

func mergeSort(a, buf []float64, lo, hi int) {
	if hi-lo < 1 {
		return
	}
	mid := lo + (hi-lo+1)/2 - 1
	mergeSort(a, buf, lo, mid)
	mergeSort(a, buf, mid+1, hi)
	copy(buf[lo:hi+1], a[lo:hi+1])
	i, j := lo, mid+1
	for k := lo; k <= hi; k++ {
		switch {
		case i > mid:
			a[k] = buf[j]
			j++
		case j > hi:
			a[k] = buf[i]
			i++
		case buf[i] <= buf[j]:
			a[k] = buf[i]
			i++
		default:
			a[k] = buf[j]
			j++
		}
	}
}

func HeapPlain(input []float64) Result {
	a := slices.Clone(input)
	n := len(a)
	for i := n/2 - 1; i >= 0; i-- {
		siftDown(a, i, n)
	}
	for end := n - 1; end > 0; end-- {
		a[0], a[end] = a[end], a[0]
		siftDown(a, 0, end)
	}
	return Result{Sorted: nonNil(a)}
}

func siftDown(a []float64, root, n int) {
	for {
		largest := root
		l, r := 2*root+1, 2*root+2
		if l < n && a[l] > a[largest] {
			largest = l
		}
		if r < n && a[r] > a[largest] {
			largest = r
		}
		if largest == root {
			return
		}
		a[root], a[largest] = a[largest], a[root]
		root = largest
	}
}

func BubblePlain(input []float64) Result {
	a := slices.Clone(input)
	for pass := 0; pass < len(a)-1; pass++ {
		swapped := false
		for j := 0; j < len(a)-1-pass; j++ {
			if a[j] > a[j+1] {
				a[j], a[j+1] = a[j+1], a[j]
				swapped = true
			}
		}
		if !swapped {
			break
		}
	}
	return Result{Sorted: nonNil(a)}
}

func InsertionPlain(input []float64) Result {
	a := slices.Clone(input)
	for i := 1; i < len(a); i++ {
		key := a[i]
		j := i - 1
		for j >= 0 && a[j] > key {
			a[j+1] = a[j]
			j--
		}
		a[j+1] = key
	}
	return Result{Sorted: nonNil(a)}
}

func nonNil(a []float64) []float64 {
	if a == nil {
		return []float64{}
	}
	return a
}
