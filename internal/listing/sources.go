package listing

func init() {
	register("quick", quickSrc)
	register("merge", mergeSrc)
	register("heap", heapSrc)
	register("bubble", bubbleSrc)
	register("insertion", insertionSrc)
	register("jobs", jobsSrc)
	register("knapsack", knapsackSrc)
	register("activities", activitiesSrc)
	register("coloring", coloringSrc)
	register("kadane", kadaneSrc)
}

const quickSrc = `
func quickSort(a []float64, lo, hi int) {
	if lo >= hi {                         //@range
		return
	}
	p := partition(a, lo, hi)             //@divide
	quickSort(a, lo, p-1)
	quickSort(a, p+1, hi)
}

func partition(a []float64, lo, hi int) int {
	pivot := a[hi]                        //@pivot
	i := lo
	for j := lo; j < hi; j++ {
		if a[j] <= pivot {                //@compare
			a[i], a[j] = a[j], a[i]       //@swap
			i++
		}
	}
	a[i], a[hi] = a[hi], a[i]             //@place
	return i
}
`

const mergeSrc = `
func mergeSort(a []float64, lo, hi int) {
	if hi-lo < 1 {                        //@range
		return
	}
	mid := lo + (hi-lo+1)/2 - 1           //@divide
	mergeSort(a, lo, mid)
	mergeSort(a, mid+1, hi)
	merge(a, lo, mid, hi)
}

func merge(a []float64, lo, mid, hi int) {
	left := clone(a[lo : mid+1])
	right := clone(a[mid+1 : hi+1])
	i, j, k := 0, 0, lo
	for i < len(left) && j < len(right) {
		if left[i] <= right[j] {          //@compare
			a[k] = left[i]; i++           //@write
		} else {
			a[k] = right[j]; j++          //@write
		}
		k++
	}
	for ; i < len(left); i, k = i+1, k+1 {
		a[k] = left[i]                    //@drain
	}
	for ; j < len(right); j, k = j+1, k+1 {
		a[k] = right[j]                   //@drain
	}
}
`

const heapSrc = `
func heapSort(a []float64) {
	n := len(a)
	for i := n/2 - 1; i >= 0; i-- {       //@build
		siftDown(a, i, n)
	}
	for end := n - 1; end > 0; end-- {
		a[0], a[end] = a[end], a[0]       //@extract
		siftDown(a, 0, end)
	}
}

func siftDown(a []float64, root, n int) {
	for {
		largest := root
		l, r := 2*root+1, 2*root+2
		if l < n && a[l] > a[largest] {   //@compare
			largest = l
		}
		if r < n && a[r] > a[largest] {   //@compare
			largest = r
		}
		if largest == root {
			return
		}
		a[root], a[largest] = a[largest], a[root] //@swap
		root = largest
	}
}
`

const bubbleSrc = `
func bubbleSort(a []float64) {
	for pass := 0; pass < len(a)-1; pass++ {
		swapped := false
		for j := 0; j < len(a)-1-pass; j++ {
			if a[j] > a[j+1] {            //@compare
				a[j], a[j+1] = a[j+1], a[j] //@swap
				swapped = true
			}
		}
		if !swapped {                     //@early
			return
		}
	}                                     //@pass
}
`

const insertionSrc = `
func insertionSort(a []float64) {
	for i := 1; i < len(a); i++ {
		key := a[i]                       //@key
		j := i - 1
		for j >= 0 && a[j] > key {        //@compare
			a[j+1] = a[j]                 //@shift
			j--
		}
		a[j+1] = key                      //@place
	}
}
`

const jobsSrc = `
func jobSequencing(jobs []Job) []Job {
	sortByProfitDesc(jobs)                //@sort
	slots := make([]*Job, min(maxDeadline(jobs), len(jobs))) //@setup
	for _, job := range jobs {            //@consider
		for s := min(len(slots), job.Deadline) - 1; s >= 0; s-- { //@try
			if slots[s] == nil {
				slots[s] = &job           //@place
				break
			}
		}
		// no free slot: job rejected    //@reject
	}
	return occupied(slots)                //@result
}
`

const knapsackSrc = `
func fractionalKnapsack(items []Item, capacity float64) float64 {
	sortByRatioDesc(items)                //@sort
	remaining, total := capacity, 0.0
	for _, it := range items {            //@consider
		if remaining == 0 {
			continue                      //@skip
		}
		if it.Weight <= remaining {
			remaining -= it.Weight        //@take
			total += it.Value             //@take
		} else {
			f := remaining / it.Weight    //@partial
			total += it.Value * f         //@partial
			remaining = 0
		}
	}
	return total                          //@result
}
`

const activitiesSrc = `
func selectActivities(acts []Activity) []Activity {
	sortByFinish(acts)                    //@sort
	chosen := []Activity{acts[0]}         //@first
	last := acts[0].Finish
	for _, a := range acts[1:] {
		if a.Start >= last {              //@consider
			chosen = append(chosen, a)    //@select
			last = a.Finish               //@select
		}                                 //@reject
	}
	return chosen                         //@result
}
`

const coloringSrc = `
func intervalColoring(ivs []Interval) map[int]int {
	events := buildEvents(ivs)            //@events
	sortEvents(events)                    //@sort
	color, inUse := map[int]int{}, []bool{}
	for _, ev := range events {
		if ev.End {
			inUse[color[ev.ID]] = false   //@free
			continue
		}
		c := lowestFree(inUse)            //@assign
		color[ev.ID] = c                  //@assign
		inUse[c] = true
	}
	return color                          //@result
}
`

const kadaneSrc = `
func maxSubarray(nums []float64) (float64, int, int) {
	cur, best := nums[0], nums[0]         //@setup
	start, bs, be := 0, 0, 0
	for i := 1; i < len(nums); i++ {
		if cur < 0 {
			cur, start = nums[i], i       //@reset
		} else {
			cur += nums[i]                //@extend
		}
		if cur > best {
			best, bs, be = cur, start, i  //@best
		}
	}
	return best, bs, be                   //@result
}
`
