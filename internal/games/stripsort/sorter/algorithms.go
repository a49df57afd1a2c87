package sorter

import "sync"

func bubbleSort(s *stepper) error {
	n := s.len()
	for i := 0; i < n; i++ {
		swapped := false
		for j := 0; j < n-i-1; j++ {
			if s.get(j) > s.get(j+1) {
				if err := s.swap(j, j+1); err != nil {
					return err
				}
				swapped = true
			}
		}
		if !swapped {
			break
		}
	}
	return nil
}

func selectionSort(s *stepper) error {
	n := s.len()
	for i := 0; i < n; i++ {
		minIdx := i
		for j := i + 1; j < n; j++ {
			if s.get(j) < s.get(minIdx) {
				minIdx = j
			}
		}
		var err error
		if minIdx != i {
			err = s.swap(i, minIdx)
		} else {
			err = s.touch(i)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// insertionSort shifts each element left one exchange at a time and
// marks the final slot once more when the element moved.
func insertionSort(s *stepper) error {
	n := s.len()
	for i := 1; i < n; i++ {
		j := i
		for j > 0 && s.get(j-1) > s.get(j) {
			if err := s.swap(j-1, j); err != nil {
				return err
			}
			j--
		}
		if j != i {
			if err := s.touch(j); err != nil {
				return err
			}
		}
	}
	return nil
}

func mergeSort(s *stepper) error {
	return mergeRange(s, 0, s.len()-1)
}

func mergeRange(s *stepper, left, right int) error {
	if left >= right {
		return nil
	}
	mid := (left + right) / 2
	if err := mergeRange(s, left, mid); err != nil {
		return err
	}
	if err := mergeRange(s, mid+1, right); err != nil {
		return err
	}
	return merge(s, left, mid, right)
}

// merge combines the sorted runs [left, mid] and [mid+1, right] in place.
// Each output position gets one step: taking from the left run marks it,
// taking from the right run rotates the element into place.
func merge(s *stepper, left, mid, right int) error {
	i, j := left, mid+1
	for i <= mid && j <= right {
		if s.get(i) <= s.get(j) {
			if err := s.touch(i); err != nil {
				return err
			}
		} else {
			if err := s.rotate(j, i); err != nil {
				return err
			}
			mid++
			j++
		}
		i++
	}
	for ; i <= right; i++ {
		if err := s.touch(i); err != nil {
			return err
		}
	}
	return nil
}

func heapSort(s *stepper) error {
	n := s.len()
	for i := n/2 - 1; i >= 0; i-- {
		if err := heapify(s, n, i); err != nil {
			return err
		}
	}
	for i := n - 1; i > 0; i-- {
		if err := s.swap(0, i); err != nil {
			return err
		}
		if err := heapify(s, i, 0); err != nil {
			return err
		}
	}
	return nil
}

func heapify(s *stepper, size, root int) error {
	largest := root
	l, r := 2*root+1, 2*root+2
	if l < size && s.get(l) > s.get(largest) {
		largest = l
	}
	if r < size && s.get(r) > s.get(largest) {
		largest = r
	}
	if largest == root {
		return s.touch(root)
	}
	if err := s.swap(root, largest); err != nil {
		return err
	}
	return heapify(s, size, largest)
}

func quickSort(s *stepper) error {
	return quickRange(s, 0, s.len()-1)
}

// quickRange sorts both partitions concurrently. The ranges are disjoint
// and every write goes through the stepper lock.
func quickRange(s *stepper, low, high int) error {
	if low >= high {
		return nil
	}
	p, err := partition(s, low, high)
	if err != nil {
		return err
	}

	var (
		wg         sync.WaitGroup
		lerr, rerr error
	)
	wg.Go(func() { lerr = quickRange(s, low, p-1) })
	wg.Go(func() { rerr = quickRange(s, p+1, high) })
	wg.Wait()

	if lerr != nil {
		return lerr
	}
	return rerr
}

// partition is Lomuto with the last element as pivot.
func partition(s *stepper, low, high int) (int, error) {
	pivot := s.get(high)
	i := low - 1
	for j := low; j < high; j++ {
		if s.get(j) <= pivot {
			i++
			if err := s.swap(i, j); err != nil {
				return 0, err
			}
		} else if err := s.touch(j); err != nil {
			return 0, err
		}
	}
	if err := s.swap(i+1, high); err != nil {
		return 0, err
	}
	return i + 1, nil
}

type treeNode struct {
	id          int
	count       int
	left, right *treeNode
}

func (n *treeNode) insert(id int) *treeNode {
	if n == nil {
		return &treeNode{id: id, count: 1}
	}
	switch {
	case id == n.id:
		n.count++
	case id < n.id:
		n.left = n.left.insert(id)
	default:
		n.right = n.right.insert(id)
	}
	return n
}

func (n *treeNode) inOrder(out []int) []int {
	if n == nil {
		return out
	}
	out = n.left.inOrder(out)
	for i := 0; i < n.count; i++ {
		out = append(out, n.id)
	}
	return n.right.inOrder(out)
}

// treeSort builds an unbalanced BST, then writes the in-order sequence back.
// A position whose value must change takes it from where it currently sits,
// so every intermediate order is still a permutation.
func treeSort(s *stepper) error {
	n := s.len()
	if n == 0 {
		return nil
	}
	var root *treeNode
	where := make(map[int]int, n)
	for i := 0; i < n; i++ {
		id := s.get(i)
		root = root.insert(id)
		where[id] = i
	}
	sorted := root.inOrder(make([]int, 0, n))

	for i, want := range sorted {
		cur := s.get(i)
		if cur == want {
			continue
		}
		k := where[want]
		if err := s.swap(i, k); err != nil {
			return err
		}
		where[cur], where[want] = k, i
	}
	return nil
}
