package sat

import (
	"reflect"
	"testing"
)

func TestQueuePushWithResizeAndRotation(t *testing.T) {
	q := &Queue[int]{
		ring:  []int{3, 4, 1, 2},
		start: 2,
		end:   2,
		size:  4,
		mask:  0b11,
	}
	want := &Queue[int]{
		ring:  []int{1, 2, 3, 4, 5, 0, 0, 0},
		start: 0,
		end:   5,
		size:  5,
		mask:  0b111,
	}

	q.Push(5)

	if !reflect.DeepEqual(want, q) {
		t.Errorf("Push: got %#v, want %#v", q, want)
	}
}

func TestQueuePopOnEmptyPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("Pop on an empty queue did not panic")
		}
	}()
	NewQueue[int](4).Pop()
}

func TestQueueFIFOOrder(t *testing.T) {
	q := NewQueue[Literal](1)
	for i := 0; i < 10; i++ {
		q.Push(PositiveLiteral(i))
	}
	for i := 0; i < 10; i++ {
		if got := q.Pop(); got != PositiveLiteral(i) {
			t.Fatalf("Pop() = %v, want %v", got, PositiveLiteral(i))
		}
	}
	if !q.IsEmpty() {
		t.Fatal("queue not empty after draining every push")
	}
}
