package queue

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// testQueue 排序键来自外部映射，模拟调度器里风速与计时器的读取方式
func testQueue(capacity int, speeds map[int]int, seconds map[int]int) *Queue {
	q := New(capacity)
	q.SetPriority(func(roomID int) Key {
		return Key{Speed: speeds[roomID], Seconds: seconds[roomID]}
	})
	return q
}

func TestPushOrdering(t *testing.T) {
	speeds := map[int]int{1: 1, 2: 3, 3: 2}
	seconds := map[int]int{}
	q := testQueue(0, speeds, seconds)

	q.Push(1)
	q.Push(2)
	q.Push(3)

	// 风速高者在前
	assert.Equal(t, []int{2, 3, 1}, q.Members())
}

func TestTieBrokenBySeconds(t *testing.T) {
	speeds := map[int]int{1: 2, 2: 2, 3: 2}
	seconds := map[int]int{1: 5, 2: 20, 3: 10}
	q := testQueue(0, speeds, seconds)

	q.Push(1)
	q.Push(2)
	q.Push(3)

	// 同风速按在队时长降序
	assert.Equal(t, []int{2, 3, 1}, q.Members())
}

func TestCapacity(t *testing.T) {
	speeds := map[int]int{1: 2, 2: 2, 3: 3}
	q := testQueue(2, speeds, map[int]int{})

	assert.True(t, q.HasSlot())
	assert.True(t, q.Push(1))
	assert.True(t, q.Push(2))
	assert.False(t, q.HasSlot())

	// 满了之后 push 是空操作，即便优先级更高
	assert.False(t, q.Push(3))
	assert.Equal(t, 2, q.Len())
	assert.False(t, q.Contains(3))
}

func TestUnboundedQueue(t *testing.T) {
	q := testQueue(0, map[int]int{}, map[int]int{})
	for id := 1; id <= 100; id++ {
		assert.True(t, q.Push(id))
	}
	assert.True(t, q.HasSlot())
	assert.Equal(t, 100, q.Len())
}

func TestDuplicatePushIgnored(t *testing.T) {
	q := testQueue(3, map[int]int{1: 2}, map[int]int{})

	assert.True(t, q.Push(1))
	assert.False(t, q.Push(1))
	assert.Equal(t, 1, q.Len())
}

func TestPopAndPosition(t *testing.T) {
	speeds := map[int]int{1: 3, 2: 2, 3: 1}
	q := testQueue(0, speeds, map[int]int{})
	q.Push(1)
	q.Push(2)
	q.Push(3)

	assert.Equal(t, 1, q.PositionOf(1))
	assert.Equal(t, 2, q.PositionOf(2))
	assert.Equal(t, 3, q.PositionOf(3))
	assert.Equal(t, -1, q.PositionOf(9))

	assert.True(t, q.Pop(2))
	assert.False(t, q.Pop(2))
	assert.Equal(t, 2, q.PositionOf(3))
}

func TestResortAfterKeyChange(t *testing.T) {
	speeds := map[int]int{1: 2, 2: 2}
	seconds := map[int]int{1: 10, 2: 5}
	q := testQueue(0, speeds, seconds)
	q.Push(1)
	q.Push(2)
	assert.Equal(t, []int{1, 2}, q.Members())

	// 键变化本身不会移动成员，显式重排后才生效
	speeds[2] = 3
	assert.Equal(t, []int{1, 2}, q.Members())
	q.Resort()
	assert.Equal(t, []int{2, 1}, q.Members())
}

func TestStableOnEqualKeys(t *testing.T) {
	speeds := map[int]int{1: 2, 2: 2, 3: 2}
	q := testQueue(0, speeds, map[int]int{})
	q.Push(1)
	q.Push(2)
	q.Push(3)

	// 键完全相同时保持入队先后
	q.Resort()
	q.Resort()
	assert.Equal(t, []int{1, 2, 3}, q.Members())
}

func TestFrontBack(t *testing.T) {
	q := testQueue(0, map[int]int{1: 3, 2: 1}, map[int]int{})

	_, ok := q.Front()
	assert.False(t, ok)
	_, ok = q.Back()
	assert.False(t, ok)

	q.Push(2)
	q.Push(1)
	front, _ := q.Front()
	back, _ := q.Back()
	assert.Equal(t, 1, front)
	assert.Equal(t, 2, back)
}

func TestPromoteFront(t *testing.T) {
	speeds := map[int]int{1: 2, 2: 2, 3: 2}
	seconds := map[int]int{1: 30, 2: 20, 3: 10}
	q := testQueue(0, speeds, seconds)
	q.Push(1)
	q.Push(2)
	q.Push(3)

	// 等待计时清零后提到队首，稳定排序让它排在所有同键成员之前
	seconds[3] = 0
	q.PromoteFront(3)
	assert.Equal(t, []int{1, 2, 3}, q.Members(), "排序键约束仍然优先")

	seconds[1], seconds[2], seconds[3] = 0, 0, 0
	q.PromoteFront(2)
	assert.Equal(t, []int{2, 1, 3}, q.Members())
}
