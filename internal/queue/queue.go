// internal/queue/queue.go

// Package queue 实现容量受限的优先级队列。
// 排序键由构造后注入一次的回调给出：风速高者在前，同风速按在队时长降序。
// 排序使用稳定排序，键完全相同时保持原有先后关系。
package queue

import "sort"

// Key 队列排序键
type Key struct {
	Speed   int // 风速即优先级，低=1 中=2 高=3
	Seconds int // 在队时长（服务队列为服务时长，等待队列为等待时长）
}

// less 报告 a 是否应排在 b 之前
func less(a, b Key) bool {
	if a.Speed != b.Speed {
		return a.Speed > b.Speed
	}
	return a.Seconds > b.Seconds
}

// PriorityFunc 按房间号返回当前排序键
type PriorityFunc func(roomID int) Key

// Queue 房间号的有序序列，成员唯一
type Queue struct {
	capacity int // 0 表示不设上限
	priority PriorityFunc
	ids      []int
}

// New 创建队列，capacity 为 0 时不限制成员数量
func New(capacity int) *Queue {
	return &Queue{capacity: capacity}
}

// SetPriority 注入排序回调，只在构造后调用一次
func (q *Queue) SetPriority(fn PriorityFunc) {
	q.priority = fn
}

// HasSlot 报告是否还有空位
func (q *Queue) HasSlot() bool {
	return q.capacity == 0 || len(q.ids) < q.capacity
}

// Push 入队并重排。成员已存在或队列已满时不做任何事，返回是否入队
func (q *Queue) Push(id int) bool {
	if q.Contains(id) || !q.HasSlot() {
		return false
	}
	q.ids = append(q.ids, id)
	q.Resort()
	return true
}

// Pop 将指定房间移出队列，返回是否存在
func (q *Queue) Pop(id int) bool {
	for i, v := range q.ids {
		if v == id {
			q.ids = append(q.ids[:i], q.ids[i+1:]...)
			return true
		}
	}
	return false
}

// Contains 报告房间是否在队列中
func (q *Queue) Contains(id int) bool {
	for _, v := range q.ids {
		if v == id {
			return true
		}
	}
	return false
}

// PositionOf 返回 1 起始的队列位置，不在队列中返回 -1
func (q *Queue) PositionOf(id int) int {
	for i, v := range q.ids {
		if v == id {
			return i + 1
		}
	}
	return -1
}

// Members 按当前顺序返回成员副本
func (q *Queue) Members() []int {
	out := make([]int, len(q.ids))
	copy(out, q.ids)
	return out
}

// Len 成员数量
func (q *Queue) Len() int {
	return len(q.ids)
}

// Front 返回队首（最高优先级）
func (q *Queue) Front() (int, bool) {
	if len(q.ids) == 0 {
		return 0, false
	}
	return q.ids[0], true
}

// Back 返回队尾（最低优先级：风速最低且在队最短）
func (q *Queue) Back() (int, bool) {
	if len(q.ids) == 0 {
		return 0, false
	}
	return q.ids[len(q.ids)-1], true
}

// Resort 在排序键发生变化（风速调整、计时推进）后重排队列
func (q *Queue) Resort() {
	if q.priority == nil {
		return
	}
	sort.SliceStable(q.ids, func(i, j int) bool {
		return less(q.priority(q.ids[i]), q.priority(q.ids[j]))
	})
}

// PromoteFront 将成员移到队首后重排。
// 稳定排序保证它排在所有同键成员之前，排序键的约束仍然优先。
func (q *Queue) PromoteFront(id int) {
	for i, v := range q.ids {
		if v == id {
			copy(q.ids[1:i+1], q.ids[:i])
			q.ids[0] = id
			q.Resort()
			return
		}
	}
}
