// internal/timer/timer.go

// Package timer 维护按房间号索引的单调秒计数器。
// 服务时长与等待时长各用一个实例，条目只在房间位于对应队列时存在。
package timer

// Timer 房间号到秒数的映射，由调度器在持锁状态下访问
type Timer struct {
	seconds map[int]int
}

func New() *Timer {
	return &Timer{seconds: make(map[int]int)}
}

// Create 建立条目并清零，重复调用等价于 Reset
func (t *Timer) Create(id int) {
	t.seconds[id] = 0
}

// Reset 清零已有条目
func (t *Timer) Reset(id int) {
	t.seconds[id] = 0
}

// Remove 删除条目，表示房间离开了对应队列
func (t *Timer) Remove(id int) {
	delete(t.seconds, id)
}

// Tick 为所有条目增加 delta 秒
func (t *Timer) Tick(delta int) {
	for id := range t.seconds {
		t.seconds[id] += delta
	}
}

// Get 返回条目秒数，不存在时返回 0
func (t *Timer) Get(id int) int {
	return t.seconds[id]
}

// Has 报告条目是否存在
func (t *Timer) Has(id int) bool {
	_, ok := t.seconds[id]
	return ok
}

// Len 条目数量
func (t *Timer) Len() int {
	return len(t.seconds)
}
