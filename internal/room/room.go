// internal/room/room.go

package room

import (
	"fmt"
	"sort"

	"backend/internal/types"
)

// Room 房间的权威状态记录，只由调度器与温控引擎修改
type Room struct {
	ID          int
	InitialTemp float64
	CurrentTemp float64
	Mode        types.Mode
	TargetTemp  float64
	FanSpeed    types.FanSpeed
	State       types.PowerState
	Cost        float64 // 累计费用
}

// Store 房间表。只是一个带类型的映射，不维护任何不变式
type Store struct {
	rooms map[int]*Room
	ids   []int
}

// NewStore 按配置创建所有房间，初始状态为关机、温度为初始温度
func NewStore(rooms []*Room) *Store {
	s := &Store{rooms: make(map[int]*Room, len(rooms))}
	for _, r := range rooms {
		s.rooms[r.ID] = r
		s.ids = append(s.ids, r.ID)
	}
	sort.Ints(s.ids)
	return s
}

// NewRoom 构造一个关机状态的房间
func NewRoom(id int, initialTemp float64) *Room {
	return &Room{
		ID:          id,
		InitialTemp: initialTemp,
		CurrentTemp: initialTemp,
		Mode:        types.ModeCooling,
		FanSpeed:    types.SpeedMedium,
		State:       types.StateOff,
	}
}

// Get 返回房间，房间号不存在属于编程错误，直接 panic
func (s *Store) Get(id int) *Room {
	r, ok := s.rooms[id]
	if !ok {
		panic(fmt.Sprintf("room %d not registered", id))
	}
	return r
}

// Lookup 供边界层校验房间号使用
func (s *Store) Lookup(id int) (*Room, bool) {
	r, ok := s.rooms[id]
	return r, ok
}

// All 按房间号升序返回全部房间
func (s *Store) All() []*Room {
	out := make([]*Room, 0, len(s.ids))
	for _, id := range s.ids {
		out = append(out, s.rooms[id])
	}
	return out
}

// IDs 按升序返回全部房间号
func (s *Store) IDs() []int {
	out := make([]int, len(s.ids))
	copy(out, s.ids)
	return out
}

// Len 房间总数
func (s *Store) Len() int {
	return len(s.ids)
}
