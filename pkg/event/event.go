// Package event 提供竞技场内部的同步事件分发
//
// 每个竞技场持有独立的 Dispatcher，关闭竞技场时清空全部订阅。
package event

import "reflect"

// EventType 事件类型
type EventType string

// Event 事件
type Event struct {
	Type EventType
	Data interface{} // 事件数据，具体类型见 types.go
}

// Listener 事件订阅者
type Listener interface {
	OnEvent(event Event)
}

// ListenerFunc 把普通函数适配为 Listener
type ListenerFunc func(event Event)

// OnEvent 调用函数本身
func (f ListenerFunc) OnEvent(event Event) {
	f(event)
}

// Dispatcher 事件分发器
// 不是并发安全的：所有调用都应来自同一个更新循环
type Dispatcher struct {
	listeners map[EventType][]subscription
	nextID    int
}

type subscription struct {
	id       int
	listener Listener
}

// NewDispatcher 创建分发器
func NewDispatcher() *Dispatcher {
	return &Dispatcher{
		listeners: make(map[EventType][]subscription),
	}
}

// Subscribe 订阅事件
// 返回取消本次订阅的函数，重复调用无副作用
func (d *Dispatcher) Subscribe(eventType EventType, listener Listener) func() {
	d.nextID++
	id := d.nextID
	d.listeners[eventType] = append(d.listeners[eventType], subscription{id: id, listener: listener})
	return func() {
		d.remove(eventType, func(s subscription) bool { return s.id == id })
	}
}

// Unsubscribe 取消订阅
// ListenerFunc 不可比较，只能通过 Subscribe 返回的函数取消
func (d *Dispatcher) Unsubscribe(eventType EventType, listener Listener) {
	if listener == nil || !reflect.TypeOf(listener).Comparable() {
		return
	}
	d.remove(eventType, func(s subscription) bool {
		return reflect.TypeOf(s.listener).Comparable() && s.listener == listener
	})
}

// Dispatch 同步通知所有订阅者，按订阅顺序调用
func (d *Dispatcher) Dispatch(event Event) {
	subs := d.listeners[event.Type]
	if len(subs) == 0 {
		return
	}
	// 回调中可能取消订阅，遍历快照
	snapshot := make([]subscription, len(subs))
	copy(snapshot, subs)
	for _, s := range snapshot {
		s.listener.OnEvent(event)
	}
}

func (d *Dispatcher) remove(eventType EventType, match func(s subscription) bool) {
	subs, exists := d.listeners[eventType]
	if !exists {
		return
	}
	for i, s := range subs {
		if match(s) {
			d.listeners[eventType] = append(subs[:i:i], subs[i+1:]...)
			return
		}
	}
}

// ListenerCount 返回某类事件的订阅者数量
func (d *Dispatcher) ListenerCount(eventType EventType) int {
	return len(d.listeners[eventType])
}

// Clear 清空全部订阅
func (d *Dispatcher) Clear() {
	d.listeners = make(map[EventType][]subscription)
}
