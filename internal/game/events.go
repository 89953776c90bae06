package game

type EventType int

const (
	EventRunStarted EventType = iota
	EventLaneChanged
	EventBiomeChanged
	EventObstacleDodged
	EventGameOver
	EventMenuReveal
	EventLoadoutChanged
)

type Event struct {
	Type     EventType
	Biome    Biome
	Lane     int
	Score    float64
	Distance float64
	Dodged   int
	Ticks    int
	Loadout  Loadout
}

type EventHandler func(Event)

// EventBus fans events out synchronously on the tick goroutine.
type EventBus struct {
	handlers map[EventType][]EventHandler
}

func NewEventBus() *EventBus {
	return &EventBus{
		handlers: make(map[EventType][]EventHandler),
	}
}

func (eb *EventBus) Subscribe(t EventType, fn EventHandler) {
	eb.handlers[t] = append(eb.handlers[t], fn)
}

func (eb *EventBus) Emit(e Event) {
	if eb == nil {
		return
	}
	for _, fn := range eb.handlers[e.Type] {
		fn(e)
	}
}
