package game

// Command is a discrete player intent, decoupled from any input device.
type Command uint8

const (
	CmdNone Command = iota
	MoveLaneLeft
	MoveLaneRight
	Confirm
	CyclePig
	CycleWing
	CycleTrail
)

func (c Command) String() string {
	switch c {
	case MoveLaneLeft:
		return "left"
	case MoveLaneRight:
		return "right"
	case Confirm:
		return "confirm"
	case CyclePig:
		return "pig"
	case CycleWing:
		return "wing"
	case CycleTrail:
		return "trail"
	}
	return "none"
}

// InputQueue carries commands from input producers (window callbacks, the
// terminal event pump, tests) to the tick loop.
type InputQueue struct {
	ch chan Command
}

func NewInputQueue(size int) *InputQueue {
	if size <= 0 {
		size = InputQueueSize
	}
	return &InputQueue{ch: make(chan Command, size)}
}

// Push never blocks. It reports false when the queue is full and the
// command was dropped.
func (q *InputQueue) Push(c Command) bool {
	select {
	case q.ch <- c:
		return true
	default:
		return false
	}
}

// Drain hands every queued command to fn without waiting for more.
func (q *InputQueue) Drain(fn func(Command)) {
	for {
		select {
		case c := <-q.ch:
			fn(c)
		default:
			return
		}
	}
}
