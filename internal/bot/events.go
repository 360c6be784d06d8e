package bot

type SystemEventType string

const (
	SystemEventRefreshCommands SystemEventType = "refresh_commands"
)

type SystemEvent struct {
	Type    SystemEventType
	GuildID string
	Target  string
}

var systemEventBus = make(chan SystemEvent, 16)

// PublishSystemEvent never blocks; events are dropped when the bus is full.
func PublishSystemEvent(evt SystemEvent) {
	select {
	case systemEventBus <- evt:
	default:
	}
}

func SystemEvents() <-chan SystemEvent {
	return systemEventBus
}
