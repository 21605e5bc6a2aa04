package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"brandcam-bot/internal/domain/port"
)

// flowEventMsg событие потока, доставленное в цикл bubbletea
type flowEventMsg struct {
	event port.FlowEvent
}

// Notifier пересылает события потоков в запущенную программу
type Notifier struct {
	program *tea.Program
}

var _ port.FlowNotifier = (*Notifier)(nil)

// NotifyFlow вызывается из таймера, поэтому только ставит сообщение в очередь программы
func (n *Notifier) NotifyFlow(ctx context.Context, ev port.FlowEvent) {
	if n.program != nil {
		n.program.Send(flowEventMsg{event: ev})
	}
}
