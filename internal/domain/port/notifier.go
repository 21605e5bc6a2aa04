package port

import (
	"context"

	"brandcam-bot/internal/domain/entity"
)

// FlowEventKind тип события потока
type FlowEventKind string

const (
	EventRecognized        FlowEventKind = "recognized"
	EventRecognitionFailed FlowEventKind = "recognition_failed"
	EventGenerated         FlowEventKind = "generated"
	EventGenerationFailed  FlowEventKind = "generation_failed"
	EventGroupShotDone     FlowEventKind = "group_shot_done"
	EventGroupShotFailed   FlowEventKind = "group_shot_failed"
)

// FlowEvent событие, пришедшее из отложенного шага потока
type FlowEvent struct {
	Kind      FlowEventKind
	UserID    int64
	ChatID    int64
	Shoot     *entity.ShootSession     // снимок сессии съёмки
	GroupShot *entity.GroupShotSession // снимок группового снимка
	Exited    bool                     // поток завершён, слой закрыт
}

// FlowNotifier получатель событий потоков (шелл)
type FlowNotifier interface {
	NotifyFlow(ctx context.Context, ev FlowEvent)
}
