package entity

import "strings"

// GroupShotMode режим группового снимка
type GroupShotMode string

const (
	GroupModeRandom     GroupShotMode = "random"
	GroupModeMultiAngle GroupShotMode = "multi-angle"
)

// ParseGroupShotMode разбирает режим, "multi" считается короткой формой
func ParseGroupShotMode(s string) (GroupShotMode, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "random":
		return GroupModeRandom, true
	case "multi-angle", "multi", "multiangle":
		return GroupModeMultiAngle, true
	}
	return "", false
}

// Label возвращает подпись режима
func (m GroupShotMode) Label() string {
	if m == GroupModeMultiAngle {
		return "Несколько ракурсов"
	}
	return "Случайные позы"
}

// GroupShotSession состояние группового снимка
type GroupShotSession struct {
	ID         string
	Uploaded   *ImageRef
	Mode       GroupShotMode
	Processing bool
	LastError  *FlowError
	Result     *GenerationResult
}

// NewGroupShotSession создаёт сессию в режиме random
func NewGroupShotSession(id string) *GroupShotSession {
	return &GroupShotSession{ID: id, Mode: GroupModeRandom}
}

// Clone возвращает копию для отрисовки
func (s *GroupShotSession) Clone() GroupShotSession {
	out := *s
	if s.Uploaded != nil {
		ref := *s.Uploaded
		out.Uploaded = &ref
	}
	if s.LastError != nil {
		e := *s.LastError
		out.LastError = &e
	}
	if s.Result != nil {
		r := s.Result.Clone()
		out.Result = &r
	}
	return out
}
