package telegram

import (
	"errors"
	"fmt"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	app "brandcam-bot/internal/application"
	"brandcam-bot/internal/domain/entity"
	"brandcam-bot/internal/domain/port"
)

func TestRenderScreen_HomeListsFeatures(t *testing.T) {
	text, markup := renderScreen(&app.Screen{
		Navigation: entity.NewNavigationState(),
		Title:      "BrandCam",
	})

	assert.Contains(t, text, "Вкладка: Главная")
	assert.Contains(t, text, "/feature group-shot")
	assert.NotContains(t, text, "/back")
	assert.IsType(t, tgbotapi.ReplyKeyboardMarkup{}, markup)
}

func TestRenderScreen_EmptyTab(t *testing.T) {
	nav := entity.NewNavigationState()
	nav.ActiveTab = entity.TabGallery

	text, _ := renderScreen(&app.Screen{Navigation: nav, Title: "BrandCam"})

	assert.Contains(t, text, msgInDevelopment)
}

func TestRenderScreen_ResultStep(t *testing.T) {
	outer := entity.CategoryOuter
	nav := entity.NewNavigationState()
	nav.Overlay = entity.OverlayCamera
	nav.ShootMode = entity.ShootModeOutfit

	shoot := entity.NewShootSession("s1", entity.ShootModeOutfit)
	shoot.Step = entity.StepResult
	shoot.Identified = &outer
	shoot.Outfit = entity.Outfit{entity.CategoryOuter: "jacket"}

	text, markup := renderScreen(&app.Screen{Navigation: nav, Title: "BrandCam", ShowBack: true, Shoot: shoot})

	assert.Contains(t, text, "Распознано: Верхняя одежда")
	assert.Contains(t, text, "• Верхняя одежда: jacket")
	assert.Contains(t, text, "• Обувь: —")
	assert.Contains(t, text, "/back")

	kb, ok := markup.(tgbotapi.InlineKeyboardMarkup)
	assert.True(t, ok)
	assert.Len(t, kb.InlineKeyboard, 4)
}

func TestRenderScreen_GeneratingHidesActions(t *testing.T) {
	nav := entity.NewNavigationState()
	nav.Overlay = entity.OverlayCamera
	shoot := entity.NewShootSession("s1", entity.ShootModeModel)
	shoot.Step = entity.StepResult
	shoot.Generating = true

	text, markup := renderScreen(&app.Screen{Navigation: nav, Shoot: shoot})

	assert.Contains(t, text, "Генерирую")
	assert.NotContains(t, text, "/confirm")
	kb := markup.(tgbotapi.InlineKeyboardMarkup)
	assert.Len(t, kb.InlineKeyboard, 1)
}

func TestRenderEvent(t *testing.T) {
	shoot := entity.NewShootSession("s1", entity.ShootModeModel)
	shoot.LastError = &entity.FlowError{Reason: entity.ReasonTimeout, Err: entity.ErrRecognitionFailed}

	text := renderEvent(port.FlowEvent{Kind: port.EventRecognitionFailed, Shoot: shoot})
	assert.Equal(t, "⚠️ Сервис не ответил вовремя.", text)

	group := entity.NewGroupShotSession("g1")
	group.Result = &entity.GenerationResult{Images: []entity.ImageRef{"a", "b"}}
	text = renderEvent(port.FlowEvent{Kind: port.EventGroupShotDone, GroupShot: group})
	assert.Equal(t, "✨ Групповой снимок готов!\na\nb", text)
}

func TestDescribeError(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{entity.ErrNoFlow, msgNoFlow},
		{fmt.Errorf("replace: %w", entity.ErrEmptyPool), msgEmptyPool},
		{fmt.Errorf("go: %w", entity.ErrInvalidInput), msgNeedUpload},
		{fmt.Errorf("capture in processing: %w", entity.ErrInvalidState), msgInvalidState},
		{errors.New("boom"), msgProcessingError},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, describeError(tt.err), tt.err.Error())
	}
}

func TestRenderScreen_CompleteOutfitHidesAutofill(t *testing.T) {
	nav := entity.NewNavigationState()
	nav.Overlay = entity.OverlayCamera
	shoot := entity.NewShootSession("s1", entity.ShootModeOutfit)
	shoot.Step = entity.StepResult
	for _, c := range entity.Categories() {
		shoot.Outfit[c] = entity.ImageRef("ref-" + string(c))
	}

	text, markup := renderScreen(&app.Screen{Navigation: nav, Shoot: shoot})

	assert.NotContains(t, text, "/autofill")
	kb := markup.(tgbotapi.InlineKeyboardMarkup)
	require.Len(t, kb.InlineKeyboard, 4)
	actions := kb.InlineKeyboard[2]
	require.Len(t, actions, 1)
	assert.Equal(t, "confirm:", *actions[0].CallbackData)
}

func TestFeatureHint(t *testing.T) {
	assert.Contains(t, featureHint("product studio"), "«Ретушь»: /retouch")
	assert.Contains(t, featureHint("pose control"), "«Главная»: /home")
	assert.Equal(t, msgUnknownFeature, featureHint("что-то другое"))
}
