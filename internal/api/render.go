package telegram

import (
	"errors"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	app "brandcam-bot/internal/application"
	"brandcam-bot/internal/domain/entity"
	"brandcam-bot/internal/domain/port"
)

const (
	msgStart = `👋 Привет! Это BrandCam — AI-студия для фото товаров.

📸 /shoot — съёмка: выберите режим, отправьте фото, соберите образ
🪄 /retouch — инструменты ретуши
🏠 /home — главная

/help — справка`

	msgHelp = `ℹ️ Как пользоваться ботом:

1️⃣ /shoot и выберите режим съёмки
2️⃣ Отправьте фото товара — бот определит категорию
3️⃣ Соберите образ: /autofill, /replace <категория>, /clear <категория>
4️⃣ /confirm — сгенерировать результат

👥 /groupshot — групповой снимок: /upload, /groupmode random|multi, /go

📋 Навигация:
/home /assets /retouch /gallery — вкладки
/feature <название> — открыть функцию
/back — назад, /cancel — отменить съёмку
/status — что сейчас на экране`

	msgSendPhoto       = "📸 Отправьте фото товара."
	msgUnknownCommand  = "❓ Неизвестная команда. Используйте /help для справки."
	msgUnknownFeature  = "❓ Не нашёл такую функцию на этой вкладке."
	msgUnknownCategory = "❓ Неизвестная категория. Варианты: hat, outer, inner, pants, shoes."
	msgNoFlow          = "Нет активной съёмки. Начните с /shoot."
	msgInvalidState    = "⏳ Сейчас это действие недоступно."
	msgNeedUpload      = "Сначала загрузите фото: отправьте его или нажмите /upload."
	msgEmptyPool       = "В каталоге нет образцов для этой категории."
	msgProcessingError = "⚠️ Не удалось обработать изображение. Попробуйте сделать другое фото."
	msgInDevelopment   = "🚧 Функция в разработке..."
)

var tabLabels = map[entity.Tab]string{
	entity.TabHome:    "Главная",
	entity.TabAssets:  "Ассеты",
	entity.TabShoot:   "Съёмка",
	entity.TabRetouch: "Ретушь",
	entity.TabGallery: "Галерея",
}

// renderScreen строит текст и клавиатуру экрана
func renderScreen(scr *app.Screen) (string, interface{}) {
	var b strings.Builder
	fmt.Fprintf(&b, "📷 %s", scr.Title)
	if scr.ShowBack {
		b.WriteString("   ◀️ /back")
	}
	b.WriteString("\n\n")

	nav := scr.Navigation
	switch nav.Overlay {
	case entity.OverlayShootMenu:
		b.WriteString("Выберите режим съёмки:\n")
		for _, m := range entity.ShootModes() {
			fmt.Fprintf(&b, "• %s — /mode %s\n", m.Label(), m)
		}
		return b.String(), shootMenuKeyboard()
	case entity.OverlayCamera:
		if scr.Shoot == nil {
			b.WriteString(msgNoFlow)
			return b.String(), nil
		}
		return b.String() + renderShoot(scr.Shoot), shootKeyboard(scr.Shoot)
	case entity.OverlayGroupShot:
		if scr.GroupShot == nil {
			b.WriteString(msgNoFlow)
			return b.String(), nil
		}
		return b.String() + renderGroupShot(scr.GroupShot), groupShotKeyboard(scr.GroupShot)
	}

	if nav.SelectedFeature != "" {
		info, _ := entity.LookupFeature(nav.SelectedFeature)
		fmt.Fprintf(&b, "%s\n\nЗагрузите изображение и настройте параметры, AI сгенерирует результат.", info.Description)
		return b.String(), nil
	}

	fmt.Fprintf(&b, "Вкладка: %s\n", tabLabels[nav.ActiveTab])
	features := entity.FeaturesFor(nav.ActiveTab)
	if len(features) == 0 {
		b.WriteString(msgInDevelopment)
		return b.String(), tabKeyboard()
	}
	for _, f := range features {
		fmt.Fprintf(&b, "• %s — %s\n  /feature %s\n", f.Title, f.Description, f.ID)
	}
	return b.String(), tabKeyboard()
}

func renderShoot(s *entity.ShootSession) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Режим: %s\n", s.Mode.Label())
	if s.LastError != nil {
		fmt.Fprintf(&b, "⚠️ %s\n", describeFlowError(s.LastError))
	}

	switch s.Step {
	case entity.StepCamera:
		b.WriteString(msgSendPhoto)
	case entity.StepProcessing:
		b.WriteString("⏳ Распознаю товар...")
	case entity.StepResult:
		if s.Identified != nil {
			fmt.Fprintf(&b, "Распознано: %s\n", s.Identified.Label())
		}
		b.WriteString("\n👗 Образ:\n")
		for _, c := range entity.Categories() {
			ref := s.Outfit[c]
			if ref == "" {
				fmt.Fprintf(&b, "• %s: —\n", c.Label())
				continue
			}
			fmt.Fprintf(&b, "• %s: %s\n", c.Label(), ref)
		}
		switch {
		case s.Generating:
			b.WriteString("\n⏳ Генерирую образ...")
		case s.Outfit.Complete():
			b.WriteString("\n/replace <категория> /clear <категория> /confirm")
		default:
			b.WriteString("\n/autofill /replace <категория> /clear <категория> /confirm")
		}
	}
	return b.String()
}

func renderGroupShot(s *entity.GroupShotSession) string {
	var b strings.Builder
	b.WriteString("👥 Групповой снимок\n")
	if s.LastError != nil {
		fmt.Fprintf(&b, "⚠️ %s\n", describeFlowError(s.LastError))
	}
	if s.Uploaded == nil {
		b.WriteString("Фото: не загружено (отправьте фото или /upload)\n")
	} else {
		fmt.Fprintf(&b, "Фото: %s\n", *s.Uploaded)
	}
	fmt.Fprintf(&b, "Режим: %s\n", s.Mode.Label())
	if s.Processing {
		b.WriteString("\n⏳ Генерирую групповой снимок...")
	} else if s.Uploaded != nil {
		b.WriteString("\n/go — начать")
	}
	return b.String()
}

// renderEvent текст уведомления о завершении отложенного шага
func renderEvent(ev port.FlowEvent) string {
	switch ev.Kind {
	case port.EventRecognized:
		if ev.Shoot != nil && ev.Shoot.Identified != nil {
			return fmt.Sprintf("✅ Распознано: %s", ev.Shoot.Identified.Label())
		}
		return "✅ Товар распознан"
	case port.EventRecognitionFailed:
		return "⚠️ " + flowErrorOf(ev)
	case port.EventGenerated:
		return "✨ Образ готов!" + renderResult(resultOf(ev))
	case port.EventGenerationFailed, port.EventGroupShotFailed:
		return "⚠️ " + flowErrorOf(ev) + "\nПопробуйте ещё раз."
	case port.EventGroupShotDone:
		return "✨ Групповой снимок готов!" + renderResult(resultOf(ev))
	}
	return string(ev.Kind)
}

func resultOf(ev port.FlowEvent) *entity.GenerationResult {
	if ev.Shoot != nil {
		return ev.Shoot.Result
	}
	if ev.GroupShot != nil {
		return ev.GroupShot.Result
	}
	return nil
}

func renderResult(r *entity.GenerationResult) string {
	if r == nil || len(r.Images) == 0 {
		return ""
	}
	var b strings.Builder
	for _, img := range r.Images {
		fmt.Fprintf(&b, "\n%s", img)
	}
	return b.String()
}

func flowErrorOf(ev port.FlowEvent) string {
	if ev.Shoot != nil && ev.Shoot.LastError != nil {
		return describeFlowError(ev.Shoot.LastError)
	}
	if ev.GroupShot != nil && ev.GroupShot.LastError != nil {
		return describeFlowError(ev.GroupShot.LastError)
	}
	return msgProcessingError
}

func describeFlowError(e *entity.FlowError) string {
	switch e.Reason {
	case entity.ReasonRecognitionFailed:
		return "Не удалось распознать товар, сделайте другое фото."
	case entity.ReasonGenerationFailed:
		return "Не удалось сгенерировать результат."
	case entity.ReasonTimeout:
		return "Сервис не ответил вовремя."
	case entity.ReasonInvalidInput:
		return msgNeedUpload
	}
	return e.Error()
}

// featureHint подсказывает вкладку, на которой живёт функция
func featureHint(input string) string {
	features := entity.Features()
	names := make([][]string, len(features))
	for i, f := range features {
		names[i] = []string{string(f.ID), f.Title}
	}
	idx := closest(input, names)
	if idx < 0 {
		return msgUnknownFeature
	}
	f := features[idx]
	return fmt.Sprintf("%s открывается с вкладки «%s»: /%s", f.Title, tabLabels[f.Host], f.Host)
}

// describeError переводит ошибку действия в ответ пользователю
func describeError(err error) string {
	switch {
	case errors.Is(err, entity.ErrNoFlow):
		return msgNoFlow
	case errors.Is(err, entity.ErrUnknownCategory):
		return msgUnknownCategory
	case errors.Is(err, entity.ErrEmptyPool):
		return msgEmptyPool
	case errors.Is(err, entity.ErrInvalidInput):
		return msgNeedUpload
	case errors.Is(err, entity.ErrInvalidState):
		return msgInvalidState
	}
	return msgProcessingError
}

func tabKeyboard() tgbotapi.ReplyKeyboardMarkup {
	return tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton("/home"),
			tgbotapi.NewKeyboardButton("/assets"),
			tgbotapi.NewKeyboardButton("/shoot"),
			tgbotapi.NewKeyboardButton("/retouch"),
			tgbotapi.NewKeyboardButton("/gallery"),
		),
	)
}

func shootMenuKeyboard() tgbotapi.InlineKeyboardMarkup {
	var row []tgbotapi.InlineKeyboardButton
	for _, m := range entity.ShootModes() {
		row = append(row, tgbotapi.NewInlineKeyboardButtonData(m.Label(), "mode:"+string(m)))
	}
	return tgbotapi.NewInlineKeyboardMarkup(row, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("◀️ Назад", "back:"),
	))
}

func shootKeyboard(s *entity.ShootSession) interface{} {
	cancel := tgbotapi.NewInlineKeyboardRow(tgbotapi.NewInlineKeyboardButtonData("✖️ Отмена", "cancel:"))
	if !s.Idle() {
		return tgbotapi.NewInlineKeyboardMarkup(cancel)
	}

	var slots []tgbotapi.InlineKeyboardButton
	for _, c := range entity.Categories() {
		slots = append(slots, tgbotapi.NewInlineKeyboardButtonData("🔄 "+c.Label(), "replace:"+string(c)))
	}
	// Полный образ дособирать нечего
	var actions []tgbotapi.InlineKeyboardButton
	if !s.Outfit.Complete() {
		actions = append(actions, tgbotapi.NewInlineKeyboardButtonData("🪄 Дособрать", "autofill:"))
	}
	actions = append(actions, tgbotapi.NewInlineKeyboardButtonData("✨ Генерировать", "confirm:"))
	return tgbotapi.NewInlineKeyboardMarkup(slots[:3], slots[3:], actions, cancel)
}

func groupShotKeyboard(s *entity.GroupShotSession) interface{} {
	cancel := tgbotapi.NewInlineKeyboardRow(tgbotapi.NewInlineKeyboardButtonData("✖️ Отмена", "cancel:"))
	if s.Processing {
		return tgbotapi.NewInlineKeyboardMarkup(cancel)
	}
	rows := [][]tgbotapi.InlineKeyboardButton{
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(entity.GroupModeRandom.Label(), "groupmode:"+string(entity.GroupModeRandom)),
			tgbotapi.NewInlineKeyboardButtonData(entity.GroupModeMultiAngle.Label(), "groupmode:"+string(entity.GroupModeMultiAngle)),
		),
		tgbotapi.NewInlineKeyboardRow(tgbotapi.NewInlineKeyboardButtonData("📤 Образец", "upload:")),
	}
	if s.Uploaded != nil {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(tgbotapi.NewInlineKeyboardButtonData("▶️ Начать", "go:")))
	}
	rows = append(rows, cancel)
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}
