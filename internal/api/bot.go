package telegram

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	app "brandcam-bot/internal/application"
	"brandcam-bot/internal/domain/entity"
	"brandcam-bot/internal/domain/port"
)

// sender часть BotAPI, через которую бот отвечает
type sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
}

// fileLinker выдаёт прямую ссылку на файл Telegram
type fileLinker interface {
	GetFileDirectURL(fileID string) (string, error)
}

// Bot представляет Telegram-бота
type Bot struct {
	api    *tgbotapi.BotAPI
	out    sender
	files  fileLinker
	studio *app.StudioService
}

var _ port.FlowNotifier = (*Bot)(nil)

// NewBot создаёт нового бота
func NewBot(token string, studio *app.StudioService) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}

	log.Printf("Authorized on account %s", api.Self.UserName)

	return &Bot{
		api:    api,
		out:    api,
		files:  api,
		studio: studio,
	}, nil
}

// Run запускает основной цикл обработки сообщений до отмены ctx
func (b *Bot) Run(ctx context.Context) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := b.api.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			return nil
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			switch {
			case update.Message != nil:
				b.handleMessage(ctx, update.Message)
			case update.CallbackQuery != nil:
				b.handleCallback(ctx, update.CallbackQuery)
			}
		}
	}
}

// NotifyFlow сообщает пользователю о завершении отложенного шага
func (b *Bot) NotifyFlow(ctx context.Context, ev port.FlowEvent) {
	b.sendMessage(ev.ChatID, renderEvent(ev), nil)

	scr, err := b.studio.Screen(ctx, ev.UserID, ev.ChatID)
	if err != nil {
		log.Printf("Error getting screen for user %d: %v", ev.UserID, err)
		return
	}
	b.sendScreen(ev.ChatID, scr)
}

// handleMessage обрабатывает входящее сообщение
func (b *Bot) handleMessage(ctx context.Context, msg *tgbotapi.Message) {
	if msg.From == nil {
		return
	}

	// Обработка команд
	if msg.IsCommand() {
		b.handleCommand(ctx, msg.From.ID, msg.Chat.ID, msg.Command(), msg.CommandArguments())
		return
	}

	// Обработка фото
	if len(msg.Photo) > 0 {
		b.handlePhoto(ctx, msg)
		return
	}

	b.handleText(ctx, msg.From.ID, msg.Chat.ID, msg.Text)
}

// handleCallback обрабатывает нажатие inline-кнопки. Данные кнопки: «команда:аргумент».
func (b *Bot) handleCallback(ctx context.Context, cb *tgbotapi.CallbackQuery) {
	if _, err := b.out.Request(tgbotapi.NewCallback(cb.ID, "")); err != nil {
		log.Printf("Error answering callback: %v", err)
	}
	if cb.Message == nil || cb.From == nil {
		return
	}

	cmd, arg, _ := strings.Cut(cb.Data, ":")
	b.handleCommand(ctx, cb.From.ID, cb.Message.Chat.ID, cmd, arg)
}

// handleCommand обрабатывает команды бота
func (b *Bot) handleCommand(ctx context.Context, userID, chatID int64, cmd, arg string) {
	arg = strings.TrimSpace(arg)

	var (
		scr *app.Screen
		err error
	)
	switch cmd {
	case "start":
		if scr, err = b.studio.Start(ctx, userID, chatID); err == nil {
			b.sendMessage(chatID, msgStart, nil)
		}

	case "help":
		b.sendMessage(chatID, msgHelp, nil)
		return

	case "status":
		scr, err = b.studio.Screen(ctx, userID, chatID)

	case "home", "assets", "retouch", "gallery", "profile", "shoot":
		tab, _ := entity.ParseTab(cmd)
		scr, err = b.studio.SelectTab(ctx, userID, chatID, tab)

	case "feature":
		scr, err = b.openFeature(ctx, userID, chatID, arg)
		if scr == nil && err == nil {
			b.sendMessage(chatID, featureHint(arg), nil)
			return
		}

	case "groupshot":
		if scr, err = b.studio.SelectTab(ctx, userID, chatID, entity.TabHome); err == nil {
			scr, err = b.studio.OpenFeature(ctx, userID, chatID, entity.FeatureGroupShot)
		}

	case "back":
		scr, err = b.studio.Back(ctx, userID, chatID)

	case "mode":
		mode, ok := entity.ParseShootMode(strings.ToLower(arg))
		if !ok {
			b.sendMessage(chatID, "Режимы: model, product, outfit.", nil)
			return
		}
		scr, err = b.studio.ChooseShootMode(ctx, userID, chatID, mode)

	case "autofill":
		scr, err = b.studio.AutoFillOutfit(ctx, userID, chatID)

	case "replace", "clear":
		category, ok := resolveCategory(arg)
		if !ok {
			b.sendMessage(chatID, msgUnknownCategory, nil)
			return
		}
		if cmd == "replace" {
			scr, err = b.studio.ReplaceSlot(ctx, userID, chatID, category)
		} else {
			scr, err = b.studio.ClearSlot(ctx, userID, chatID, category)
		}

	case "confirm":
		scr, err = b.studio.ConfirmAndGenerate(ctx, userID, chatID)

	case "cancel":
		if scr, err = b.studio.CancelFlow(ctx, userID, chatID); err == nil {
			b.sendMessage(chatID, "❌ Операция отменена.", nil)
		}

	case "upload":
		scr, err = b.studio.UploadGroupPhoto(ctx, userID, chatID, "")

	case "groupmode":
		mode, ok := entity.ParseGroupShotMode(strings.ToLower(arg))
		if !ok {
			b.sendMessage(chatID, "Режимы: random, multi-angle.", nil)
			return
		}
		scr, err = b.studio.SetGroupShotMode(ctx, userID, chatID, mode)

	case "go":
		scr, err = b.studio.StartGroupShot(ctx, userID, chatID)

	default:
		b.sendMessage(chatID, msgUnknownCommand, nil)
		return
	}

	b.reply(chatID, scr, err)
}

// handleText понимает названия функций и категорий, набранные текстом
func (b *Bot) handleText(ctx context.Context, userID, chatID int64, text string) {
	cur, err := b.studio.Screen(ctx, userID, chatID)
	if err != nil {
		b.reply(chatID, nil, err)
		return
	}

	if cur.Shoot != nil && cur.Shoot.Idle() {
		if category, ok := resolveCategory(text); ok {
			scr, err := b.studio.ReplaceSlot(ctx, userID, chatID, category)
			b.reply(chatID, scr, err)
			return
		}
	}
	if cur.Shoot != nil && cur.Shoot.Step == entity.StepCamera {
		b.sendMessage(chatID, msgSendPhoto, nil)
		return
	}

	scr, err := b.openFeature(ctx, userID, chatID, text)
	if scr == nil && err == nil {
		b.sendMessage(chatID, msgUnknownCommand, nil)
		return
	}
	b.reply(chatID, scr, err)
}

// openFeature открывает функцию текущей вкладки. (nil, nil), если функция не найдена.
func (b *Bot) openFeature(ctx context.Context, userID, chatID int64, name string) (*app.Screen, error) {
	cur, err := b.studio.Screen(ctx, userID, chatID)
	if err != nil {
		return nil, err
	}
	feature, ok := resolveFeature(name, cur.Navigation.ActiveTab)
	if !ok {
		return nil, nil
	}
	return b.studio.OpenFeature(ctx, userID, chatID, feature)
}

// handlePhoto передаёт фото в открытый поток: камера снимает, групповой снимок загружает
func (b *Bot) handlePhoto(ctx context.Context, msg *tgbotapi.Message) {
	userID, chatID := msg.From.ID, msg.Chat.ID

	cur, err := b.studio.Screen(ctx, userID, chatID)
	if err != nil {
		b.reply(chatID, nil, err)
		return
	}

	// Получаем файл с максимальным разрешением
	photo := msg.Photo[len(msg.Photo)-1]
	ref := entity.ImageRef(photo.FileID)

	var scr *app.Screen
	switch cur.Navigation.Overlay {
	case entity.OverlayCamera:
		data, err := b.downloadFile(photo.FileID)
		if err != nil {
			log.Printf("Error downloading photo: %v", err)
			b.sendMessage(chatID, msgProcessingError, nil)
			return
		}
		log.Printf("Received image from user %d: %d bytes", userID, len(data))
		scr, err = b.studio.Capture(ctx, userID, chatID, entity.Photo{Ref: ref, Data: data})
		b.reply(chatID, scr, err)

	case entity.OverlayGroupShot:
		scr, err = b.studio.UploadGroupPhoto(ctx, userID, chatID, ref)
		b.reply(chatID, scr, err)

	default:
		b.sendMessage(chatID, "📸 Чтобы снимать, откройте /shoot и выберите режим.", nil)
	}
}

// downloadFile скачивает файл из Telegram
func (b *Bot) downloadFile(fileID string) ([]byte, error) {
	fileURL, err := b.files.GetFileDirectURL(fileID)
	if err != nil {
		return nil, fmt.Errorf("get file: %w", err)
	}

	resp, err := http.Get(fileURL)
	if err != nil {
		return nil, fmt.Errorf("download file: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("download file: status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	return data, nil
}

// reply отправляет экран или текст ошибки
func (b *Bot) reply(chatID int64, scr *app.Screen, err error) {
	if err != nil {
		log.Printf("Action failed in chat %d: %v", chatID, err)
		b.sendMessage(chatID, describeError(err), nil)
		return
	}
	if scr != nil {
		b.sendScreen(chatID, scr)
	}
}

func (b *Bot) sendScreen(chatID int64, scr *app.Screen) {
	text, markup := renderScreen(scr)
	b.sendMessage(chatID, text, markup)
}

// sendMessage отправляет текстовое сообщение
func (b *Bot) sendMessage(chatID int64, text string, markup interface{}) {
	msg := tgbotapi.NewMessage(chatID, text)
	if markup != nil {
		msg.ReplyMarkup = markup
	}
	if _, err := b.out.Send(msg); err != nil {
		log.Printf("Error sending message: %v", err)
	}
}
