package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"brandcam-bot/config"
	telegram "brandcam-bot/internal/api"
	"brandcam-bot/internal/container"
	"brandcam-bot/internal/infrastructure/storage"
	"brandcam-bot/internal/tui"
)

var (
	configPath   string
	cfg          *config.Config
	appContainer *container.Container
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		log.Fatalf("brandcam: %v", err)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "brandcam",
		Short:         "BrandCam: AI-студия для фото товаров",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			cfg, err = loadConfig(configPath)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			// Создаём хранилище пользователей
			userRepo := storage.NewMemoryUserRepository()

			// Собираем сервисы приложения
			appContainer = container.New(userRepo, container.FlowDepsFromConfig(cfg))
			return nil
		},
	}

	root.PersistentFlags().StringVar(&configPath, "config", "", "TOML config file (default $BRANDCAM_CONFIG)")

	root.AddCommand(botCmd(), tuiCmd())
	return root
}

// loadConfig берёт файл из флага, а без флага читает BRANDCAM_CONFIG
func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.Load()
	}
	return config.LoadFile(path)
}

func botCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "bot",
		Short: "Run the Telegram bot",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cfg.Telegram.Token == "" {
				return errors.New("TELEGRAM_TOKEN is required")
			}

			bot, err := telegram.NewBot(cfg.Telegram.Token, appContainer.StudioService)
			if err != nil {
				return fmt.Errorf("failed to create bot: %w", err)
			}
			appContainer.StudioService.SetNotifier(bot)

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			log.Println("Bot is running...")
			if err := bot.Run(ctx); err != nil {
				return fmt.Errorf("bot error: %w", err)
			}
			log.Println("Bot stopped")
			return nil
		},
	}
}

func tuiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Run the studio in the terminal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Логи поверх альтернативного экрана ломают отрисовку
			log.SetOutput(io.Discard)

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return tui.Run(ctx, appContainer.StudioService)
		},
	}
}
