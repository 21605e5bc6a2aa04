package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Telegram TelegramConfig
	Flow     FlowConfig
	Vision   VisionConfig
}

// TelegramConfig настройки бота
type TelegramConfig struct {
	Token string
}

// FlowConfig задержки имитации бэкенда
type FlowConfig struct {
	RecognitionDelay time.Duration `mapstructure:"recognition_delay"`
	GenerationDelay  time.Duration `mapstructure:"generation_delay"`
	GroupShotDelay   time.Duration `mapstructure:"group_shot_delay"`
	Timeout          time.Duration
	RandomSeed       int64 `mapstructure:"random_seed"`
}

// VisionConfig выбор классификатора: mock или gocv
type VisionConfig struct {
	Classifier   string
	MockCategory string `mapstructure:"mock_category"`
}

// Load читает .env, переменные окружения BRANDCAM_* и необязательный TOML из BRANDCAM_CONFIG.
func Load() (*Config, error) {
	return LoadFile(os.Getenv("BRANDCAM_CONFIG"))
}

// LoadFile как Load, но с явным путём к TOML. Пустой путь означает работу без файла.
func LoadFile(path string) (*Config, error) {
	// Загружаем .env файл (игнорируем ошибку если файла нет)
	_ = godotenv.Load()

	v := viper.New()
	v.SetDefault("telegram.token", "")
	v.SetDefault("flow.recognition_delay", 2*time.Second)
	v.SetDefault("flow.generation_delay", 3*time.Second)
	v.SetDefault("flow.group_shot_delay", 3*time.Second)
	v.SetDefault("flow.timeout", 15*time.Second)
	v.SetDefault("flow.random_seed", 0)
	v.SetDefault("vision.classifier", "mock")
	v.SetDefault("vision.mock_category", "outer")

	v.SetEnvPrefix("BRANDCAM")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	// Токен по старинке берём и из TELEGRAM_TOKEN
	if err := v.BindEnv("telegram.token", "BRANDCAM_TELEGRAM_TOKEN", "TELEGRAM_TOKEN"); err != nil {
		return nil, fmt.Errorf("bind env: %w", err)
	}

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("toml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.Flow.RecognitionDelay < 0 || c.Flow.GenerationDelay < 0 || c.Flow.GroupShotDelay < 0 {
		return fmt.Errorf("flow delays must not be negative")
	}
	if c.Flow.Timeout <= 0 {
		return fmt.Errorf("flow.timeout must be positive")
	}
	switch strings.ToLower(c.Vision.Classifier) {
	case "mock", "gocv":
	default:
		return fmt.Errorf("unknown vision.classifier %q", c.Vision.Classifier)
	}
	return nil
}
