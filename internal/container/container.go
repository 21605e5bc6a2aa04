package container

import (
	"log"
	"strings"

	"brandcam-bot/config"
	app "brandcam-bot/internal/application"
	"brandcam-bot/internal/domain/entity"
	"brandcam-bot/internal/domain/port"
	"brandcam-bot/internal/infrastructure/generation"
	"brandcam-bot/internal/infrastructure/library"
	"brandcam-bot/internal/infrastructure/scheduler"
	"brandcam-bot/internal/infrastructure/vision"
)

type Container struct {
	UserService   *app.UserService
	StudioService *app.StudioService
}

func New(userRepo port.UserRepository, deps app.FlowDeps) *Container {
	userService := app.NewUserService(userRepo)
	studioService := app.NewStudioService(userService, deps, nil)

	return &Container{
		UserService:   userService,
		StudioService: studioService,
	}
}

// FlowDepsFromConfig собирает зависимости потоков из конфигурации
func FlowDepsFromConfig(cfg *config.Config) app.FlowDeps {
	return app.FlowDeps{
		Classifier: classifierFromConfig(cfg.Vision),
		Generator:  generation.NewMockGenerator(),
		Library:    library.NewMockLibrary(),
		Random:     app.NewRandomSource(cfg.Flow.RandomSeed),
		Scheduler:  scheduler.NewReal(),
		Timing: app.FlowTiming{
			Recognition: cfg.Flow.RecognitionDelay,
			Generation:  cfg.Flow.GenerationDelay,
			GroupShot:   cfg.Flow.GroupShotDelay,
			Timeout:     cfg.Flow.Timeout,
		},
	}
}

func classifierFromConfig(cfg config.VisionConfig) port.Classifier {
	if strings.EqualFold(cfg.Classifier, "gocv") {
		log.Println("Using GoCV classifier")
		return vision.NewGoCVClassifier()
	}
	category, ok := entity.ParseCategory(cfg.MockCategory)
	if !ok {
		log.Printf("Unknown mock category %q, using outer", cfg.MockCategory)
	}
	return vision.NewMockClassifier(category)
}
