package container

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"brandcam-bot/config"
	"brandcam-bot/internal/domain/entity"
	"brandcam-bot/internal/infrastructure/storage"
	"brandcam-bot/internal/infrastructure/vision"
)

func testConfig() *config.Config {
	return &config.Config{
		Flow: config.FlowConfig{
			RecognitionDelay: time.Second,
			GenerationDelay:  time.Second,
			GroupShotDelay:   time.Second,
			Timeout:          5 * time.Second,
			RandomSeed:       7,
		},
		Vision: config.VisionConfig{Classifier: "mock", MockCategory: "pants"},
	}
}

func TestFlowDepsFromConfig(t *testing.T) {
	deps := FlowDepsFromConfig(testConfig())

	require.Equal(t, time.Second, deps.Timing.Recognition)
	require.Equal(t, 5*time.Second, deps.Timing.Timeout)

	mock, ok := deps.Classifier.(*vision.MockClassifier)
	require.True(t, ok)
	require.Equal(t, entity.CategoryPants, mock.Category)
}

func TestFlowDepsFromConfig_GoCV(t *testing.T) {
	cfg := testConfig()
	cfg.Vision.Classifier = "GoCV"

	_, ok := FlowDepsFromConfig(cfg).Classifier.(*vision.GoCVClassifier)
	require.True(t, ok)
}

func TestNew_WiresServices(t *testing.T) {
	c := New(storage.NewMemoryUserRepository(), FlowDepsFromConfig(testConfig()))
	require.NotNil(t, c.UserService)

	scr, err := c.StudioService.Screen(context.Background(), 1, 10)
	require.NoError(t, err)
	require.Equal(t, "BrandCam", scr.Title)
}
