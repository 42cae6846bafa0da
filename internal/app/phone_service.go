package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jsamuelsen/builder-service/internal/domain"
	"github.com/jsamuelsen/builder-service/internal/platform/logging"
	"github.com/jsamuelsen/builder-service/internal/ports"
)

const entityPhone = "phone"

// PhoneAssembly is a phone together with the manual built from the same
// Director sequence.
type PhoneAssembly struct {
	Preset domain.PhonePreset
	Phone  *domain.Phone
	Manual *domain.PhoneManual
}

// PhoneService drives the phone Director.
type PhoneService struct {
	director domain.Director
	recorder ports.BuildRecorder
	logger   *slog.Logger
}

// PhoneServiceConfig contains the dependencies of the phone service.
type PhoneServiceConfig struct {
	Recorder ports.BuildRecorder
	Logger   *slog.Logger
}

// NewPhoneService creates a phone service.
func NewPhoneService(cfg PhoneServiceConfig) *PhoneService {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	recorder := cfg.Recorder
	if recorder == nil {
		recorder = ports.NopRecorder{}
	}

	return &PhoneService{
		recorder: recorder,
		logger:   logger.With(slog.String("component", "app.PhoneService")),
	}
}

// Assemble runs the named preset against both a phone builder and a manual
// builder. Unknown presets return a not found error.
func (s *PhoneService) Assemble(ctx context.Context, presetName string) (*PhoneAssembly, error) {
	logger := logging.FromContextOr(ctx, s.logger)

	preset, err := domain.ParsePhonePreset(presetName)
	if err != nil {
		return nil, fmt.Errorf("resolving preset: %w", err)
	}

	phoneBuilder := &domain.DevicePhoneBuilder{}
	manualBuilder := &domain.ManualBuilder{}

	for _, b := range []domain.PhoneBuilder{phoneBuilder, manualBuilder} {
		if err := s.director.Construct(preset, b); err != nil {
			s.recorder.RecordBuild(ctx, entityPhone, violationFields(err))
			return nil, fmt.Errorf("constructing %s: %w", preset, err)
		}
	}

	s.recorder.RecordBuild(ctx, entityPhone, nil)

	logger.InfoContext(ctx, "phone assembled", slog.String("preset", string(preset)))

	return &PhoneAssembly{
		Preset: preset,
		Phone:  phoneBuilder.Result(),
		Manual: manualBuilder.Result(),
	}, nil
}

// Presets lists every preset the Director knows.
func (s *PhoneService) Presets() []domain.PhonePreset {
	presets := make([]domain.PhonePreset, len(domain.PhonePresets))
	copy(presets, domain.PhonePresets)

	return presets
}

// Name implements ports.HealthChecker.
func (s *PhoneService) Name() string {
	return "phone-director"
}

// Check implements ports.HealthChecker. It runs every preset against
// throwaway builders without recording an outcome.
func (s *PhoneService) Check(ctx context.Context) error {
	for _, preset := range domain.PhonePresets {
		if err := ctx.Err(); err != nil {
			return err
		}

		if err := s.director.Construct(preset, &domain.DevicePhoneBuilder{}); err != nil {
			return fmt.Errorf("preset %s: %w", preset, err)
		}
	}

	return nil
}
