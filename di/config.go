package di

import (
	stderrors "errors"
	"fmt"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"go.opentelemetry.io/otel/metric/noop"

	apperrors "github.com/kbukum/dikit/errors"
	"github.com/kbukum/dikit/logger"
)

// Config configures a container loaded from file or environment.
//
//	di:
//	  name: orders
//	  strict_singleton_args: false
//	  metrics: true
//	  logging:
//	    level: debug
//	    format: json
type Config struct {
	Name                string        `yaml:"name" mapstructure:"name" validate:"required,max=64"`
	StrictSingletonArgs bool          `yaml:"strict_singleton_args" mapstructure:"strict_singleton_args"`
	Metrics             *bool         `yaml:"metrics" mapstructure:"metrics"`
	Logging             logger.Config `yaml:"logging" mapstructure:"logging"`
}

// ApplyDefaults applies default values to the container configuration.
func (c *Config) ApplyDefaults() {
	if c.Name == "" {
		c.Name = "di"
	}
	if c.Metrics == nil {
		enabled := true
		c.Metrics = &enabled
	}
	c.Logging.ApplyDefaults()
}

// MetricsEnabled reports whether instruments should be recorded.
func (c *Config) MetricsEnabled() bool {
	return c.Metrics == nil || *c.Metrics
}

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func getValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
	})
	return validate
}

// Validate checks the configuration. Failures are reported as an
// INVALID_CONFIG AppError listing every offending field.
func (c *Config) Validate() error {
	var messages []string
	fields := map[string]string{}

	if err := getValidator().Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if !stderrors.As(err, &verrs) {
			return apperrors.InvalidConfig("validation failed").WithCause(err)
		}
		for _, fe := range verrs {
			name := strings.ToLower(fe.Field())
			msg := formatValidationError(fe)
			fields[name] = msg
			messages = append(messages, name+": "+msg)
		}
	}
	if err := c.Logging.Validate(); err != nil {
		fields["logging"] = err.Error()
		messages = append(messages, err.Error())
	}

	if len(messages) == 0 {
		return nil
	}
	return apperrors.InvalidConfig(strings.Join(messages, "; ")).WithDetail("fields", fields)
}

func formatValidationError(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "max":
		return "must be at most " + fe.Param() + " characters"
	default:
		return fmt.Sprintf("failed %s validation", fe.Tag())
	}
}

// NewFromConfig applies defaults to cfg, validates it and creates a container
// with a logger built from cfg.Logging. Explicit opts are applied after the
// ones derived from cfg and win over them.
func NewFromConfig(cfg Config, opts ...Option) (*Container, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	derived := []Option{
		WithLogger(logger.New(&cfg.Logging, cfg.Name).WithComponent("di")),
	}
	if cfg.StrictSingletonArgs {
		derived = append(derived, WithStrictSingletonArgs())
	}
	if !cfg.MetricsEnabled() {
		derived = append(derived, WithMeterProvider(noop.NewMeterProvider()))
	}

	return New(append(derived, opts...)...), nil
}
