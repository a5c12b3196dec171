package commands

import (
	"fmt"
	"io"

	"github.com/rs/zerolog"

	"github.com/moecatalyst/moechat/internal/api"
	"github.com/moecatalyst/moechat/internal/chat"
	"github.com/moecatalyst/moechat/internal/config"
	"github.com/moecatalyst/moechat/internal/logging"
	"github.com/moecatalyst/moechat/internal/models"
	"github.com/moecatalyst/moechat/internal/render"
)

// globalFlags are the persistent flags shared by every command
type globalFlags struct {
	endpoint string
	locale   string
	logLevel string
}

// loadConfig reads the config file, then applies environment and flag overrides
func (f *globalFlags) loadConfig() (config.Config, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return cfg, err
	}
	config.ApplyEnv(&cfg)

	if f.endpoint != "" {
		cfg.Endpoint = f.endpoint
	}
	if f.locale != "" {
		cfg.Locale = f.locale
	}
	if f.logLevel != "" {
		cfg.LogLevel = f.logLevel
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// runtime wires configuration, logging, client and pipeline for one run
type runtime struct {
	cfg      config.Config
	strings  models.Strings
	logger   zerolog.Logger
	client   api.ChatClient
	pipeline *chat.Pipeline

	logCloser  io.Closer
	ownsClient bool
}

// newRuntime builds everything a command needs to talk to the endpoint
func newRuntime(deps *Dependencies, flags *globalFlags) (*runtime, error) {
	cfg, err := flags.loadConfig()
	if err != nil {
		return nil, err
	}

	logPath, err := config.GetLogPath(cfg)
	if err != nil {
		return nil, err
	}
	logger, closer, err := logging.New(logging.Options{Level: cfg.LogLevel, Path: logPath})
	if err != nil {
		return nil, err
	}

	rt := &runtime{
		cfg:       cfg,
		strings:   models.StringsFor(cfg.LocaleOf()),
		logger:    logger,
		logCloser: closer,
	}

	if deps.Client != nil {
		rt.client = deps.Client
	} else {
		opts := append(api.OptionsFromConfig(cfg), api.WithLogger(logger))
		client, err := api.NewClient(opts...)
		if err != nil {
			_ = closer.Close()
			return nil, fmt.Errorf("failed to create client: %w", err)
		}
		rt.client = client
		rt.ownsClient = true
	}

	if cfg.TUITheme != "" && !render.SetTUITheme(cfg.TUITheme) {
		logger.Warn().Str("theme", cfg.TUITheme).Msg("unknown TUI theme, keeping default")
	}

	rt.pipeline = chat.New(rt.client,
		chat.WithStrings(rt.strings),
		chat.WithLogger(logger),
	)

	logger.Info().
		Str("endpoint", rt.client.Endpoint()).
		Str("locale", string(rt.strings.Locale)).
		Msg("session started")

	return rt, nil
}

// Close releases the client and the log file
func (r *runtime) Close() {
	if r.ownsClient {
		r.client.Close()
	}
	user, assistant := r.pipeline.Conversation().Counts()
	r.logger.Info().Int("user", user).Int("assistant", assistant).Msg("session ended")
	_ = r.logCloser.Close()
}
