package config

import (
	"errors"
	"strings"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// DisplayConfig controls how monetary values are rendered for dashboard summaries.
type DisplayConfig struct {
	Currency CurrencyDisplay `mapstructure:"currency"`
}

type CurrencyDisplay struct {
	Code   string `mapstructure:"code"`
	Symbol string `mapstructure:"symbol"`
	Locale string `mapstructure:"locale"`
}

func DefaultDisplayConfig() DisplayConfig {
	return DisplayConfig{
		Currency: CurrencyDisplay{
			Code:   "USD",
			Symbol: "$",
			Locale: "en-US",
		},
	}
}

type DisplayConfigHolder struct {
	current atomic.Value // holds DisplayConfig
}

// NewStaticDisplayConfigHolder returns a holder that never reloads.
func NewStaticDisplayConfigHolder(cfg DisplayConfig) *DisplayConfigHolder {
	holder := &DisplayConfigHolder{}
	holder.current.Store(cfg)
	return holder
}

func NewDisplayConfigHolder(log *zap.Logger) (*DisplayConfigHolder, error) {
	log = log.Named("config.display")

	v := viper.New()
	v.SetConfigName("display")
	v.SetConfigType("yml")
	v.AddConfigPath("/etc/invoiceboard")
	v.AddConfigPath(".")

	v.SetEnvPrefix("INVOICEBOARD")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	defaults := DefaultDisplayConfig()
	v.SetDefault("display.currency.code", defaults.Currency.Code)
	v.SetDefault("display.currency.symbol", defaults.Currency.Symbol)
	v.SetDefault("display.currency.locale", defaults.Currency.Locale)

	fileLoaded := true
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
		fileLoaded = false
	}

	var cfg DisplayConfig
	if err := v.UnmarshalKey("display", &cfg); err != nil {
		return nil, err
	}
	if err := validateDisplayConfig(cfg); err != nil {
		return nil, err
	}

	holder := NewStaticDisplayConfigHolder(cfg)
	if !fileLoaded {
		return holder, nil
	}

	v.OnConfigChange(func(e fsnotify.Event) {
		var updated DisplayConfig
		if err := v.UnmarshalKey("display", &updated); err != nil {
			log.Warn("display config reload failed", zap.Error(err))
			return
		}
		if err := validateDisplayConfig(updated); err != nil {
			log.Warn("invalid display config ignored", zap.Error(err))
			return
		}
		holder.current.Store(updated)
		log.Info("display config reloaded", zap.String("file", e.Name))
	})
	v.WatchConfig()

	return holder, nil
}

func (h *DisplayConfigHolder) Get() DisplayConfig {
	if h == nil {
		return DefaultDisplayConfig()
	}
	cfg, ok := h.current.Load().(DisplayConfig)
	if !ok {
		return DefaultDisplayConfig()
	}
	return cfg
}

func validateDisplayConfig(cfg DisplayConfig) error {
	if strings.TrimSpace(cfg.Currency.Code) == "" {
		return errors.New("display.currency.code cannot be empty")
	}
	if strings.TrimSpace(cfg.Currency.Locale) == "" {
		return errors.New("display.currency.locale cannot be empty")
	}
	return nil
}
