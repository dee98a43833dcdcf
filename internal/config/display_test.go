package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestDisplayConfigDefaultsWithoutFile(t *testing.T) {
	t.Chdir(t.TempDir())

	holder, err := NewDisplayConfigHolder(zap.NewNop())
	require.NoError(t, err)

	cfg := holder.Get()
	assert.Equal(t, "USD", cfg.Currency.Code)
	assert.Equal(t, "$", cfg.Currency.Symbol)
	assert.Equal(t, "en-US", cfg.Currency.Locale)
}

func TestDisplayConfigReadsFile(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	body := "display:\n  currency:\n    code: EUR\n    symbol: \"€\"\n    locale: de-DE\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "display.yml"), []byte(body), 0o600))

	holder, err := NewDisplayConfigHolder(zap.NewNop())
	require.NoError(t, err)

	cfg := holder.Get()
	assert.Equal(t, "EUR", cfg.Currency.Code)
	assert.Equal(t, "€", cfg.Currency.Symbol)
	assert.Equal(t, "de-DE", cfg.Currency.Locale)
}

func TestDisplayConfigReloadsOnWrite(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	path := filepath.Join(dir, "display.yml")
	require.NoError(t, os.WriteFile(path, []byte("display:\n  currency:\n    code: USD\n    symbol: \"$\"\n    locale: en-US\n"), 0o600))

	holder, err := NewDisplayConfigHolder(zap.NewNop())
	require.NoError(t, err)
	require.Equal(t, "USD", holder.Get().Currency.Code)

	require.NoError(t, os.WriteFile(path, []byte("display:\n  currency:\n    code: GBP\n    symbol: \"£\"\n    locale: en-GB\n"), 0o600))

	assert.Eventually(t, func() bool {
		return holder.Get().Currency.Code == "GBP"
	}, 5*time.Second, 20*time.Millisecond)
	assert.Equal(t, "£", holder.Get().Currency.Symbol)
}

func TestDisplayConfigRejectsEmptyLocaleInFile(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	body := "display:\n  currency:\n    code: EUR\n    locale: \"\"\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "display.yml"), []byte(body), 0o600))

	_, err := NewDisplayConfigHolder(zap.NewNop())
	assert.Error(t, err)
}

func TestNilHolderFallsBackToDefaults(t *testing.T) {
	var holder *DisplayConfigHolder
	assert.Equal(t, DefaultDisplayConfig(), holder.Get())
}

func TestValidateDisplayConfigRejectsEmptyCode(t *testing.T) {
	cfg := DefaultDisplayConfig()
	cfg.Currency.Code = " "
	assert.Error(t, validateDisplayConfig(cfg))
}
