package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	defaultAPIVersion     = "2024-01"
	defaultTimeoutSeconds = 30
	defaultBatchSize      = 200
)

// Load resolves configuration from the optional YAML file named by
// SYNC_CONFIG_FILE and overlays environment variables on top; the
// environment always wins. The SKU file, when configured, is read here so
// the rest of the program only ever sees plain SKU lists.
func Load() (*Config, error) {
	file := &fileConfig{}
	if path := stringWithDefault("SYNC_CONFIG_FILE", ""); path != "" {
		loaded, err := readConfigFile(path)
		if err != nil {
			return nil, err
		}
		file = loaded
	}

	cfg := &Config{}

	cfg.Shopify.ShopDomain = stringWithDefault("SHOPIFY_SHOP_DOMAIN", file.Shopify.ShopDomain)
	cfg.Shopify.Token = stringWithDefault("SHOPIFY_ACCESS_TOKEN", file.Shopify.Token)
	cfg.Shopify.APIVer = stringWithDefault("SHOPIFY_API_VERSION", firstNonEmpty(file.Shopify.APIVersion, defaultAPIVersion))
	shopifyTimeout, err := intWithDefault("SHOPIFY_TIMEOUT", firstPositive(file.Shopify.TimeoutSeconds, defaultTimeoutSeconds))
	if err != nil {
		return nil, err
	}
	cfg.Shopify.Timeout = time.Duration(shopifyTimeout) * time.Second

	cfg.Marketplace.BaseUrl = stringWithDefault("MARKETPLACE_BASE_URL", file.Marketplace.BaseUrl)
	cfg.Marketplace.Token = stringWithDefault("MARKETPLACE_TOKEN", file.Marketplace.Token)
	marketplaceTimeout, err := intWithDefault("MARKETPLACE_TIMEOUT", firstPositive(file.Marketplace.TimeoutSeconds, defaultTimeoutSeconds))
	if err != nil {
		return nil, err
	}
	cfg.Marketplace.Timeout = time.Duration(marketplaceTimeout) * time.Second

	cfg.Sync.BatchSize, err = intWithDefault("SYNC_BATCH_SIZE", firstPositive(file.Sync.BatchSize, defaultBatchSize))
	if err != nil {
		return nil, err
	}
	cfg.Sync.PrioritySku = stringWithDefault("SYNC_PRIORITY_SKU", file.Sync.PrioritySku)
	cfg.Sync.FullSync, err = boolWithDefault("SYNC_FULL", file.Sync.FullSync)
	if err != nil {
		return nil, err
	}

	if skuFile := stringWithDefault("SYNC_SKU_FILE", file.Sync.SkuFile); skuFile != "" {
		raw, err := os.ReadFile(skuFile)
		if err != nil {
			return nil, fmt.Errorf("sku file %s: %w", skuFile, err)
		}
		cfg.Sync.FileSkus = parseSkuList(string(raw))
	}
	cfg.Sync.ListSkus = parseSkuList(stringWithDefault("SYNC_SKU_LIST", file.Sync.SkuList))

	cfg.TelegramBot.ChatId = stringWithDefault("TELEGRAM_CHAT_ID", file.Telegram.ChatId)
	cfg.TelegramBot.Token = stringWithDefault("TELEGRAM_BOT_TOKEN", file.Telegram.Token)

	if err := validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func validate(cfg *Config) error {
	missing := make([]string, 0, 3)
	if strings.TrimSpace(cfg.Shopify.ShopDomain) == "" {
		missing = append(missing, "SHOPIFY_SHOP_DOMAIN")
	}
	if strings.TrimSpace(cfg.Shopify.Token) == "" {
		missing = append(missing, "SHOPIFY_ACCESS_TOKEN")
	}
	if strings.TrimSpace(cfg.Marketplace.BaseUrl) == "" {
		missing = append(missing, "MARKETPLACE_BASE_URL")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required config: %s", strings.Join(missing, ", "))
	}
	return nil
}

func stringWithDefault(key, def string) string {
	variable, isOk := os.LookupEnv(key)
	if !isOk || variable == "" {
		return def
	}
	return variable
}

func intWithDefault(key string, def int) (int, error) {
	variable, isOk := os.LookupEnv(key)
	if !isOk || variable == "" {
		return def, nil
	}
	number, err := strconv.Atoi(variable)
	if err != nil {
		return 0, fmt.Errorf("Invalid int for %s: %w", key, err)
	}
	return number, nil
}

func boolWithDefault(key string, def bool) (bool, error) {
	variable, isOk := os.LookupEnv(key)
	if !isOk || variable == "" {
		return def, nil
	}
	flag, err := strconv.ParseBool(variable)
	if err != nil {
		return false, fmt.Errorf("Invalid bool for %s: %w", key, err)
	}
	return flag, nil
}

// parseSkuList splits a newline or comma separated SKU list, trimming each
// entry and dropping empties.
func parseSkuList(raw string) []string {
	fields := strings.FieldsFunc(raw, func(r rune) bool {
		return r == ',' || r == '\n' || r == '\r'
	})
	skus := make([]string, 0, len(fields))
	for _, field := range fields {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}
		skus = append(skus, field)
	}
	return skus
}

func firstNonEmpty(value, fallback string) string {
	if strings.TrimSpace(value) != "" {
		return strings.TrimSpace(value)
	}
	return fallback
}

func firstPositive(value, fallback int) int {
	if value > 0 {
		return value
	}
	return fallback
}
