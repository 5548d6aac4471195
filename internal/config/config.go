package config

import "time"

type Config struct {
	Shopify     ShopifyConfig
	Marketplace MarketplaceConfig
	Sync        SyncConfig
	TelegramBot TelegramBotConfig
}

type ShopifyConfig struct {
	ShopDomain string
	Token      string
	APIVer     string
	Timeout    time.Duration
}

type MarketplaceConfig struct {
	BaseUrl string
	Token   string
	Timeout time.Duration
}

// SyncConfig drives working-set selection. FileSkus comes from the optional
// SKU file, ListSkus from the inline list; the two are never merged.
type SyncConfig struct {
	BatchSize   int
	PrioritySku string
	FullSync    bool
	FileSkus    []string
	ListSkus    []string
}

type TelegramBotConfig struct {
	ChatId string
	Token  string
}
