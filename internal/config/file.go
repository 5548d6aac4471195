package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// fileConfig mirrors the optional YAML configuration file. Every field here
// has an environment variable that overrides it.
type fileConfig struct {
	Shopify struct {
		ShopDomain     string `yaml:"shop_domain"`
		Token          string `yaml:"access_token"`
		APIVersion     string `yaml:"api_version"`
		TimeoutSeconds int    `yaml:"timeout_seconds"`
	} `yaml:"shopify"`
	Marketplace struct {
		BaseUrl        string `yaml:"base_url"`
		Token          string `yaml:"token"`
		TimeoutSeconds int    `yaml:"timeout_seconds"`
	} `yaml:"marketplace"`
	Sync struct {
		BatchSize   int    `yaml:"batch_size"`
		PrioritySku string `yaml:"priority_sku"`
		FullSync    bool   `yaml:"full_sync"`
		SkuFile     string `yaml:"sku_file"`
		SkuList     string `yaml:"sku_list"`
	} `yaml:"sync"`
	Telegram struct {
		ChatId string `yaml:"chat_id"`
		Token  string `yaml:"token"`
	} `yaml:"telegram"`
}

func readConfigFile(path string) (*fileConfig, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("config file %s: %w", path, err)
	}
	defer f.Close()

	cfg := &fileConfig{}
	if err := yaml.NewDecoder(f).Decode(cfg); err != nil {
		return nil, fmt.Errorf("config file %s: %w", path, err)
	}
	return cfg, nil
}
