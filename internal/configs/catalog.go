package configs

import (
	"errors"
	"fmt"
	"log"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/inbackru/v35-sub000/internal/core/cashback"
)

// CatalogConfig – продуктовые настройки каталога из catalog.yaml:
// политика и параметры кешбэка.
type CatalogConfig struct {
	Cashback struct {
		// Политика расчета: tiered или rate.
		Policy string          `yaml:"policy"`
		Config cashback.Config `yaml:",inline"`
	} `yaml:"cashback"`
}

// LoadCatalogConfig читает catalog.yaml. Отсутствующий файл – не
// ошибка: работаем на боевых значениях по умолчанию.
func LoadCatalogConfig(path string) (*CatalogConfig, error) {
	cfg := &CatalogConfig{}
	cfg.Cashback.Policy = string(cashback.PolicyTiered)
	cfg.Cashback.Config = cashback.DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			log.Printf("Info: Catalog config %s not found, using defaults.\n", path)
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read catalog config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse catalog config file: %w", err)
	}

	return cfg, nil
}

// Policy возвращает типизированную политику кешбэка.
func (c *CatalogConfig) Policy() cashback.Policy {
	if c.Cashback.Policy == string(cashback.PolicyRate) {
		return cashback.PolicyRate
	}
	return cashback.PolicyTiered
}
