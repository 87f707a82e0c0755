package config

import (
	"fmt"
	"log"
	"strings"

	"github.com/spf13/viper"
)

// Source selects which backend the catalog and cart services read from.
const (
	SourceFixture  = "fixture"
	SourceShopify  = "shopify"
	SourcePostgres = "postgres"
)

type Config struct {
	Server   ServerConfig
	Shopify  ShopifyConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Cache    CacheConfig
}

type ServerConfig struct {
	Port   string
	Env    string
	Source string
}

type ShopifyConfig struct {
	StoreDomain        string
	APIVersion         string
	AccessToken        string
	RevalidationSecret string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Database string
	Schema   string
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

type CacheConfig struct {
	Enabled    bool
	TTLSeconds int
}

func Load() *Config {
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")
	viper.AutomaticEnv()

	// Set defaults
	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("SERVER_ENV", "development")
	viper.SetDefault("CATALOG_SOURCE", SourceFixture)
	viper.SetDefault("SHOPIFY_API_VERSION", "2023-01")
	viper.SetDefault("DB_HOST", "localhost")
	viper.SetDefault("DB_PORT", "5432")
	viper.SetDefault("DB_SCHEMA", "public")
	viper.SetDefault("REDIS_HOST", "localhost")
	viper.SetDefault("REDIS_PORT", "6379")
	viper.SetDefault("REDIS_DB", 0)
	viper.SetDefault("CACHE_ENABLED", false)
	viper.SetDefault("CACHE_TTL_SECONDS", 300)

	if err := viper.ReadInConfig(); err != nil {
		log.Printf("Warning: Could not read config file: %v", err)
	}

	return &Config{
		Server: ServerConfig{
			Port:   viper.GetString("SERVER_PORT"),
			Env:    viper.GetString("SERVER_ENV"),
			Source: viper.GetString("CATALOG_SOURCE"),
		},
		Shopify: ShopifyConfig{
			StoreDomain:        viper.GetString("SHOPIFY_STORE_DOMAIN"),
			APIVersion:         viper.GetString("SHOPIFY_API_VERSION"),
			AccessToken:        viper.GetString("SHOPIFY_STOREFRONT_ACCESS_TOKEN"),
			RevalidationSecret: viper.GetString("SHOPIFY_REVALIDATION_SECRET"),
		},
		Database: DatabaseConfig{
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASSWORD"),
			Database: viper.GetString("DB_DATABASE"),
			Schema:   viper.GetString("DB_SCHEMA"),
		},
		Redis: RedisConfig{
			Host:     viper.GetString("REDIS_HOST"),
			Port:     viper.GetString("REDIS_PORT"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
		},
		Cache: CacheConfig{
			Enabled:    viper.GetBool("CACHE_ENABLED"),
			TTLSeconds: viper.GetInt("CACHE_TTL_SECONDS"),
		},
	}
}

// StoreURL normalizes the configured store domain to an absolute https URL.
// The domain may be given bare ("demo.myshopify.com") or with a scheme
// already attached; either way the result starts with https://.
func (c ShopifyConfig) StoreURL() string {
	domain := strings.TrimSpace(c.StoreDomain)
	if domain == "" {
		return ""
	}
	domain = strings.TrimPrefix(domain, "http://")
	if !strings.HasPrefix(domain, "https://") {
		domain = "https://" + domain
	}
	return strings.TrimSuffix(domain, "/")
}

// Endpoint returns the single GraphQL endpoint all upstream calls target.
func (c ShopifyConfig) Endpoint() string {
	base := c.StoreURL()
	if base == "" {
		return ""
	}
	return fmt.Sprintf("%s/api/%s/graphql.json", base, c.APIVersion)
}

// Validate checks the settings the selected source needs to function. The
// fixture source needs nothing; the shopify source refuses to start without
// a store domain and token rather than producing an empty endpoint at
// request time.
func (c *Config) Validate() error {
	switch c.Server.Source {
	case SourceFixture:
		return nil
	case SourceShopify:
		if c.Shopify.StoreURL() == "" {
			return fmt.Errorf("SHOPIFY_STORE_DOMAIN is required when CATALOG_SOURCE=shopify")
		}
		if c.Shopify.AccessToken == "" {
			return fmt.Errorf("SHOPIFY_STOREFRONT_ACCESS_TOKEN is required when CATALOG_SOURCE=shopify")
		}
		return nil
	case SourcePostgres:
		if c.Database.User == "" || c.Database.Database == "" {
			return fmt.Errorf("DB_USER and DB_DATABASE are required when CATALOG_SOURCE=postgres")
		}
		return nil
	default:
		return fmt.Errorf("unknown CATALOG_SOURCE %q", c.Server.Source)
	}
}

// DSN builds the Postgres connection string for the postgres source.
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable&search_path=%s",
		c.User, c.Password, c.Host, c.Port, c.Database, c.Schema)
}
