package config

import (
	"encoding/json"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// AppConfig holds environment driven configuration values. Sensitive
// values have no code defaults and must come from the environment or a
// config file.
type AppConfig struct {
	AppPort            string
	JWTSecret          string
	DatabaseURI        string
	DBHost             string
	DBPort             string
	DBUser             string
	DBPassword         string
	DBName             string
	RateLimitPerMinute int
	AllowedOrigins     []string
	// Gin framework configuration
	GinMode string
	GinPath string
	// Redis for caching and token revocation
	RedisHost     string
	RedisPort     int
	RedisDB       int
	RedisPassword string
	// Logging configuration
	LogLevel      string
	LogPath       string
	LogMaxSizeMB  int
	LogMaxBackups int
	LogMaxAgeDays int
	LogCompress   bool
	// Bootstrap identities for the setup endpoint
	SetupUsername string
	SetupPassword string
	AdminUsername string
	AdminPassword string
}

var cfg AppConfig
var loaded bool

// Load reads configuration once during boot. Precedence:
// config/config.json -> defaults -> environment variable overrides.
func Load() AppConfig {
	if loaded {
		return cfg
	}

	_ = loadJSONConfig(filepath.Join("config", "config.json"), &cfg)
	applyDefaults(&cfg)
	applyEnvOverrides(&cfg)

	if cfg.JWTSecret == "" {
		log.Fatal("JWT_SECRET must be set in environment variables")
	}

	loaded = true
	return cfg
}

// Get returns the cached configuration, loading it if necessary.
func Get() AppConfig {
	if !loaded {
		return Load()
	}
	return cfg
}

// SetForTesting replaces the cached configuration. Test-only.
func SetForTesting(c AppConfig) {
	cfg = c
	loaded = true
}

func applyDefaults(c *AppConfig) {
	if c.AppPort == "" {
		c.AppPort = "8080"
	}
	if c.DBHost == "" {
		c.DBHost = "127.0.0.1"
	}
	if c.DBPort == "" {
		c.DBPort = "3306"
	}
	if c.DBUser == "" {
		c.DBUser = "root"
	}
	if c.DBName == "" {
		c.DBName = "scribe"
	}
	if c.RateLimitPerMinute == 0 {
		c.RateLimitPerMinute = 60
	}
	if len(c.AllowedOrigins) == 0 {
		c.AllowedOrigins = []string{"*"}
	}
	if c.GinMode == "" {
		c.GinMode = "release"
	}
	if c.GinPath == "" {
		c.GinPath = "logs/gin.log"
	}
	if c.RedisHost == "" {
		c.RedisHost = "127.0.0.1"
	}
	if c.RedisPort == 0 {
		c.RedisPort = 6379
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.LogPath == "" {
		c.LogPath = "logs/app.log"
	}
	if c.SetupUsername == "" {
		c.SetupUsername = "new_user"
	}
	if c.SetupPassword == "" {
		c.SetupPassword = "secure_pass123"
	}
	if c.AdminUsername == "" {
		c.AdminUsername = "admin_user"
	}
	if c.AdminPassword == "" {
		c.AdminPassword = "adminpass"
	}
}

// loadJSONConfig reads a flat JSON object into cfg if the file exists.
func loadJSONConfig(path string, out *AppConfig) error {
	f, err := os.Open(path)
	if err != nil {
		return nil // missing file is fine
	}
	defer f.Close()

	var raw map[string]any
	if err := json.NewDecoder(f).Decode(&raw); err != nil {
		return err
	}

	getString := func(key string) string {
		if s, ok := raw[key].(string); ok {
			return s
		}
		return ""
	}
	getInt := func(key string) int {
		if v, ok := raw[key].(float64); ok {
			return int(v)
		}
		return 0
	}
	getBool := func(key string) bool {
		b, _ := raw[key].(bool)
		return b
	}
	getStringSlice := func(key string) []string {
		arr, ok := raw[key].([]any)
		if !ok {
			return nil
		}
		res := make([]string, 0, len(arr))
		for _, it := range arr {
			if s, ok := it.(string); ok {
				res = append(res, s)
			}
		}
		return res
	}

	setIf := func(dst *string, key string) {
		if v := getString(key); v != "" {
			*dst = v
		}
	}
	setIf(&out.AppPort, "AppPort")
	setIf(&out.JWTSecret, "JWTSecret")
	setIf(&out.DatabaseURI, "DatabaseURI")
	setIf(&out.DBHost, "DBHost")
	setIf(&out.DBPort, "DBPort")
	setIf(&out.DBUser, "DBUser")
	setIf(&out.DBPassword, "DBPassword")
	setIf(&out.DBName, "DBName")
	setIf(&out.GinMode, "GinMode")
	setIf(&out.GinPath, "GinPath")
	setIf(&out.RedisHost, "RedisHost")
	setIf(&out.RedisPassword, "RedisPassword")
	setIf(&out.LogLevel, "LogLevel")
	setIf(&out.LogPath, "LogPath")
	setIf(&out.SetupUsername, "SetupUsername")
	setIf(&out.SetupPassword, "SetupPassword")
	setIf(&out.AdminUsername, "AdminUsername")
	setIf(&out.AdminPassword, "AdminPassword")

	if v := getInt("RateLimitPerMinute"); v != 0 {
		out.RateLimitPerMinute = v
	}
	if v := getInt("RedisPort"); v != 0 {
		out.RedisPort = v
	}
	if v := getInt("RedisDB"); v != 0 {
		out.RedisDB = v
	}
	if v := getInt("LogMaxSizeMB"); v != 0 {
		out.LogMaxSizeMB = v
	}
	if v := getInt("LogMaxBackups"); v != 0 {
		out.LogMaxBackups = v
	}
	if v := getInt("LogMaxAgeDays"); v != 0 {
		out.LogMaxAgeDays = v
	}
	out.LogCompress = getBool("LogCompress")
	if list := getStringSlice("AllowedOrigins"); len(list) > 0 {
		out.AllowedOrigins = list
	}
	return nil
}

func applyEnvOverrides(c *AppConfig) {
	setIf := func(dst *string, key string) {
		if v := os.Getenv(key); v != "" {
			*dst = v
		}
	}
	setIf(&c.AppPort, "APP_PORT")
	setIf(&c.JWTSecret, "JWT_SECRET")
	setIf(&c.DatabaseURI, "DATABASE_URI")
	setIf(&c.DBHost, "DB_HOST")
	setIf(&c.DBPort, "DB_PORT")
	setIf(&c.DBUser, "DB_USER")
	setIf(&c.DBPassword, "DB_PASSWORD")
	setIf(&c.DBName, "DB_NAME")
	setIf(&c.GinMode, "GIN_MODE")
	setIf(&c.GinPath, "GIN_LOG_PATH")
	setIf(&c.RedisHost, "REDIS_HOST")
	setIf(&c.RedisPassword, "REDIS_PASSWORD")
	setIf(&c.LogLevel, "LOG_LEVEL")
	setIf(&c.LogPath, "LOG_PATH")
	setIf(&c.SetupUsername, "SETUP_USERNAME")
	setIf(&c.SetupPassword, "SETUP_PASSWORD")
	setIf(&c.AdminUsername, "ADMIN_USERNAME")
	setIf(&c.AdminPassword, "ADMIN_PASSWORD")

	if v := os.Getenv("RATE_LIMIT_PER_MINUTE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			c.RateLimitPerMinute = n
		}
	}
	if v := os.Getenv("REDIS_PORT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			c.RedisPort = n
		}
	}
	if v := os.Getenv("REDIS_DB"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			c.RedisDB = n
		}
	}
	if v := os.Getenv("ALLOWED_ORIGINS"); v != "" {
		parts := strings.Split(v, ",")
		res := make([]string, 0, len(parts))
		for _, p := range parts {
			if s := strings.TrimSpace(p); s != "" {
				res = append(res, s)
			}
		}
		if len(res) > 0 {
			c.AllowedOrigins = res
		}
	}
}
