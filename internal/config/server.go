package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Cache backends accepted by CACHE_BACKEND.
const (
	CacheNone   = "none"
	CacheMemory = "memory"
	CacheRedis  = "redis"
)

// Server holds process settings for cmd/api, read from the environment.
type Server struct {
	Port        string        `mapstructure:"api_port"`
	Env         string        `mapstructure:"api_env"`
	ProjectDir  string        `mapstructure:"project_dir"`
	StaticDir   string        `mapstructure:"static_dir"`
	CacheBack   string        `mapstructure:"cache_backend"`
	CacheTTL    time.Duration `mapstructure:"cache_ttl"`
	RedisAddr   string        `mapstructure:"redis_addr"`
	CORSOrigins []string      `mapstructure:"cors_origins"`
	DebugLog    bool          `mapstructure:"debug_logging"`
}

func (s Server) Production() bool { return s.Env == "production" }

// LoadServer reads settings from the environment (API_PORT, CACHE_BACKEND, ...).
// configFile is optional; when set, its values sit between defaults and the environment.
func LoadServer(configFile string) (*Server, error) {
	v := viper.New()

	defaults := map[string]interface{}{
		"api_port":      "8080",
		"api_env":       "development",
		"project_dir":   "./examples/projects",
		"static_dir":    "./web/dist",
		"cache_backend": CacheMemory,
		"cache_ttl":     time.Hour,
		"redis_addr":    "localhost:6379",
		"cors_origins":  []string{"*"},
		"debug_logging": false,
	}
	for key, value := range defaults {
		v.SetDefault(key, value)
		if err := v.BindEnv(key, strings.ToUpper(key)); err != nil {
			return nil, err
		}
	}

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, err
		}
	}

	var s Server
	if err := v.Unmarshal(&s); err != nil {
		return nil, err
	}
	// CORS_ORIGINS arrives as "a, b" from the environment.
	s.CORSOrigins = splitList(strings.Join(s.CORSOrigins, ","))
	return &s, s.validate()
}

func (s *Server) validate() error {
	switch s.CacheBack {
	case CacheNone, CacheMemory, CacheRedis:
	default:
		return fmt.Errorf("invalid cache_backend %q", s.CacheBack)
	}
	if s.CacheTTL <= 0 {
		return fmt.Errorf("invalid cache_ttl %s", s.CacheTTL)
	}
	if s.CacheBack == CacheRedis && s.RedisAddr == "" {
		return fmt.Errorf("redis_addr is required for the redis cache backend")
	}
	if s.Port == "" {
		return fmt.Errorf("api_port is required")
	}
	return nil
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
