package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// ServerConfig configures the development API server.
type ServerConfig struct {
	Server ListenConfig
	JWT    JWTConfig
	Log    LogConfig
	Users  []UserRecord
}

type ListenConfig struct {
	Addr            string
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

type JWTConfig struct {
	Secret string
	TTL    time.Duration
}

// UserRecord seeds one account. Password is hashed at startup unless
// PasswordHash (bcrypt) is already given.
type UserRecord struct {
	Username     string
	Password     string
	PasswordHash string `mapstructure:"password_hash"`
	FirstName    string `mapstructure:"first_name"`
	LastName     string `mapstructure:"last_name"`
	Address      string
	Phone        string
	Image        string
}

// LoadServer reads the dev server config. Env var overrides use prefix IDCARD_API_;
// the file comes from $IDCARD_API_CONFIG or ./idcard-api.toml.
func LoadServer() (ServerConfig, error) {
	v := viper.New()
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.shutdown_timeout", "5s")
	v.SetDefault("jwt.secret", "")
	v.SetDefault("jwt.ttl", "72h")
	v.SetDefault("log.level", "info")

	v.SetConfigType("toml")
	if p := os.Getenv("IDCARD_API_CONFIG"); p != "" {
		v.SetConfigFile(p)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("idcard-api")
	}

	v.SetEnvPrefix("IDCARD_API")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return ServerConfig{}, fmt.Errorf("read config: %w", err)
		}
	}

	var c ServerConfig
	if err := v.Unmarshal(&c); err != nil {
		return ServerConfig{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if strings.TrimSpace(c.JWT.Secret) == "" {
		return ServerConfig{}, errors.New("jwt.secret is required (set IDCARD_API_JWT_SECRET)")
	}
	if len(c.Users) == 0 {
		c.Users = []UserRecord{DemoUser()}
	}
	return c, nil
}

// DemoUser is the account seeded when no users are configured.
func DemoUser() UserRecord {
	return UserRecord{
		Username:  "demo",
		Password:  "demo",
		FirstName: "Grace",
		LastName:  "Hopper",
		Address:   "1 Navy Yard, Arlington VA",
		Phone:     "+1 202 555 0143",
		Image:     "https://placeimg.com/300/300/people",
	}
}
