package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const configFileEnvName = "POS_CONFIG_FILE"

// Operator holds the single terminal operator's credentials. PasswordHash
// is a bcrypt hash; the plain password never appears in the config file.
type Operator struct {
	Username     string `mapstructure:"username"`
	PasswordHash string `mapstructure:"password_hash"`
}

// Merchant is the fixed header printed on every receipt.
type Merchant struct {
	Name    string `mapstructure:"name"`
	Address string `mapstructure:"address"`
	TaxID   string `mapstructure:"tax_id"`
	Footer  string `mapstructure:"footer"`
}

type Config struct {
	ListenAddr   string   `mapstructure:"listen_addr"`
	DatabasePath string   `mapstructure:"database_path"`
	LogLevel     string   `mapstructure:"log_level"`
	JWTSecret    string   `mapstructure:"jwt_secret"`
	Operator     Operator `mapstructure:"operator"`
	Merchant     Merchant `mapstructure:"merchant"`
}

// Load reads the terminal configuration from the file named by the
// --config flag (overridable with POS_CONFIG_FILE). A missing file falls
// back to the defaults; an unreadable or malformed one is an error.
func Load() (Config, error) {
	setDefaults()
	viper.SetConfigFile(getConfigFilepath())

	if err := viper.ReadInConfig(); err != nil {
		var pathErr *os.PathError
		if !errors.As(err, &pathErr) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if cfg.JWTSecret == "" {
		return Config{}, errors.New("jwt_secret is required")
	}
	if cfg.Operator.Username == "" || cfg.Operator.PasswordHash == "" {
		return Config{}, errors.New("operator credentials are required")
	}
	return cfg, nil
}

func setDefaults() {
	viper.SetDefault("listen_addr", ":8080")
	viper.SetDefault("database_path", "pos-register.db")
	viper.SetDefault("log_level", "info")
	viper.SetDefault("merchant.name", "POS Register")
}

func getConfigFilepath() string {
	cmdLine := pflag.NewFlagSet(os.Args[0], pflag.ExitOnError)
	arg := cmdLine.String("config", "pos-register.yaml", "config file")
	_ = cmdLine.Parse(os.Args[1:])
	if env, ok := os.LookupEnv(configFileEnvName); ok {
		return env
	}
	return *arg
}
