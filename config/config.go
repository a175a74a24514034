// Package config loads the trainer and dashboard settings from an optional YAML file
// and CHURN_ prefixed environment variables.
package config

import "errors"
import "fmt"
import "strings"
import "time"

import "github.com/spf13/viper"

import "github.com/neurlang/churn/boost"
import "github.com/neurlang/churn/logging"

// Config is the application configuration
type Config struct {
	Data   DataConfig     `mapstructure:"data"`
	Model  ModelConfig    `mapstructure:"model"`
	Server ServerConfig   `mapstructure:"server"`
	Log    logging.Config `mapstructure:"log"`
	Train  TrainConfig    `mapstructure:"train"`
}

// DataConfig locates the customer dataset
type DataConfig struct {
	Path string `mapstructure:"path"`
}

// ModelConfig locates the trained artifact
type ModelConfig struct {
	Path string `mapstructure:"path"`
}

// ServerConfig configures the dashboard listener
type ServerConfig struct {
	Addr         string        `mapstructure:"addr"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	IdleTimeout  time.Duration `mapstructure:"idle_timeout"`
}

// TrainConfig holds the boosting hyper parameters and the evaluation significance
type TrainConfig struct {
	Rounds         int     `mapstructure:"rounds"`
	MaxDepth       int     `mapstructure:"max_depth"`
	LearningRate   float64 `mapstructure:"learning_rate"`
	Lambda         float64 `mapstructure:"lambda"`
	MinChildWeight float64 `mapstructure:"min_child_weight"`
	Gamma          float64 `mapstructure:"gamma"`
	Subsample      float64 `mapstructure:"subsample"`
	Seed           uint32  `mapstructure:"seed"`
	Threads        int     `mapstructure:"threads"`

	// Significance is the confidence level, in percent, of the evaluation sample
	Significance int `mapstructure:"significance"`
}

func setDefaults(v *viper.Viper) {
	h := boost.Defaults()

	v.SetDefault("data.path", "WA_Fn-UseC_-Telco-Customer-Churn.csv")
	v.SetDefault("model.path", "churn_model.json.sz")

	v.SetDefault("server.addr", ":8501")
	v.SetDefault("server.read_timeout", 5*time.Second)
	v.SetDefault("server.write_timeout", 10*time.Second)
	v.SetDefault("server.idle_timeout", 60*time.Second)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetDefault("train.rounds", h.Rounds)
	v.SetDefault("train.max_depth", h.MaxDepth)
	v.SetDefault("train.learning_rate", h.LearningRate)
	v.SetDefault("train.lambda", h.Lambda)
	v.SetDefault("train.min_child_weight", h.MinChildWeight)
	v.SetDefault("train.gamma", h.Gamma)
	v.SetDefault("train.subsample", h.Subsample)
	v.SetDefault("train.seed", h.Seed)
	v.SetDefault("train.threads", 0)
	v.SetDefault("train.significance", 95)
}

// Load reads the configuration. An explicit path must exist; without one a churn.yaml
// in ./configs or the working directory is used when present.
func Load(configPath string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("churn")
		v.SetConfigType("yaml")
		v.AddConfigPath("./configs")
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix("CHURN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configPath != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("config: read %s: %w", configPath, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config: unmarshal: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}

// Validate reports the first invalid setting
func (c *Config) Validate() error {
	if c.Data.Path == "" {
		return errors.New("data.path is required")
	}
	if c.Model.Path == "" {
		return errors.New("model.path is required")
	}
	if c.Server.Addr == "" {
		return errors.New("server.addr is required")
	}
	if c.Server.ReadTimeout < 0 || c.Server.WriteTimeout < 0 || c.Server.IdleTimeout < 0 {
		return errors.New("server timeouts must not be negative")
	}
	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		return err
	}
	if f := strings.ToLower(c.Log.Format); f != "json" && f != "text" {
		return fmt.Errorf("invalid log format: %s, must be 'json' or 'text'", c.Log.Format)
	}
	if c.Train.Threads < 0 {
		return fmt.Errorf("train.threads %d < 0", c.Train.Threads)
	}
	if c.Train.Significance < 1 || c.Train.Significance > 99 {
		return fmt.Errorf("train.significance %d outside [1, 99]", c.Train.Significance)
	}
	h := c.HyperParameters()
	return h.Validate()
}

// HyperParameters converts the train section to boosting hyper parameters
func (c *Config) HyperParameters() boost.HyperParameters {
	h := boost.Defaults()
	h.Rounds = c.Train.Rounds
	h.MaxDepth = c.Train.MaxDepth
	h.LearningRate = c.Train.LearningRate
	h.Lambda = c.Train.Lambda
	h.MinChildWeight = c.Train.MinChildWeight
	h.Gamma = c.Train.Gamma
	h.Subsample = c.Train.Subsample
	h.Seed = c.Train.Seed
	h.Threads = c.Train.Threads
	return h
}
