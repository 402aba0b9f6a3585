package core

import (
	"log"
	"net"
	"net/mail"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type (
	// Config holds all the settings the application needs. It is loaded once on
	// startup and passed down to collaborators; nothing reads the environment
	// after that.
	Config struct {
		Debug    bool
		TestMode bool
		Env      string // DEV (default), TEST, QA, PROD
		Build    string
		AppName  string
		WorkDir  string

		DefaultFromEmail mail.Address
		SendgridApiKey   string
		RollbarToken     string

		ActivityLogSize int // max entries returned by recent-activity queries

		OverdueReminderGrace time.Duration // how long a payment may stay overdue before a reminder goes out

		Database DatabaseConfig
	}

	DatabaseConfig struct {
		Engine        string
		Name          string
		User          string
		Password      string
		AdminUser     string
		AdminPassword string
		Host          string
		Port          string
		DisableTLS    bool
	}
)

func (c DatabaseConfig) Address() string {
	return net.JoinHostPort(c.Host, c.Port)
}

// NewConfig loads the configuration from defaults, an optional
// config/.env.<env> file and environment variables (prefixed with the env name).
func NewConfig(workDir string) *Config {
	conf := viper.New()
	conf.SetTypeByDefaultValue(true)

	// defaults
	conf.SetDefault("debug", true)
	conf.SetDefault("appName", "EduCRM")
	conf.SetDefault("defaultFromEmail", "noreply@educrm.localhost")
	conf.SetDefault("activityLogSize", 50)
	conf.SetDefault("overdueReminderGrace", 72*time.Hour)
	conf.SetDefault("database.engine", "postgres")
	conf.SetDefault("database.name", "educrm")
	conf.SetDefault("database.host", "localhost")
	conf.SetDefault("database.port", "5432")
	conf.SetDefault("database.disableTLS", true)

	env := os.Getenv("ENV")
	switch env {
	case "":
		env = "DEV"
	case "TEST":
		conf.SetDefault("testMode", true)
	}
	conf.SetEnvPrefix(env)
	conf.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// load .env if it exists (ignore if it does not)
	dotEnvPath := filepath.Join(workDir, "config", ".env."+strings.ToLower(env))
	if _, err := os.Stat(dotEnvPath); err == nil {
		if err := godotenv.Load(dotEnvPath); err != nil {
			log.Fatalf("config.godotenv(%s): %v", dotEnvPath, err)
		}
	} else if !os.IsNotExist(err) {
		log.Fatalf("config.os.Stat(%s): %v", dotEnvPath, err)
	}
	conf.AutomaticEnv()

	return &Config{
		Debug:                conf.GetBool("debug"),
		TestMode:             conf.GetBool("testMode"),
		Env:                  env,
		Build:                conf.GetString("build"),
		AppName:              conf.GetString("appName"),
		WorkDir:              workDir,
		DefaultFromEmail:     mail.Address{Name: conf.GetString("appName"), Address: conf.GetString("defaultFromEmail")},
		SendgridApiKey:       conf.GetString("sendgridApiKey"),
		RollbarToken:         conf.GetString("rollbarToken"),
		ActivityLogSize:      conf.GetInt("activityLogSize"),
		OverdueReminderGrace: conf.GetDuration("overdueReminderGrace"),
		Database: DatabaseConfig{
			Engine:        conf.GetString("database.engine"),
			Name:          conf.GetString("database.name"),
			User:          conf.GetString("database.user"),
			Password:      conf.GetString("database.password"),
			AdminUser:     conf.GetString("database.adminUser"),
			AdminPassword: conf.GetString("database.adminPassword"),
			Host:          conf.GetString("database.host"),
			Port:          conf.GetString("database.port"),
			DisableTLS:    conf.GetBool("database.disableTLS"),
		},
	}
}
