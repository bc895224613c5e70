package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"

	ProtocolKeyed = "keyed"
	ProtocolToken = "token"

	// chave de acesso usada pela planilha remota quando nenhuma é configurada
	DefaultRemoteKey = "L230_test123"
	DefaultSecretKey = "your_secret_key"
)

type Config struct {
	App        App        `mapstructure:",squash"`
	Server     Server     `mapstructure:",squash"`
	Database   Database   `mapstructure:",squash"`
	Remote     Remote     `mapstructure:",squash"`
	Dashboard  Dashboard  `mapstructure:",squash"`
	Team       Team       `mapstructure:",squash"`
	RemoteSync RemoteSync `mapstructure:",squash"`
	Kafka      Kafka      `mapstructure:",squash"`
	Cors       Cors       `mapstructure:",squash"`
}

type App struct {
	LogLevel string `mapstructure:"log_level"`
	Env      string `mapstructure:"app_env"`
}

type Server struct {
	Host string `mapstructure:"host"`
	Port string `mapstructure:"port"`
}

type Database struct {
	DSN        string `mapstructure:"-"`
	Driver     string `mapstructure:"database_driver"`
	Password   string `mapstructure:"database_password"`
	URL        string `mapstructure:"database_url"`
	User       string `mapstructure:"database_user"`
	SSLMode    string `mapstructure:"database_sslmode"`
	SQLitePath string `mapstructure:"database_sqlite_path"`
}

// Remote descreve o endpoint da planilha compartilhada
type Remote struct {
	URL      string        `mapstructure:"remote_api_url"`
	Key      string        `mapstructure:"remote_api_key"`
	Token    string        `mapstructure:"remote_api_token"`
	Protocol string        `mapstructure:"remote_api_protocol"`
	Timeout  time.Duration `mapstructure:"remote_api_timeout"`
}

// Enabled indica se a sincronização remota está configurada
func (r Remote) Enabled() bool {
	return r.URL != ""
}

type Dashboard struct {
	Password     string        `mapstructure:"dashboard_password"`
	PasswordHash string        `mapstructure:"dashboard_password_hash"`
	SecretKey    string        `mapstructure:"dashboard_secret_key"`
	TokenTTL     time.Duration `mapstructure:"dashboard_token_ttl"`
}

type Team struct {
	Members    []string `mapstructure:"team_members"`
	SeedSample bool     `mapstructure:"kpi_seed_sample"`
}

type RemoteSync struct {
	CronSchedule string `mapstructure:"remote_sync_cron"`
	Enabled      bool   `mapstructure:"remote_sync_enabled"`
}

type Kafka struct {
	Brokers []string `mapstructure:"kafka_brokers"`
	Topic   string   `mapstructure:"kafka_topic"`
}

type Cors struct {
	AllowedOrigins []string `mapstructure:"cors_allowed_origins"`
}

func SetDefaults() {
	viper.SetDefault("APP_ENV", "development")
	viper.SetDefault("LOG_LEVEL", "debug")

	viper.SetDefault("HOST", "localhost")
	viper.SetDefault("PORT", 8000)

	viper.SetDefault("DATABASE_DRIVER", DriverSQLite)
	viper.SetDefault("DATABASE_URL", "localhost:5432/sales_kpi")
	viper.SetDefault("DATABASE_USER", "postgres")
	viper.SetDefault("DATABASE_PASSWORD", "root")
	viper.SetDefault("DATABASE_SSLMODE", "disable")
	viper.SetDefault("DATABASE_SQLITE_PATH", "data/sales_kpi.db")

	viper.SetDefault("REMOTE_API_URL", "") // vazio desativa a sincronização remota
	viper.SetDefault("REMOTE_API_KEY", DefaultRemoteKey)
	viper.SetDefault("REMOTE_API_TOKEN", "")
	viper.SetDefault("REMOTE_API_PROTOCOL", ProtocolKeyed)
	viper.SetDefault("REMOTE_API_TIMEOUT", "30s")

	viper.SetDefault("DASHBOARD_PASSWORD", "")
	viper.SetDefault("DASHBOARD_PASSWORD_HASH", "")
	viper.SetDefault("DASHBOARD_SECRET_KEY", DefaultSecretKey)
	viper.SetDefault("DASHBOARD_TOKEN_TTL", "12h")

	viper.SetDefault("TEAM_MEMBERS", "Commercial 1,Commercial 2,Commercial 3,Commercial 4,Commercial 5")
	viper.SetDefault("KPI_SEED_SAMPLE", false)

	viper.SetDefault("REMOTE_SYNC_CRON", "*/15 * * * *") // a cada 15 minutos
	viper.SetDefault("REMOTE_SYNC_ENABLED", false)

	viper.SetDefault("KAFKA_BROKERS", "") // vazio desativa a publicação de eventos
	viper.SetDefault("KAFKA_TOPIC", "sales-kpi.weekly-records")

	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000,http://localhost:5173")
}

func NewConfig() (*Config, error) {
	loadEnvFile() // ONLY LOCAL

	config := &Config{}

	SetDefaults()

	viper.SetConfigType("env")
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		logrus.Debug("Usando variáveis carregadas pelo godotenv (viper não conseguiu ler .env): ", err)
	}

	err := viper.Unmarshal(config, viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	))
	if err != nil {
		return nil, err
	}

	if err := config.validate(); err != nil {
		return nil, err
	}

	config.Database.DSN = buildDSN(config.Database)

	return config, nil
}

func (c *Config) validate() error {
	switch c.Database.Driver {
	case DriverPostgres, DriverSQLite:
	default:
		return fmt.Errorf("driver de banco não suportado: %s", c.Database.Driver)
	}

	switch c.Remote.Protocol {
	case ProtocolKeyed, ProtocolToken:
	default:
		return fmt.Errorf("protocolo remoto não suportado: %s", c.Remote.Protocol)
	}

	c.Team.Members = compact(c.Team.Members)
	c.Kafka.Brokers = compact(c.Kafka.Brokers)
	c.Cors.AllowedOrigins = compact(c.Cors.AllowedOrigins)

	if c.Remote.Enabled() && c.Remote.Protocol == ProtocolKeyed && c.Remote.Key == DefaultRemoteKey {
		logrus.Warn("REMOTE_API_KEY não configurada, usando a chave padrão")
	}
	if c.Remote.Timeout <= 0 {
		c.Remote.Timeout = 30 * time.Second
	}
	if c.Dashboard.TokenTTL <= 0 {
		c.Dashboard.TokenTTL = 12 * time.Hour
	}

	return nil
}

func buildDSN(db Database) string {
	if db.Driver == DriverSQLite {
		return db.SQLitePath
	}

	return fmt.Sprintf(
		"%s://%s:%s@%s?sslmode=%s",
		db.Driver,
		db.User,
		db.Password,
		db.URL,
		db.SSLMode,
	)
}

func compact(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}

// loadEnvFile carrega o arquivo .env usando godotenv
func loadEnvFile() {
	cwd, err := os.Getwd()
	if err != nil {
		logrus.Warn("Não foi possível obter o diretório atual:", err)
		return
	}

	locations := []string{
		filepath.Join(cwd, ".env"),
		filepath.Join(filepath.Dir(cwd), ".env"),
		filepath.Join(cwd, "../../.env"),
	}

	for _, location := range locations {
		if err := godotenv.Load(location); err == nil {
			logrus.Info("Arquivo .env carregado de: ", location)
			return
		}
	}

	logrus.Debug("Nenhum arquivo .env encontrado, usando variáveis de ambiente")
}
