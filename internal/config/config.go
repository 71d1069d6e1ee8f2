package config

import (
	"errors"
	"flag"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

var (
	ErrDatabaseURLRequired = errors.New("database url is required")
	ErrBotTokenRequired    = errors.New("bot token is required")
)

const (
	DefaultMaxFileSize  = 50 << 20
	DefaultWinThreshold = 5
	DefaultWinMargin    = 2
)

// Scoring holds the classifier tuning for the scored assessment survey.
// These are business configuration, not constants.
type Scoring struct {
	WinThreshold int `yaml:"win_threshold"`
	WinMargin    int `yaml:"win_margin"`
}

type Config struct {
	Debug            bool   `yaml:"debug"`
	Host             string `yaml:"host"`
	Port             string `yaml:"port"`
	DatabaseURL      string `yaml:"database_url"`
	MigrationSource  string `yaml:"migration_source"`
	OtelCollectorUrl string `yaml:"otel_collector_url"`

	BotToken       string `yaml:"bot_token"`
	ChatAPIBaseURL string `yaml:"chat_api_base_url"`
	WebhookSecret  string `yaml:"webhook_secret"`

	FilesBaseURL string `yaml:"files_base_url"`
	MaxFileSize  int64  `yaml:"max_file_size"`

	RedisAddr          string `yaml:"redis_addr"`
	ExportWorkbookPath string `yaml:"export_workbook_path"`
	ExportAuditPath    string `yaml:"export_audit_path"`

	MainSurveyCode       string  `yaml:"main_survey_code"`
	AssessmentSurveyCode string  `yaml:"assessment_survey_code"`
	AssessmentResultDir  string  `yaml:"assessment_result_dir"`
	Scoring              Scoring `yaml:"scoring"`
}

// Log buffers configuration-time messages so they can be emitted once the
// logger exists.
type Log struct {
	entries []string
}

func (l *Log) add(message string) {
	l.entries = append(l.entries, message)
}

func (l *Log) FlushToZap(logger *zap.Logger) {
	for _, entry := range l.entries {
		logger.Info(entry)
	}
}

func defaultConfig() Config {
	return Config{
		Host:                 "0.0.0.0",
		Port:                 "8080",
		MigrationSource:      "file://migrations",
		ChatAPIBaseURL:       "https://api.telegram.org",
		MaxFileSize:          DefaultMaxFileSize,
		ExportWorkbookPath:   "data/responses.xlsx",
		ExportAuditPath:      "data/export_audit.jsonl",
		MainSurveyCode:       "assistant_v1",
		AssessmentSurveyCode: "assistant_test_v1",
		AssessmentResultDir:  "data/assessment_results",
		Scoring: Scoring{
			WinThreshold: DefaultWinThreshold,
			WinMargin:    DefaultWinMargin,
		},
	}
}

// Load resolves configuration with flag > env > .env > yaml file > default
// precedence, the lowest-priority source applied first.
func Load() (Config, *Log) {
	cfg := defaultConfig()
	cfgLog := &Log{}

	configPath := flag.String("config", "", "path to yaml config file")
	flagSet := map[string]*string{}
	for _, name := range []string{
		"host", "port", "database_url", "migration_source", "otel_collector_url",
		"bot_token", "chat_api_base_url", "webhook_secret", "files_base_url",
		"redis_addr", "export_workbook_path", "export_audit_path",
		"main_survey_code", "assessment_survey_code", "assessment_result_dir",
	} {
		flagSet[name] = flag.String(name, "", "")
	}
	debugFlag := flag.Bool("debug", false, "enable debug mode")
	flag.Parse()

	if *configPath != "" {
		if err := loadYaml(&cfg, *configPath); err != nil {
			cfgLog.add("Failed to load config file " + *configPath + ": " + err.Error())
		} else {
			cfgLog.add("Loaded config file " + *configPath)
		}
	}

	if err := godotenv.Load(); err == nil {
		cfgLog.add("Loaded .env file")
	}
	applyEnv(&cfg)

	applyString := func(flagName string, target *string) {
		if value := *flagSet[flagName]; value != "" {
			*target = value
		}
	}
	applyString("host", &cfg.Host)
	applyString("port", &cfg.Port)
	applyString("database_url", &cfg.DatabaseURL)
	applyString("migration_source", &cfg.MigrationSource)
	applyString("otel_collector_url", &cfg.OtelCollectorUrl)
	applyString("bot_token", &cfg.BotToken)
	applyString("chat_api_base_url", &cfg.ChatAPIBaseURL)
	applyString("webhook_secret", &cfg.WebhookSecret)
	applyString("files_base_url", &cfg.FilesBaseURL)
	applyString("redis_addr", &cfg.RedisAddr)
	applyString("export_workbook_path", &cfg.ExportWorkbookPath)
	applyString("export_audit_path", &cfg.ExportAuditPath)
	applyString("main_survey_code", &cfg.MainSurveyCode)
	applyString("assessment_survey_code", &cfg.AssessmentSurveyCode)
	applyString("assessment_result_dir", &cfg.AssessmentResultDir)
	if *debugFlag {
		cfg.Debug = true
	}

	return cfg, cfgLog
}

func loadYaml(cfg *Config, path string) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(content, cfg)
}

func applyEnv(cfg *Config) {
	setString := func(key string, target *string) {
		if value := os.Getenv(key); value != "" {
			*target = value
		}
	}
	setString("HOST", &cfg.Host)
	setString("PORT", &cfg.Port)
	setString("DATABASE_URL", &cfg.DatabaseURL)
	setString("MIGRATION_SOURCE", &cfg.MigrationSource)
	setString("OTEL_COLLECTOR_URL", &cfg.OtelCollectorUrl)
	setString("BOT_TOKEN", &cfg.BotToken)
	setString("CHAT_API_BASE_URL", &cfg.ChatAPIBaseURL)
	setString("WEBHOOK_SECRET", &cfg.WebhookSecret)
	setString("FILES_BASE_URL", &cfg.FilesBaseURL)
	setString("REDIS_ADDR", &cfg.RedisAddr)
	setString("EXPORT_WORKBOOK_PATH", &cfg.ExportWorkbookPath)
	setString("EXPORT_AUDIT_PATH", &cfg.ExportAuditPath)
	setString("MAIN_SURVEY_CODE", &cfg.MainSurveyCode)
	setString("ASSESSMENT_SURVEY_CODE", &cfg.AssessmentSurveyCode)
	setString("ASSESSMENT_RESULT_DIR", &cfg.AssessmentResultDir)

	if value := os.Getenv("DEBUG"); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			cfg.Debug = parsed
		}
	}
	if value := os.Getenv("MAX_FILE_SIZE"); value != "" {
		if parsed, err := strconv.ParseInt(value, 10, 64); err == nil {
			cfg.MaxFileSize = parsed
		}
	}
	if value := os.Getenv("SCORING_WIN_THRESHOLD"); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			cfg.Scoring.WinThreshold = parsed
		}
	}
	if value := os.Getenv("SCORING_WIN_MARGIN"); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			cfg.Scoring.WinMargin = parsed
		}
	}
}

func (c Config) Validate() error {
	if c.DatabaseURL == "" {
		return ErrDatabaseURLRequired
	}
	if c.BotToken == "" {
		return ErrBotTokenRequired
	}
	return nil
}
