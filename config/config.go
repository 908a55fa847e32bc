package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v2"
)

type SysConfig struct {
	Appid    string `yaml:"appid" json:"appid"`
	Location string `yaml:"location" json:"location"`
	Workdir  string `yaml:"workdir" json:"workdir"`
	DataDir  string `yaml:"data_dir" json:"data_dir"`
	Debug    bool   `yaml:"debug" json:"debug"`
}

type WebConfig struct {
	Host    string `yaml:"host" json:"host"`
	Port    int    `yaml:"port" json:"port"`
	Secret  string `yaml:"secret" json:"secret"`
	SiteURL string `yaml:"site_url" json:"site_url"`
}

type DBConfig struct {
	Type     string `yaml:"type" json:"type"`
	Host     string `yaml:"host" json:"host"`
	Port     int    `yaml:"port" json:"port"`
	Name     string `yaml:"name" json:"name"`
	User     string `yaml:"user" json:"user"`
	Passwd   string `yaml:"passwd" json:"passwd"`
	MaxConn  int    `yaml:"max_conn" json:"max_conn"`
	IdleConn int    `yaml:"idle_conn" json:"idle_conn"`
	Debug    bool   `yaml:"debug" json:"debug"`
}

type LogConfig struct {
	Mode       string `yaml:"mode" json:"mode"`
	FileEnable bool   `yaml:"file_enable" json:"file_enable"`
	Filename   string `yaml:"filename" json:"filename"`
}

type MailConfig struct {
	Enabled  bool   `yaml:"enabled" json:"enabled"`
	Host     string `yaml:"host" json:"host"`
	Port     int    `yaml:"port" json:"port"`
	Username string `yaml:"username" json:"username"`
	Password string `yaml:"password" json:"password"`
	From     string `yaml:"from" json:"from"`
	AdminTo  string `yaml:"admin_to" json:"admin_to"`
}

type SmsConfig struct {
	Enabled bool   `yaml:"enabled" json:"enabled"`
	Gateway string `yaml:"gateway" json:"gateway"`
	AuthKey string `yaml:"auth_key" json:"auth_key"`
	Sender  string `yaml:"sender" json:"sender"`
}

// AssistantConfig configures the AI chat backend (Gemini style REST API).
type AssistantConfig struct {
	Enabled  bool   `yaml:"enabled" json:"enabled"`
	Endpoint string `yaml:"endpoint" json:"endpoint"`
	ApiKey   string `yaml:"api_key" json:"api_key"`
	Model    string `yaml:"model" json:"model"`
}

type AppConfig struct {
	System    SysConfig       `yaml:"system" json:"system"`
	Web       WebConfig       `yaml:"web" json:"web"`
	Database  DBConfig        `yaml:"database" json:"database"`
	Logger    LogConfig       `yaml:"logger" json:"logger"`
	Mail      MailConfig      `yaml:"mail" json:"mail"`
	Sms       SmsConfig       `yaml:"sms" json:"sms"`
	Assistant AssistantConfig `yaml:"assistant" json:"assistant"`
}

var DefaultAppConfig = &AppConfig{
	System: SysConfig{
		Appid:    "GlamEase",
		Location: "Asia/Kolkata",
		Workdir:  "/var/glamease",
		DataDir:  "data",
		Debug:    true,
	},
	Web: WebConfig{
		Host:   "0.0.0.0",
		Port:   1816,
		Secret: "9b6de5cc-glamease-1816-8734-f2e4-e9b98bd0",
	},
	Database: DBConfig{
		Type:     "postgres",
		Host:     "127.0.0.1",
		Port:     5432,
		Name:     "glamease",
		User:     "postgres",
		Passwd:   "glamease",
		MaxConn:  100,
		IdleConn: 10,
	},
	Logger: LogConfig{
		Mode:       "development",
		FileEnable: true,
		Filename:   "/var/glamease/glamease.log",
	},
	Mail: MailConfig{
		Host: "smtp.gmail.com",
		Port: 587,
	},
	Assistant: AssistantConfig{
		Endpoint: "https://generativelanguage.googleapis.com/v1beta/models",
		Model:    "gemini-1.5-flash",
	},
}

func (c *AppConfig) GetDataDir() string {
	if filepath.IsAbs(c.System.DataDir) {
		return c.System.DataDir
	}
	return filepath.Join(c.System.Workdir, c.System.DataDir)
}

func (c *AppConfig) GetLogDir() string {
	return filepath.Join(c.System.Workdir, "logs")
}

func setEnvValue(name string, val *string) {
	var evalue = os.Getenv(name)
	if evalue != "" {
		*val = evalue
	}
}

func setEnvBoolValue(name string, val *bool) {
	var evalue = os.Getenv(name)
	if evalue != "" {
		*val = evalue == "true" || evalue == "1" || evalue == "on"
	}
}

// LoadConfig loads the YAML configuration from cfile, falling back to
// /etc/glamease.yml and finally to DefaultAppConfig. Environment variables
// with the GLAMEASE_ prefix override file values.
func LoadConfig(cfile string) *AppConfig {
	cfg := new(AppConfig)
	*cfg = *DefaultAppConfig

	if cfile == "" {
		cfile = "glamease.yml"
	}
	if _, err := os.Stat(cfile); err != nil {
		cfile = "/etc/glamease.yml"
	}
	if _, err := os.Stat(cfile); err == nil {
		data, err := os.ReadFile(cfile)
		if err == nil {
			_ = yaml.Unmarshal(data, cfg)
		}
	}

	setEnvValue("GLAMEASE_SYSTEM_WORKDIR", &cfg.System.Workdir)
	setEnvValue("GLAMEASE_SYSTEM_DATADIR", &cfg.System.DataDir)
	setEnvBoolValue("GLAMEASE_SYSTEM_DEBUG", &cfg.System.Debug)

	setEnvValue("GLAMEASE_DB_HOST", &cfg.Database.Host)
	setEnvValue("GLAMEASE_DB_NAME", &cfg.Database.Name)
	setEnvValue("GLAMEASE_DB_USER", &cfg.Database.User)
	setEnvValue("GLAMEASE_DB_PWD", &cfg.Database.Passwd)

	setEnvValue("GLAMEASE_WEB_SECRET", &cfg.Web.Secret)
	setEnvValue("GLAMEASE_MAIL_USERNAME", &cfg.Mail.Username)
	setEnvValue("GLAMEASE_MAIL_PASSWORD", &cfg.Mail.Password)
	setEnvValue("GLAMEASE_SMS_AUTHKEY", &cfg.Sms.AuthKey)
	setEnvValue("GLAMEASE_ASSISTANT_APIKEY", &cfg.Assistant.ApiKey)

	return cfg
}
