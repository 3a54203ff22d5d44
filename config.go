package odb

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

const (
	DefaultDriver    = "{ODBC Driver 17 for SQL Server}"
	DefaultServer    = `(localdb)\MSSQLLocalDB`
	DefaultDatabase  = "master"
	DefaultSqlDriver = "odbc"
)

// DatabaseMode 创建 Client 时对目标数据库的处理方式
type DatabaseMode string

const (
	// ModeAssume 不检查, 直接连接到目标数据库
	ModeAssume DatabaseMode = "assume"
	// ModeCreate 不存在就创建
	ModeCreate DatabaseMode = "create"
	// ModeExist 不存在返回 ConnectionError
	ModeExist DatabaseMode = "exist"
)

// ConnectionConfig 组装 ODBC 连接串
type ConnectionConfig struct {
	Driver   string `mapstructure:"driver" yaml:"driver"`
	Server   string `mapstructure:"server" yaml:"server"`
	Database string `mapstructure:"database" yaml:"database"`
	Username string `mapstructure:"username" yaml:"username,omitempty"`
	Password string `mapstructure:"password" yaml:"password,omitempty"`
}

// NewConnectionConfig 空字段使用默认值
func NewConnectionConfig(c ConnectionConfig) ConnectionConfig {
	if c.Driver == "" {
		c.Driver = DefaultDriver
	}
	if c.Server == "" {
		c.Server = DefaultServer
	}
	if c.Database == "" {
		c.Database = DefaultDatabase
	}
	return c
}

// String DRIVER=..;SERVER=..;DATABASE=..;UID=..;PWD=..
// DATABASE/UID/PWD 为空时省略
func (c ConnectionConfig) String() string {
	return c.build(c.Password)
}

// Redacted 用于日志, 隐藏密码
func (c ConnectionConfig) Redacted() string {
	if c.Password == "" {
		return c.build("")
	}
	return c.build("******")
}

// WithoutDatabase 去掉数据库, 用于检查/创建/删除数据库
func (c ConnectionConfig) WithoutDatabase() ConnectionConfig {
	c.Database = ""
	return c
}

func (c ConnectionConfig) build(password string) string {
	parts := []string{"DRIVER=" + c.Driver, "SERVER=" + c.Server}
	if c.Database != "" {
		parts = append(parts, "DATABASE="+c.Database)
	}
	if c.Username != "" {
		parts = append(parts, "UID="+c.Username)
	}
	if password != "" {
		parts = append(parts, "PWD="+password)
	}
	return strings.Join(parts, ";")
}

// Config Client 的配置
//
//	connection:
//	  driver: "{ODBC Driver 17 for SQL Server}"
//	  server: "127.0.0.1,1433"
//	  database: "Hello"
//	  username: "sa"
//	  password: "xxxx"
//	sqlDriver: odbc
//	mode: create
//	bindSelect: false
type Config struct {
	Connection ConnectionConfig `mapstructure:"connection" yaml:"connection"`
	SqlDriver  string           `mapstructure:"sqlDriver" yaml:"sqlDriver"` // database/sql 中注册的驱动名
	Mode       DatabaseMode     `mapstructure:"mode" yaml:"mode"`
	BindSelect bool             `mapstructure:"bindSelect" yaml:"bindSelect"` // SELECT 条件也使用占位符
}

func (c Config) withDefaults() Config {
	c.Connection = NewConnectionConfig(c.Connection)
	if c.SqlDriver == "" {
		c.SqlDriver = DefaultSqlDriver
	}
	if c.Mode == "" {
		c.Mode = ModeCreate
	}
	return c
}

func (c Config) validate() error {
	switch c.Mode {
	case ModeAssume, ModeCreate, ModeExist:
		return nil
	}
	return errors.Errorf("unknown database mode %q", c.Mode)
}

// LoadConfig 读取配置, 优先级: 环境变量(ODB_ 前缀) > 配置文件 > 默认值
// path 为空时只读取环境变量; 当前目录有 .env 会先加载
// 例: ODB_CONNECTION_PASSWORD=xxx
func LoadConfig(path string) (Config, error) {
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(); err != nil {
			return Config{}, errors.Wrap(err, "load .env")
		}
	}

	v := viper.New()
	v.SetEnvPrefix("ODB")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("connection.driver", DefaultDriver)
	v.SetDefault("connection.server", DefaultServer)
	v.SetDefault("connection.database", DefaultDatabase)
	v.SetDefault("connection.username", "")
	v.SetDefault("connection.password", "")
	v.SetDefault("sqlDriver", DefaultSqlDriver)
	v.SetDefault("mode", string(ModeCreate))
	v.SetDefault("bindSelect", false)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, errors.Wrapf(err, "read config %s", path)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, errors.Wrap(err, "decode config")
	}
	cfg = cfg.withDefaults()
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
