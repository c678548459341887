// Package config contains utilities for loading configs
package config

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"net"
	"net/url"
	"os"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-yaml"
)

const (
	configFilePath     = "/data/tastebook.yaml"
	appSecretBytes     = 32
	appSecretFilePerms = 0o600
)

const (
	EnvProd = "PROD"
	EnvDev  = "DEV"
)

const (
	StoreMongo    = "mongo"
	StorePostgres = "postgres"
)

const (
	defaultPort          = 8080
	defaultAppSecretPath = "/data/secret"
	defaultMongoURI      = "mongodb://localhost:27017"
	defaultMongoDatabase = "tastebook"
	defaultDatabaseHost  = "localhost"
	defaultDatabasePort  = 5432
	defaultRedisTTL      = 10 * time.Minute
)

// DefaultAllowedOrigins are the browser origins accepted when none are configured.
var DefaultAllowedOrigins = []string{
	"http://localhost:5173",
	"http://localhost:5001",
	"http://localhost:9999",
	"http://localhost:9678",
	"https://tastebook-server.vercel.app",
	"https://tastebook-client.vercel.app",
}

type AppSecretValue string

func (a *AppSecretValue) Validate() error {
	if a == nil {
		return errors.New("secret should not be nil")
	}
	if len([]byte(*a)) < appSecretBytes {
		return errors.New("secret should be at least 32 bytes")
	}
	return nil
}

func splitFieldList(param string) []string {
	// "A,B,C" or "A B C"
	param = strings.ReplaceAll(param, " ", ",")
	parts := strings.Split(param, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// allOrNothing implements a cross-field validator for go-playground/validator.
//
// The validator succeeds only if every field listed in the tag parameter is
// zero-valued, or every listed field is non-zero. It must be attached to a
// placeholder field so it can inspect the parent struct, e.g.
// `validate:"allOrNothing=A B C"`.
//
// Nil pointers and interfaces count as zero. A missing field name or an
// empty parameter list fails validation to surface the misconfiguration.
func allOrNothing(fl validator.FieldLevel) bool {
	parent := fl.Parent()
	if parent.Kind() == reflect.Pointer {
		if parent.IsNil() {
			return true
		}
		parent = parent.Elem()
	}
	if parent.Kind() != reflect.Struct {
		return false
	}

	names := splitFieldList(fl.Param())
	if len(names) == 0 {
		return false
	}

	hasZero := false
	hasNonZero := false

	for _, name := range names {
		f := parent.FieldByName(name)
		if !f.IsValid() {
			return false
		}

		for (f.Kind() == reflect.Pointer || f.Kind() == reflect.Interface) && !f.IsNil() {
			f = f.Elem()
		}

		if f.IsZero() {
			hasZero = true
		} else {
			hasNonZero = true
		}

		if hasZero && hasNonZero {
			return false
		}
	}

	return true
}

// storeSettings requires the connection settings of the selected store.
func storeSettings(sl validator.StructLevel) {
	c := sl.Current().Interface().(Config)
	switch c.Store {
	case StorePostgres:
		if c.Database.Database == "" {
			sl.ReportError(c.Database.Database, "Database.Database", "Database", "required_for_store", c.Store)
		}
	case StoreMongo:
		if c.Mongo.URI == "" {
			sl.ReportError(c.Mongo.URI, "Mongo.URI", "URI", "required_for_store", c.Store)
		}
	}
}

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("allOrNothing", allOrNothing)
	v.RegisterStructValidation(storeSettings, Config{})
	return v
}

func formatValidationError(err error) error {
	validationErrs, ok := err.(validator.ValidationErrors) //nolint:errorlint
	if !ok {
		return err
	}

	for _, e := range validationErrs {
		switch e.Tag() {
		case "allOrNothing":
			// "Config.Database.Validate" -> "Database"
			parts := strings.Split(e.Namespace(), ".")
			var structName string
			//nolint:mnd
			if len(parts) >= 2 {
				structName = parts[len(parts)-2]
			}

			var fields string
			switch structName {
			case "Database":
				fields = "Database, User, and Password"
			default:
				fields = "all related fields"
			}

			return fmt.Errorf(
				"%s configuration is incomplete: either all fields must be set (%s) or all must be empty",
				structName, fields)
		case "required_for_store":
			return fmt.Errorf("%s must be set when the %s store is selected", e.Namespace(), e.Param())
		}
	}

	return err
}

type AppSecret struct {
	Value   *AppSecretValue `yaml:"value" validate:"omitempty,validateFn"`
	Path    string          `yaml:"path" validate:"omitempty,filepath"`
	Version string          `yaml:"version"`
}

type Mongo struct {
	URI      string `yaml:"uri" validate:"omitempty,uri"`
	Database string `yaml:"database"`
}

// Database holds the Postgres connection settings.
type Database struct {
	Port     uint16 `yaml:"port"`
	Host     string `yaml:"host" validate:"omitempty,hostname_rfc1123"`
	Database string `yaml:"database"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`

	Validate struct{} `yaml:"-" validate:"allOrNothing=Database User Password"`
}

// ConnString returns a postgres URL for the settings.
func (d Database) ConnString() string {
	u := url.URL{
		Scheme: "postgresql",
		User:   url.UserPassword(d.User, d.Password),
		Host:   net.JoinHostPort(d.Host, strconv.FormatUint(uint64(d.Port), 10)),
		Path:   "/" + d.Database,
	}
	return u.String()
}

// Redis is optional. An empty Addr disables the recipe cache.
type Redis struct {
	Addr     string        `yaml:"addr" validate:"omitempty,hostname_port"`
	Password string        `yaml:"password"`
	DB       int           `yaml:"db" validate:"gte=0"`
	TTL      time.Duration `yaml:"ttl" validate:"gte=0"`
}

type Admin struct {
	Email string `yaml:"email" validate:"omitempty,email"`
}

type Config struct {
	AppSecret      AppSecret `yaml:"app_secret"`
	Store          string    `yaml:"store" validate:"oneof=mongo postgres"`
	Mongo          Mongo     `yaml:"mongo"`
	Database       Database  `yaml:"database"`
	Redis          Redis     `yaml:"redis"`
	Admin          Admin     `yaml:"admin"`
	AllowedOrigins []string  `yaml:"allowed_origins" validate:"dive,url"`
	Port           uint16    `yaml:"port"`
	Env            string    `yaml:"env" validate:"omitempty,oneof=DEV PROD"`
}

func (c Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

func newAppSecret() (string, error) {
	token := make([]byte, appSecretBytes)
	if _, err := rand.Reader.Read(token); err != nil {
		return "", fmt.Errorf("creating app secret: %w", err)
	}
	return base64.StdEncoding.EncodeToString(token), nil
}

func loadAppSecret(config *Config) error {
	if config.AppSecret.Value != nil {
		return nil
	}

	var secret string
	if f1, err := os.Lstat(config.AppSecret.Path); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("checking secret path: %w", err)
		}

		file, err := os.OpenFile(config.AppSecret.Path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, appSecretFilePerms)
		if err != nil {
			return fmt.Errorf("creating secret file: %w", err)
		}
		defer func() { _ = file.Close() }()

		secret, err = newAppSecret()
		if err != nil {
			return fmt.Errorf("generating new app secret: %w", err)
		}

		if _, err := file.WriteString(secret); err != nil {
			return fmt.Errorf("writing secret file: %w", err)
		}
	} else {
		if f1.IsDir() {
			return fmt.Errorf("expected file, got directory at %q", config.AppSecret.Path)
		}
		data, err := os.ReadFile(config.AppSecret.Path)
		if err != nil {
			return fmt.Errorf("reading file: %w", err)
		}
		secret = string(data)
	}
	val := AppSecretValue(secret)
	config.AppSecret.Value = &val
	return nil
}

func loadWithDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func splitOrigins(s string) []string {
	var origins []string
	for _, o := range strings.Split(s, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, strings.TrimSuffix(o, "/"))
		}
	}
	return origins
}

func loadConfigFromEnv() (Config, error) {
	conf := Config{
		Env:   loadWithDefault("ENV", EnvDev),
		Store: loadWithDefault("STORE_DRIVER", StoreMongo),
		Mongo: Mongo{
			URI:      loadWithDefault("MONGO_URI", defaultMongoURI),
			Database: loadWithDefault("MONGO_DATABASE", defaultMongoDatabase),
		},
		Database: Database{
			Host:     loadWithDefault("DATABASE_HOST", defaultDatabaseHost),
			Database: loadWithDefault("DATABASE", ""),
			User:     loadWithDefault("DATABASE_USER", ""),
			Password: loadWithDefault("DATABASE_PASSWORD", ""),
		},
		Redis: Redis{
			Addr:     loadWithDefault("REDIS_ADDR", ""),
			Password: loadWithDefault("REDIS_PASSWORD", ""),
		},
		Admin: Admin{
			Email: loadWithDefault("ADMIN_EMAIL", ""),
		},
		AllowedOrigins: splitOrigins(loadWithDefault("ALLOWED_ORIGINS", strings.Join(DefaultAllowedOrigins, ","))),
	}

	// AppSecret
	appSecretValue := AppSecretValue(loadWithDefault("APP_SECRET", ""))
	conf.AppSecret = AppSecret{
		Path:    loadWithDefault("APP_SECRET_PATH", defaultAppSecretPath),
		Version: loadWithDefault("APP_SECRET_VERSION", "1"),
	}
	if appSecretValue != "" {
		conf.AppSecret.Value = &appSecretValue
	}

	port := loadWithDefault("PORT", strconv.Itoa(defaultPort))
	if p, err := strconv.ParseUint(port, 10, 16); err != nil {
		return conf, fmt.Errorf("invalid PORT (%q): %w", port, err)
	} else {
		conf.Port = uint16(p)
	}

	databasePort := loadWithDefault("DATABASE_PORT", strconv.Itoa(defaultDatabasePort))
	if p, err := strconv.ParseUint(databasePort, 10, 16); err != nil {
		return conf, fmt.Errorf("invalid DATABASE_PORT (%q): %w", databasePort, err)
	} else {
		conf.Database.Port = uint16(p)
	}

	redisDB := loadWithDefault("REDIS_DB", "0")
	if db, err := strconv.Atoi(redisDB); err != nil {
		return conf, fmt.Errorf("invalid REDIS_DB (%q): %w", redisDB, err)
	} else {
		conf.Redis.DB = db
	}

	redisTTL := loadWithDefault("REDIS_TTL", defaultRedisTTL.String())
	if ttl, err := time.ParseDuration(redisTTL); err != nil {
		return conf, fmt.Errorf("invalid REDIS_TTL (%q): %w", redisTTL, err)
	} else {
		conf.Redis.TTL = ttl
	}

	if err := newValidator().Struct(conf); err != nil {
		return conf, formatValidationError(err)
	}

	if err := loadAppSecret(&conf); err != nil {
		return conf, fmt.Errorf("loading app secret: %w", err)
	}

	return conf, nil
}

func setFileDefaults(config *Config) {
	if config.AppSecret.Path == "" {
		config.AppSecret.Path = defaultAppSecretPath
	}
	if config.AppSecret.Version == "" {
		config.AppSecret.Version = "1"
	}
	if config.Env == "" {
		config.Env = EnvDev
	}
	if config.Port == 0 {
		config.Port = defaultPort
	}
	if config.Store == "" {
		config.Store = StoreMongo
	}
	if config.Mongo.URI == "" {
		config.Mongo.URI = defaultMongoURI
	}
	if config.Mongo.Database == "" {
		config.Mongo.Database = defaultMongoDatabase
	}
	if config.Database.Host == "" {
		config.Database.Host = defaultDatabaseHost
	}
	if config.Database.Port == 0 {
		config.Database.Port = defaultDatabasePort
	}
	if config.Redis.TTL == 0 {
		config.Redis.TTL = defaultRedisTTL
	}
	if len(config.AllowedOrigins) == 0 {
		config.AllowedOrigins = append([]string(nil), DefaultAllowedOrigins...)
	}
}

func loadConfigFromFile(path string) (Config, error) {
	contents, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("reading config: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal(contents, &config); err != nil {
		return Config{}, fmt.Errorf("unmarshaling config: %w", err)
	}

	setFileDefaults(&config)

	if err := newValidator().Struct(config); err != nil {
		return Config{}, formatValidationError(err)
	}

	if err := loadAppSecret(&config); err != nil {
		return Config{}, fmt.Errorf("loading app secret: %w", err)
	}

	return config, nil
}

func configFileExists(path string) bool {
	f, err := os.Lstat(path)
	if err != nil {
		return false
	}

	return !f.IsDir()
}

func LoadConfig() (Config, error) {
	if configFileExists(configFilePath) {
		return loadConfigFromFile(configFilePath)
	}

	return loadConfigFromEnv()
}
