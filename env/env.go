package env

import (
	"errors"
	"fmt"
	"github.com/joho/godotenv"
	"github.com/jt05610/modelrepair"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"io/fs"
	"os"
	"strconv"
	"time"
)

const DefaultLolaPath = "lola"

type Environment struct {
	LolaPath       string
	MaxStates      int
	ExploreTimeout time.Duration
	LogLevel       zapcore.Level
	// Tracing is the span exporter, stdout or otlp. Empty disables tracing.
	Tracing      string
	OTLPEndpoint string
	// Pushgateway receives the metrics of a run when set.
	Pushgateway string
	// Couch is nil unless every COUCHDB_* variable is set.
	Couch *Couch
}

type Couch struct {
	User    string
	Pass    string
	Address string
	Port    string
}

func (c *Couch) URI() string {
	return "http://" + c.User + ":" + c.Pass + "@" + c.Address + ":" + c.Port
}

// Load reads the given .env files, or ./.env when none are given, and then
// the process environment. Missing files are skipped.
func Load(logger *zap.Logger, files ...string) (*Environment, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		err := godotenv.Load(f)
		if errors.Is(err, fs.ErrNotExist) {
			logger.Debug("env file not found", zap.String("file", f))
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("%w: loading %s: %w", petri.ErrIO, f, err)
		}
		logger.Debug("env file loaded", zap.String("file", f))
	}
	e := &Environment{
		LolaPath: DefaultLolaPath,
		LogLevel: zapcore.InfoLevel,
	}
	if v, ok := os.LookupEnv("PETRI_LOLA_PATH"); ok && v != "" {
		e.LolaPath = v
	}
	if v, ok := os.LookupEnv("PETRI_MAX_STATES"); ok && v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return nil, fmt.Errorf("%w: PETRI_MAX_STATES must be a non-negative integer, got %q", petri.ErrDomain, v)
		}
		e.MaxStates = n
	}
	if v, ok := os.LookupEnv("PETRI_EXPLORE_TIMEOUT"); ok && v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d < 0 {
			return nil, fmt.Errorf("%w: PETRI_EXPLORE_TIMEOUT must be a non-negative duration, got %q", petri.ErrDomain, v)
		}
		e.ExploreTimeout = d
	}
	if v, ok := os.LookupEnv("LOG_LEVEL"); ok && v != "" {
		lvl, err := zapcore.ParseLevel(v)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", petri.ErrDomain, err)
		}
		e.LogLevel = lvl
	}
	if v, ok := os.LookupEnv("PETRI_TRACING"); ok {
		switch v {
		case "", "stdout", "otlp":
			e.Tracing = v
		default:
			return nil, fmt.Errorf("%w: PETRI_TRACING must be stdout or otlp, got %q", petri.ErrDomain, v)
		}
	}
	e.OTLPEndpoint = os.Getenv("PETRI_OTLP_ENDPOINT")
	e.Pushgateway = os.Getenv("PETRI_PUSHGATEWAY_URL")
	e.Couch = lookupCouch()
	logger.Debug("environment loaded",
		zap.String("lola", e.LolaPath),
		zap.Int("maxStates", e.MaxStates),
		zap.Duration("timeout", e.ExploreTimeout),
		zap.Stringer("level", e.LogLevel),
		zap.String("tracing", e.Tracing),
		zap.Bool("couch", e.Couch != nil),
	)
	return e, nil
}

func lookupCouch() *Couch {
	var c Couch
	keys := []struct {
		key  string
		into *string
	}{
		{"COUCHDB_USER", &c.User},
		{"COUCHDB_PASSWORD", &c.Pass},
		{"COUCHDB_HOST", &c.Address},
		{"COUCHDB_PORT", &c.Port},
	}
	for _, k := range keys {
		value, ok := os.LookupEnv(k.key)
		if !ok {
			return nil
		}
		*k.into = value
	}
	return &c
}

// Logger builds a production logger at the configured level, or a
// development logger when dev is set.
func (e *Environment) Logger(dev bool) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	if dev {
		cfg = zap.NewDevelopmentConfig()
	}
	cfg.Level = zap.NewAtomicLevelAt(e.LogLevel)
	return cfg.Build()
}
