// env.go wires the shared dependencies every command needs.
package cli

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/sohamshirke10/recruiter-bandhu/internal/api"
	"github.com/sohamshirke10/recruiter-bandhu/internal/chat"
	"github.com/sohamshirke10/recruiter-bandhu/internal/config"
	"github.com/sohamshirke10/recruiter-bandhu/internal/log"
	"github.com/sohamshirke10/recruiter-bandhu/internal/transcript"
)

// env holds the wired dependencies for a single command invocation.
type env struct {
	Base        string
	Cfg         *config.Config
	Client      *api.Client
	Logger      *log.Logger
	Transcripts *transcript.Store
	Store       *chat.Store
}

// newEnv loads configuration and constructs the API client, event
// logger, transcript store, and session store. When requireLogin is
// set, it fails early if no user is saved in the config.
func newEnv(requireLogin bool) (*env, error) {
	base := config.HomeBase()

	cfg, err := config.ReadConfig(base)
	if err != nil {
		cfg = config.DefaultConfig()
	}
	if backendFlag != "" {
		cfg.Backend.URL = backendFlag
	}

	if requireLogin && cfg.User.ID == "" {
		return nil, fmt.Errorf("not logged in; run: bandhu login <user-id>")
	}

	timeout := time.Duration(cfg.Backend.TimeoutSeconds) * time.Second
	client := api.New(cfg.BackendURL(), cfg.User.ID, timeout)

	logger, err := log.NewLogger(config.Dir(base))
	if err != nil {
		return nil, fmt.Errorf("setting up event log: %w", err)
	}

	transcripts, err := transcript.NewStore(filepath.Join(config.Dir(base), "transcripts.db"))
	if err != nil {
		return nil, fmt.Errorf("opening transcript store: %w", err)
	}

	store := chat.NewStore(client, transcripts, logger)

	return &env{
		Base:        base,
		Cfg:         cfg,
		Client:      client,
		Logger:      logger,
		Transcripts: transcripts,
		Store:       store,
	}, nil
}

// Close releases resources held by the environment.
func (e *env) Close() {
	if e.Transcripts != nil {
		e.Transcripts.Close()
	}
}

// saveConfig persists the environment's config back to disk.
func (e *env) saveConfig() error {
	return config.WriteConfig(e.Base, e.Cfg)
}
