package cmd

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"

	"github.com/thumlify/thumlify-cli/internal/adapters/api"
	"github.com/thumlify/thumlify-cli/internal/adapters/cookiejar"
	"github.com/thumlify/thumlify-cli/internal/adapters/files"
	"github.com/thumlify/thumlify-cli/internal/adapters/term"
	"github.com/thumlify/thumlify-cli/internal/application"
	"github.com/thumlify/thumlify-cli/internal/domain"
	"github.com/thumlify/thumlify-cli/internal/ports"
)

const subscriberRefreshTimeout = 15 * time.Second

type app struct {
	cfg *viper.Viper
	log zerolog.Logger

	jar        *cookiejar.Jar
	httpClient *http.Client
	clock      ports.Clock

	auth       *api.AuthClient
	creditsAPI *api.CreditsClient
	thumbs     *api.ThumbnailClient
	community  *api.CommunityClient
	account    *api.AccountClient
	fetcher    *api.AssetDownloader

	pricingURL string
}

func wireApp() (*app, error) {
	cfg := viper.New()
	cfg.SetEnvPrefix("THUMLIFY")
	cfg.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	cfg.AutomaticEnv()
	cfg.SetDefault("api.url", "http://localhost:3000")
	cfg.SetDefault("pricing.url", "https://thumlify.app/pricing")
	cfg.SetDefault("log.level", "warn")

	if homeDir, err := os.UserHomeDir(); err == nil {
		cfg.SetConfigFile(filepath.Join(homeDir, ".thumlify", "config.toml"))
		if err := cfg.ReadInConfig(); err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	logger := newLogger()
	zerolog.SetGlobalLevel(parseLevel(cfg.GetString("log.level")))

	jar, err := cookiejar.New(cfg, ports.SystemClock{})
	if err != nil {
		return nil, fmt.Errorf("wire session jar: %w", err)
	}

	httpClient := &http.Client{Jar: jar}
	base := &api.Client{
		BaseURL:    cfg.GetString("api.url"),
		HTTPClient: httpClient,
		Logger:     logger,
	}

	return &app{
		cfg:        cfg,
		log:        logger,
		jar:        jar,
		httpClient: httpClient,
		clock:      ports.SystemClock{},
		auth:       &api.AuthClient{Client: base},
		creditsAPI: &api.CreditsClient{Client: base},
		thumbs:     &api.ThumbnailClient{Client: base},
		community:  &api.CommunityClient{Client: base},
		account:    &api.AccountClient{Client: base},
		fetcher:    &api.AssetDownloader{HTTPClient: httpClient},
		pricingURL: cfg.GetString("pricing.url"),
	}, nil
}

// newLogger builds the process logger; verbosity is governed by the global
// zerolog level so the -v flag can raise it after wiring.
func newLogger() zerolog.Logger {
	writer := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}
	return zerolog.New(writer).With().Timestamp().Logger()
}

func parseLevel(level string) zerolog.Level {
	parsed, err := zerolog.ParseLevel(level)
	if err != nil {
		return zerolog.WarnLevel
	}
	return parsed
}

// engine is the per-invocation core: the session, cache, and flows bound to
// the invoking command's output.
type engine struct {
	notifier *term.Notifier
	nav      *term.Navigator
	session  *application.SessionStore
	credits  *application.CreditCache
	flow     *application.RegistrationFlow
	loader   *application.DetailLoader
}

func (a *app) newEngine(out io.Writer) *engine {
	notifier := term.NewNotifier(out)
	nav := term.NewNavigator(out, a.pricingURL)

	session := application.NewSessionStore(a.auth, a.log)
	credits := application.NewCreditCache(a.creditsAPI, a.log)
	session.Subscribe(func(user *domain.UserIdentity) {
		if user == nil {
			credits.Clear()
			return
		}
		ctx, cancel := context.WithTimeout(context.Background(), subscriberRefreshTimeout)
		defer cancel()
		if err := credits.Refresh(ctx); err != nil {
			a.log.Debug().Err(err).Msg("credit refresh on session change")
		}
	})

	return &engine{
		notifier: notifier,
		nav:      nav,
		session:  session,
		credits:  credits,
		flow:     application.NewRegistrationFlow(a.auth, session, notifier, a.clock, a.log),
		loader:   application.NewDetailLoader(a.community, a.thumbs, a.log),
	}
}

func (a *app) newExecutor(eng *engine, exportDir string) *application.Executor {
	return application.NewExecutor(
		eng.credits,
		a.creditsAPI,
		a.thumbs,
		a.fetcher,
		&files.Sink{Dir: exportDir},
		eng.notifier,
		eng.nav,
		a.log,
	)
}
