// Command wizard is the terminal client of the invoice wizard. It talks to the
// same billing API as the web front end and keeps its session in a local
// sqlite file.
package main

import (
	"database/sql"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"

	"github.com/RajevHacker/codespark-invoice-wizard/internal/backend"
	"github.com/RajevHacker/codespark-invoice-wizard/internal/config"
	"github.com/RajevHacker/codespark-invoice-wizard/internal/db"
	"github.com/RajevHacker/codespark-invoice-wizard/internal/services"
	"github.com/RajevHacker/codespark-invoice-wizard/internal/session"
)

// sessionID is the single slot the terminal client persists its session under.
const sessionID = "default"

// env is what every command needs once the app has started.
type env struct {
	cfg      *config.Config
	api      *backend.Client
	sessions *session.Provider
	sqlDB    *sql.DB
}

func main() {
	_ = godotenv.Load()
	if err := newApp().Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "wizard",
		Usage: "GST invoicing from the terminal",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "home", Usage: "directory holding the session file", EnvVars: []string{"WIZARD_HOME"}},
			&cli.StringFlag{Name: "backend", Usage: "billing API base URL", EnvVars: []string{"BACKEND_HOST"}},
		},
		Before: start,
		After:  stop,
		Commands: []*cli.Command{
			loginCommand(),
			logoutCommand(),
			whoamiCommand(),
			totalsCommand(),
			lookupCommand(),
			reportCommand(),
			payCommand(),
		},
	}
}

// start loads the config, opens the session store and restores the last session.
func start(c *cli.Context) error {
	cfg := config.Load()
	if v := c.String("home"); v != "" {
		cfg.App.Home = v
	}
	if v := c.String("backend"); v != "" {
		cfg.Backend.BaseURL = v
	}
	gdb, err := db.Connect(config.DatabaseConfig{
		DSN:   "sqlite:" + filepath.Join(cfg.App.Home, "session.db"),
		Debug: cfg.Database.Debug,
	}, db.Options{})
	if err != nil {
		return fmt.Errorf("open session store: %w", err)
	}
	sqlDB, err := gdb.DB()
	if err != nil {
		return err
	}
	p := session.NewProvider(session.NewGormStore(gdb), sessionID)
	if err := p.Init(c.Context); err != nil {
		_ = sqlDB.Close()
		return fmt.Errorf("restore session: %w", err)
	}
	if c.App.Metadata == nil {
		c.App.Metadata = map[string]interface{}{}
	}
	c.App.Metadata["env"] = &env{
		cfg:      cfg,
		api:      backend.New(cfg.Backend.BaseURL, cfg.Backend.Timeout),
		sessions: p,
		sqlDB:    sqlDB,
	}
	return nil
}

func stop(c *cli.Context) error {
	if e, ok := c.App.Metadata["env"].(*env); ok && e.sqlDB != nil {
		return e.sqlDB.Close()
	}
	return nil
}

func envOf(c *cli.Context) *env {
	return c.App.Metadata["env"].(*env)
}

// authed runs fn with the persisted session. An expired token ends the session
// the same way logout does.
func authed(fn func(c *cli.Context, e *env, s session.Session) error) cli.ActionFunc {
	return func(c *cli.Context) error {
		e := envOf(c)
		s := e.sessions.Current()
		if !s.Authenticated() {
			return cli.Exit(backend.ErrNoSession.Error(), 1)
		}
		err := fn(c, e, s)
		if errors.Is(err, backend.ErrUnauthorized) {
			if tErr := e.sessions.Teardown(c.Context); tErr != nil {
				log.Printf("teardown session: %v", tErr)
			}
			return cli.Exit("session expired, please login again", 1)
		}
		return explain(err)
	}
}

// explain turns validation failures into one "field: code" line each.
func explain(err error) error {
	if err == nil {
		return nil
	}
	if v, ok := services.AsViolations(err); ok {
		lines := make([]string, 0, len(v))
		for _, f := range v.Fields() {
			lines = append(lines, f+": "+v[f])
		}
		return cli.Exit(strings.Join(lines, "\n"), 2)
	}
	return cli.Exit(err.Error(), 1)
}
