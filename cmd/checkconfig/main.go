// Command checkconfig reports whether the environment can start the API.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/Night40050/support-copilot/internal/config"
	"github.com/Night40050/support-copilot/internal/persistence"
	"github.com/Night40050/support-copilot/internal/repository"
)

func main() {
	ping := flag.Bool("ping", false, "Also ping the selected record store")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	problems := report(os.Stdout, cfg)
	if *ping && len(problems) == 0 {
		if err := pingStore(cfg); err != nil {
			problems = append(problems, fmt.Sprintf("store %s unreachable: %v", cfg.Store.Driver, err))
		} else {
			fmt.Fprintf(os.Stdout, "store %s reachable\n", cfg.Store.Driver)
		}
	}

	if len(problems) > 0 {
		fmt.Fprintln(os.Stdout, "\nproblems:")
		for _, p := range problems {
			fmt.Fprintf(os.Stdout, "  - %s\n", p)
		}
		os.Exit(1)
	}
	fmt.Fprintln(os.Stdout, "\nconfiguration ok")
}

// report prints the effective settings with secrets masked and returns Validate's problems.
func report(w io.Writer, cfg *config.Config) []string {
	fmt.Fprintln(w, "app")
	fmt.Fprintf(w, "  APP_ENV: %s\n", cfg.App.Env)
	fmt.Fprintf(w, "  LOG_LEVEL: %s\n", cfg.Logger.Level)
	fmt.Fprintf(w, "  listen: %s\n", cfg.App.Addr())

	fmt.Fprintln(w, "store")
	fmt.Fprintf(w, "  STORE_DRIVER: %s\n", cfg.Store.Driver)
	switch cfg.Store.Driver {
	case config.StoreDriverPostgres:
		fmt.Fprintf(w, "  POSTGRES_DSN: %s\n", mask(cfg.Postgres.DSN))
	case config.StoreDriverSupabase:
		fmt.Fprintf(w, "  SUPABASE_URL: %s\n", orUnset(cfg.Supabase.URL))
		fmt.Fprintf(w, "  SUPABASE_SERVICE_ROLE_KEY: %s\n", mask(cfg.Supabase.ServiceRoleKey))
	case config.StoreDriverRedis:
		fmt.Fprintf(w, "  REDIS_ADDR: %s\n", orUnset(cfg.Redis.Addr))
	}

	fmt.Fprintln(w, "llm")
	fmt.Fprintf(w, "  MOCK_LLM: %t\n", cfg.LLM.Mock)
	if !cfg.LLM.Mock {
		fmt.Fprintf(w, "  LLM_PROVIDER: %s\n", cfg.LLM.Provider)
		fmt.Fprintf(w, "  LLM_MODEL: %s\n", orUnset(cfg.LLM.Model))
		switch cfg.LLM.Provider {
		case config.LLMProviderOpenAI:
			fmt.Fprintf(w, "  OPENAI_API_KEY: %s\n", mask(cfg.LLM.OpenAIAPIKey))
		case config.LLMProviderAnthropic:
			fmt.Fprintf(w, "  ANTHROPIC_API_KEY: %s\n", mask(cfg.LLM.AnthropicAPIKey))
		}
	}

	fmt.Fprintln(w, "auth")
	fmt.Fprintf(w, "  AUTH_JWT_SECRET: %s\n", mask(cfg.Auth.JWTSecret))

	return cfg.Validate()
}

func pingStore(cfg *config.Config) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	logger := zap.NewNop()
	switch cfg.Store.Driver {
	case config.StoreDriverPostgres:
		pool, err := persistence.OpenPostgres(ctx, cfg.Postgres, logger)
		if err != nil {
			return err
		}
		defer pool.Close()
		return repository.NewTicketRepository(pool).Ping(ctx)
	case config.StoreDriverRedis:
		client, err := persistence.OpenRedis(ctx, cfg.Redis, logger)
		if err != nil {
			return err
		}
		defer client.Close()
		return repository.NewRedisTicketRepository(client).Ping(ctx)
	case config.StoreDriverSupabase:
		return repository.NewSupabaseTicketRepository(cfg.Supabase, nil).Ping(ctx)
	default:
		return nil
	}
}

func mask(secret string) string {
	if secret == "" {
		return "(unset)"
	}
	return "******** (set)"
}

func orUnset(v string) string {
	if v == "" {
		return "(unset)"
	}
	return v
}
