// Command profile-update runs one profile update with the chosen approach
// against an in-memory store seeded from the configuration.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/on-the-ground/effect_ive_profile/config"
	"github.com/on-the-ground/effect_ive_profile/profile"
	"go.uber.org/zap"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

type flags struct {
	configPath string
	approach   string
	user       string
	name       string
	email      string
}

func parseFlags(args []string, output io.Writer) (flags, error) {
	var f flags
	fs := flag.NewFlagSet("profile-update", flag.ContinueOnError)
	fs.SetOutput(output)
	fs.StringVar(&f.configPath, "config", "", "path to a YAML config file")
	fs.StringVar(&f.approach, "approach", string(Interpretation), "one of "+approachList())
	fs.StringVar(&f.user, "user", "1234", "user id of the profile to update")
	fs.StringVar(&f.name, "name", "", "new display name (defaults to the seeded one)")
	fs.StringVar(&f.email, "email", "", "new email address (defaults to the seeded one)")
	if err := fs.Parse(args); err != nil {
		return flags{}, err
	}
	if f.user == "" {
		return flags{}, errors.New("-user must not be empty")
	}
	return f, nil
}

func run(ctx context.Context, args []string, output io.Writer) error {
	f, err := parseFlags(args, output)
	if err != nil {
		return err
	}

	cfg := config.Default()
	if f.configPath != "" {
		if cfg, err = config.Load(f.configPath); err != nil {
			return err
		}
	}

	logger, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()
	defer zap.ReplaceGlobals(logger)()

	newProfile := proposedProfile(cfg, f)
	report, err := Approach(f.approach).Run(ctx, cfg, logger, newProfile)
	if err != nil {
		logger.Error("profile update failed",
			zap.String("approach", f.approach),
			zap.String("userId", newProfile.UserID),
			zap.Error(err),
		)
		return err
	}

	logger.Info("profile update finished",
		zap.String("approach", f.approach),
		zap.String("userId", newProfile.UserID),
		zap.String("decision", fmt.Sprintf("%T", report.Decision)),
		zap.Bool("persisted", report.Persisted),
		zap.Bool("notified", report.Notified),
		zap.Errors("failures", report.Errors()),
	)
	return nil
}

func newLogger(cfg config.Config) (*zap.Logger, error) {
	zc := zap.NewProductionConfig()
	if cfg.Log.Development {
		zc = zap.NewDevelopmentConfig()
	}
	zc.Level = zap.NewAtomicLevelAt(cfg.ZapLevel())
	logger, err := zc.Build()
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}
	return logger, nil
}

// proposedProfile fills the fields not given on the command line from the
// seeded profile with the same id.
func proposedProfile(cfg config.Config, f flags) profile.Profile {
	p := profile.Profile{UserID: f.user, Name: f.name, EmailAddress: f.email}
	for _, seeded := range cfg.SeedProfiles() {
		if seeded.UserID != f.user {
			continue
		}
		if p.Name == "" {
			p.Name = seeded.Name
		}
		if p.EmailAddress == "" {
			p.EmailAddress = seeded.EmailAddress
		}
	}
	return p
}
