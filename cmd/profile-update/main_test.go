package main

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/on-the-ground/effect_ive_profile/config"
	"github.com/on-the-ground/effect_ive_profile/profile"
	"github.com/on-the-ground/effect_ive_profile/pure"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestApproach_AllAgreeOnEmailChange(t *testing.T) {
	cfg := config.Default()
	newProfile := profile.Profile{UserID: "1234", Name: "MarcoPolo", EmailAddress: "new@mp.com"}
	want := pure.Decide(newProfile, cfg.SeedProfiles()[0])

	for _, a := range approaches {
		t.Run(string(a), func(t *testing.T) {
			report, err := a.Run(context.Background(), cfg, zap.NewNop(), newProfile)
			require.NoError(t, err)
			assert.Equal(t, want, report.Decision)
			assert.True(t, report.Persisted)
			assert.True(t, report.Notified)
		})
	}
}

func TestApproach_UnknownUserFails(t *testing.T) {
	cfg := config.Default()
	stranger := profile.Profile{UserID: "9999", Name: "Nobody"}

	for _, a := range approaches {
		if a == Retention {
			continue // the canned store knows everyone
		}
		t.Run(string(a), func(t *testing.T) {
			_, err := a.Run(context.Background(), cfg, zap.NewNop(), stranger)
			var dbErr *profile.DbError
			assert.True(t, errors.As(err, &dbErr))
		})
	}
}

func TestApproach_Unknown(t *testing.T) {
	_, err := Approach("monad-transformer").Run(context.Background(), config.Default(), zap.NewNop(), profile.Profile{})
	assert.ErrorContains(t, err, "unknown approach")
}

func TestApproach_EffectsLogsProgress(t *testing.T) {
	cfg := config.Default()
	cfg.Workflow.ProgressLogging = true
	core, logs := observer.New(zap.DebugLevel)

	_, err := Effects.Run(context.Background(), cfg, zap.New(core), profile.Profile{
		UserID: "1234", Name: "Marco", EmailAddress: "marcopolo@mp.com",
	})

	require.NoError(t, err)
	assert.Equal(t, 1, logs.FilterMessage(pure.LogUpdatingProfile).Len())
	assert.Equal(t, 3, logs.FilterMessage("step").Len())
}

func TestProposedProfile_FillsFromSeed(t *testing.T) {
	p := proposedProfile(config.Default(), flags{user: "1234", email: "new@mp.com"})
	assert.Equal(t, profile.Profile{UserID: "1234", Name: "MarcoPolo", EmailAddress: "new@mp.com"}, p)
}

func TestParseFlags(t *testing.T) {
	var out bytes.Buffer

	f, err := parseFlags([]string{"-approach", "reader", "-email", "new@mp.com"}, &out)
	require.NoError(t, err)
	assert.Equal(t, "reader", f.approach)
	assert.Equal(t, "1234", f.user)

	_, err = parseFlags([]string{"-user", ""}, &out)
	assert.Error(t, err)

	_, err = parseFlags([]string{"-bogus"}, &out)
	assert.Error(t, err)
	assert.Contains(t, out.String(), "-approach")
}
