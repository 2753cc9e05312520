package telemetry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/metric/noop"
)

func TestNewCombatMetrics_GlobalProvider(t *testing.T) {
	m, err := NewCombatMetrics()
	require.NoError(t, err)
	require.NotNil(t, m)

	assert.NotPanics(t, func() {
		m.ShotFired("rifle")
		m.Hit("Enemy", true)
		m.Reloaded("rifle", 20)
		m.AmmoPickedUp("pistol", 7)
		m.StanceRejected("crouch", "stand")
	})
}

func TestNewCombatMetricsWithMeter(t *testing.T) {
	m, err := NewCombatMetricsWithMeter(noop.NewMeterProvider().Meter("test"))
	require.NoError(t, err)
	assert.NotNil(t, m.shots)
	assert.NotNil(t, m.stanceRejected)
}

func TestCombatMetrics_NilIsSafe(t *testing.T) {
	var m *CombatMetrics

	assert.NotPanics(t, func() {
		m.ShotFired("rifle")
		m.Hit("Crate", false)
		m.Reloaded("shotgun", 2)
		m.AmmoPickedUp("rifle", 30)
		m.StanceRejected("prone", "crouch")
	})
}
