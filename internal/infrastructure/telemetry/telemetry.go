// Package telemetry records combat counters through OpenTelemetry.
// Without a configured provider every instrument is a no-op.
package telemetry

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const instrumentationName = "github.com/younwookim/fpscore/internal/infrastructure/telemetry"

func meter() metric.Meter {
	return otel.Meter(instrumentationName)
}

// CombatMetrics counts shots, hits and other gameplay events.
// A nil *CombatMetrics is valid and records nothing.
type CombatMetrics struct {
	shots          metric.Int64Counter
	hits           metric.Int64Counter
	kills          metric.Int64Counter
	reloads        metric.Int64Counter
	pickups        metric.Int64Counter
	stanceRejected metric.Int64Counter
}

// NewCombatMetrics creates the counters on the global meter provider
func NewCombatMetrics() (*CombatMetrics, error) {
	return NewCombatMetricsWithMeter(meter())
}

// NewCombatMetricsWithMeter creates the counters on m
func NewCombatMetricsWithMeter(m metric.Meter) (*CombatMetrics, error) {
	cm := &CombatMetrics{}

	var err error
	cm.shots, err = m.Int64Counter(
		"fpscore.shots.fired",
		metric.WithDescription("Rounds fired, per weapon category"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating shots counter: %w", err)
	}

	cm.hits, err = m.Int64Counter(
		"fpscore.hits",
		metric.WithDescription("Hitscan hits, per collider tag"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating hits counter: %w", err)
	}

	cm.kills, err = m.Int64Counter(
		"fpscore.kills",
		metric.WithDescription("Targets destroyed, per collider tag"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating kills counter: %w", err)
	}

	cm.reloads, err = m.Int64Counter(
		"fpscore.reloads",
		metric.WithDescription("Completed reloads, per weapon category"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating reloads counter: %w", err)
	}

	cm.pickups, err = m.Int64Counter(
		"fpscore.ammo.picked_up",
		metric.WithDescription("Rounds added to reserves by pickups"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating pickups counter: %w", err)
	}

	cm.stanceRejected, err = m.Int64Counter(
		"fpscore.stance.rejected",
		metric.WithDescription("Stance changes blocked by an obstruction"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating stance counter: %w", err)
	}

	return cm, nil
}

// ShotFired counts one round
func (m *CombatMetrics) ShotFired(category string) {
	if m == nil {
		return
	}
	m.shots.Add(context.Background(), 1, metric.WithAttributes(attribute.String("category", category)))
}

// Hit counts a hitscan hit and, if destroyed, a kill
func (m *CombatMetrics) Hit(tag string, destroyed bool) {
	if m == nil {
		return
	}
	tagAttr := attribute.String("tag", tag)
	m.hits.Add(context.Background(), 1, metric.WithAttributes(tagAttr))
	if destroyed {
		m.kills.Add(context.Background(), 1, metric.WithAttributes(tagAttr))
	}
}

// Reloaded counts a completed reload
func (m *CombatMetrics) Reloaded(category string, rounds int) {
	if m == nil {
		return
	}
	m.reloads.Add(context.Background(), 1, metric.WithAttributes(
		attribute.String("category", category),
		attribute.Int("rounds", rounds),
	))
}

// AmmoPickedUp adds the rounds granted by a pickup
func (m *CombatMetrics) AmmoPickedUp(category string, amount int) {
	if m == nil {
		return
	}
	m.pickups.Add(context.Background(), int64(amount), metric.WithAttributes(attribute.String("category", category)))
}

// StanceRejected counts a blocked stance change
func (m *CombatMetrics) StanceRejected(from, to string) {
	if m == nil {
		return
	}
	m.stanceRejected.Add(context.Background(), 1, metric.WithAttributes(
		attribute.String("from", from),
		attribute.String("to", to),
	))
}
