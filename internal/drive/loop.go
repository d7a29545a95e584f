package drive

import (
	"context"
	"fmt"
)

// Loop polls a Reader, computes a Command, and applies it to an Actuator at a
// fixed cadence. One pure computation per cycle; all recorded values are
// recomputed each cycle.
type Loop struct {
	reader     Reader
	actuator   Actuator
	controller Controller
	metrics    []Metric
	observers  []Observer
}

func New(reader Reader, actuator Actuator, controller Controller) *Loop {
	return &Loop{
		reader:     reader,
		actuator:   actuator,
		controller: controller,
		metrics:    make([]Metric, 0),
		observers:  make([]Observer, 0),
	}
}

func (l *Loop) AddMetric(m Metric)     { l.metrics = append(l.metrics, m) }
func (l *Loop) AddObserver(o Observer) { l.observers = append(l.observers, o) }

func (l *Loop) Run(ctx context.Context, cfg Config) (*Result, error) {
	if err := l.validateConfig(cfg); err != nil {
		return nil, err
	}

	cycles := int(cfg.Duration / cfg.Dt)
	result := &Result{
		Readings: make([]SensorPair, 0, cycles),
		Commands: make([]Command, 0, cycles),
		Times:    make([]float64, 0, cycles),
		Metrics:  make(map[string]float64),
	}

	for _, m := range l.metrics {
		m.Reset()
	}

	t := 0.0

	for i := 0; i < cycles; i++ {
		select {
		case <-ctx.Done():
			l.actuator.Drive(Stop)
			return result, ctx.Err()
		default:
		}

		s := l.reader.Read()
		c := l.controller.Compute(s, t)

		for _, m := range l.metrics {
			m.Observe(s, c, t)
		}
		for _, obs := range l.observers {
			obs.OnCycle(s, c, t)
		}

		l.actuator.Drive(c)

		result.Readings = append(result.Readings, s)
		result.Commands = append(result.Commands, c)
		result.Times = append(result.Times, t)
		result.Cycles++

		t += cfg.Dt
	}

	l.actuator.Drive(Stop)

	for _, m := range l.metrics {
		result.Metrics[m.Name()] = m.Value()
	}

	return result, nil
}

func (l *Loop) validateConfig(cfg Config) error {
	if cfg.Dt <= 0 {
		return fmt.Errorf("dt must be positive, got %f", cfg.Dt)
	}
	if cfg.Duration <= 0 {
		return fmt.Errorf("duration must be positive, got %f", cfg.Duration)
	}
	return nil
}
