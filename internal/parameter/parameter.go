// Package parameter holds the static configuration of every monitored
// parameter: display name, unit and tolerance bands.
package parameter

import (
	"fmt"

	"codeberg.org/mutker/procmon/internal/errors"
	"codeberg.org/mutker/procmon/internal/tolerance"
)

// ID identifies a parameter. Series parameters use the key that appears
// in synthesized samples.
type ID string

const (
	Temperature ID = "temperature"
	Pressure    ID = "pressure"
	FlowRate    ID = "flowRate"
	PH          ID = "pH"
	Biomass     ID = "biomass"
	PrevPH      ID = "prevPH"
	PrevBiomass ID = "prevBiomass"
	Lactate     ID = "lactate"
	Glucose     ID = "glucose"
	Sodium      ID = "sodium"
	CFHMW       ID = "cfHMW"

	BiomassTarget ID = "biomassTarget"
	VVD           ID = "vvd"
	TShift        ID = "tShift"
)

// Kind groups parameters by the dashboard section that shows them.
type Kind string

const (
	KindProcess Kind = "process"
	KindQuality Kind = "quality"
	KindGauge   Kind = "gauge"
)

// Config is the static configuration of one parameter.
type Config struct {
	ID   ID     `json:"id"`
	Name string `json:"name"`
	Unit string `json:"unit"`
	Kind Kind   `json:"kind"`
	// ShadowOf names the parameter a previous-batch series mirrors.
	ShadowOf ID             `json:"shadow_of,omitempty"`
	Band     tolerance.Band `json:"band"`
	// MaxScale is the full-scale value of a gauge arc. Zero means Band.Target.
	MaxScale float64 `json:"max_scale,omitempty"`
}

// Scale returns the gauge full-scale value.
func (c Config) Scale() float64 {
	if c.MaxScale != 0 {
		return c.MaxScale
	}
	return c.Band.Target
}

// Evaluate classifies current against the parameter's band.
func (c Config) Evaluate(current float64) (tolerance.Result, error) {
	res, err := tolerance.Evaluate(c.Band, current)
	if err != nil {
		return tolerance.Result{}, errors.New().Wrap(errors.CodeOf(err), err).
			WithMessage(fmt.Sprintf("evaluate %s", c.ID))
	}
	return res, nil
}

// Override replaces selected fields of a catalog entry. Nil fields keep
// the default.
type Override struct {
	Name          string   `mapstructure:"name"`
	Unit          string   `mapstructure:"unit"`
	Target        *float64 `mapstructure:"target"`
	Lower         *float64 `mapstructure:"lower"`
	Upper         *float64 `mapstructure:"upper"`
	CriticalLower *float64 `mapstructure:"critical_lower"`
	CriticalUpper *float64 `mapstructure:"critical_upper"`
	MaxScale      *float64 `mapstructure:"max_scale"`
}

func (o Override) apply(c Config) Config {
	if o.Name != "" {
		c.Name = o.Name
	}
	if o.Unit != "" {
		c.Unit = o.Unit
	}

	set := func(dst *float64, src *float64) {
		if src != nil {
			*dst = *src
		}
	}
	set(&c.Band.Target, o.Target)
	set(&c.Band.Lower, o.Lower)
	set(&c.Band.Upper, o.Upper)
	set(&c.Band.CriticalLower, o.CriticalLower)
	set(&c.Band.CriticalUpper, o.CriticalUpper)
	set(&c.MaxScale, o.MaxScale)

	return c
}
