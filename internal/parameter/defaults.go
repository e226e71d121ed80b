package parameter

import (
	"strings"

	"codeberg.org/mutker/procmon/internal/tolerance"
)

var (
	phBand      = tolerance.Band{Target: 7.0, Lower: 6.5, Upper: 7.5, CriticalLower: 6.0, CriticalUpper: 8.0}
	biomassBand = tolerance.Band{Target: 12.0, Lower: 11.5, Upper: 12.5, CriticalLower: 10.5, CriticalUpper: 13.5}
)

var defaultConfigs = []Config{
	{
		ID: Temperature, Name: "Reactor Temperature", Unit: "°C", Kind: KindProcess,
		Band: tolerance.Band{Target: 37.0, Lower: 36.5, Upper: 37.5, CriticalLower: 35.5, CriticalUpper: 38.5},
	},
	{
		ID: Pressure, Name: "Pressure", Unit: "bar", Kind: KindProcess,
		Band: tolerance.Band{Target: 2.0, Lower: 1.9, Upper: 2.1, CriticalLower: 1.5, CriticalUpper: 2.5},
	},
	{
		ID: FlowRate, Name: "Flow Rate", Unit: "L/min", Kind: KindProcess,
		Band: tolerance.Band{Target: 45.0, Lower: 44.0, Upper: 46.0, CriticalLower: 40.0, CriticalUpper: 50.0},
	},
	{ID: PH, Name: "pH Level", Unit: "", Kind: KindQuality, Band: phBand},
	{ID: Biomass, Name: "Biomass", Unit: "g/L", Kind: KindQuality, Band: biomassBand},
	{ID: PrevPH, Name: "pH Level (Prev Batch)", Unit: "", Kind: KindQuality, ShadowOf: PH, Band: phBand},
	{ID: PrevBiomass, Name: "Biomass (Prev Batch)", Unit: "g/L", Kind: KindQuality, ShadowOf: Biomass, Band: biomassBand},
	{
		ID: Lactate, Name: "Lactate", Unit: "g/L", Kind: KindProcess,
		Band: tolerance.Band{Target: 1.0, Lower: 0.8, Upper: 1.2, CriticalLower: 0.5, CriticalUpper: 1.5},
	},
	{
		ID: Glucose, Name: "Glucose", Unit: "g/L", Kind: KindProcess,
		Band: tolerance.Band{Target: 9.0, Lower: 8.0, Upper: 10.0, CriticalLower: 6.0, CriticalUpper: 12.0},
	},
	{
		ID: Sodium, Name: "Sodium", Unit: "mmol/L", Kind: KindProcess,
		Band: tolerance.Band{Target: 95.0, Lower: 94.0, Upper: 98.0, CriticalLower: 90.0, CriticalUpper: 100.0},
	},
	{
		ID: CFHMW, Name: "cf_hmw", Unit: "", Kind: KindQuality,
		Band: tolerance.Band{Target: 4.0, Lower: 3.0, Upper: 5.0, CriticalLower: 2.0, CriticalUpper: 6.0},
	},
	{
		ID: BiomassTarget, Name: "Biomass Target", Unit: "%", Kind: KindGauge,
		Band: tolerance.Band{Target: 13.0, Lower: 12.5, Upper: 13.5, CriticalLower: 11.0, CriticalUpper: 14.0},
	},
	{
		ID: VVD, Name: "VVD Target", Unit: "", Kind: KindGauge,
		Band: tolerance.Band{Target: 1.65, Lower: 1.6, Upper: 1.7, CriticalLower: 1.4, CriticalUpper: 1.9},
	},
	{
		ID: TShift, Name: "T Shift Condition", Unit: "", Kind: KindGauge,
		Band: tolerance.Band{Target: 34.8, Lower: 34.5, Upper: 35.0, CriticalLower: 34.0, CriticalUpper: 35.1},
	},
}

func normalizeKey(key string) string {
	return strings.ToLower(key)
}
