package freight

import (
	"errors"
	"fmt"
	"io"
	"maps"
	"math"
	"os"

	"github.com/samber/lo"
	"gopkg.in/yaml.v3"

	"github.com/zzyhdu/tk-tools/internal/warehouse"
)

// LoadRateTables reads a YAML rate file. Sections missing from the file keep
// their default values.
func LoadRateTables(path string) (RateTables, error) {
	f, err := os.Open(path)
	if err != nil {
		return RateTables{}, fmt.Errorf("open rate tables %q: %w", path, err)
	}
	defer f.Close()

	tables, err := DecodeRateTables(f)
	if err != nil {
		return RateTables{}, fmt.Errorf("load rate tables %q: %w", path, err)
	}
	return tables, nil
}

// DecodeRateTables decodes YAML rate tables on top of the defaults and
// validates the result.
func DecodeRateTables(r io.Reader) (RateTables, error) {
	tables := DefaultRateTables()

	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&tables); err != nil && !errors.Is(err, io.EOF) {
		return RateTables{}, fmt.Errorf("decode rate tables: %w", err)
	}

	if err := tables.Validate(); err != nil {
		return RateTables{}, err
	}
	return tables, nil
}

var airZones = []warehouse.Region{warehouse.RegionWest, warehouse.RegionCentral, warehouse.RegionEast}

// Validate rejects negative or non-finite rates and unknown air zones. An air
// express section, when present, must price every zone. Nil sea cells are
// allowed.
func (t RateTables) Validate() error {
	for channel, rate := range t.FlatRatePerKg {
		if !validRate(rate) {
			return fmt.Errorf("%w: flat rate for %s is %v", ErrInvalidRateTables, channel, rate)
		}
	}

	for zone, row := range t.AirExpress {
		if !zone.Valid() {
			return fmt.Errorf("%w: %q", ErrUnknownRegion, zone)
		}
		for _, rate := range []float64{row.Tier12To20, row.Tier21To100, row.Tier101Plus} {
			if !validRate(rate) {
				return fmt.Errorf("%w: air express %s rate is %v", ErrInvalidRateTables, zone, rate)
			}
		}
	}

	if len(t.AirExpress) > 0 {
		for _, zone := range airZones {
			if _, ok := t.AirExpress[zone]; !ok {
				return fmt.Errorf("%w: air express has no %s row", ErrInvalidRateTables, zone)
			}
		}
	}

	sections := map[string]SeaRateTable{
		"expressSea":  t.ExpressSea,
		"standardSea": t.StandardSea,
		"economySea":  t.EconomySea,
	}
	for name, table := range sections {
		for code, c := range table {
			if err := c.validate(); err != nil {
				return fmt.Errorf("%w: %s card %s: %v", ErrInvalidRateTables, name, code, err)
			}
		}
	}

	return nil
}

func (c SeaRateCard) validate() error {
	if c.ReferenceTransitDays < 0 || c.ClaimTransitDays < 0 {
		return fmt.Errorf("transit days must not be negative")
	}
	for _, step := range seaTiersDesc {
		rates := step.rates(c)
		for _, cell := range []*float64{rates.EastChina, rates.SouthChina, rates.Fujian} {
			if cell != nil && !validRate(*cell) {
				return fmt.Errorf("tier %s rate is %v", step.tier, *cell)
			}
		}
	}
	return nil
}

func validRate(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0) && v >= 0
}

// Clone returns a deep copy that shares no maps or rate cells with t.
func (t RateTables) Clone() RateTables {
	out := RateTables{
		FlatRatePerKg: maps.Clone(t.FlatRatePerKg),
		AirExpress:    maps.Clone(t.AirExpress),
		ExpressSea:    t.ExpressSea.clone(),
		StandardSea:   t.StandardSea.clone(),
		EconomySea:    t.EconomySea.clone(),
	}
	return out
}

func (t SeaRateTable) clone() SeaRateTable {
	if t == nil {
		return nil
	}
	return lo.MapValues(t, func(c SeaRateCard, _ string) SeaRateCard {
		return c.clone()
	})
}

func (c SeaRateCard) clone() SeaRateCard {
	c.Tier12Plus = c.Tier12Plus.clone()
	c.Tier51Plus = c.Tier51Plus.clone()
	c.Tier100Plus = c.Tier100Plus.clone()
	c.Tier500Plus = c.Tier500Plus.clone()
	c.Tier1000Plus = c.Tier1000Plus.clone()
	return c
}

func (r SeaTierRates) clone() SeaTierRates {
	return SeaTierRates{
		EastChina:  clonePtr(r.EastChina),
		SouthChina: clonePtr(r.SouthChina),
		Fujian:     clonePtr(r.Fujian),
	}
}

func clonePtr(v *float64) *float64 {
	if v == nil {
		return nil
	}
	return lo.ToPtr(*v)
}
