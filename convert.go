package folio

import (
	"errors"
	"fmt"
)

// ErrUnknownValuation is returned when a valuation has no conversion steps.
var ErrUnknownValuation = errors.New("unknown valuation")

// Valuation defines how lots are valued when converted to a target currency.
type Valuation int

const (
	// AtMarket values lots with their latest known price, falling back on their cost.
	AtMarket Valuation = iota
	// AtCost values lots with their acquisition cost.
	AtCost
)

func (v Valuation) String() string {
	switch v {
	case AtMarket:
		return "market"
	case AtCost:
		return "cost"
	default:
		return "unknown"
	}
}

// MarshalText writes the valuation name.
func (v Valuation) MarshalText() ([]byte, error) { return []byte(v.String()), nil }

// UnmarshalText parses a valuation name.
func (v *Valuation) UnmarshalText(text []byte) error {
	parsed, err := ParseValuation(string(text))
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

// ParseValuation parses a string into a Valuation.
func ParseValuation(s string) (Valuation, error) {
	switch s {
	case "market":
		return AtMarket, nil
	case "cost":
		return AtCost, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownValuation, s)
	}
}

// Converter converts an amount into a target currency, possibly through
// intermediate currencies. When no conversion path exists it returns the
// amount unchanged and a nil error.
//
// *PriceGraph is the Converter used by reports.
type Converter interface {
	Convert(amount Amount, target string, via ...string) (Amount, error)
}

// Step names the conversion step that produced a Conversion.
type Step string

const (
	StepNative        Step = "native"         // the lot is already in the target currency
	StepMarket        Step = "market"         // the lot units were converted
	StepCost          Step = "cost"           // the lot cost is in the target currency
	StepCostConverted Step = "cost-converted" // the lot cost amount was converted
	StepCash          Step = "cash"           // the lot has no cost, its units were converted
	StepUnconverted   Step = "unconverted"    // no step applied
)

// Conversion is the tagged result of ConvertWithFallback.
type Conversion struct {
	Amount    Amount // in the target currency if Converted, else the lot units
	Converted bool
	Step      Step
}

// ConversionError reports a structural failure of the price graph while
// converting an amount.
type ConversionError struct {
	Amount Amount
	Target string
	Err    error
}

func (e *ConversionError) Error() string {
	return fmt.Sprintf("failed to convert %s to %s: %v", e.Amount, e.Target, e.Err)
}

func (e *ConversionError) Unwrap() error { return e.Err }

// step tries to value a lot in target currency. It returns false when it
// does not apply or when no conversion path was found.
type step struct {
	name  Step
	apply func(c Converter, pos Position, target string, via []string) (Amount, bool, error)
}

// steps lists, for each valuation, the conversion steps in the order they are tried.
var steps = map[Valuation][]step{
	AtMarket: {
		{StepNative, native},
		{StepMarket, market},
		{StepCost, costInTarget},
		{StepCostConverted, costConverted},
	},
	AtCost: {
		{StepNative, native},
		{StepCostConverted, costConverted},
		{StepCash, cash},
	},
}

// ConvertWithFallback values a lot in target currency.
//
// The steps of the valuation are tried in order, the first one that applies
// wins. When none applies, the result is not converted and carries the lot
// units. Via currencies are used as intermediate hops by the converter.
// A valuation other than AtMarket or AtCost is an ErrUnknownValuation.
func ConvertWithFallback(c Converter, pos Position, target string, v Valuation, via ...string) (Conversion, error) {
	valSteps, ok := steps[v]
	if !ok {
		return Conversion{}, fmt.Errorf("%w: %d", ErrUnknownValuation, int(v))
	}
	for _, s := range valSteps {
		amount, ok, err := s.apply(c, pos, target, via)
		if err != nil {
			return Conversion{}, err
		}
		if ok {
			return Conversion{Amount: amount, Converted: true, Step: s.name}, nil
		}
	}
	return Conversion{Amount: pos.Units, Step: StepUnconverted}, nil
}

// convert wraps a converter call, reporting whether it landed in target.
func convert(c Converter, amount Amount, target string, via []string) (Amount, bool, error) {
	converted, err := c.Convert(amount, target, via...)
	if err != nil {
		return Amount{}, false, &ConversionError{Amount: amount, Target: target, Err: err}
	}
	return converted, converted.Currency == target, nil
}

func native(_ Converter, pos Position, target string, _ []string) (Amount, bool, error) {
	return pos.Units, pos.Units.Currency == target, nil
}

func market(c Converter, pos Position, target string, via []string) (Amount, bool, error) {
	return convert(c, pos.Units, target, via)
}

func costInTarget(_ Converter, pos Position, target string, _ []string) (Amount, bool, error) {
	if pos.Cost == nil || pos.Cost.Currency != target {
		return Amount{}, false, nil
	}
	return pos.CostAmount(), true, nil
}

func costConverted(c Converter, pos Position, target string, via []string) (Amount, bool, error) {
	if pos.Cost == nil {
		return Amount{}, false, nil
	}
	return convert(c, pos.CostAmount(), target, via)
}

func cash(c Converter, pos Position, target string, via []string) (Amount, bool, error) {
	if pos.Cost != nil {
		return Amount{}, false, nil
	}
	return convert(c, pos.Units, target, via)
}
