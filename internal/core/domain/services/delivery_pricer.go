package services

import (
	"math"

	"mealmarket/internal/core/domain/model/kernel"
)

// MaxServiceableDistanceKM is the hard cutoff of the delivery radius.
// Past this distance no fee exists and the quote is unavailable.
const MaxServiceableDistanceKM = 7.0

// QuoteReason explains why a quote carries no fee.
type QuoteReason string

const (
	// ReasonMissingCoordinates marks a quote requested before the buyer
	// or kitchen location was resolved. Callers should prompt the user
	// to set a location rather than report an error.
	ReasonMissingCoordinates QuoteReason = "missing_coordinates"

	// ReasonOutsideServiceArea marks a quote whose distance exceeds the
	// serviceable radius.
	ReasonOutsideServiceArea QuoteReason = "outside_service_area"
)

// DeliveryQuote is the ephemeral result of a delivery pricing request.
// It is never persisted: recomputing with identical coordinates always
// yields an identical quote.
type DeliveryQuote struct {
	// DistanceKM is the great-circle distance between kitchen and buyer,
	// rounded to 2 decimal places. Zero when coordinates were missing.
	DistanceKM float64

	// Fee is the delivery fee in whole currency units, nil when the
	// quote is unavailable.
	Fee *int64

	// Available reports whether delivery can be offered at all.
	Available bool

	// Reason explains an unavailable quote; empty when Available.
	Reason QuoteReason
}

// feeTier is one half-open interval of the fee schedule: it applies to
// distances d with previousUpperKM < d <= upperKM.
type feeTier struct {
	upperKM float64
	fee     func(distanceKM float64) int64
}

// feeSchedule returns the tiers in strictly ascending order of upper bound.
// The piecewise formula is continuous at every breakpoint: at d=2 the
// second and third tiers both price 15, at d=4 the third and fourth both
// price 35, and at d=7 the last tier reaches exactly 60.
func feeSchedule() []feeTier {
	return []feeTier{
		{upperKM: 1, fee: func(float64) int64 { return 10 }},
		{upperKM: 2, fee: func(float64) int64 { return 15 }},
		{upperKM: 4, fee: func(d float64) int64 { return roundFee(15 + (d-2)*10) }},
		{upperKM: 7, fee: func(d float64) int64 { return roundFee(35 + (d-4)*8.33) }},
	}
}

// roundFee rounds to the nearest whole currency unit, half away from zero.
func roundFee(v float64) int64 {
	return int64(math.Round(v))
}

// DeliveryPricer computes delivery quotes from kitchen and buyer
// coordinates. It is a pure, stateless domain service: no I/O, no hidden
// time- or load-based variance.
type DeliveryPricer struct{}

// NewDeliveryPricer creates a delivery pricing service.
func NewDeliveryPricer() DeliveryPricer {
	return DeliveryPricer{}
}

// Quote prices a delivery from origin (the kitchen) to destination (the
// buyer). Either coordinate may be nil when the upstream resolver had no
// location on file; that yields an unavailable quote with
// ReasonMissingCoordinates instead of an error, so callers can ask the
// user to set a location. Present but out-of-range coordinates do fail,
// with the validation error of the offending GeoPoint.
//
// Within the serviceable radius the fee follows a tiered piecewise-linear
// schedule over the distance d in km:
//
//	d <= 1        -> 10
//	1 < d <= 2    -> 15
//	2 < d <= 4    -> round(15 + (d-2) * 10)
//	4 < d <= 7    -> round(35 + (d-4) * 8.33)
//	d > 7         -> unavailable
func (DeliveryPricer) Quote(origin *kernel.GeoPoint, destination *kernel.GeoPoint) (DeliveryQuote, error) {
	if origin == nil || destination == nil {
		return DeliveryQuote{
			Available: false,
			Reason:    ReasonMissingCoordinates,
		}, nil
	}

	distanceKM, err := origin.DistanceTo(*destination)
	if err != nil {
		return DeliveryQuote{}, err
	}

	for _, tier := range feeSchedule() {
		if distanceKM <= tier.upperKM {
			fee := tier.fee(distanceKM)
			return DeliveryQuote{
				DistanceKM: distanceKM,
				Fee:        &fee,
				Available:  true,
			}, nil
		}
	}

	return DeliveryQuote{
		DistanceKM: distanceKM,
		Available:  false,
		Reason:     ReasonOutsideServiceArea,
	}, nil
}
