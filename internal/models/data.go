package models

import "time"

// RawPoint is one daily sample of the xJewel bank as it arrives from the dataset
type RawPoint struct {
	Date             string  `json:"date"`
	XJewel           float64 `json:"xJewel"`           // xJewel supply held in the bank
	XJewelWallets    float64 `json:"xJewelWallets"`    // Number of wallets holding xJewel
	CirculatingJewel float64 `json:"circulatingJewel"` // Jewel not locked in the bank
	Ratio            float64 `json:"ratio"`            // Jewel per xJewel
}

// RawPricePoint is an optional external price sample
type RawPricePoint struct {
	Date  string  `json:"date"`
	Price float64 `json:"price"`
}

// ChartPoint is a RawPoint with its parsed date, derived bank amount and pixel coordinates
type ChartPoint struct {
	RawPoint
	Time      time.Time `json:"time"`
	BankJewel float64   `json:"bankJewel"` // XJewel * Ratio

	// Set by the path builder
	X            float64 `json:"x"`
	CirculatingY float64 `json:"circulatingY"` // Top of the circulating band
	BankJewelY   float64 `json:"bankJewelY"`   // Top of the combined band
	Index        int     `json:"index"`
}

// Combined returns the height of the stacked band at this point
func (p ChartPoint) Combined() float64 {
	return p.CirculatingJewel + p.BankJewel
}

// PricePoint is a parsed price sample with its pixel coordinates
type PricePoint struct {
	Date  string    `json:"date"`
	Time  time.Time `json:"time"`
	Price float64   `json:"price"`
	X     float64   `json:"x"`
	Y     float64   `json:"y"`
}

// Domain is an ordered [Min, Max] pair in data space. The value domain is
// stored inverted so that larger values map to smaller pixel y.
type Domain struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Width returns Max - Min
func (d Domain) Width() float64 {
	return d.Max - d.Min
}

// Range is an ordered [Min, Max] pair in pixel space
type Range struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Contains reports whether v lies in the closed interval
func (r Range) Contains(v float64) bool {
	return v >= r.Min && v <= r.Max
}

// Margin carves axis label space out of the viewport
type Margin struct {
	Top    float64 `json:"top"`
	Right  float64 `json:"right"`
	Bottom float64 `json:"bottom"`
	Left   float64 `json:"left"`
}

// Viewport is the target drawing size
type Viewport struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Margin Margin  `json:"margin"`
}

// DefaultMargin leaves room for value labels on the left
var DefaultMargin = Margin{Top: 20, Right: 20, Bottom: 20, Left: 65}

// DefaultViewport returns the 1176x640 viewport with default margins
func DefaultViewport() Viewport {
	return Viewport{Width: 1176, Height: 640, Margin: DefaultMargin}
}

// XRange returns the horizontal plotting band
func (v Viewport) XRange() Range {
	return Range{Min: v.Margin.Left, Max: v.Width - v.Margin.Right}
}

// YRange returns the vertical plotting band, top to bottom
func (v Viewport) YRange() Range {
	return Range{Min: v.Margin.Top, Max: v.Height - v.Margin.Bottom}
}

// PointerState is the pointer position while it is inside the surface
type PointerState struct {
	ScreenX float64 `json:"screenX"`
	ScreenY float64 `json:"screenY"`
	LocalX  float64 `json:"localX"`
	LocalY  float64 `json:"localY"`
}
