package models

import "time"

// StagePlan describes a purchasable stage of the pipeline.
type StagePlan struct {
	Key      string
	Name     string
	Tagline  string
	PriceUSD int
}

// Entitlement is a locally stored, signed record that a stage was unlocked.
// The Token is an HS256 JWT carrying the stage key and an expiry; tampered
// or expired tokens read as locked.
type Entitlement struct {
	StageKey   string
	Token      string
	UnlockedAt time.Time
}
