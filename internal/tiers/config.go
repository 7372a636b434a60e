package tiers

import (
	"errors"
	"strings"
)

var ErrUnknownTier = errors.New("unknown tier")

// Name represents a service tier
type Name string

const (
	TierPilot Name = "pilot"
	TierT1    Name = "t1"
	TierT2    Name = "t2"
	TierVIP   Name = "vip"
)

// Tier is the authoritative pricing and deliverable envelope for a service
// level. Every component reads this table; pricing literals appear nowhere
// else.
type Tier struct {
	Name        Name
	DisplayName string
	// Price in whole USD. Pilot is a one-time charge, all other tiers bill monthly.
	Price            int64
	OneTime          bool
	ShootsPerMonth   int
	PhotosPerShoot   int
	DeliverySLAHours int
	// Default shoot type created for clients on this tier.
	ShootType string
}

var tierTable = map[Name]Tier{
	TierPilot: {
		Name:             TierPilot,
		DisplayName:      "Pilot",
		Price:            345,
		OneTime:          true,
		ShootsPerMonth:   1,
		PhotosPerShoot:   30,
		DeliverySLAHours: 72,
		ShootType:        "pilot",
	},
	TierT1: {
		Name:             TierT1,
		DisplayName:      "Tier 1",
		Price:            445,
		ShootsPerMonth:   2,
		PhotosPerShoot:   40,
		DeliverySLAHours: 48,
		ShootType:        "standard",
	},
	TierT2: {
		Name:             TierT2,
		DisplayName:      "Tier 2",
		Price:            695,
		ShootsPerMonth:   4,
		PhotosPerShoot:   60,
		DeliverySLAHours: 48,
		ShootType:        "premium",
	},
	TierVIP: {
		Name:             TierVIP,
		DisplayName:      "VIP",
		Price:            995,
		ShootsPerMonth:   8,
		PhotosPerShoot:   100,
		DeliverySLAHours: 24,
		ShootType:        "vip",
	},
}

// Lookup resolves a tier key to its configuration.
func Lookup(name string) (Tier, error) {
	tier, ok := tierTable[Name(strings.ToLower(name))]
	if !ok {
		return Tier{}, ErrUnknownTier
	}
	return tier, nil
}

// All returns every tier in ascending price order.
func All() []Tier {
	return []Tier{
		tierTable[TierPilot],
		tierTable[TierT1],
		tierTable[TierT2],
		tierTable[TierVIP],
	}
}

// IsValid reports whether the key names a known tier.
func IsValid(name string) bool {
	_, ok := tierTable[Name(strings.ToLower(name))]
	return ok
}
