package tiers

// TierInfo is the API-facing representation of a tier.
type TierInfo struct {
	Name             string `json:"name"`
	DisplayName      string `json:"display_name"`
	Price            int64  `json:"price"`
	Billing          string `json:"billing"`
	ShootsPerMonth   int    `json:"shoots_per_month"`
	PhotosPerShoot   int    `json:"photos_per_shoot"`
	DeliverySLAHours int    `json:"delivery_sla_hours"`
}

// Info converts a tier to its API representation.
func Info(t Tier) TierInfo {
	billing := "monthly"
	if t.OneTime {
		billing = "one_time"
	}
	return TierInfo{
		Name:             string(t.Name),
		DisplayName:      t.DisplayName,
		Price:            t.Price,
		Billing:          billing,
		ShootsPerMonth:   t.ShootsPerMonth,
		PhotosPerShoot:   t.PhotosPerShoot,
		DeliverySLAHours: t.DeliverySLAHours,
	}
}

// ListInfo returns the API representation of every tier.
func ListInfo() []TierInfo {
	all := All()
	infos := make([]TierInfo, 0, len(all))
	for _, t := range all {
		infos = append(infos, Info(t))
	}
	return infos
}
