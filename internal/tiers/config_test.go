package tiers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLookup_Pricing(t *testing.T) {
	tests := []struct {
		name      string
		key       string
		wantPrice int64
		oneTime   bool
	}{
		{"pilot", "pilot", 345, true},
		{"tier 1", "t1", 445, false},
		{"tier 2", "t2", 695, false},
		{"vip", "vip", 995, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tier, err := Lookup(tt.key)
			assert.NoError(t, err)
			assert.Equal(t, tt.wantPrice, tier.Price)
			assert.Equal(t, tt.oneTime, tier.OneTime)
		})
	}
}

func TestLookup_CaseInsensitive(t *testing.T) {
	tier, err := Lookup("VIP")
	assert.NoError(t, err)
	assert.Equal(t, TierVIP, tier.Name)
}

func TestLookup_Unknown(t *testing.T) {
	_, err := Lookup("platinum")
	assert.ErrorIs(t, err, ErrUnknownTier)
}

func TestAll_AscendingPriceOrder(t *testing.T) {
	all := All()
	assert.Len(t, all, 4)
	for i := 1; i < len(all); i++ {
		assert.Greater(t, all[i].Price, all[i-1].Price)
	}
}

func TestAll_EnvelopesComplete(t *testing.T) {
	for _, tier := range All() {
		assert.NotEmpty(t, tier.DisplayName)
		assert.NotEmpty(t, tier.ShootType)
		assert.Greater(t, tier.ShootsPerMonth, 0)
		assert.Greater(t, tier.PhotosPerShoot, 0)
		assert.Greater(t, tier.DeliverySLAHours, 0)
	}
}

func TestIsValid(t *testing.T) {
	assert.True(t, IsValid("t1"))
	assert.True(t, IsValid("T2"))
	assert.False(t, IsValid(""))
	assert.False(t, IsValid("free"))
}
