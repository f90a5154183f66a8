package search

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"trims", "  laptop  ", "laptop"},
		{"lowercases", "LapTop", "laptop"},
		{"collapses whitespace", "usb \t  cable", "usb cable"},
		{"empty", "   ", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Normalize(tc.in))
		})
	}
}

func TestIntentKey_DeterministicAcrossFilterOrder(t *testing.T) {
	now := time.Now()
	a := NewIntent("Laptop", 8, map[string]string{"warehouse": "main", "archived": "0"}, now)
	b := NewIntent("  laptop ", 8, map[string]string{"archived": "0", "warehouse": "main"}, now)
	assert.Equal(t, a.Key(), b.Key())
}

func TestIntentKey_DistinguishesParams(t *testing.T) {
	now := time.Now()
	base := NewIntent("laptop", 8, nil, now)
	assert.NotEqual(t, base.Key(), NewIntent("laptop", 9, nil, now).Key())
	assert.NotEqual(t, base.Key(), NewIntent("laptops", 8, nil, now).Key())
	assert.NotEqual(t, base.Key(), NewIntent("laptop", 8, map[string]string{"warehouse": "main"}, now).Key())
}

func TestIntentIsClear(t *testing.T) {
	now := time.Now()
	assert.True(t, NewIntent("", 8, nil, now).IsClear())
	assert.True(t, NewIntent("a", 8, nil, now).IsClear())
	assert.True(t, NewIntent("  a  ", 8, nil, now).IsClear())
	assert.False(t, NewIntent("ab", 8, nil, now).IsClear())
}
