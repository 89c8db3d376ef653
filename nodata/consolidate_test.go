package nodata

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookup(t *testing.T) {
	rule, ok := Lookup("VNP13A1", "500_m_16_days_NDVI")
	assert.True(t, ok)
	assert.Equal(t, []float64{-15000, -13000}, rule.Codes)
	assert.Equal(t, -32768.0, rule.Value)

	rule, ok = Lookup("VNP15A2H", "FparStdDev")
	assert.True(t, ok)
	assert.Equal(t, []float64{248, 249, 250, 251, 252, 253, 254, 255}, rule.Codes)

	_, ok = Lookup("VNP13A1", "500 m 16 days NDVI")
	assert.False(t, ok)
	_, ok = Lookup("VNP14A1", "FireMask")
	assert.False(t, ok)
}

func TestConsolidate(t *testing.T) {
	// Mock
	data := []int16{100, -15000, 2000, -13000, -3000}
	rule := Rule{Codes: []float64{-15000, -13000}, Value: -32768}

	// Tested code
	clean, fill := Consolidate(data, rule)

	// Asserts
	assert.Equal(t, []int16{100, -32768, 2000, -32768, -3000}, clean)
	assert.Equal(t, []int16{-32768, -15000, -32768, -13000, -32768}, fill)
	assert.Equal(t, []int16{100, -15000, 2000, -13000, -3000}, data)
}

func TestConsolidate_Property(t *testing.T) {
	properties := gopter.NewProperties(gopter.DefaultTestParameters())
	rule := Rule{Codes: []float64{-15000, -13000}, Value: -32768}

	pixel := gen.Int16().Map(func(v int16) int16 {
		switch v % 5 {
		case 0:
			return -15000
		case 1, -1:
			return -13000
		}
		return v
	})

	properties.Property("clean and fill are complementary over the sentinel mask", prop.ForAll(
		func(data []int16) bool {
			clean, fill := Consolidate(data, rule)
			for i, v := range data {
				sentinel := v == -15000 || v == -13000
				if clean[i] == -15000 || clean[i] == -13000 {
					return false
				}
				if sentinel && (clean[i] != -32768 || fill[i] != v) {
					return false
				}
				if !sentinel && (clean[i] != v || fill[i] != -32768) {
					return false
				}
			}
			return true
		},
		gen.SliceOf(pixel),
	))

	properties.TestingRun(t)
}

func TestConsolidateArray(t *testing.T) {
	clean, fill, err := ConsolidateArray([]uint8{10, 249, 255, 200}, Rule{Codes: codeRange(249, 255), Value: 200})

	require.NoError(t, err)
	assert.Equal(t, []uint8{10, 200, 200, 200}, clean)
	assert.Equal(t, []uint8{200, 249, 255, 200}, fill)

	_, _, err = ConsolidateArray([]int8{1}, Rule{})
	assert.NotNil(t, err)
}

func TestWiden(t *testing.T) {
	wide := Widen([]int8{-128, -1, 0, 127})

	assert.Equal(t, []int16{-128, -1, 0, 127}, wide)

	same := []uint8{255}
	assert.Equal(t, same, Widen(same))
}

func TestDeclaredValue(t *testing.T) {
	assert.Equal(t, -1.0, DeclaredValue(255, true))
	assert.Equal(t, -128.0, DeclaredValue(128, true))
	assert.Equal(t, 127.0, DeclaredValue(127, true))
	assert.Equal(t, -1.0, DeclaredValue(-1, true))
	assert.Equal(t, 255.0, DeclaredValue(255, false))
}
