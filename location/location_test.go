package location

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeData(t *testing.T, data string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "locations.json")
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))
	return path
}

const sampleData = `[
  {
    "name": " Coimbatore ",
    "panchayats": [
      {"name": " Pollachi", "villages": [" Arasampalayam ", "Kinathukadavu"]},
      {"name": "Sulur", "villages": ["Kangayampalayam"]}
    ]
  },
  {
    "district": "Tiruppur",
    "panchayats": [
      {"name": "Palladam", "villages": ["Karadivavi"]}
    ]
  }
]`

func TestDistrictNamesSortedAndTrimmed(t *testing.T) {
	s := NewService(writeData(t, sampleData))
	names, err := s.DistrictNames()
	require.NoError(t, err)
	assert.Equal(t, []string{"Coimbatore", "Tiruppur"}, names)
}

func TestDistrictKeyFallback(t *testing.T) {
	// The second record only carries the legacy "district" key.
	s := NewService(writeData(t, sampleData))
	d, err := s.District("Tiruppur")
	require.NoError(t, err)
	require.NotNil(t, d)
	assert.Equal(t, "Tiruppur", d.Name)

	unknown, err := s.District("Atlantis")
	require.NoError(t, err)
	assert.Nil(t, unknown)
}

func TestCascadingLookups(t *testing.T) {
	s := NewService(writeData(t, sampleData))

	panchayats, err := s.PanchayatNames("Coimbatore")
	require.NoError(t, err)
	assert.Equal(t, []string{"Pollachi", "Sulur"}, panchayats)

	villages, err := s.VillageNames("Coimbatore", "Pollachi")
	require.NoError(t, err)
	assert.Equal(t, []string{"Arasampalayam", "Kinathukadavu"}, villages)

	villages, err = s.VillageNames("Coimbatore", "Nowhere")
	require.NoError(t, err)
	assert.Empty(t, villages)

	panchayats, err = s.PanchayatNames("Atlantis")
	require.NoError(t, err)
	assert.Empty(t, panchayats)
}

func TestVillageToPanchayat(t *testing.T) {
	s := NewService(writeData(t, sampleData))
	mapping, err := s.VillageToPanchayat()
	require.NoError(t, err)
	assert.Equal(t, "Pollachi", mapping["Arasampalayam"])
	assert.Equal(t, "Sulur", mapping["Kangayampalayam"])
	assert.Equal(t, "Palladam", mapping["Karadivavi"])
}

func TestMissingFile(t *testing.T) {
	s := NewService(filepath.Join(t.TempDir(), "nope.json"))
	_, err := s.DistrictNames()
	assert.Error(t, err)
}
