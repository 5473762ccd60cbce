package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCatalogShape(t *testing.T) {
	assert.Len(t, Districts, 8)
	for _, d := range Districts {
		assert.NotEmpty(t, d.ID)
		assert.NotEmpty(t, d.Name)
		assert.NotEmpty(t, d.NameBn)
		assert.NotEmpty(t, d.Upazilas, "district %s has no upazilas", d.ID)
	}
}

// Scope identifiers feed role assignment, so an upazila id colliding with
// another upazila or a district would make a role ambiguous.
func TestScopeIDsAreUnique(t *testing.T) {
	seen := map[string]string{}
	for _, d := range Districts {
		if prev, ok := seen[d.ID]; ok {
			t.Fatalf("id %q used by both %s and %s", d.ID, prev, d.ID)
		}
		seen[d.ID] = "district " + d.ID
		for _, u := range d.Upazilas {
			if prev, ok := seen[u.ID]; ok {
				t.Fatalf("id %q used by both %s and upazila %s", u.ID, prev, u.ID)
			}
			seen[u.ID] = "upazila " + u.ID + " of " + d.ID
		}
	}
}

func TestDistrictByID(t *testing.T) {
	d, ok := DistrictByID("rangpur")
	assert.True(t, ok)
	assert.Equal(t, "Rangpur", d.Name)

	_, ok = DistrictByID("dhaka")
	assert.False(t, ok)
}

func TestIsUpazilaOf(t *testing.T) {
	assert.True(t, IsUpazilaOf("rangpur", "kaunia"))
	assert.True(t, IsUpazilaOf("rangpur", "mithapukur"))
	assert.True(t, IsUpazilaOf("kurigram", "phulbari-kurigram"))
	assert.False(t, IsUpazilaOf("dinajpur", "kaunia"))
	assert.False(t, IsUpazilaOf("rangpur", "rangpur"))
	assert.False(t, IsUpazilaOf("", ""))
}

func TestIsScope(t *testing.T) {
	assert.True(t, IsScope("rangpur"))
	assert.True(t, IsScope("kaunia"))
	assert.False(t, IsScope("superadmin"))
	assert.False(t, IsScope(""))
}
