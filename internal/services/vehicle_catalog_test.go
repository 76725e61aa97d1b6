package services

import (
	"ev-route-service/internal/domain"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultVehiclesAreValid(t *testing.T) {
	c, err := NewVehicleCatalog(DefaultVehicles())
	require.NoError(t, err)

	list := c.List()
	require.Len(t, list, 5)
	assert.Equal(t, "tesla-model-3-lr", list[0].ID)
	assert.Equal(t, "bmw-ix3", list[4].ID)
}

func TestVehicleCatalogOverrideKeepsPosition(t *testing.T) {
	override := testVehicle()
	override.ID = "nissan-leaf-e-plus"
	override.Name = "Leaf (fleet)"

	extra := bareVehicle(40)
	extra.ID = "city-car"

	c, err := NewVehicleCatalog(append(DefaultVehicles(), override, extra))
	require.NoError(t, err)

	list := c.List()
	require.Len(t, list, 6)
	assert.Equal(t, "nissan-leaf-e-plus", list[2].ID)
	assert.Equal(t, "Leaf (fleet)", list[2].Name)
	assert.Equal(t, "city-car", list[5].ID)
}

func TestVehicleCatalogGet(t *testing.T) {
	c, err := NewVehicleCatalog(DefaultVehicles())
	require.NoError(t, err)

	v, err := c.Get(" hyundai-ioniq-5 ")
	require.NoError(t, err)
	assert.Equal(t, 77.4, v.BatteryCapacityKWh)

	// Callers may not mutate catalog entries through returned slices.
	v.Connectors[0] = domain.ConnectorGBT
	again, err := c.Get("hyundai-ioniq-5")
	require.NoError(t, err)
	assert.Equal(t, domain.ConnectorCCS2, again.Connectors[0])

	_, err = c.Get("delorean")
	assert.ErrorIs(t, err, domain.ErrVehicleNotFound)
}

func TestVehicleCatalogRejectsInvalid(t *testing.T) {
	bad := bareVehicle(0)
	_, err := NewVehicleCatalog([]domain.Vehicle{bad})
	assert.ErrorIs(t, err, domain.ErrInvalidVehicle)

	noID := bareVehicle(40)
	noID.ID = ""
	_, err = NewVehicleCatalog([]domain.Vehicle{noID})
	assert.ErrorIs(t, err, domain.ErrInvalidVehicle)
}
