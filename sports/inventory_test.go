package sports

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFacility(t *testing.T) *Facility {
	t.Helper()
	dir := t.TempDir()
	f, err := Open(Options{
		DBPath:       filepath.Join(dir, "sports.db"),
		BookingsPath: "events.csv",
		Fs:           afero.NewMemMapFs(),
	})
	require.NoError(t, err)
	t.Cleanup(func() { f.Close() })
	return f
}

func adminRows(t *testing.T, inv *Inventory) []*Equipment {
	t.Helper()
	rows, err := inv.ListAll(RoleAdmin)
	require.NoError(t, err)
	out := make([]*Equipment, 0, len(rows))
	for _, r := range rows {
		e, ok := r.(*Equipment)
		require.True(t, ok, "admin row has type %T", r)
		out = append(out, e)
	}
	return out
}

func TestCreateThenListAsAdmin(t *testing.T) {
	inv := newFacility(t).Inventory

	created, err := inv.Create("Hall store", "Football", "12", "Football", "45.90")
	require.NoError(t, err)
	require.NotZero(t, created.ID)

	rows := adminRows(t, inv)
	require.Len(t, rows, 1)
	got := rows[0]
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, "Hall store", got.Name)
	assert.Equal(t, "Football", got.Equipment)
	assert.EqualValues(t, 12, got.Quantity)
	assert.Equal(t, "Football", got.Sport)
	assert.Equal(t, "45.9", got.Price.String())
	assert.Equal(t, []string{"1", "Hall store", "Football", "12", "Football", "45.90"}, got.Values())
}

func TestCreateAllowsDuplicatesWithFreshIDs(t *testing.T) {
	inv := newFacility(t).Inventory

	a, err := inv.Create("Store", "Net", "1", "Volleyball", "80")
	require.NoError(t, err)
	b, err := inv.Create("Store", "Net", "1", "Volleyball", "80")
	require.NoError(t, err)

	assert.NotEqual(t, a.ID, b.ID)
	assert.Len(t, adminRows(t, inv), 2)
}

func TestCreateRejectsMalformedNumbers(t *testing.T) {
	inv := newFacility(t).Inventory

	cases := []struct {
		name, quantity, price, field string
	}{
		{"quantity not a number", "ten", "5", "quantity"},
		{"fractional quantity", "1.5", "5", "quantity"},
		{"negative quantity", "-1", "5", "quantity"},
		{"price not a number", "3", "cheap", "price"},
		{"negative price", "3", "-0.01", "price"},
		{"empty price", "3", "", "price"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := inv.Create("Store", "Bat", tc.quantity, "Cricket", tc.price)
			var ve *ValidationError
			require.True(t, errors.As(err, &ve), "got %v", err)
			assert.Equal(t, tc.field, ve.Field)
			assert.ErrorIs(t, err, ErrValidation)
		})
	}

	assert.Empty(t, adminRows(t, inv))
}

func TestLimitedListingHidesAdminColumns(t *testing.T) {
	inv := newFacility(t).Inventory
	_, err := inv.Create("Secret store", "Racket", "6", "Tennis", "120")
	require.NoError(t, err)
	_, err = inv.Create("Back room", "Ball", "30", "Tennis", "3.5")
	require.NoError(t, err)

	for _, role := range []Role{RoleNone, RoleStudent, Role("coach")} {
		rows, err := inv.ListAll(role)
		require.NoError(t, err)
		require.Len(t, rows, 2)
		for _, r := range rows {
			v, ok := r.(EquipmentView)
			require.True(t, ok, "role %q got row type %T", role, r)
			assert.Len(t, v.Values(), 3)
			assert.NotContains(t, v.Values(), "Secret store")
			assert.NotContains(t, v.Values(), "120.00")
		}
		assert.Equal(t, EquipmentView{Equipment: "Racket", Quantity: 6, Sport: "Tennis"}, rows[0])
		assert.Equal(t, []string{"Equipment", "Quantity Available", "Sport"}, Columns(role))
	}
	assert.Len(t, Columns(RoleAdmin), 6)
}

func TestUpdateChangesOnlyNameQuantitySport(t *testing.T) {
	inv := newFacility(t).Inventory
	e, err := inv.Create("Old name", "Hockey stick", "4", "Hockey", "55.5")
	require.NoError(t, err)

	require.NoError(t, inv.Update(e.ID, "New name", "9", "Field hockey"))

	got, err := inv.Get(e.ID)
	require.NoError(t, err)
	assert.Equal(t, "New name", got.Name)
	assert.EqualValues(t, 9, got.Quantity)
	assert.Equal(t, "Field hockey", got.Sport)
	assert.Equal(t, "Hockey stick", got.Equipment)
	assert.Equal(t, "55.5", got.Price.String())
}

func TestUpdateMissingIDLeavesTableUnchanged(t *testing.T) {
	inv := newFacility(t).Inventory
	e, err := inv.Create("Store", "Cone", "20", "Football", "1")
	require.NoError(t, err)
	before := adminRows(t, inv)

	err = inv.Update(e.ID+100, "Other", "1", "Other")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, before, adminRows(t, inv))
}

func TestUpdateRejectsBadQuantity(t *testing.T) {
	inv := newFacility(t).Inventory
	e, err := inv.Create("Store", "Cone", "20", "Football", "1")
	require.NoError(t, err)

	err = inv.Update(e.ID, "Store", "lots", "Football")
	assert.ErrorIs(t, err, ErrValidation)

	got, err := inv.Get(e.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 20, got.Quantity)
}

func TestDeleteRemovesRowAndSecondDeleteFails(t *testing.T) {
	inv := newFacility(t).Inventory
	keep, err := inv.Create("Store", "Mat", "2", "Gymnastics", "300")
	require.NoError(t, err)
	gone, err := inv.Create("Store", "Bar", "1", "Gymnastics", "900")
	require.NoError(t, err)

	require.NoError(t, inv.Delete(gone.ID))
	assert.ErrorIs(t, inv.Delete(gone.ID), ErrNotFound)

	rows := adminRows(t, inv)
	require.Len(t, rows, 1)
	assert.Equal(t, keep.ID, rows[0].ID)

	limited, err := inv.ListAll(RoleStudent)
	require.NoError(t, err)
	assert.Len(t, limited, 1)

	_, err = inv.Get(gone.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestIDsAreNotReusedAfterDelete(t *testing.T) {
	inv := newFacility(t).Inventory
	first, err := inv.Create("Store", "Ball", "1", "Netball", "10")
	require.NoError(t, err)
	require.NoError(t, inv.Delete(first.ID))

	second, err := inv.Create("Store", "Ball", "1", "Netball", "10")
	require.NoError(t, err)
	assert.Greater(t, second.ID, first.ID)
}

func TestCreateRejectsPricesThatCannotBeStored(t *testing.T) {
	inv := newFacility(t).Inventory

	for _, price := range []string{"1e400", "12345678901234567.89"} {
		_, err := inv.Create("Store", "Ball", "1", "Netball", price)
		var ve *ValidationError
		require.ErrorAs(t, err, &ve, "price %s", price)
		assert.Equal(t, "price", ve.Field)
	}

	rows, err := inv.ListAll(RoleAdmin)
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestCreatedPriceMatchesStoredPrice(t *testing.T) {
	inv := newFacility(t).Inventory

	for _, price := range []string{"0.1", "19.99", "1234567.25", "120"} {
		e, err := inv.Create("Store", "Ball", "1", "Netball", price)
		require.NoError(t, err)

		got, err := inv.Get(e.ID)
		require.NoError(t, err)
		assert.True(t, e.Price.Equal(got.Price), "created %s, stored %s", e.Price, got.Price)
		assert.Equal(t, e.Values(), got.Values())
	}
}
