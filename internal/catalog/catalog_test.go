package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/freightlayer/extraction-engine/internal/model"
)

func TestNew_PopulatesKnownKinds(t *testing.T) {
	c := New()
	assert.Equal(t, Version, c.Version)

	kinds := c.Kinds()
	assert.NotEmpty(t, kinds)

	entries := c.Entries(model.KindBookingNumber)
	require.NotEmpty(t, entries)
	for _, e := range entries {
		assert.Equal(t, model.KindBookingNumber, e.Kind)
		assert.NotNil(t, e.Regex)
	}
}

func TestEntry_AppliesToCarrier(t *testing.T) {
	unscoped := Entry{CarrierScope: nil}
	assert.True(t, unscoped.AppliesToCarrier(""))
	assert.True(t, unscoped.AppliesToCarrier("Maersk"))

	scoped := Entry{CarrierScope: []string{"CMA CGM", "Maersk"}}
	assert.True(t, scoped.AppliesToCarrier("Maersk"))
	assert.True(t, scoped.AppliesToCarrier(""))
	assert.False(t, scoped.AppliesToCarrier("MSC"))
}

func TestBuilders_ContainerType(t *testing.T) {
	build := Builders["container_type"]
	v, ok, weak := build("40 HC")
	require.True(t, ok)
	assert.False(t, weak)
	assert.Equal(t, "40HC", v.Text)

	_, ok, _ = build("99XX")
	assert.False(t, ok)
}

func TestBuilders_Incoterms(t *testing.T) {
	build := Builders["incoterms"]
	v, ok, _ := build("fob")
	require.True(t, ok)
	assert.Equal(t, "FOB", v.Text)

	_, ok, _ = build("ZZZ")
	assert.False(t, ok)
}

func TestBuilders_Weight(t *testing.T) {
	build := Builders["weight"]
	v, ok, weak := build("1000 KG")
	require.True(t, ok)
	assert.False(t, weak)
	assert.Equal(t, 1000.0, v.Number)

	v, ok, _ = build("2 MT")
	require.True(t, ok)
	assert.Equal(t, 2000.0, v.Number)

	_, ok, _ = build("not a weight")
	assert.False(t, ok)
}

func TestBuilders_Volume(t *testing.T) {
	build := Builders["volume"]
	v, ok, _ := build("33.2 CBM")
	require.True(t, ok)
	assert.Equal(t, 33.2, v.Number)

	_, ok, _ = build("abc")
	assert.False(t, ok)
}

func TestBuilders_Amount(t *testing.T) {
	build := Builders["amount"]
	v, ok, _ := build("USD 2,500.00")
	require.True(t, ok)
	require.NotNil(t, v.Amount)
	assert.Equal(t, "USD", v.Amount.Currency)
	assert.Equal(t, 2500.00, v.Amount.Value)

	_, ok, _ = build("")
	assert.False(t, ok)
}

func TestBuilders_IdentifierAlnum(t *testing.T) {
	build := Builders["identifier_alnum"]
	v, ok, _ := build("  bkg1234567  ")
	require.True(t, ok)
	assert.Equal(t, "BKG1234567", v.Text)

	_, ok, _ = build("regards")
	assert.False(t, ok)
}

func TestBuilders_CalendarDate(t *testing.T) {
	build := Builders["calendar_date"]
	v, ok, weak := build("2026-03-05")
	require.True(t, ok)
	assert.False(t, weak)
	assert.True(t, v.HasDate)
	assert.Equal(t, "2026-03-05", v.Text)

	_, ok, _ = build("not a date")
	assert.False(t, ok)
}

func TestBuilders_VesselName(t *testing.T) {
	build := Builders["vessel_name"]
	v, ok, _ := build("EVER GIVEN")
	require.True(t, ok)
	assert.Equal(t, "EVER GIVEN", v.Text)

	_, ok, _ = build("12345")
	assert.False(t, ok)
}
