package scidata_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scidatatool/scidata"
)

func radialDict() map[string]any {
	return map[string]any{"__class__": "Data", "name": "radial", "unit": "T"}
}

func TestVectorFieldFromDict_RebuildsComponents(t *testing.T) {
	vf, err := scidata.VectorFieldFromDict(map[string]any{
		"name":   "B",
		"symbol": "B",
		"components": map[string]any{
			"radial":     radialDict(),
			"tangential": map[string]any{"__class__": "Data1D", "values": []any{1, 2}},
		},
	})
	require.NoError(t, err)

	comps := vf.Components()
	require.Len(t, comps, 2)
	radial, ok := comps["radial"].(*scidata.Data)
	require.True(t, ok)
	assert.Equal(t, "radial", radial.Name())
	assert.Same(t, vf, radial.Parent())

	tan, ok := vf.Component("tangential")
	require.True(t, ok)
	assert.IsType(t, &scidata.Data1D{}, tan)
	assert.Same(t, vf, tan.Parent())

	_, ok = vf.Component("axial")
	assert.False(t, ok)
}

func TestVectorField_ComponentsSentinelAndErrors(t *testing.T) {
	vf, err := scidata.VectorFieldFromDict(map[string]any{"components": -1})
	require.NoError(t, err)
	assert.Empty(t, vf.Components())

	_, err = scidata.VectorFieldFromDict(map[string]any{
		"components": map[string]any{"radial": map[string]any{"__class__": "Data", "name": 1}},
	})
	require.ErrorIs(t, err, scidata.ErrTypeMismatch)
	iss, _ := scidata.AsIssues(err)
	assert.Equal(t, "/components/radial/name", iss[0].Path)

	_, err = scidata.VectorFieldFromDict(map[string]any{
		"components": map[string]any{"radial": map[string]any{"__class__": "Nope"}},
	})
	assert.ErrorIs(t, err, scidata.ErrUnknownClass)

	assert.ErrorIs(t, vf.SetComponents("radial"), scidata.ErrTypeMismatch)
	assert.ErrorIs(t, vf.SetComponents(map[string]any{"radial": 3}), scidata.ErrTypeMismatch)
	assert.ErrorIs(t, vf.Set("unit", "T"), scidata.ErrUnknownAttribute)
}

func TestVectorField_TypedNilComponents(t *testing.T) {
	var missing *scidata.Data
	vf := scidata.NewVectorField("B", "B", map[string]scidata.Record{
		"radial":     missing,
		"tangential": scidata.NewData(scidata.WithName("tangential")),
	})

	comps := vf.Components()
	require.Len(t, comps, 2)
	assert.Nil(t, comps["radial"])
	assert.Equal(t, vf, comps["tangential"].Parent())

	c, ok := vf.Component("radial")
	assert.True(t, ok)
	assert.Nil(t, c)

	assert.Nil(t, vf.AsDict()["components"].(map[string]any)["radial"])
	assert.Contains(t, vf.String(), `"radial": None`)

	require.NoError(t, vf.SetComponents(map[string]any{"axial": (*scidata.Data1D)(nil)}))
	c, ok = vf.Component("axial")
	assert.True(t, ok)
	assert.Nil(t, c)

	require.NoError(t, vf.SetComponents(map[string]scidata.Record{"axial": (*scidata.DataLinspace)(nil)}))
	assert.Nil(t, vf.Components()["axial"])

	_, err := scidata.Copy(missing)
	assert.ErrorIs(t, err, scidata.ErrMalformedInitDict)
}

func TestVectorField_RoundTripAndEqual(t *testing.T) {
	radial := scidata.NewData(scidata.WithName("radial"), scidata.WithUnit("T"))
	vf := scidata.NewVectorField("B", "B", map[string]scidata.Record{"radial": radial})

	dict := vf.AsDict()
	assert.Equal(t, "VectorField", dict["__class__"])
	assert.Equal(t, "Data", dict["components"].(map[string]any)["radial"].(map[string]any)["__class__"])

	back, err := scidata.VectorFieldFromDict(dict)
	require.NoError(t, err)
	assert.True(t, vf.Equal(back))

	other := scidata.NewVectorField("B", "B", map[string]scidata.Record{
		"radial": scidata.NewData(scidata.WithName("radial"), scidata.WithUnit("mT")),
	})
	assert.False(t, vf.Equal(other))
	assert.False(t, vf.Equal(radial))
}

func TestVectorField_SetNoneAndString(t *testing.T) {
	vf := scidata.NewVectorField("B", "B", map[string]scidata.Record{
		"tangential": scidata.NewData1D(nil),
		"radial":     scidata.NewData(),
	})
	assert.Equal(t, "parent = None\nname = \"B\"\nsymbol = \"B\"\ncomponents = {\"radial\": Data, \"tangential\": Data1D}\n", vf.String())

	vf.SetNone()
	assert.Nil(t, vf.Components())
	assert.Nil(t, vf.AsDict()["components"])
	assert.Contains(t, vf.String(), "components = None\n")
}
