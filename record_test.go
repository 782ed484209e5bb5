package scidata_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scidatatool/scidata"
)

func TestFromDict_Dispatch(t *testing.T) {
	tests := []struct {
		name string
		rec  scidata.Record
	}{
		{"data", scidata.NewData(scidata.WithName("Flux"))},
		{"data1d", scidata.NewData1D([]float64{1, 2, 3}, scidata.WithUnit("s"))},
		{"linspace", scidata.NewDataLinspace(scidata.Linspace{Initial: scidata.Float(0), Final: scidata.Float(1), Number: scidata.Int(3)})},
		{"vectorfield", scidata.NewVectorField("B", "B", map[string]scidata.Record{"radial": scidata.NewData()})},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			back, err := scidata.FromDict(tt.rec.AsDict())
			require.NoError(t, err)
			assert.IsType(t, tt.rec, back)
			assert.True(t, tt.rec.Equal(back))
			assert.Equal(t, tt.rec.ClassName(), back.ClassName())
		})
	}
}

func TestFromDict_Errors(t *testing.T) {
	_, err := scidata.FromDict("Data")
	assert.ErrorIs(t, err, scidata.ErrMalformedInitDict)

	_, err = scidata.FromDict(map[string]any{"name": "Flux"})
	assert.ErrorIs(t, err, scidata.ErrUnknownClass)

	_, err = scidata.FromDict(map[string]any{"__class__": "Mystery"})
	require.ErrorIs(t, err, scidata.ErrUnknownClass)
	iss, _ := scidata.AsIssues(err)
	assert.Equal(t, "/__class__", iss[0].Path)
	assert.Contains(t, iss[0].Message, `"Mystery"`)

	_, err = scidata.FromDict(map[string]any{"__class__": "Data", "name": 1})
	assert.ErrorIs(t, err, scidata.ErrTypeMismatch)
}

func TestCopy(t *testing.T) {
	orig := scidata.NewData(scidata.WithName("Flux"), scidata.WithSymmetries(scidata.Symmetries{"time": {"period": 2}}))
	orig.SetParent("owner")

	cp, err := scidata.Copy(orig)
	require.NoError(t, err)
	assert.True(t, orig.Equal(cp))
	assert.Nil(t, cp.Parent())

	require.NoError(t, cp.Set("name", "Other"))
	assert.Equal(t, "Flux", orig.Name())

	_, err = scidata.Copy(nil)
	assert.Error(t, err)
}

func TestRegistry(t *testing.T) {
	assert.Subset(t, scidata.Classes(), []string{"Data", "Data1D", "DataLinspace", "VectorField"})

	c, ok := scidata.LookupClass("Data1D")
	require.True(t, ok)
	assert.Same(t, scidata.DataClass, c.Parent)
	names := make([]string, 0)
	for _, f := range c.AllFields() {
		names = append(names, f.Name)
	}
	assert.Equal(t, []string{"symbol", "name", "unit", "symmetries", "values", "is_components"}, names)

	f, ok := c.Field("symmetries")
	require.True(t, ok)
	assert.Equal(t, scidata.KindSymmetries, f.Kind)
	_, ok = c.Field("parent")
	assert.False(t, ok)
}

func TestRegisterClass_Custom(t *testing.T) {
	custom := &scidata.Class{Name: "Probe", Parent: scidata.DataClass}
	scidata.RegisterClass(custom, func(m map[string]any) (scidata.Record, error) {
		return scidata.DataFromDict(m)
	})

	assert.Contains(t, scidata.Classes(), "Probe")
	rec, err := scidata.FromDict(map[string]any{"__class__": "Probe", "name": "p"})
	require.NoError(t, err)
	assert.Equal(t, "p", rec.(*scidata.Data).Name())
}

func TestFromDict_Concurrent(t *testing.T) {
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := scidata.FromDict(map[string]any{"__class__": "Data", "name": "x"})
			assert.NoError(t, err)
			_ = scidata.Classes()
		}()
	}
	wg.Wait()
}

func TestRecord_Interface(t *testing.T) {
	var recs []scidata.Record = []scidata.Record{
		scidata.NewData(), scidata.NewData1D(nil), scidata.NewDataLinspace(scidata.Linspace{}), scidata.NewVectorField("", "", nil),
	}
	for _, r := range recs {
		assert.Equal(t, r.Class().Name, r.ClassName())
		assert.Equal(t, r.ClassName(), r.AsDict()["__class__"])
		_, err := r.Get("nope")
		assert.ErrorIs(t, err, scidata.ErrUnknownAttribute)
	}
}
