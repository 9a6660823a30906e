package zlevel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaptide/chipstack/pkg/stack/setup"
)

func TestSingleFace(t *testing.T) {
	params := setup.DefaultParameters()
	params.SubstrateHeight = setup.Floats{500}
	params.MetalHeight = setup.Floats{0.2}

	table, err := Resolve(params)
	require.NoError(t, err)

	assert.Equal(t, []float64{-500, 0, 1000}, table.Slots)
	assert.Equal(t, FaceLevels{MetalBottom: 0, MetalTop: 0.2, DielectricTop: 0.2, Substrate: 1, Top: true}, table.Faces["1t1"])
	assert.Equal(t, -500.0, table.Bottom())
	assert.Equal(t, 1000.0, table.Top())
	assert.Equal(t, 1, len(table.Substrates()))
	assert.Equal(t, 1, len(table.Vacuums()))
}

func TestFlipChip(t *testing.T) {
	params := setup.DefaultParameters()
	params.FaceStack = setup.FaceStack{{"1t1"}, {"2b1"}}
	params.SubstrateHeight = setup.Floats{500, 400}
	params.ChipDistance = setup.Floats{8}
	params.LowerBoxHeight = 0
	params.MetalHeight = setup.Floats{0.2, 0.3}

	table, err := Resolve(params)
	require.NoError(t, err)

	assert.Equal(t, 4, len(table.Slots))
	assert.Equal(t, []float64{-500, 0, 8, 408}, table.Slots)
	require.Equal(t, 2, len(table.Faces))
	assert.Equal(t, 0.0, table.Faces["1t1"].MetalBottom)
	assert.Equal(t, 8.0, table.Faces["2b1"].MetalBottom)
	assert.InDelta(t, 7.7, table.Faces["2b1"].MetalTop, 1e-12)
	assert.False(t, table.Faces["2b1"].Top)
	assert.Equal(t, 2, table.Faces["2b1"].Substrate)
}

func TestLowerBoxFlipsParity(t *testing.T) {
	params := setup.DefaultParameters()
	params.FaceStack = setup.FaceStack{{"1b1"}, {"1t1"}}
	params.SubstrateHeight = setup.Floats{500}
	params.LowerBoxHeight = 100
	params.UpperBoxHeight = 200
	params.MetalHeight = setup.Floats{0.2}

	table, err := Resolve(params)
	require.NoError(t, err)

	assert.Equal(t, []float64{-600, -500, 0, 200}, table.Slots)
	assert.False(t, table.Faces["1b1"].Top)
	assert.Equal(t, -500.0, table.Faces["1b1"].MetalBottom)
	assert.InDelta(t, -500.2, table.Faces["1b1"].MetalTop, 1e-12)
	assert.True(t, table.Faces["1t1"].Top)
	assert.Equal(t, 0.0, table.Faces["1t1"].MetalBottom)
}

func TestBoxHeights(t *testing.T) {
	tests := []struct {
		name      string
		faceStack setup.FaceStack
		lowerBox  float64
		slots     []float64
	}{
		{"OneGroup", setup.FaceStack{{"1t1"}}, 0, []float64{-500, 0, 200}},
		{"OneGroupLowerBox", setup.FaceStack{{"1b1"}}, 100, []float64{-600, -500, 0}},
		{"TwoGroups", setup.FaceStack{{"1t1"}, {"2b1"}}, 0, []float64{-500, 0, 8, 408}},
		{"TwoGroupsLowerBox", setup.FaceStack{{"1b1"}, {"1t1"}}, 100, []float64{-600, -500, 0, 200}},
		{"ThreeGroups", setup.FaceStack{{"1t1"}, {"2b1"}, {"2t1"}}, 0, []float64{-500, 0, 8, 408, 608}},
		{"ThreeGroupsLowerBox", setup.FaceStack{{"1b1"}, {"1t1"}, {"2b1"}}, 100, []float64{-600, -500, 0, 8, 408}},
		{"FourGroupsLowerBox", setup.FaceStack{{"1b1"}, {"1t1"}, {"2b1"}, {"2t1"}}, 100, []float64{-600, -500, 0, 8, 408, 608}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			params := setup.DefaultParameters()
			params.FaceStack = tc.faceStack
			params.SubstrateHeight = setup.Floats{500, 400}
			params.ChipDistance = setup.Floats{8}
			params.LowerBoxHeight = tc.lowerBox
			params.UpperBoxHeight = 200

			table, err := Resolve(params)
			require.NoError(t, err)
			assert.Equal(t, tc.slots, table.Slots)

			vacuums := table.Vacuums()
			last := table.Blocks[len(table.Blocks)-1]
			if last.Kind == Vacuum {
				assert.Equal(t, 200.0, last.Thickness())
			}
			if tc.lowerBox > 0 {
				assert.Equal(t, 100.0, vacuums[0].Thickness())
			}
		})
	}
}

func TestLowerBoxFourGroupsParity(t *testing.T) {
	params := setup.DefaultParameters()
	params.FaceStack = setup.FaceStack{{"1b1"}, {"1t1"}, {"2b1"}, {"2t1"}}
	params.SubstrateHeight = setup.Floats{500, 400}
	params.ChipDistance = setup.Floats{8}
	params.LowerBoxHeight = 100
	params.UpperBoxHeight = 200
	params.MetalHeight = setup.Floats{0.2}

	table, err := Resolve(params)
	require.NoError(t, err)

	assert.False(t, table.Faces["1b1"].Top)
	assert.Equal(t, -500.0, table.Faces["1b1"].MetalBottom)
	assert.True(t, table.Faces["1t1"].Top)
	assert.Equal(t, 0.0, table.Faces["1t1"].MetalBottom)
	assert.False(t, table.Faces["2b1"].Top)
	assert.Equal(t, 8.0, table.Faces["2b1"].MetalBottom)
	assert.Equal(t, 2, table.Faces["2b1"].Substrate)
	assert.True(t, table.Faces["2t1"].Top)
	assert.Equal(t, 408.0, table.Faces["2t1"].MetalBottom)
	assert.Equal(t, 3, len(table.Vacuums()))
	assert.Equal(t, 2, len(table.Substrates()))
}

func TestGroupOrderWithinSurface(t *testing.T) {
	params := setup.DefaultParameters()
	params.FaceStack = setup.FaceStack{{"1t1", "1t2"}, {"2b2", "2b1"}}
	params.SubstrateHeight = setup.Floats{500}
	params.ChipDistance = setup.Floats{10}
	params.MetalHeight = setup.Floats{1}
	params.DielectricHeight = setup.Floats{2}

	table, err := Resolve(params)
	require.NoError(t, err)

	assert.Equal(t, FaceLevels{MetalBottom: 0, MetalTop: 1, DielectricTop: 3, Substrate: 1, Top: true, Index: 0}, table.Faces["1t1"])
	assert.Equal(t, FaceLevels{MetalBottom: 3, MetalTop: 4, DielectricTop: 6, Substrate: 1, Top: true, Index: 1}, table.Faces["1t2"])
	assert.Equal(t, FaceLevels{MetalBottom: 10, MetalTop: 9, DielectricTop: 7, Substrate: 2, Top: false, Index: 3}, table.Faces["2b1"])
	assert.Equal(t, FaceLevels{MetalBottom: 7, MetalTop: 6, DielectricTop: 4, Substrate: 2, Top: false, Index: 2}, table.Faces["2b2"])
}

func TestEmptyGroupAndZeroThickness(t *testing.T) {
	params := setup.DefaultParameters()
	params.FaceStack = setup.FaceStack{{}, {"2b1"}, {}}
	params.SubstrateHeight = setup.Floats{0}
	params.ChipDistance = setup.Floats{0}

	table, err := Resolve(params)
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 0, 0, 0, 1000}, table.Slots)
	assert.Equal(t, 1, len(table.Faces))
	assert.Equal(t, 0.0, table.Faces["2b1"].MetalBottom)
}

func TestRezeroAndMonotonicity(t *testing.T) {
	stacks := []setup.FaceStack{
		{{"1t1"}},
		{{"1t1"}, {"2b1"}},
		{{"1b1"}, {"1t1"}, {"2b1"}},
		{{"1t1"}, {"2b1"}, {"2t1"}, {"3b1"}},
	}
	for _, lowerBox := range []float64{0, 50} {
		for _, faceStack := range stacks {
			params := setup.DefaultParameters()
			params.FaceStack = faceStack
			params.LowerBoxHeight = lowerBox
			params.SubstrateHeight = setup.Floats{500, 300, 200}
			params.ChipDistance = setup.Floats{8, 12}
			params.MetalHeight = setup.Floats{0.2}
			params.DielectricHeight = setup.Floats{0.1}

			table, err := Resolve(params)
			require.NoError(t, err)

			assert.Equal(t, 0.0, table.Substrates()[0].Top)
			for i := 1; i < len(table.Slots); i++ {
				assert.LessOrEqual(t, table.Slots[i-1], table.Slots[i])
			}
			for _, f := range table.Faces {
				d := f.Outward()
				assert.LessOrEqual(t, 0.0, d*(f.MetalTop-f.MetalBottom))
				assert.LessOrEqual(t, 0.0, d*(f.DielectricTop-f.MetalTop))
			}
		}
	}
}

func TestNoGroups(t *testing.T) {
	params := setup.DefaultParameters()
	params.FaceStack = setup.FaceStack{}
	_, err := Resolve(params)
	assert.Error(t, err)
}
