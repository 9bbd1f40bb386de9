package standard

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func TestBuildMixedSenses(t *testing.T) {
	form, err := Build(
		[]float64{3, 5},
		[][]float64{
			{1, 2},
			{1, -1},
			{2, 1},
			{1, 1},
		},
		[]Sense{LE, GE, LE, EQ},
		[]float64{4, 1, -2, -3},
		true,
	)
	require.NoError(t, err)

	rows, cols := form.Dims()
	assert.Equal(t, 4, rows)
	assert.Equal(t, 8, cols)
	assert.Equal(t, 2, form.Structural)
	assert.True(t, form.Maximize)
	assert.True(t, form.HasArtificials())

	assert.Equal(t, []float64{-3, -5, 0, 0, 0, 0, 0, 0}, form.Cost)
	assert.Equal(t, []ColumnKind{
		Structural, Structural,
		Slack, Surplus, Surplus,
		Artificial, Artificial, Artificial,
	}, form.Kinds)

	// rows 2 and 3 have negative rhs and are negated
	want := mat.NewDense(4, 8, []float64{
		1, 2, 1, 0, 0, 0, 0, 0,
		1, -1, 0, -1, 0, 1, 0, 0,
		-2, -1, 0, 0, -1, 0, 1, 0,
		-1, -1, 0, 0, 0, 0, 0, 1,
	})
	assert.True(t, mat.Equal(want, form.A), "A =\n%v", mat.Formatted(form.A))
	assert.Equal(t, []float64{4, 1, 2, 3}, form.B)

	assert.Equal(t, []Row{
		{Flipped: false, Sense: LE, SlackColumn: 2, BasisColumn: 2},
		{Flipped: false, Sense: GE, SlackColumn: 3, BasisColumn: 5},
		{Flipped: true, Sense: GE, SlackColumn: 4, BasisColumn: 6},
		{Flipped: true, Sense: EQ, SlackColumn: -1, BasisColumn: 7},
	}, form.Rows)
	assert.Equal(t, map[int]int{5: 1, 6: 2, 7: 3}, form.Artificials)

	assert.False(t, form.IsArtificial(4))
	assert.True(t, form.IsArtificial(5))
}

func TestBuildBasisIsIdentity(t *testing.T) {
	form, err := Build(
		[]float64{1, 1, 1},
		[][]float64{{1, 2, 3}, {-4, 5, 6}, {7, -8, 9}},
		[]Sense{GE, LE, EQ},
		[]float64{-1, -2, 3},
		false,
	)
	require.NoError(t, err)

	for i, row := range form.Rows {
		assert.GreaterOrEqual(t, form.B[i], 0.0)
		col := mat.Col(nil, row.BasisColumn, form.A)
		for k, v := range col {
			if k == i {
				assert.Equal(t, 1.0, v, "row %d", i)
			} else {
				assert.Equal(t, 0.0, v, "row %d", i)
			}
		}
	}
}

func TestBuildMinimizeKeepsCost(t *testing.T) {
	form, err := Build([]float64{2, -1}, [][]float64{{1, 1}}, []Sense{LE}, []float64{5}, false)
	require.NoError(t, err)

	assert.Equal(t, []float64{2, -1, 0}, form.Cost)
	assert.False(t, form.HasArtificials())
}

func TestBuildWithoutRows(t *testing.T) {
	form, err := Build([]float64{1, 2}, nil, nil, nil, false)
	require.NoError(t, err)

	rows, cols := form.Dims()
	assert.Equal(t, 0, rows)
	assert.Equal(t, 2, cols)
	assert.Nil(t, form.A)
	assert.False(t, form.HasArtificials())
}

func TestBuildErrors(t *testing.T) {
	_, err := Build(nil, nil, nil, nil, false)
	assert.Error(t, err)

	_, err = Build([]float64{1}, [][]float64{{1}}, []Sense{LE, LE}, []float64{1}, false)
	assert.Error(t, err)

	_, err = Build([]float64{1}, [][]float64{{1, 2}}, []Sense{LE}, []float64{1}, false)
	assert.Error(t, err)

	_, err = Build([]float64{1}, [][]float64{{1}}, []Sense{Sense(7)}, []float64{1}, false)
	assert.Error(t, err)
}

func TestSenseFlip(t *testing.T) {
	assert.Equal(t, GE, LE.flip())
	assert.Equal(t, LE, GE.flip())
	assert.Equal(t, EQ, EQ.flip())
	assert.Equal(t, "<=", LE.String())
	assert.Equal(t, "artificial", Artificial.String())
}
