package gravity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAbsolute(t *testing.T) {
	tests := []struct {
		name    string
		gravity Gravity
		dir     LayoutDirection
		want    Gravity
	}{
		{"start ltr", Start, LTR, Left},
		{"start rtl", Start, RTL, Right},
		{"end ltr", End, LTR, Right},
		{"end rtl", End, RTL, Left},
		{"left unaffected by rtl", Left, RTL, Left},
		{"right unaffected by rtl", Right, RTL, Right},
		{"vertical bits kept", Bottom | End, LTR, Bottom | Right},
		{"center passes through", Center, RTL, Center},
		{"none", NoGravity, LTR, NoGravity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Absolute(tt.gravity, tt.dir)
			assert.Equal(t, tt.want, got)
			assert.Zero(t, got&RelativeLayoutDirection, "relative flag must be cleared")
		})
	}
}

func TestHorizontal(t *testing.T) {
	assert.Equal(t, Right, Horizontal(End|Top, LTR))
	assert.Equal(t, Left, Horizontal(End|Top, RTL))
	assert.Equal(t, CenterHorizontal, Horizontal(Center, LTR))
	assert.NotEqual(t, Right, Horizontal(FillHorizontal, LTR))
}

func TestVertical(t *testing.T) {
	assert.Equal(t, Bottom, Vertical(Bottom|Start))
	assert.Equal(t, NoGravity, Vertical(Start))
}

func TestParse(t *testing.T) {
	tests := []struct {
		in   string
		want Gravity
	}{
		{"start", Start},
		{"END", End},
		{"right", Right},
		{"bottom|start", Bottom | Start},
		{" top | end ", Top | End},
		{"center-horizontal", CenterHorizontal},
		{"none", NoGravity},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := Parse(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParse_Invalid(t *testing.T) {
	_, err := Parse("")
	assert.Error(t, err)

	_, err = Parse("sideways")
	assert.Error(t, err)

	_, err = Parse("start|sideways")
	assert.Error(t, err)
}

func TestString_RoundTrip(t *testing.T) {
	for _, g := range []Gravity{Start, End, Left, Right, Top | End, Bottom | Left, Center, FillHorizontal} {
		parsed, err := Parse(g.String())
		require.NoError(t, err, g.String())
		assert.Equal(t, g, parsed, g.String())
	}
}

func TestLayoutDirection_String(t *testing.T) {
	assert.Equal(t, "ltr", LTR.String())
	assert.Equal(t, "rtl", RTL.String())
}
