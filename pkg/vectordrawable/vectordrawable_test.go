package vectordrawable_test

import (
	"strings"
	"testing"

	// Packages
	vectordrawable "github.com/chalpu/go-guides/pkg/vectordrawable"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConvert_Path(t *testing.T) {
	out, err := vectordrawable.ConvertBytes([]byte(`<svg xmlns="http://www.w3.org/2000/svg" width="24" height="24" viewBox="0 0 24 24">
		<path d="M4 4h16v16H4z" fill="#FF0000"/>
	</svg>`))
	require.NoError(t, err)

	assert.Contains(t, out, `xmlns:android="http://schemas.android.com/apk/res/android"`)
	assert.Contains(t, out, `android:width="24dp"`)
	assert.Contains(t, out, `android:height="24dp"`)
	assert.Contains(t, out, `android:viewportWidth="24"`)
	assert.Contains(t, out, `android:viewportHeight="24"`)
	assert.Contains(t, out, `android:pathData="M4 4h16v16H4z"`)
	assert.Contains(t, out, `android:fillColor="#FF0000"`)
}

func TestConvert_ViewBoxOnly(t *testing.T) {
	out, err := vectordrawable.ConvertBytes([]byte(`<svg viewBox="0 0 100 50"><path d="M0,0 L100,50"/></svg>`))
	require.NoError(t, err)
	assert.Contains(t, out, `android:width="100dp"`)
	assert.Contains(t, out, `android:height="50dp"`)
	assert.Contains(t, out, `android:viewportWidth="100"`)
	assert.Contains(t, out, `android:viewportHeight="50"`)
	// SVG default fill is black
	assert.Contains(t, out, `android:fillColor="#000000"`)
}

func TestConvert_Shapes(t *testing.T) {
	tests := []struct {
		name string
		svg  string
		want []string
	}{
		{
			name: "rect",
			svg:  `<rect x="1" y="2" width="10" height="20" fill="none" stroke="black" stroke-width="2"/>`,
			want: []string{`android:pathData="M1,2 h10 v20 h-10 z"`, `android:strokeColor="#000000"`, `android:strokeWidth="2"`},
		},
		{
			name: "circle",
			svg:  `<circle cx="12" cy="12" r="10" fill="#abc"/>`,
			want: []string{`android:pathData="M2,12 a10,10 0 1 0 20,0 a10,10 0 1 0 -20,0 z"`, `android:fillColor="#AABBCC"`},
		},
		{
			name: "ellipse",
			svg:  `<ellipse cx="10" cy="5" rx="8" ry="4"/>`,
			want: []string{`android:pathData="M2,5 a8,4 0 1 0 16,0 a8,4 0 1 0 -16,0 z"`},
		},
		{
			name: "line",
			svg:  `<line x1="0" y1="0" x2="10" y2="10" stroke="#112233"/>`,
			want: []string{`android:pathData="M0,0 L10,10"`, `android:strokeColor="#112233"`},
		},
		{
			name: "polygon",
			svg:  `<polygon points="0,0 10,0 5,10"/>`,
			want: []string{`android:pathData="M0,0 L10,0 L5,10 z"`},
		},
		{
			name: "polyline",
			svg:  `<polyline points="0,0 10,0 5,10" fill="none" stroke="black"/>`,
			want: []string{`android:pathData="M0,0 L10,0 L5,10"`},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := vectordrawable.ConvertBytes([]byte(`<svg viewBox="0 0 24 24">` + tt.svg + `</svg>`))
			require.NoError(t, err)
			for _, want := range tt.want {
				assert.Contains(t, out, want)
			}
		})
	}
}

func TestConvert_GroupTransform(t *testing.T) {
	out, err := vectordrawable.ConvertBytes([]byte(`<svg viewBox="0 0 24 24">
		<g transform="translate(2, 3)" fill="#00FF00"><path d="M0,0h4v4z"/></g>
	</svg>`))
	require.NoError(t, err)
	assert.Contains(t, out, `<group`)
	assert.Contains(t, out, `android:translateX="2"`)
	assert.Contains(t, out, `android:translateY="3"`)
	// paint is inherited from the group
	assert.Contains(t, out, `android:fillColor="#00FF00"`)
	assert.Contains(t, out, `</group>`)
}

func TestConvert_FillRuleAndOpacity(t *testing.T) {
	out, err := vectordrawable.ConvertBytes([]byte(`<svg viewBox="0 0 24 24">
		<path d="M0,0h4v4z" fill-rule="evenodd" fill-opacity="0.5"/>
	</svg>`))
	require.NoError(t, err)
	assert.Contains(t, out, `android:fillType="evenOdd"`)
	assert.Contains(t, out, `android:fillAlpha="0.5"`)
}

func TestConvert_Errors(t *testing.T) {
	tests := []struct {
		name string
		svg  string
	}{
		{name: "not xml", svg: `this is not xml at all <<<`},
		{name: "not svg root", svg: `<html><body/></html>`},
		{name: "bad viewBox", svg: `<svg viewBox="0 0 abc def"/>`},
		{name: "unsupported transform", svg: `<svg viewBox="0 0 1 1"><g transform="matrix(1,0,0,1,0,0)"><path d="M0,0"/></g></svg>`},
		{name: "bad color", svg: `<svg viewBox="0 0 1 1"><path d="M0,0" fill="url(#grad)"/></svg>`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := vectordrawable.ConvertBytes([]byte(tt.svg))
			require.Error(t, err)
			assert.ErrorIs(t, err, vectordrawable.ErrConversion)
		})
	}
}

func TestConvert_Reader(t *testing.T) {
	out, err := vectordrawable.Convert(strings.NewReader(`<svg viewBox="0 0 8 8"><path d="M0,0h8"/></svg>`))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "<vector "))
	assert.True(t, strings.HasSuffix(out, "</vector>\n"))
}

func TestDrawableName(t *testing.T) {
	assert.Equal(t, "cat.xml", vectordrawable.DrawableName("cat.svg"))
	assert.Equal(t, "cat.xml", vectordrawable.DrawableName("cat.SVG"))
	assert.Equal(t, "cat.dog.xml", vectordrawable.DrawableName("cat.dog.svg"))
	// non-svg names keep their full name as the base
	assert.Equal(t, "cat.png.xml", vectordrawable.DrawableName("cat.png"))
}
