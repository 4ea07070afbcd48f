package core

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

func TestJoinPath(t *testing.T) {
	assert.Equal(t, "/Pkg", JoinPath("", "Pkg"))
	assert.Equal(t, "/Pkg/Comp", JoinPath("/Pkg", "Comp"))
}

func TestSplitRef(t *testing.T) {
	tests := []struct {
		ref   string
		owner string
		name  string
	}{
		{ref: "/A/B/Comp/Port", owner: "/A/B/Comp", name: "Port"},
		{ref: "/Pkg", owner: "", name: "Pkg"},
		{ref: " /Pkg/Comp/ ", owner: "/Pkg", name: "Comp"},
		{ref: "Port", owner: "", name: "Port"},
		{ref: "", owner: "", name: ""},
	}
	for _, tt := range tests {
		t.Run(tt.ref, func(t *testing.T) {
			owner, name := SplitRef(tt.ref)
			assert.Equal(t, tt.owner, owner)
			assert.Equal(t, tt.name, name)
			assert.Equal(t, tt.name, LastSegment(tt.ref))
		})
	}
}

func TestPathSegments(t *testing.T) {
	if diff := cmp.Diff([]string{"A", "B", "C"}, PathSegments("/A/B/C")); diff != "" {
		t.Fatalf("segments mismatch (-want +got):\n%s", diff)
	}
	assert.Nil(t, PathSegments(""))
	assert.Equal(t, 0, PathDepth(""))
	assert.Equal(t, 3, PathDepth("/A/B/C/"))
}
