package core

import (
	"testing"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"arxml-inspect/internal/types"
)

func TestVerifyModel(t *testing.T) {
	require.NoError(t, VerifyModel(t.Context(), sampleDocument(t, "load-1")))
}

func TestVerifyModelRejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(doc *types.Document)
		code   errbuilder.ErrCode
	}{
		{
			name:   "missing root",
			mutate: func(doc *types.Document) { doc.Root = nil },
			code:   errbuilder.CodeInvalidArgument,
		},
		{
			name:   "root with path",
			mutate: func(doc *types.Document) { doc.Root.Path = "/" },
			code:   errbuilder.CodeInternal,
		},
		{
			name:   "package path not derived from parent",
			mutate: func(doc *types.Document) { doc.Root.Packages[1].Packages[0].Path = "/Comp" },
			code:   errbuilder.CodeInternal,
		},
		{
			name: "duplicate sibling package",
			mutate: func(doc *types.Document) {
				doc.Root.Packages = append(doc.Root.Packages, &types.Package{ShortName: "Apps", Path: "/Apps"})
			},
			code: errbuilder.CodeAlreadyExists,
		},
		{
			name:   "component owned by another package",
			mutate: func(doc *types.Document) { doc.Root.Packages[1].Components[0].PackagePath = "/Sensors" },
			code:   errbuilder.CodeInternal,
		},
		{
			name:   "component type outside enumeration",
			mutate: func(doc *types.Document) { doc.Root.Packages[0].Components[0].Type = "robot" },
			code:   errbuilder.CodeInvalidArgument,
		},
		{
			name:   "port direction outside enumeration",
			mutate: func(doc *types.Document) { doc.Root.Packages[1].Components[0].Ports[0].Direction = "sideways" },
			code:   errbuilder.CodeInvalidArgument,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := sampleDocument(t, "load-1")
			tt.mutate(&doc)
			err := VerifyModel(t.Context(), doc)
			require.Error(t, err)
			assert.Equal(t, tt.code, errbuilder.CodeOf(err))
		})
	}
}
