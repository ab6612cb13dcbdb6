package script

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/calcver/calcver/internal/errs"
)

func TestNewEngine(t *testing.T) {
	tests := []struct {
		name    string
		kind    Kind
		source  string
		wantErr bool
	}{
		{"expr kind", KindExpr, `"1;0;0"`, false},
		{"js kind", KindJS, `"1;0;0"`, false},
		{"unknown kind", Kind("lua"), `return "1;0;0"`, true},
		{"empty source", KindExpr, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewEngine(tt.kind, tt.source)
			if tt.wantErr {
				var cfgErr *errs.ConfigurationError
				require.ErrorAs(t, err, &cfgErr)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestEngine_RunExpr(t *testing.T) {
	meta := map[string]string{
		"CURRENT_VERSION_MAJOR": "1",
		"CURRENT_VERSION_MINOR": "2",
		"CURRENT_VERSION_PATCH": "3",
		"QUALIFIED_BRANCH_NAME": "feature",
	}

	tests := []struct {
		name   string
		source string
		want   string
	}{
		{
			"literal",
			`"2;0;0"`,
			"2;0;0",
		},
		{
			"metadata lookup",
			`metadata.CURRENT_VERSION_MAJOR + ";" + metadata.CURRENT_VERSION_MINOR + ";" + metadata.CURRENT_VERSION_PATCH`,
			"1;2;3",
		},
		{
			"conditional qualifier",
			`metadata.QUALIFIED_BRANCH_NAME != "" ? "1;0;0;" + metadata.QUALIFIED_BRANCH_NAME : "1;0;0"`,
			"1;0;0;feature",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine, err := NewEngine(KindExpr, tt.source)
			require.NoError(t, err)

			out, err := engine.Run(meta)
			require.NoError(t, err)
			require.Equal(t, tt.want, out)
		})
	}
}

func TestEngine_RunExpr_CompileError(t *testing.T) {
	engine, err := NewEngine(KindExpr, `metadata.X +`)
	require.NoError(t, err)

	_, err = engine.Run(map[string]string{})
	var calcErr *errs.CalculationError
	require.ErrorAs(t, err, &calcErr)
}

func TestEngine_RunJS(t *testing.T) {
	meta := map[string]string{
		"NEXT_PATCH_VERSION": "1.2.4",
		"COMMIT_DISTANCE":    "5",
	}

	tests := []struct {
		name   string
		source string
		want   string
	}{
		{
			"literal",
			`"3;1;4"`,
			"3;1;4",
		},
		{
			"string manipulation",
			`metadata["NEXT_PATCH_VERSION"].split(".").join(";")`,
			"1;2;4",
		},
		{
			"numeric work",
			`"0;0;" + (parseInt(metadata["COMMIT_DISTANCE"], 10) * 2)`,
			"0;0;10",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine, err := NewEngine(KindJS, tt.source)
			require.NoError(t, err)

			out, err := engine.Run(meta)
			require.NoError(t, err)
			require.Equal(t, tt.want, out)
		})
	}
}

func TestEngine_RunJS_Errors(t *testing.T) {
	tests := []struct {
		name   string
		source string
	}{
		{"syntax error", `function (`},
		{"thrown error", `throw new Error("boom")`},
		{"no value", `var x = 1;`},
		{"null value", `null`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine, err := NewEngine(KindJS, tt.source)
			require.NoError(t, err)

			_, err = engine.Run(map[string]string{})
			var calcErr *errs.CalculationError
			require.ErrorAs(t, err, &calcErr)
		})
	}
}
