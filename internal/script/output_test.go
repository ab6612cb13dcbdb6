package script

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/calcver/calcver/internal/errs"
)

func TestParseOutput(t *testing.T) {
	tests := []struct {
		name    string
		out     string
		want    string
		wantErr bool
	}{
		{"bare triple", "1;2;3", "1.2.3", false},
		{"zero triple", "0;0;0", "0.0.0", false},
		{"single qualifier", "1;2;3;rc1", "1.2.3-rc1", false},
		{"multiple qualifiers", "1;2;3;feature;5;dirty", "1.2.3-feature-5-dirty", false},
		{"empty qualifiers dropped", "1;2;3;;x;", "1.2.3-x", false},
		{"surrounding whitespace", "  1;2;3\n", "1.2.3", false},
		{"whitespace around fields", "1 ; 2 ; 3 ; rc1", "1.2.3-rc1", false},
		{"too few fields", "1;2", "", true},
		{"empty output", "", "", true},
		{"non-numeric major", "a;0;0", "", true},
		{"negative minor", "1;-2;3", "", true},
		{"fractional patch", "1;2;3.5", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			version, err := ParseOutput(tt.out)
			if tt.wantErr {
				var calcErr *errs.CalculationError
				require.ErrorAs(t, err, &calcErr)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, version.String())
		})
	}
}
