package commit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestParse(t *testing.T) {
	tests := map[string]struct {
		message string
		want    Parsed
	}{
		"feat with scope and body": {
			message: "feat(api): agregar caracteristica\n\nAgregar caracteristica importante.",
			want: Parsed{
				ID:          "abc123",
				Type:        TypeFeat,
				Scope:       strPtr("api"),
				Description: "agregar caracteristica",
				Body:        strPtr("Agregar caracteristica importante."),
			},
		},
		"fix without scope": {
			message: "fix: arreglar error\n\nArreglar error fatal.",
			want: Parsed{
				ID:          "abc123",
				Type:        TypeFix,
				Description: "arreglar error",
				Body:        strPtr("Arreglar error fatal."),
			},
		},
		"non conventional header": {
			message: "commit inicial",
			want: Parsed{
				ID:          "abc123",
				Type:        TypeOther,
				Description: "commit inicial",
			},
		},
		"whitespace only body is absent": {
			message: "feat(api): agregar caracteristica\n\n\n\n\n",
			want: Parsed{
				ID:          "abc123",
				Type:        TypeFeat,
				Scope:       strPtr("api"),
				Description: "agregar caracteristica",
			},
		},
		"bang after type keyword": {
			message: "feat!(break): agregar caracteristica\n\nAgregar caracteristica importante.",
			want: Parsed{
				ID:          "abc123",
				Type:        TypeBreaking,
				Scope:       strPtr("break"),
				Description: "agregar caracteristica",
				Body:        strPtr("Agregar caracteristica importante."),
			},
		},
		"bang before colon": {
			message: "refactor(core)!: eliminar API obsoleta",
			want: Parsed{
				ID:          "abc123",
				Type:        TypeBreaking,
				Scope:       strPtr("core"),
				Description: "eliminar API obsoleta",
			},
		},
		"bang without scope": {
			message: "fix!: cambiar formato",
			want: Parsed{
				ID:          "abc123",
				Type:        TypeBreaking,
				Description: "cambiar formato",
			},
		},
		"unknown keyword": {
			message: "feature: algo",
			want: Parsed{
				ID:          "abc123",
				Type:        TypeOther,
				Description: "feature: algo",
			},
		},
		"uppercase keyword is not conventional": {
			message: "Feat: algo",
			want: Parsed{
				ID:          "abc123",
				Type:        TypeOther,
				Description: "Feat: algo",
			},
		},
		"missing space after colon": {
			message: "fix:arreglar",
			want: Parsed{
				ID:          "abc123",
				Type:        TypeOther,
				Description: "fix:arreglar",
			},
		},
		"empty scope parentheses": {
			message: "fix(): arreglar",
			want: Parsed{
				ID:          "abc123",
				Type:        TypeOther,
				Description: "fix(): arreglar",
			},
		},
		"non conventional header keeps body": {
			message: "Merge branch 'main'\n\nConflicts resolved.",
			want: Parsed{
				ID:          "abc123",
				Type:        TypeOther,
				Description: "Merge branch 'main'",
				Body:        strPtr("Conflicts resolved."),
			},
		},
		"trailing newline from git": {
			message: "docs: actualizar documentación\n",
			want: Parsed{
				ID:          "abc123",
				Type:        TypeDocs,
				Description: "actualizar documentación",
			},
		},
		"crlf line endings": {
			message: "perf(db): indexar tabla\r\n\r\nMás rápido.\r\n",
			want: Parsed{
				ID:          "abc123",
				Type:        TypePerf,
				Scope:       strPtr("db"),
				Description: "indexar tabla",
				Body:        strPtr("Más rápido."),
			},
		},
		"empty message": {
			message: "",
			want: Parsed{
				ID:   "abc123",
				Type: TypeOther,
			},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			got := Parse(tt.message, "abc123")
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParse_AllKeywords(t *testing.T) {
	for _, typ := range AllTypes() {
		if !typ.Keyword() {
			continue
		}
		t.Run(typ.String(), func(t *testing.T) {
			got := Parse(typ.String()+"(x): cambio", "id")
			assert.Equal(t, typ, got.Type)
			assert.Equal(t, "x", got.ScopeString())
			assert.Equal(t, "cambio", got.Description)
		})
	}
}

func TestParse_BodyNeverEmptyString(t *testing.T) {
	messages := []string{
		"fix: a",
		"fix: a\n",
		"fix: a\n \n\t\n",
		"otro mensaje\n\n   ",
		"   ",
	}

	for _, msg := range messages {
		got := Parse(msg, "id")
		assert.Nil(t, got.Body, "message %q", msg)
	}
}

func TestParser_BreakingFooter(t *testing.T) {
	tests := map[string]struct {
		opts     Options
		message  string
		wantType Type
	}{
		"footer ignored by default": {
			message:  "feat: nueva API\n\nBREAKING CHANGE: se elimina v1",
			wantType: TypeFeat,
		},
		"footer promotes when enabled": {
			opts:     Options{BreakingFooter: true},
			message:  "feat: nueva API\n\nBREAKING CHANGE: se elimina v1",
			wantType: TypeBreaking,
		},
		"hyphenated footer": {
			opts:     Options{BreakingFooter: true},
			message:  "fix: ajuste\n\nDetalle.\nBREAKING-CHANGE: formato nuevo",
			wantType: TypeBreaking,
		},
		"footer mid-line does not count": {
			opts:     Options{BreakingFooter: true},
			message:  "fix: ajuste\n\nsee BREAKING CHANGE: notes",
			wantType: TypeFix,
		},
		"footer on non conventional header stays other": {
			opts:     Options{BreakingFooter: true},
			message:  "random\n\nBREAKING CHANGE: x",
			wantType: TypeOther,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			p := NewParser(tt.opts)
			assert.Equal(t, tt.wantType, p.Parse(tt.message, "id").Type)
		})
	}
}

func TestParseAll_PreservesOrder(t *testing.T) {
	raws := []Raw{
		{ID: "1", Message: "feat: uno"},
		{ID: "2", Message: "dos"},
		{ID: "3", Message: "fix(ui): tres"},
	}

	got := ParseAll(raws)
	require.Len(t, got, 3)
	assert.Equal(t, []string{"1", "2", "3"}, []string{got[0].ID, got[1].ID, got[2].ID})
	assert.Equal(t, []Type{TypeFeat, TypeOther, TypeFix}, []Type{got[0].Type, got[1].Type, got[2].Type})
}

func TestParseType(t *testing.T) {
	tests := map[string]struct {
		label   string
		want    Type
		wantErr bool
	}{
		"keyword":         {label: "feat", want: TypeFeat},
		"other":           {label: "other", want: TypeOther},
		"breaking":        {label: "BREAKING CHANGE", want: TypeBreaking},
		"legacy other":    {label: "otro", want: TypeOther},
		"legacy breaking": {label: "breaking-change", want: TypeBreaking},
		"unknown":         {label: "feature", wantErr: true},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			got, err := ParseType(tt.label)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
