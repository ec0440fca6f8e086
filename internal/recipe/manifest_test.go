package recipe

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"slipway/internal/core/domain"
)

func TestParseManifest(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		want     []Requirement
		unpinned []string
		wantErr  error
	}{
		{
			name:  "pinned requirements",
			input: "fastapi==0.110.0\nuvicorn==0.29.0\n",
			want: []Requirement{
				{Name: "fastapi", Version: "0.110.0"},
				{Name: "uvicorn", Version: "0.29.0"},
			},
		},
		{
			name:  "comments and blanks ignored",
			input: "# web framework\nfastapi==0.110.0\n\nsqlmodel==0.0.16  # orm\n",
			want: []Requirement{
				{Name: "fastapi", Version: "0.110.0"},
				{Name: "sqlmodel", Version: "0.0.16"},
			},
		},
		{
			name:     "bare name is unpinned",
			input:    "fastapi\n",
			want:     []Requirement{{Name: "fastapi"}},
			unpinned: []string{"fastapi"},
		},
		{
			name:     "range specifier is unpinned",
			input:    "uvicorn>=0.20\n",
			want:     []Requirement{{Name: "uvicorn"}},
			unpinned: []string{"uvicorn"},
		},
		{
			name:     "spaced range specifier is unpinned",
			input:    "fastapi >= 0.100, <1.0\n",
			want:     []Requirement{{Name: "fastapi"}},
			unpinned: []string{"fastapi"},
		},
		{
			name:     "compatible-release specifier is unpinned",
			input:    "sqlmodel~=0.0.16\n",
			want:     []Requirement{{Name: "sqlmodel"}},
			unpinned: []string{"sqlmodel"},
		},
		{
			name:  "whitespace around separator",
			input: "fastapi == 0.110.0\n",
			want:  []Requirement{{Name: "fastapi", Version: "0.110.0"}},
		},
		{
			name:    "missing version after separator",
			input:   "fastapi==\n",
			wantErr: domain.ErrManifestMalformed,
		},
		{
			name:    "garbage line",
			input:   "!!!not a requirement\n",
			wantErr: domain.ErrManifestMalformed,
		},
		{
			name:  "empty manifest",
			input: "",
			want:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := ParseManifest(strings.NewReader(tt.input))
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, m.Requirements)
			assert.Equal(t, tt.unpinned, m.Unpinned)
		})
	}
}

func TestLoadManifest(t *testing.T) {
	t.Run("missing file fails before any build step", func(t *testing.T) {
		_, err := LoadManifest(t.TempDir(), "requirements.txt")
		require.ErrorIs(t, err, domain.ErrManifestMissing)
	})

	t.Run("reads from source dir", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, "requirements.txt"),
			[]byte("fastapi==0.110.0\n"), 0o644))

		m, err := LoadManifest(dir, "requirements.txt")
		require.NoError(t, err)
		assert.Equal(t, []Requirement{{Name: "fastapi", Version: "0.110.0"}}, m.Requirements)
	})
}
