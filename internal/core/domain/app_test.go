package domain

import "testing"

func TestAppSpecWithDefaults(t *testing.T) {
	spec := AppSpec{Name: "crm"}.WithDefaults()

	if spec.BaseImage != DefaultBaseImage {
		t.Errorf("BaseImage = %q, want %q", spec.BaseImage, DefaultBaseImage)
	}
	if spec.Port != DefaultPort {
		t.Errorf("Port = %d, want %d", spec.Port, DefaultPort)
	}
	if spec.EntryPoint != DefaultEntryPoint {
		t.Errorf("EntryPoint = %q, want %q", spec.EntryPoint, DefaultEntryPoint)
	}

	custom := AppSpec{Name: "crm", Port: 9000}.WithDefaults()
	if custom.Port != 9000 {
		t.Errorf("Port = %d, want set value preserved", custom.Port)
	}
}

func TestAppSpecValidate(t *testing.T) {
	tests := []struct {
		name    string
		spec    AppSpec
		wantErr bool
	}{
		{"valid defaults", AppSpec{Name: "crm"}.WithDefaults(), false},
		{"missing name", AppSpec{}.WithDefaults(), true},
		{"port out of range", AppSpec{Name: "crm", Port: 70000}.WithDefaults(), true},
		{"entry point without attribute", AppSpec{Name: "crm", EntryPoint: "main"}.WithDefaults(), true},
		{"entry point with empty module", AppSpec{Name: "crm", EntryPoint: ":app"}.WithDefaults(), true},
		{"entry point with two colons", AppSpec{Name: "crm", EntryPoint: "a:b:c"}.WithDefaults(), true},
		{"dotted module path", AppSpec{Name: "crm", EntryPoint: "pkg.server:app"}.WithDefaults(), false},
		{"entry point with quote", AppSpec{Name: "crm", EntryPoint: `main", "rm:app`}.WithDefaults(), true},
		{"entry point with whitespace", AppSpec{Name: "crm", EntryPoint: "main server:app"}.WithDefaults(), true},
		{"entry point with dotted attribute", AppSpec{Name: "crm", EntryPoint: "main:app.sub"}.WithDefaults(), true},
		{"manifest with path separator", AppSpec{Name: "crm", Manifest: "sub/reqs.txt"}.WithDefaults(), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.spec.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestBuildSourceValidate(t *testing.T) {
	if err := (BuildSource{Dir: "/x"}).Validate(); err != nil {
		t.Errorf("dir-only source: %v", err)
	}
	if err := (BuildSource{RepoURL: "https://example.com/a.git"}).Validate(); err != nil {
		t.Errorf("repo-only source: %v", err)
	}
	if err := (BuildSource{}).Validate(); err == nil {
		t.Error("empty source should be invalid")
	}
	if err := (BuildSource{Dir: "/x", RepoURL: "u"}).Validate(); err == nil {
		t.Error("both set should be invalid")
	}
}
