package telemetry

import (
	"testing"
)

func TestParseAttributes(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		input   string
		want    map[string]string
		wantErr bool
	}{
		{
			name:  "single attribute",
			input: "environment=production",
			want:  map[string]string{"environment": "production"},
		},
		{
			name:  "multiple attributes",
			input: "environment=production,region=us-east-1,team=platform",
			want: map[string]string{
				"environment": "production",
				"region":      "us-east-1",
				"team":        "platform",
			},
		},
		{
			name:  "resolved resource attributes",
			input: "service.instance.id=pod-1,service.name=demo,service.version=1.2.3",
			want: map[string]string{
				"service.name":        "demo",
				"service.version":     "1.2.3",
				"service.instance.id": "pod-1",
			},
		},
		{
			name:  "authorization header with base64 padding",
			input: "Authorization=Basic MTIzOnNlY3JldA==",
			want:  map[string]string{"Authorization": "Basic MTIzOnNlY3JldA=="},
		},
		{
			name:  "attributes with spaces",
			input: " environment = production , region = us-east-1 ",
			want: map[string]string{
				"environment": "production",
				"region":      "us-east-1",
			},
		},
		{
			name:  "empty input",
			input: "",
			want:  map[string]string{},
		},
		{
			name:  "trailing comma",
			input: "environment=production,",
			want:  map[string]string{"environment": "production"},
		},
		{
			name:  "empty value is allowed",
			input: "debug=",
			want:  map[string]string{"debug": ""},
		},
		{
			name:    "missing equals",
			input:   "environment",
			wantErr: true,
		},
		{
			name:    "empty key",
			input:   " =production",
			wantErr: true,
		},
		{
			name:    "mixed valid and invalid",
			input:   "environment=production,invalid,region=us-east-1",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := ParseAttributes(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ParseAttributes() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if tt.wantErr {
				return
			}
			if len(got) != len(tt.want) {
				t.Errorf("ParseAttributes() got %d attributes, want %d", len(got), len(tt.want))
				return
			}
			for k, v := range tt.want {
				if got[k] != v {
					t.Errorf("ParseAttributes()[%q] = %q, want %q", k, got[k], v)
				}
			}
		})
	}
}
