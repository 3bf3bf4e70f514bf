package auth

import (
	"errors"
	"testing"
)

func TestParseBearer(t *testing.T) {
	tests := []struct {
		name        string
		credential  string
		rejectExtra bool
		want        string
		wantErr     error
	}{
		{name: "canonical", credential: "Bearer abc.def.ghi", want: "abc.def.ghi"},
		{name: "lowercase scheme", credential: "bearer tok", want: "tok"},
		{name: "uppercase scheme", credential: "BEARER tok", want: "tok"},
		{name: "mixed case scheme", credential: "bEaReR tok", want: "tok"},
		{name: "trailing segments ignored", credential: "Bearer tok extra more", want: "tok"},
		{name: "empty", credential: "", wantErr: ErrMissingCredential},
		{name: "empty token", credential: "Bearer ", wantErr: ErrMissingCredential},
		{name: "double space", credential: "Bearer  tok", wantErr: ErrMissingCredential},
		{name: "basic scheme", credential: "Basic xyz", wantErr: ErrInvalidScheme},
		{name: "scheme only", credential: "Bearer", wantErr: ErrInvalidScheme},
		{name: "no separator", credential: "Bearertok", wantErr: ErrInvalidScheme},
		{name: "tab separator", credential: "Bearer\ttok", wantErr: ErrInvalidScheme},
		{name: "raw token", credential: "abc.def.ghi", wantErr: ErrInvalidScheme},
		{name: "trailing segments rejected", credential: "Bearer tok extra", rejectExtra: true, wantErr: ErrInvalidScheme},
		{name: "single token with reject", credential: "Bearer tok", rejectExtra: true, want: "tok"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseBearer(tt.credential, tt.rejectExtra)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("ParseBearer(%q) error = %v, want %v", tt.credential, err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseBearer(%q) error = %v", tt.credential, err)
			}
			if got != tt.want {
				t.Errorf("ParseBearer(%q) = %q, want %q", tt.credential, got, tt.want)
			}
		})
	}
}
