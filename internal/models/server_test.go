package models

import (
	"reflect"
	"testing"

	json "github.com/goccy/go-json"
)

func TestSubmitServerRequest_Validate(t *testing.T) {
	longDescription := "Un serveur communautaire francophone avec des events chaque semaine et un staff actif."

	tests := []struct {
		name    string
		req     SubmitServerRequest
		wantErr bool
	}{
		{
			name: "Valid submission",
			req: SubmitServerRequest{
				Name:        "Mon serveur",
				InviteLink:  "https://discord.gg/abc123",
				Description: longDescription,
			},
			wantErr: false,
		},
		{
			name: "discord.com invite accepted",
			req: SubmitServerRequest{
				Name:        "Mon serveur",
				InviteLink:  "https://discord.com/invite/abc123",
				Description: longDescription,
			},
			wantErr: false,
		},
		{
			name: "Missing name",
			req: SubmitServerRequest{
				InviteLink:  "https://discord.gg/abc123",
				Description: longDescription,
			},
			wantErr: true,
		},
		{
			name: "Missing invite",
			req: SubmitServerRequest{
				Name:        "Mon serveur",
				Description: longDescription,
			},
			wantErr: true,
		},
		{
			name: "Non-Discord invite",
			req: SubmitServerRequest{
				Name:        "Mon serveur",
				InviteLink:  "https://example.com/join",
				Description: longDescription,
			},
			wantErr: true,
		},
		{
			name: "Description too short",
			req: SubmitServerRequest{
				Name:        "Mon serveur",
				InviteLink:  "https://discord.gg/abc123",
				Description: "trop court",
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("SubmitServerRequest.Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestFlexInt_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want FlexInt
	}{
		{"Number", `42`, 42},
		{"Numeric string", `"42"`, 42},
		{"Null", `null`, 0},
		{"Empty string", `""`, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var f FlexInt
			if err := json.Unmarshal([]byte(tt.in), &f); err != nil {
				t.Fatalf("unmarshal error: %v", err)
			}
			if f != tt.want {
				t.Errorf("got %d, want %d", f, tt.want)
			}
		})
	}

	var f FlexInt
	if err := json.Unmarshal([]byte(`"not a number"`), &f); err == nil {
		t.Error("expected error for non-numeric string")
	}
}

func TestTags_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want Tags
	}{
		{"Array", `["pvp", "fr"]`, Tags{"pvp", "fr"}},
		{"Comma string", `"pvp, fr, events"`, Tags{"pvp", "fr", "events"}},
		{"Null becomes empty", `null`, Tags{}},
		{"Blank entries dropped", `["", " pvp "]`, Tags{"pvp"}},
		{"Empty string", `""`, Tags{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var tags Tags
			if err := json.Unmarshal([]byte(tt.in), &tags); err != nil {
				t.Fatalf("unmarshal error: %v", err)
			}
			if tags == nil {
				t.Fatal("tags must never be nil after unmarshal")
			}
			if !reflect.DeepEqual(tags, tt.want) {
				t.Errorf("got %v, want %v", tags, tt.want)
			}
		})
	}
}
