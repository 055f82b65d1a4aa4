package client

import "testing"

func TestResolveBaseURL(t *testing.T) {
	cases := []struct {
		name     string
		explicit string
		platform string
		env      string
		want     string
	}{
		{
			name:     "explicit wins",
			explicit: "https://api.reelhub.app",
			platform: "http://10.0.2.2:3000",
			env:      "http://localhost:3000",
			want:     "https://api.reelhub.app/api",
		},
		{
			name:     "explicit already suffixed",
			explicit: "https://api.reelhub.app/api",
			want:     "https://api.reelhub.app/api",
		},
		{
			name:     "explicit trimmed",
			explicit: "  https://api.reelhub.app/  ",
			want:     "https://api.reelhub.app/api",
		},
		{
			name:     "platform default when no explicit",
			platform: "http://10.0.2.2:3000",
			env:      "http://localhost:3000",
			want:     "http://10.0.2.2:3000/api",
		},
		{
			name:     "blank explicit skipped",
			explicit: "   ",
			platform: "http://10.0.2.2:3000",
			want:     "http://10.0.2.2:3000/api",
		},
		{
			name: "env default last",
			env:  "http://localhost:3000",
			want: "http://localhost:3000/api",
		},
		{
			name: "nothing set",
			want: "",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ResolveBaseURL(tc.explicit, tc.platform, tc.env)
			if got != tc.want {
				t.Fatalf("ResolveBaseURL() = %q, want %q", got, tc.want)
			}
		})
	}
}
