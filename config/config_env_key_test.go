package config

import "testing"

func TestCanonicalizeEnvKey_UsesExistingCamelCaseKeys(t *testing.T) {
	existing := map[string]any{
		"mirror": map[string]any{
			"provider": "bolt",
			"redis": map[string]any{
				"addr": "localhost:6379",
			},
		},
		"firestore": map[string]any{
			"projectId": "",
		},
		"qrcode": map[string]any{
			"baseUrl": "",
		},
		"secretKey": map[string]any{
			"access": "",
		},
	}

	tests := []struct {
		envKey string
		want   string
	}{
		{envKey: "MIRROR_PROVIDER", want: "mirror.provider"},
		{envKey: "MIRROR_REDIS_ADDR", want: "mirror.redis.addr"},
		{envKey: "FIRESTORE_PROJECTID", want: "firestore.projectId"},
		{envKey: "QRCODE_BASEURL", want: "qrcode.baseUrl"},
		{envKey: "SECRETKEY_ACCESS", want: "secretKey.access"},
		{envKey: "NEW_FEATURE_FLAG", want: "new.feature.flag"},
	}

	for _, tt := range tests {
		t.Run(tt.envKey, func(t *testing.T) {
			if got := canonicalizeEnvKey(tt.envKey, existing); got != tt.want {
				t.Fatalf("canonicalizeEnvKey(%q) = %q, want %q", tt.envKey, got, tt.want)
			}
		})
	}
}
