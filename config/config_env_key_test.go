package config

import "testing"

func TestCanonicalizeEnvKey_UsesExistingCamelCaseKeys(t *testing.T) {
	existing := map[string]any{
		"backend": map[string]any{
			"firebase": map[string]any{
				"projectId":     "",
				"storageBucket": "",
			},
		},
		"pubsub": map[string]any{
			"topicId": "",
		},
		"idCard": map[string]any{
			"errorCorrectionLevel": "M",
		},
	}

	tests := []struct {
		envKey string
		want   string
	}{
		{envKey: "BACKEND_FIREBASE_PROJECTID", want: "backend.firebase.projectId"},
		{envKey: "BACKEND_FIREBASE_STORAGEBUCKET", want: "backend.firebase.storageBucket"},
		{envKey: "PUBSUB_TOPICID", want: "pubsub.topicId"},
		{envKey: "IDCARD_ERRORCORRECTIONLEVEL", want: "idCard.errorCorrectionLevel"},
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
